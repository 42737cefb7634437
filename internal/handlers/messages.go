package handlers

import (
	"encoding/json"
	"net/http"

	"library-lending/internal/auth"
	"library-lending/internal/messages"
	"library-lending/internal/models"
)

// MessagesHandler serves the user-to-admin question threads.
type MessagesHandler struct {
	messages *messages.Service
}

// NewMessagesHandler creates a MessagesHandler.
func NewMessagesHandler(messageService *messages.Service) *MessagesHandler {
	return &MessagesHandler{messages: messageService}
}

// ListByUser returns the caller's threads.
func (h *MessagesHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	list, err := h.messages.ListByUser(r.Context(), identity.Email)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// PostMessage opens a new question thread for the caller.
func (h *MessagesHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	var req models.PostMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	message, err := h.messages.PostMessage(r.Context(), identity.Email, req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, message)
}

// OpenQuestions returns the threads awaiting a response. Admin only.
func (h *MessagesHandler) OpenQuestions(w http.ResponseWriter, r *http.Request) {
	if _, err := requireAdmin(r); err != nil {
		respondError(w, err)
		return
	}

	list, err := h.messages.OpenQuestions(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// AnswerMessage records the caller's response and closes the thread.
// Admin only.
func (h *MessagesHandler) AnswerMessage(w http.ResponseWriter, r *http.Request) {
	identity, err := requireAdmin(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req models.AdminAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := h.messages.AnswerMessage(r.Context(), identity.Email, req); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}
