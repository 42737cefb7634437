package handlers

import (
	"encoding/json"
	"net/http"

	"library-lending/internal/auth"
	"library-lending/internal/lending"
	"library-lending/internal/models"
)

// AdminHandler serves the catalog-management endpoints. Every endpoint
// runs the authorization guard to completion before touching the ledger.
type AdminHandler struct {
	lending *lending.Service
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(lendingService *lending.Service) *AdminHandler {
	return &AdminHandler{lending: lendingService}
}

// requireAdmin resolves the caller's identity and runs the admin guard.
func requireAdmin(r *http.Request) (auth.Identity, error) {
	identity, err := auth.IdentityFromContext(r.Context())
	if err != nil {
		return auth.Identity{}, err
	}
	if err := auth.RequireAdmin(identity); err != nil {
		return auth.Identity{}, err
	}
	return identity, nil
}

// IncreaseQuantity adds one copy of the book, raising both counters.
func (h *AdminHandler) IncreaseQuantity(w http.ResponseWriter, r *http.Request) {
	h.adjustQuantity(w, r, +1)
}

// DecreaseQuantity retires one on-shelf copy of the book.
func (h *AdminHandler) DecreaseQuantity(w http.ResponseWriter, r *http.Request) {
	h.adjustQuantity(w, r, -1)
}

func (h *AdminHandler) adjustQuantity(w http.ResponseWriter, r *http.Request, delta int) {
	if _, err := requireAdmin(r); err != nil {
		respondError(w, err)
		return
	}
	bookID, ok := requireBookID(r)
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "bookId is required"})
		return
	}

	if err := h.lending.AdjustQuantity(r.Context(), bookID, delta); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

// AddBook creates a new catalog entry.
func (h *AdminHandler) AddBook(w http.ResponseWriter, r *http.Request) {
	if _, err := requireAdmin(r); err != nil {
		respondError(w, err)
		return
	}

	var req models.AddBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	book, err := h.lending.AddBook(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, book)
}

// DeleteBook removes a book and its active checkouts.
func (h *AdminHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	if _, err := requireAdmin(r); err != nil {
		respondError(w, err)
		return
	}
	bookID, ok := requireBookID(r)
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "bookId is required"})
		return
	}

	if err := h.lending.DeleteBook(r.Context(), bookID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}
