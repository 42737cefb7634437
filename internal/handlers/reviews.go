package handlers

import (
	"encoding/json"
	"net/http"

	"library-lending/internal/auth"
	"library-lending/internal/models"
	"library-lending/internal/reviews"
)

// ReviewsHandler serves book reviews.
type ReviewsHandler struct {
	reviews *reviews.Service
}

// NewReviewsHandler creates a ReviewsHandler.
func NewReviewsHandler(reviewService *reviews.Service) *ReviewsHandler {
	return &ReviewsHandler{reviews: reviewService}
}

// ListByBook returns all reviews of a book. Public.
func (h *ReviewsHandler) ListByBook(w http.ResponseWriter, r *http.Request) {
	bookID, ok := requireBookID(r)
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "bookId is required"})
		return
	}

	list, err := h.reviews.ListByBook(r.Context(), bookID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// UserReviewListed reports whether the caller already reviewed the book.
func (h *ReviewsHandler) UserReviewListed(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	bookID, ok := requireBookID(r)
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "bookId is required"})
		return
	}

	listed, err := h.reviews.UserReviewListed(r.Context(), identity.Email, bookID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listed)
}

// PostReview records the caller's review of a book.
func (h *ReviewsHandler) PostReview(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	var req models.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.BookID == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := h.reviews.PostReview(r.Context(), identity.Email, req); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, nil)
}
