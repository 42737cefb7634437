// Package handlers translates HTTP requests into calls on the lending,
// review and message services, and their results into responses. All
// authorization decisions happen here, before any service call.
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"library-lending/internal/auth"
	"library-lending/internal/lending"
)

// BooksHandler serves the public catalog and the authenticated loan
// endpoints.
type BooksHandler struct {
	lending *lending.Service
}

// NewBooksHandler creates a BooksHandler.
func NewBooksHandler(lendingService *lending.Service) *BooksHandler {
	return &BooksHandler{lending: lendingService}
}

// List returns the full catalog. Public.
func (h *BooksHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.lending.ListBooks(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, books)
}

// Get returns a single book. Public.
func (h *BooksHandler) Get(w http.ResponseWriter, r *http.Request) {
	book, err := h.lending.GetBook(r.Context(), chi.URLParam(r, "bookID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, book)
}

// Checkout lends a copy of the book to the caller.
func (h *BooksHandler) Checkout(w http.ResponseWriter, r *http.Request) {
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

	book, err := h.lending.CheckoutBook(r.Context(), identity.Email, bookID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, book)
}

// Return completes the caller's loan of the book.
func (h *BooksHandler) Return(w http.ResponseWriter, r *http.Request) {
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

	if err := h.lending.ReturnBook(r.Context(), identity.Email, bookID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

// Renew extends the caller's loan of the book.
func (h *BooksHandler) Renew(w http.ResponseWriter, r *http.Request) {
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

	if err := h.lending.RenewLoan(r.Context(), identity.Email, bookID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

// CurrentLoans returns the caller's active loans with days left until due.
func (h *BooksHandler) CurrentLoans(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	loans, err := h.lending.CurrentLoans(r.Context(), identity.Email)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, loans)
}

// CurrentLoansCount returns the number of active loans the caller holds.
func (h *BooksHandler) CurrentLoansCount(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	count, err := h.lending.CurrentLoansCount(r.Context(), identity.Email)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, count)
}

// IsCheckedOutByUser reports whether the caller holds the book.
func (h *BooksHandler) IsCheckedOutByUser(w http.ResponseWriter, r *http.Request) {
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

	checkedOut, err := h.lending.IsCheckedOutByUser(r.Context(), identity.Email, bookID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, checkedOut)
}

// History returns the caller's completed loans.
func (h *BooksHandler) History(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	records, err := h.lending.LoanHistory(r.Context(), identity.Email)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, records)
}
