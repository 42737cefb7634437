package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"library-lending/internal/auth"
	"library-lending/internal/ledger"
	"library-lending/internal/lending"
	"library-lending/internal/messages"
	"library-lending/internal/reviews"
)

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// respondError translates the typed failures of the core into HTTP
// statuses. Business-rule conflicts are 4xx; only persistence failures
// become 5xx.
func respondError(w http.ResponseWriter, err error) {
	var status int

	var persistence *ledger.PersistenceError

	switch {
	case errors.Is(err, auth.ErrIdentityMissing):
		status = http.StatusUnauthorized
	case errors.Is(err, auth.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, lending.ErrBookNotFound),
		errors.Is(err, messages.ErrMessageNotFound):
		status = http.StatusNotFound
	case errors.Is(err, lending.ErrBookUnavailable),
		errors.Is(err, lending.ErrAlreadyCheckedOut),
		errors.Is(err, lending.ErrLoanLimitExceeded),
		errors.Is(err, lending.ErrNoActiveLoan),
		errors.Is(err, lending.ErrLoanOverdue),
		errors.Is(err, lending.ErrNoCopiesToRemove),
		errors.Is(err, reviews.ErrAlreadyReviewed):
		status = http.StatusConflict
	case errors.Is(err, lending.ErrInvalidBook),
		errors.Is(err, messages.ErrEmptyQuestion):
		status = http.StatusBadRequest
	case errors.As(err, &persistence):
		log.Printf("persistence failure: %v", err)
		status = http.StatusInternalServerError
	default:
		log.Printf("unexpected error: %v", err)
		status = http.StatusInternalServerError
	}

	if status == http.StatusInternalServerError {
		// Do not leak storage details to clients.
		respondJSON(w, status, errorResponse{Error: "internal error"})
		return
	}
	respondJSON(w, status, errorResponse{Error: err.Error()})
}

// requireBookID reads the bookId query parameter the loan endpoints take.
func requireBookID(r *http.Request) (string, bool) {
	bookID := r.URL.Query().Get("bookId")
	return bookID, bookID != ""
}
