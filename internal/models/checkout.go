package models

import "time"

// Checkout is an active loan: one user holding one copy of one book.
// At most one Checkout exists per (UserEmail, BookID) pair; the ledger
// enforces this with a deterministic key.
type Checkout struct {
	ID           string    `json:"id" firestore:"id"`
	UserEmail    string    `json:"userEmail" firestore:"user_email"`
	BookID       string    `json:"bookId" firestore:"book_id"`
	CheckoutDate time.Time `json:"checkoutDate" firestore:"checkout_date"`
	DueDate      time.Time `json:"dueDate" firestore:"due_date"`
}

// IsOverdue reports whether the due date has passed at the given instant.
func (c *Checkout) IsOverdue(now time.Time) bool {
	return c.DueDate.Before(now)
}
