package models

import "time"

// History is the immutable archive record of a completed loan. The book
// fields are denormalized so the record survives catalog deletions.
type History struct {
	ID           string    `json:"id" firestore:"id"`
	UserEmail    string    `json:"userEmail" firestore:"user_email"`
	BookID       string    `json:"bookId" firestore:"book_id"`
	Title        string    `json:"title" firestore:"title"`
	Author       string    `json:"author" firestore:"author"`
	Description  string    `json:"description" firestore:"description"`
	Img          string    `json:"img" firestore:"img"`
	CheckoutDate time.Time `json:"checkoutDate" firestore:"checkout_date"`
	ReturnedDate time.Time `json:"returnedDate" firestore:"returned_date"`
}
