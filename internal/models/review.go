package models

import "time"

// Review is a user's rating of a book. One review per (UserEmail, BookID).
type Review struct {
	ID                string    `json:"id" firestore:"id"`
	UserEmail         string    `json:"userEmail" firestore:"user_email"`
	BookID            string    `json:"bookId" firestore:"book_id"`
	Date              time.Time `json:"date" firestore:"date"`
	Rating            float64   `json:"rating" firestore:"rating"`
	ReviewDescription string    `json:"reviewDescription" firestore:"review_description"`
}
