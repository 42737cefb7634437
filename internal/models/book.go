package models

import "time"

// Book represents a title in the catalog together with its copy counters.
// CopiesAvailable stays within [0, CopiesTotal] at all times; only the
// lending service mutates the counters.
type Book struct {
	ID              string    `json:"id" firestore:"id"`
	Title           string    `json:"title" firestore:"title"`
	Author          string    `json:"author" firestore:"author"`
	Description     string    `json:"description" firestore:"description"`
	Category        string    `json:"category" firestore:"category"`
	Img             string    `json:"img" firestore:"img"`
	CopiesTotal     int       `json:"copies" firestore:"copies_total"`
	CopiesAvailable int       `json:"copiesAvailable" firestore:"copies_available"`
	CreatedAt       time.Time `json:"-" firestore:"created_at"`
	UpdatedAt       time.Time `json:"-" firestore:"updated_at"`
}

// IsAvailable reports whether at least one copy can be checked out.
func (b *Book) IsAvailable() bool {
	return b.CopiesAvailable > 0
}
