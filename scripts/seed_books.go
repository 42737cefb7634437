package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"library-lending/internal/firebase"
	"library-lending/internal/models"
)

// Seeds the catalog with a starting set of books. Safe to run once
// against an empty project; reruns create duplicate titles.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using system environment")
	}

	ctx := context.Background()
	client, err := firebase.NewClient(ctx)
	if err != nil {
		log.Fatal("firebase:", err)
	}
	defer client.Close()

	books := []models.AddBookRequest{
		{
			Title:       "Crash Course in Python",
			Author:      "Luba Lee",
			Description: "Learn Python from the ground up, from syntax basics to building small applications.",
			Category:    "Programming",
			Copies:      5,
		},
		{
			Title:       "The Art of Concurrent Design",
			Author:      "Mara Oliveira",
			Description: "Patterns for coordinating shared state without losing correctness or sleep.",
			Category:    "Software Engineering",
			Copies:      3,
		},
		{
			Title:       "Guide to Cloud Data Stores",
			Author:      "Devin McLeod",
			Description: "A practical tour of document stores, transactions and consistency trade-offs.",
			Category:    "Databases",
			Copies:      4,
		},
		{
			Title:       "Becoming a Better Reviewer",
			Author:      "Priya Natarajan",
			Description: "How to give code review feedback that ships better software and keeps teams healthy.",
			Category:    "Software Engineering",
			Copies:      2,
		},
	}

	now := time.Now()
	for _, seed := range books {
		book := models.Book{
			ID:              uuid.NewString(),
			Title:           seed.Title,
			Author:          seed.Author,
			Description:     seed.Description,
			Category:        seed.Category,
			CopiesTotal:     seed.Copies,
			CopiesAvailable: seed.Copies,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		_, err := client.Firestore.Collection(firebase.BooksCollection).Doc(book.ID).Set(ctx, book)
		if err != nil {
			log.Fatalf("seeding %q: %v", book.Title, err)
		}
		log.Printf("seeded %q (%d copies)", book.Title, book.CopiesTotal)
	}

	log.Println("catalog seeding complete")
}
