package memory

import (
	"context"

	"library-lending/internal/ledger"
	"library-lending/internal/models"
)

func reviewKey(userEmail, bookID string) string {
	return userEmail + "#" + bookID
}

// ReviewsByBook returns all reviews of a book.
func (s *Store) ReviewsByBook(_ context.Context, bookID string) ([]models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var reviews []models.Review
	for _, review := range s.reviews {
		if review.BookID == bookID {
			reviews = append(reviews, review)
		}
	}
	return reviews, nil
}

// HasUserReview reports whether the user already reviewed the book.
func (s *Store) HasUserReview(_ context.Context, userEmail, bookID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.reviews[reviewKey(userEmail, bookID)]
	return ok, nil
}

// CreateReview stores a review, failing with ledger.ErrAlreadyExists when
// the (user, book) pair already has one.
func (s *Store) CreateReview(_ context.Context, review models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := reviewKey(review.UserEmail, review.BookID)
	if _, ok := s.reviews[key]; ok {
		return ledger.ErrAlreadyExists
	}
	s.reviews[key] = review
	return nil
}
