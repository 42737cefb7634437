// Package reviews lets users rate books they have read. Each user may
// review a given book once.
package reviews

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"library-lending/internal/ledger"
	"library-lending/internal/models"
)

// ErrAlreadyReviewed indicates the user has already reviewed this book.
var ErrAlreadyReviewed = errors.New("review already created for user and book")

// Store is the persistence boundary for reviews, implemented by
// internal/firebase and internal/memory.
type Store interface {
	ReviewsByBook(ctx context.Context, bookID string) ([]models.Review, error)
	HasUserReview(ctx context.Context, userEmail, bookID string) (bool, error)
	// CreateReview fails with ledger.ErrAlreadyExists for a duplicate
	// (user, book) pair.
	CreateReview(ctx context.Context, review models.Review) error
}

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Service implements review posting and lookups.
type Service struct {
	store Store
	clock Clock
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces the wall clock, for tests.
func WithClock(clock Clock) Option {
	return func(s *Service) { s.clock = clock }
}

// NewService creates a review service on top of a store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{store: store, clock: systemClock{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListByBook returns all reviews of a book; public, no identity required.
func (s *Service) ListByBook(ctx context.Context, bookID string) ([]models.Review, error) {
	return s.store.ReviewsByBook(ctx, bookID)
}

// UserReviewListed reports whether the user already reviewed the book.
func (s *Service) UserReviewListed(ctx context.Context, userEmail, bookID string) (bool, error) {
	return s.store.HasUserReview(ctx, userEmail, bookID)
}

// PostReview records the user's review of a book. A second review of the
// same book by the same user fails with ErrAlreadyReviewed.
func (s *Service) PostReview(ctx context.Context, userEmail string, req models.ReviewRequest) error {
	err := s.store.CreateReview(ctx, models.Review{
		ID:                uuid.NewString(),
		UserEmail:         userEmail,
		BookID:            req.BookID,
		Date:              s.clock.Now(),
		Rating:            req.Rating,
		ReviewDescription: req.ReviewDescription,
	})
	if errors.Is(err, ledger.ErrAlreadyExists) {
		return ErrAlreadyReviewed
	}
	return err
}
