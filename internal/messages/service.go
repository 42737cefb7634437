// Package messages implements the question threads users exchange with
// the library administrators.
package messages

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"library-lending/internal/ledger"
	"library-lending/internal/models"
)

var (
	// ErrMessageNotFound indicates an answer referenced an unknown thread.
	ErrMessageNotFound = errors.New("message not found")
	// ErrEmptyQuestion indicates a post without title or question text.
	ErrEmptyQuestion = errors.New("message title and question are required")
)

// Store is the persistence boundary for message threads.
type Store interface {
	CreateMessage(ctx context.Context, message models.Message) error
	GetMessage(ctx context.Context, id string) (models.Message, error)
	UpdateMessage(ctx context.Context, message models.Message) error
	MessagesByUser(ctx context.Context, userEmail string) ([]models.Message, error)
	MessagesByClosed(ctx context.Context, closed bool) ([]models.Message, error)
}

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Service implements posting, listing and answering question threads.
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

// NewService creates a message service on top of a store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{store: store, clock: systemClock{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PostMessage opens a new question thread for the user.
func (s *Service) PostMessage(ctx context.Context, userEmail string, req models.PostMessageRequest) (models.Message, error) {
	if req.Title == "" || req.Question == "" {
		return models.Message{}, ErrEmptyQuestion
	}

	now := s.clock.Now()
	message := models.Message{
		ID:        uuid.NewString(),
		UserEmail: userEmail,
		Title:     req.Title,
		Question:  req.Question,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateMessage(ctx, message); err != nil {
		return models.Message{}, err
	}
	return message, nil
}

// ListByUser returns the threads a user opened.
func (s *Service) ListByUser(ctx context.Context, userEmail string) ([]models.Message, error) {
	return s.store.MessagesByUser(ctx, userEmail)
}

// OpenQuestions returns the threads still waiting for an admin response.
func (s *Service) OpenQuestions(ctx context.Context) ([]models.Message, error) {
	return s.store.MessagesByClosed(ctx, false)
}

// AnswerMessage records an admin's response and closes the thread. The
// caller must have passed the admin guard already.
func (s *Service) AnswerMessage(ctx context.Context, adminEmail string, req models.AdminAnswerRequest) error {
	message, err := s.store.GetMessage(ctx, req.ID)
	if errors.Is(err, ledger.ErrNotFound) {
		return ErrMessageNotFound
	}
	if err != nil {
		return err
	}

	message.AdminEmail = adminEmail
	message.Response = req.Response
	message.Closed = true
	message.UpdatedAt = s.clock.Now()

	if err := s.store.UpdateMessage(ctx, message); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return ErrMessageNotFound
		}
		return err
	}
	return nil
}
