package memory

import (
	"context"

	"library-lending/internal/ledger"
	"library-lending/internal/models"
)

// CreateMessage stores a new question thread.
func (s *Store) CreateMessage(_ context.Context, message models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages[message.ID] = message
	return nil
}

// GetMessage returns a message by id, or ledger.ErrNotFound.
func (s *Store) GetMessage(_ context.Context, id string) (models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	message, ok := s.messages[id]
	if !ok {
		return models.Message{}, ledger.ErrNotFound
	}
	return message, nil
}

// UpdateMessage replaces a stored message.
func (s *Store) UpdateMessage(_ context.Context, message models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.messages[message.ID]; !ok {
		return ledger.ErrNotFound
	}
	s.messages[message.ID] = message
	return nil
}

// MessagesByUser returns all threads a user opened.
func (s *Store) MessagesByUser(_ context.Context, userEmail string) ([]models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var messages []models.Message
	for _, message := range s.messages {
		if message.UserEmail == userEmail {
			messages = append(messages, message)
		}
	}
	return messages, nil
}

// MessagesByClosed returns threads filtered by their closed flag.
func (s *Store) MessagesByClosed(_ context.Context, closed bool) ([]models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var messages []models.Message
	for _, message := range s.messages {
		if message.Closed == closed {
			messages = append(messages, message)
		}
	}
	return messages, nil
}
