package firebase

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"library-lending/internal/ledger"
	"library-lending/internal/models"
)

// CreateMessage stores a new question thread.
func (c *Client) CreateMessage(ctx context.Context, message models.Message) error {
	ref := c.Firestore.Collection(MessagesCollection).Doc(message.ID)
	if _, err := ref.Create(ctx, message); err != nil {
		return ledger.Persistence("create message", err)
	}
	return nil
}

// GetMessage returns a message by id, or ledger.ErrNotFound.
func (c *Client) GetMessage(ctx context.Context, id string) (models.Message, error) {
	doc, err := c.Firestore.Collection(MessagesCollection).Doc(id).Get(ctx)
	if isNotFound(err) {
		return models.Message{}, ledger.ErrNotFound
	}
	if err != nil {
		return models.Message{}, ledger.Persistence("get message", err)
	}

	var message models.Message
	if err := doc.DataTo(&message); err != nil {
		return models.Message{}, ledger.Persistence("parse message", err)
	}
	message.ID = doc.Ref.ID
	return message, nil
}

// UpdateMessage replaces a stored message.
func (c *Client) UpdateMessage(ctx context.Context, message models.Message) error {
	ref := c.Firestore.Collection(MessagesCollection).Doc(message.ID)
	if _, err := ref.Set(ctx, message); err != nil {
		return ledger.Persistence("update message", err)
	}
	return nil
}

// MessagesByUser returns all threads a user opened, newest first.
func (c *Client) MessagesByUser(ctx context.Context, userEmail string) ([]models.Message, error) {
	query := c.Firestore.Collection(MessagesCollection).
		Where("user_email", "==", userEmail).
		OrderBy("created_at", firestore.Desc)
	return c.collectMessages(ctx, query)
}

// MessagesByClosed returns threads filtered by their closed flag.
func (c *Client) MessagesByClosed(ctx context.Context, closed bool) ([]models.Message, error) {
	query := c.Firestore.Collection(MessagesCollection).
		Where("closed", "==", closed)
	return c.collectMessages(ctx, query)
}

func (c *Client) collectMessages(ctx context.Context, query firestore.Query) ([]models.Message, error) {
	var messages []models.Message

	iter := query.Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, ledger.Persistence("list messages", err)
		}

		var message models.Message
		if err := doc.DataTo(&message); err != nil {
			return nil, ledger.Persistence("parse message", err)
		}
		message.ID = doc.Ref.ID
		messages = append(messages, message)
	}

	return messages, nil
}
