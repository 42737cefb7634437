// Package firebase holds the Firebase-backed implementation of the
// lending ledger and the review/message stores, plus the Auth client the
// middleware verifies bearer tokens with.
package firebase

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// Firestore collection names.
const (
	BooksCollection     = "books"
	CheckoutsCollection = "checkouts"
	HistoryCollection   = "history"
	ReviewsCollection   = "reviews"
	MessagesCollection  = "messages"
)

// Client bundles the Firebase Auth and Firestore clients.
type Client struct {
	App       *firebase.App
	Auth      *auth.Client
	Firestore *firestore.Client
}

// NewClient initializes Firebase from either a credentials file
// (FIREBASE_CREDENTIALS_PATH, local development) or inline JSON
// (FIREBASE_CREDENTIALS_JSON, deployments).
func NewClient(ctx context.Context) (*Client, error) {
	var opts []option.ClientOption

	if path := os.Getenv("FIREBASE_CREDENTIALS_PATH"); path != "" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("credentials file does not exist: %s", path)
		}
		opts = append(opts, option.WithCredentialsFile(path))
	} else if credJSON := os.Getenv("FIREBASE_CREDENTIALS_JSON"); credJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credJSON)))
	} else {
		return nil, fmt.Errorf("neither FIREBASE_CREDENTIALS_PATH nor FIREBASE_CREDENTIALS_JSON is set")
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("initializing firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("initializing firebase auth: %w", err)
	}

	firestoreClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("initializing firestore: %w", err)
	}

	return &Client{
		App:       app,
		Auth:      authClient,
		Firestore: firestoreClient,
	}, nil
}

// Close releases the Firestore connection.
func (c *Client) Close() error {
	if c.Firestore != nil {
		return c.Firestore.Close()
	}
	return nil
}
