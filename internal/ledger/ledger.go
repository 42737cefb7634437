// Package ledger defines the persistence contracts for the lending state:
// books, active checkouts and loan history. Two implementations exist,
// internal/firebase (Firestore) and internal/memory (tests, local dev).
package ledger

import (
	"context"
	"errors"
	"fmt"

	"library-lending/internal/models"
)

// ErrNotFound is returned by lookups for records that do not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists is returned when creating a record whose key is taken,
// e.g. a second active checkout for the same (user, book) pair.
var ErrAlreadyExists = errors.New("record already exists")

// PersistenceError wraps storage-level failures (unavailable backend,
// aborted transaction, corrupt document) so callers can distinguish them
// from business-rule failures.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("ledger: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Persistence wraps err as a PersistenceError for the given operation.
func Persistence(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}

// Tx is the view of the ledger inside one atomic transaction. All reads
// must happen before the first write (a Firestore transaction constraint
// the memory implementation mirrors); writes become visible together when
// the transaction commits and not at all when it aborts.
type Tx interface {
	// Book returns the book by id, or ErrNotFound.
	Book(id string) (models.Book, error)
	PutBook(book models.Book) error
	DeleteBook(id string) error

	// Checkout returns the active checkout for the pair, or ErrNotFound.
	Checkout(userEmail, bookID string) (models.Checkout, error)
	// PutCheckout creates or updates the active checkout for its
	// (UserEmail, BookID) key. Creating over an existing key is an update,
	// so callers check existence first when creation must be exclusive.
	PutCheckout(checkout models.Checkout) error
	DeleteCheckout(userEmail, bookID string) error
	// DeleteBookCheckouts removes every active checkout of a book; used
	// when the book itself is deleted from the catalog.
	DeleteBookCheckouts(bookID string) error

	// ActiveLoanCount returns the number of active checkouts held by a
	// user across all books.
	ActiveLoanCount(userEmail string) (int, error)

	// AppendHistory adds an immutable archive record for a completed loan.
	AppendHistory(history models.History) error
}

// Ledger is the store boundary the lending engine runs against.
// RunTransaction executes fn atomically and may invoke it more than once
// on contention, so fn must be side-effect free outside the Tx. An error
// returned by fn aborts the transaction and is returned unchanged.
type Ledger interface {
	RunTransaction(ctx context.Context, fn func(tx Tx) error) error

	GetBook(ctx context.Context, id string) (models.Book, error)
	ListBooks(ctx context.Context) ([]models.Book, error)
	CheckoutsByUser(ctx context.Context, userEmail string) ([]models.Checkout, error)
	HistoryByUser(ctx context.Context, userEmail string) ([]models.History, error)
}
