// Package memory implements the ledger and the review/message stores in
// process memory. It backs the tests and local development without
// Firestore credentials.
package memory

import (
	"context"
	"sync"
	"time"

	"library-lending/internal/ledger"
	"library-lending/internal/models"
)

// Store holds all lending state in maps guarded by one mutex.
// Transactions take the mutex for their whole duration, so operations are
// fully serialized: a stronger guarantee than the per-book/per-user
// ordering the engine requires.
type Store struct {
	mu sync.RWMutex

	books     map[string]models.Book
	checkouts map[string]models.Checkout // keyed by userEmail + "#" + bookID
	history   []models.History
	reviews   map[string]models.Review // keyed by userEmail + "#" + bookID
	messages  map[string]models.Message
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		books:     make(map[string]models.Book),
		checkouts: make(map[string]models.Checkout),
		reviews:   make(map[string]models.Review),
		messages:  make(map[string]models.Message),
	}
}

func checkoutKey(userEmail, bookID string) string {
	return userEmail + "#" + bookID
}

// RunTransaction executes fn against a staged view of the store. Reads see
// the state as of transaction start; writes are buffered and applied only
// when fn returns nil, mirroring Firestore transaction semantics. An error
// from fn discards every staged write.
func (s *Store) RunTransaction(_ context.Context, fn func(tx ledger.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{store: s}
	if err := fn(tx); err != nil {
		return err
	}

	tx.commit()
	return nil
}

// memTx stages writes until commit. Reads go straight to the store maps,
// which cannot have changed since transaction start because the store
// mutex is held throughout.
type memTx struct {
	store *Store
	ops   []func()
}

func (t *memTx) Book(id string) (models.Book, error) {
	book, ok := t.store.books[id]
	if !ok {
		return models.Book{}, ledger.ErrNotFound
	}
	return book, nil
}

func (t *memTx) PutBook(book models.Book) error {
	t.ops = append(t.ops, func() { t.store.books[book.ID] = book })
	return nil
}

func (t *memTx) DeleteBook(id string) error {
	t.ops = append(t.ops, func() { delete(t.store.books, id) })
	return nil
}

func (t *memTx) Checkout(userEmail, bookID string) (models.Checkout, error) {
	checkout, ok := t.store.checkouts[checkoutKey(userEmail, bookID)]
	if !ok {
		return models.Checkout{}, ledger.ErrNotFound
	}
	return checkout, nil
}

func (t *memTx) PutCheckout(checkout models.Checkout) error {
	key := checkoutKey(checkout.UserEmail, checkout.BookID)
	checkout.ID = key
	t.ops = append(t.ops, func() { t.store.checkouts[key] = checkout })
	return nil
}

func (t *memTx) DeleteCheckout(userEmail, bookID string) error {
	key := checkoutKey(userEmail, bookID)
	t.ops = append(t.ops, func() { delete(t.store.checkouts, key) })
	return nil
}

func (t *memTx) DeleteBookCheckouts(bookID string) error {
	t.ops = append(t.ops, func() {
		for key, checkout := range t.store.checkouts {
			if checkout.BookID == bookID {
				delete(t.store.checkouts, key)
			}
		}
	})
	return nil
}

func (t *memTx) ActiveLoanCount(userEmail string) (int, error) {
	count := 0
	for _, checkout := range t.store.checkouts {
		if checkout.UserEmail == userEmail {
			count++
		}
	}
	return count, nil
}

func (t *memTx) AppendHistory(history models.History) error {
	t.ops = append(t.ops, func() { t.store.history = append(t.store.history, history) })
	return nil
}

func (t *memTx) commit() {
	for _, op := range t.ops {
		op()
	}
}

// GetBook returns the book by id, or ledger.ErrNotFound.
func (s *Store) GetBook(_ context.Context, id string) (models.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	book, ok := s.books[id]
	if !ok {
		return models.Book{}, ledger.ErrNotFound
	}
	return book, nil
}

// ListBooks returns all catalog entries.
func (s *Store) ListBooks(_ context.Context) ([]models.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	books := make([]models.Book, 0, len(s.books))
	for _, book := range s.books {
		books = append(books, book)
	}
	return books, nil
}

// CheckoutsByUser returns the user's active checkouts.
func (s *Store) CheckoutsByUser(_ context.Context, userEmail string) ([]models.Checkout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var checkouts []models.Checkout
	for _, checkout := range s.checkouts {
		if checkout.UserEmail == userEmail {
			checkouts = append(checkouts, checkout)
		}
	}
	return checkouts, nil
}

// HistoryByUser returns the user's completed loans.
func (s *Store) HistoryByUser(_ context.Context, userEmail string) ([]models.History, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []models.History
	for _, record := range s.history {
		if record.UserEmail == userEmail {
			records = append(records, record)
		}
	}
	return records, nil
}

// SeedBook inserts a book directly, bypassing the transaction path. Test
// and seeding helper.
func (s *Store) SeedBook(book models.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if book.CreatedAt.IsZero() {
		book.CreatedAt = time.Now()
	}
	s.books[book.ID] = book
}
