// Package lending implements the checkout, return, renew and quantity
// transitions over the lending ledger. Every transition runs as a single
// ledger transaction, so the availability counter, the active-checkout set
// and the history archive always change together or not at all.
package lending

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"library-lending/internal/ledger"
	"library-lending/internal/models"
)

const (
	// MaxLoans is the maximum number of simultaneous active loans per user.
	MaxLoans = 5
	// LoanPeriod is how long a fresh or renewed loan runs until due.
	LoanPeriod = 7 * 24 * time.Hour
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Service is the lending consistency engine.
type Service struct {
	ledger     ledger.Ledger
	clock      Clock
	maxLoans   int
	loanPeriod time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces the wall clock, for tests.
func WithClock(clock Clock) Option {
	return func(s *Service) { s.clock = clock }
}

// WithMaxLoans overrides the per-user loan cap.
func WithMaxLoans(n int) Option {
	return func(s *Service) { s.maxLoans = n }
}

// WithLoanPeriod overrides the loan period.
func WithLoanPeriod(d time.Duration) Option {
	return func(s *Service) { s.loanPeriod = d }
}

// NewService creates the engine on top of a ledger.
func NewService(l ledger.Ledger, opts ...Option) *Service {
	s := &Service{
		ledger:     l,
		clock:      systemClock{},
		maxLoans:   MaxLoans,
		loanPeriod: LoanPeriod,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckoutBook lends one copy of a book to a user. Preconditions, checked
// and applied inside one transaction: the book exists, a copy is
// available, the user does not already hold this book, and the user is
// under the loan cap. On success the availability counter and the new
// checkout change atomically and the updated book is returned.
func (s *Service) CheckoutBook(ctx context.Context, userEmail, bookID string) (models.Book, error) {
	var checkedOut models.Book

	err := s.ledger.RunTransaction(ctx, func(tx ledger.Tx) error {
		book, err := tx.Book(bookID)
		if errors.Is(err, ledger.ErrNotFound) {
			return ErrBookNotFound
		}
		if err != nil {
			return err
		}

		if _, err = tx.Checkout(userEmail, bookID); err == nil {
			return ErrAlreadyCheckedOut
		} else if !errors.Is(err, ledger.ErrNotFound) {
			return err
		}

		count, err := tx.ActiveLoanCount(userEmail)
		if err != nil {
			return err
		}
		if count >= s.maxLoans {
			return ErrLoanLimitExceeded
		}

		if !book.IsAvailable() {
			return ErrBookUnavailable
		}

		now := s.clock.Now()
		book.CopiesAvailable--
		book.UpdatedAt = now

		if err = tx.PutBook(book); err != nil {
			return err
		}
		if err = tx.PutCheckout(models.Checkout{
			UserEmail:    userEmail,
			BookID:       bookID,
			CheckoutDate: now,
			DueDate:      now.Add(s.loanPeriod),
		}); err != nil {
			return err
		}

		checkedOut = book
		return nil
	})
	if err != nil {
		return models.Book{}, err
	}

	return checkedOut, nil
}

// ReturnBook completes an active loan: the copy goes back to the catalog,
// the checkout is deleted and exactly one history record is archived, all
// in one transaction. Fails with ErrNoActiveLoan when the user does not
// hold the book.
func (s *Service) ReturnBook(ctx context.Context, userEmail, bookID string) error {
	return s.ledger.RunTransaction(ctx, func(tx ledger.Tx) error {
		checkout, err := tx.Checkout(userEmail, bookID)
		if errors.Is(err, ledger.ErrNotFound) {
			return ErrNoActiveLoan
		}
		if err != nil {
			return err
		}

		book, err := tx.Book(bookID)
		if errors.Is(err, ledger.ErrNotFound) {
			return ErrBookNotFound
		}
		if err != nil {
			return err
		}

		now := s.clock.Now()
		if book.CopiesAvailable < book.CopiesTotal {
			book.CopiesAvailable++
		}
		book.UpdatedAt = now

		if err = tx.PutBook(book); err != nil {
			return err
		}
		if err = tx.DeleteCheckout(userEmail, bookID); err != nil {
			return err
		}

		return tx.AppendHistory(models.History{
			ID:           uuid.NewString(),
			UserEmail:    userEmail,
			BookID:       bookID,
			Title:        book.Title,
			Author:       book.Author,
			Description:  book.Description,
			Img:          book.Img,
			CheckoutDate: checkout.CheckoutDate,
			ReturnedDate: now,
		})
	})
}

// RenewLoan pushes the due date of an active loan to now + loan period.
// An overdue loan cannot be renewed; the user has to return the book.
func (s *Service) RenewLoan(ctx context.Context, userEmail, bookID string) error {
	return s.ledger.RunTransaction(ctx, func(tx ledger.Tx) error {
		checkout, err := tx.Checkout(userEmail, bookID)
		if errors.Is(err, ledger.ErrNotFound) {
			return ErrNoActiveLoan
		}
		if err != nil {
			return err
		}

		now := s.clock.Now()
		if checkout.IsOverdue(now) {
			return ErrLoanOverdue
		}

		checkout.DueDate = now.Add(s.loanPeriod)
		return tx.PutCheckout(checkout)
	})
}

// AdjustQuantity changes both copy counters of a book by delta, modeling
// the library acquiring or retiring copies. Retiring requires that many
// copies to be on the shelf; copies out on loan cannot be removed.
func (s *Service) AdjustQuantity(ctx context.Context, bookID string, delta int) error {
	if delta == 0 {
		return nil
	}

	return s.ledger.RunTransaction(ctx, func(tx ledger.Tx) error {
		book, err := tx.Book(bookID)
		if errors.Is(err, ledger.ErrNotFound) {
			return ErrBookNotFound
		}
		if err != nil {
			return err
		}

		if delta < 0 && book.CopiesAvailable+delta < 0 {
			return ErrNoCopiesToRemove
		}

		book.CopiesTotal += delta
		book.CopiesAvailable += delta
		book.UpdatedAt = s.clock.Now()

		return tx.PutBook(book)
	})
}

// AddBook creates a catalog entry with all copies on the shelf.
func (s *Service) AddBook(ctx context.Context, req models.AddBookRequest) (models.Book, error) {
	if req.Title == "" || req.Author == "" || req.Copies < 0 {
		return models.Book{}, ErrInvalidBook
	}

	now := s.clock.Now()
	book := models.Book{
		ID:              uuid.NewString(),
		Title:           req.Title,
		Author:          req.Author,
		Description:     req.Description,
		Category:        req.Category,
		Img:             req.Img,
		CopiesTotal:     req.Copies,
		CopiesAvailable: req.Copies,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err := s.ledger.RunTransaction(ctx, func(tx ledger.Tx) error {
		return tx.PutBook(book)
	})
	if err != nil {
		return models.Book{}, err
	}

	return book, nil
}

// DeleteBook removes a book and all of its active checkouts in one
// transaction. History records are kept; they are denormalized for
// exactly this case.
func (s *Service) DeleteBook(ctx context.Context, bookID string) error {
	return s.ledger.RunTransaction(ctx, func(tx ledger.Tx) error {
		if _, err := tx.Book(bookID); errors.Is(err, ledger.ErrNotFound) {
			return ErrBookNotFound
		} else if err != nil {
			return err
		}

		if err := tx.DeleteBookCheckouts(bookID); err != nil {
			return err
		}
		return tx.DeleteBook(bookID)
	})
}

// GetBook returns a single catalog entry.
func (s *Service) GetBook(ctx context.Context, bookID string) (models.Book, error) {
	book, err := s.ledger.GetBook(ctx, bookID)
	if errors.Is(err, ledger.ErrNotFound) {
		return models.Book{}, ErrBookNotFound
	}
	return book, err
}

// ListBooks returns the full catalog.
func (s *Service) ListBooks(ctx context.Context) ([]models.Book, error) {
	return s.ledger.ListBooks(ctx)
}

// CurrentLoans projects a user's active checkouts to their books and the
// days left until each due date (negative once overdue).
func (s *Service) CurrentLoans(ctx context.Context, userEmail string) ([]models.CurrentLoan, error) {
	checkouts, err := s.ledger.CheckoutsByUser(ctx, userEmail)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	loans := make([]models.CurrentLoan, 0, len(checkouts))
	for _, checkout := range checkouts {
		book, err := s.ledger.GetBook(ctx, checkout.BookID)
		if errors.Is(err, ledger.ErrNotFound) {
			continue // book deleted from the catalog while on loan
		}
		if err != nil {
			return nil, err
		}
		loans = append(loans, models.CurrentLoan{
			Book:     book,
			DaysLeft: daysLeft(checkout.DueDate, now),
		})
	}

	return loans, nil
}

// CurrentLoansCount returns the number of active loans a user holds.
func (s *Service) CurrentLoansCount(ctx context.Context, userEmail string) (int, error) {
	checkouts, err := s.ledger.CheckoutsByUser(ctx, userEmail)
	if err != nil {
		return 0, err
	}
	return len(checkouts), nil
}

// IsCheckedOutByUser reports whether the user holds an active loan of the
// book.
func (s *Service) IsCheckedOutByUser(ctx context.Context, userEmail, bookID string) (bool, error) {
	checkouts, err := s.ledger.CheckoutsByUser(ctx, userEmail)
	if err != nil {
		return false, err
	}
	for _, checkout := range checkouts {
		if checkout.BookID == bookID {
			return true, nil
		}
	}
	return false, nil
}

// LoanHistory returns a user's completed loans.
func (s *Service) LoanHistory(ctx context.Context, userEmail string) ([]models.History, error) {
	return s.ledger.HistoryByUser(ctx, userEmail)
}

// daysLeft truncates the remaining time until due to whole days.
func daysLeft(due, now time.Time) int {
	return int(due.Sub(now).Hours() / 24)
}
