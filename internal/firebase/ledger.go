package firebase

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"library-lending/internal/ledger"
	"library-lending/internal/models"
)

// checkoutDocID builds the deterministic document id that enforces the
// one-active-checkout-per-(user, book) constraint at the storage level.
func checkoutDocID(userEmail, bookID string) string {
	return userEmail + "#" + bookID
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// RunTransaction runs fn inside a Firestore transaction. Firestore retries
// fn on contention with fresh reads, which serializes concurrent
// transitions touching the same book or user documents. Errors returned
// by fn pass through unchanged; transaction-machinery failures surface as
// *ledger.PersistenceError.
func (c *Client) RunTransaction(ctx context.Context, fn func(tx ledger.Tx) error) error {
	var fnErr error

	err := c.Firestore.RunTransaction(ctx, func(txCtx context.Context, t *firestore.Transaction) error {
		fnErr = fn(&fsTx{client: c, tx: t})
		return fnErr
	})
	if err == nil {
		return nil
	}
	if fnErr != nil && errors.Is(err, fnErr) {
		return fnErr
	}
	return ledger.Persistence("run transaction", err)
}

// fsTx adapts a Firestore transaction to the ledger.Tx contract. Reads
// must precede writes, as documented on the interface.
type fsTx struct {
	client *Client
	tx     *firestore.Transaction
}

func (t *fsTx) Book(id string) (models.Book, error) {
	doc, err := t.tx.Get(t.client.Firestore.Collection(BooksCollection).Doc(id))
	if isNotFound(err) {
		return models.Book{}, ledger.ErrNotFound
	}
	if err != nil {
		return models.Book{}, ledger.Persistence("get book", err)
	}

	var book models.Book
	if err := doc.DataTo(&book); err != nil {
		return models.Book{}, ledger.Persistence("parse book", err)
	}
	book.ID = doc.Ref.ID
	return book, nil
}

func (t *fsTx) PutBook(book models.Book) error {
	ref := t.client.Firestore.Collection(BooksCollection).Doc(book.ID)
	if err := t.tx.Set(ref, book); err != nil {
		return ledger.Persistence("put book", err)
	}
	return nil
}

func (t *fsTx) DeleteBook(id string) error {
	ref := t.client.Firestore.Collection(BooksCollection).Doc(id)
	if err := t.tx.Delete(ref); err != nil {
		return ledger.Persistence("delete book", err)
	}
	return nil
}

func (t *fsTx) Checkout(userEmail, bookID string) (models.Checkout, error) {
	ref := t.client.Firestore.Collection(CheckoutsCollection).Doc(checkoutDocID(userEmail, bookID))
	doc, err := t.tx.Get(ref)
	if isNotFound(err) {
		return models.Checkout{}, ledger.ErrNotFound
	}
	if err != nil {
		return models.Checkout{}, ledger.Persistence("get checkout", err)
	}

	var checkout models.Checkout
	if err := doc.DataTo(&checkout); err != nil {
		return models.Checkout{}, ledger.Persistence("parse checkout", err)
	}
	checkout.ID = doc.Ref.ID
	return checkout, nil
}

func (t *fsTx) PutCheckout(checkout models.Checkout) error {
	id := checkoutDocID(checkout.UserEmail, checkout.BookID)
	checkout.ID = id
	ref := t.client.Firestore.Collection(CheckoutsCollection).Doc(id)
	if err := t.tx.Set(ref, checkout); err != nil {
		return ledger.Persistence("put checkout", err)
	}
	return nil
}

func (t *fsTx) DeleteCheckout(userEmail, bookID string) error {
	ref := t.client.Firestore.Collection(CheckoutsCollection).Doc(checkoutDocID(userEmail, bookID))
	if err := t.tx.Delete(ref); err != nil {
		return ledger.Persistence("delete checkout", err)
	}
	return nil
}

func (t *fsTx) DeleteBookCheckouts(bookID string) error {
	query := t.client.Firestore.Collection(CheckoutsCollection).
		Where("book_id", "==", bookID)

	docs, err := t.tx.Documents(query).GetAll()
	if err != nil {
		return ledger.Persistence("query book checkouts", err)
	}
	for _, doc := range docs {
		if err := t.tx.Delete(doc.Ref); err != nil {
			return ledger.Persistence("delete book checkout", err)
		}
	}
	return nil
}

func (t *fsTx) ActiveLoanCount(userEmail string) (int, error) {
	query := t.client.Firestore.Collection(CheckoutsCollection).
		Where("user_email", "==", userEmail)

	docs, err := t.tx.Documents(query).GetAll()
	if err != nil {
		return 0, ledger.Persistence("count active loans", err)
	}
	return len(docs), nil
}

func (t *fsTx) AppendHistory(history models.History) error {
	ref := t.client.Firestore.Collection(HistoryCollection).Doc(history.ID)
	if err := t.tx.Create(ref, history); err != nil {
		return ledger.Persistence("append history", err)
	}
	return nil
}

// GetBook fetches a book outside any transaction.
func (c *Client) GetBook(ctx context.Context, id string) (models.Book, error) {
	doc, err := c.Firestore.Collection(BooksCollection).Doc(id).Get(ctx)
	if isNotFound(err) {
		return models.Book{}, ledger.ErrNotFound
	}
	if err != nil {
		return models.Book{}, ledger.Persistence("get book", err)
	}

	var book models.Book
	if err := doc.DataTo(&book); err != nil {
		return models.Book{}, ledger.Persistence("parse book", err)
	}
	book.ID = doc.Ref.ID
	return book, nil
}

// ListBooks returns the full catalog ordered by title.
func (c *Client) ListBooks(ctx context.Context) ([]models.Book, error) {
	var books []models.Book

	iter := c.Firestore.Collection(BooksCollection).
		OrderBy("title", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, ledger.Persistence("list books", err)
		}

		var book models.Book
		if err := doc.DataTo(&book); err != nil {
			return nil, ledger.Persistence("parse book", err)
		}
		book.ID = doc.Ref.ID
		books = append(books, book)
	}

	return books, nil
}

// CheckoutsByUser returns a user's active checkouts.
func (c *Client) CheckoutsByUser(ctx context.Context, userEmail string) ([]models.Checkout, error) {
	var checkouts []models.Checkout

	iter := c.Firestore.Collection(CheckoutsCollection).
		Where("user_email", "==", userEmail).
		Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, ledger.Persistence("list checkouts", err)
		}

		var checkout models.Checkout
		if err := doc.DataTo(&checkout); err != nil {
			return nil, ledger.Persistence("parse checkout", err)
		}
		checkout.ID = doc.Ref.ID
		checkouts = append(checkouts, checkout)
	}

	return checkouts, nil
}

// HistoryByUser returns a user's completed loans, newest first.
func (c *Client) HistoryByUser(ctx context.Context, userEmail string) ([]models.History, error) {
	var records []models.History

	iter := c.Firestore.Collection(HistoryCollection).
		Where("user_email", "==", userEmail).
		OrderBy("returned_date", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, ledger.Persistence("list history", err)
		}

		var record models.History
		if err := doc.DataTo(&record); err != nil {
			return nil, ledger.Persistence("parse history", err)
		}
		record.ID = doc.Ref.ID
		records = append(records, record)
	}

	return records, nil
}
