package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-lending/internal/ledger"
	"library-lending/internal/memory"
	"library-lending/internal/models"
)

func Test_RunTransaction_CommitsStagedWrites(t *testing.T) {
	store := memory.NewStore()

	err := store.RunTransaction(context.Background(), func(tx ledger.Tx) error {
		return tx.PutBook(models.Book{ID: "b1", Title: "Committed", CopiesTotal: 1, CopiesAvailable: 1})
	})

	require.NoError(t, err)
	got, err := store.GetBook(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, "Committed", got.Title)
}

func Test_RunTransaction_DiscardsWrites_WhenFnFails(t *testing.T) {
	store := memory.NewStore()
	store.SeedBook(models.Book{ID: "b1", Title: "Original", CopiesTotal: 2, CopiesAvailable: 2})
	boom := errors.New("boom")

	err := store.RunTransaction(context.Background(), func(tx ledger.Tx) error {
		book, err := tx.Book("b1")
		if err != nil {
			return err
		}
		book.CopiesAvailable = 0
		if err := tx.PutBook(book); err != nil {
			return err
		}
		if err := tx.PutCheckout(models.Checkout{UserEmail: "u1@example.com", BookID: "b1"}); err != nil {
			return err
		}
		return boom
	})

	require.ErrorIs(t, err, boom)

	// Nothing staged inside the failed transaction is visible.
	got, err := store.GetBook(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.CopiesAvailable)

	checkouts, err := store.CheckoutsByUser(context.Background(), "u1@example.com")
	require.NoError(t, err)
	assert.Empty(t, checkouts)
}

func Test_TxBook_Fails_WhenAbsent(t *testing.T) {
	store := memory.NewStore()

	err := store.RunTransaction(context.Background(), func(tx ledger.Tx) error {
		_, err := tx.Book("missing")
		return err
	})

	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func Test_TxCheckout_Fails_WhenAbsent(t *testing.T) {
	store := memory.NewStore()

	err := store.RunTransaction(context.Background(), func(tx ledger.Tx) error {
		_, err := tx.Checkout("u1@example.com", "b1")
		return err
	})

	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func Test_ActiveLoanCount_CountsOnlyTheGivenUser(t *testing.T) {
	store := memory.NewStore()

	err := store.RunTransaction(context.Background(), func(tx ledger.Tx) error {
		for _, c := range []models.Checkout{
			{UserEmail: "u1@example.com", BookID: "b1"},
			{UserEmail: "u1@example.com", BookID: "b2"},
			{UserEmail: "u2@example.com", BookID: "b1"},
		} {
			if err := tx.PutCheckout(c); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	var count int
	err = store.RunTransaction(context.Background(), func(tx ledger.Tx) error {
		var err error
		count, err = tx.ActiveLoanCount("u1@example.com")
		return err
	})

	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func Test_DeleteBookCheckouts_RemovesEveryLoanOfTheBook(t *testing.T) {
	store := memory.NewStore()

	err := store.RunTransaction(context.Background(), func(tx ledger.Tx) error {
		for _, c := range []models.Checkout{
			{UserEmail: "u1@example.com", BookID: "b1"},
			{UserEmail: "u2@example.com", BookID: "b1"},
			{UserEmail: "u1@example.com", BookID: "b2"},
		} {
			if err := tx.PutCheckout(c); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	err = store.RunTransaction(context.Background(), func(tx ledger.Tx) error {
		return tx.DeleteBookCheckouts("b1")
	})
	require.NoError(t, err)

	u1, err := store.CheckoutsByUser(context.Background(), "u1@example.com")
	require.NoError(t, err)
	require.Len(t, u1, 1)
	assert.Equal(t, "b2", u1[0].BookID)

	u2, err := store.CheckoutsByUser(context.Background(), "u2@example.com")
	require.NoError(t, err)
	assert.Empty(t, u2)
}

func Test_AppendHistory_IsVisibleAfterCommit(t *testing.T) {
	store := memory.NewStore()
	returned := time.Date(2026, time.March, 17, 12, 0, 0, 0, time.UTC)

	err := store.RunTransaction(context.Background(), func(tx ledger.Tx) error {
		return tx.AppendHistory(models.History{
			ID:           "h1",
			UserEmail:    "u1@example.com",
			BookID:       "b1",
			Title:        "Returned Book",
			ReturnedDate: returned,
		})
	})
	require.NoError(t, err)

	history, err := store.HistoryByUser(context.Background(), "u1@example.com")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Returned Book", history[0].Title)
	assert.Equal(t, returned, history[0].ReturnedDate)
}

func Test_CreateReview_Fails_OnSecondReviewForSamePair(t *testing.T) {
	store := memory.NewStore()
	review := models.Review{UserEmail: "u1@example.com", BookID: "b1", Rating: 4}

	require.NoError(t, store.CreateReview(context.Background(), review))

	err := store.CreateReview(context.Background(), review)

	assert.ErrorIs(t, err, ledger.ErrAlreadyExists)
}
