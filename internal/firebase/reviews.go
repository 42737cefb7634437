package firebase

import (
	"context"

	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"library-lending/internal/ledger"
	"library-lending/internal/models"
)

func reviewDocID(userEmail, bookID string) string {
	return userEmail + "#" + bookID
}

// ReviewsByBook returns all reviews of a book.
func (c *Client) ReviewsByBook(ctx context.Context, bookID string) ([]models.Review, error) {
	var reviews []models.Review

	iter := c.Firestore.Collection(ReviewsCollection).
		Where("book_id", "==", bookID).
		Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, ledger.Persistence("list reviews", err)
		}

		var review models.Review
		if err := doc.DataTo(&review); err != nil {
			return nil, ledger.Persistence("parse review", err)
		}
		reviews = append(reviews, review)
	}

	return reviews, nil
}

// HasUserReview reports whether the user already reviewed the book.
func (c *Client) HasUserReview(ctx context.Context, userEmail, bookID string) (bool, error) {
	_, err := c.Firestore.Collection(ReviewsCollection).
		Doc(reviewDocID(userEmail, bookID)).
		Get(ctx)
	if isNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, ledger.Persistence("get review", err)
	}
	return true, nil
}

// CreateReview stores a review under the deterministic (user, book) key,
// so a duplicate fails with ledger.ErrAlreadyExists.
func (c *Client) CreateReview(ctx context.Context, review models.Review) error {
	ref := c.Firestore.Collection(ReviewsCollection).
		Doc(reviewDocID(review.UserEmail, review.BookID))

	_, err := ref.Create(ctx, review)
	if status.Code(err) == codes.AlreadyExists {
		return ledger.ErrAlreadyExists
	}
	if err != nil {
		return ledger.Persistence("create review", err)
	}
	return nil
}
