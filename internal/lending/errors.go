package lending

import "errors"

// Business-rule failures of the lending engine. All are recoverable by the
// caller and map to distinct HTTP responses; none are retried or logged
// here.
var (
	ErrBookNotFound      = errors.New("book not found")
	ErrBookUnavailable   = errors.New("no copies available")
	ErrAlreadyCheckedOut = errors.New("book already checked out by user")
	ErrLoanLimitExceeded = errors.New("maximum concurrent loans reached")
	ErrNoActiveLoan      = errors.New("no active loan for user and book")
	ErrLoanOverdue       = errors.New("loan is overdue and cannot be renewed")
	ErrNoCopiesToRemove  = errors.New("no available copies to remove")
	ErrInvalidBook       = errors.New("invalid book data")
)
