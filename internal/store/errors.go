package store

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel causes wrapped by [StoreError]. Callers should use [errors.Is].
var (
	// ErrUnauthorized is returned when the store rejects the credentials.
	ErrUnauthorized = errors.New("store credentials rejected")

	// ErrTableNotFound is returned when the named worksheet does not exist.
	ErrTableNotFound = errors.New("table not found")

	// ErrQuotaExceeded is returned when the store throttles the caller.
	ErrQuotaExceeded = errors.New("store quota exceeded")

	// ErrTimeout is returned when a call outlives its deadline.
	ErrTimeout = errors.New("store call timed out")

	// ErrUnavailable is returned for network failures and server-side errors.
	ErrUnavailable = errors.New("store unavailable")

	// ErrMalformedResponse is returned when the store answers with a payload
	// that cannot be decoded.
	ErrMalformedResponse = errors.New("malformed store response")

	// ErrRejected is returned when the store refuses a request as invalid.
	ErrRejected = errors.New("store rejected the request")

	// ErrUnsupportedDriver is returned by NewTableStore for unknown drivers.
	ErrUnsupportedDriver = errors.New("unsupported storage driver")
)

// Low-level database operation errors, wrapped into [StoreError] by the SQL
// store.
var (
	ErrBuildingSQLQuery     = errors.New("error building sql query")
	ErrExecutingQuery       = errors.New("error executing sql query")
	ErrBeginningTransaction = errors.New("failed to begin transaction")
	ErrCommitingTransaction = errors.New("failed to commit transaction")
	ErrExecutingStatement   = errors.New("failed to execute statement")
	ErrScanningRows         = errors.New("failed to scan rows")
)

// StoreError is returned by every TableStore method on failure. Any
// StoreError means the operation was not applied.
type StoreError struct {
	// Op is "read" or "write".
	Op string
	// Table is the table the call addressed.
	Table string
	// Err is the underlying cause, usually wrapping one of the sentinels.
	Err error
	// Temporary is set when the same call may succeed later.
	Temporary bool
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s %q: %v", e.Op, e.Table, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Operation names used in StoreError.Op.
const (
	OpRead  = "read"
	OpWrite = "write"
)

// newStoreError wraps err unless it already is a StoreError. Context expiry
// is reported as ErrTimeout.
func newStoreError(op, table string, err error) error {
	if err == nil {
		return nil
	}

	var se *StoreError
	if errors.As(err, &se) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, ErrTimeout) {
		err = fmt.Errorf("%w: %w", ErrTimeout, err)
	}

	return &StoreError{
		Op:        op,
		Table:     table,
		Err:       err,
		Temporary: isTemporary(err),
	}
}

func isTemporary(err error) bool {
	return errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrUnavailable) ||
		errors.Is(err, ErrQuotaExceeded)
}

// IsStoreError reports whether err carries a StoreError.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
