package menus

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	// ErrNotFound means the row does not exist or is not owned by the caller
	ErrNotFound = errors.New("not found")
	// ErrInvalidPrice is returned for a price outside [0, MaxPrice]
	ErrInvalidPrice = errors.New("price out of range")
	// ErrInvalidInput is returned when a value does not fit its column
	ErrInvalidInput = errors.New("value too long or out of range")
)

// PostgreSQL SQLSTATEs mapped to domain errors
const (
	foreignKeyViolation       = "23503"
	stringDataRightTruncation = "22001"
	numericValueOutOfRange    = "22003"
)

// classify maps constraint and data errors from a write to domain errors and
// wraps anything else with op
func classify(err error, op string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case foreignKeyViolation:
			return ErrNotFound
		case stringDataRightTruncation, numericValueOutOfRange:
			return ErrInvalidInput
		}
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
