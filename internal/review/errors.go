package review

import (
	"fmt"

	"github.com/lucasclyra-cmd/normative/pkg/faults"
)

// Domain errors for review operations.
var (
	ErrNotFound         = fmt.Errorf("text review not found: %w", faults.ErrNotFound)
	ErrDuplicate        = fmt.Errorf("review iteration already exists: %w", faults.ErrConflict)
	ErrUnresolvedErrors = fmt.Errorf("latest iteration still has spelling errors: %w", faults.ErrIllegalState)
	ErrEmptyText        = fmt.Errorf("review text must not be empty: %w", faults.ErrValidation)
)

// MapHTTPStatus maps review domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	return faults.MapHTTPStatus(err)
}
