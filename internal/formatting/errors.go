package formatting

import (
	"fmt"

	"github.com/lucasclyra-cmd/normative/pkg/faults"
)

// Domain errors for formatting operations.
var (
	ErrNotFound  = fmt.Errorf("format record not found: %w", faults.ErrNotFound)
	ErrDuplicate = fmt.Errorf("format record already exists: %w", faults.ErrConflict)
)

// MapHTTPStatus maps formatting domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	return faults.MapHTTPStatus(err)
}
