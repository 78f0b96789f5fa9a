package analysis

import (
	"fmt"

	"github.com/lucasclyra-cmd/normative/pkg/faults"
)

// Domain errors for analysis operations.
var (
	ErrNotFound  = fmt.Errorf("analysis not found: %w", faults.ErrNotFound)
	ErrDuplicate = fmt.Errorf("analysis already exists: %w", faults.ErrConflict)
)

// MapHTTPStatus maps analysis domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	return faults.MapHTTPStatus(err)
}
