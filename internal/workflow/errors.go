package workflow

import (
	"fmt"

	"github.com/lucasclyra-cmd/normative/pkg/faults"
)

// Domain errors for workflow operations.
var (
	ErrVersionNotFound = fmt.Errorf("document version not found: %w", faults.ErrNotFound)
	ErrVersionConflict = fmt.Errorf("document version already exists: %w", faults.ErrConflict)
)

// MapHTTPStatus maps workflow domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	return faults.MapHTTPStatus(err)
}
