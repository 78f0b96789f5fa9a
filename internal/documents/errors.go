package documents

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/lucasclyra-cmd/normative/pkg/faults"
)

// Domain errors for document operations.
var (
	ErrNotFound        = fmt.Errorf("document not found: %w", faults.ErrNotFound)
	ErrVersionNotFound = fmt.Errorf("document version not found: %w", faults.ErrNotFound)
	ErrDuplicate       = fmt.Errorf("document version already exists: %w", faults.ErrConflict)
	ErrFileTooLarge    = fmt.Errorf("file exceeds maximum upload size: %w", faults.ErrValidation)
	ErrInvalidFile     = fmt.Errorf("invalid file: %w", faults.ErrValidation)
)

// MapHTTPStatus maps document domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return faults.MapHTTPStatus(err)
}
