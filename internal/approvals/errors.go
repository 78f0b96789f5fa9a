package approvals

import (
	"fmt"

	"github.com/lucasclyra-cmd/normative/pkg/faults"
)

// Domain errors for approval chain operations.
var (
	ErrChainNotFound    = fmt.Errorf("approval chain not found: %w", faults.ErrNotFound)
	ErrEntryNotFound    = fmt.Errorf("approver entry not found: %w", faults.ErrNotFound)
	ErrDefaultNotFound  = fmt.Errorf("default approver not found: %w", faults.ErrNotFound)
	ErrActiveChain      = fmt.Errorf("version already has an active approval chain: %w", faults.ErrConflict)
	ErrDuplicate        = fmt.Errorf("approval chain already exists: %w", faults.ErrConflict)
	ErrAlreadyActed     = fmt.Errorf("approver entry already has a recorded action: %w", faults.ErrIllegalState)
	ErrChainResolved    = fmt.Errorf("approval chain is already resolved: %w", faults.ErrIllegalState)
	ErrEmptyApprovers   = fmt.Errorf("approval chain requires at least one approver: %w", faults.ErrValidation)
	ErrNoRequired       = fmt.Errorf("approval chain requires at least one required approver: %w", faults.ErrValidation)
	ErrDuplicateEntry   = fmt.Errorf("duplicate approver name and role: %w", faults.ErrValidation)
	ErrRejectionComment = fmt.Errorf("rejection requires a comment: %w", faults.ErrValidation)
)

// MapHTTPStatus maps approval domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	return faults.MapHTTPStatus(err)
}
