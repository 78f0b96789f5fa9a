package approvals

import (
	"time"

	"github.com/google/uuid"

	"github.com/lucasclyra-cmd/normative/pkg/identity"
)

// DefaultApprover is a reusable template entry used to pre-populate new
// chains. DocumentType scopes the template to one document type; nil applies
// to every type. Pure configuration, mutated only through admin CRUD.
type DefaultApprover struct {
	ID           uuid.UUID        `json:"id"`
	Name         string           `json:"name"`
	Role         string           `json:"role"`
	Profile      identity.Profile `json:"profile"`
	DocumentType *string          `json:"document_type,omitempty"`
	IsRequired   bool             `json:"is_required"`
	Order        int              `json:"order"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// DefaultApproverCommand carries the data for creating or updating a template.
type DefaultApproverCommand struct {
	Name         string           `json:"name"`
	Role         string           `json:"role"`
	Profile      identity.Profile `json:"profile"`
	DocumentType *string          `json:"document_type,omitempty"`
	IsRequired   bool             `json:"is_required"`
	Order        int              `json:"order"`
}
