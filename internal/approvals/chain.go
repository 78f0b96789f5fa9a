// Package approvals implements the approval chain resolver for Normative.
// A chain fixes its approver entries at creation; afterwards only each
// entry's action is mutated, exactly once. Chain status is never stored as
// independent state: it is always derived from the entries, so the ledger
// and the outcome cannot disagree.
package approvals

import (
	"time"

	"github.com/google/uuid"

	"github.com/lucasclyra-cmd/normative/pkg/identity"
)

// ChainType distinguishes why a chain exists.
type ChainType string

const (
	// ChainTypeApproval is the standard first approval of a version.
	ChainTypeApproval ChainType = "A"
	// ChainTypeReapproval re-runs approval after a material change.
	ChainTypeReapproval ChainType = "Ra"
	// ChainTypeCancellation approves taking a document out of circulation.
	ChainTypeCancellation ChainType = "C"
)

var chainTypes = map[ChainType]bool{
	ChainTypeApproval:     true,
	ChainTypeReapproval:   true,
	ChainTypeCancellation: true,
}

// Valid reports whether t is a known chain type.
func (t ChainType) Valid() bool {
	return chainTypes[t]
}

// ChainStatus is the derived outcome of a chain.
type ChainStatus string

const (
	ChainPending  ChainStatus = "pending"
	ChainApproved ChainStatus = "approved"
	ChainRejected ChainStatus = "rejected"
)

// Terminal reports whether the chain has resolved.
func (s ChainStatus) Terminal() bool {
	return s == ChainApproved || s == ChainRejected
}

// Action is an approver's recorded decision.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// ApproverEntry is one approver's slot on a chain. Action, Comments, and
// ActedAt are written exactly once; everything else is fixed at creation.
// Optional entries (IsRequired false) are advisory and never affect the
// chain outcome.
type ApproverEntry struct {
	ID              uuid.UUID        `json:"id"`
	ChainID         uuid.UUID        `json:"chain_id"`
	ApproverName    string           `json:"approver_name"`
	ApproverRole    string           `json:"approver_role"`
	ApproverProfile identity.Profile `json:"approver_profile"`
	IsRequired      bool             `json:"is_required"`
	AIRecommended   bool             `json:"ai_recommended"`
	Order           int              `json:"order"`
	Action          *Action          `json:"action"`
	Comments        *string          `json:"comments,omitempty"`
	ActedAt         *time.Time       `json:"acted_at,omitempty"`
}

// ApprovalChain owns the approver entries for one document version.
// Status carries the derived outcome; CompletedAt is set on resolution.
type ApprovalChain struct {
	ID               uuid.UUID       `json:"id"`
	VersionID        uuid.UUID       `json:"version_id"`
	ChainType        ChainType       `json:"chain_type"`
	Status           ChainStatus     `json:"status"`
	RequiresTraining *bool           `json:"requires_training"`
	CreatedAt        time.Time       `json:"created_at"`
	CompletedAt      *time.Time      `json:"completed_at,omitempty"`
	Entries          []ApproverEntry `json:"entries"`
}

// Active reports whether the chain is still collecting decisions.
func (c *ApprovalChain) Active() bool {
	return !c.Status.Terminal()
}

// DeriveStatus computes the chain outcome from its entries. A single
// rejection by any required approver resolves the chain rejected no matter
// what the other entries hold; the chain is approved only once every
// required approver has approved. Optional entries are ignored entirely.
func DeriveStatus(entries []ApproverEntry) ChainStatus {
	required := 0
	approvals := 0

	for _, e := range entries {
		if !e.IsRequired {
			continue
		}
		required++

		if e.Action == nil {
			continue
		}
		switch *e.Action {
		case ActionReject:
			return ChainRejected
		case ActionApprove:
			approvals++
		}
	}

	if required > 0 && approvals == required {
		return ChainApproved
	}
	return ChainPending
}
