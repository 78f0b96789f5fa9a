package approvals

import (
	"context"

	"github.com/google/uuid"

	"github.com/lucasclyra-cmd/normative/pkg/identity"
)

// ApproverSpec describes one approver slot when creating a chain.
type ApproverSpec struct {
	Name       string           `json:"name"`
	Role       string           `json:"role"`
	Profile    identity.Profile `json:"profile"`
	IsRequired bool             `json:"is_required"`
	Order      int              `json:"order"`
}

// CreateChainCommand carries a chain creation request. When UseDefaults is
// set, template approvers scoped to the version's document type are merged
// in ahead of the explicit list. A safety-recommended optional entry is
// seeded automatically when the latest analysis flagged safety involvement.
type CreateChainCommand struct {
	VersionID   uuid.UUID
	ChainType   ChainType
	Approvers   []ApproverSpec
	UseDefaults bool
}

// RecordActionCommand carries one approver decision.
type RecordActionCommand struct {
	ChainID  uuid.UUID
	EntryID  uuid.UUID
	Action   Action
	Comments *string
}

// System defines the public contract for approval chain operations.
type System interface {
	Handler() *Handler

	CreateChain(ctx context.Context, cmd CreateChainCommand, actor identity.Actor) (*ApprovalChain, error)
	RecordAction(ctx context.Context, cmd RecordActionCommand, actor identity.Actor) (*ApprovalChain, error)
	SetTraining(ctx context.Context, chainID uuid.UUID, required bool) (*ApprovalChain, error)

	Find(ctx context.Context, chainID uuid.UUID) (*ApprovalChain, error)
	ActiveForVersion(ctx context.Context, versionID uuid.UUID) (*ApprovalChain, error)
	HistoryForVersion(ctx context.Context, versionID uuid.UUID) ([]ApprovalChain, error)

	ListDefaults(ctx context.Context, documentType *string) ([]DefaultApprover, error)
	CreateDefault(ctx context.Context, cmd DefaultApproverCommand) (*DefaultApprover, error)
	UpdateDefault(ctx context.Context, id uuid.UUID, cmd DefaultApproverCommand) (*DefaultApprover, error)
	DeleteDefault(ctx context.Context, id uuid.UUID) error
}
