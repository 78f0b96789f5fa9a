package analysis

import (
	"context"

	"github.com/google/uuid"

	"github.com/lucasclyra-cmd/normative/internal/workflow"
	"github.com/lucasclyra-cmd/normative/pkg/identity"
)

// System defines the public contract for analysis operations. Request only
// triggers the run and returns once the version has entered analyzing;
// completion is observed by watching the version status.
type System interface {
	Handler() *Handler

	Request(ctx context.Context, versionID uuid.UUID, actor identity.Actor) (workflow.Status, error)
	Latest(ctx context.Context, versionID uuid.UUID) (*AIAnalysis, error)
	History(ctx context.Context, versionID uuid.UUID) ([]AIAnalysis, error)
}
