package workflow

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/lucasclyra-cmd/normative/pkg/identity"
)

// ApplyCommand carries one transition request for a document version.
// Data is matched by the transition guards (AnalysisOutcome, ChainOutcome).
// Override marks deliberate bypass transitions on the activity trail.
type ApplyCommand struct {
	VersionID uuid.UUID
	Event     Event
	Data      any
	Actor     identity.Actor
	Override  bool
	Detail    *string
}

// System defines the public contract for workflow operations. All mutations
// on a version serialize behind a per-version lock; Apply manages the lock
// and transaction itself, while Lock plus ApplyInTx let another domain fold
// a transition into its own transaction.
type System interface {
	Handler() *Handler

	Apply(ctx context.Context, cmd ApplyCommand) (Status, error)
	ApplyInTx(ctx context.Context, tx *sql.Tx, cmd ApplyCommand) (Status, error)
	RecordSubmission(ctx context.Context, tx *sql.Tx, versionID uuid.UUID, event Event, actor identity.Actor) error
	Lock(versionID uuid.UUID) func()

	Current(ctx context.Context, versionID uuid.UUID) (Status, error)
	Watch(ctx context.Context, versionID uuid.UUID) (Status, error)
	Timeline(ctx context.Context, versionID uuid.UUID) ([]ActivityEntry, error)
}
