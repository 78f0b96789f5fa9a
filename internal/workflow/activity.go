package workflow

import (
	"time"

	"github.com/google/uuid"

	"github.com/lucasclyra-cmd/normative/pkg/identity"
)

// ActivityEntry is one row on a version's audit trail. Every transition
// appends exactly one entry; Override marks deliberate bypasses such as
// skip_ai so reviewers can see compliance checks were skipped on purpose.
type ActivityEntry struct {
	ID           uuid.UUID        `json:"id"`
	VersionID    uuid.UUID        `json:"version_id"`
	Event        Event            `json:"event"`
	FromStatus   Status           `json:"from_status"`
	ToStatus     Status           `json:"to_status"`
	ActorName    string           `json:"actor_name"`
	ActorProfile identity.Profile `json:"actor_profile"`
	Override     bool             `json:"override"`
	Detail       *string          `json:"detail,omitempty"`
	OccurredAt   time.Time        `json:"occurred_at"`
}
