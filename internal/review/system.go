package review

import (
	"context"

	"github.com/google/uuid"

	"github.com/lucasclyra-cmd/normative/pkg/identity"
)

// SubmitCommand carries one correction pass request. SkipClarity suppresses
// clarity suggestions on the resulting iteration; it never suppresses
// spelling-error blocking.
type SubmitCommand struct {
	VersionID   uuid.UUID
	Text        string
	SkipClarity bool
}

// AcceptCommand closes the cycle once the latest iteration is clean.
// A nil EditedText accepts the AI-corrected text verbatim (user_accepted);
// a non-nil EditedText records the author's final manual text (user_edited).
type AcceptCommand struct {
	VersionID  uuid.UUID
	EditedText *string
}

// System defines the public contract for the text review cycle.
type System interface {
	Handler() *Handler

	Submit(ctx context.Context, cmd SubmitCommand, actor identity.Actor) (*TextReview, error)
	Accept(ctx context.Context, cmd AcceptCommand, actor identity.Actor) (*TextReview, error)
	Latest(ctx context.Context, versionID uuid.UUID) (*TextReview, error)
	Iterations(ctx context.Context, versionID uuid.UUID) ([]TextReview, error)
}
