package documents

import (
	"context"

	"github.com/google/uuid"

	"github.com/lucasclyra-cmd/normative/internal/workflow"
	"github.com/lucasclyra-cmd/normative/pkg/identity"
	"github.com/lucasclyra-cmd/normative/pkg/pagination"
	"github.com/lucasclyra-cmd/normative/pkg/storage"
)

// System defines the public contract for document domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Document], error)

	Find(ctx context.Context, id uuid.UUID) (*Document, error)
	Create(ctx context.Context, cmd CreateCommand, actor identity.Actor) (*Document, error)
	Resubmit(ctx context.Context, cmd ResubmitCommand, actor identity.Actor) (*DocumentVersion, error)

	Versions(ctx context.Context, documentID uuid.UUID) ([]DocumentVersion, error)
	FindVersion(ctx context.Context, versionID uuid.UUID) (*DocumentVersion, error)
	Download(ctx context.Context, versionID uuid.UUID) (*DocumentVersion, *storage.DownloadResult, error)

	SkipAI(ctx context.Context, versionID uuid.UUID, actor identity.Actor) (workflow.Status, error)
}
