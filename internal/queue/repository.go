package queue

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/lucasclyra-cmd/normative/internal/workflow"
	"github.com/lucasclyra-cmd/normative/pkg/query"
	"github.com/lucasclyra-cmd/normative/pkg/repository"
)

// System defines the public contract for queue projections.
type System interface {
	Handler() *Handler

	Pending(ctx context.Context) ([]Item, error)
	Summarize(ctx context.Context) (*Summary, error)
}

type repo struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

// New creates a queue repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "queue"),
		now:    time.Now,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

var itemProjection = query.
	NewProjectionMap("public", "documents", "d").
	Project("id", "DocumentID").
	Project("title", "Title").
	Project("document_type", "DocumentType").
	Project("author_name", "AuthorName").
	Join("public", "document_versions", "v", "INNER JOIN",
		"d.id = v.document_id AND v.version_number = d.current_version").
	Project("id", "VersionID").
	Project("version_number", "VersionNumber").
	Project("status", "Status").
	Project("updated_at", "EnteredAt")

var itemSort = query.SortField{
	Field:      "EnteredAt",
	Descending: false,
}

func scanItem(s repository.Scanner) (Item, error) {
	var i Item
	err := s.Scan(
		&i.DocumentID,
		&i.Title,
		&i.DocumentType,
		&i.AuthorName,
		&i.VersionID,
		&i.VersionNumber,
		&i.Status,
		&i.EnteredAt,
	)
	return i, err
}

// Pending returns every current version still owing progress, oldest first,
// with its urgency bucket.
func (r *repo) Pending(ctx context.Context) ([]Item, error) {
	statuses := make([]any, len(pendingStatuses))
	for i, s := range pendingStatuses {
		statuses[i] = string(s)
	}

	q, args := query.
		NewBuilder(itemProjection, itemSort).
		WhereIn("Status", statuses).
		Build()

	items, err := repository.QueryMany(ctx, r.db, q, args, scanItem)
	if err != nil {
		return nil, fmt.Errorf("query pending queue: %w", err)
	}

	now := r.now()
	for i := range items {
		items[i].AgeDays = int(now.Sub(items[i].EnteredAt).Hours() / 24)
		items[i].Urgency = Bucket(items[i].EnteredAt, now)
	}
	return items, nil
}

// Summarize aggregates the queue into pending/resolved counts, a per-status
// breakdown, and urgency buckets over the pending items.
func (r *repo) Summarize(ctx context.Context) (*Summary, error) {
	counts, err := repository.QueryMany(ctx, r.db,
		`SELECT v.status, COUNT(*)
		FROM documents d
		INNER JOIN document_versions v ON d.id = v.document_id AND v.version_number = d.current_version
		GROUP BY v.status`,
		nil,
		func(s repository.Scanner) (statusCount, error) {
			var sc statusCount
			err := s.Scan(&sc.status, &sc.count)
			return sc, err
		})
	if err != nil {
		return nil, fmt.Errorf("query status counts: %w", err)
	}

	summary := &Summary{
		ByStatus:  make(map[workflow.Status]int, len(counts)),
		ByUrgency: make(map[Urgency]int, 3),
	}

	pending := make(map[workflow.Status]bool, len(pendingStatuses))
	for _, s := range pendingStatuses {
		pending[s] = true
	}

	for _, sc := range counts {
		summary.ByStatus[sc.status] = sc.count
		if pending[sc.status] {
			summary.Pending += sc.count
		} else {
			summary.Resolved += sc.count
		}
	}

	items, err := r.Pending(ctx)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		summary.ByUrgency[item.Urgency]++
	}

	return summary, nil
}

type statusCount struct {
	status workflow.Status
	count  int
}
