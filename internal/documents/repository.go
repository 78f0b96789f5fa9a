package documents

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/lucasclyra-cmd/normative/internal/workflow"
	"github.com/lucasclyra-cmd/normative/pkg/identity"
	"github.com/lucasclyra-cmd/normative/pkg/pagination"
	"github.com/lucasclyra-cmd/normative/pkg/query"
	"github.com/lucasclyra-cmd/normative/pkg/repository"
	"github.com/lucasclyra-cmd/normative/pkg/storage"
)

type repo struct {
	db         *sql.DB
	storage    storage.System
	wf         workflow.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a document repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	wf workflow.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		wf:         wf,
		logger:     logger.With("system", "documents"),
		pagination: pagination,
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxUploadSize)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Document], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Title", "AuthorName")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	docs, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanDocument)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}

	result := pagination.NewPageResult(docs, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Document, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	d, err := repository.QueryOne(ctx, r.db, q, args, scanDocument)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &d, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand, actor identity.Actor) (*Document, error) {
	docID := uuid.New()
	versionID := uuid.New()
	key := buildStorageKey(docID, 1, sanitizeFilename(cmd.Filename))

	if err := r.storage.Upload(ctx, key, bytes.NewReader(cmd.Data), cmd.ContentType); err != nil {
		return nil, fmt.Errorf("upload version blob: %w", err)
	}

	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			`INSERT INTO documents(id, title, document_type, author_name, current_version)
			VALUES ($1, $2, $3, $4, 1)`,
			docID, cmd.Title, cmd.DocumentType, actor.Name,
		); err != nil {
			return struct{}{}, err
		}

		if err := insertVersion(ctx, tx, versionID, docID, 1, key, cmd.Data, cmd.Filename, cmd.ContentType, cmd.PageCount, cmd.ExtractedText); err != nil {
			return struct{}{}, err
		}

		return struct{}{}, r.wf.RecordSubmission(ctx, tx, versionID, workflow.EventSubmit, actor)
	})

	if err != nil {
		if delErr := r.storage.Delete(ctx, key); delErr != nil {
			r.logger.Warn("compensating blob delete failed", "key", key, "error", delErr)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("document created", "id", docID, "title", cmd.Title, "author", actor.Name)
	return r.Find(ctx, docID)
}

func (r *repo) Resubmit(ctx context.Context, cmd ResubmitCommand, actor identity.Actor) (*DocumentVersion, error) {
	doc, err := r.Find(ctx, cmd.DocumentID)
	if err != nil {
		return nil, err
	}

	release := r.wf.Lock(doc.CurrentVersionID)
	defer release()

	nextNumber := doc.CurrentVersion + 1
	versionID := uuid.New()
	key := buildStorageKey(doc.ID, nextNumber, sanitizeFilename(cmd.Filename))

	if err := r.storage.Upload(ctx, key, bytes.NewReader(cmd.Data), cmd.ContentType); err != nil {
		return nil, fmt.Errorf("upload version blob: %w", err)
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"UPDATE document_versions SET archived_at = now(), updated_at = now() WHERE id = $1 AND archived_at IS NULL",
			doc.CurrentVersionID,
		); err != nil {
			return struct{}{}, err
		}

		if err := insertVersion(ctx, tx, versionID, doc.ID, nextNumber, key, cmd.Data, cmd.Filename, cmd.ContentType, cmd.PageCount, cmd.ExtractedText); err != nil {
			return struct{}{}, err
		}

		if err := repository.ExecExpectOne(
			ctx, tx,
			"UPDATE documents SET current_version = $1, updated_at = now() WHERE id = $2",
			nextNumber, doc.ID,
		); err != nil {
			return struct{}{}, err
		}

		return struct{}{}, r.wf.RecordSubmission(ctx, tx, versionID, workflow.EventResubmit, actor)
	})

	if err != nil {
		if delErr := r.storage.Delete(ctx, key); delErr != nil {
			r.logger.Warn("compensating blob delete failed", "key", key, "error", delErr)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info(
		"document resubmitted",
		"document_id", doc.ID,
		"version", nextNumber,
		"archived_version_id", doc.CurrentVersionID,
	)
	return r.FindVersion(ctx, versionID)
}

func (r *repo) Versions(ctx context.Context, documentID uuid.UUID) ([]DocumentVersion, error) {
	q, args := query.
		NewBuilder(versionProjection, versionSort).
		WhereEquals("DocumentID", documentID).
		Build()

	versions, err := repository.QueryMany(ctx, r.db, q, args, scanVersion)
	if err != nil {
		return nil, fmt.Errorf("query versions: %w", err)
	}
	return versions, nil
}

func (r *repo) FindVersion(ctx context.Context, versionID uuid.UUID) (*DocumentVersion, error) {
	q, args := query.NewBuilder(versionProjection).BuildSingle("ID", versionID)

	v, err := repository.QueryOne(ctx, r.db, q, args, scanVersion)
	if err != nil {
		return nil, repository.MapError(err, ErrVersionNotFound, ErrDuplicate)
	}
	return &v, nil
}

func (r *repo) Download(ctx context.Context, versionID uuid.UUID) (*DocumentVersion, *storage.DownloadResult, error) {
	v, err := r.FindVersion(ctx, versionID)
	if err != nil {
		return nil, nil, err
	}

	result, err := r.storage.Download(ctx, v.StorageKey)
	if err != nil {
		return nil, nil, fmt.Errorf("download version blob: %w", err)
	}

	return v, result, nil
}

// SkipAI bypasses the AI gate for a rejected version and moves it into human
// review. The transition is recorded as an explicit override on the activity
// trail.
func (r *repo) SkipAI(ctx context.Context, versionID uuid.UUID, actor identity.Actor) (workflow.Status, error) {
	detail := "ai analysis gate bypassed by author"
	return r.wf.Apply(ctx, workflow.ApplyCommand{
		VersionID: versionID,
		Event:     workflow.EventSkipAI,
		Actor:     actor,
		Override:  true,
		Detail:    &detail,
	})
}

func insertVersion(
	ctx context.Context,
	tx *sql.Tx,
	id, documentID uuid.UUID,
	number int,
	key string,
	data []byte,
	filename, contentType string,
	pageCount *int,
	extractedText *string,
) error {
	return repository.ExecExpectOne(
		ctx, tx,
		`INSERT INTO document_versions(id, document_id, version_number, filename, content_type, size_bytes, page_count, storage_key, extracted_text, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		id,
		documentID,
		number,
		filename,
		contentType,
		int64(len(data)),
		pageCount,
		key,
		extractedText,
		string(workflow.StatusDraft),
	)
}

func buildStorageKey(documentID uuid.UUID, version int, filename string) string {
	return fmt.Sprintf("documents/%s/v%d/%s", documentID, version, filename)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == "" {
		name = "document"
	}
	return url.PathEscape(name)
}
