package formatting

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lucasclyra-cmd/normative/internal/services"
	"github.com/lucasclyra-cmd/normative/internal/workflow"
	"github.com/lucasclyra-cmd/normative/pkg/identity"
	"github.com/lucasclyra-cmd/normative/pkg/query"
	"github.com/lucasclyra-cmd/normative/pkg/repository"
)

type repo struct {
	db        *sql.DB
	wf        workflow.System
	formatter services.Formatter
	logger    *slog.Logger
	base      context.Context
}

// New creates a formatting repository implementing the System interface.
// base is the service lifecycle context for the background runs.
func New(
	db *sql.DB,
	wf workflow.System,
	registry *services.Registry,
	logger *slog.Logger,
	base context.Context,
) System {
	return &repo{
		db:        db,
		wf:        wf,
		formatter: registry.Formatter,
		logger:    logger.With("system", "formatting"),
		base:      base,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

// Request moves the version into formatting and triggers the run in the
// background. Retrying after formatting_failed re-runs the same operation.
func (r *repo) Request(ctx context.Context, versionID uuid.UUID, actor identity.Actor) (workflow.Status, error) {
	status, err := r.wf.Apply(ctx, workflow.ApplyCommand{
		VersionID: versionID,
		Event:     workflow.EventFormatRequested,
		Actor:     actor,
	})
	if err != nil {
		return "", err
	}

	go r.run(versionID, actor)

	return status, nil
}

func (r *repo) run(versionID uuid.UUID, actor identity.Actor) {
	ctx := r.base

	result, err := r.formatter.Format(ctx, versionID)
	if err != nil {
		r.fail(ctx, versionID, actor, err)
		return
	}

	if err := r.complete(ctx, versionID, actor, result); err != nil {
		r.fail(ctx, versionID, actor, err)
		return
	}

	r.logger.Info("formatting completed", "version_id", versionID, "docx", result.DocxPath)
}

func (r *repo) complete(
	ctx context.Context,
	versionID uuid.UUID,
	actor identity.Actor,
	result *services.FormatResult,
) error {
	release := r.wf.Lock(versionID)
	defer release()

	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"INSERT INTO format_records(id, version_id, docx_path, pdf_path) VALUES ($1, $2, $3, $4)",
			uuid.New(), versionID, result.DocxPath, result.PdfPath,
		); err != nil {
			return struct{}{}, err
		}

		_, err := r.wf.ApplyInTx(ctx, tx, workflow.ApplyCommand{
			VersionID: versionID,
			Event:     workflow.EventFormatCompleted,
			Actor:     actor,
		})
		return struct{}{}, err
	})
	return err
}

// fail moves the version to formatting_failed so a retry stays possible.
func (r *repo) fail(ctx context.Context, versionID uuid.UUID, actor identity.Actor, cause error) {
	r.logger.Error("formatting run failed", "version_id", versionID, "error", cause)

	if _, err := r.wf.Apply(ctx, workflow.ApplyCommand{
		VersionID: versionID,
		Event:     workflow.EventFormatError,
		Actor:     actor,
	}); err != nil {
		r.logger.Error("failure transition not applied", "version_id", versionID, "error", err)
	}
}

// Publish moves a formatted version to published, the terminal state.
func (r *repo) Publish(ctx context.Context, versionID uuid.UUID, actor identity.Actor) (workflow.Status, error) {
	return r.wf.Apply(ctx, workflow.ApplyCommand{
		VersionID: versionID,
		Event:     workflow.EventPublish,
		Actor:     actor,
	})
}

func (r *repo) Latest(ctx context.Context, versionID uuid.UUID) (*FormatRecord, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("VersionID", versionID).
		BuildSingleOrNull()

	record, err := repository.QueryOne(ctx, r.db, q, args, scanRecord)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &record, nil
}
