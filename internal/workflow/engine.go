package workflow

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/anggasct/fluo"
	"github.com/google/uuid"

	"github.com/lucasclyra-cmd/normative/pkg/faults"
	"github.com/lucasclyra-cmd/normative/pkg/identity"
	"github.com/lucasclyra-cmd/normative/pkg/polling"
	"github.com/lucasclyra-cmd/normative/pkg/query"
	"github.com/lucasclyra-cmd/normative/pkg/repository"
)

type engine struct {
	db     *sql.DB
	logger *slog.Logger
	def    fluo.MachineDefinition
	locks  *versionLocks
	poll   time.Duration
}

// New creates a workflow engine implementing the System interface.
// pollInterval governs how often Watch re-reads a processing version.
func New(db *sql.DB, logger *slog.Logger, pollInterval time.Duration) System {
	return &engine{
		db:     db,
		logger: logger.With("system", "workflow"),
		def:    newDefinition(),
		locks:  newVersionLocks(),
		poll:   pollInterval,
	}
}

func (e *engine) Handler() *Handler {
	return NewHandler(e, e.logger)
}

func (e *engine) Lock(versionID uuid.UUID) func() {
	return e.locks.Acquire(versionID)
}

func (e *engine) Apply(ctx context.Context, cmd ApplyCommand) (Status, error) {
	release := e.locks.Acquire(cmd.VersionID)
	defer release()

	return repository.WithTx(ctx, e.db, func(tx *sql.Tx) (Status, error) {
		return e.ApplyInTx(ctx, tx, cmd)
	})
}

// ApplyInTx validates and records a transition inside the caller's
// transaction. The caller must hold the version lock.
func (e *engine) ApplyInTx(ctx context.Context, tx *sql.Tx, cmd ApplyCommand) (Status, error) {
	current, err := versionStatus(ctx, tx, cmd.VersionID, true)
	if err != nil {
		return "", err
	}

	next, err := transition(e.def, current, cmd.Event, cmd.Data)
	if err != nil {
		return "", err
	}

	if err := repository.ExecExpectOne(
		ctx, tx,
		"UPDATE document_versions SET status = $1, updated_at = now() WHERE id = $2",
		string(next), cmd.VersionID,
	); err != nil {
		return "", fmt.Errorf("update version status: %w", err)
	}

	if err := repository.ExecExpectOne(
		ctx, tx,
		`INSERT INTO workflow_activity(id, version_id, event, from_status, to_status, actor_name, actor_profile, override, detail)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		uuid.New(),
		cmd.VersionID,
		string(cmd.Event),
		string(current),
		string(next),
		cmd.Actor.Name,
		string(cmd.Actor.Profile),
		cmd.Override,
		cmd.Detail,
	); err != nil {
		return "", fmt.Errorf("append activity: %w", err)
	}

	e.logger.Info(
		"transition applied",
		"version_id", cmd.VersionID,
		"event", cmd.Event,
		"from", current,
		"to", next,
		"override", cmd.Override,
	)

	return next, nil
}

// RecordSubmission appends a submit or resubmit entry to the activity trail
// for a freshly created version. The version starts in draft, so no
// transition is validated.
func (e *engine) RecordSubmission(ctx context.Context, tx *sql.Tx, versionID uuid.UUID, event Event, actor identity.Actor) error {
	if event != EventSubmit && event != EventResubmit {
		return faults.Validationf("event %q is not a submission event", event)
	}

	if err := repository.ExecExpectOne(
		ctx, tx,
		`INSERT INTO workflow_activity(id, version_id, event, from_status, to_status, actor_name, actor_profile, override)
		VALUES ($1, $2, $3, $4, $5, $6, $7, false)`,
		uuid.New(),
		versionID,
		string(event),
		string(StatusDraft),
		string(StatusDraft),
		actor.Name,
		string(actor.Profile),
	); err != nil {
		return fmt.Errorf("append submission activity: %w", err)
	}

	return nil
}

func (e *engine) Current(ctx context.Context, versionID uuid.UUID) (Status, error) {
	return versionStatus(ctx, e.db, versionID, false)
}

// Watch blocks until the version leaves the processing set, polling on the
// configured interval. Cancel the context to stop watching early.
func (e *engine) Watch(ctx context.Context, versionID uuid.UUID) (Status, error) {
	return polling.Wait(ctx, e.poll, func(ctx context.Context) (Status, bool, error) {
		status, err := e.Current(ctx, versionID)
		if err != nil {
			return "", false, err
		}
		return status, !status.IsProcessing(), nil
	})
}

func (e *engine) Timeline(ctx context.Context, versionID uuid.UUID) ([]ActivityEntry, error) {
	q, args := query.
		NewBuilder(activityProjection, activitySort).
		WhereEquals("VersionID", versionID).
		Build()

	entries, err := repository.QueryMany(ctx, e.db, q, args, scanActivity)
	if err != nil {
		return nil, fmt.Errorf("query timeline: %w", err)
	}
	return entries, nil
}

// versionStatus reads the current status for a version. forUpdate takes a row
// lock so concurrent transactions on the same version serialize at the
// database even without the in-process lock.
func versionStatus(ctx context.Context, q repository.Querier, versionID uuid.UUID, forUpdate bool) (Status, error) {
	stmt := "SELECT status FROM document_versions WHERE id = $1"
	if forUpdate {
		stmt += " FOR UPDATE"
	}

	status, err := repository.QueryOne(ctx, q, stmt, []any{versionID},
		func(s repository.Scanner) (Status, error) {
			var v Status
			err := s.Scan(&v)
			return v, err
		})
	if err != nil {
		return "", repository.MapError(err, ErrVersionNotFound, ErrVersionConflict)
	}
	return status, nil
}
