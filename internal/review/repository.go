package review

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lucasclyra-cmd/normative/internal/services"
	"github.com/lucasclyra-cmd/normative/internal/workflow"
	"github.com/lucasclyra-cmd/normative/pkg/faults"
	"github.com/lucasclyra-cmd/normative/pkg/identity"
	"github.com/lucasclyra-cmd/normative/pkg/query"
	"github.com/lucasclyra-cmd/normative/pkg/repository"
)

type repo struct {
	db        *sql.DB
	wf        workflow.System
	corrector services.Corrector
	logger    *slog.Logger
}

// New creates a review repository implementing the System interface.
func New(
	db *sql.DB,
	wf workflow.System,
	registry *services.Registry,
	logger *slog.Logger,
) System {
	return &repo{
		db:        db,
		wf:        wf,
		corrector: registry.Corrector,
		logger:    logger.With("system", "review"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

// Submit runs one correction pass and appends the next iteration. Spelling
// errors keep the iteration in needs_review and the loop open; a clean pass
// leaves the workflow untouched until the author accepts.
func (r *repo) Submit(ctx context.Context, cmd SubmitCommand, actor identity.Actor) (*TextReview, error) {
	if cmd.Text == "" {
		return nil, ErrEmptyText
	}

	result, err := r.corrector.Review(ctx, cmd.Text)
	if err != nil {
		return nil, fmt.Errorf("correction pass: %w", err)
	}

	clarity := result.ClaritySuggestions
	if cmd.SkipClarity {
		clarity = nil
	}

	status := StatusClean
	if result.HasSpellingErrors {
		status = StatusNeedsReview
	}

	release := r.wf.Lock(cmd.VersionID)
	defer release()

	if err := r.requireSpellingReview(ctx, cmd.VersionID); err != nil {
		return nil, err
	}

	id, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (uuid.UUID, error) {
		return r.insertIteration(ctx, tx, iterationRow{
			versionID:          cmd.VersionID,
			originalText:       cmd.Text,
			aiCorrectedText:    result.CorrectedText,
			spellingErrors:     result.SpellingErrors,
			claritySuggestions: clarity,
			hasSpellingErrors:  result.HasSpellingErrors,
			status:             status,
		})
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info(
		"review iteration submitted",
		"version_id", cmd.VersionID,
		"status", status,
		"spelling_errors", len(result.SpellingErrors),
		"actor", actor.Name,
	)
	return r.find(ctx, id)
}

// Accept closes the cycle once the latest iteration is clean. It appends the
// final user_accepted or user_edited iteration and resolves the workflow in
// the same transaction.
func (r *repo) Accept(ctx context.Context, cmd AcceptCommand, actor identity.Actor) (*TextReview, error) {
	if cmd.EditedText != nil && *cmd.EditedText == "" {
		return nil, ErrEmptyText
	}

	release := r.wf.Lock(cmd.VersionID)
	defer release()

	latest, err := r.Latest(ctx, cmd.VersionID)
	if err != nil {
		return nil, err
	}
	if err := acceptGate(latest); err != nil {
		return nil, err
	}

	status := StatusUserAccepted
	text := latest.AICorrectedText
	if cmd.EditedText != nil {
		status = StatusUserEdited
		text = *cmd.EditedText
	}

	id, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (uuid.UUID, error) {
		id, err := r.insertIteration(ctx, tx, iterationRow{
			versionID:         cmd.VersionID,
			originalText:      text,
			aiCorrectedText:   text,
			hasSpellingErrors: false,
			status:            status,
		})
		if err != nil {
			return uuid.Nil, err
		}

		_, err = r.wf.ApplyInTx(ctx, tx, workflow.ApplyCommand{
			VersionID: cmd.VersionID,
			Event:     workflow.EventTextReviewResolved,
			Actor:     actor,
		})
		return id, err
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info(
		"review cycle resolved",
		"version_id", cmd.VersionID,
		"status", status,
		"actor", actor.Name,
	)
	return r.find(ctx, id)
}

// acceptGate checks that the latest iteration is acceptable: no unresolved
// spelling errors and no prior resolution.
func acceptGate(latest *TextReview) error {
	if latest.HasSpellingErrors {
		return ErrUnresolvedErrors
	}
	if latest.Status != StatusClean {
		return faults.IllegalStatef(
			"review cycle already resolved with status %q", latest.Status,
		)
	}
	return nil
}

func (r *repo) Latest(ctx context.Context, versionID uuid.UUID) (*TextReview, error) {
	q, args := query.
		NewBuilder(projection, latestSort).
		WhereEquals("VersionID", versionID).
		BuildSingleOrNull()

	tr, err := repository.QueryOne(ctx, r.db, q, args, scanReview)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &tr, nil
}

func (r *repo) Iterations(ctx context.Context, versionID uuid.UUID) ([]TextReview, error) {
	q, args := query.
		NewBuilder(projection, iterationSort).
		WhereEquals("VersionID", versionID).
		Build()

	reviews, err := repository.QueryMany(ctx, r.db, q, args, scanReview)
	if err != nil {
		return nil, fmt.Errorf("query review iterations: %w", err)
	}
	return reviews, nil
}

type iterationRow struct {
	versionID          uuid.UUID
	originalText       string
	aiCorrectedText    string
	spellingErrors     []string
	claritySuggestions []string
	hasSpellingErrors  bool
	status             ReviewStatus
}

// insertIteration appends the next iteration inside tx. The unique index on
// (version_id, iteration) backs the gapless monotonic numbering; the caller
// must hold the version lock.
func (r *repo) insertIteration(ctx context.Context, tx *sql.Tx, row iterationRow) (uuid.UUID, error) {
	spelling, err := json.Marshal(row.spellingErrors)
	if err != nil {
		return uuid.Nil, fmt.Errorf("encode spelling errors: %w", err)
	}

	clarity, err := json.Marshal(row.claritySuggestions)
	if err != nil {
		return uuid.Nil, fmt.Errorf("encode clarity suggestions: %w", err)
	}

	id := uuid.New()
	if err := repository.ExecExpectOne(
		ctx, tx,
		`INSERT INTO text_reviews(id, version_id, iteration, original_text, ai_corrected_text, spelling_errors, clarity_suggestions, has_spelling_errors, status)
		SELECT $1, $2, COALESCE(MAX(iteration), 0) + 1, $3, $4, $5, $6, $7, $8
		FROM text_reviews WHERE version_id = $2`,
		id,
		row.versionID,
		row.originalText,
		row.aiCorrectedText,
		spelling,
		clarity,
		row.hasSpellingErrors,
		string(row.status),
	); err != nil {
		return uuid.Nil, err
	}

	return id, nil
}

func (r *repo) find(ctx context.Context, id uuid.UUID) (*TextReview, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	tr, err := repository.QueryOne(ctx, r.db, q, args, scanReview)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &tr, nil
}

func (r *repo) requireSpellingReview(ctx context.Context, versionID uuid.UUID) error {
	status, err := r.wf.Current(ctx, versionID)
	if err != nil {
		return err
	}

	if status != workflow.StatusSpellingReview {
		return faults.IllegalStatef(
			"review submission requires status %q, version is %q",
			workflow.StatusSpellingReview, status,
		)
	}
	return nil
}
