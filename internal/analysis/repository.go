package analysis

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/lucasclyra-cmd/normative/internal/services"
	"github.com/lucasclyra-cmd/normative/internal/workflow"
	"github.com/lucasclyra-cmd/normative/pkg/identity"
	"github.com/lucasclyra-cmd/normative/pkg/query"
	"github.com/lucasclyra-cmd/normative/pkg/repository"
)

type repo struct {
	db        *sql.DB
	wf        workflow.System
	analyzer  services.Analyzer
	safety    services.Safety
	corrector services.Corrector
	logger    *slog.Logger
	base      context.Context
}

// New creates an analysis repository implementing the System interface.
// base is the service lifecycle context; analysis runs outlive the request
// that triggered them but stop with the service.
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
		analyzer:  registry.Analyzer,
		safety:    registry.Safety,
		corrector: registry.Corrector,
		logger:    logger.With("system", "analysis"),
		base:      base,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

// Request moves the version into analyzing and triggers the run in the
// background. Callers observe completion by polling the version status.
func (r *repo) Request(ctx context.Context, versionID uuid.UUID, actor identity.Actor) (workflow.Status, error) {
	status, err := r.wf.Apply(ctx, workflow.ApplyCommand{
		VersionID: versionID,
		Event:     workflow.EventAnalysisRequested,
		Actor:     actor,
	})
	if err != nil {
		return "", err
	}

	go r.run(versionID, actor)

	return status, nil
}

// run executes one analysis pass: the analyzer verdict, the advisory safety
// scan, and a spelling check over the extracted text, fanned out together.
// Safety failure degrades to an absent advisory; any other failure moves the
// version to analysis_failed.
func (r *repo) run(versionID uuid.UUID, actor identity.Actor) {
	ctx := r.base

	text, err := r.extractedText(ctx, versionID)
	if err != nil {
		r.fail(ctx, versionID, actor, err)
		return
	}

	var (
		verdict  *services.AnalysisResult
		safety   *services.SafetyResult
		spelling bool
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		res, err := r.analyzer.Analyze(gctx, versionID)
		if err != nil {
			return fmt.Errorf("analyze version: %w", err)
		}
		verdict = res
		return nil
	})

	g.Go(func() error {
		res, err := r.safety.Detect(gctx, versionID)
		if err != nil {
			r.logger.Warn("safety detection unavailable", "version_id", versionID, "error", err)
			return nil
		}
		safety = res
		return nil
	})

	g.Go(func() error {
		if text == "" {
			return nil
		}
		res, err := r.corrector.Review(gctx, text)
		if err != nil {
			return fmt.Errorf("spelling check: %w", err)
		}
		spelling = res.HasSpellingErrors
		return nil
	})

	if err := g.Wait(); err != nil {
		r.fail(ctx, versionID, actor, err)
		return
	}

	if err := r.complete(ctx, versionID, actor, verdict, safety, spelling); err != nil {
		r.fail(ctx, versionID, actor, err)
	}
}

func (r *repo) complete(
	ctx context.Context,
	versionID uuid.UUID,
	actor identity.Actor,
	verdict *services.AnalysisResult,
	safety *services.SafetyResult,
	spelling bool,
) error {
	release := r.wf.Lock(versionID)
	defer release()

	feedback, err := marshalJSONB(verdict.FeedbackItems)
	if err != nil {
		return fmt.Errorf("encode feedback items: %w", err)
	}

	var (
		involvesSafety *bool
		topics         []byte
		recommendation *string
	)
	if safety != nil {
		involvesSafety = &safety.InvolvesSafety
		if safety.Recommendation != "" {
			recommendation = &safety.Recommendation
		}
		if topics, err = marshalJSONB(safety.SafetyTopics); err != nil {
			return fmt.Errorf("encode safety topics: %w", err)
		}
	}

	approved := verdict.Approved != nil && *verdict.Approved

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			`INSERT INTO ai_analyses(id, version_id, approved, feedback_items, has_spelling_errors, involves_safety, safety_topics, safety_recommendation)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			uuid.New(), versionID, verdict.Approved, feedback, spelling, involvesSafety, topics, recommendation,
		); err != nil {
			return struct{}{}, err
		}

		if err := repository.ExecExpectOne(
			ctx, tx,
			"UPDATE document_versions SET ai_approved = $1, updated_at = now() WHERE id = $2",
			verdict.Approved, versionID,
		); err != nil {
			return struct{}{}, err
		}

		_, err := r.wf.ApplyInTx(ctx, tx, workflow.ApplyCommand{
			VersionID: versionID,
			Event:     workflow.EventAnalysisCompleted,
			Data: workflow.AnalysisOutcome{
				Approved:       approved,
				SpellingIssues: spelling,
			},
			Actor: actor,
		})
		return struct{}{}, err
	})

	if err != nil {
		return err
	}

	r.logger.Info(
		"analysis completed",
		"version_id", versionID,
		"approved", approved,
		"spelling_issues", spelling,
	)
	return nil
}

// fail records the failure transition. A version stuck on a failed run is
// recoverable only by requesting analysis again.
func (r *repo) fail(ctx context.Context, versionID uuid.UUID, actor identity.Actor, cause error) {
	r.logger.Error("analysis run failed", "version_id", versionID, "error", cause)

	if _, err := r.wf.Apply(ctx, workflow.ApplyCommand{
		VersionID: versionID,
		Event:     workflow.EventAnalysisError,
		Actor:     actor,
	}); err != nil {
		r.logger.Error("failure transition not applied", "version_id", versionID, "error", err)
	}
}

func (r *repo) Latest(ctx context.Context, versionID uuid.UUID) (*AIAnalysis, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("VersionID", versionID).
		BuildSingleOrNull()

	a, err := repository.QueryOne(ctx, r.db, q, args, scanAnalysis)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &a, nil
}

func (r *repo) History(ctx context.Context, versionID uuid.UUID) ([]AIAnalysis, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("VersionID", versionID).
		Build()

	analyses, err := repository.QueryMany(ctx, r.db, q, args, scanAnalysis)
	if err != nil {
		return nil, fmt.Errorf("query analysis history: %w", err)
	}
	return analyses, nil
}

func (r *repo) extractedText(ctx context.Context, versionID uuid.UUID) (string, error) {
	text, err := repository.QueryOne(ctx, r.db,
		"SELECT COALESCE(extracted_text, '') FROM document_versions WHERE id = $1",
		[]any{versionID},
		func(s repository.Scanner) (string, error) {
			var v string
			err := s.Scan(&v)
			return v, err
		})
	if err != nil {
		return "", repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return text, nil
}
