package approvals

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/lucasclyra-cmd/normative/internal/analysis"
	"github.com/lucasclyra-cmd/normative/internal/workflow"
	"github.com/lucasclyra-cmd/normative/pkg/faults"
	"github.com/lucasclyra-cmd/normative/pkg/identity"
	"github.com/lucasclyra-cmd/normative/pkg/query"
	"github.com/lucasclyra-cmd/normative/pkg/repository"
)

// chainGate is the workflow status precondition for creating a chain.
var chainGate = map[workflow.Status]bool{
	workflow.StatusInReview: true,
	workflow.StatusApproved: true,
}

type repo struct {
	db       *sql.DB
	wf       workflow.System
	analysis analysis.System
	logger   *slog.Logger
}

// New creates an approvals repository implementing the System interface.
func New(
	db *sql.DB,
	wf workflow.System,
	analysisSys analysis.System,
	logger *slog.Logger,
) System {
	return &repo{
		db:       db,
		wf:       wf,
		analysis: analysisSys,
		logger:   logger.With("system", "approvals"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

// CreateChain validates and persists a new chain with its full entry list.
// The entry list is fixed here; no entry is ever added or removed afterwards.
func (r *repo) CreateChain(ctx context.Context, cmd CreateChainCommand, actor identity.Actor) (*ApprovalChain, error) {
	if !cmd.ChainType.Valid() {
		return nil, faults.Validationf("unknown chain type %q", cmd.ChainType)
	}

	release := r.wf.Lock(cmd.VersionID)
	defer release()

	status, err := r.wf.Current(ctx, cmd.VersionID)
	if err != nil {
		return nil, err
	}
	if !chainGate[status] {
		return nil, fmt.Errorf(
			"chain creation requires status in_review or approved, version is %q: %w",
			status, faults.ErrConflict,
		)
	}

	if active, err := r.ActiveForVersion(ctx, cmd.VersionID); err != nil {
		return nil, err
	} else if active != nil {
		return nil, ErrActiveChain
	}

	specs, err := r.assembleSpecs(ctx, cmd)
	if err != nil {
		return nil, err
	}

	chainID := uuid.New()
	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"INSERT INTO approval_chains(id, version_id, chain_type) VALUES ($1, $2, $3)",
			chainID, cmd.VersionID, string(cmd.ChainType),
		); err != nil {
			return struct{}{}, err
		}

		for _, spec := range specs {
			if err := repository.ExecExpectOne(
				ctx, tx,
				`INSERT INTO approver_entries(id, chain_id, approver_name, approver_role, approver_profile, is_required, ai_recommended, entry_order)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				uuid.New(), chainID, spec.Name, spec.Role, string(spec.Profile),
				spec.IsRequired, spec.aiRecommended, spec.Order,
			); err != nil {
				return struct{}{}, err
			}
		}

		_, err := r.wf.ApplyInTx(ctx, tx, workflow.ApplyCommand{
			VersionID: cmd.VersionID,
			Event:     workflow.EventChainCreated,
			Actor:     actor,
		})
		return struct{}{}, err
	})
	if err != nil {
		return nil, repository.MapError(err, ErrChainNotFound, ErrActiveChain)
	}

	r.logger.Info(
		"approval chain created",
		"chain_id", chainID,
		"version_id", cmd.VersionID,
		"chain_type", cmd.ChainType,
		"approvers", len(specs),
	)
	return r.Find(ctx, chainID)
}

// RecordAction applies one approver decision. Recording the action,
// recomputing the derived status, and resolving the chain into the workflow
// happen in a single transaction so a partial application cannot be observed.
func (r *repo) RecordAction(ctx context.Context, cmd RecordActionCommand, actor identity.Actor) (*ApprovalChain, error) {
	if cmd.Action != ActionApprove && cmd.Action != ActionReject {
		return nil, faults.Validationf("unknown action %q", cmd.Action)
	}
	if cmd.Action == ActionReject && (cmd.Comments == nil || strings.TrimSpace(*cmd.Comments) == "") {
		return nil, ErrRejectionComment
	}

	chain, err := r.Find(ctx, cmd.ChainID)
	if err != nil {
		return nil, err
	}

	release := r.wf.Lock(chain.VersionID)
	defer release()

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		entries, err := r.entriesForUpdate(ctx, tx, cmd.ChainID)
		if err != nil {
			return struct{}{}, err
		}

		target, err := actionTarget(entries, cmd.EntryID)
		if err != nil {
			return struct{}{}, err
		}

		// action IS NULL in the predicate makes the write at-most-once even
		// if a concurrent transaction slipped past the checks above.
		if err := repository.ExecExpectOne(
			ctx, tx,
			`UPDATE approver_entries
			SET action = $1, comments = $2, acted_at = now()
			WHERE id = $3 AND chain_id = $4 AND action IS NULL`,
			string(cmd.Action), cmd.Comments, cmd.EntryID, cmd.ChainID,
		); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return struct{}{}, ErrAlreadyActed
			}
			return struct{}{}, err
		}

		action := cmd.Action
		target.Action = &action

		status := DeriveStatus(entries)
		if !status.Terminal() {
			return struct{}{}, nil
		}

		if err := repository.ExecExpectOne(
			ctx, tx,
			"UPDATE approval_chains SET completed_at = now() WHERE id = $1 AND completed_at IS NULL",
			cmd.ChainID,
		); err != nil {
			return struct{}{}, err
		}

		_, err = r.wf.ApplyInTx(ctx, tx, workflow.ApplyCommand{
			VersionID: chain.VersionID,
			Event:     workflow.EventChainResolved,
			Data:      workflow.ChainOutcome{Approved: status == ChainApproved},
			Actor:     actor,
		})
		return struct{}{}, err
	})
	if err != nil {
		return nil, repository.MapError(err, ErrChainNotFound, ErrActiveChain)
	}

	r.logger.Info(
		"approver action recorded",
		"chain_id", cmd.ChainID,
		"entry_id", cmd.EntryID,
		"action", cmd.Action,
		"actor", actor.Name,
	)
	return r.Find(ctx, cmd.ChainID)
}

// SetTraining updates the training flag while the chain is pending. Once the
// chain resolves the flag is frozen.
func (r *repo) SetTraining(ctx context.Context, chainID uuid.UUID, required bool) (*ApprovalChain, error) {
	chain, err := r.Find(ctx, chainID)
	if err != nil {
		return nil, err
	}

	release := r.wf.Lock(chain.VersionID)
	defer release()

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		entries, err := r.entriesForUpdate(ctx, tx, chainID)
		if err != nil {
			return struct{}{}, err
		}

		if DeriveStatus(entries).Terminal() {
			return struct{}{}, ErrChainResolved
		}

		return struct{}{}, repository.ExecExpectOne(
			ctx, tx,
			"UPDATE approval_chains SET requires_training = $1 WHERE id = $2",
			required, chainID,
		)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrChainNotFound, ErrActiveChain)
	}

	return r.Find(ctx, chainID)
}

func (r *repo) Find(ctx context.Context, chainID uuid.UUID) (*ApprovalChain, error) {
	q, args := query.NewBuilder(chainProjection).BuildSingle("ID", chainID)

	chain, err := repository.QueryOne(ctx, r.db, q, args, scanChain)
	if err != nil {
		return nil, repository.MapError(err, ErrChainNotFound, ErrDuplicate)
	}

	return r.hydrate(ctx, &chain)
}

// ActiveForVersion returns the pending chain for a version, or nil when
// every chain has resolved.
func (r *repo) ActiveForVersion(ctx context.Context, versionID uuid.UUID) (*ApprovalChain, error) {
	q, args := query.
		NewBuilder(chainProjection, chainSort).
		WhereEquals("VersionID", versionID).
		WhereNull("CompletedAt").
		BuildSingleOrNull()

	chain, err := repository.QueryOne(ctx, r.db, q, args, scanChain)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, repository.MapError(err, ErrChainNotFound, ErrDuplicate)
	}

	return r.hydrate(ctx, &chain)
}

func (r *repo) HistoryForVersion(ctx context.Context, versionID uuid.UUID) ([]ApprovalChain, error) {
	q, args := query.
		NewBuilder(chainProjection, chainSort).
		WhereEquals("VersionID", versionID).
		Build()

	chains, err := repository.QueryMany(ctx, r.db, q, args, scanChain)
	if err != nil {
		return nil, fmt.Errorf("query chain history: %w", err)
	}

	result := make([]ApprovalChain, 0, len(chains))
	for i := range chains {
		hydrated, err := r.hydrate(ctx, &chains[i])
		if err != nil {
			return nil, err
		}
		result = append(result, *hydrated)
	}
	return result, nil
}

// hydrate loads the entry list and derives the chain status from it.
func (r *repo) hydrate(ctx context.Context, chain *ApprovalChain) (*ApprovalChain, error) {
	q, args := query.
		NewBuilder(entryProjection, entrySort).
		WhereEquals("ChainID", chain.ID).
		Build()

	entries, err := repository.QueryMany(ctx, r.db, q, args, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("query chain entries: %w", err)
	}

	chain.Entries = entries
	chain.Status = DeriveStatus(entries)
	return chain, nil
}

func (r *repo) entriesForUpdate(ctx context.Context, tx *sql.Tx, chainID uuid.UUID) ([]ApproverEntry, error) {
	q, args := query.
		NewBuilder(entryProjection, entrySort).
		WhereEquals("ChainID", chainID).
		Build()

	entries, err := repository.QueryMany(ctx, tx, q+" FOR UPDATE", args, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("lock chain entries: %w", err)
	}
	if len(entries) == 0 {
		return nil, ErrChainNotFound
	}
	return entries, nil
}

// chainSpec extends ApproverSpec with the AI-recommended marker used for
// safety-seeded entries.
type chainSpec struct {
	ApproverSpec
	aiRecommended bool
}

// assembleSpecs merges template approvers, the explicit list, and the
// optional safety-seeded entry, then validates the combined set.
func (r *repo) assembleSpecs(ctx context.Context, cmd CreateChainCommand) ([]chainSpec, error) {
	specs := make([]chainSpec, 0, len(cmd.Approvers)+2)

	if cmd.UseDefaults {
		docType, err := r.versionDocumentType(ctx, cmd.VersionID)
		if err != nil {
			return nil, err
		}

		defaults, err := r.ListDefaults(ctx, &docType)
		if err != nil {
			return nil, err
		}

		for _, d := range defaults {
			specs = append(specs, chainSpec{ApproverSpec: ApproverSpec{
				Name:       d.Name,
				Role:       d.Role,
				Profile:    d.Profile,
				IsRequired: d.IsRequired,
				Order:      d.Order,
			}})
		}
	}

	for _, a := range cmd.Approvers {
		specs = append(specs, chainSpec{ApproverSpec: a})
	}

	if seed := r.safetySeed(ctx, cmd.VersionID, specs); seed != nil {
		specs = append(specs, *seed)
	}

	if len(specs) == 0 {
		return nil, ErrEmptyApprovers
	}

	required := 0
	seen := make(map[string]bool, len(specs))
	for _, s := range specs {
		key := strings.ToLower(s.Name) + "|" + strings.ToLower(s.Role)
		if seen[key] {
			return nil, fmt.Errorf("%w: %s (%s)", ErrDuplicateEntry, s.Name, s.Role)
		}
		seen[key] = true

		if s.IsRequired {
			required++
		}
	}
	if required == 0 {
		return nil, ErrNoRequired
	}

	return specs, nil
}

// safetySeed returns an optional AI-recommended entry when the latest
// analysis flagged safety involvement. Advisory only: any failure here just
// means no seeded entry.
func (r *repo) safetySeed(ctx context.Context, versionID uuid.UUID, existing []chainSpec) *chainSpec {
	latest, err := r.analysis.Latest(ctx, versionID)
	if err != nil || latest.InvolvesSafety == nil || !*latest.InvolvesSafety {
		return nil
	}

	name := "Safety Reviewer"
	if latest.SafetyRecommendation != nil && *latest.SafetyRecommendation != "" {
		name = *latest.SafetyRecommendation
	}

	for _, s := range existing {
		if strings.EqualFold(s.Name, name) && strings.EqualFold(s.Role, "safety") {
			return nil
		}
	}

	order := 0
	for _, s := range existing {
		if s.Order > order {
			order = s.Order
		}
	}

	return &chainSpec{
		ApproverSpec: ApproverSpec{
			Name:       name,
			Role:       "safety",
			Profile:    identity.ProfileProcessos,
			IsRequired: false,
			Order:      order + 1,
		},
		aiRecommended: true,
	}
}

func (r *repo) versionDocumentType(ctx context.Context, versionID uuid.UUID) (string, error) {
	docType, err := repository.QueryOne(ctx, r.db,
		`SELECT d.document_type FROM documents d
		INNER JOIN document_versions v ON v.document_id = d.id
		WHERE v.id = $1`,
		[]any{versionID},
		func(s repository.Scanner) (string, error) {
			var v string
			err := s.Scan(&v)
			return v, err
		})
	if err != nil {
		return "", repository.MapError(err, ErrChainNotFound, ErrDuplicate)
	}
	return docType, nil
}

func findEntry(entries []ApproverEntry, id uuid.UUID) *ApproverEntry {
	for i := range entries {
		if entries[i].ID == id {
			return &entries[i]
		}
	}
	return nil
}

// actionTarget locates the entry an action addresses and enforces the
// at-most-once rules: a resolved chain accepts no further actions, and an
// entry that already acted cannot act again.
func actionTarget(entries []ApproverEntry, entryID uuid.UUID) (*ApproverEntry, error) {
	if DeriveStatus(entries).Terminal() {
		return nil, ErrChainResolved
	}

	target := findEntry(entries, entryID)
	if target == nil {
		return nil, ErrEntryNotFound
	}
	if target.Action != nil {
		return nil, ErrAlreadyActed
	}

	return target, nil
}

// ListDefaults returns approver templates. With a document type, templates
// scoped to that type and unscoped templates both apply.
func (r *repo) ListDefaults(ctx context.Context, documentType *string) ([]DefaultApprover, error) {
	q, args := query.NewBuilder(defaultsProjection, defaultsSort).Build()

	defaults, err := repository.QueryMany(ctx, r.db, q, args, scanDefault)
	if err != nil {
		return nil, fmt.Errorf("query default approvers: %w", err)
	}

	if documentType == nil {
		return defaults, nil
	}

	scoped := make([]DefaultApprover, 0, len(defaults))
	for _, d := range defaults {
		if d.DocumentType == nil || *d.DocumentType == *documentType {
			scoped = append(scoped, d)
		}
	}
	return scoped, nil
}

func (r *repo) CreateDefault(ctx context.Context, cmd DefaultApproverCommand) (*DefaultApprover, error) {
	if cmd.Name == "" || cmd.Role == "" {
		return nil, faults.Validationf("default approver requires name and role")
	}

	id := uuid.New()
	if err := repository.ExecExpectOne(
		ctx, r.db,
		`INSERT INTO default_approvers(id, name, role, profile, document_type, is_required, entry_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, cmd.Name, cmd.Role, string(cmd.Profile), cmd.DocumentType, cmd.IsRequired, cmd.Order,
	); err != nil {
		return nil, repository.MapError(err, ErrDefaultNotFound, ErrDuplicate)
	}

	return r.findDefault(ctx, id)
}

func (r *repo) UpdateDefault(ctx context.Context, id uuid.UUID, cmd DefaultApproverCommand) (*DefaultApprover, error) {
	if cmd.Name == "" || cmd.Role == "" {
		return nil, faults.Validationf("default approver requires name and role")
	}

	if err := repository.ExecExpectOne(
		ctx, r.db,
		`UPDATE default_approvers
		SET name = $1, role = $2, profile = $3, document_type = $4, is_required = $5, entry_order = $6, updated_at = now()
		WHERE id = $7`,
		cmd.Name, cmd.Role, string(cmd.Profile), cmd.DocumentType, cmd.IsRequired, cmd.Order, id,
	); err != nil {
		return nil, repository.MapError(err, ErrDefaultNotFound, ErrDuplicate)
	}

	return r.findDefault(ctx, id)
}

func (r *repo) DeleteDefault(ctx context.Context, id uuid.UUID) error {
	if err := repository.ExecExpectOne(
		ctx, r.db,
		"DELETE FROM default_approvers WHERE id = $1",
		id,
	); err != nil {
		return repository.MapError(err, ErrDefaultNotFound, ErrDuplicate)
	}
	return nil
}

func (r *repo) findDefault(ctx context.Context, id uuid.UUID) (*DefaultApprover, error) {
	q, args := query.NewBuilder(defaultsProjection).BuildSingle("ID", id)

	d, err := repository.QueryOne(ctx, r.db, q, args, scanDefault)
	if err != nil {
		return nil, repository.MapError(err, ErrDefaultNotFound, ErrDuplicate)
	}
	return &d, nil
}
