package api

import (
	"github.com/lucasclyra-cmd/normative/internal/analysis"
	"github.com/lucasclyra-cmd/normative/internal/approvals"
	"github.com/lucasclyra-cmd/normative/internal/documents"
	"github.com/lucasclyra-cmd/normative/internal/formatting"
	"github.com/lucasclyra-cmd/normative/internal/queue"
	"github.com/lucasclyra-cmd/normative/internal/review"
	"github.com/lucasclyra-cmd/normative/internal/services"
	"github.com/lucasclyra-cmd/normative/internal/workflow"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Workflow   workflow.System
	Documents  documents.System
	Analysis   analysis.System
	Review     review.System
	Approvals  approvals.System
	Formatting formatting.System
	Queue      queue.System
}

// NewDomain creates all domain systems from the API runtime. The workflow
// engine is shared: every other system folds its status transitions into the
// engine's per-version serialization.
func NewDomain(runtime *Runtime) *Domain {
	db := runtime.Database.Connection()
	base := runtime.Lifecycle.Context()

	registry := services.NewRegistry(&runtime.Services, runtime.Logger)

	workflowSystem := workflow.New(
		db,
		runtime.Logger,
		runtime.Services.PollIntervalDuration(),
	)

	documentsSystem := documents.New(
		db,
		runtime.Storage,
		workflowSystem,
		runtime.Logger,
		runtime.Pagination,
	)

	analysisSystem := analysis.New(
		db,
		workflowSystem,
		registry,
		runtime.Logger,
		base,
	)

	reviewSystem := review.New(
		db,
		workflowSystem,
		registry,
		runtime.Logger,
	)

	approvalsSystem := approvals.New(
		db,
		workflowSystem,
		analysisSystem,
		runtime.Logger,
	)

	formattingSystem := formatting.New(
		db,
		workflowSystem,
		registry,
		runtime.Logger,
		base,
	)

	queueSystem := queue.New(db, runtime.Logger)

	return &Domain{
		Workflow:   workflowSystem,
		Documents:  documentsSystem,
		Analysis:   analysisSystem,
		Review:     reviewSystem,
		Approvals:  approvalsSystem,
		Formatting: formattingSystem,
		Queue:      queueSystem,
	}
}
