// Package services defines the contracts for the external collaborators the
// workflow core consumes: AI analysis, text correction, safety detection, and
// document formatting. The core only depends on the interfaces; the HTTP
// adapters in this package are the default implementations. Collaborator
// internals (model invocation, file parsing, rendering) are outside this
// service entirely.
package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lucasclyra-cmd/normative/internal/config"
)

// FeedbackItem is a single finding from the analysis collaborator.
type FeedbackItem struct {
	Item       string  `json:"item"`
	Status     string  `json:"status"`
	Suggestion *string `json:"suggestion,omitempty"`
}

// AnalysisResult is the outcome of one analysis run.
// Approved is nil when the collaborator could not reach a verdict.
type AnalysisResult struct {
	Approved      *bool          `json:"approved"`
	FeedbackItems []FeedbackItem `json:"feedback_items"`
}

// ReviewResult is the outcome of one spelling/clarity pass over a text.
type ReviewResult struct {
	CorrectedText      string   `json:"corrected_text"`
	HasSpellingErrors  bool     `json:"has_spelling_errors"`
	SpellingErrors     []string `json:"spelling_errors"`
	ClaritySuggestions []string `json:"clarity_suggestions"`
}

// SafetyResult is the advisory outcome of safety topic detection.
type SafetyResult struct {
	InvolvesSafety bool     `json:"involves_safety"`
	SafetyTopics   []string `json:"safety_topics"`
	Recommendation string   `json:"recommendation"`
}

// FormatResult carries the rendered output locations for a version.
type FormatResult struct {
	DocxPath string `json:"formatted_file_path_docx"`
	PdfPath  string `json:"formatted_file_path_pdf"`
}

// Analyzer runs the AI analysis collaborator against a document version.
type Analyzer interface {
	Analyze(ctx context.Context, versionID uuid.UUID) (*AnalysisResult, error)
}

// Corrector runs the spelling/clarity collaborator against a text.
type Corrector interface {
	Review(ctx context.Context, text string) (*ReviewResult, error)
}

// Safety runs the safety-detection collaborator against a document version.
// Its result is advisory only and never blocks a workflow operation.
type Safety interface {
	Detect(ctx context.Context, versionID uuid.UUID) (*SafetyResult, error)
}

// Formatter runs the formatting/export collaborator against a document version.
type Formatter interface {
	Format(ctx context.Context, versionID uuid.UUID) (*FormatResult, error)
}

// Registry bundles all collaborator clients for injection into domain systems.
type Registry struct {
	Analyzer  Analyzer
	Corrector Corrector
	Safety    Safety
	Formatter Formatter
}

// NewRegistry creates HTTP-backed collaborator clients from configuration.
func NewRegistry(cfg *config.ServicesConfig, logger *slog.Logger) *Registry {
	logger = logger.With("system", "services")
	return &Registry{
		Analyzer:  newAnalyzerClient(cfg, logger),
		Corrector: newCorrectorClient(cfg, logger),
		Safety:    newSafetyClient(cfg, logger),
		Formatter: newFormatterClient(cfg, logger),
	}
}
