// Package review implements the text review cycle for Normative: the
// iterative spelling/clarity correction loop an author works through before
// a version can advance to human review. Every call appends a new iteration;
// prior rows are never mutated, so the history is replayable for audit.
package review

import (
	"time"

	"github.com/google/uuid"
)

// ReviewStatus is the state of a single review iteration.
type ReviewStatus string

const (
	// StatusNeedsReview marks an iteration that still has spelling errors.
	StatusNeedsReview ReviewStatus = "needs_review"
	// StatusClean marks an iteration with no spelling errors found.
	StatusClean ReviewStatus = "clean"
	// StatusUserAccepted marks the author accepting the AI-corrected text verbatim.
	StatusUserAccepted ReviewStatus = "user_accepted"
	// StatusUserEdited marks the author closing the cycle with a manual edit.
	StatusUserEdited ReviewStatus = "user_edited"
)

// TextReview is one iteration of the correction loop. Iteration is strictly
// increasing per version, starting at 1, with no gaps or reuse.
type TextReview struct {
	ID                 uuid.UUID    `json:"id"`
	VersionID          uuid.UUID    `json:"version_id"`
	Iteration          int          `json:"iteration"`
	OriginalText       string       `json:"original_text"`
	AICorrectedText    string       `json:"ai_corrected_text"`
	SpellingErrors     []string     `json:"spelling_errors"`
	ClaritySuggestions []string     `json:"clarity_suggestions"`
	HasSpellingErrors  bool         `json:"has_spelling_errors"`
	Status             ReviewStatus `json:"status"`
	CreatedAt          time.Time    `json:"created_at"`
}
