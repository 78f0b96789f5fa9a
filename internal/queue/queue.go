// Package queue implements the read-only workflow queue projections:
// pending items with age-based urgency and summary counts for the
// dashboard. Reads are lock-free and may trail the true state.
package queue

import (
	"time"

	"github.com/google/uuid"

	"github.com/lucasclyra-cmd/normative/internal/workflow"
)

// Urgency buckets a pending item by how long it has been waiting.
type Urgency string

const (
	// UrgencyNormal is under the 3-day threshold.
	UrgencyNormal Urgency = "normal"
	// UrgencyWarning is at or past 3 days.
	UrgencyWarning Urgency = "warning"
	// UrgencyCritical is at or past 7 days.
	UrgencyCritical Urgency = "critical"
)

const (
	warningAge  = 3 * 24 * time.Hour
	criticalAge = 7 * 24 * time.Hour
)

// Bucket classifies an item by the time elapsed since it entered its
// current status.
func Bucket(enteredAt, now time.Time) Urgency {
	age := now.Sub(enteredAt)
	switch {
	case age >= criticalAge:
		return UrgencyCritical
	case age >= warningAge:
		return UrgencyWarning
	default:
		return UrgencyNormal
	}
}

// Item is one pending entry on the workflow queue.
type Item struct {
	DocumentID    uuid.UUID       `json:"document_id"`
	Title         string          `json:"title"`
	DocumentType  string          `json:"document_type"`
	AuthorName    string          `json:"author_name"`
	VersionID     uuid.UUID       `json:"version_id"`
	VersionNumber int             `json:"version_number"`
	Status        workflow.Status `json:"status"`
	EnteredAt     time.Time       `json:"entered_at"`
	AgeDays       int             `json:"age_days"`
	Urgency       Urgency         `json:"urgency"`
}

// Summary aggregates the queue for the dashboard.
type Summary struct {
	Pending   int                     `json:"pending"`
	Resolved  int                     `json:"resolved"`
	ByStatus  map[workflow.Status]int `json:"by_status"`
	ByUrgency map[Urgency]int         `json:"by_urgency"`
}

// pendingStatuses are the states where a human or external operation still
// owes progress on the current version.
var pendingStatuses = []workflow.Status{
	workflow.StatusDraft,
	workflow.StatusPendingAnalysis,
	workflow.StatusAnalyzing,
	workflow.StatusAnalysisFailed,
	workflow.StatusSpellingReview,
	workflow.StatusInReview,
	workflow.StatusApproved,
	workflow.StatusRejected,
	workflow.StatusFormatting,
	workflow.StatusFormattingFailed,
	workflow.StatusFormatted,
}
