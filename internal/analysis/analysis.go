// Package analysis implements the AI analysis domain for Normative. Each run
// produces one immutable record per version; reruns append new records so
// the analysis history is preserved.
package analysis

import (
	"time"

	"github.com/google/uuid"

	"github.com/lucasclyra-cmd/normative/internal/services"
)

// AIAnalysis is one analysis run for a document version. Approved is the
// analyzer's verdict; nil means the analyzer could not decide. The safety
// fields are advisory and only seed an optional approver entry.
type AIAnalysis struct {
	ID                   uuid.UUID               `json:"id"`
	VersionID            uuid.UUID               `json:"version_id"`
	Approved             *bool                   `json:"approved"`
	FeedbackItems        []services.FeedbackItem `json:"feedback_items"`
	HasSpellingErrors    bool                    `json:"has_spelling_errors"`
	InvolvesSafety       *bool                   `json:"involves_safety"`
	SafetyTopics         []string                `json:"safety_topics"`
	SafetyRecommendation *string                 `json:"safety_recommendation"`
	CreatedAt            time.Time               `json:"created_at"`
}
