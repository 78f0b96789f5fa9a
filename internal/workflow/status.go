// Package workflow implements the document version lifecycle for Normative.
// It owns the version status field, validates transitions against a state
// machine definition, and records every transition on the activity trail.
package workflow

// Status is the lifecycle state of a document version.
type Status string

const (
	StatusDraft            Status = "draft"
	StatusPendingAnalysis  Status = "pending_analysis"
	StatusAnalyzing        Status = "analyzing"
	StatusAnalysisFailed   Status = "analysis_failed"
	StatusSpellingReview   Status = "spelling_review"
	StatusInReview         Status = "in_review"
	StatusApproved         Status = "approved"
	StatusRejected         Status = "rejected"
	StatusFormatting       Status = "formatting"
	StatusFormattingFailed Status = "formatting_failed"
	StatusFormatted        Status = "formatted"
	StatusActive           Status = "active"
	StatusPublished        Status = "published"
)

// Event triggers a status transition. Submit and resubmit are recorded on
// the activity trail only: a new version row always starts in draft rather
// than transitioning out of an existing status.
type Event string

const (
	EventSubmit             Event = "submit"
	EventResubmit           Event = "resubmit"
	EventAnalysisRequested  Event = "analysis_requested"
	EventAnalysisCompleted  Event = "analysis_completed"
	EventAnalysisError      Event = "analysis_error"
	EventTextReviewResolved Event = "text_review_resolved"
	EventSkipAI             Event = "skip_ai"
	EventChainCreated       Event = "chain_created"
	EventChainResolved      Event = "chain_resolved"
	EventFormatRequested    Event = "format_requested"
	EventFormatCompleted    Event = "format_completed"
	EventFormatError        Event = "format_error"
	EventPublish            Event = "publish"
)

// processing statuses have an external operation in flight. Callers poll
// while a version sits in one of these and stop as soon as it leaves.
var processing = map[Status]bool{
	StatusAnalyzing:      true,
	StatusSpellingReview: true,
	StatusFormatting:     true,
}

// IsProcessing reports whether s has an operation in flight.
func (s Status) IsProcessing() bool {
	return processing[s]
}

var statuses = map[Status]bool{
	StatusDraft:            true,
	StatusPendingAnalysis:  true,
	StatusAnalyzing:        true,
	StatusAnalysisFailed:   true,
	StatusSpellingReview:   true,
	StatusInReview:         true,
	StatusApproved:         true,
	StatusRejected:         true,
	StatusFormatting:       true,
	StatusFormattingFailed: true,
	StatusFormatted:        true,
	StatusActive:           true,
	StatusPublished:        true,
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return statuses[s]
}

// AnalysisOutcome carries the result of an analysis run into the state
// machine: approved routes to review, spelling issues detour through the
// text correction cycle, and a negative verdict rejects the version.
type AnalysisOutcome struct {
	Approved       bool
	SpellingIssues bool
}

// ChainOutcome carries an approval chain resolution into the state machine.
type ChainOutcome struct {
	Approved bool
}
