package workflow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasclyra-cmd/normative/pkg/faults"
)

func TestTransitionTable(t *testing.T) {
	def := newDefinition()

	tests := []struct {
		name    string
		current Status
		event   Event
		data    any
		want    Status
	}{
		{"draft analysis request", StatusDraft, EventAnalysisRequested, nil, StatusAnalyzing},
		{"pending analysis request", StatusPendingAnalysis, EventAnalysisRequested, nil, StatusAnalyzing},
		{"analysis approved clean", StatusAnalyzing, EventAnalysisCompleted, AnalysisOutcome{Approved: true}, StatusInReview},
		{"analysis approved with spelling", StatusAnalyzing, EventAnalysisCompleted, AnalysisOutcome{Approved: true, SpellingIssues: true}, StatusSpellingReview},
		{"analysis not approved", StatusAnalyzing, EventAnalysisCompleted, AnalysisOutcome{Approved: false}, StatusRejected},
		{"analysis error", StatusAnalyzing, EventAnalysisError, nil, StatusAnalysisFailed},
		{"analysis retry", StatusAnalysisFailed, EventAnalysisRequested, nil, StatusAnalyzing},
		{"spelling review resolved", StatusSpellingReview, EventTextReviewResolved, nil, StatusInReview},
		{"chain created keeps in_review", StatusInReview, EventChainCreated, nil, StatusInReview},
		{"chain approved", StatusInReview, EventChainResolved, ChainOutcome{Approved: true}, StatusApproved},
		{"chain rejected", StatusInReview, EventChainResolved, ChainOutcome{Approved: false}, StatusRejected},
		{"skip ai after rejection", StatusRejected, EventSkipAI, nil, StatusInReview},
		{"chain created keeps approved", StatusApproved, EventChainCreated, nil, StatusApproved},
		{"chain approved keeps approved", StatusApproved, EventChainResolved, ChainOutcome{Approved: true}, StatusApproved},
		{"chain rejected from approved", StatusApproved, EventChainResolved, ChainOutcome{Approved: false}, StatusRejected},
		{"format request", StatusApproved, EventFormatRequested, nil, StatusFormatting},
		{"format completed", StatusFormatting, EventFormatCompleted, nil, StatusFormatted},
		{"format error", StatusFormatting, EventFormatError, nil, StatusFormattingFailed},
		{"format retry", StatusFormattingFailed, EventFormatRequested, nil, StatusFormatting},
		{"publish", StatusFormatted, EventPublish, nil, StatusPublished},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := transition(def, tt.current, tt.event, tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransitionRejectsIllegalEvents(t *testing.T) {
	def := newDefinition()

	tests := []struct {
		name    string
		current Status
		event   Event
		data    any
	}{
		{"publish from draft", StatusDraft, EventPublish, nil},
		{"format request before approval", StatusInReview, EventFormatRequested, nil},
		{"chain resolution without outcome", StatusInReview, EventChainResolved, nil},
		{"skip ai outside rejected", StatusInReview, EventSkipAI, nil},
		{"publish twice", StatusPublished, EventPublish, nil},
		{"resume from active", StatusActive, EventAnalysisRequested, nil},
		{"analysis completion without outcome", StatusAnalyzing, EventAnalysisCompleted, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := transition(def, tt.current, tt.event, tt.data)
			require.Error(t, err)
			assert.True(t, errors.Is(err, faults.ErrIllegalState), "expected illegal state, got %v", err)
		})
	}
}

// A version rejected by the chain can bypass re-analysis and land directly
// back in front of the approvers.
func TestTransitionRejectionRecovery(t *testing.T) {
	def := newDefinition()

	status, err := transition(def, StatusInReview, EventChainResolved, ChainOutcome{})
	require.NoError(t, err)
	require.Equal(t, StatusRejected, status)

	status, err = transition(def, status, EventSkipAI, nil)
	require.NoError(t, err)
	require.Equal(t, StatusInReview, status)

	status, err = transition(def, status, EventChainResolved, ChainOutcome{Approved: true})
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, status)
}

// A second chain opened after approval (a training chain) must resolve
// without disturbing the approved status, and a rejection on it still
// sends the version back to rejected.
func TestTransitionChainAtApprovedGate(t *testing.T) {
	def := newDefinition()

	status, err := transition(def, StatusApproved, EventChainCreated, nil)
	require.NoError(t, err)
	require.Equal(t, StatusApproved, status)

	status, err = transition(def, status, EventChainResolved, ChainOutcome{Approved: true})
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, status)

	status, err = transition(def, StatusApproved, EventChainResolved, ChainOutcome{})
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, status)
}

func TestTransitionUnknownStatus(t *testing.T) {
	def := newDefinition()

	_, err := transition(def, Status("archived"), EventPublish, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, faults.ErrIllegalState))
}
