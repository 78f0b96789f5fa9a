package workflow

import (
	"github.com/anggasct/fluo"

	"github.com/lucasclyra-cmd/normative/pkg/faults"
)

// newDefinition builds the version lifecycle state machine. The definition is
// immutable and shared; a throwaway instance is created per transition check.
func newDefinition() fluo.MachineDefinition {
	return fluo.NewMachine().
		State(string(StatusDraft)).Initial().
		To(string(StatusAnalyzing)).On(string(EventAnalysisRequested)).
		State(string(StatusPendingAnalysis)).
		To(string(StatusAnalyzing)).On(string(EventAnalysisRequested)).
		State(string(StatusAnalyzing)).
		To(string(StatusInReview)).On(string(EventAnalysisCompleted)).When(analysisApprovedClean).
		To(string(StatusSpellingReview)).On(string(EventAnalysisCompleted)).When(analysisApprovedWithSpelling).
		To(string(StatusRejected)).On(string(EventAnalysisCompleted)).When(analysisNotApproved).
		To(string(StatusAnalysisFailed)).On(string(EventAnalysisError)).
		State(string(StatusAnalysisFailed)).
		To(string(StatusAnalyzing)).On(string(EventAnalysisRequested)).
		State(string(StatusSpellingReview)).
		To(string(StatusInReview)).On(string(EventTextReviewResolved)).
		State(string(StatusInReview)).
		ToSelf().On(string(EventChainCreated)).
		To(string(StatusApproved)).On(string(EventChainResolved)).When(chainApproved).
		To(string(StatusRejected)).On(string(EventChainResolved)).When(chainRejected).
		State(string(StatusRejected)).
		To(string(StatusInReview)).On(string(EventSkipAI)).
		State(string(StatusApproved)).
		ToSelf().On(string(EventChainCreated)).
		ToSelf().On(string(EventChainResolved)).When(chainApproved).
		To(string(StatusRejected)).On(string(EventChainResolved)).When(chainRejected).
		To(string(StatusFormatting)).On(string(EventFormatRequested)).
		State(string(StatusFormatting)).
		To(string(StatusFormatted)).On(string(EventFormatCompleted)).
		To(string(StatusFormattingFailed)).On(string(EventFormatError)).
		State(string(StatusFormattingFailed)).
		To(string(StatusFormatting)).On(string(EventFormatRequested)).
		State(string(StatusFormatted)).
		To(string(StatusPublished)).On(string(EventPublish)).
		State(string(StatusActive)).
		State(string(StatusPublished)).Final().
		Build()
}

func analysisApprovedClean(ctx fluo.Context) bool {
	o, ok := ctx.GetEventData().(AnalysisOutcome)
	return ok && o.Approved && !o.SpellingIssues
}

func analysisApprovedWithSpelling(ctx fluo.Context) bool {
	o, ok := ctx.GetEventData().(AnalysisOutcome)
	return ok && o.Approved && o.SpellingIssues
}

func analysisNotApproved(ctx fluo.Context) bool {
	o, ok := ctx.GetEventData().(AnalysisOutcome)
	return ok && !o.Approved
}

func chainApproved(ctx fluo.Context) bool {
	o, ok := ctx.GetEventData().(ChainOutcome)
	return ok && o.Approved
}

func chainRejected(ctx fluo.Context) bool {
	o, ok := ctx.GetEventData().(ChainOutcome)
	return ok && !o.Approved
}

// transition runs event against the definition from current and returns the
// resulting status. An unprocessed event means the transition is not legal
// from the current status.
func transition(def fluo.MachineDefinition, current Status, event Event, data any) (Status, error) {
	m := def.CreateInstance()
	if err := m.Start(); err != nil {
		return "", err
	}

	if current != StatusDraft {
		if err := m.SetState(string(current)); err != nil {
			return "", faults.IllegalStatef("unknown status %q", current)
		}
	}

	result := m.HandleEvent(string(event), data)
	if result.Error != nil {
		return "", result.Error
	}
	if !result.Processed {
		return "", faults.IllegalStatef(
			"event %q is not valid while status is %q", event, current,
		)
	}

	return Status(result.CurrentState), nil
}
