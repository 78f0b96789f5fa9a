package workflow_test

import (
	"testing"

	"github.com/lucasclyra-cmd/normative/internal/workflow"
)

func TestStatusIsProcessing(t *testing.T) {
	processing := []workflow.Status{
		workflow.StatusAnalyzing,
		workflow.StatusSpellingReview,
		workflow.StatusFormatting,
	}
	for _, s := range processing {
		if !s.IsProcessing() {
			t.Errorf("%s.IsProcessing() = false, want true", s)
		}
	}

	settled := []workflow.Status{
		workflow.StatusDraft,
		workflow.StatusAnalysisFailed,
		workflow.StatusInReview,
		workflow.StatusApproved,
		workflow.StatusRejected,
		workflow.StatusFormattingFailed,
		workflow.StatusFormatted,
		workflow.StatusActive,
		workflow.StatusPublished,
	}
	for _, s := range settled {
		if s.IsProcessing() {
			t.Errorf("%s.IsProcessing() = true, want false", s)
		}
	}
}

func TestStatusValid(t *testing.T) {
	if !workflow.StatusDraft.Valid() {
		t.Error("draft should be valid")
	}
	if !workflow.StatusPublished.Valid() {
		t.Error("published should be valid")
	}
	if workflow.Status("archived").Valid() {
		t.Error("archived should not be valid")
	}
	if workflow.Status("").Valid() {
		t.Error("empty status should not be valid")
	}
}
