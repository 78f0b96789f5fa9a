package approvals

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func actedEntry(id uuid.UUID, required bool, action *Action) ApproverEntry {
	return ApproverEntry{
		ID:         id,
		IsRequired: required,
		Action:     action,
	}
}

func TestActionTarget(t *testing.T) {
	approve := ActionApprove
	reject := ActionReject

	first := uuid.New()
	second := uuid.New()

	tests := []struct {
		name    string
		entries []ApproverEntry
		entryID uuid.UUID
		want    error
	}{
		{
			"pending entry on open chain",
			[]ApproverEntry{
				actedEntry(first, true, nil),
				actedEntry(second, true, nil),
			},
			first,
			nil,
		},
		{
			"entry already acted",
			[]ApproverEntry{
				actedEntry(first, true, &approve),
				actedEntry(second, true, nil),
			},
			first,
			ErrAlreadyActed,
		},
		{
			"unknown entry",
			[]ApproverEntry{actedEntry(first, true, nil)},
			uuid.New(),
			ErrEntryNotFound,
		},
		{
			"chain already approved",
			[]ApproverEntry{
				actedEntry(first, true, &approve),
				actedEntry(second, false, nil),
			},
			second,
			ErrChainResolved,
		},
		{
			"chain already rejected",
			[]ApproverEntry{
				actedEntry(first, true, &reject),
				actedEntry(second, true, nil),
			},
			second,
			ErrChainResolved,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, err := actionTarget(tt.entries, tt.entryID)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("actionTarget() error = %v, want nil", err)
				}
				if target == nil || target.ID != tt.entryID {
					t.Errorf("actionTarget() returned wrong entry: %+v", target)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("actionTarget() error = %v, want %v", err, tt.want)
			}
		})
	}
}
