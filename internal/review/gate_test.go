package review

import (
	"errors"
	"testing"

	"github.com/lucasclyra-cmd/normative/pkg/faults"
)

func TestAcceptGate(t *testing.T) {
	tests := []struct {
		name   string
		latest TextReview
		want   error
	}{
		{
			"clean iteration",
			TextReview{Status: StatusClean},
			nil,
		},
		{
			"unresolved spelling errors",
			TextReview{Status: StatusNeedsReview, HasSpellingErrors: true},
			ErrUnresolvedErrors,
		},
		{
			"already accepted",
			TextReview{Status: StatusUserAccepted},
			faults.ErrIllegalState,
		},
		{
			"already edited",
			TextReview{Status: StatusUserEdited},
			faults.ErrIllegalState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := acceptGate(&tt.latest)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("acceptGate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("acceptGate() = %v, want %v", err, tt.want)
			}
		})
	}
}
