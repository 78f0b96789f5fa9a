package approvals_test

import (
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"testing"

	"github.com/lucasclyra-cmd/normative/internal/approvals"
)

func ptr[T any](v T) *T { return &v }

func entry(required bool, action *approvals.Action) approvals.ApproverEntry {
	return approvals.ApproverEntry{
		IsRequired: required,
		Action:     action,
	}
}

func TestDeriveStatus(t *testing.T) {
	approve := ptr(approvals.ActionApprove)
	reject := ptr(approvals.ActionReject)

	tests := []struct {
		name    string
		entries []approvals.ApproverEntry
		want    approvals.ChainStatus
	}{
		{
			"no entries",
			nil,
			approvals.ChainPending,
		},
		{
			"single required unacted",
			[]approvals.ApproverEntry{entry(true, nil)},
			approvals.ChainPending,
		},
		{
			"single required approved",
			[]approvals.ApproverEntry{entry(true, approve)},
			approvals.ChainApproved,
		},
		{
			"single required rejected",
			[]approvals.ApproverEntry{entry(true, reject)},
			approvals.ChainRejected,
		},
		{
			"partial approvals stay pending",
			[]approvals.ApproverEntry{entry(true, approve), entry(true, nil)},
			approvals.ChainPending,
		},
		{
			"all required approved",
			[]approvals.ApproverEntry{entry(true, approve), entry(true, approve), entry(true, approve)},
			approvals.ChainApproved,
		},
		{
			"one rejection dominates approvals",
			[]approvals.ApproverEntry{entry(true, approve), entry(true, reject), entry(true, approve)},
			approvals.ChainRejected,
		},
		{
			"rejection dominates pending entries",
			[]approvals.ApproverEntry{entry(true, nil), entry(true, reject)},
			approvals.ChainRejected,
		},
		{
			"optional rejection is ignored",
			[]approvals.ApproverEntry{entry(true, approve), entry(false, reject)},
			approvals.ChainApproved,
		},
		{
			"optional approval does not resolve",
			[]approvals.ApproverEntry{entry(true, nil), entry(false, approve)},
			approvals.ChainPending,
		},
		{
			"only optional entries never resolve",
			[]approvals.ApproverEntry{entry(false, approve), entry(false, approve)},
			approvals.ChainPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := approvals.DeriveStatus(tt.entries)
			if got != tt.want {
				t.Errorf("DeriveStatus() = %s, want %s", got, tt.want)
			}
		})
	}
}

// Whatever the mix of entries, a required rejection always wins and approval
// requires unanimity of the required set.
func TestDeriveStatusRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for range 500 {
		n := rng.Intn(8)
		entries := make([]approvals.ApproverEntry, n)

		requiredRejected := false
		required := 0
		requiredApproved := 0

		for i := range entries {
			e := entry(rng.Intn(4) != 0, nil)
			switch rng.Intn(3) {
			case 0:
				e.Action = ptr(approvals.ActionApprove)
			case 1:
				e.Action = ptr(approvals.ActionReject)
			}

			if e.IsRequired {
				required++
				if e.Action != nil && *e.Action == approvals.ActionReject {
					requiredRejected = true
				}
				if e.Action != nil && *e.Action == approvals.ActionApprove {
					requiredApproved++
				}
			}
			entries[i] = e
		}

		want := approvals.ChainPending
		switch {
		case requiredRejected:
			want = approvals.ChainRejected
		case required > 0 && requiredApproved == required:
			want = approvals.ChainApproved
		}

		if got := approvals.DeriveStatus(entries); got != want {
			t.Fatalf("DeriveStatus(%+v) = %s, want %s", entries, got, want)
		}
	}
}

func TestChainStatusTerminal(t *testing.T) {
	if approvals.ChainPending.Terminal() {
		t.Error("pending should not be terminal")
	}
	if !approvals.ChainApproved.Terminal() {
		t.Error("approved should be terminal")
	}
	if !approvals.ChainRejected.Terminal() {
		t.Error("rejected should be terminal")
	}
}

func TestChainTypeValid(t *testing.T) {
	for _, ct := range []approvals.ChainType{
		approvals.ChainTypeApproval,
		approvals.ChainTypeReapproval,
		approvals.ChainTypeCancellation,
	} {
		if !ct.Valid() {
			t.Errorf("%s should be valid", ct)
		}
	}
	if approvals.ChainType("X").Valid() {
		t.Error("X should not be valid")
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"chain not found", approvals.ErrChainNotFound, http.StatusNotFound},
		{"active chain", approvals.ErrActiveChain, http.StatusConflict},
		{"already acted", approvals.ErrAlreadyActed, http.StatusUnprocessableEntity},
		{"chain resolved", approvals.ErrChainResolved, http.StatusUnprocessableEntity},
		{"rejection comment", approvals.ErrRejectionComment, http.StatusBadRequest},
		{"no required approver", approvals.ErrNoRequired, http.StatusBadRequest},
		{"wrapped entry not found", fmt.Errorf("record action: %w", approvals.ErrEntryNotFound), http.StatusNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := approvals.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
