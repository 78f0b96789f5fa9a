package review_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/lucasclyra-cmd/normative/internal/review"
)

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", review.ErrNotFound, http.StatusNotFound},
		{"duplicate", review.ErrDuplicate, http.StatusConflict},
		{"unresolved errors", review.ErrUnresolvedErrors, http.StatusUnprocessableEntity},
		{"empty text", review.ErrEmptyText, http.StatusBadRequest},
		{"wrapped unresolved", fmt.Errorf("accept: %w", review.ErrUnresolvedErrors), http.StatusUnprocessableEntity},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := review.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
