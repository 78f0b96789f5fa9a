package faults_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/lucasclyra-cmd/normative/pkg/faults"
)

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", faults.ErrValidation, http.StatusBadRequest},
		{"not found", faults.ErrNotFound, http.StatusNotFound},
		{"conflict", faults.ErrConflict, http.StatusConflict},
		{"illegal state", faults.ErrIllegalState, http.StatusUnprocessableEntity},
		{"external", faults.ErrExternal, http.StatusBadGateway},
		{"wrapped conflict", fmt.Errorf("insert: %w", faults.ErrConflict), http.StatusConflict},
		{"double wrapped", fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", faults.ErrNotFound)), http.StatusNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
		{"nil", nil, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := faults.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestValidationf(t *testing.T) {
	err := faults.Validationf("field %s is blank", "title")

	if !errors.Is(err, faults.ErrValidation) {
		t.Error("Validationf should wrap ErrValidation")
	}
	want := "field title is blank: validation failed"
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestIllegalStatef(t *testing.T) {
	err := faults.IllegalStatef("cannot publish from %q", "draft")

	if !errors.Is(err, faults.ErrIllegalState) {
		t.Error("IllegalStatef should wrap ErrIllegalState")
	}
	if faults.MapHTTPStatus(err) != http.StatusUnprocessableEntity {
		t.Error("IllegalStatef should map to 422")
	}
}
