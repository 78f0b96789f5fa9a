package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lucasclyra-cmd/normative/pkg/faults"
)

func testClient(base string) *client {
	return newClient(base, time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestPostJSONSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %s, want application/json", ct)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"corrected_text": "fixed", "has_spelling_errors": true}`)
	}))
	defer srv.Close()

	result, err := postJSON[ReviewResult](context.Background(), testClient(srv.URL), "/review", reviewRequest{Text: "txt"})
	if err != nil {
		t.Fatalf("postJSON failed: %v", err)
	}
	if result.CorrectedText != "fixed" || !result.HasSpellingErrors {
		t.Errorf("result = %+v, want corrected text with spelling errors", result)
	}
}

func TestPostJSONErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := postJSON[ReviewResult](context.Background(), testClient(srv.URL), "/review", reviewRequest{})
	if !errors.Is(err, faults.ErrExternal) {
		t.Errorf("err = %v, want wrapped ErrExternal", err)
	}
}

func TestPostJSONTransportFailure(t *testing.T) {
	// Closed server: connection refused.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := postJSON[ReviewResult](context.Background(), testClient(srv.URL), "/review", reviewRequest{})
	if !errors.Is(err, faults.ErrExternal) {
		t.Errorf("err = %v, want wrapped ErrExternal", err)
	}
}

func TestPostJSONTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server detects the client disconnect and
		// cancels the request context; otherwise Close deadlocks.
		io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := newClient(srv.URL, 20*time.Millisecond, slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := postJSON[ReviewResult](context.Background(), c, "/review", reviewRequest{})
	if !errors.Is(err, faults.ErrExternal) {
		t.Errorf("err = %v, want wrapped ErrExternal", err)
	}
}

func TestPostJSONMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "not json")
	}))
	defer srv.Close()

	_, err := postJSON[ReviewResult](context.Background(), testClient(srv.URL), "/review", reviewRequest{})
	if !errors.Is(err, faults.ErrExternal) {
		t.Errorf("err = %v, want wrapped ErrExternal", err)
	}
}
