package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/lucasclyra-cmd/normative/pkg/faults"
)

// client is the shared HTTP plumbing for collaborator adapters. Each call is
// bounded by the adapter's timeout; expiry or transport failure surfaces as
// faults.ErrExternal so the workflow takes the matching failure transition.
type client struct {
	base    string
	http    *http.Client
	timeout time.Duration
	logger  *slog.Logger
}

func newClient(base string, timeout time.Duration, logger *slog.Logger) *client {
	return &client{
		base:    base,
		http:    &http.Client{},
		timeout: timeout,
		logger:  logger,
	}
}

func postJSON[T any](ctx context.Context, c *client, path string, payload any) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call %s: %v: %w", path, err, faults.ErrExternal)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf(
			"call %s: status %d: %s: %w",
			path, resp.StatusCode, string(detail), faults.ErrExternal,
		)
	}

	var result T
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode %s response: %v: %w", path, err, faults.ErrExternal)
	}

	c.logger.Debug("collaborator call", "path", path, "duration", time.Since(start))
	return &result, nil
}
