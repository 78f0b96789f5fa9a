package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lucasclyra-cmd/normative/internal/config"
)

type versionRequest struct {
	VersionID uuid.UUID `json:"version_id"`
}

type reviewRequest struct {
	Text string `json:"text"`
}

type analyzerClient struct{ *client }

func newAnalyzerClient(cfg *config.ServicesConfig, logger *slog.Logger) Analyzer {
	return &analyzerClient{newClient(
		cfg.AnalysisURL,
		cfg.AnalysisTimeoutDuration(),
		logger.With("collaborator", "analysis"),
	)}
}

func (c *analyzerClient) Analyze(ctx context.Context, versionID uuid.UUID) (*AnalysisResult, error) {
	return postJSON[AnalysisResult](ctx, c.client, "/analyze", versionRequest{VersionID: versionID})
}

type correctorClient struct{ *client }

func newCorrectorClient(cfg *config.ServicesConfig, logger *slog.Logger) Corrector {
	return &correctorClient{newClient(
		cfg.CorrectionURL,
		cfg.CorrectionTimeoutDuration(),
		logger.With("collaborator", "correction"),
	)}
}

func (c *correctorClient) Review(ctx context.Context, text string) (*ReviewResult, error) {
	return postJSON[ReviewResult](ctx, c.client, "/review", reviewRequest{Text: text})
}

type safetyClient struct{ *client }

func newSafetyClient(cfg *config.ServicesConfig, logger *slog.Logger) Safety {
	return &safetyClient{newClient(
		cfg.SafetyURL,
		cfg.SafetyTimeoutDuration(),
		logger.With("collaborator", "safety"),
	)}
}

func (c *safetyClient) Detect(ctx context.Context, versionID uuid.UUID) (*SafetyResult, error) {
	return postJSON[SafetyResult](ctx, c.client, "/detect", versionRequest{VersionID: versionID})
}

type formatterClient struct{ *client }

func newFormatterClient(cfg *config.ServicesConfig, logger *slog.Logger) Formatter {
	return &formatterClient{newClient(
		cfg.FormattingURL,
		cfg.FormattingTimeoutDuration(),
		logger.With("collaborator", "formatting"),
	)}
}

func (c *formatterClient) Format(ctx context.Context, versionID uuid.UUID) (*FormatResult, error) {
	return postJSON[FormatResult](ctx, c.client, "/format", versionRequest{VersionID: versionID})
}
