package config

import (
	"fmt"
	"os"
	"time"
)

const (
	EnvAnalysisURL       = "NORMATIVE_SERVICES_ANALYSIS_URL"
	EnvCorrectionURL     = "NORMATIVE_SERVICES_CORRECTION_URL"
	EnvSafetyURL         = "NORMATIVE_SERVICES_SAFETY_URL"
	EnvFormattingURL     = "NORMATIVE_SERVICES_FORMATTING_URL"
	EnvAnalysisTimeout   = "NORMATIVE_SERVICES_ANALYSIS_TIMEOUT"
	EnvCorrectionTimeout = "NORMATIVE_SERVICES_CORRECTION_TIMEOUT"
	EnvSafetyTimeout     = "NORMATIVE_SERVICES_SAFETY_TIMEOUT"
	EnvFormattingTimeout = "NORMATIVE_SERVICES_FORMATTING_TIMEOUT"
	EnvPollInterval      = "NORMATIVE_SERVICES_POLL_INTERVAL"
)

// ServicesConfig holds endpoints and timeouts for the external collaborators
// (analysis, text correction, safety detection, formatting) plus the status
// poll interval used while an asynchronous operation is in flight.
//
// Every collaborator call is bounded by its timeout; on expiry the workflow
// takes the corresponding failure transition instead of staying in a
// processing state forever.
type ServicesConfig struct {
	AnalysisURL       string `toml:"analysis_url"`
	CorrectionURL     string `toml:"correction_url"`
	SafetyURL         string `toml:"safety_url"`
	FormattingURL     string `toml:"formatting_url"`
	AnalysisTimeout   string `toml:"analysis_timeout"`
	CorrectionTimeout string `toml:"correction_timeout"`
	SafetyTimeout     string `toml:"safety_timeout"`
	FormattingTimeout string `toml:"formatting_timeout"`
	PollInterval      string `toml:"poll_interval"`
}

// AnalysisTimeoutDuration returns AnalysisTimeout as a time.Duration.
func (c *ServicesConfig) AnalysisTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.AnalysisTimeout)
	return d
}

// CorrectionTimeoutDuration returns CorrectionTimeout as a time.Duration.
func (c *ServicesConfig) CorrectionTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.CorrectionTimeout)
	return d
}

// SafetyTimeoutDuration returns SafetyTimeout as a time.Duration.
func (c *ServicesConfig) SafetyTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.SafetyTimeout)
	return d
}

// FormattingTimeoutDuration returns FormattingTimeout as a time.Duration.
func (c *ServicesConfig) FormattingTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.FormattingTimeout)
	return d
}

// PollIntervalDuration returns PollInterval as a time.Duration.
func (c *ServicesConfig) PollIntervalDuration() time.Duration {
	d, _ := time.ParseDuration(c.PollInterval)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ServicesConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ServicesConfig) Merge(overlay *ServicesConfig) {
	fields := []struct {
		target  *string
		overlay string
	}{
		{&c.AnalysisURL, overlay.AnalysisURL},
		{&c.CorrectionURL, overlay.CorrectionURL},
		{&c.SafetyURL, overlay.SafetyURL},
		{&c.FormattingURL, overlay.FormattingURL},
		{&c.AnalysisTimeout, overlay.AnalysisTimeout},
		{&c.CorrectionTimeout, overlay.CorrectionTimeout},
		{&c.SafetyTimeout, overlay.SafetyTimeout},
		{&c.FormattingTimeout, overlay.FormattingTimeout},
		{&c.PollInterval, overlay.PollInterval},
	}
	for _, f := range fields {
		if f.overlay != "" {
			*f.target = f.overlay
		}
	}
}

func (c *ServicesConfig) loadDefaults() {
	if c.AnalysisTimeout == "" {
		c.AnalysisTimeout = "120s"
	}
	if c.CorrectionTimeout == "" {
		c.CorrectionTimeout = "60s"
	}
	if c.SafetyTimeout == "" {
		c.SafetyTimeout = "30s"
	}
	if c.FormattingTimeout == "" {
		c.FormattingTimeout = "180s"
	}
	if c.PollInterval == "" {
		c.PollInterval = "5s"
	}
}

func (c *ServicesConfig) loadEnv() {
	pairs := []struct {
		env    string
		target *string
	}{
		{EnvAnalysisURL, &c.AnalysisURL},
		{EnvCorrectionURL, &c.CorrectionURL},
		{EnvSafetyURL, &c.SafetyURL},
		{EnvFormattingURL, &c.FormattingURL},
		{EnvAnalysisTimeout, &c.AnalysisTimeout},
		{EnvCorrectionTimeout, &c.CorrectionTimeout},
		{EnvSafetyTimeout, &c.SafetyTimeout},
		{EnvFormattingTimeout, &c.FormattingTimeout},
		{EnvPollInterval, &c.PollInterval},
	}
	for _, p := range pairs {
		if v := os.Getenv(p.env); v != "" {
			*p.target = v
		}
	}
}

func (c *ServicesConfig) validate() error {
	for name, value := range map[string]string{
		"analysis_timeout":   c.AnalysisTimeout,
		"correction_timeout": c.CorrectionTimeout,
		"safety_timeout":     c.SafetyTimeout,
		"formatting_timeout": c.FormattingTimeout,
		"poll_interval":      c.PollInterval,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}
	return nil
}
