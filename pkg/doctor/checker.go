// Package doctor validates the client's environment before use: config
// sanity, backend reachability, and whether the backend's responses match
// the shapes this client knows how to render.
package doctor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/repotutor/repotutor/pkg/api"
	"github.com/repotutor/repotutor/pkg/config"
)

// CheckResult represents the result of one pre-flight check
type CheckResult struct {
	Name     string
	Required bool
	Found    bool
	Detail   string
	Error    string
}

// Checker validates the backend connection before starting work
type Checker struct {
	config     *config.Config
	httpClient *http.Client
}

// NewChecker creates a new pre-flight checker
func NewChecker(cfg *config.Config) *Checker {
	return &Checker{
		config:     cfg,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// CheckAll runs every check and returns an error when a required one fails
func (c *Checker) CheckAll(ctx context.Context) ([]CheckResult, error) {
	var results []CheckResult

	results = append(results, c.checkConfig())
	results = append(results, c.checkBackend(ctx))
	results = append(results, c.checkHealthShape(ctx))

	var failures []CheckResult
	for _, result := range results {
		if result.Required && !result.Found {
			failures = append(failures, result)
		}
	}

	if len(failures) > 0 {
		return results, c.formatErrors(failures)
	}

	return results, nil
}

// checkConfig validates the loaded configuration
func (c *Checker) checkConfig() CheckResult {
	if err := c.config.Validate(); err != nil {
		return CheckResult{
			Name:     "Config",
			Required: true,
			Found:    false,
			Error:    err.Error(),
		}
	}

	return CheckResult{
		Name:     "Config",
		Required: true,
		Found:    true,
		Detail:   c.config.Server.BaseURL,
	}
}

// checkBackend probes the backend's health endpoint
func (c *Checker) checkBackend(ctx context.Context) CheckResult {
	healthURL := strings.TrimRight(c.config.Server.BaseURL, "/") + "/health"

	req, err := http.NewRequestWithContext(ctx, "GET", healthURL, nil)
	if err != nil {
		return CheckResult{
			Name:     "Backend",
			Required: true,
			Found:    false,
			Error:    fmt.Sprintf("failed to build health request: %v", err),
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return CheckResult{
			Name:     "Backend",
			Required: true,
			Found:    false,
			Error:    fmt.Sprintf("backend not reachable at %s (is the server running?)", c.config.Server.BaseURL),
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return CheckResult{
			Name:     "Backend",
			Required: true,
			Found:    false,
			Error:    fmt.Sprintf("health endpoint returned status %d", resp.StatusCode),
		}
	}

	return CheckResult{
		Name:     "Backend",
		Required: true,
		Found:    true,
		Detail:   healthURL,
	}
}

// checkHealthShape fetches /health and validates the body against the
// client's schema. A backend that answers 200 with an unknown shape would
// otherwise surface as "Unexpected response" errors mid-session.
func (c *Checker) checkHealthShape(ctx context.Context) CheckResult {
	healthURL := strings.TrimRight(c.config.Server.BaseURL, "/") + "/health"

	req, err := http.NewRequestWithContext(ctx, "GET", healthURL, nil)
	if err != nil {
		return CheckResult{Name: "Health schema", Found: false, Error: err.Error()}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return CheckResult{
			Name:  "Health schema",
			Found: false,
			Error: "skipped: backend not reachable",
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return CheckResult{Name: "Health schema", Found: false, Error: err.Error()}
	}

	if err := api.ValidateResponse(api.ResponseHealth, body); err != nil {
		return CheckResult{
			Name:  "Health schema",
			Found: false,
			Error: err.Error(),
		}
	}

	return CheckResult{
		Name:   "Health schema",
		Found:  true,
		Detail: "response matches expected shape",
	}
}

// formatErrors builds a single error out of the failed checks
func (c *Checker) formatErrors(failures []CheckResult) error {
	var sb strings.Builder
	sb.WriteString("pre-flight checks failed:\n")
	for _, f := range failures {
		sb.WriteString(fmt.Sprintf("  ✗ %s: %s\n", f.Name, f.Error))
	}
	return errors.New(sb.String())
}
