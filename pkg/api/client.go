package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to a repotutor backend over HTTP.
// The backend exposes three form-based POST endpoints plus a health probe.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ClientConfig configures the backend client
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration // Optional, defaults to 2min (summaries can take a while)
}

// NewClient creates a new backend client
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 2 * time.Minute
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// BaseURL returns the configured backend base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// LoadRepo asks the backend to ingest a repository. The backend clones the
// repo and builds its context; the returned message is display-ready text.
func (c *Client) LoadRepo(ctx context.Context, repoURL string) (*LoadResult, error) {
	form := url.Values{}
	form.Set("repo_url", repoURL)

	body, err := c.postForm(ctx, "/load_repo", form)
	if err != nil {
		return nil, err
	}

	var result LoadResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedBody, err)
	}

	return &result, nil
}

// Ask sends a question about the loaded repository. Persona is optional;
// when empty the backend falls back to its default.
func (c *Client) Ask(ctx context.Context, question, persona string) (*AskResult, error) {
	form := url.Values{}
	form.Set("question", question)
	if persona != "" {
		form.Set("persona", persona)
	}

	body, err := c.postForm(ctx, "/ask", form)
	if err != nil {
		return nil, err
	}

	var result AskResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedBody, err)
	}

	return &result, nil
}

// ProcessRepo requests a role-oriented summary of a repository.
// The endpoint takes multipart form data, unlike the other two.
func (c *Client) ProcessRepo(ctx context.Context, role, repoURL string) (*SummaryResult, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	if err := writer.WriteField("role", role); err != nil {
		return nil, fmt.Errorf("failed to write form field: %w", err)
	}
	if err := writer.WriteField("repo_link", repoURL); err != nil {
		return nil, fmt.Errorf("failed to write form field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/process_repo", buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	body, err := c.do(httpReq)
	if err != nil {
		return nil, err
	}

	var result SummaryResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedBody, err)
	}

	return &result, nil
}

// Health checks whether the backend is up and has a repository loaded
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	httpReq, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/health", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	body, err := c.do(httpReq)
	if err != nil {
		return nil, err
	}

	var status HealthStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedBody, err)
	}

	return &status, nil
}

// postForm issues a form-urlencoded POST and returns the success body
func (c *Client) postForm(ctx context.Context, path string, form url.Values) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.do(httpReq)
}

// do executes the request and maps non-success statuses to *StatusError.
// Requests are single-shot: failures are terminal for the operation and
// reported to the caller, never retried.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			Code:    resp.StatusCode,
			Message: serverErrorMessage(body),
		}
	}

	return body, nil
}

// serverErrorMessage pulls the error field out of a JSON error body.
// Returns empty when the body is not JSON or carries no error field.
func serverErrorMessage(body []byte) string {
	var errBody struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &errBody); err != nil {
		return ""
	}
	return errBody.Error
}

// Close closes idle connections held by the underlying HTTP client
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
