package api

import (
	"errors"
	"fmt"
)

// LoadResult is the response from a successful /load_repo call
type LoadResult struct {
	Message  string         `json:"message"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Files    []string       `json:"files,omitempty"`
}

// AskResult is the response from a successful /ask call
type AskResult struct {
	Answer string `json:"answer"`
}

// SummaryResult is the response from a successful /process_repo call
type SummaryResult struct {
	Summary string `json:"summary"`
}

// HealthStatus is the response from /health
type HealthStatus struct {
	Status  string `json:"status"`
	HasRepo bool   `json:"has_repo"`
}

// ErrUnexpectedBody indicates the server returned a success status but the
// body could not be parsed as the expected JSON shape
var ErrUnexpectedBody = errors.New("unexpected response body")

// StatusError is returned when the server responds with a non-success
// status code. Message holds the server-supplied error field when the
// error body parsed as JSON, and is empty otherwise.
type StatusError struct {
	Code    int
	Message string
}

// Error implements the error interface
func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.Code)
}
