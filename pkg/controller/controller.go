// Package controller implements the interaction layer between operator
// input and the repotutor backend: it validates input, issues the request,
// and renders the terminal outcome into its display sinks.
package controller

import (
	"context"
	"errors"
	"strings"

	"github.com/repotutor/repotutor/pkg/api"
)

// Backend is the slice of the API client the controller needs
type Backend interface {
	LoadRepo(ctx context.Context, repoURL string) (*api.LoadResult, error)
	Ask(ctx context.Context, question, persona string) (*api.AskResult, error)
	ProcessRepo(ctx context.Context, role, repoURL string) (*api.SummaryResult, error)
}

// Operator-facing strings. Server-supplied text is always preferred;
// these are the fallbacks and placeholders.
const (
	msgMissingRepoURL    = "Please enter a repository URL."
	msgMissingQuestion   = "Please enter a question."
	msgMissingRoleOrRepo = "Please provide both a role and a repository link."

	msgLoading    = "Loading repository..."
	msgGenerating = "Generating summary..."

	fallbackLoadFailed    = "Failed to load repository"
	fallbackAskFailed     = "Failed to get an answer"
	fallbackSummaryFailed = "Failed to generate summary"

	msgUnexpectedResponse = "Unexpected response from server."
)

// Controller drives the three backend operations and reports their
// outcomes. Each operation is independent and single-shot: no retries,
// no queuing, every failure is terminal and rendered to the operator.
type Controller struct {
	backend Backend

	loadDisplay    DisplayTarget
	summaryDisplay DisplayTarget
	log            MessageLog
	notifier       Notifier

	persona string
}

// Config wires a Controller to its backend and sinks
type Config struct {
	Backend        Backend
	LoadDisplay    DisplayTarget
	SummaryDisplay DisplayTarget
	Log            MessageLog
	Notifier       Notifier
	Persona        string // optional persona sent with questions
}

// New creates a Controller. Nil sinks are replaced with no-op buffers so
// callers can wire only the targets they render.
func New(cfg Config) *Controller {
	if cfg.LoadDisplay == nil {
		cfg.LoadDisplay = &StatusBuffer{}
	}
	if cfg.SummaryDisplay == nil {
		cfg.SummaryDisplay = &StatusBuffer{}
	}
	if cfg.Log == nil {
		cfg.Log = &Transcript{}
	}
	if cfg.Notifier == nil {
		cfg.Notifier = noopNotifier{}
	}

	return &Controller{
		backend:        cfg.Backend,
		loadDisplay:    cfg.LoadDisplay,
		summaryDisplay: cfg.SummaryDisplay,
		log:            cfg.Log,
		notifier:       cfg.Notifier,
		persona:        cfg.Persona,
	}
}

// SetPersona changes the persona sent with subsequent questions
func (c *Controller) SetPersona(persona string) {
	c.persona = persona
}

// LoadRepository asks the backend to ingest repoURL and renders the
// outcome into the load display.
func (c *Controller) LoadRepository(ctx context.Context, repoURL string) {
	repoURL = strings.TrimSpace(repoURL)
	if repoURL == "" {
		c.notifier.Notify(msgMissingRepoURL)
		return
	}

	c.loadDisplay.Set(msgLoading)

	result, err := c.backend.LoadRepo(ctx, repoURL)
	if err != nil {
		c.loadDisplay.Set("Error: " + errorText(err, fallbackLoadFailed))
		return
	}

	c.loadDisplay.Set(result.Message)
}

// AskQuestion submits a question and appends the exchange to the message
// log. The operator's entry is appended before the request is issued, so
// the transcript records the question even when the call fails.
func (c *Controller) AskQuestion(ctx context.Context, question string) {
	question = strings.TrimSpace(question)
	if question == "" {
		c.notifier.Notify(msgMissingQuestion)
		return
	}

	c.log.Append(Entry{Kind: EntryYou, Text: question})

	result, err := c.backend.Ask(ctx, question, c.persona)
	if err != nil {
		c.log.Append(Entry{Kind: EntryError, Text: errorText(err, fallbackAskFailed)})
		return
	}

	c.log.Append(Entry{Kind: EntryBot, Text: result.Answer})
}

// GenerateSummary requests a role-oriented summary and renders the outcome
// into the summary display. Missing input is reported inline rather than
// through the notifier.
func (c *Controller) GenerateSummary(ctx context.Context, role, repoURL string) {
	role = strings.TrimSpace(role)
	repoURL = strings.TrimSpace(repoURL)
	if role == "" || repoURL == "" {
		c.summaryDisplay.Set(msgMissingRoleOrRepo)
		return
	}

	c.summaryDisplay.Set(msgGenerating)

	result, err := c.backend.ProcessRepo(ctx, role, repoURL)
	if err != nil {
		c.summaryDisplay.Set("Error: " + errorText(err, fallbackSummaryFailed))
		return
	}

	c.summaryDisplay.Set(result.Summary)
}

// errorText picks the operator-facing text for a failed exchange:
// a success status with an unrenderable body gets its own message, a
// server-supplied error field wins over the generic fallback.
func errorText(err error, fallback string) string {
	if errors.Is(err, api.ErrUnexpectedBody) {
		return msgUnexpectedResponse
	}

	var statusErr *api.StatusError
	if errors.As(err, &statusErr) && statusErr.Message != "" {
		return statusErr.Message
	}

	return fallback
}

type noopNotifier struct{}

func (noopNotifier) Notify(string) {}
