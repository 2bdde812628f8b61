package repl

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"
)

// InputHandler manages user input with readline support
type InputHandler struct {
	rl      *readline.Instance
	session *Session
}

// NewInputHandler creates a new input handler
func NewInputHandler(session *Session) (*InputHandler, error) {
	// Get history file path
	historyFile := getHistoryFilePath()

	// Configure readline
	config := &readline.Config{
		Prompt:                 getPrompt(session),
		HistoryFile:            historyFile,
		HistoryLimit:           1000,
		DisableAutoSaveHistory: false,
		InterruptPrompt:        "^C",
		EOFPrompt:              "exit",
	}

	rl, err := readline.NewEx(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	return &InputHandler{
		rl:      rl,
		session: session,
	}, nil
}

// ReadLine reads a single line of input
func (h *InputHandler) ReadLine() (string, error) {
	return h.rl.Readline()
}

// UpdatePrompt updates the prompt based on current session state
func (h *InputHandler) UpdatePrompt() {
	h.rl.SetPrompt(getPrompt(h.session))
}

// Close closes the input handler
func (h *InputHandler) Close() error {
	return h.rl.Close()
}

// getPrompt generates the prompt string based on session state
func getPrompt(session *Session) string {
	return fmt.Sprintf("tutor:%s> ", session.GetPersona())
}

// getHistoryFilePath returns the path to the history file
func getHistoryFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "repotutor_history")
	}

	return filepath.Join(homeDir, ".repotutor_history")
}

// ClearScreen clears the terminal screen
func ClearScreen() {
	fmt.Print("\033[H\033[2J")
}
