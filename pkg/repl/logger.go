package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Logger handles chat session logging
type Logger struct {
	sessionDir  string
	sessionFile *os.File
	requestFile *os.File
	keepLogs    bool
}

// NewLogger creates a new logger for a chat session
func NewLogger(sessionID string, keepLogs bool) (*Logger, error) {
	// Create session directory in /tmp
	sessionDir := filepath.Join(os.TempDir(), "repotutor-sessions", sessionID)
	if err := os.MkdirAll(sessionDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	sessionFile, err := os.Create(filepath.Join(sessionDir, "session.log"))
	if err != nil {
		return nil, fmt.Errorf("failed to create session log: %w", err)
	}

	requestFile, err := os.Create(filepath.Join(sessionDir, "requests.log"))
	if err != nil {
		sessionFile.Close()
		return nil, fmt.Errorf("failed to create request log: %w", err)
	}

	logger := &Logger{
		sessionDir:  sessionDir,
		sessionFile: sessionFile,
		requestFile: requestFile,
		keepLogs:    keepLogs,
	}

	// Write header
	logger.logSession("Session started: %s\n", sessionID)
	logger.logSession("Keep logs: %v\n", keepLogs)
	logger.logSession("Log directory: %s\n\n", sessionDir)

	return logger, nil
}

// GetSessionDir returns the session log directory path
func (l *Logger) GetSessionDir() string {
	return l.sessionDir
}

// LogInput logs user input
func (l *Logger) LogInput(input string) {
	l.logSession(">>> %s\n", input)
}

// LogOutput logs rendered output
func (l *Logger) LogOutput(output string) {
	l.logSession("<<< %s\n", output)
}

// LogError logs an error
func (l *Logger) LogError(err error) {
	l.logSession("ERROR: %v\n", err)
}

// LogRequest logs one backend exchange
func (l *Logger) LogRequest(format string, args ...interface{}) {
	l.logWithTimestamp(l.requestFile, format, args...)
}

// logWithTimestamp writes a timestamped log entry
func (l *Logger) logWithTimestamp(w io.Writer, format string, args ...interface{}) {
	if w == nil {
		return
	}

	timestamp := time.Now().Format("15:04:05.000")
	message := fmt.Sprintf(format, args...)
	fmt.Fprintf(w, "[%s] %s", timestamp, message)
}

// logSession logs without timestamp (internal helper)
func (l *Logger) logSession(format string, args ...interface{}) {
	if l.sessionFile != nil {
		fmt.Fprintf(l.sessionFile, format, args...)
	}
}

// Flush syncs all log files to disk
func (l *Logger) Flush() error {
	if l.sessionFile != nil {
		l.sessionFile.Sync()
	}
	if l.requestFile != nil {
		l.requestFile.Sync()
	}
	return nil
}

// Close closes the log files, removing the session directory unless the
// session asked to keep logs
func (l *Logger) Close() error {
	if l.sessionFile != nil {
		l.sessionFile.Close()
	}
	if l.requestFile != nil {
		l.requestFile.Close()
	}

	if !l.keepLogs {
		return os.RemoveAll(l.sessionDir)
	}
	return nil
}
