package repl

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/repotutor/repotutor/pkg/config"
)

// Session represents a chat session's state
type Session struct {
	mu sync.RWMutex

	ID        string         // Unique session ID
	Config    *config.Config // Application config
	History   []string       // Input history
	StartTime time.Time      // Session start time
	Logger    *Logger        // Session logger
	DebugMode bool           // Debug mode enabled (also keeps logs)

	persona string // Persona sent with questions
	role    string // Role used for summaries
	repoURL string // Last repository loaded or summarized
}

// NewSession creates a new chat session
func NewSession(cfg *config.Config, debugMode bool) (*Session, error) {
	id := uuid.New().String()

	logger, err := NewLogger(id, debugMode || cfg.Debug.KeepLogs)
	if err != nil {
		return nil, err
	}

	return &Session{
		ID:        id,
		Config:    cfg,
		History:   []string{},
		StartTime: time.Now(),
		Logger:    logger,
		DebugMode: debugMode,
		persona:   cfg.Chat.Persona,
		role:      cfg.Chat.Role,
	}, nil
}

// Close closes the session and cleans up resources
func (s *Session) Close() error {
	if s.Logger != nil {
		return s.Logger.Close()
	}
	return nil
}

// AddToHistory adds an input line to the history
func (s *Session) AddToHistory(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.History = append(s.History, line)
}

// GetHistory returns the input history
func (s *Session) GetHistory() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.History...)
}

// SetPersona sets the active persona
func (s *Session) SetPersona(persona string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persona = persona
}

// GetPersona returns the active persona
func (s *Session) GetPersona() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.persona
}

// SetRole sets the active summary role
func (s *Session) SetRole(role string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.role = role
}

// GetRole returns the active summary role
func (s *Session) GetRole() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

// SetRepoURL remembers the most recent repository URL
func (s *Session) SetRepoURL(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.repoURL = url
}

// GetRepoURL returns the most recent repository URL
func (s *Session) GetRepoURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.repoURL
}
