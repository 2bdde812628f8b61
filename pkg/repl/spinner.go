package repl

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Spinner displays an animated loading indicator while a request is in flight
type Spinner struct {
	mu      sync.Mutex
	running bool
	stop    chan struct{}
	writer  io.Writer
	message string
}

// NewSpinner creates a new spinner
func NewSpinner(writer io.Writer, message string) *Spinner {
	return &Spinner{
		writer:  writer,
		message: message,
		stop:    make(chan struct{}),
	}
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Start begins the spinner animation
func (s *Spinner) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	go s.animate()
}

// Stop stops the spinner animation
func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	close(s.stop)
	s.running = false

	// Clear the spinner line
	fmt.Fprint(s.writer, "\r\033[K")
}

// UpdateMessage updates the spinner message
func (s *Spinner) UpdateMessage(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = msg
}

// animate runs the animation loop
func (s *Spinner) animate() {
	frameIndex := 0
	ticker := time.NewTicker(150 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			msg := s.message
			s.mu.Unlock()

			frame := spinnerFrames[frameIndex%len(spinnerFrames)]
			fmt.Fprintf(s.writer, "\r%s %s", frame, msg)
			frameIndex++
		}
	}
}
