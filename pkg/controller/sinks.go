package controller

import "sync"

// EntryKind classifies a message log entry
type EntryKind int

const (
	EntryYou EntryKind = iota
	EntryBot
	EntryError
)

// String returns the transcript prefix for the entry kind
func (k EntryKind) String() string {
	switch k {
	case EntryYou:
		return "You"
	case EntryBot:
		return "Bot"
	case EntryError:
		return "Error"
	default:
		return "?"
	}
}

// Entry is one line of the chat transcript
type Entry struct {
	Kind EntryKind
	Text string
}

// DisplayTarget holds the latest outcome string for an operation.
// Implementations serialize their own writes; the controller may be
// driven from multiple goroutines and the last write wins.
type DisplayTarget interface {
	Set(text string)
	Clear()
}

// MessageLog is an append-only ordered chat transcript
type MessageLog interface {
	Append(entry Entry)
}

// Notifier surfaces a blocking validation notice to the operator
type Notifier interface {
	Notify(message string)
}

// StatusBuffer is a DisplayTarget backed by a mutex-guarded string.
// Used by the one-shot CLI and by tests.
type StatusBuffer struct {
	mu   sync.Mutex
	text string
}

// Set replaces the displayed text
func (b *StatusBuffer) Set(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text = text
}

// Clear empties the display
func (b *StatusBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text = ""
}

// Text returns the currently displayed text
func (b *StatusBuffer) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text
}

// Transcript is a MessageLog backed by a mutex-guarded slice
type Transcript struct {
	mu      sync.Mutex
	entries []Entry
}

// Append adds an entry to the transcript
func (t *Transcript) Append(entry Entry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, entry)
}

// Entries returns a copy of the transcript so far
func (t *Transcript) Entries() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Entry{}, t.entries...)
}
