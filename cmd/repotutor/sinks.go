package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/repotutor/repotutor/pkg/controller"
)

// printDisplay is a DisplayTarget that prints every update and remembers
// the last one, so commands can pick an exit code from the final outcome
type printDisplay struct {
	writer io.Writer
	last   string
}

func (d *printDisplay) Set(text string) {
	d.last = text
	fmt.Fprintln(d.writer, text)
}

func (d *printDisplay) Clear() {
	d.last = ""
}

// Failed reports whether the last outcome was an error
func (d *printDisplay) Failed() bool {
	return strings.HasPrefix(d.last, "Error:")
}

// printLog is a MessageLog that prints transcript entries as plain lines
type printLog struct {
	writer io.Writer
	failed bool
}

func (l *printLog) Append(entry controller.Entry) {
	if entry.Kind == controller.EntryError {
		l.failed = true
	}
	fmt.Fprintf(l.writer, "%s: %s\n", entry.Kind, entry.Text)
}

// stderrNotifier prints validation notices to stderr
type stderrNotifier struct {
	writer   io.Writer
	notified bool
}

func (n *stderrNotifier) Notify(message string) {
	n.notified = true
	fmt.Fprintln(n.writer, message)
}
