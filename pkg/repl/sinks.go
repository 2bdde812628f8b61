package repl

import (
	"fmt"

	"github.com/repotutor/repotutor/pkg/controller"
)

// clearLine erases the current terminal line, so prints interleave
// cleanly with a running spinner
const clearLine = "\r\033[K"

// statusDisplay renders a controller display target onto the terminal.
// Each update is printed as its own line; when a renderer is set the
// text is treated as markdown.
type statusDisplay struct {
	output   *Output
	renderer *Renderer
	logger   *Logger
}

// Set prints the latest outcome
func (d *statusDisplay) Set(text string) {
	if d.logger != nil {
		d.logger.LogOutput(text)
	}

	d.output.PrintMessage(clearLine)
	if d.renderer != nil {
		d.output.PrintMessage("%s", d.renderer.Render(text))
		return
	}
	d.output.PrintMessage("%s\n", text)
}

// Clear erases the display; on a scrolling terminal there is nothing to
// take back, so this is a no-op beyond the line reset
func (d *statusDisplay) Clear() {
	d.output.PrintMessage(clearLine)
}

// chatLog prints transcript entries as they are appended
type chatLog struct {
	output   *Output
	renderer *Renderer
	logger   *Logger
}

// Append renders one transcript entry
func (l *chatLog) Append(entry controller.Entry) {
	if l.logger != nil {
		l.logger.LogOutput(fmt.Sprintf("%s: %s", entry.Kind, entry.Text))
	}

	l.output.PrintMessage(clearLine)
	switch entry.Kind {
	case controller.EntryYou:
		l.output.PrintMessage("You: %s\n", entry.Text)
	case controller.EntryBot:
		l.output.PrintMessage("Bot:\n%s", l.renderer.Render(entry.Text))
	case controller.EntryError:
		l.output.PrintError("%s\n", entry.Text)
	default:
		l.output.PrintMessage("%s\n", entry.Text)
	}
}

// warnNotifier surfaces validation notices as warnings
type warnNotifier struct {
	output *Output
}

// Notify prints a blocking validation notice
func (n *warnNotifier) Notify(message string) {
	n.output.PrintWarning("%s\n", message)
}
