package repl

import (
	"fmt"
	"io"
	"os"
)

// Output handles terminal output for the chat loop
type Output struct {
	writer io.Writer
}

// NewOutput creates a new output handler writing to stdout
func NewOutput() *Output {
	return &Output{writer: os.Stdout}
}

// SetWriter sets the output writer
func (o *Output) SetWriter(w io.Writer) {
	o.writer = w
}

// Writer returns the current output writer
func (o *Output) Writer() io.Writer {
	return o.writer
}

// PrintMessage prints a message to the output
func (o *Output) PrintMessage(format string, args ...interface{}) {
	fmt.Fprintf(o.writer, format, args...)
}

// PrintError prints an error message
func (o *Output) PrintError(format string, args ...interface{}) {
	fmt.Fprintf(o.writer, "❌ "+format, args...)
}

// PrintSuccess prints a success message
func (o *Output) PrintSuccess(format string, args ...interface{}) {
	fmt.Fprintf(o.writer, "✅ "+format, args...)
}

// PrintWarning prints a warning message
func (o *Output) PrintWarning(format string, args ...interface{}) {
	fmt.Fprintf(o.writer, "⚠️  "+format, args...)
}
