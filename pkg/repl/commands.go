package repl

import (
	"strings"
)

// CommandType represents different types of chat input
type CommandType int

const (
	CommandTypeUnknown CommandType = iota
	CommandTypeSlash               // Slash commands (/load, /summary, ...)
	CommandTypeQuestion            // Free text, sent to the backend as a question
)

// Command represents a parsed line of input
type Command struct {
	Type CommandType
	Name string   // For slash commands
	Args []string // For slash commands
	Text string   // For questions
	Raw  string   // Original input
}

// ParseCommand parses user input into a Command
func ParseCommand(input string) *Command {
	input = strings.TrimSpace(input)
	if input == "" {
		return &Command{
			Type: CommandTypeUnknown,
			Raw:  input,
		}
	}

	if strings.HasPrefix(input, "/") {
		return parseSlashCommand(input)
	}

	// Everything else is a question for the backend
	return &Command{
		Type: CommandTypeQuestion,
		Text: input,
		Raw:  input,
	}
}

// parseSlashCommand parses a slash command
func parseSlashCommand(input string) *Command {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return &Command{
			Type: CommandTypeUnknown,
			Raw:  input,
		}
	}

	return &Command{
		Type: CommandTypeSlash,
		Name: strings.TrimPrefix(parts[0], "/"),
		Args: parts[1:],
		Raw:  input,
	}
}
