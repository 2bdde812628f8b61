// Package repl implements the interactive chat loop: readline input,
// slash commands for the repository operations, and free text questions
// answered by the backend.
package repl

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/repotutor/repotutor/pkg/api"
	"github.com/repotutor/repotutor/pkg/controller"
	"github.com/repotutor/repotutor/pkg/personas"
)

// REPL represents the interactive chat loop
type REPL struct {
	session  *Session
	input    *InputHandler
	output   *Output
	client   *api.Client
	ctrl     *controller.Controller
	registry *personas.Registry
	renderer *Renderer
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewREPL creates a new chat loop around a backend client
func NewREPL(session *Session, client *api.Client, registry *personas.Registry) (*REPL, error) {
	input, err := NewInputHandler(session)
	if err != nil {
		return nil, fmt.Errorf("failed to create input handler: %w", err)
	}

	output := NewOutput()
	renderer := NewRenderer()

	ctrl := controller.New(controller.Config{
		Backend:        client,
		LoadDisplay:    &statusDisplay{output: output, logger: session.Logger},
		SummaryDisplay: &statusDisplay{output: output, renderer: renderer, logger: session.Logger},
		Log:            &chatLog{output: output, renderer: renderer, logger: session.Logger},
		Notifier:       &warnNotifier{output: output},
		Persona:        session.GetPersona(),
	})

	ctx, cancel := context.WithCancel(context.Background())

	return &REPL{
		session:  session,
		input:    input,
		output:   output,
		client:   client,
		ctrl:     ctrl,
		registry: registry,
		renderer: renderer,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Run starts the chat loop
func (r *REPL) Run() error {
	defer r.Close()

	r.printWelcome()

	for {
		line, err := r.input.ReadLine()
		if err != nil {
			if err == readline.ErrInterrupt {
				// Ctrl+C - just show new prompt
				continue
			}
			if err == io.EOF {
				// Ctrl+D or EOF - exit gracefully
				r.output.PrintMessage("\nGoodbye!\n")
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}

		// Skip empty lines
		if strings.TrimSpace(line) == "" {
			continue
		}

		r.session.AddToHistory(line)
		r.session.Logger.LogInput(line)

		cmd := ParseCommand(line)

		if err := r.handleCommand(cmd); err != nil {
			if err == io.EOF {
				// Exit requested
				r.output.PrintMessage("\nGoodbye!\n")
				return nil
			}
			r.session.Logger.LogError(err)
			r.output.PrintError("Error: %v\n", err)
		}
	}
}

// handleCommand handles a parsed command
func (r *REPL) handleCommand(cmd *Command) error {
	switch cmd.Type {
	case CommandTypeSlash:
		return r.handleSlashCommand(cmd)
	case CommandTypeQuestion:
		return r.handleQuestion(cmd)
	default:
		r.output.PrintWarning("Unknown command\n")
		return nil
	}
}

// handleSlashCommand dispatches slash commands
func (r *REPL) handleSlashCommand(cmd *Command) error {
	switch cmd.Name {
	case "help", "h", "?":
		r.printHelp()
		return nil

	case "quit", "exit", "q":
		return io.EOF

	case "load":
		return r.handleLoad(cmd.Args)

	case "summary", "summarize":
		return r.handleSummary(cmd.Args)

	case "persona":
		return r.handlePersona(cmd.Args)

	case "role":
		return r.handleRole(cmd.Args)

	case "health", "status":
		return r.handleHealth()

	case "history":
		r.printHistory()
		return nil

	case "info", "context":
		r.printContext()
		return nil

	case "clear", "cls":
		ClearScreen()
		return nil

	default:
		r.output.PrintWarning("Unknown command: /%s\n", cmd.Name)
		r.output.PrintMessage("Type /help for available commands\n")
		return nil
	}
}

// handleQuestion sends free text to the backend as a question
func (r *REPL) handleQuestion(cmd *Command) error {
	r.session.Logger.LogRequest("ask: %s\n", cmd.Text)

	spinner := NewSpinner(r.output.Writer(), "Thinking...")
	spinner.Start()
	r.ctrl.AskQuestion(r.ctx, cmd.Text)
	spinner.Stop()

	return nil
}

// handleLoad runs the repository load operation
func (r *REPL) handleLoad(args []string) error {
	repoURL := strings.Join(args, " ")
	if strings.TrimSpace(repoURL) != "" {
		r.session.SetRepoURL(strings.TrimSpace(repoURL))
	}

	r.session.Logger.LogRequest("load_repo: %s\n", repoURL)
	r.ctrl.LoadRepository(r.ctx, repoURL)
	return nil
}

// handleSummary runs the summary operation. With no arguments it reuses
// the session's role and last repository; with arguments the first may be
// a known role name and the rest is the repository URL.
func (r *REPL) handleSummary(args []string) error {
	role := r.session.GetRole()
	repoURL := r.session.GetRepoURL()

	if len(args) > 0 {
		if _, ok := r.registry.Role(args[0]); ok {
			role = args[0]
			args = args[1:]
		}
	}
	if len(args) > 0 {
		repoURL = strings.Join(args, " ")
		r.session.SetRepoURL(repoURL)
	}

	r.session.Logger.LogRequest("process_repo: role=%s repo=%s\n", role, repoURL)
	r.ctrl.GenerateSummary(r.ctx, role, repoURL)
	return nil
}

// handlePersona lists or switches personas
func (r *REPL) handlePersona(args []string) error {
	if len(args) == 0 {
		r.output.PrintMessage("Current persona: %s\n\nAvailable personas:\n", r.session.GetPersona())
		for _, p := range r.registry.Personas() {
			r.output.PrintMessage("  - %s: %s\n", p.Name, p.Description)
		}
		return nil
	}

	name := strings.Join(args, " ")
	if _, ok := r.registry.Persona(name); !ok {
		r.output.PrintWarning("Unknown persona: %s\n", name)
		r.output.PrintMessage("Use /persona to list available personas\n")
		return nil
	}

	r.session.SetPersona(name)
	r.ctrl.SetPersona(name)
	r.input.UpdatePrompt()
	r.output.PrintSuccess("Persona set to %s\n", name)
	return nil
}

// handleRole lists or switches summary roles
func (r *REPL) handleRole(args []string) error {
	if len(args) == 0 {
		r.output.PrintMessage("Current role: %s\n\nAvailable roles:\n", r.session.GetRole())
		for _, role := range r.registry.Roles() {
			r.output.PrintMessage("  - %s: %s\n", role.Name, role.Description)
		}
		return nil
	}

	name := strings.Join(args, " ")
	if _, ok := r.registry.Role(name); !ok {
		r.output.PrintWarning("Unknown role: %s\n", name)
		r.output.PrintMessage("Use /role to list available roles\n")
		return nil
	}

	r.session.SetRole(name)
	r.output.PrintSuccess("Role set to %s\n", name)
	return nil
}

// handleHealth probes the backend health endpoint
func (r *REPL) handleHealth() error {
	status, err := r.client.Health(r.ctx)
	if err != nil {
		r.output.PrintError("Backend unreachable: %v\n", err)
		return nil
	}

	r.output.PrintSuccess("Backend status: %s\n", status.Status)
	if status.HasRepo {
		r.output.PrintMessage("   A repository is loaded and ready for questions\n")
	} else {
		r.output.PrintMessage("   No repository loaded yet - use /load <url>\n")
	}
	return nil
}

// printHistory prints the session input history
func (r *REPL) printHistory() {
	history := r.session.GetHistory()
	if len(history) == 0 {
		r.output.PrintMessage("No history\n")
		return
	}

	r.output.PrintMessage("History:\n")
	for i, line := range history {
		r.output.PrintMessage("  %d: %s\n", i+1, line)
	}
}

// printContext prints current session context
func (r *REPL) printContext() {
	duration := time.Since(r.session.StartTime).Round(time.Second)

	r.output.PrintMessage("Session:\n")
	r.output.PrintMessage("  ID: %s\n", r.session.ID)
	r.output.PrintMessage("  Server: %s\n", r.client.BaseURL())
	r.output.PrintMessage("  Persona: %s\n", r.session.GetPersona())
	r.output.PrintMessage("  Role: %s\n", r.session.GetRole())
	if repo := r.session.GetRepoURL(); repo != "" {
		r.output.PrintMessage("  Repository: %s\n", repo)
	}
	r.output.PrintMessage("  Duration: %s\n", duration)
	r.output.PrintMessage("  Inputs: %d\n", len(r.session.GetHistory()))
}

// printHelp prints command help
func (r *REPL) printHelp() {
	r.output.PrintMessage(`Commands:
  /load <url>            Load a repository into the backend
  /summary [role] [url]  Generate a role-oriented summary
  /persona [name]        Show or switch the answer persona
  /role [name]           Show or switch the summary role
  /health                Check backend status
  /history               Show input history
  /info                  Show session context
  /clear                 Clear the screen
  /quit                  Exit

Anything else is sent to the backend as a question about the
loaded repository.
`)
}

// printWelcome prints the welcome message
func (r *REPL) printWelcome() {
	r.output.PrintMessage("\n")
	r.output.PrintMessage("repotutor - chat with a repository\n")
	r.output.PrintMessage("Server: %s\n", r.client.BaseURL())
	r.output.PrintMessage("Persona: %s\n", r.session.GetPersona())

	if r.session.DebugMode {
		r.output.PrintMessage("\n🐛 Debug mode enabled\n")
		r.output.PrintMessage("📁 Logs: %s\n", r.session.Logger.GetSessionDir())
	}

	r.output.PrintMessage("\nType /help for commands, /quit to exit\n\n")
}

// Close closes the chat loop and cleans up resources
func (r *REPL) Close() error {
	r.cancel()

	if r.session.Logger != nil {
		r.session.Logger.Flush()
	}

	if err := r.session.Close(); err != nil {
		r.output.PrintWarning("failed to close session: %v\n", err)
	}

	if r.input != nil {
		return r.input.Close()
	}

	return nil
}
