package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/repotutor/repotutor/pkg/api"
	"github.com/repotutor/repotutor/pkg/config"
	"github.com/repotutor/repotutor/pkg/controller"
	"github.com/repotutor/repotutor/pkg/doctor"
	"github.com/repotutor/repotutor/pkg/personas"
	"github.com/repotutor/repotutor/pkg/repl"
)

// newClient builds the backend client from config
func newClient(cfg *config.Config) *api.Client {
	return api.NewClient(api.ClientConfig{
		BaseURL: cfg.Server.BaseURL,
		Timeout: cfg.Timeout(),
	})
}

func loadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <repo-url>",
		Short: "Load a repository into the backend",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			repoURL := ""
			if len(args) > 0 {
				repoURL = args[0]
			}

			client := newClient(cfg)
			defer client.Close()

			display := &printDisplay{writer: os.Stdout}
			notifier := &stderrNotifier{writer: os.Stderr}
			ctrl := controller.New(controller.Config{
				Backend:     client,
				LoadDisplay: display,
				Notifier:    notifier,
			})

			ctrl.LoadRepository(context.Background(), repoURL)

			if notifier.notified || display.Failed() {
				os.Exit(1)
			}
			return nil
		},
	}
}

func askCmd() *cobra.Command {
	var persona string

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question about the loaded repository",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if persona == "" {
				persona = cfg.Chat.Persona
			}

			client := newClient(cfg)
			defer client.Close()

			log := &printLog{writer: os.Stdout}
			notifier := &stderrNotifier{writer: os.Stderr}
			ctrl := controller.New(controller.Config{
				Backend:  client,
				Log:      log,
				Notifier: notifier,
				Persona:  persona,
			})

			ctrl.AskQuestion(context.Background(), strings.Join(args, " "))

			if notifier.notified || log.failed {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&persona, "persona", "p", "", "Answer persona (default from config)")
	return cmd
}

func summarizeCmd() *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "summarize <repo-url>",
		Short: "Generate a role-oriented summary of a repository",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if role == "" {
				role = cfg.Chat.Role
			}

			repoURL := ""
			if len(args) > 0 {
				repoURL = args[0]
			}

			client := newClient(cfg)
			defer client.Close()

			display := &printDisplay{writer: os.Stdout}
			ctrl := controller.New(controller.Config{
				Backend:        client,
				SummaryDisplay: display,
			})

			ctrl.GenerateSummary(context.Background(), role, repoURL)

			if display.Failed() {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&role, "role", "r", "", "Summary role: developer, beginner, project_manager (default from config)")
	return cmd
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check backend status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			client := newClient(cfg)
			defer client.Close()

			status, err := client.Health(context.Background())
			if err != nil {
				return fmt.Errorf("backend unreachable: %w", err)
			}

			fmt.Printf("status: %s\n", status.Status)
			fmt.Printf("repository loaded: %v\n", status.HasRepo)
			return nil
		},
	}
}

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Run pre-flight checks against the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			checker := doctor.NewChecker(cfg)
			results, err := checker.CheckAll(cmd.Context())

			for _, result := range results {
				if result.Found {
					fmt.Printf("  ✓ %s", result.Name)
					if result.Detail != "" {
						fmt.Printf(": %s", result.Detail)
					}
					fmt.Println()
				} else {
					fmt.Printf("  ✗ %s: %s\n", result.Name, result.Error)
				}
			}

			if err != nil {
				os.Exit(1)
			}
			fmt.Println("All checks passed")
			return nil
		},
	}
}

func chatCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			// Pre-flight checks (unless skipped)
			if !cfg.Init.SkipChecks {
				checker := doctor.NewChecker(cfg)
				results, err := checker.CheckAll(cmd.Context())
				if err != nil {
					return err
				}
				if cfg.Init.Verbose {
					fmt.Println("✓ All pre-flight checks OK")
					for _, result := range results {
						if result.Found {
							fmt.Printf("  ✓ %s: %s\n", result.Name, result.Detail)
						}
					}
				}
			}

			registry := personas.NewRegistry()
			if err := registry.Discover(); err != nil {
				return fmt.Errorf("failed to load persona presets: %w", err)
			}

			client := newClient(cfg)
			defer client.Close()

			session, err := repl.NewSession(cfg, debug || cfg.Debug.Enabled)
			if err != nil {
				return fmt.Errorf("failed to create session: %w", err)
			}

			loop, err := repl.NewREPL(session, client, registry)
			if err != nil {
				return fmt.Errorf("failed to start chat: %w", err)
			}

			return loop.Run()
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug mode (keeps session logs)")
	return cmd
}
