// repotutor is a terminal client for a repo-tutor backend: load a GitHub
// repository into the backend, ask questions about it, and generate
// role-oriented summaries, either as one-shot commands or in an
// interactive chat session.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/repotutor/repotutor/pkg/config"
)

const version = "0.1.0"

var (
	// Global flags
	configFile string
	serverURL  string
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "repotutor",
		Short: "Chat with a GitHub repository through a repo-tutor backend",
		Long: `repotutor is a terminal client for a repo-tutor backend.

The backend clones a GitHub repository, builds a context digest, and
answers questions about the code. This client drives the three backend
operations:

  load       Load a repository into the backend
  ask        Ask a question about the loaded repository
  summarize  Generate a role-oriented summary of a repository

Use "repotutor chat" for an interactive session.`,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to config file (default: .repotutor.json)")
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "", "Backend base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(loadCmd())
	rootCmd.AddCommand(askCmd())
	rootCmd.AddCommand(summarizeCmd())
	rootCmd.AddCommand(healthCmd())
	rootCmd.AddCommand(doctorCmd())
	rootCmd.AddCommand(chatCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads configuration and applies flag overrides. A missing
// config file is not fatal when --server is given or defaults suffice.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error

	if configFile != "" {
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, err
		}
	} else {
		cfg, err = config.LoadDefault()
		if err != nil {
			cfg = config.Default()
		}
	}

	if serverURL != "" {
		cfg.Server.BaseURL = serverURL
	}
	if verbose {
		cfg.Init.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the client version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("repotutor version %s\n", version)
		},
	}
}
