package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Mr-XX23/quiz-agentic/internal/config"
)

var (
	configPath string
	verbose    bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "quizagent",
	Short: "Quiz Agent - LLM-backed quiz orchestrator",
	Long: `Quiz Agent generates, validates and serves quizzes from natural
language instructions. It researches topics with web search and content
extraction, and exposes its capabilities to other agents over the A2A
peer protocol and to tool callers over a JSON-RPC (MCP) endpoint.`,
	PersistentPreRunE: loadConfig,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
}

// loadConfig loads .env (when present) and the YAML config before any
// command runs. A missing config file falls back to defaults.
func loadConfig(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	loaded, err := config.LoadWithDefaults(configPath)
	if err != nil {
		return err
	}
	if verbose {
		loaded.Logging.Level = "debug"
	}
	cfg = loaded
	return nil
}
