package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Mr-XX23/quiz-agentic/internal/agent"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the agent and serve both protocol endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := agent.New(cfg)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if err := a.Start(ctx); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "quiz agent running (a2a :%d, mcp :%d), ctrl-c to stop\n",
			cfg.A2A.Port, cfg.MCP.Port)

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return a.Stop(shutdownCtx)
	},
}
