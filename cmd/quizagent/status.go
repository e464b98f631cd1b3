package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mr-XX23/quiz-agentic/internal/agent"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the agent's configured surface as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := agent.New(cfg)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(a.Status(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}
