package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Mr-XX23/quiz-agentic/internal/agent"
)

var runSessionID string

var runCmd = &cobra.Command{
	Use:   "run [instruction...]",
	Short: "Process one instruction and print the resulting session state",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := agent.New(cfg)
		if err != nil {
			return err
		}

		instruction := strings.Join(args, " ")
		state, err := a.ProcessTurn(cmd.Context(), runSessionID, instruction)
		if err != nil {
			return err
		}

		out, err := state.MarshalIndent()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))

		if state.ErrorMessage != "" {
			return fmt.Errorf("turn failed: %s", state.ErrorMessage)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringVarP(&runSessionID, "session", "s", "", "session id (defaults to the configured session)")
}
