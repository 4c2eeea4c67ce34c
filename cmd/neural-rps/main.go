// Package main provides the CLI entry point for neural-rps.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ZachBeta/neural-rps/cmd/neural-rps/commands"
)

var version = "1.0.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "neural-rps",
	Short: "Neural RPS - policy-gradient card game demos",
	Long: `Neural RPS trains a small policy-gradient agent to play a
rock-paper-scissors card game and serves move selection for the
board-placement variant.

It provides:
  - Policy-gradient training against random or dealt opponents
  - Configurable state encodings and model persistence
  - A move-selection utility for serialized board states
  - SQLite-backed training run history`,
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Missing .env is fine; environment variables still apply.
		_ = godotenv.Load()
		commands.ConfigureLogging()
	},
}

func init() {
	rootCmd.AddCommand(commands.TrainCmd)
	rootCmd.AddCommand(commands.AgentCmd)
	rootCmd.AddCommand(commands.RunsCmd)
}
