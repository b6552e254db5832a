// Command server runs the career displacement-risk service.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/BerylCAtieno/career-risk-agent/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "career-risk",
	Short: "Career displacement-risk service",
	Long:  "Scores how exposed a job is to automation and AI using a hosted language model, and serves premium career insights.",
	// Load .env before any subcommand reads the environment.
	PersistentPreRunE: func(*cobra.Command, []string) error {
		return config.LoadDotEnv()
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
