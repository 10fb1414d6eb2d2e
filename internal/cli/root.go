// Package cli implements the TimeScore command-line interface using
// Cobra. Each subcommand maps to one capability (record, status, wish,
// dashboard, serve, ...).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "timescore",
	Short: "TimeScore — score your time, spend it on wishes",
	Long: `TimeScore is a personal behavior tracker.
Log timed activities, earn points shaped by your energy and streaks,
and redeem accumulated points against your own wishes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
