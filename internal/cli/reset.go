package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(resetCmd)
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Apply the daily overnight energy recovery",
	Long: `Apply the once-per-day overnight energy recovery.
Safe to call repeatedly — a second reset on the same calendar day is a no-op.`,
	RunE: runReset,
}

func runReset(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	energy, err := a.tracker.DailyReset()
	if err != nil {
		return err
	}

	fmt.Printf("Energy: %.1f / %.0f\n", energy, a.cfg.Energy.Max)
	return nil
}
