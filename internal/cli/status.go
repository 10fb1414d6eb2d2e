package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current energy and score totals",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	sum, err := a.tracker.Summarize()
	if err != nil {
		return err
	}

	fmt.Printf("Energy:     %.1f / %.0f (%s)\n", sum.CurrentEnergy, a.cfg.Energy.Max, sum.EnergyStatus)
	fmt.Printf("Today:      %.1f points over %d behaviors\n", sum.TodayScore, sum.TodayCount)
	fmt.Printf("Streak:     %d positive in window\n", sum.ComboStreak)
	fmt.Printf("Total:      %.1f points (%.1f available)\n", sum.TotalScore, sum.AvailableScore)
	return nil
}
