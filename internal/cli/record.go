package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/timescore-labs/timescore/internal/app/tracker"
	"github.com/timescore-labs/timescore/internal/domain"
)

var (
	recordName     string
	recordDuration int
	recordMood     int
)

func init() {
	recordCmd.Flags().StringVarP(&recordName, "name", "n", "", "behavior name (used for repetition dampening)")
	recordCmd.Flags().IntVarP(&recordDuration, "duration", "d", 0, "duration in minutes (required)")
	recordCmd.Flags().IntVarP(&recordMood, "mood", "m", 3, "mood rating 1-5")
	_ = recordCmd.MarkFlagRequired("duration")
	rootCmd.AddCommand(recordCmd)
}

var recordCmd = &cobra.Command{
	Use:   "record LEVEL",
	Short: "Record and score one behavior",
	Long: `Record one timed behavior at a quality level and score it.

Levels: S (breakthrough), A (progress), B (maintenance),
C (time drain), D (self-harm), R/R1/R2/R3 (recovery).
A bare R is resolved to a sub-tier from mood, duration, and context.`,
	Args: cobra.ExactArgs(1),
	RunE: runRecord,
}

func runRecord(cmd *cobra.Command, args []string) error {
	level, err := domain.ParseLevel(args[0])
	if err != nil {
		return err
	}
	if recordDuration <= 0 {
		return fmt.Errorf("duration must be a positive number of minutes, got %d", recordDuration)
	}
	if recordMood < 1 || recordMood > 5 {
		return fmt.Errorf("mood must be 1-5, got %d", recordMood)
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	b, err := a.tracker.Record(tracker.Input{
		Name:     recordName,
		Level:    level,
		Duration: recordDuration,
		Mood:     recordMood,
	})
	if err != nil {
		return err
	}

	energy, status, err := a.tracker.EnergyStatus()
	if err != nil {
		return err
	}

	fmt.Printf("Scored %s", b.Level)
	if b.ResolvedLevel != b.Level {
		fmt.Printf(" (resolved %s)", b.ResolvedLevel)
	}
	fmt.Printf(" for %d min: %+.1f points\n", b.Duration, b.FinalScore)
	fmt.Printf("Energy: %.1f (%s), delta %+.1f\n", energy, status, -b.EnergyDelta)
	return nil
}
