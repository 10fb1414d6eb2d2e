package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show today's timeline and headline numbers",
	RunE:  runDashboard,
}

func runDashboard(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	sum, err := a.tracker.Summarize()
	if err != nil {
		return err
	}

	fmt.Println(strings.Repeat("=", 52))
	fmt.Println("TimeScore Dashboard")
	fmt.Println(strings.Repeat("=", 52))
	fmt.Printf("Total score: %10.1f    Available: %10.1f\n", sum.TotalScore, sum.AvailableScore)
	fmt.Printf("Today:       %10.1f    Behaviors: %10d\n", sum.TodayScore, sum.TodayCount)
	fmt.Printf("Energy:      %10.1f    Status:    %10s\n", sum.CurrentEnergy, sum.EnergyStatus)
	fmt.Printf("Streak:      %10d\n", sum.ComboStreak)

	today, err := a.tracker.Today()
	if err != nil {
		return err
	}
	if len(today) == 0 {
		fmt.Println("\nNo behaviors recorded today.")
		return nil
	}

	fmt.Println("\nTimeline")
	fmt.Println(strings.Repeat("-", 52))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, b := range today {
		marker := levelMarker(string(b.EffectiveLevel()))
		fmt.Fprintf(w, "%s–%s\t%s %s\t%s\t%+.1f\n",
			b.Start.Format("15:04"),
			b.End.Format("15:04"),
			marker,
			b.EffectiveLevel(),
			b.Name,
			b.FinalScore,
		)
	}
	return w.Flush()
}

// levelMarker picks a one-character timeline glyph per level family.
func levelMarker(level string) string {
	switch {
	case level == "S":
		return "★"
	case level == "A" || level == "B":
		return "●"
	case strings.HasPrefix(level, "R"):
		return "○"
	default:
		return "▽"
	}
}
