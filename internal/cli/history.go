package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var historyLimit int

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 20, "number of behaviors to show")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent scored behaviors",
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	behaviors, err := a.tracker.History(historyLimit)
	if err != nil {
		return err
	}
	if len(behaviors) == 0 {
		fmt.Println("No behaviors recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tLEVEL\tNAME\tMIN\tMOOD\tSCORE\tENERGY")
	for _, b := range behaviors {
		level := string(b.Level)
		if b.ResolvedLevel != b.Level {
			level = fmt.Sprintf("%s→%s", b.Level, b.ResolvedLevel)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%+.1f\t%+.1f\n",
			b.Start.Format("01-02 15:04"),
			level,
			b.Name,
			b.Duration,
			b.Mood,
			b.FinalScore,
			-b.EnergyDelta,
		)
	}
	return w.Flush()
}
