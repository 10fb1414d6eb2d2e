package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var wishCost int64

func init() {
	wishAddCmd.Flags().Int64VarP(&wishCost, "cost", "c", 0, "point cost (required)")
	_ = wishAddCmd.MarkFlagRequired("cost")

	wishCmd.AddCommand(wishAddCmd)
	wishCmd.AddCommand(wishListCmd)
	wishCmd.AddCommand(wishRedeemCmd)
	wishCmd.AddCommand(wishArchiveCmd)
	rootCmd.AddCommand(wishCmd)
}

var wishCmd = &cobra.Command{
	Use:   "wish",
	Short: "Manage wishes redeemable with points",
}

var wishAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a new wish",
	Args:  cobra.ExactArgs(1),
	RunE:  runWishAdd,
}

var wishListCmd = &cobra.Command{
	Use:   "list",
	Short: "List wishes with progress",
	RunE:  runWishList,
}

var wishRedeemCmd = &cobra.Command{
	Use:   "redeem ID",
	Short: "Redeem a wish against accumulated points",
	Args:  cobra.ExactArgs(1),
	RunE:  runWishRedeem,
}

var wishArchiveCmd = &cobra.Command{
	Use:   "archive ID",
	Short: "Retire a pending wish without spending points",
	Args:  cobra.ExactArgs(1),
	RunE:  runWishArchive,
}

func runWishAdd(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	w, err := a.wishes.Add(args[0], wishCost)
	if err != nil {
		return err
	}

	fmt.Printf("Added wish %q for %d points (id %s)\n", w.Name, w.Cost, w.ID)
	return nil
}

func runWishList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	available, err := a.wishes.AvailableScore()
	if err != nil {
		return err
	}
	wishes, err := a.wishes.List()
	if err != nil {
		return err
	}
	if len(wishes) == 0 {
		fmt.Println("No wishes yet. Add one with: timescore wish add NAME --cost N")
		return nil
	}

	fmt.Printf("Available points: %.1f\n\n", available)
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCOST\tSTATUS\tPROGRESS")
	for _, w := range wishes {
		status := string(w.Status)
		if w.CanRedeem(available) {
			status += " ✓"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s %3.0f%%\n",
			w.ID, w.Name, w.Cost, status, progressBar(w.Progress), w.Progress*100)
	}
	return tw.Flush()
}

func runWishRedeem(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	w, err := a.wishes.Redeem(args[0])
	if err != nil {
		return err
	}

	remaining, err := a.wishes.AvailableScore()
	if err != nil {
		return err
	}

	fmt.Printf("Redeemed %q for %d points. %.1f points remaining.\n", w.Name, w.Cost, remaining)
	return nil
}

func runWishArchive(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	w, err := a.wishes.Archive(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Archived %q.\n", w.Name)
	return nil
}

// progressBar renders a 10-cell progress bar.
func progressBar(p float64) string {
	const cells = 10
	filled := int(p * cells)
	if filled > cells {
		filled = cells
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("■", filled) + strings.Repeat("□", cells-filled) + "]"
}
