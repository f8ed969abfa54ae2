package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/jumpcoins/internal/game"
	"github.com/vovakirdan/jumpcoins/internal/platform/tui"
)

var flagPlain bool

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show saved progress and run history",
	Long: `Display best times, totals and badges per level, plus the history of
won runs. Tab switches between the two tables.

Use --plain to print the level table without the interactive screen.

Examples:
  jumpcoins progress
  jumpcoins progress --plain`,
	Run: runProgress,
}

func init() {
	progressCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain table instead of the interactive screen")
}

func runProgress(_ *cobra.Command, _ []string) {
	s, err := settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	l, err := openLocal(s, terminalConfig(s))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer l.Close()

	if !flagPlain {
		if err := tui.RunProgress(l.env); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	stats, err := l.store.LevelStats(l.env.Save.Key())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not read history: %v\n", err)
	}

	fmt.Printf("Progress - %s\n", l.env.RuleSet)
	fmt.Println()

	// Print header
	fmt.Printf("  %3s  %-24s  %9s  %9s  %6s  %5s  %9s  %s\n", "#", "Level", "Best", "Total", "Deaths", "Runs", "Avg", "Badges")
	fmt.Printf("  %3s  %-24s  %9s  %9s  %6s  %5s  %9s  %s\n", "-", "-----", "----", "-----", "------", "----", "---", "------")

	for _, row := range tui.Progress(l.env.Pack, l.env.Save) {
		runs, avg := 0, "--"
		if st, ok := stats[row.ID]; ok {
			runs = st.Runs
			avg = game.FormatTime(st.Average)
		}
		fmt.Printf("  %3d  %-24s  %9s  %9s  %6d  %5d  %9s  %s\n",
			row.Index+1, row.Name, row.Best, row.Total, row.Deaths, runs, avg, row.Badges)
	}

	fmt.Println()
	fmt.Println(tui.BadgeLegend())
}
