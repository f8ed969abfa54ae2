package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/jumpcoins/internal/core"
)

var (
	flagHistory bool
	flagYes     bool
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase the save",
	Long: `Replace the save with a fresh one: level 1, no times, no badges.
With --history the run history is erased as well.

Examples:
  jumpcoins reset --yes
  jumpcoins reset --yes --history`,
	Run: runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&flagHistory, "history", false, "Also erase the run history")
	resetCmd.Flags().BoolVar(&flagYes, "yes", false, "Confirm the reset")
}

func runReset(_ *cobra.Command, _ []string) {
	if !flagYes {
		fmt.Fprintln(os.Stderr, "Refusing to reset without --yes")
		os.Exit(1)
	}

	s, err := settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	l, err := openLocal(s, core.RuntimeConfig{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer l.Close()

	if err := l.env.Save.Reset(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	l.env.Logger.Info("save reset", "key", l.env.Save.Key())
	fmt.Println("Save reset.")

	if flagHistory {
		if err := l.store.ClearCompletions(l.env.Save.Key()); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing history: %v\n", err)
			return
		}
		fmt.Println("History cleared.")
	}
}
