package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/jumpcoins/internal/level"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the levels of the pack",
	Long:  `Shows the levels in play order, with their coins and enemies.`,
	Run:   runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	s, err := settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	pack, err := level.LoadPack(s.LevelsDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, id := range pack.IDs() {
		maxIDLen = max(maxIDLen, len(id))
	}

	// Print header
	fmt.Printf("  %3s  %-*s  %-24s  %5s  %7s\n", "#", maxIDLen, "ID", "Name", "Coins", "Enemies")
	fmt.Printf("  %3s  %-*s  %-24s  %5s  %7s\n", "-", maxIDLen, "--", "----", "-----", "-------")

	for i := range pack.Count() {
		lvl, err := pack.Get(i)
		if err != nil {
			continue
		}
		fmt.Printf("  %3d  %-*s  %-24s  %5d  %7d\n",
			i+1, maxIDLen, lvl.ID, lvl.Name, lvl.Count(level.GroupJumpcoins), lvl.Count(level.GroupEnemies))
	}

	fmt.Println()
	fmt.Println("Run 'jumpcoins play <number>' to play a level.")
}
