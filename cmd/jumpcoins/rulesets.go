package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/jumpcoins/internal/registry"
)

var rulesetsCmd = &cobra.Command{
	Use:   "rulesets",
	Short: "List available rule sets",
	Long:  `Shows the rule sets that can be passed to --ruleset.`,
	Run:   runRuleSets,
}

func runRuleSets(_ *cobra.Command, _ []string) {
	sets := registry.List()

	if len(sets) == 0 {
		fmt.Println("No rule sets available.")
		return
	}

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, rs := range sets {
		maxIDLen = max(maxIDLen, len(rs.ID))
	}

	// Print header
	fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, "ID", "Title", "Description")
	fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, "--", "-----", "-----------")

	for _, rs := range sets {
		fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, rs.ID, rs.Title, rs.Description)
	}

	fmt.Println()
	fmt.Println("Run 'jumpcoins play --ruleset <id>' to play with a rule set.")
}
