package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/jumpcoins/internal/level"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check level files",
	Long: `Parse level files (YAML or TOML), resolve their glyphs and check that
each has exactly one spawn. Exits non-zero if any file fails.

Examples:
  jumpcoins validate levels/01-intro.yaml
  jumpcoins validate levels/*.toml`,
	Args: cobra.MinimumNArgs(1),
	Run:  runValidate,
}

func runValidate(_ *cobra.Command, args []string) {
	failed := 0
	for _, path := range args {
		lvl, err := level.LoadFile(path)
		if err == nil {
			err = lvl.Validate()
		}
		if err != nil {
			failed++
			fmt.Printf("  FAIL  %s: %v\n", path, err)
			continue
		}
		fmt.Printf("  ok    %s  %q %dx%d\n", path, lvl.ID, lvl.Width, lvl.Height)
	}

	if failed > 0 {
		fmt.Printf("\n%d of %d files failed\n", failed, len(args))
		os.Exit(1)
	}
}
