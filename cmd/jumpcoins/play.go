package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/jumpcoins/internal/level"
	"github.com/vovakirdan/jumpcoins/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play the game",
	Long: `Start the game. Without an argument the level menu opens with the
cursor on the saved level. A level number (starting at 1) or a level id
starts that level right away.

Controls:
  Left/Right, A/D  - Walk
  Space/Z/X        - Jump
  Down/S           - Drop through platforms
  R                - Restart level
  [ / ]            - Previous / next level
  P                - Pause
  Esc/B            - Back to menu
  Q/Ctrl+C         - Quit

Examples:
  jumpcoins play
  jumpcoins play 4
  jumpcoins play intro-jumps
  jumpcoins play --ruleset speedrun`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	s, err := settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := terminalConfig(s)
	cfg.Seed = flagSeed

	l, err := openLocal(s, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	start := -1
	if len(args) == 1 {
		start, err = resolveLevel(l.env.Pack, args[0])
		if err != nil {
			l.Close()
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintln(os.Stderr, "Run 'jumpcoins levels' to see available levels.")
			os.Exit(1)
		}
	}

	runErr := tui.Run(l.env, start)

	// Close store before potential exit
	l.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// resolveLevel accepts a 1-based level number or a level id.
func resolveLevel(pack *level.Pack, arg string) (int, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > pack.Count() {
			return 0, fmt.Errorf("level %d out of range 1-%d", n, pack.Count())
		}
		return n - 1, nil
	}
	if i := pack.Index(arg); i >= 0 {
		return i, nil
	}
	return 0, fmt.Errorf("unknown level %q", arg)
}
