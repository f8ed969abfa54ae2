// jumpcoins is a terminal platformer where every jump past the first
// costs a coin.
//
// Usage:
//
//	jumpcoins play [level]      - Play from the saved level, or a given one
//	jumpcoins levels            - List the levels of the pack
//	jumpcoins progress          - Show saved progress and run history
//	jumpcoins rulesets          - List available rule sets
//	jumpcoins serve             - Start SSH server for remote play
//	jumpcoins validate <file>   - Check level files
//	jumpcoins reset             - Erase the save
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.jumpcoins/jumpcoins.db)
//	--levels <dir>       - Load levels from a directory instead of the built-in pack
//	--rules <file>       - Load gameplay rules from a YAML file
//	--ruleset <id>       - Apply a rule set (default: classic)
//	--log-level <level>  - Log level (debug, info, warn, error)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import rule sets to register them
	_ "github.com/vovakirdan/jumpcoins/internal/rulesets"
)

var (
	// Global flags, empty values fall back to the JUMPCOINS_* environment
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLevels   string
	flagRules    string
	flagRuleSet  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "jumpcoins",
	Short: "Jumpcoins - a platformer where jumps cost coins",
	Long: `Jumpcoins is a terminal platformer. Collect coins to pay for double
jumps and wall jumps, reach the exit, and earn badges on the way.

Available commands:
  play      - Play the game
  levels    - List the levels of the pack
  progress  - Show best times, badges and history
  rulesets  - List available rule sets
  serve     - Start SSH server for remote play
  validate  - Check level files
  reset     - Erase the save

Examples:
  jumpcoins play
  jumpcoins play 3
  jumpcoins play --ruleset assist
  jumpcoins serve --ssh :2222
  jumpcoins validate ./levels/*.yaml`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (frames per second, default 60)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the save database (default ~/.jumpcoins/jumpcoins.db)")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Directory of level files (default: built-in pack)")
	rootCmd.PersistentFlags().StringVar(&flagRules, "rules", "", "Path to a custom rules YAML")
	rootCmd.PersistentFlags().StringVar(&flagRuleSet, "ruleset", "", "Rule set to apply (default classic)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(rulesetsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(resetCmd)
}
