package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Settings holds process-level options read from the environment.
// Command-line flags override them.
type Settings struct {
	DBPath    string `env:"JUMPCOINS_DB" envDefault:"~/.jumpcoins/jumpcoins.db"`
	LevelsDir string `env:"JUMPCOINS_LEVELS"` // empty means the built-in pack
	RulesPath string `env:"JUMPCOINS_RULES"`  // empty means the search order
	RuleSet   string `env:"JUMPCOINS_RULESET" envDefault:"classic"`
	LogLevel  string `env:"JUMPCOINS_LOG_LEVEL" envDefault:"info"`
	LogFile   string `env:"JUMPCOINS_LOG_FILE" envDefault:"~/.jumpcoins/jumpcoins.log"`
	FPS       int    `env:"JUMPCOINS_FPS" envDefault:"60"`
	SSHAddr   string `env:"JUMPCOINS_SSH_ADDR" envDefault:":23234"`
}

// LoadSettings parses Settings from the environment.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return s, fmt.Errorf("config: parse environment: %w", err)
	}
	if s.FPS <= 0 {
		return s, fmt.Errorf("config: JUMPCOINS_FPS must be positive, got %d", s.FPS)
	}
	return s, nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path[1:], "/")), nil
}
