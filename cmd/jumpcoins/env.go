package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/jumpcoins/internal/config"
	"github.com/vovakirdan/jumpcoins/internal/core"
	"github.com/vovakirdan/jumpcoins/internal/level"
	"github.com/vovakirdan/jumpcoins/internal/platform/tui"
	"github.com/vovakirdan/jumpcoins/internal/registry"
	"github.com/vovakirdan/jumpcoins/internal/save"
	"github.com/vovakirdan/jumpcoins/internal/storage"
)

// settings reads the environment and applies the global flags on top.
func settings() (config.Settings, error) {
	s, err := config.LoadSettings()
	if err != nil {
		return s, err
	}
	if flagFPS > 0 {
		s.FPS = flagFPS
	}
	if flagDBPath != "" {
		s.DBPath = flagDBPath
	}
	if flagLevels != "" {
		s.LevelsDir = flagLevels
	}
	if flagRules != "" {
		s.RulesPath = flagRules
	}
	if flagRuleSet != "" {
		s.RuleSet = flagRuleSet
	}
	if flagLogLevel != "" {
		s.LogLevel = flagLogLevel
	}
	return s, nil
}

// openLog creates the file logger. The terminal belongs to the game, so
// log lines go to a file.
func openLog(s config.Settings) (*log.Logger, io.Closer, error) {
	lvl, err := log.ParseLevel(s.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", s.LogLevel, err)
	}

	path, err := config.ExpandHome(s.LogFile)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "jumpcoins",
		Level:           lvl,
	})
	return logger, f, nil
}

// terminalConfig sizes the screen to the process terminal.
func terminalConfig(s config.Settings) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.TickRate = s.FPS
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	return cfg
}

// loadGame resolves the rules and the level pack.
func loadGame(s config.Settings) (*config.Rules, *level.Pack, error) {
	base, err := config.LoadRules(s.RulesPath)
	if err != nil {
		return nil, nil, err
	}
	rules, err := registry.Apply(s.RuleSet, base)
	if err != nil {
		return nil, nil, err
	}
	pack, err := level.LoadPack(s.LevelsDir)
	if err != nil {
		return nil, nil, err
	}
	return rules, pack, nil
}

// local is an opened local player: the front end environment plus the
// resources it holds.
type local struct {
	env     tui.Env
	store   *storage.Store
	logFile io.Closer
}

func (l *local) Close() {
	if l.env.Save != nil {
		l.env.Save.Persist()
	}
	if l.store != nil {
		l.store.Close()
	}
	if l.logFile != nil {
		l.logFile.Close()
	}
}

// openLocal opens the local save and history for the terminal player.
func openLocal(s config.Settings, cfg core.RuntimeConfig) (*local, error) {
	logger, logFile, err := openLog(s)
	if err != nil {
		return nil, err
	}
	l := &local{logFile: logFile}

	rules, pack, err := loadGame(s)
	if err != nil {
		l.Close()
		return nil, err
	}

	store, err := storage.Open(s.DBPath)
	if err != nil {
		l.Close()
		return nil, fmt.Errorf("could not open database: %w", err)
	}
	l.store = store

	st, err := save.Open(store, pack.IDs(), save.WithLogger(logger))
	if err != nil {
		l.Close()
		return nil, err
	}

	logger.Info("session opened", "ruleset", s.RuleSet, "levels", pack.Count(), "db", s.DBPath)

	l.env = tui.Env{
		Rules:   rules,
		RuleSet: s.RuleSet,
		Pack:    pack,
		Save:    st,
		History: store,
		Logger:  logger,
		Config:  cfg,
	}
	return l, nil
}
