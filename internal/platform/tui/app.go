package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/jumpcoins/internal/config"
	"github.com/vovakirdan/jumpcoins/internal/core"
	"github.com/vovakirdan/jumpcoins/internal/game"
	"github.com/vovakirdan/jumpcoins/internal/level"
	"github.com/vovakirdan/jumpcoins/internal/save"
	"github.com/vovakirdan/jumpcoins/internal/storage"
)

// Env is everything the front end needs to build games for one player.
type Env struct {
	Rules    *config.Rules
	RuleSet  string
	Pack     *level.Pack
	Save     *save.Store
	History  *storage.Store // optional
	Player   string         // history owner, defaults to the save key
	Logger   *log.Logger
	Config   core.RuntimeConfig
	Renderer *lipgloss.Renderer // nil means the process terminal
}

func (e Env) logger() *log.Logger {
	if e.Logger == nil {
		return log.Default()
	}
	return e.Logger
}

func (e Env) renderer() *lipgloss.Renderer {
	if e.Renderer == nil {
		return lipgloss.DefaultRenderer()
	}
	return e.Renderer
}

func (e Env) player() string {
	if e.Player == "" {
		return e.Save.Key()
	}
	return e.Player
}

// NewGame creates a game at the level index stored in the save.
func (e Env) NewGame() (*game.Game, error) {
	opts := game.Options{
		Rules:   e.Rules,
		Pack:    e.Pack,
		Save:    e.Save,
		RuleSet: e.RuleSet,
		Player:  e.player(),
		Logger:  e.logger(),
		Config:  e.Config,
	}
	if e.History != nil {
		opts.History = e.History
	}
	return game.New(opts)
}

type view int

const (
	viewMenu view = iota
	viewGame
	viewProgress
)

// App manages the full flow: menu -> game -> menu, plus the progress
// screen. It is the top-level model both locally and over SSH.
type App struct {
	env      Env
	styles   Styles
	view     view
	menu     MenuModel
	play     *Model
	progress ProgressModel
	quitting bool
	err      error
}

// NewApp creates the app. A start index of zero or more skips the menu
// and plays that level right away.
func NewApp(env Env, start int) App {
	a := App{
		env:    env,
		styles: NewStyles(env.Renderer),
		menu:   NewMenuModel(env),
	}
	if start >= 0 {
		a.startGame(start)
	}
	return a
}

func (a *App) startGame(index int) tea.Cmd {
	a.env.Save.SetLevelIndex(a.env.Pack.Wrap(index))
	g, err := a.env.NewGame()
	if err != nil {
		a.err = fmt.Errorf("tui: %w", err)
		a.quitting = true
		return tea.Quit
	}
	m := NewModel(g, a.env.Config, a.styles)
	a.play = &m
	a.view = viewGame
	return m.Init()
}

func (a *App) showMenu() tea.Cmd {
	if a.play != nil {
		a.play.game.Close()
		a.play = nil
	}
	a.menu = NewMenuModel(a.env)
	a.view = viewMenu
	return a.menu.Init()
}

// Init starts the active screen.
func (a App) Init() tea.Cmd {
	if a.quitting {
		return tea.Quit
	}
	if a.view == viewGame && a.play != nil {
		return a.play.Init()
	}
	return a.menu.Init()
}

// Update routes the message to the active screen.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		a.env.Config.ScreenW = wsm.Width
		a.env.Config.ScreenH = wsm.Height
	}

	switch a.view {
	case viewGame:
		return a.updateGame(msg)
	case viewProgress:
		return a.updateProgress(msg)
	}
	return a.updateMenu(msg)
}

func (a App) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := a.menu.Update(msg)
	if mm, ok := next.(MenuModel); ok {
		a.menu = mm
	}

	switch {
	case a.menu.IsQuitting():
		a.quitting = true
		return a, tea.Quit
	case a.menu.WantsProgress():
		a.progress = NewProgressModel(a.env, a.env.Config.ScreenW, a.env.Config.ScreenH)
		a.view = viewProgress
		return a, a.progress.Init()
	case a.menu.Selected() != nil:
		cmd := a.startGame(a.menu.Selected().Index)
		return a, cmd
	}
	return a, cmd
}

func (a App) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := a.play.Update(msg)
	if gm, ok := next.(Model); ok {
		a.play = &gm
	}

	switch {
	case a.play.IsQuitting():
		a.err = a.play.Err()
		a.play.game.Close()
		a.quitting = true
		return a, tea.Quit
	case a.play.BackToMenu():
		return a, a.showMenu()
	}
	return a, cmd
}

func (a App) updateProgress(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := a.progress.Update(msg)
	if pm, ok := next.(ProgressModel); ok {
		a.progress = pm
	}

	switch {
	case a.progress.IsQuitting():
		a.quitting = true
		return a, tea.Quit
	case a.progress.IsGoingBack():
		return a, a.showMenu()
	}
	return a, cmd
}

// View renders the active screen.
func (a App) View() string {
	if a.quitting {
		return ""
	}
	switch a.view {
	case viewGame:
		return a.play.View()
	case viewProgress:
		return a.progress.View()
	}
	return a.menu.View()
}

// Err returns the error that ended the app, if any.
func (a App) Err() error {
	return a.err
}

// Run starts the app in the process terminal.
func Run(env Env, start int) error {
	p := tea.NewProgram(NewApp(env, start), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return err
	}
	if app, ok := final.(App); ok {
		return app.Err()
	}
	return nil
}
