package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/jumpcoins/internal/game"
	"github.com/vovakirdan/jumpcoins/internal/level"
	"github.com/vovakirdan/jumpcoins/internal/save"
	"github.com/vovakirdan/jumpcoins/internal/storage"
)

// maxRecent is how many history rows the progress screen loads.
const maxRecent = 100

var badgeMarks = map[save.Badge]string{
	save.BadgeCompleted:  "★",
	save.BadgeDeathless:  "♥",
	save.BadgeDamageless: "◆",
	save.BadgeRich:       "$",
	save.BadgeBirdie:     "●",
	save.BadgeKiller:     "✗",
}

// BadgeMarks renders one mark per badge, a dot where it is missing.
func BadgeMarks(rec *save.LevelRecord) string {
	var sb strings.Builder
	for _, b := range save.AllBadges {
		if rec != nil && rec.Has(b) {
			sb.WriteString(badgeMarks[b])
		} else {
			sb.WriteString("·")
		}
	}
	return sb.String()
}

// BadgeLegend explains the marks of BadgeMarks.
func BadgeLegend() string {
	parts := make([]string, 0, len(save.AllBadges))
	for _, b := range save.AllBadges {
		parts = append(parts, badgeMarks[b]+" "+b.String())
	}
	return strings.Join(parts, "  ")
}

// ProgressRow is the saved progress of one level.
type ProgressRow struct {
	Index  int
	ID     string
	Name   string
	Best   string
	Total  string
	Deaths int
	Jumps  int
	Badges string
}

// Progress builds one row per level of the pack in play order.
func Progress(pack *level.Pack, st *save.Store) []ProgressRow {
	rows := make([]ProgressRow, 0, pack.Count())
	for i := range pack.Count() {
		lvl, err := pack.Get(i)
		if err != nil {
			continue
		}
		rec := st.State().Levels[lvl.ID]
		row := ProgressRow{Index: i, ID: lvl.ID, Name: lvl.Name, Best: "--", Total: "--", Badges: BadgeMarks(rec)}
		if rec != nil {
			if best, ok := rec.Best(); ok {
				row.Best = game.FormatTime(best)
			}
			if rec.TotalTime > 0 {
				row.Total = game.FormatTime(time.Duration(rec.TotalTime) * time.Millisecond)
			}
			row.Deaths = rec.Deaths
			row.Jumps = rec.Jumps + rec.DoubleJumps + rec.WallJumps + rec.HyperJumps
		}
		rows = append(rows, row)
	}
	return rows
}

// ProgressKeyMap defines the key bindings for the progress screen.
type ProgressKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Switch key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ProgressKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Switch, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ProgressKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Switch},
		{k.Back, k.Quit},
	}
}

// DefaultProgressKeyMap returns default key bindings.
func DefaultProgressKeyMap() ProgressKeyMap {
	return ProgressKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "levels/history"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

type progressTab int

const (
	tabLevels progressTab = iota
	tabHistory
)

// ProgressModel is the Bubble Tea model for the progress screen.
type ProgressModel struct {
	env        Env
	tab        progressTab
	rows       []ProgressRow
	recent     []storage.Completion
	table      table.Model
	help       help.Model
	keys       ProgressKeyMap
	width      int
	height     int
	quitting   bool
	goingBack  bool
	standalone bool // back quits instead of returning to the menu
}

// NewProgressModel creates the progress screen.
func NewProgressModel(env Env, width, height int) ProgressModel {
	h := help.New()
	h.ShowAll = false

	m := ProgressModel{
		env:    env,
		keys:   DefaultProgressKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.reload()
	return m
}

func (m *ProgressModel) reload() {
	m.rows = Progress(m.env.Pack, m.env.Save)
	m.recent = nil
	if m.env.History != nil {
		recent, err := m.env.History.RecentCompletions(m.env.player(), maxRecent)
		if err != nil {
			m.env.logger().Warn("could not load history", "err", err)
		}
		m.recent = recent
	}
	m.table = m.createTable()
}

// createTable creates the table for the active tab.
func (m *ProgressModel) createTable() table.Model {
	var columns []table.Column
	var rows []table.Row

	switch m.tab {
	case tabLevels:
		columns = []table.Column{
			{Title: "#", Width: 3},
			{Title: "Level", Width: 20},
			{Title: "Best", Width: 9},
			{Title: "Total", Width: 9},
			{Title: "Deaths", Width: 6},
			{Title: "Jumps", Width: 6},
			{Title: "Badges", Width: 8},
		}
		for _, r := range m.rows {
			rows = append(rows, table.Row{
				fmt.Sprintf("%d", r.Index+1),
				r.Name,
				r.Best,
				r.Total,
				fmt.Sprintf("%d", r.Deaths),
				fmt.Sprintf("%d", r.Jumps),
				r.Badges,
			})
		}

	case tabHistory:
		columns = []table.Column{
			{Title: "When", Width: 12},
			{Title: "Level", Width: 18},
			{Title: "Time", Width: 9},
			{Title: "Deaths", Width: 6},
			{Title: "Rules", Width: 10},
			{Title: "Badges", Width: 20},
		}
		for _, c := range m.recent {
			rows = append(rows, table.Row{
				c.CreatedAt.Format("Jan 02 15:04"),
				m.levelName(c.LevelID),
				game.FormatTime(c.Duration),
				fmt.Sprintf("%d", c.Deaths),
				c.RuleSet,
				strings.Join(c.Badges, ","),
			})
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *ProgressModel) levelName(id string) string {
	if i := m.env.Pack.Index(id); i >= 0 {
		if lvl, err := m.env.Pack.Get(i); err == nil {
			return lvl.Name
		}
	}
	return id
}

// Init initializes the progress model.
func (m ProgressModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the progress screen.
func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Switch):
			if m.tab == tabLevels {
				m.tab = tabHistory
			} else {
				m.tab = tabLevels
			}
			m.table = m.createTable()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the progress screen.
func (m ProgressModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}
	r := m.env.renderer()

	var b strings.Builder

	title := "PROGRESS - levels"
	if m.tab == tabHistory {
		title = "PROGRESS - recent runs"
	}
	titleStyle := r.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	tableStyle := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	content := m.table.View()
	if len(m.table.Rows()) == 0 {
		empty := r.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		content = empty.Render("No runs recorded yet.\nFinish a level to see it here!")
	}
	b.WriteString(tableStyle.Render(content))
	b.WriteString("\n")

	dim := r.NewStyle().Foreground(lipgloss.Color("241"))
	if m.tab == tabLevels {
		b.WriteString(dim.Render(BadgeLegend()))
		b.WriteString("\n")
	}
	b.WriteString(dim.Render(m.help.View(m.keys)))

	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ProgressModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ProgressModel) IsQuitting() bool {
	return m.quitting
}

// RunProgress runs the progress screen on its own.
func RunProgress(env Env) error {
	m := NewProgressModel(env, env.Config.ScreenW, env.Config.ScreenH)
	m.standalone = true
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
