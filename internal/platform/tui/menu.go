package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// MenuItem represents a selectable level in the menu.
type MenuItem struct {
	Index  int
	Title  string
	Best   string
	Badges string
}

// MenuModel is the Bubble Tea model for the level picker.
type MenuModel struct {
	env          Env
	items        []MenuItem
	cursor       int
	width        int
	height       int
	keyMapper    *KeyMapper
	quitting     bool
	selected     *MenuItem // Set when user selects a level
	openProgress bool      // True if user pressed Tab for progress
}

// NewMenuModel creates a new menu model with the cursor on the saved level.
func NewMenuModel(env Env) MenuModel {
	rows := Progress(env.Pack, env.Save)
	items := make([]MenuItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, MenuItem{Index: r.Index, Title: r.Name, Best: r.Best, Badges: r.Badges})
	}

	return MenuModel{
		env:       env,
		items:     items,
		cursor:    env.Pack.Wrap(env.Save.LevelIndex()),
		width:     env.Config.ScreenW,
		height:    env.Config.ScreenH,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
		}

	case MenuActionProgress:
		m.openProgress = true
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	r := m.env.renderer()
	title := r.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	dim := r.NewStyle().Foreground(lipgloss.Color("245"))
	current := r.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(title.Render(centerText("  J U M P C O I N S  ", m.width)))
	b.WriteString("\n\n")
	b.WriteString(dim.Render(centerText("Select a level  ·  rules: "+m.env.RuleSet, m.width)))
	b.WriteString("\n\n")

	nameW := 0
	for _, it := range m.items {
		nameW = max(nameW, len(it.Title))
	}

	// Keep the cursor on screen for long packs.
	visible := max(1, m.height-10)
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := min(len(m.items), start+visible)

	for i := start; i < end; i++ {
		it := m.items[i]
		cursor := "  "
		style := r.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = current
		}
		line := fmt.Sprintf("%s%2d. %-*s  %8s  %s", cursor, it.Index+1, nameW, it.Title, it.Best, it.Badges)
		b.WriteString(style.Render(centerText(line, m.width)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dim.Render(centerText(BadgeLegend(), m.width)))
	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Tab: Progress  |  Q: Quit"
	b.WriteString(dim.Render(centerText(controls, m.width)))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsProgress returns true if user requested the progress screen.
func (m MenuModel) WantsProgress() bool {
	return m.openProgress
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
