package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/jumpcoins/internal/core"
)

// palette maps core.Color to ANSI 256 color codes. ColorDefault is unstyled.
var palette = [...]string{
	core.ColorRed:          "1",
	core.ColorYellow:       "3",
	core.ColorMagenta:      "5",
	core.ColorCyan:         "6",
	core.ColorWhite:        "7",
	core.ColorBrightRed:    "9",
	core.ColorBrightGreen:  "10",
	core.ColorBrightYellow: "11",
	core.ColorBrightCyan:   "14",
	core.ColorBrightWhite:  "15",
	core.ColorGray:         "245",
}

// Styles holds one lipgloss style per screen color for a renderer.
// SSH sessions get their own renderer so color detection follows the
// client terminal.
type Styles struct {
	cells []lipgloss.Style
}

// NewStyles builds the cell styles for r, or the default renderer if r is nil.
func NewStyles(r *lipgloss.Renderer) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	s := Styles{cells: make([]lipgloss.Style, len(palette))}
	for c, code := range palette {
		st := r.NewStyle()
		if code != "" {
			st = st.Foreground(lipgloss.Color(code))
		}
		s.cells[c] = st
	}
	return s
}

func (s Styles) cell(c core.Color) lipgloss.Style {
	if int(c) < len(s.cells) {
		return s.cells[c]
	}
	return s.cells[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Runs of cells with the same color share one escape sequence.
func (s Styles) RenderScreen(scr *core.Screen) string {
	var sb strings.Builder
	sb.Grow(scr.Width()*scr.Height()*2 + scr.Height())

	var run strings.Builder
	for y := range scr.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < scr.Width(); {
			color := scr.GetCell(x, y).Color
			run.Reset()
			for ; x < scr.Width(); x++ {
				cell := scr.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}
			if color == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(s.cell(color).Render(run.String()))
		}
	}
	return sb.String()
}
