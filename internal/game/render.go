package game

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/jumpcoins/internal/core"
	"github.com/vovakirdan/jumpcoins/internal/level"
	"github.com/vovakirdan/jumpcoins/internal/movement"
	"github.com/vovakirdan/jumpcoins/internal/session"
)

// A tile is drawn two columns wide and one row high.
const (
	colPx = level.TileSize / 2
	rowPx = level.TileSize
)

// Blink periods of the invincibility phases.
const (
	slowBlink = 200 * time.Millisecond
	fastBlink = 80 * time.Millisecond
)

// camera maps world pixels to screen cells of the playfield.
type camera struct {
	x, y float64
	top  int // first playfield row
	cols int
	rows int
}

func newCamera(b core.Box, focus core.Vec, cols, rows, top int) camera {
	c := camera{top: top, cols: cols, rows: rows}
	viewW := float64(cols * colPx)
	viewH := float64(rows * rowPx)
	c.x = follow(focus.X, viewW, b.W, colPx)
	c.y = follow(focus.Y, viewH, b.H, rowPx)
	return c
}

// follow centers the view on p, clamped to the level and snapped to whole
// cells. A level smaller than the view is centered.
func follow(p, view, size, unit float64) float64 {
	if size <= view {
		return -math.Floor((view-size)/2/unit) * unit
	}
	return math.Floor(core.ClampF(p-view/2, 0, size-view)/unit) * unit
}

func (c camera) cell(p core.Vec) (int, int) {
	return int(math.Floor((p.X - c.x) / colPx)), int(math.Floor((p.Y-c.y)/rowPx)) + c.top
}

func (c camera) visible(y int) bool {
	return y >= c.top && y < c.top+c.rows
}

// Render draws the level, the actors and the HUD.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if dst.Width() <= 0 || dst.Height() < 3 {
		return
	}

	s := g.sess
	p := s.Player()
	cam := newCamera(s.Level().Bounds(), p.Box.Center(), dst.Width(), dst.Height()-2, 1)

	g.drawTiles(dst, cam)
	g.drawObjects(dst, cam)
	g.drawPlayer(dst, cam, p)
	g.drawHUD(dst)
	g.drawFooter(dst)
	g.drawBanner(dst)
}

func (g *Game) drawTiles(dst *core.Screen, cam camera) {
	lvl := g.sess.Level()
	for ty := 0; ty < lvl.Height; ty++ {
		for tx := 0; tx < lvl.Width; tx++ {
			t := lvl.At(tx, ty)
			if t == nil || t.Object {
				continue
			}
			r, c := tileGlyph(t)
			box := level.CellBox(tx, ty)
			x, y := cam.cell(core.V(box.X, box.Y))
			if !cam.visible(y) {
				continue
			}
			dst.SetColored(x, y, r, c)
			dst.SetColored(x+1, y, r, c)
		}
	}
}

func tileGlyph(t *level.Tile) (rune, core.Color) {
	switch t.Group {
	case level.GroupGround:
		return '█', core.ColorGray
	case level.GroupSemiground:
		return '▔', core.ColorWhite
	case level.GroupSpikes:
		switch t.Glyph {
		case 'v':
			return '▼', core.ColorRed
		case '<':
			return '◀', core.ColorRed
		case '>':
			return '▶', core.ColorRed
		}
		return '▲', core.ColorRed
	}
	return '?', core.ColorMagenta
}

func (g *Game) drawObjects(dst *core.Screen, cam camera) {
	s := g.sess

	for _, cell := range s.Exits() {
		box := level.CellBox(cell.X, cell.Y)
		x, y := cam.cell(core.V(box.X, box.Y))
		if cam.visible(y) {
			dst.DrawTextColored(x, y, "▒▒", core.ColorBrightGreen)
		}
	}

	for _, e := range s.Eyes() {
		x, y := cam.cell(e.Origin)
		if !cam.visible(y) {
			continue
		}
		dst.SetColored(x-1, y, '(', core.ColorWhite)
		pupil := '·'
		if e.PupilVisible {
			pupil = pupilGlyph(e.Pupil.Sub(e.Origin))
		}
		dst.SetColored(x, y, pupil, core.ColorBrightWhite)
	}

	for _, box := range s.Movers() {
		x0, y := cam.cell(core.V(box.X, box.Y))
		x1, _ := cam.cell(core.V(box.Right()-1, box.Y))
		if !cam.visible(y) {
			continue
		}
		for x := x0; x <= x1; x++ {
			dst.SetColored(x, y, '▀', core.ColorCyan)
		}
	}

	for _, c := range s.Coins() {
		if c.Collected {
			continue
		}
		x, y := cam.cell(c.Box.Center())
		if cam.visible(y) {
			dst.SetColored(x, y, '●', core.ColorBrightYellow)
		}
	}

	for _, e := range s.Enemies() {
		if !e.Alive {
			continue
		}
		x, y := cam.cell(e.Box.Center())
		if !cam.visible(y) {
			continue
		}
		body := "ò>"
		if e.MovingLeft {
			body = "<ó"
		}
		dst.DrawTextColored(x-1, y, body, core.ColorBrightRed)
	}
}

// pupilGlyph picks the pupil character for an offset from the eye center.
func pupilGlyph(d core.Vec) rune {
	if d.Len() < 1 {
		return '•'
	}
	if math.Abs(d.X) >= math.Abs(d.Y) {
		if d.X < 0 {
			return '◐'
		}
		return '◑'
	}
	if d.Y < 0 {
		return '◓'
	}
	return '◒'
}

func (g *Game) drawPlayer(dst *core.Screen, cam camera, p session.PlayerView) {
	if !p.Visible {
		return
	}
	if p.Invincible {
		period := slowBlink
		if p.FastBlink {
			period = fastBlink
		}
		if (g.now/period)%2 == 1 {
			return
		}
	}

	x, y := cam.cell(p.Box.Center())
	if !cam.visible(y) {
		return
	}

	r, c := playerGlyph(p)
	dst.SetColored(x, y, r, c)
}

func playerGlyph(p session.PlayerView) (rune, core.Color) {
	if p.Dead {
		return 'x', core.ColorRed
	}
	c := core.ColorBrightCyan
	if p.Jumpcoins > 0 {
		c = core.ColorBrightYellow
	}
	switch p.State.Kind {
	case movement.WallJumping:
		return '≫', c
	case movement.DoubleJumping, movement.HyperJumping:
		return '*', c
	}
	return '@', c
}

func (g *Game) drawHUD(dst *core.Screen) {
	s := g.sess
	p := s.Player()
	st := s.Stats()

	left := fmt.Sprintf(" %d/%d %s  %s  ● %d  ✝ %d",
		s.Index()+1, g.opts.Pack.Count(), s.Level().Name, FormatTime(s.Elapsed()), p.Jumpcoins, st.Deaths)
	dst.DrawTextColored(0, 0, left, core.ColorBrightWhite)

	right := "best --"
	if best, ok := s.PreviousBest(); ok {
		right = "best " + FormatTime(best)
	}
	if msg := g.Message(); msg != "" {
		right = msg + "  " + right
	}
	right += " "
	dst.DrawTextColored(dst.Width()-utf8.RuneCountInString(right), 0, right, core.ColorGray)
}

func (g *Game) drawFooter(dst *core.Screen) {
	y := dst.Height() - 1
	if hints := g.sess.Hints(); len(hints) > 0 {
		dst.DrawTextCentered(y, strings.Join(hints, "  ·  "), core.ColorYellow)
		return
	}
	dst.DrawTextCentered(y, "←/→ move  space jump  ↓ drop  r restart  [/] level  p pause  q quit", core.ColorGray)
}

func (g *Game) drawBanner(dst *core.Screen) {
	s := g.sess
	switch {
	case g.paused:
		drawBox(dst, core.ColorBrightWhite, "PAUSED", "press p to resume")

	case s.Phase() == session.PhaseLoading:
		best := "no best time yet"
		if d, ok := s.PreviousBest(); ok {
			best = "best " + FormatTime(d)
		}
		drawBox(dst, core.ColorBrightCyan, s.Level().Name, best)

	case s.Phase() == session.PhaseWinning:
		win, ok := g.LastWin()
		if !ok {
			return
		}
		lines := []string{"LEVEL COMPLETE", FormatTime(win.Duration)}
		if win.NewBest {
			lines = append(lines, fmt.Sprintf("new best! was %s", FormatTime(*win.PreviousBest)))
		}
		if len(win.Earned) > 0 {
			names := make([]string, len(win.Earned))
			for i, b := range win.Earned {
				names[i] = b.String()
			}
			lines = append(lines, strings.Join(names, " · "))
		}
		drawBox(dst, core.ColorBrightGreen, lines...)
	}
}

// drawBox draws a centered message box.
func drawBox(dst *core.Screen, c core.Color, lines ...string) {
	w := 0
	for _, l := range lines {
		w = max(w, utf8.RuneCountInString(l))
	}
	boxW := w + 4
	boxH := len(lines) + 2
	r := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(r, ' ', core.ColorDefault)
	dst.DrawBox(r, c)
	for i, l := range lines {
		x := r.X + (boxW-utf8.RuneCountInString(l))/2
		dst.DrawTextColored(x, r.Y+1+i, l, c)
	}
}
