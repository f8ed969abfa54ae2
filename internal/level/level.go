// Package level turns level files into tile grids and provides the level
// pack the game plays through.
package level

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/jumpcoins/internal/core"
	"github.com/vovakirdan/jumpcoins/internal/level/formats"
)

// TileSize is the edge of one tile in world pixels.
const TileSize = 32

var (
	// ErrMissingSpawn is returned when a map has no '@'.
	ErrMissingSpawn = errors.New("level: missing @ for player location")
	// ErrMultipleSpawns is returned when a map has more than one '@'.
	ErrMultipleSpawns = errors.New("level: more than one @")
	// ErrUnknownGlyph is returned for a map character with no legend entry.
	ErrUnknownGlyph = errors.New("level: unknown glyph")
)

// Placement is a tile at a grid position.
type Placement struct {
	X, Y int
	Tile *Tile
}

// Span is a vertical run of identical static tiles merged into one body.
type Span struct {
	X, Y   int
	Height int // tiles
	Tile   *Tile
}

// Level is a resolved tile grid.
type Level struct {
	ID         string
	Name       string
	Music      string
	FacingLeft bool
	Hints      []string
	Width      int
	Height     int
	FilePath   string

	grid   [][]*Tile // [y][x], nil for empty cells
	spawns []core.Point
}

// Build resolves the glyphs of a parsed level against the default legend
// plus the file's own overrides.
func Build(raw formats.Level) (*Level, error) {
	legend := DefaultLegend()
	for glyph, spec := range raw.Legend {
		t, err := tileFromSpec(glyph, spec)
		if err != nil {
			return nil, fmt.Errorf("level %s: %w", raw.ID, err)
		}
		legend[glyph] = t
	}

	lvl := &Level{
		ID:         raw.ID,
		Name:       raw.Name,
		Music:      raw.Music,
		FacingLeft: raw.FacingLeft,
		Hints:      raw.Hints,
		Height:     len(raw.Rows),
	}
	for _, row := range raw.Rows {
		lvl.Width = max(lvl.Width, len([]rune(row)))
	}

	tiles := make(map[rune]*Tile, len(legend))
	for glyph := range legend {
		t := legend[glyph]
		tiles[glyph] = &t
	}

	lvl.grid = make([][]*Tile, lvl.Height)
	for y, row := range raw.Rows {
		lvl.grid[y] = make([]*Tile, lvl.Width)
		for x, glyph := range []rune(row) {
			t, ok := tiles[glyph]
			if !ok {
				return nil, fmt.Errorf("%w %q at %d,%d in %s", ErrUnknownGlyph, glyph, x, y, raw.ID)
			}
			switch t.Group {
			case GroupEmpty:
				continue
			case GroupSpawn:
				lvl.spawns = append(lvl.spawns, core.Point{X: x, Y: y})
				continue
			}
			lvl.grid[y][x] = t
		}
	}
	return lvl, nil
}

// Validate checks the content rules that make a level playable.
func (l *Level) Validate() error {
	_, err := l.Spawn()
	return err
}

// Spawn returns the player spawn cell.
func (l *Level) Spawn() (core.Point, error) {
	switch len(l.spawns) {
	case 0:
		return core.Point{}, fmt.Errorf("%w in %s", ErrMissingSpawn, l.ID)
	case 1:
		return l.spawns[0], nil
	default:
		return core.Point{}, fmt.Errorf("%w in %s", ErrMultipleSpawns, l.ID)
	}
}

// At returns the tile at a cell, or nil for empty and out-of-range cells.
func (l *Level) At(x, y int) *Tile {
	if y < 0 || y >= len(l.grid) || x < 0 || x >= len(l.grid[y]) {
		return nil
	}
	return l.grid[y][x]
}

// SolidAt reports whether an enemy could stand on the cell.
func (l *Level) SolidAt(x, y int) bool {
	return l.At(x, y).Solid()
}

// Statics returns the level geometry. Vertical runs of combinable tiles
// of the same group are merged.
func (l *Level) Statics() []Span {
	var spans []Span
	for x := 0; x < l.Width; x++ {
		for y := 0; y < l.Height; y++ {
			t := l.At(x, y)
			if t == nil || t.Object {
				continue
			}
			if !t.CombineVertical {
				spans = append(spans, Span{X: x, Y: y, Height: 1, Tile: t})
				continue
			}

			h := 1
			for {
				next := l.At(x, y+h)
				if next == nil || next.Object || !next.CombineVertical || next.Group != t.Group {
					break
				}
				h++
			}
			spans = append(spans, Span{X: x, Y: y, Height: h, Tile: t})
			y += h - 1
		}
	}
	return spans
}

// Objects returns the per-session objects in row-major order.
func (l *Level) Objects() []Placement {
	var out []Placement
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			if t := l.At(x, y); t != nil && t.Object {
				out = append(out, Placement{X: x, Y: y, Tile: t})
			}
		}
	}
	return out
}

// Count returns how many cells belong to a group.
func (l *Level) Count(g Group) int {
	n := 0
	for y := range l.grid {
		for _, t := range l.grid[y] {
			if t != nil && t.Group == g {
				n++
			}
		}
	}
	return n
}

// Bounds returns the level size in world pixels.
func (l *Level) Bounds() core.Box {
	return core.Box{W: float64(l.Width * TileSize), H: float64(l.Height * TileSize)}
}

// CellBox returns the world box of a cell.
func CellBox(x, y int) core.Box {
	return core.Box{X: float64(x * TileSize), Y: float64(y * TileSize), W: TileSize, H: TileSize}
}

// CellAt returns the cell containing a world point.
func CellAt(p core.Vec) core.Point {
	return core.Point{X: int(math.Floor(p.X / TileSize)), Y: int(math.Floor(p.Y / TileSize))}
}
