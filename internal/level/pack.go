package level

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed builtin
var builtinFS embed.FS

// Pack is the ordered list of levels a game plays through.
type Pack struct {
	levels []*Level
}

// NewPack creates a pack. It fails on an empty list.
func NewPack(levels []*Level) (*Pack, error) {
	if len(levels) == 0 {
		return nil, fmt.Errorf("level: empty pack")
	}
	return &Pack{levels: levels}, nil
}

// Builtin loads the levels shipped with the game.
func Builtin() (*Pack, error) {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		return nil, err
	}
	levels, err := NewFSLoader(sub).LoadAll()
	if err != nil {
		return nil, fmt.Errorf("level: builtin pack: %w", err)
	}
	return NewPack(levels)
}

// LoadPack loads the pack from dir, or the built-in pack when dir is empty.
func LoadPack(dir string) (*Pack, error) {
	if dir == "" {
		return Builtin()
	}
	levels, err := NewLoader(dir).LoadAll()
	if err != nil {
		return nil, fmt.Errorf("level: %w", err)
	}
	return NewPack(levels)
}

// Count returns the number of levels.
func (p *Pack) Count() int { return len(p.levels) }

// Get returns the level at index.
func (p *Pack) Get(index int) (*Level, error) {
	if index < 0 || index >= len(p.levels) {
		return nil, fmt.Errorf("level: index %d out of range [0, %d)", index, len(p.levels))
	}
	return p.levels[index], nil
}

// Wrap maps any index onto the pack, so -1 is the last level.
func (p *Pack) Wrap(index int) int {
	n := len(p.levels)
	return ((index % n) + n) % n
}

// IDs returns the stable level ids in play order.
func (p *Pack) IDs() []string {
	ids := make([]string, len(p.levels))
	for i, lvl := range p.levels {
		ids[i] = lvl.ID
	}
	return ids
}

// Index returns the position of a level id, or -1.
func (p *Pack) Index(id string) int {
	for i, lvl := range p.levels {
		if lvl.ID == id {
			return i
		}
	}
	return -1
}
