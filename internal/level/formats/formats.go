// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"
	"strings"
)

// TileSpec is a legend entry as written in a level file.
type TileSpec struct {
	Image            string     `yaml:"image" toml:"image"`
	Group            string     `yaml:"group" toml:"group"`
	Object           bool       `yaml:"object" toml:"object"`
	Dynamic          bool       `yaml:"dynamic" toml:"dynamic"`
	CombineVertical  bool       `yaml:"combine_vertical" toml:"combine_vertical"`
	Knockback        string     `yaml:"knockback" toml:"knockback"` // "", left, right, facing
	Distance         float64    `yaml:"distance" toml:"distance"`   // tiles
	Speed            float64    `yaml:"speed" toml:"speed"`         // px/s
	MovingLeft       bool       `yaml:"moving_left" toml:"moving_left"`
	StartsMovingLeft bool       `yaml:"starts_moving_left" toml:"starts_moving_left"`
	EdgeCareful      bool       `yaml:"edge_careful" toml:"edge_careful"`
	Animate          [2]float64 `yaml:"animate" toml:"animate"`
}

// Level is a parsed level file before glyph resolution.
type Level struct {
	ID         string
	Name       string
	Music      string
	FacingLeft bool
	Hints      []string
	Rows       []string
	Legend     map[rune]TileSpec
}

// document is the shared shape of yaml and toml level files.
type document struct {
	ID         string              `yaml:"id" toml:"id"`
	Name       string              `yaml:"name" toml:"name"`
	Music      string              `yaml:"music" toml:"music"`
	FacingLeft bool                `yaml:"facing_left" toml:"facing_left"`
	Hints      []string            `yaml:"hints" toml:"hints"`
	Map        string              `yaml:"map" toml:"map"`
	Legend     map[string]TileSpec `yaml:"legend" toml:"legend"`
}

// MaxHints is the number of hint lines a level may carry.
const MaxHints = 3

func (d document) level() (Level, error) {
	if d.ID == "" {
		return Level{}, fmt.Errorf("missing id")
	}
	if len(d.Hints) > MaxHints {
		return Level{}, fmt.Errorf("level %s: %d hints, at most %d allowed", d.ID, len(d.Hints), MaxHints)
	}

	lvl := Level{
		ID:         d.ID,
		Name:       d.Name,
		Music:      d.Music,
		FacingLeft: d.FacingLeft,
		Hints:      d.Hints,
		Rows:       splitRows(d.Map),
	}
	if len(lvl.Rows) == 0 {
		return Level{}, fmt.Errorf("level %s: empty map", d.ID)
	}

	if len(d.Legend) > 0 {
		lvl.Legend = make(map[rune]TileSpec, len(d.Legend))
		for key, spec := range d.Legend {
			r := []rune(key)
			if len(r) != 1 {
				return Level{}, fmt.Errorf("level %s: legend key %q must be a single character", d.ID, key)
			}
			lvl.Legend[r[0]] = spec
		}
	}
	return lvl, nil
}

// splitRows splits a map block into rows, dropping blank leading and
// trailing lines.
func splitRows(m string) []string {
	lines := strings.Split(strings.ReplaceAll(m, "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".toml"}
}

// Parse routes to the parser for a file extension.
func Parse(data []byte, ext string) (Level, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".toml":
		return ParseTOML(data)
	default:
		return Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
