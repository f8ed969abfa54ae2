package level

import (
	"fmt"

	"github.com/vovakirdan/jumpcoins/internal/level/formats"
)

// Group is the logical role of a tile.
type Group int

const (
	GroupEmpty Group = iota
	GroupGround
	GroupSemiground
	GroupSpikes
	GroupExits
	GroupJumpcoins
	GroupEnemies
	GroupMovers
	GroupRemoveHints
	GroupEyes
	GroupSpawn
)

var groupNames = map[Group]string{
	GroupEmpty:       "empty",
	GroupGround:      "ground",
	GroupSemiground:  "semiground",
	GroupSpikes:      "spikes",
	GroupExits:       "exits",
	GroupJumpcoins:   "jumpcoins",
	GroupEnemies:     "enemies",
	GroupMovers:      "movers",
	GroupRemoveHints: "removeHints",
	GroupEyes:        "eyes",
	GroupSpawn:       "spawn",
}

func (g Group) String() string {
	if name, ok := groupNames[g]; ok {
		return name
	}
	return fmt.Sprintf("group(%d)", int(g))
}

// ParseGroup resolves a group name from a level file.
func ParseGroup(s string) (Group, bool) {
	for g, name := range groupNames {
		if name == s {
			return g, true
		}
	}
	return GroupEmpty, false
}

// Knockback is the push applied by a spike tile.
type Knockback int

const (
	KnockbackNone   Knockback = iota
	KnockbackLeft             // pushes the player right
	KnockbackRight            // pushes the player left
	KnockbackFacing           // pushes against the facing direction
)

// ParseKnockback resolves a knockback name from a level file.
func ParseKnockback(s string) (Knockback, bool) {
	switch s {
	case "":
		return KnockbackNone, true
	case "left":
		return KnockbackLeft, true
	case "right":
		return KnockbackRight, true
	case "facing", "true":
		return KnockbackFacing, true
	}
	return KnockbackNone, false
}

// Tile describes one glyph of the map.
type Tile struct {
	Glyph            rune
	Image            string
	Group            Group
	Object           bool // created per session rather than as level geometry
	Dynamic          bool
	CombineVertical  bool
	Knockback        Knockback
	Distance         float64 // mover travel, tiles
	Speed            float64 // mover speed, px/s
	MovingLeft       bool
	StartsMovingLeft bool
	EdgeCareful      bool
	Animate          [2]float64
}

// Solid reports whether the tile is something an enemy can stand on.
func (t *Tile) Solid() bool {
	if t == nil {
		return false
	}
	switch t.Group {
	case GroupGround, GroupSemiground, GroupSpikes:
		return true
	}
	return false
}

// PersistsAcrossRespawn reports whether objects of this tile survive a
// respawn. Exits, eyes and jumpcoins do; everything else is rebuilt.
func (t *Tile) PersistsAcrossRespawn() bool {
	switch t.Group {
	case GroupExits, GroupEyes, GroupJumpcoins:
		return true
	}
	return false
}

// DefaultLegend returns the built-in glyph table.
func DefaultLegend() map[rune]Tile {
	return map[rune]Tile{
		'#': {Glyph: '#', Image: "wall", Group: GroupGround, CombineVertical: true},
		'=': {Glyph: '=', Image: "semiground", Group: GroupSemiground},
		'^': {Glyph: '^', Image: "spikes-up", Group: GroupSpikes, Knockback: KnockbackFacing, Animate: [2]float64{0, 1}},
		'v': {Glyph: 'v', Image: "spikes-down", Group: GroupSpikes, Knockback: KnockbackFacing, Animate: [2]float64{0, 1}},
		'<': {Glyph: '<', Image: "spikes-left", Group: GroupSpikes, Knockback: KnockbackRight, Animate: [2]float64{1, 0}},
		'>': {Glyph: '>', Image: "spikes-right", Group: GroupSpikes, Knockback: KnockbackLeft, Animate: [2]float64{1, 0}},
		'E': {Glyph: 'E', Image: "transparent", Group: GroupExits, Object: true},
		'o': {Glyph: 'o', Image: "jumpcoin", Group: GroupJumpcoins, Object: true},
		'$': {Glyph: '$', Image: "jumpcoin", Group: GroupJumpcoins, Object: true},
		'a': {Glyph: 'a', Image: "enemy-a", Group: GroupEnemies, Object: true, Dynamic: true},
		'b': {Glyph: 'b', Image: "enemy-b", Group: GroupEnemies, Object: true, Dynamic: true, EdgeCareful: true, StartsMovingLeft: true},
		'm': {Glyph: 'm', Image: "semiground", Group: GroupMovers, Object: true, Dynamic: true, Distance: 3, Speed: 64},
		'M': {Glyph: 'M', Image: "semiground", Group: GroupMovers, Object: true, Dynamic: true, Distance: 3, Speed: 64, MovingLeft: true},
		'h': {Glyph: 'h', Image: "transparent", Group: GroupRemoveHints, Object: true},
		'O': {Glyph: 'O', Image: "eye", Group: GroupEyes, Object: true},
		'@': {Glyph: '@', Group: GroupSpawn},
		'.': {Glyph: '.', Group: GroupEmpty},
		' ': {Glyph: ' ', Group: GroupEmpty},
	}
}

func tileFromSpec(glyph rune, spec formats.TileSpec) (Tile, error) {
	group, ok := ParseGroup(spec.Group)
	if !ok {
		return Tile{}, fmt.Errorf("glyph %q: unknown group %q", glyph, spec.Group)
	}
	kb, ok := ParseKnockback(spec.Knockback)
	if !ok {
		return Tile{}, fmt.Errorf("glyph %q: unknown knockback %q", glyph, spec.Knockback)
	}
	return Tile{
		Glyph:            glyph,
		Image:            spec.Image,
		Group:            group,
		Object:           spec.Object,
		Dynamic:          spec.Dynamic,
		CombineVertical:  spec.CombineVertical,
		Knockback:        kb,
		Distance:         spec.Distance,
		Speed:            spec.Speed,
		MovingLeft:       spec.MovingLeft,
		StartsMovingLeft: spec.StartsMovingLeft,
		EdgeCareful:      spec.EdgeCareful,
		Animate:          spec.Animate,
	}, nil
}
