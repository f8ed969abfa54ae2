// Package rulesets contains the built-in rule sets. Importing it registers
// them with the registry.
package rulesets

import (
	"github.com/vovakirdan/jumpcoins/internal/config"
	"github.com/vovakirdan/jumpcoins/internal/registry"
)

func init() {
	registry.Register("classic", func() registry.RuleSet { return Classic{} })
}

// Classic plays with the loaded rules as they are: no hyper-jump and
// one-way platforms that always catch the player.
type Classic struct{}

func (Classic) ID() string          { return "classic" }
func (Classic) Title() string       { return "Classic" }
func (Classic) Description() string { return "Wall jumps and double jumps, no chains" }

// Apply switches both extensions off.
func (Classic) Apply(r *config.Rules) {
	r.HyperJump.Enabled = false
	r.Semiground.DropThrough = false
}
