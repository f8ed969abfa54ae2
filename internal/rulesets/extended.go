package rulesets

import (
	"github.com/vovakirdan/jumpcoins/internal/config"
	"github.com/vovakirdan/jumpcoins/internal/registry"
)

func init() {
	registry.Register("extended", func() registry.RuleSet { return Extended{} })
}

// Extended enables the hyper-jump chain and dropping through semiground.
type Extended struct{}

func (Extended) ID() string          { return "extended" }
func (Extended) Title() string       { return "Extended" }
func (Extended) Description() string { return "Hyper-jump chains and drop-through platforms" }

// Apply turns on both optional extensions.
func (Extended) Apply(r *config.Rules) {
	r.HyperJump.Enabled = true
	r.HyperJump.Forbid = false
	r.Semiground.DropThrough = true
}
