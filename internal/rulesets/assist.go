package rulesets

import (
	"github.com/vovakirdan/jumpcoins/internal/config"
	"github.com/vovakirdan/jumpcoins/internal/registry"
)

func init() {
	registry.Register("assist", func() registry.RuleSet { return Assist{} })
	registry.Register("speedrun", func() registry.RuleSet { return Speedrun{} })
}

// Assist makes coin-less jumps free and hazards gentler.
type Assist struct{}

func (Assist) ID() string          { return "assist" }
func (Assist) Title() string       { return "Assist" }
func (Assist) Description() string { return "Infinite coins for jumps, longer grace windows" }

// Apply enables infinite coins and widens the timing windows.
func (Assist) Apply(r *config.Rules) {
	r.Damage.InfiniteCoins = true
	r.Damage.InvincibilityMS *= 2
	r.Jump.CoyoteGracePeriodMS += 100
	r.WallJump.DetachGracePeriodMS += 100
}

// Speedrun skips every banner and hint.
type Speedrun struct{}

func (Speedrun) ID() string          { return "speedrun" }
func (Speedrun) Title() string       { return "Speedrun" }
func (Speedrun) Description() string { return "Extended rules without intros, outros or hints" }

// Apply layers the extended rules and removes all pacing delays.
func (Speedrun) Apply(r *config.Rules) {
	Extended{}.Apply(r)
	r.Level.SkipIntro = true
	r.Level.SkipOutro = true
	r.Level.SkipHints = true
}
