package config

import (
	_ "embed"
)

//go:embed defaults/rules.yaml
var defaultRulesYAML []byte

// DefaultRules returns the built-in rule values.
// It mirrors defaults/rules.yaml and is the fallback if the embedded file
// fails to decode.
func DefaultRules() *Rules {
	return &Rules{
		BaseGravity: 600,
		Walk: WalkRules{
			VelocityX: 200,
		},
		Jump: JumpRules{
			VelocityX:               200,
			VelocityY:               260,
			CoyoteGracePeriodMS:     100,
			DownGravity:             2.0,
			EarlyRelease:            true,
			TerminalVelocityEnabled: true,
			TerminalVelocity:        500,
		},
		DoubleJump: DoubleJumpRules{
			VelocityX: 75,
			VelocityY: 350,
		},
		WallJump: WallJumpRules{
			VelocityX:                   600,
			VelocityY:                   175,
			GravityY:                    0,
			IgnoreDirectionMS:           400,
			DetachGracePeriodMS:         100,
			ContinueLerpX:               0.1,
			ReverseVelocityX:            100,
			ReverseLerpX:                0.2,
			DragTerminalVelocityEnabled: true,
			DragTerminalVelocity:        80,
		},
		HyperJump: HyperJumpRules{
			Enabled:             false,
			VelocityX:           500,
			VelocityY:           450,
			LandedGracePeriodMS: 100,
		},
		Damage: DamageRules{
			InvincibilityMS:        2000,
			SpikeKnockbackX:        40,
			SpikeKnockbackY:        100,
			KnockbackIgnoreInputMS: 50,
		},
		Enemy: EnemyRules{
			WalkVelocity: 50,
			GravityScale: 0.5,
		},
		Level: LevelRules{
			EyeTracking:    true,
			IntroDelayMS:   3000,
			RespawnDelayMS: 500,
			OutroMS:        2000,
		},
		Player: PlayerRules{
			SquishMax:        0.16,
			SquishSpeed:      0.2,
			SquishMaxEnabled: true,
		},
	}
}
