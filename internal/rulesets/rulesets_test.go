package rulesets

import (
	"testing"

	"github.com/vovakirdan/jumpcoins/internal/config"
	"github.com/vovakirdan/jumpcoins/internal/registry"
)

func TestBuiltinsRegistered(t *testing.T) {
	for _, id := range []string{"assist", "classic", "extended", "speedrun"} {
		if !registry.Exists(id) {
			t.Errorf("rule set %q is not registered", id)
		}
	}

	list := registry.List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Errorf("List() not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
}

func TestApplyDoesNotMutateBase(t *testing.T) {
	base := config.DefaultRules()

	rules, err := registry.Apply("extended", base)
	if err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}
	if !rules.HyperJumpAllowed() || !rules.Semiground.DropThrough {
		t.Error("extended should enable hyper-jump and drop-through")
	}
	if base.HyperJump.Enabled {
		t.Error("Apply() should leave the base rules unchanged")
	}
}

func TestAssist(t *testing.T) {
	rules, err := registry.Apply("assist", config.DefaultRules())
	if err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}
	if !rules.Damage.InfiniteCoins {
		t.Error("assist should enable infinite coins")
	}
	if rules.Damage.InvincibilityMS != 2*config.DefaultRules().Damage.InvincibilityMS {
		t.Errorf("InvincibilityMS = %d, expected doubled", rules.Damage.InvincibilityMS)
	}
}

func TestSpeedrunSkipsPacing(t *testing.T) {
	rules, err := registry.Apply("speedrun", config.DefaultRules())
	if err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}
	if !rules.Level.SkipIntro || !rules.Level.SkipOutro || !rules.Level.SkipHints {
		t.Error("speedrun should skip intro, outro and hints")
	}
	if !rules.HyperJump.Enabled {
		t.Error("speedrun should include the extended rules")
	}
}

func TestUnknownRuleSet(t *testing.T) {
	if _, err := registry.Create("nope"); err == nil {
		t.Error("Create() should fail for an unknown id")
	}
	if _, err := registry.Apply("nope", config.DefaultRules()); err == nil {
		t.Error("Apply() should fail for an unknown id")
	}
}
