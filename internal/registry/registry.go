// Package registry provides a global registry of named rule sets.
// Rule sets register themselves in init() functions, allowing the CLI and
// the SSH server to discover and apply them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/jumpcoins/internal/config"
)

// RuleSet adjusts loaded gameplay rules, like a difficulty preset.
type RuleSet interface {
	// ID returns a unique identifier (e.g., "classic", "assist").
	// Used for CLI flags and completion history.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Description returns a one-line summary of what the rule set changes.
	Description() string

	// Apply mutates the rules in place.
	Apply(r *config.Rules)
}

// Info contains metadata about a registered rule set.
type Info struct {
	ID          string
	Title       string
	Description string
}

// Factory creates a new instance of a rule set.
type Factory func() RuleSet

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]Info)
	mu        sync.RWMutex
)

// Register adds a rule set factory to the registry.
// Panics if a rule set with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: rule set %q already registered", id))
	}

	factories[id] = f

	rs := f()
	infos[id] = Info{ID: id, Title: rs.Title(), Description: rs.Description()}
}

// List returns information about all registered rule sets, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a rule set by its ID.
func Create(id string) (RuleSet, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown rule set %q", id)
	}

	return f(), nil
}

// Exists checks if a rule set with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// Apply loads the rule set by ID and applies it to a copy of base.
func Apply(id string, base *config.Rules) (*config.Rules, error) {
	rs, err := Create(id)
	if err != nil {
		return nil, err
	}
	rules := base.Clone()
	rs.Apply(rules)
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("registry: rule set %q: %w", id, err)
	}
	return rules, nil
}
