package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// RulesFile is the file name searched for in the config directories.
const RulesFile = "rules.yaml"

// LoadRules loads gameplay rules.
// Search order: customPath -> ~/.jumpcoins/rules.yaml -> ./configs/rules.yaml -> embedded default.
// Files are decoded on top of the defaults, so a file only needs the keys it
// changes. Unknown keys are rejected.
func LoadRules(customPath string) (*Rules, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read rules %s: %w", customPath, err)
		}
		rules, err := ParseRules(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rules %s: %w", customPath, err)
		}
		return rules, nil
	}

	if userPath := userConfigPath(RulesFile); userPath != "" {
		if data, err := os.ReadFile(userPath); err == nil {
			if rules, err := ParseRules(data); err == nil {
				return rules, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", RulesFile)); err == nil {
		if rules, err := ParseRules(data); err == nil {
			return rules, nil
		}
	}

	rules, err := ParseRules(defaultRulesYAML)
	if err != nil {
		return DefaultRules(), nil // Fallback to hardcoded if embed fails
	}
	return rules, nil
}

// ParseRules decodes YAML rules over DefaultRules and validates the result.
func ParseRules(data []byte) (*Rules, error) {
	rules := DefaultRules()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(rules); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return rules, nil
}

// MarshalRules renders rules as YAML.
func MarshalRules(r *Rules) ([]byte, error) {
	return yaml.Marshal(r)
}

// userConfigPath returns the path of name inside ~/.jumpcoins, or "".
func userConfigPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".jumpcoins", name)
}
