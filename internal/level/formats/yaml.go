package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return doc.level()
}
