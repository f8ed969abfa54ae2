package formats

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// ParseTOML parses a TOML level file.
func ParseTOML(data []byte) (Level, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return Level{}, fmt.Errorf("toml unmarshal: %w", err)
	}
	return doc.level()
}
