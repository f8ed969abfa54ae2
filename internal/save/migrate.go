package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// ErrFutureVersion is returned for records written by a newer release.
var ErrFutureVersion = errors.New("save: record is newer than this release")

// migration upgrades a decoded record by one version in place.
type migration func(doc map[string]any, levelIDs []string) error

// migrations[v] upgrades version v to v+1.
var migrations = []migration{
	migrateV0,
}

// migrateV0 renames the snake_case fields of the unversioned format and
// re-keys the per-level array by stable level id.
func migrateV0(doc map[string]any, levelIDs []string) error {
	if list, ok := doc["levels"].([]any); ok {
		levels := make(map[string]any, len(list))
		for i, entry := range list {
			if i >= len(levelIDs) {
				break
			}
			rec, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			delete(rec, "temp_time_ms")
			rename(rec, "total_time_ms", "totalTime")
			rename(rec, "best_time_ms", "bestTime")
			rename(rec, "damage_taken", "damageTaken")
			// Unversioned records measured times in fractional milliseconds.
			roundNumber(rec, "totalTime")
			roundNumber(rec, "bestTime")
			levels[levelIDs[i]] = rec
		}
		doc["levels"] = levels
	}

	rename(doc, "created_at", "createdAt")
	rename(doc, "current_level", "levelIndex")
	roundNumber(doc, "createdAt")
	return nil
}

func roundNumber(m map[string]any, key string) {
	if f, ok := m[key].(float64); ok {
		m[key] = math.Round(f)
	}
}

func rename(m map[string]any, from, to string) {
	v, ok := m[from]
	if !ok {
		return
	}
	delete(m, from)
	m[to] = v
}

// Decode parses a stored record, migrating it to CurrentVersion.
// It reports the version the data was stored with.
func Decode(data []byte, levelIDs []string) (*State, int, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, 0, fmt.Errorf("save: decode: %w", err)
	}
	if doc == nil {
		return nil, 0, fmt.Errorf("save: decode: not an object")
	}

	version := 0
	if v, ok := doc["version"]; ok {
		f, ok := v.(float64)
		if !ok || f < 0 || f != float64(int(f)) {
			return nil, 0, fmt.Errorf("save: decode: bad version %v", v)
		}
		version = int(f)
	}
	if version > CurrentVersion {
		return nil, version, fmt.Errorf("%w: version %d", ErrFutureVersion, version)
	}

	for v := version; v < CurrentVersion; v++ {
		if err := migrations[v](doc, levelIDs); err != nil {
			return nil, version, fmt.Errorf("save: migrate v%d: %w", v, err)
		}
	}
	doc["version"] = CurrentVersion

	migrated, err := json.Marshal(doc)
	if err != nil {
		return nil, version, fmt.Errorf("save: encode: %w", err)
	}
	var st State
	if err := json.Unmarshal(migrated, &st); err != nil {
		return nil, version, fmt.Errorf("save: decode: %w", err)
	}
	return &st, version, nil
}

// Encode renders a record for storage.
func Encode(st *State) ([]byte, error) {
	return json.Marshal(st)
}
