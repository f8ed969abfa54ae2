// Package save is the persistent progression record: per-level statistics,
// badges and the schema migrations that keep old records readable.
package save

import (
	"time"
)

// CurrentVersion is the schema version written by this package.
const CurrentVersion = 1

// Badge is a per-level achievement.
type Badge int

const (
	BadgeCompleted Badge = iota
	BadgeDeathless
	BadgeDamageless
	BadgeRich
	BadgeBirdie
	BadgeKiller
)

// AllBadges lists every badge in display order.
var AllBadges = []Badge{BadgeCompleted, BadgeDeathless, BadgeDamageless, BadgeRich, BadgeBirdie, BadgeKiller}

func (b Badge) String() string {
	switch b {
	case BadgeCompleted:
		return "completed"
	case BadgeDeathless:
		return "deathless"
	case BadgeDamageless:
		return "damageless"
	case BadgeRich:
		return "rich"
	case BadgeBirdie:
		return "birdie"
	case BadgeKiller:
		return "killer"
	default:
		return "unknown"
	}
}

// LevelRecord is the saved progress of one level. Times are milliseconds.
type LevelRecord struct {
	TotalTime       int64  `json:"totalTime"`
	BestTime        *int64 `json:"bestTime,omitempty"`
	DamageTaken     int    `json:"damageTaken"`
	Jumps           int    `json:"jumps"`
	DoubleJumps     int    `json:"doublejumps"`
	WallJumps       int    `json:"walljumps"`
	HyperJumps      int    `json:"hyperjumps"`
	Deaths          int    `json:"deaths"`
	BadgeCompleted  bool   `json:"badgeCompleted"`
	BadgeDeathless  bool   `json:"badgeDeathless"`
	BadgeDamageless bool   `json:"badgeDamageless"`
	BadgeRich       bool   `json:"badgeRich"`
	BadgeBirdie     bool   `json:"badgeBirdie"`
	BadgeKiller     bool   `json:"badgeKiller"`
}

func (r *LevelRecord) flag(b Badge) *bool {
	switch b {
	case BadgeCompleted:
		return &r.BadgeCompleted
	case BadgeDeathless:
		return &r.BadgeDeathless
	case BadgeDamageless:
		return &r.BadgeDamageless
	case BadgeRich:
		return &r.BadgeRich
	case BadgeBirdie:
		return &r.BadgeBirdie
	case BadgeKiller:
		return &r.BadgeKiller
	}
	return nil
}

// Has reports whether a badge is earned.
func (r *LevelRecord) Has(b Badge) bool {
	f := r.flag(b)
	return f != nil && *f
}

// Award sets a badge. Badges never reset; newly is true only on the first
// award.
func (r *LevelRecord) Award(b Badge) (newly bool) {
	f := r.flag(b)
	if f == nil || *f {
		return false
	}
	*f = true
	return true
}

// Badges returns the earned badges in display order.
func (r *LevelRecord) Badges() []Badge {
	var out []Badge
	for _, b := range AllBadges {
		if r.Has(b) {
			out = append(out, b)
		}
	}
	return out
}

// AddRun adds a completed run to the total time and reports whether it
// beat the best time.
func (r *LevelRecord) AddRun(d time.Duration) (best bool) {
	ms := d.Milliseconds()
	r.TotalTime += ms
	if r.BestTime == nil || ms < *r.BestTime {
		r.BestTime = &ms
		return true
	}
	return false
}

// Best returns the best time, if any.
func (r *LevelRecord) Best() (time.Duration, bool) {
	if r.BestTime == nil {
		return 0, false
	}
	return time.Duration(*r.BestTime) * time.Millisecond, true
}

// State is the whole saved record.
type State struct {
	Version    int                     `json:"version"`
	CreatedAt  int64                   `json:"createdAt"` // ms since epoch
	LevelIndex int                     `json:"levelIndex"`
	Levels     map[string]*LevelRecord `json:"levels"`
}

// NewState synthesizes a fresh record with one zeroed entry per level id.
func NewState(levelIDs []string, now time.Time) *State {
	s := &State{
		Version:   CurrentVersion,
		CreatedAt: now.UnixMilli(),
		Levels:    make(map[string]*LevelRecord, len(levelIDs)),
	}
	s.backfill(levelIDs)
	return s
}

// backfill adds zeroed records for missing level ids and reports whether
// anything changed.
func (s *State) backfill(levelIDs []string) bool {
	if s.Levels == nil {
		s.Levels = make(map[string]*LevelRecord, len(levelIDs))
	}
	changed := false
	for _, id := range levelIDs {
		if rec, ok := s.Levels[id]; !ok || rec == nil {
			s.Levels[id] = &LevelRecord{}
			changed = true
		}
	}
	return changed
}
