// Package storage provides SQLite-based persistence for save records and
// level completion history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/jumpcoins/internal/save"
)

// Store manages the SQLite database connection.
// It is safe for concurrent use by several sessions.
type Store struct {
	db *sql.DB
}

// Completion is one won level run.
type Completion struct {
	ID          int64
	RunID       string
	Player      string // save key of the player
	LevelID     string
	RuleSet     string
	Duration    time.Duration
	Deaths      int
	DamageTaken int
	Jumpcoins   int
	Badges      []string // badges newly earned by the run
	CreatedAt   time.Time
}

// LevelStats aggregates the completions of one level.
type LevelStats struct {
	LevelID    string
	Runs       int
	Best       time.Duration
	Average    time.Duration
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS completions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			player TEXT NOT NULL,
			level_id TEXT NOT NULL,
			ruleset TEXT NOT NULL DEFAULT '',
			duration_ms INTEGER NOT NULL,
			deaths INTEGER NOT NULL DEFAULT 0,
			damage_taken INTEGER NOT NULL DEFAULT 0,
			jumpcoins INTEGER NOT NULL DEFAULT 0,
			badges TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_completions_player ON completions(player);
		CREATE INDEX IF NOT EXISTS idx_completions_best ON completions(player, level_id, duration_ms);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get implements save.Backend.
func (s *Store) Get(key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("storage: cannot read %s: %w", key, err)
	}
	return value, true, nil
}

// Put implements save.Backend.
func (s *Store) Put(key string, value []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write %s: %w", key, err)
	}
	return nil
}

// Delete implements save.Backend.
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("storage: cannot delete %s: %w", key, err)
	}
	return nil
}

// Ensure Store implements save.Backend
var _ save.Backend = (*Store)(nil)

// Keys returns the stored keys with the given prefix.
func (s *Store) Keys(prefix string) ([]string, error) {
	rows, err := s.db.Query("SELECT key FROM kv WHERE key LIKE ? ESCAPE '\\' ORDER BY key", escapeLike(prefix)+"%")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return keys, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// RecordCompletion appends a won run to the history.
// A missing RunID is generated. Returns the ID of the inserted record.
func (s *Store) RecordCompletion(c Completion) (int64, error) {
	if c.RunID == "" {
		c.RunID = uuid.NewString()
	}
	res, err := s.db.Exec(
		`INSERT INTO completions
		 (run_id, player, level_id, ruleset, duration_ms, deaths, damage_taken, jumpcoins, badges)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.RunID,
		c.Player,
		c.LevelID,
		c.RuleSet,
		c.Duration.Milliseconds(),
		c.Deaths,
		c.DamageTaken,
		c.Jumpcoins,
		strings.Join(c.Badges, ","),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save completion: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const completionColumns = `id, run_id, player, level_id, ruleset, duration_ms, deaths, damage_taken, jumpcoins, badges, created_at`

// RecentCompletions retrieves the most recent runs of a player.
func (s *Store) RecentCompletions(player string, limit int) ([]Completion, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+completionColumns+`
		 FROM completions
		 WHERE player = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query completions: %w", err)
	}
	return scanCompletions(rows)
}

// BestCompletions retrieves the fastest run of each level for a player,
// ordered by level id.
func (s *Store) BestCompletions(player string) ([]Completion, error) {
	rows, err := s.db.Query(
		`SELECT `+completionColumns+`
		 FROM completions c
		 WHERE player = ?
		   AND id = (
			SELECT id FROM completions b
			WHERE b.player = c.player AND b.level_id = c.level_id
			ORDER BY duration_ms ASC, id ASC
			LIMIT 1
		   )
		 ORDER BY level_id`,
		player,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best completions: %w", err)
	}
	return scanCompletions(rows)
}

// LevelStats retrieves aggregated statistics for every level a player won.
func (s *Store) LevelStats(player string) (map[string]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_id, COUNT(*), MIN(duration_ms), AVG(duration_ms), MAX(created_at)
		 FROM completions
		 WHERE player = ?
		 GROUP BY level_id`,
		player,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LevelStats)
	for rows.Next() {
		var st LevelStats
		var best int64
		var avg float64
		var lastPlayed any
		if err := rows.Scan(&st.LevelID, &st.Runs, &best, &avg, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.Best = time.Duration(best) * time.Millisecond
		st.Average = time.Duration(avg * float64(time.Millisecond))
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.LevelID] = &st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearCompletions deletes the history of a player.
func (s *Store) ClearCompletions(player string) error {
	if _, err := s.db.Exec("DELETE FROM completions WHERE player = ?", player); err != nil {
		return fmt.Errorf("storage: cannot clear completions: %w", err)
	}
	return nil
}

func scanCompletions(rows *sql.Rows) ([]Completion, error) {
	defer rows.Close()

	var results []Completion
	for rows.Next() {
		var c Completion
		var durationMS int64
		var badges string
		var createdAt any
		if err := rows.Scan(
			&c.ID,
			&c.RunID,
			&c.Player,
			&c.LevelID,
			&c.RuleSet,
			&durationMS,
			&c.Deaths,
			&c.DamageTaken,
			&c.Jumpcoins,
			&badges,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		c.Duration = time.Duration(durationMS) * time.Millisecond
		if badges != "" {
			c.Badges = strings.Split(badges, ",")
		}
		c.CreatedAt = parseTime(createdAt)
		results = append(results, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// parseTime handles both time.Time and string datetime values.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
