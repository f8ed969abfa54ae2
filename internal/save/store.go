package save

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

const (
	// DefaultKey is the storage key of the save record.
	DefaultKey = "jumpcoins.save"
	// LegacyKey is the key used by releases before the record was versioned.
	LegacyKey = "jumpcoins_save"
)

// Backend is a string-keyed blob store.
type Backend interface {
	Get(key string) (value []byte, ok bool, err error)
	Put(key string, value []byte) error
	Delete(key string) error
}

// MemoryBackend keeps records in process memory.
type MemoryBackend struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

func (m *MemoryBackend) Get(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemoryBackend) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryBackend) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Option configures a Store.
type Option func(*Store)

// WithKey stores the record under key instead of DefaultKey.
// The legacy record is only adopted for DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithClock overrides the wall clock used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger for recoverable problems.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// Store owns the save record of one player.
type Store struct {
	backend  Backend
	key      string
	levelIDs []string
	now      func() time.Time
	logger   *log.Logger
	state    *State
}

// Open loads the record from backend, adopting the legacy record and
// migrating old versions. A missing or unreadable record is replaced with a
// fresh one. The result is written back before Open returns.
func Open(backend Backend, levelIDs []string, opts ...Option) (*Store, error) {
	s := &Store{
		backend:  backend,
		key:      DefaultKey,
		levelIDs: append([]string(nil), levelIDs...),
		now:      time.Now,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.key == DefaultKey {
		s.adoptLegacy()
	}

	data, ok, err := backend.Get(s.key)
	if err != nil {
		return nil, fmt.Errorf("save: read %s: %w", s.key, err)
	}

	if ok {
		st, version, err := Decode(data, s.levelIDs)
		switch {
		case errors.Is(err, ErrFutureVersion):
			return nil, err
		case err != nil:
			s.logger.Warn("discarding unreadable save", "key", s.key, "err", err)
		default:
			if version != CurrentVersion {
				s.logger.Info("migrated save", "key", s.key, "from", version, "to", CurrentVersion)
			}
			s.state = st
		}
	}
	if s.state == nil {
		s.state = NewState(s.levelIDs, s.now())
	}
	s.state.backfill(s.levelIDs)

	if err := s.Save(); err != nil {
		return nil, err
	}
	return s, nil
}

// adoptLegacy moves a parseable legacy record to the current key.
// Failures leave the legacy record in place.
func (s *Store) adoptLegacy() {
	data, ok, err := s.backend.Get(LegacyKey)
	if err != nil || !ok {
		return
	}
	if _, _, err := Decode(data, s.levelIDs); err != nil {
		return
	}
	if err := s.backend.Put(s.key, data); err != nil {
		return
	}
	if err := s.backend.Delete(LegacyKey); err != nil {
		return
	}
	s.logger.Info("adopted legacy save", "from", LegacyKey, "to", s.key)
}

// State returns the live record.
func (s *Store) State() *State { return s.state }

// Key returns the storage key.
func (s *Store) Key() string { return s.key }

// LevelIDs returns the ids the record was opened with, in pack order.
func (s *Store) LevelIDs() []string { return s.levelIDs }

// Level returns the record of a level, creating it if needed.
func (s *Store) Level(id string) *LevelRecord {
	rec, ok := s.state.Levels[id]
	if !ok || rec == nil {
		rec = &LevelRecord{}
		s.state.Levels[id] = rec
	}
	return rec
}

// LevelIndex returns the saved current level.
func (s *Store) LevelIndex() int { return s.state.LevelIndex }

// SetLevelIndex records the current level.
func (s *Store) SetLevelIndex(i int) { s.state.LevelIndex = i }

// Save writes the record to the backend.
func (s *Store) Save() error {
	data, err := Encode(s.state)
	if err != nil {
		return fmt.Errorf("save: encode: %w", err)
	}
	if err := s.backend.Put(s.key, data); err != nil {
		return fmt.Errorf("save: write %s: %w", s.key, err)
	}
	return nil
}

// Persist saves and logs a failure instead of returning it.
func (s *Store) Persist() {
	if err := s.Save(); err != nil {
		s.logger.Error("failed to persist save", "key", s.key, "err", err)
	}
}

// Reset replaces the record with a fresh one and saves it.
func (s *Store) Reset() error {
	s.state = NewState(s.levelIDs, s.now())
	return s.Save()
}
