package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/jumpcoins/internal/save"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreKV(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.Get("missing"); err != nil || ok {
		t.Errorf("Get(missing) = ok %v, err %v, expected not found", ok, err)
	}

	if err := store.Put("a", []byte("one")); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	if err := store.Put("a", []byte("two")); err != nil {
		t.Fatalf("Put() overwrite failed: %v", err)
	}

	got, ok, err := store.Get("a")
	if err != nil || !ok {
		t.Fatalf("Get(a) = ok %v, err %v", ok, err)
	}
	if string(got) != "two" {
		t.Errorf("Get(a) = %q, expected two", got)
	}

	if err := store.Delete("a"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, ok, _ := store.Get("a"); ok {
		t.Error("key should be gone after Delete()")
	}
}

func TestStoreKeys(t *testing.T) {
	store := openTestStore(t)
	store.Put("player:bob", []byte("{}"))
	store.Put("player:alice", []byte("{}"))
	store.Put("playerXcarol", []byte("{}"))
	store.Put("jumpcoins.save", []byte("{}"))

	keys, err := store.Keys("player:")
	if err != nil {
		t.Fatalf("Keys() failed: %v", err)
	}
	if len(keys) != 2 || keys[0] != "player:alice" || keys[1] != "player:bob" {
		t.Errorf("Keys() = %v, expected [player:alice player:bob]", keys)
	}
}

func TestStoreAsSaveBackend(t *testing.T) {
	store := openTestStore(t)
	store.Put(save.LegacyKey, []byte(`{"current_level": 1, "levels": [{"jumps": 3}]}`))

	ids := []string{"one", "two"}
	s, err := save.Open(store, ids)
	if err != nil {
		t.Fatalf("save.Open() failed: %v", err)
	}
	if s.LevelIndex() != 1 || s.Level("one").Jumps != 3 {
		t.Errorf("adopted record = index %d jumps %d", s.LevelIndex(), s.Level("one").Jumps)
	}

	s.Level("two").Deaths = 2
	if err := s.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	again, err := save.Open(store, ids)
	if err != nil {
		t.Fatalf("save.Open() again failed: %v", err)
	}
	if again.Level("two").Deaths != 2 {
		t.Errorf("Deaths = %d, expected 2", again.Level("two").Deaths)
	}
}

func TestStoreCompletions(t *testing.T) {
	store := openTestStore(t)

	runs := []Completion{
		{Player: "p1", LevelID: "spikes", Duration: 9 * time.Second, Deaths: 1, Badges: []string{"completed"}},
		{Player: "p1", LevelID: "spikes", Duration: 7 * time.Second, Jumpcoins: 2, Badges: []string{"deathless", "birdie"}},
		{Player: "p1", LevelID: "movers", Duration: 12 * time.Second},
		{Player: "p2", LevelID: "spikes", Duration: 3 * time.Second},
	}
	for _, c := range runs {
		if _, err := store.RecordCompletion(c); err != nil {
			t.Fatalf("RecordCompletion() failed: %v", err)
		}
	}

	best, err := store.BestCompletions("p1")
	if err != nil {
		t.Fatalf("BestCompletions() failed: %v", err)
	}
	if len(best) != 2 {
		t.Fatalf("BestCompletions() returned %d rows, expected 2", len(best))
	}
	if best[0].LevelID != "movers" || best[1].LevelID != "spikes" {
		t.Errorf("BestCompletions() order = %s, %s", best[0].LevelID, best[1].LevelID)
	}
	if best[1].Duration != 7*time.Second {
		t.Errorf("best spikes = %v, expected 7s", best[1].Duration)
	}
	if len(best[1].Badges) != 2 || best[1].Badges[1] != "birdie" {
		t.Errorf("Badges = %v, expected [deathless birdie]", best[1].Badges)
	}
	if best[1].RunID == "" {
		t.Error("RunID should be generated")
	}

	recent, err := store.RecentCompletions("p1", 2)
	if err != nil {
		t.Fatalf("RecentCompletions() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].LevelID != "movers" {
		t.Errorf("RecentCompletions() = %v", recent)
	}

	stats, err := store.LevelStats("p1")
	if err != nil {
		t.Fatalf("LevelStats() failed: %v", err)
	}
	sp := stats["spikes"]
	if sp == nil || sp.Runs != 2 || sp.Best != 7*time.Second || sp.Average != 8*time.Second {
		t.Errorf("LevelStats(spikes) = %+v", sp)
	}

	if err := store.ClearCompletions("p1"); err != nil {
		t.Fatalf("ClearCompletions() failed: %v", err)
	}
	if left, _ := store.RecentCompletions("p1", 10); len(left) != 0 {
		t.Errorf("expected no p1 runs after clear, got %d", len(left))
	}
	if other, _ := store.RecentCompletions("p2", 10); len(other) != 1 {
		t.Error("clearing p1 should not affect p2")
	}
}

func TestStoreDuplicateRunID(t *testing.T) {
	store := openTestStore(t)
	c := Completion{RunID: "fixed", Player: "p", LevelID: "x", Duration: time.Second}
	if _, err := store.RecordCompletion(c); err != nil {
		t.Fatalf("RecordCompletion() failed: %v", err)
	}
	if _, err := store.RecordCompletion(c); err == nil {
		t.Error("duplicate run id should fail")
	}
}
