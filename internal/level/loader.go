package level

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/jumpcoins/internal/level/formats"
)

// Loader handles loading levels from a directory tree.
type Loader struct {
	fsys fs.FS
	root string
}

// NewLoader creates a loader for a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{fsys: os.DirFS(root), root: root}
}

// NewFSLoader creates a loader over an fs.FS, such as an embedded pack.
func NewFSLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys, root: "."}
}

// LoadAll recursively scans and loads all level files.
// Returns levels sorted by ID for deterministic ordering. A file that fails
// to parse stops the scan, since a broken pack would shift level indices.
func (l *Loader) LoadAll() ([]*Level, error) {
	var levels []*Level
	seen := make(map[string]string)

	err := fs.WalkDir(l.fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(filepath.Ext(path)) {
			return nil
		}

		lvl, err := l.load(path)
		if err != nil {
			return err
		}
		if prev, dup := seen[lvl.ID]; dup {
			return fmt.Errorf("duplicate level id %s in %s and %s", lvl.ID, prev, path)
		}
		seen[lvl.ID] = path
		levels = append(levels, lvl)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

func (l *Loader) load(path string) (*Level, error) {
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	lvl, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("parsing file %s: %w", path, err)
	}
	lvl.FilePath = filepath.Join(l.root, path)
	return lvl, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (*Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return nil, fmt.Errorf("level not found: %s", id)
}

// LoadFile loads a single level file from disk.
func LoadFile(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	lvl, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("parsing file %s: %w", path, err)
	}
	lvl.FilePath = path
	return lvl, nil
}

// Parse decodes and resolves level data in the format named by ext.
func Parse(data []byte, ext string) (*Level, error) {
	raw, err := formats.Parse(data, ext)
	if err != nil {
		return nil, err
	}
	return Build(raw)
}

func isSupportedExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
