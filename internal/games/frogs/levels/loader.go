// Package levels provides level loading for the frog pond.
// This package depends on level but level does not depend on levels.
package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/vovakirdan/frogpond/internal/games/frogs/level"
	"github.com/vovakirdan/frogpond/internal/games/frogs/levels/formats"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Definition is a loaded level file.
type Definition struct {
	ID          string
	Name        string
	Description string
	Level       *level.Level
	Metadata    map[string]string
	FilePath    string
}

// Loader handles loading levels from a file system.
type Loader struct {
	FS   fs.FS
	Root string
}

// NewLoader creates a loader for a directory on disk.
func NewLoader(dir string) *Loader {
	return &Loader{FS: os.DirFS(dir), Root: "."}
}

// Builtin returns a loader over the levels compiled into the binary.
func Builtin() *Loader {
	return &Loader{FS: builtinFS, Root: "builtin"}
}

// LoadAll recursively scans and loads all level files.
// Invalid files are skipped. Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Definition, error) {
	var defs []Definition

	err := fs.WalkDir(l.FS, l.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		def, err := l.LoadFile(p)
		if err != nil {
			return nil
		}
		defs = append(defs, def)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", l.Root, err)
	}

	sort.Slice(defs, func(i, j int) bool {
		return defs[i].ID < defs[j].ID
	})
	return defs, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(p string) (Definition, error) {
	data, err := fs.ReadFile(l.FS, p)
	if err != nil {
		return Definition{}, fmt.Errorf("reading file %s: %w", p, err)
	}

	parsed, err := parseByExtension(data, strings.ToLower(path.Ext(p)))
	if err != nil {
		return Definition{}, fmt.Errorf("parsing file %s: %w", p, err)
	}

	base, err := level.New(parsed.Grid, parsed.PixelsPerSize, parsed.Palette)
	if err != nil {
		return Definition{}, fmt.Errorf("level %s: %w", parsed.ID, err)
	}
	lvl, err := base.WithRules(parsed.Rules)
	if err != nil {
		return Definition{}, fmt.Errorf("level %s rules: %w", parsed.ID, err)
	}

	return Definition{
		ID:          parsed.ID,
		Name:        parsed.Name,
		Description: parsed.Description,
		Level:       lvl,
		Metadata:    parsed.Metadata,
		FilePath:    p,
	}, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Definition, error) {
	defs, err := l.LoadAll()
	if err != nil {
		return Definition{}, err
	}
	for _, d := range defs {
		if d.ID == id {
			return d, nil
		}
	}
	return Definition{}, fmt.Errorf("level not found: %s", id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	defs, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(defs))
	for i, d := range defs {
		ids[i] = d.ID
	}
	return ids, nil
}

func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
