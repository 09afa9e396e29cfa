// Package formats provides pluggable level file format parsers.
package formats

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/vovakirdan/frogpond/internal/games/frogs/level"
	"gopkg.in/yaml.v3"
)

// DeadKey marks a dead pixel of the first palette colour.
const DeadKey = '.'

// YAMLLevel represents the YAML structure for a level file.
//
//	id: heart
//	name: Heart
//	palette:
//	  - {key: R, rgb: [220, 50, 60]}
//	rows:
//	  - ".RR.RR."
//
// Upper-case keys are alive pixels, the lower-case form of a key is a dead
// pixel of that colour.
type YAMLLevel struct {
	ID            string            `yaml:"id"`
	Name          string            `yaml:"name"`
	Description   string            `yaml:"description,omitempty"`
	PixelsPerSize int               `yaml:"pixels_per_size,omitempty"`
	Palette       []YAMLColor       `yaml:"palette"`
	Rows          []string          `yaml:"rows"`
	Rules         level.Overrides   `yaml:"rules,omitempty"`
	Metadata      map[string]string `yaml:"metadata,omitempty"`
}

// YAMLColor is one palette entry.
type YAMLColor struct {
	Key string   `yaml:"key"`
	RGB [3]uint8 `yaml:"rgb"`
}

// Level represents a parsed level ready for use.
type Level struct {
	ID            string
	Name          string
	Description   string
	PixelsPerSize int
	Palette       level.Palette
	Grid          level.Grid
	Rules         level.Overrides
	Metadata      map[string]string
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return Level{}, errors.New("missing id")
	}
	if len(yl.Palette) == 0 {
		return Level{}, errors.New("empty palette")
	}

	keys := make(map[rune]level.ColorID, len(yl.Palette))
	rgbs := make([]level.RGB, 0, len(yl.Palette))
	for _, c := range yl.Palette {
		runes := []rune(c.Key)
		if len(runes) != 1 || !unicode.IsUpper(runes[0]) {
			return Level{}, fmt.Errorf("palette key %q must be one upper-case letter", c.Key)
		}
		if _, dup := keys[runes[0]]; dup {
			return Level{}, fmt.Errorf("duplicate palette key %q", c.Key)
		}
		rgb := level.RGB(c.RGB)
		keys[runes[0]] = level.MakeColorID(rgb[0], rgb[1], rgb[2], 255)
		rgbs = append(rgbs, rgb)
	}
	palette := level.NewPalette(rgbs)
	first, _ := palette.At(0)

	rows := make([][]level.Pixel, len(yl.Rows))
	for r, line := range yl.Rows {
		for c, ch := range []rune(line) {
			var px level.Pixel
			switch {
			case ch == DeadKey:
				px = level.Pixel{ColorID: first.ID}
			case unicode.IsUpper(ch):
				id, ok := keys[ch]
				if !ok {
					return Level{}, fmt.Errorf("row %d col %d: unknown key %q", r, c, ch)
				}
				px = level.Pixel{ColorID: id, Alive: true}
			default:
				id, ok := keys[unicode.ToUpper(ch)]
				if !ok {
					return Level{}, fmt.Errorf("row %d col %d: unknown key %q", r, c, ch)
				}
				px = level.Pixel{ColorID: id}
			}
			rows[r] = append(rows[r], px)
		}
	}

	grid, err := level.NewGrid(rows)
	if err != nil {
		return Level{}, fmt.Errorf("grid: %w", err)
	}

	pps := yl.PixelsPerSize
	if pps <= 0 {
		pps = 1
	}

	return Level{
		ID:            yl.ID,
		Name:          yl.Name,
		Description:   yl.Description,
		PixelsPerSize: pps,
		Palette:       palette,
		Grid:          grid,
		Rules:         yl.Rules,
		Metadata:      yl.Metadata,
	}, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
