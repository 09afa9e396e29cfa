// Package share encodes a level and seed into a compact URL-safe code and back.
// Two players decoding the same code generate bit-identical games.
package share

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/vovakirdan/frogpond/internal/games/frogs/level"
)

// Version is the snapshot format version.
const Version = 1

// Pixel byte layout: high bit alive, low 7 bits palette index.
const (
	aliveBit   = 0x80
	indexMask  = 0x7f
	maxColors  = 128
	maxPixels  = 512 * 512
	queryParam = "share"
)

// ErrInvalidCode wraps every decode failure.
var ErrInvalidCode = errors.New("invalid share code")

// Snapshot is everything needed to reproduce a game.
type Snapshot struct {
	Version int             `json:"version"`
	Seed    uint32          `json:"seed"`
	Level   SerializedLevel `json:"level"`
}

// SerializedLevel is the wire form of a level.
type SerializedLevel struct {
	Width         int         `json:"width"`
	Height        int         `json:"height"`
	PixelsPerSize int         `json:"pixelsPerSize"`
	Palette       []level.RGB `json:"palette"`
	Rules         level.Rules `json:"rules"`
	PixelData     string      `json:"pixelData"`
}

// FromLevel packs l and seed into a snapshot.
func FromLevel(l *level.Level, seed uint32) (Snapshot, error) {
	if l.Palette.Len() > maxColors {
		return Snapshot{}, fmt.Errorf("palette has %d colours, max %d", l.Palette.Len(), maxColors)
	}

	data := make([]byte, 0, l.Width*l.Height)
	for _, row := range l.Pixels {
		for _, px := range row {
			idx := l.Palette.IndexOf(px.ColorID)
			if idx < 0 {
				return Snapshot{}, fmt.Errorf("colour %q is not in the palette", px.ColorID)
			}
			b := byte(idx) & indexMask
			if px.Alive {
				b |= aliveBit
			}
			data = append(data, b)
		}
	}

	return Snapshot{
		Version: Version,
		Seed:    seed,
		Level: SerializedLevel{
			Width:         l.Width,
			Height:        l.Height,
			PixelsPerSize: l.PixelsPerSize,
			Palette:       l.Palette.RGBs(),
			Rules:         l.Rules.Clone(),
			PixelData:     base64.RawURLEncoding.EncodeToString(data),
		},
	}, nil
}

// Encode serializes a snapshot into a share code.
func Encode(s Snapshot) (string, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// EncodeLevel is FromLevel followed by Encode.
func EncodeLevel(l *level.Level, seed uint32) (string, error) {
	s, err := FromLevel(l, seed)
	if err != nil {
		return "", err
	}
	return Encode(s)
}

// wireSnapshot mirrors Snapshot with a loose seed so it can be range-checked.
type wireSnapshot struct {
	Version int              `json:"version"`
	Seed    *float64         `json:"seed"`
	Level   *SerializedLevel `json:"level"`
}

// Decode parses a share code. Any malformed input yields a nil snapshot and
// an error wrapping ErrInvalidCode; it never panics.
func Decode(code string) (*Snapshot, error) {
	raw, err := decodeBase64URL(strings.TrimSpace(code))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}

	var w wireSnapshot
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}

	switch {
	case w.Version != Version:
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidCode, w.Version)
	case w.Seed == nil:
		return nil, fmt.Errorf("%w: missing seed", ErrInvalidCode)
	case math.IsNaN(*w.Seed) || math.IsInf(*w.Seed, 0):
		return nil, fmt.Errorf("%w: seed is not finite", ErrInvalidCode)
	case *w.Seed < 0 || *w.Seed > math.MaxUint32 || *w.Seed != math.Trunc(*w.Seed):
		return nil, fmt.Errorf("%w: seed %v out of range", ErrInvalidCode, *w.Seed)
	case w.Level == nil:
		return nil, fmt.Errorf("%w: missing level", ErrInvalidCode)
	}

	lv := w.Level
	if err := checkSize(lv.Width, lv.Height); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}
	pixels, err := decodeBase64URL(lv.PixelData)
	if err != nil {
		return nil, fmt.Errorf("%w: pixel data: %v", ErrInvalidCode, err)
	}
	if len(pixels) != lv.Width*lv.Height {
		return nil, fmt.Errorf("%w: %d pixels for a %dx%d grid", ErrInvalidCode, len(pixels), lv.Width, lv.Height)
	}

	return &Snapshot{Version: w.Version, Seed: uint32(*w.Seed), Level: *lv}, nil
}

// Rehydrate rebuilds the level described by the snapshot, with its rules
// exactly as serialized.
func (s *Snapshot) Rehydrate() (*level.Level, error) {
	lv := s.Level
	if err := checkSize(lv.Width, lv.Height); err != nil {
		return nil, err
	}
	if len(lv.Palette) > maxColors {
		return nil, fmt.Errorf("palette has %d colours, max %d", len(lv.Palette), maxColors)
	}
	palette := level.NewPalette(lv.Palette)
	if palette.Len() != len(lv.Palette) {
		return nil, errors.New("palette has duplicate colours")
	}

	data, err := decodeBase64URL(lv.PixelData)
	if err != nil {
		return nil, fmt.Errorf("pixel data: %w", err)
	}
	if len(data) != lv.Width*lv.Height {
		return nil, fmt.Errorf("%d pixels for a %dx%d grid", len(data), lv.Width, lv.Height)
	}

	rows := make([][]level.Pixel, lv.Height)
	for r := range rows {
		rows[r] = make([]level.Pixel, lv.Width)
		for c := range rows[r] {
			b := data[r*lv.Width+c]
			entry, ok := palette.At(int(b & indexMask))
			if !ok {
				return nil, fmt.Errorf("pixel (%d,%d): palette index %d out of range", r, c, b&indexMask)
			}
			rows[r][c] = level.Pixel{ColorID: entry.ID, Alive: b&aliveBit != 0}
		}
	}

	grid, err := level.NewGrid(rows)
	if err != nil {
		return nil, err
	}
	return level.NewWithRules(grid, lv.PixelsPerSize, palette, lv.Rules)
}

// checkSize bounds each dimension before multiplying so w*h cannot overflow.
func checkSize(w, h int) error {
	if w < 1 || h < 1 || w > maxPixels || h > maxPixels || w > maxPixels/h {
		return fmt.Errorf("bad size %dx%d", w, h)
	}
	return nil
}

// ExtractShareCode returns the share parameter when input is a URL carrying
// one, and the trimmed input otherwise.
func ExtractShareCode(input string) string {
	trimmed := strings.TrimSpace(input)
	if u, err := url.Parse(trimmed); err == nil {
		if code := u.Query().Get(queryParam); code != "" {
			return code
		}
	}
	return trimmed
}

// ShareURL appends a code to base as the share query parameter.
func ShareURL(base, code string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	q := u.Query()
	q.Set(queryParam, code)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// decodeBase64URL accepts URL-safe base64 with or without padding.
func decodeBase64URL(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
}
