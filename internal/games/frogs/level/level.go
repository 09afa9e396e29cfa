// Package level describes frog pond puzzles (pixel grid, palette and rules)
// and turns them into initial engine states.
// This package depends on engine but engine does not depend on level.
package level

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/frogpond/internal/games/frogs/engine"
)

var (
	// ErrNoPixels is returned for a level with an empty grid.
	ErrNoPixels = errors.New("level has no pixels")
	// ErrNoAlivePixels is returned for a level with nothing left to eat.
	ErrNoAlivePixels = errors.New("level has no alive pixels")
)

// Level is an immutable puzzle description.
type Level struct {
	Width         int
	Height        int
	Pixels        [][]Pixel
	PixelsPerSize int // Display hint: source image pixels per grid cell
	Palette       Palette
	Rules         Rules
}

// New creates a level with rules derived from the grid and palette.
func New(g Grid, pixelsPerSize int, p Palette) (*Level, error) {
	return NewWithRules(g, pixelsPerSize, p, DefaultRules(g, p))
}

// NewWithRules creates a level with exactly the given rules.
func NewWithRules(g Grid, pixelsPerSize int, p Palette, rules Rules) (*Level, error) {
	if g.Width < 1 || g.Height < 1 {
		return nil, ErrNoPixels
	}
	if p.Len() == 0 {
		return nil, errors.New("palette is empty")
	}
	for r, row := range g.Pixels {
		for c, px := range row {
			if p.IndexOf(px.ColorID) < 0 {
				return nil, fmt.Errorf("pixel (%d,%d): colour %q not in palette", r, c, px.ColorID)
			}
		}
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}

	g = g.Clone()
	return &Level{
		Width:         g.Width,
		Height:        g.Height,
		Pixels:        g.Pixels,
		PixelsPerSize: pixelsPerSize,
		Palette:       p,
		Rules:         rules.Clone(),
	}, nil
}

// Grid returns a copy of the level's pixels as a Grid.
func (l *Level) Grid() Grid {
	return Grid{Width: l.Width, Height: l.Height, Pixels: l.Pixels}.Clone()
}

// Constraints returns the engine constraints for this level.
func (l *Level) Constraints() engine.Constraints {
	return l.Rules.Constraints(l.Width)
}

// AliveCount returns the number of alive pixels.
func (l *Level) AliveCount() int {
	return Grid{Width: l.Width, Height: l.Height, Pixels: l.Pixels}.AliveCount()
}
