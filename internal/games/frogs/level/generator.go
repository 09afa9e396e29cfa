package level

import (
	"fmt"
	"sort"

	"github.com/vovakirdan/frogpond/internal/games/frogs/engine"
)

// NewGame generates the initial state of l for seed.
//
// The generation guarantees:
//   - One resource per pixel, id "pixel_<row>_<col>"
//   - Frog hunger per colour sums to that colour's alive pixel count
//   - The same level and seed always yield the same state
//
// Steps: tally alive pixels per colour (sorted by id), draw hungers from
// the shot weights capped by what remains, shuffle, optionally move frogs
// hungrier than MaxInitialShots to the back, then deal into pool columns.
func NewGame(l *Level, seed uint32) (*engine.GameState, error) {
	if l.Width < 1 || l.Height < 1 {
		return nil, ErrNoPixels
	}

	resources := make([][]engine.Resource, l.Height)
	counts := make(map[ColorID]int)
	for r, row := range l.Pixels {
		resources[r] = make([]engine.Resource, len(row))
		for c, px := range row {
			resources[r][c] = engine.Resource{
				ID:    fmt.Sprintf("pixel_%d_%d", r, c),
				Type:  string(px.ColorID),
				Pos:   engine.GridPos{Row: r, Col: c},
				Alive: px.Alive,
			}
			if px.Alive {
				counts[px.ColorID]++
			}
		}
	}
	if len(counts) == 0 {
		return nil, ErrNoAlivePixels
	}

	colors := make([]string, 0, len(counts))
	for id := range counts {
		colors = append(colors, string(id))
	}
	sort.Strings(colors)

	rng := engine.NewRNG(seed)
	frogs := make([]engine.Entity, 0)
	for _, color := range colors {
		remaining := counts[ColorID(color)]
		for remaining > 0 {
			draw, err := engine.WeightedChoiceOf(rng, l.Rules.CannonGeneration.ShotWeights)
			if err != nil {
				return nil, fmt.Errorf("drawing hunger for %s: %w", color, err)
			}
			hunger := min(remaining, draw)
			if hunger < 1 {
				hunger = 1
			}
			frogs = append(frogs, engine.Entity{
				ID:           engine.EntityID(fmt.Sprintf("frog_%d", len(frogs))),
				ResourceType: color,
				Capacity:     hunger,
			})
			remaining -= hunger
		}
	}

	frogs = engine.Shuffle(rng, frogs)
	if limit := l.Rules.CannonGeneration.MaxInitialShots; limit > 0 {
		frogs = partitionByCapacity(frogs, limit)
	}

	state, err := engine.NewGameState(engine.StateConfig{
		Constraints: l.Constraints(),
		Entities:    frogs,
		Resources:   resources,
		Width:       l.Width,
		Height:      l.Height,
		PoolColumns: l.Rules.Feeder.ColumnCount,
		Seed:        seed,
	})
	if err != nil {
		return nil, fmt.Errorf("building state: %w", err)
	}
	return state, nil
}

// partitionByCapacity stably moves frogs with capacity above limit to the back.
func partitionByCapacity(frogs []engine.Entity, limit int) []engine.Entity {
	out := make([]engine.Entity, 0, len(frogs))
	for _, f := range frogs {
		if f.Capacity <= limit {
			out = append(out, f)
		}
	}
	for _, f := range frogs {
		if f.Capacity > limit {
			out = append(out, f)
		}
	}
	return out
}
