package engine

import (
	"fmt"
	"sort"
)

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// ValidateState checks the structural invariants of a state:
//   - Every id in a container is registered
//   - Each frog is in at most one container
//   - 0 <= consumed <= capacity for every frog
//   - The path does not exceed its capacity
//   - Hunger per colour covers exactly the resources of that colour
func ValidateState(s *GameState) error {
	if err := validateMembership(s); err != nil {
		return err
	}
	if err := validateCounters(s); err != nil {
		return err
	}
	return ValidateConservation(s)
}

func validateMembership(s *GameState) error {
	seen := make(map[EntityID]string)
	claim := func(id EntityID, where string) error {
		if _, ok := s.Entities[id]; !ok {
			return ValidationError{Code: "UNKNOWN_ENTITY", Message: fmt.Sprintf("%s references unknown entity %q", where, id)}
		}
		if prev, dup := seen[id]; dup {
			return ValidationError{Code: "DUPLICATE_MEMBERSHIP", Message: fmt.Sprintf("entity %q in both %s and %s", id, prev, where)}
		}
		seen[id] = where
		return nil
	}

	for ci, col := range s.Pool.Columns {
		for _, id := range col.Entities {
			if err := claim(id, fmt.Sprintf("pool column %d", ci)); err != nil {
				return err
			}
		}
	}
	for _, id := range s.Path.Entities {
		if err := claim(id, "path"); err != nil {
			return err
		}
	}
	for i, id := range s.WaitingArea.Slots {
		if id == NoEntity {
			continue
		}
		if err := claim(id, fmt.Sprintf("waiting slot %d", i)); err != nil {
			return err
		}
	}

	// Slots must stay left-compacted.
	gap := false
	for i, id := range s.WaitingArea.Slots {
		if id == NoEntity {
			gap = true
		} else if gap {
			return ValidationError{Code: "WAITING_GAP", Message: fmt.Sprintf("slot %d occupied after a free slot", i)}
		}
	}
	return nil
}

func validateCounters(s *GameState) error {
	if len(s.Path.Entities) > s.Path.Capacity {
		return ValidationError{Code: "PATH_OVERFLOW", Message: fmt.Sprintf("%d frogs on a path of capacity %d", len(s.Path.Entities), s.Path.Capacity)}
	}
	for id, e := range s.Entities {
		if e.Consumed < 0 || e.Consumed > e.Capacity {
			return ValidationError{Code: "BAD_CONSUMED", Message: fmt.Sprintf("entity %q consumed %d of %d", id, e.Consumed, e.Capacity)}
		}
	}
	return nil
}

// ValidateConservation checks that, per resource type, total frog capacity
// equals alive resources plus what frogs have already eaten.
func ValidateConservation(s *GameState) error {
	hunger := make(map[string]int)
	for _, e := range s.Entities {
		hunger[e.ResourceType] += e.Capacity
	}
	supply := s.Grid.AliveByType()
	for _, e := range s.Entities {
		supply[e.ResourceType] += e.Consumed
	}

	types := make([]string, 0, len(hunger)+len(supply))
	for t := range hunger {
		types = append(types, t)
	}
	for t := range supply {
		if _, ok := hunger[t]; !ok {
			types = append(types, t)
		}
	}
	sort.Strings(types)

	for _, t := range types {
		if hunger[t] != supply[t] {
			return ValidationError{
				Code:    "HUNGER_MISMATCH",
				Message: fmt.Sprintf("type %s: capacity %d != resources %d", t, hunger[t], supply[t]),
			}
		}
	}
	return nil
}

// EntityStats summarizes frog capacities.
type EntityStats struct {
	Total         int
	ByType        map[string]int
	HungerByType  map[string]int
	MinCapacity   int
	MaxCapacity   int
	AvgCapacity   float64
	TotalConsumed int
}

// ComputeEntityStats analyzes the frogs of a state.
func ComputeEntityStats(s *GameState) EntityStats {
	stats := EntityStats{
		Total:        len(s.Entities),
		ByType:       make(map[string]int),
		HungerByType: make(map[string]int),
		MinCapacity:  -1,
	}
	if len(s.Entities) == 0 {
		return stats
	}

	total := 0
	for _, e := range s.Entities {
		total += e.Capacity
		stats.TotalConsumed += e.Consumed
		stats.ByType[e.ResourceType]++
		stats.HungerByType[e.ResourceType] += e.Capacity
		if stats.MinCapacity < 0 || e.Capacity < stats.MinCapacity {
			stats.MinCapacity = e.Capacity
		}
		if e.Capacity > stats.MaxCapacity {
			stats.MaxCapacity = e.Capacity
		}
	}
	stats.AvgCapacity = float64(total) / float64(len(s.Entities))
	return stats
}
