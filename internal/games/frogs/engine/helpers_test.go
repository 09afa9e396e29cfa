package engine_test

import (
	"fmt"
	"testing"

	"github.com/vovakirdan/frogpond/internal/games/frogs/engine"
)

// testConstraints returns simple constraints: 100ms segments, no cooldown,
// no entry clearance and no victory speedup.
func testConstraints() engine.Constraints {
	return engine.Constraints{
		PathCapacity:         5,
		WaitingAreaCapacity:  2,
		MsPerSegment:         100,
		DeploymentCooldownMs: 0,
		PoolVisibleCount:     3,
		VictoryModeSpeedup:   1,
		EntryClearance:       0,
	}
}

// buildResources turns rows of letters into resources. A letter is an
// alive resource of that type, '.' is a dead cell of type "X".
func buildResources(rows []string) [][]engine.Resource {
	res := make([][]engine.Resource, len(rows))
	for r, line := range rows {
		for c, ch := range line {
			cell := engine.Resource{
				ID:  fmt.Sprintf("pixel_%d_%d", r, c),
				Pos: engine.GridPos{Row: r, Col: c},
			}
			if ch == '.' {
				cell.Type = "X"
			} else {
				cell.Type = string(ch)
				cell.Alive = true
			}
			res[r] = append(res[r], cell)
		}
	}
	return res
}

// frog makes a pool entity.
func frog(id, typ string, capacity int) engine.Entity {
	return engine.Entity{ID: engine.EntityID(id), ResourceType: typ, Capacity: capacity}
}

// newTestState builds a state or fails the test.
func newTestState(t *testing.T, c engine.Constraints, rows []string, columns int, frogs ...engine.Entity) *engine.GameState {
	t.Helper()
	s, err := engine.NewGameState(engine.StateConfig{
		Constraints: c,
		Entities:    frogs,
		Resources:   buildResources(rows),
		Width:       len(rows[0]),
		Height:      len(rows),
		PoolColumns: columns,
		Seed:        1,
	})
	if err != nil {
		t.Fatalf("NewGameState: %v", err)
	}
	return s
}

// kinds lists the kinds of events.
func kinds(events []engine.Event) []engine.EventKind {
	out := make([]engine.EventKind, len(events))
	for i, ev := range events {
		out[i] = ev.Kind()
	}
	return out
}

// countKind counts events of kind k.
func countKind(events []engine.Event, k engine.EventKind) int {
	n := 0
	for _, ev := range events {
		if ev.Kind() == k {
			n++
		}
	}
	return n
}

// blockedReason returns the reason of a single DeployBlocked event, or "".
func blockedReason(events []engine.Event) string {
	if len(events) != 1 {
		return ""
	}
	if b, ok := events[0].(engine.DeployBlocked); ok {
		return b.Reason
	}
	return ""
}
