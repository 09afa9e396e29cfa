package engine_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/frogpond/internal/games/frogs/engine"
)

func TestWinScenario2x2(t *testing.T) {
	s := newTestState(t, testConstraints(), []string{"RR", "RR"}, 1, frog("a", "R", 4))

	if evs := engine.DeployFromPool(s, 0); countKind(evs, engine.KindEntityDeployed) != 1 {
		t.Fatalf("deploy failed: %v", kinds(evs))
	}
	a := s.Entity("a")
	if a.Position.Index != -1 || a.Position.TimeAtPosition != 100 || a.State != engine.StateMoving {
		t.Fatalf("deployed frog = %+v", a)
	}

	steps := []struct {
		dt       float64
		want     []engine.EventKind
		index    int
		consumed int
	}{
		// Reaches index 0 and eats (1,0); one frog left fits the path
		{100, []engine.EventKind{engine.KindEntityMoving, engine.KindResourceConsumed, engine.KindVictoryModeTriggered}, 0, 1},
		{100, []engine.EventKind{engine.KindEntityMoving, engine.KindResourceConsumed}, 1, 2},
		// Bottom to right is a corner: 300ms needed
		{100, []engine.EventKind{}, 1, 2},
		{100, []engine.EventKind{engine.KindEntityMoving, engine.KindResourceConsumed}, 2, 3},
		{300, []engine.EventKind{engine.KindEntityMoving, engine.KindResourceConsumed, engine.KindEntityExhausted, engine.KindGameWon}, 3, 4},
	}

	var all []engine.Event
	for i, st := range steps {
		evs := engine.Update(s, st.dt)
		all = append(all, evs...)
		if got := kinds(evs); !reflect.DeepEqual(got, st.want) {
			t.Fatalf("step %d events = %v, want %v", i, got, st.want)
		}
		if a.Position.Index != st.index || a.Consumed != st.consumed {
			t.Fatalf("step %d frog at %d with %d eaten, want %d/%d", i, a.Position.Index, a.Consumed, st.index, st.consumed)
		}
	}

	if s.Status != engine.StatusWon {
		t.Errorf("status = %s, want won", s.Status)
	}
	if n := countKind(all, engine.KindGameWon); n != 1 {
		t.Errorf("GAME_WON emitted %d times, want 1", n)
	}
	if s.Grid.AliveCount() != 0 {
		t.Errorf("%d pixels still alive", s.Grid.AliveCount())
	}
	if evs := engine.Update(s, 100); evs != nil {
		t.Errorf("update after win returned %v", kinds(evs))
	}
	if err := engine.ValidateState(s); err != nil {
		t.Errorf("ValidateState: %v", err)
	}
}

func TestLossWhenWaitingAreaFull(t *testing.T) {
	c := testConstraints()
	c.PathCapacity = 1
	c.WaitingAreaCapacity = 0
	s := newTestState(t, c, []string{"GG", "GG"}, 1, frog("a", "R", 1), frog("b", "R", 1))

	engine.DeployFromPool(s, 0)

	var last []engine.Event
	for i := 0; i < 100 && s.Status.Running(); i++ {
		last = engine.Update(s, 100)
	}

	if s.Status != engine.StatusLost {
		t.Fatalf("status = %s, want lost", s.Status)
	}
	lost, ok := last[len(last)-1].(engine.GameLost)
	if !ok {
		t.Fatalf("last event = %T, want GameLost", last[len(last)-1])
	}
	if lost.Reason != engine.ReasonWaitingAreaFull {
		t.Errorf("reason = %q, want %q", lost.Reason, engine.ReasonWaitingAreaFull)
	}
	if lost.InvariantViolation {
		t.Error("a full waiting area is not an invariant violation")
	}

	if evs := engine.Update(s, 100); evs != nil {
		t.Errorf("update after loss returned %v", kinds(evs))
	}
	if evs := engine.DeployFromPool(s, 0); blockedReason(evs) != engine.ReasonGameOver {
		t.Errorf("deploy after loss = %v, want %q", evs, engine.ReasonGameOver)
	}
}

func TestHungryFrogGoesToWaitingArea(t *testing.T) {
	c := testConstraints()
	c.PathCapacity = 1
	c.WaitingAreaCapacity = 1
	s := newTestState(t, c, []string{"GG", "GG"}, 1, frog("a", "R", 1), frog("b", "R", 1), frog("c", "R", 1))

	engine.DeployFromPool(s, 0)

	var moved engine.EntityToWaitingArea
	found := false
	for i := 0; i < 100 && !found; i++ {
		for _, ev := range engine.Update(s, 100) {
			if e, ok := ev.(engine.EntityToWaitingArea); ok {
				moved, found = e, true
			}
		}
	}
	if !found {
		t.Fatal("frog never reached the waiting area")
	}
	if moved.EntityID != "a" || moved.Slot != 0 {
		t.Errorf("event = %+v, want a in slot 0", moved)
	}
	if s.WaitingArea.Get(0) != "a" || s.Path.Contains("a") {
		t.Errorf("frog a not moved: slots %v path %v", s.WaitingArea.Slots, s.Path.Entities)
	}
	if a := s.Entity("a"); a.State != engine.StateWaiting || a.Position.Index != -1 {
		t.Errorf("waiting frog = %+v", a)
	}

	// Redeploy from the waiting area
	evs := engine.DeployFromWaitingArea(s, 0)
	if countKind(evs, engine.KindEntityDeployed) != 1 {
		t.Fatalf("redeploy = %v", evs)
	}
	if s.WaitingArea.Count() != 0 || !s.Path.Contains("a") {
		t.Errorf("redeploy did not move frog: slots %v path %v", s.WaitingArea.Slots, s.Path.Entities)
	}
	if err := engine.ValidateState(s); err != nil {
		var ve engine.ValidationError
		if !errors.As(err, &ve) || ve.Code != "HUNGER_MISMATCH" {
			t.Errorf("unexpected structural error: %v", err)
		}
	}
}

func TestVictoryModeDropsHungryFrogs(t *testing.T) {
	c := testConstraints()
	c.VictoryModeSpeedup = 2
	s := newTestState(t, c, []string{"GG", "GG"}, 1, frog("a", "R", 1))

	engine.DeployFromPool(s, 0)
	evs := engine.Update(s, 50)
	if countKind(evs, engine.KindVictoryModeTriggered) != 1 || s.Status != engine.StatusVictoryMode {
		t.Fatalf("victory mode not triggered: %v", kinds(evs))
	}
	if s.ElapsedMs != 50 {
		t.Errorf("elapsed = %v, want 50 (speedup starts next update)", s.ElapsedMs)
	}

	engine.Update(s, 50)
	if s.ElapsedMs != 150 {
		t.Errorf("elapsed = %v, want 150 after a scaled update", s.ElapsedMs)
	}

	var all []engine.Event
	for i := 0; i < 100 && s.Status.Running(); i++ {
		all = append(all, engine.Update(s, 50)...)
	}

	// Remaining per-colour feasibility is not checked: the frog leaves hungry
	// and the game is won with green pixels still alive.
	var done engine.EntityCompletedLoop
	for _, ev := range all {
		if e, ok := ev.(engine.EntityCompletedLoop); ok {
			done = e
		}
	}
	if done.EntityID != "a" || done.Satisfied {
		t.Errorf("completed loop = %+v, want hungry a", done)
	}
	if s.Status != engine.StatusWon {
		t.Errorf("status = %s, want won", s.Status)
	}
	if countKind(all, engine.KindEntityToWaitingArea) != 0 {
		t.Error("frogs must not wait during victory mode")
	}
}

func TestCarryIsCappedAtOneSegment(t *testing.T) {
	s := newTestState(t, testConstraints(), []string{"....", "...."}, 1, frog("a", "R", 1), frog("b", "R", 1), frog("c", "R", 1), frog("d", "R", 1), frog("e", "R", 1), frog("f", "R", 1))
	engine.DeployFromPool(s, 0)

	// One huge delta moves the frog exactly one segment.
	evs := engine.Update(s, 10000)
	moving, ok := evs[0].(engine.EntityMoving)
	if !ok {
		t.Fatalf("first event = %T, want EntityMoving", evs[0])
	}
	if moving.From != -1 || moving.To != 0 {
		t.Errorf("move = %d->%d, want -1->0", moving.From, moving.To)
	}
	if moving.Carry != 100 {
		t.Errorf("carry = %v, want capped at 100", moving.Carry)
	}
}

func TestNegativeDeltaIsIgnored(t *testing.T) {
	s := newTestState(t, testConstraints(), []string{"RR", "RR"}, 1, frog("a", "R", 4))
	engine.DeployFromPool(s, 0)
	engine.Update(s, -500)
	if s.ElapsedMs != 0 {
		t.Errorf("elapsed = %v after negative delta", s.ElapsedMs)
	}
}

func TestCloneAndHash(t *testing.T) {
	s := newTestState(t, testConstraints(), []string{"RR", "RR"}, 1, frog("a", "R", 4))
	engine.DeployFromPool(s, 0)
	engine.Update(s, 100)

	clone := s.Clone()
	if clone.Hash() != s.Hash() {
		t.Fatal("clone hash differs from original")
	}

	engine.Update(clone, 100)
	if clone.Hash() == s.Hash() {
		t.Error("hash did not change after update")
	}
	if s.Entity("a").Consumed != 1 {
		t.Errorf("updating the clone changed the original: consumed %d", s.Entity("a").Consumed)
	}
	if !s.Grid.Resources[1][1].Alive {
		t.Error("updating the clone killed a pixel in the original")
	}
}

func TestDebugLogBounded(t *testing.T) {
	c := testConstraints()
	c.PathCapacity = 1
	c.WaitingAreaCapacity = 1
	frogs := make([]engine.Entity, 0)
	for _, id := range []string{"a", "b", "c"} {
		frogs = append(frogs, frog(id, "R", 1))
	}
	s := newTestState(t, c, []string{"GG", "GG"}, 1, frogs...)

	// Bounce frog a between path and waiting area many times
	for i := 0; i < 2000; i++ {
		engine.DeployFromWaitingArea(s, 0)
		engine.DeployFromPool(s, 0)
		engine.Update(s, 100)
		if !s.Status.Running() {
			break
		}
	}
	if !s.Status.Running() {
		t.Fatalf("game ended early: %s", s.Status)
	}
	if len(s.Debug.Log) != 200 {
		t.Errorf("debug log has %d lines, want it capped at 200", len(s.Debug.Log))
	}
}

func TestRenderASCII(t *testing.T) {
	s := newTestState(t, testConstraints(), []string{"RG", "GR"}, 2, frog("r", "R", 2), frog("g", "G", 2))

	out := engine.RenderASCII(s)
	for _, want := range []string{
		"Tick: 0 | Time: 0ms | Status: playing | Pixels: 4 | Path: 0/5 | Pool: 2 | Waiting: 0/2",
		"+--+\n-BA-\n-AB-\n+--+\n",
		"C0: b2\n",
		"C1: a2\n",
		"Wait: (empty)\n",
		"Legend: A=G B=R\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}

	engine.DeployFromPool(s, 0)
	engine.Update(s, 100)
	out = engine.RenderASCII(s)
	// Frog r sits at index 0, (1,0) facing north: drawn below the grid
	if !strings.Contains(out, "+b-+\n") {
		t.Errorf("frog not drawn on border:\n%s", out)
	}
	if got := engine.RenderEntities(s); got != "b0/2@0" {
		t.Errorf("RenderEntities = %q, want b0/2@0", got)
	}
}

func TestExhaustedMidPathLeavesImmediately(t *testing.T) {
	s := newTestState(t, testConstraints(), []string{"RRR", "RRR", "RRR"}, 1,
		frog("a", "R", 1), frog("b", "R", 3))

	engine.DeployFromPool(s, 0)
	evs := engine.Update(s, 100)
	if countKind(evs, engine.KindResourceConsumed) != 1 || countKind(evs, engine.KindEntityExhausted) != 1 {
		t.Fatalf("first segment events = %v", kinds(evs))
	}

	a := s.Entity("a")
	if a.State != engine.StateWaiting {
		t.Errorf("exhausted frog state = %s, want waiting", a.State)
	}
	if a.Position.Index != 0 || a.Consumed != 1 {
		t.Errorf("exhausted frog = %+v, want index 0 with 1 eaten", a)
	}
	if s.Path.Contains("a") || s.WaitingArea.Count() != 0 {
		t.Error("exhausted frog is still in a container")
	}
	if n := s.Grid.AliveCount(); n != 8 {
		t.Errorf("%d pixels alive, want 8", n)
	}
	for _, p := range []engine.GridPos{{Row: 2, Col: 1}, {Row: 2, Col: 2}, {Row: 1, Col: 0}} {
		if !s.Grid.At(p).Alive {
			t.Errorf("pixel %v eaten after the frog left", p)
		}
	}

	// The next frog skips the dead entry cell and dwells on (1,0)
	if evs := engine.DeployFromPool(s, 0); countKind(evs, engine.KindEntityDeployed) != 1 {
		t.Fatalf("deploy b: %v", kinds(evs))
	}
	engine.Update(s, 100)
	b := s.Entity("b")
	if b.State != engine.StateDwelling || b.Position.Index != 0 || b.Consumed != 1 {
		t.Errorf("frog b = %+v, want dwelling at 0 with 1 eaten", b)
	}
	if s.Grid.At(engine.GridPos{Row: 1, Col: 0}).Alive {
		t.Error("pixel (1,0) still alive")
	}
}
