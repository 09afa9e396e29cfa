package engine_test

import (
	"testing"

	"github.com/vovakirdan/frogpond/internal/games/frogs/engine"
)

func TestDeployAtPathCapacity(t *testing.T) {
	c := testConstraints()
	c.PathCapacity = 1
	s := newTestState(t, c, []string{"RR", "RR"}, 2, frog("a", "R", 2), frog("b", "R", 2))

	if evs := engine.DeployFromPool(s, 0); countKind(evs, engine.KindEntityDeployed) != 1 {
		t.Fatalf("first deploy = %v", evs)
	}
	if got := engine.Deploy(s, engine.DeployIntent{EntityID: "b", Source: engine.SourcePool, SourceIndex: 1}); blockedReason(got) != engine.ReasonPathAtCapacity {
		t.Errorf("second deploy = %v, want %q", got, engine.ReasonPathAtCapacity)
	}
	if r := s.Validator.CanDeployEntity(s); r.Valid || r.Reason != engine.ReasonPathAtCapacity {
		t.Errorf("CanDeployEntity = %+v", r)
	}
	if s.Pool.Front(1) != "b" {
		t.Error("blocked deploy must not change the pool")
	}
}

func TestDeployCooldownInclusive(t *testing.T) {
	c := testConstraints()
	c.DeploymentCooldownMs = 100
	s := newTestState(t, c, []string{"....", "...."}, 2, frog("a", "R", 1), frog("b", "R", 1))

	engine.DeployFromPool(s, 0)
	if got := engine.DeployFromPool(s, 1); blockedReason(got) != engine.ReasonCooldown {
		t.Fatalf("immediate deploy = %v, want cooldown", got)
	}

	engine.Update(s, 99)
	if got := engine.DeployFromPool(s, 1); blockedReason(got) != engine.ReasonCooldown {
		t.Fatalf("deploy at 99ms = %v, want cooldown", got)
	}

	// Exactly the cooldown has passed
	engine.Update(s, 1)
	if got := engine.DeployFromPool(s, 1); countKind(got, engine.KindEntityDeployed) != 1 {
		t.Errorf("deploy at 100ms = %v, want deployed", got)
	}
}

func TestDeployEntryClearance(t *testing.T) {
	c := testConstraints()
	c.EntryClearance = 2
	s := newTestState(t, c, []string{"....", "....", "....", "...."}, 2, frog("a", "R", 1), frog("b", "R", 1))

	engine.DeployFromPool(s, 0)
	for i, wantBlocked := range []bool{true, true, false} {
		engine.Update(s, 100)
		got := engine.DeployFromPool(s, 1)
		if wantBlocked {
			if blockedReason(got) != engine.ReasonEntryOccupied {
				t.Fatalf("update %d: deploy = %v, want entry occupied", i, got)
			}
			continue
		}
		if countKind(got, engine.KindEntityDeployed) != 1 {
			t.Fatalf("update %d: deploy = %v, want deployed", i, got)
		}
	}
	if idx := s.Entity("a").Position.Index; idx != 2 {
		t.Errorf("frog a at %d, want 2", idx)
	}
}

func TestDeployIntentValidation(t *testing.T) {
	c := testConstraints()
	c.WaitingAreaCapacity = 1
	s := newTestState(t, c, []string{"RR", "RR"}, 1, frog("a", "R", 2), frog("b", "R", 2))

	tests := []struct {
		name   string
		intent engine.DeployIntent
		want   string
	}{
		{"not at front", engine.DeployIntent{EntityID: "b", Source: engine.SourcePool, SourceIndex: 0}, engine.ReasonNotAtFront},
		{"unknown entity", engine.DeployIntent{EntityID: "zz", Source: engine.SourcePool, SourceIndex: 0}, engine.ReasonEntityNotFound},
		{"not in slot", engine.DeployIntent{EntityID: "a", Source: engine.SourceWaitingArea, SourceIndex: 0}, engine.ReasonNotInSlot},
		{"bad column", engine.DeployIntent{EntityID: "a", Source: engine.SourcePool, SourceIndex: 7}, engine.ReasonNotAtFront},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := s.Hash()
			got := engine.HandleDeployIntent(s, tt.intent)
			if blockedReason(got) != tt.want {
				t.Errorf("HandleDeployIntent = %v, want %q", got, tt.want)
			}
			if s.Hash() != before {
				t.Error("HandleDeployIntent changed the state")
			}
		})
	}

	if got := engine.DeployFromPool(s, 3); blockedReason(got) != engine.ReasonEmptyColumn {
		t.Errorf("empty column = %v, want %q", got, engine.ReasonEmptyColumn)
	}
	if got := engine.DeployFromWaitingArea(s, 0); blockedReason(got) != engine.ReasonEmptySlot {
		t.Errorf("empty slot = %v, want %q", got, engine.ReasonEmptySlot)
	}

	// The front frog is accepted, and not reordered
	got := engine.HandleDeployIntent(s, engine.DeployIntent{EntityID: "a", Source: engine.SourcePool, SourceIndex: 0})
	if len(got) != 1 || got[0].Kind() != engine.KindEntityDeployed {
		t.Errorf("front deploy = %v", got)
	}
}

func TestNoEntitiesAvailable(t *testing.T) {
	s := newTestState(t, testConstraints(), []string{"RR", "RR"}, 1, frog("a", "R", 4))
	engine.DeployFromPool(s, 0)

	if r := s.Validator.CanDeployEntity(s); r.Valid || r.Reason != engine.ReasonNoEntities {
		t.Errorf("CanDeployEntity = %+v, want %q", r, engine.ReasonNoEntities)
	}
}

func TestAutoDeployPrefersExposedColour(t *testing.T) {
	// Green is exposed from the bottom row; red is hidden behind it.
	s := newTestState(t, testConstraints(), []string{"RRR", "RRR", "GGG"}, 2, frog("r", "R", 6), frog("g", "G", 3))

	exposed := engine.ExposedTypes(s)
	if !exposed["G"] || !exposed["R"] {
		// Right, top and left edges see red
		t.Fatalf("exposed = %v", exposed)
	}

	s2 := newTestState(t, testConstraints(), []string{"GGG", "GRG", "GGG"}, 2, frog("r", "R", 1), frog("g", "G", 8))
	if engine.ExposedTypes(s2)["R"] {
		t.Fatal("centre red pixel should not be exposed")
	}
	evs := engine.AutoDeploy(s2)
	dep, ok := evs[0].(engine.EntityDeployed)
	if !ok || dep.EntityID != "g" {
		t.Errorf("AutoDeploy = %v, want green frog", evs)
	}
}

func TestRunAutoplayDeterministic(t *testing.T) {
	build := func() *engine.GameState {
		c := testConstraints()
		c.DeploymentCooldownMs = 200
		return newTestState(t, c, []string{"RRG", "RGG", "GGR"}, 2,
			frog("r1", "R", 2), frog("g1", "G", 3), frog("r2", "R", 2), frog("g2", "G", 2))
	}

	a, b := build(), build()
	resA := engine.RunAutoplay(a, engine.AutoplayOptions{StepMs: 16, MaxSteps: 10000})
	resB := engine.RunAutoplay(b, engine.AutoplayOptions{StepMs: 16, MaxSteps: 10000})

	if resA != resB {
		t.Errorf("results differ: %+v vs %+v", resA, resB)
	}
	if a.Hash() != b.Hash() {
		t.Error("final states differ")
	}
	if resA.Status.Running() {
		t.Errorf("game did not finish in %d steps", resA.Steps)
	}
	if resA.Deploys < 4 {
		t.Errorf("deploys = %d, want every frog deployed", resA.Deploys)
	}
}
