package frogs_test

import (
	"testing"

	"github.com/vovakirdan/frogpond/internal/games/frogs"
	"github.com/vovakirdan/frogpond/internal/games/frogs/engine"
	"github.com/vovakirdan/frogpond/internal/games/frogs/level"
	"github.com/vovakirdan/frogpond/internal/games/frogs/levels"
	"github.com/vovakirdan/frogpond/internal/games/frogs/share"
)

func pond(t *testing.T) *level.Level {
	t.Helper()
	def, err := levels.Builtin().LoadByID("01-pond")
	if err != nil {
		t.Fatalf("LoadByID: %v", err)
	}
	return def.Level
}

func newSession(t *testing.T, opts frogs.Options) *frogs.Session {
	t.Helper()
	s, err := frogs.NewSession(pond(t), opts)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

// playOut lets the autoplay policy finish the game.
func playOut(t *testing.T, s *frogs.Session) {
	t.Helper()
	for i := 0; i < 100000 && !s.Done(); i++ {
		s.AutoDeploy()
		s.Step(16)
	}
	if !s.Done() {
		t.Fatal("game did not finish")
	}
}

func TestStepClampsDelta(t *testing.T) {
	s := newSession(t, frogs.Options{Seed: 1})
	s.Step(10000)
	if s.State.ElapsedMs != frogs.DefaultMaxDeltaMs {
		t.Errorf("elapsed = %v, want %v", s.State.ElapsedMs, frogs.DefaultMaxDeltaMs)
	}

	s = newSession(t, frogs.Options{Seed: 1, MaxDeltaMs: 40})
	s.Step(100)
	if s.State.ElapsedMs != 40 {
		t.Errorf("elapsed = %v, want 40", s.State.ElapsedMs)
	}
}

func TestPause(t *testing.T) {
	s := newSession(t, frogs.Options{Seed: 1})
	s.TogglePause()
	if evs := s.Step(100); evs != nil || s.State.ElapsedMs != 0 {
		t.Errorf("paused step advanced time: %v events, %vms", evs, s.State.ElapsedMs)
	}
	s.TogglePause()
	s.Step(100)
	if s.State.ElapsedMs != 100 {
		t.Errorf("elapsed = %v after resume, want 100", s.State.ElapsedMs)
	}
}

func TestDeployTracksBlockedReason(t *testing.T) {
	s := newSession(t, frogs.Options{Seed: 3})

	evs := s.Deploy()
	if len(evs) != 1 || evs[0].Kind() != engine.KindEntityDeployed {
		t.Fatalf("first deploy = %v", evs)
	}
	if s.Deploys != 1 || s.LastBlocked != "" {
		t.Errorf("deploys = %d, last blocked = %q", s.Deploys, s.LastBlocked)
	}

	// Still inside the deployment cooldown
	s.Deploy()
	if s.LastBlocked != engine.ReasonCooldown {
		t.Errorf("last blocked = %q, want %q", s.LastBlocked, engine.ReasonCooldown)
	}
	if s.Deploys != 1 {
		t.Errorf("blocked deploy counted: %d", s.Deploys)
	}

	// The waiting area starts empty
	s.SetFocus(frogs.FocusWaiting, 0)
	s.Deploy()
	if s.LastBlocked == "" || s.Deploys != 1 {
		t.Errorf("deploy from empty slot: blocked %q, deploys %d", s.LastBlocked, s.Deploys)
	}
}

func TestSelectionWraps(t *testing.T) {
	s := newSession(t, frogs.Options{Seed: 1})
	cols := len(s.State.Pool.Columns)
	slots := len(s.State.WaitingArea.Slots)

	s.MoveSelection(-1)
	if s.SelectedColumn != cols-1 {
		t.Errorf("column = %d, want %d", s.SelectedColumn, cols-1)
	}
	s.MoveSelection(1)
	if s.SelectedColumn != 0 {
		t.Errorf("column = %d, want 0", s.SelectedColumn)
	}

	s.ToggleFocus()
	if s.Focus != frogs.FocusWaiting {
		t.Fatalf("focus = %v, want waiting", s.Focus)
	}
	s.MoveSelection(-1)
	if s.SelectedSlot != slots-1 {
		t.Errorf("slot = %d, want %d", s.SelectedSlot, slots-1)
	}
	s.ToggleFocus()
	if s.Focus != frogs.FocusPool {
		t.Errorf("focus = %v, want pool", s.Focus)
	}

	s.SetFocus(frogs.FocusPool, 99)
	if s.SelectedColumn != cols-1 {
		t.Errorf("SetFocus did not clamp: column %d", s.SelectedColumn)
	}
}

func TestFromShareCode(t *testing.T) {
	code, err := share.EncodeLevel(pond(t), 424242)
	if err != nil {
		t.Fatal(err)
	}
	url, err := share.ShareURL("https://frogpond.example/play", code)
	if err != nil {
		t.Fatal(err)
	}

	shared, err := frogs.FromShareCode(url, frogs.Options{})
	if err != nil {
		t.Fatalf("FromShareCode: %v", err)
	}
	if shared.Seed() != 424242 || shared.LevelID() != "shared" {
		t.Errorf("seed %d level %q", shared.Seed(), shared.LevelID())
	}

	local := newSession(t, frogs.Options{Seed: 424242})
	if shared.State.Hash() != local.State.Hash() {
		t.Error("shared game differs from the local one")
	}

	again, err := shared.ShareCode()
	if err != nil {
		t.Fatal(err)
	}
	if again != code {
		t.Error("share code changed after a round trip")
	}

	if _, err := frogs.FromShareCode("not-a-code", frogs.Options{}); err == nil {
		t.Error("garbage code should fail")
	}
}

func TestOutcomeAndEvents(t *testing.T) {
	batches := 0
	s := newSession(t, frogs.Options{
		LevelID: "01-pond",
		Seed:    9,
		OnEvents: func(_ *engine.GameState, events []engine.Event) {
			if len(events) == 0 {
				t.Error("OnEvents called with no events")
			}
			batches++
		},
	})

	playOut(t, s)

	o := s.Outcome()
	if o.LevelID != "01-pond" || o.Seed != 9 {
		t.Errorf("outcome ids = %q/%d", o.LevelID, o.Seed)
	}
	if o.TotalAlive != 16 {
		t.Errorf("total alive = %d, want 16", o.TotalAlive)
	}
	switch o.Status {
	case engine.StatusWon:
		if o.RemainingAlive != 0 || o.LostReason != "" {
			t.Errorf("won outcome = %+v", o)
		}
	case engine.StatusLost:
		if o.LostReason == "" {
			t.Error("lost outcome has no reason")
		}
	default:
		t.Errorf("status = %s after the game ended", o.Status)
	}
	if o.Deploys == 0 || batches == 0 {
		t.Errorf("deploys = %d, event batches = %d", o.Deploys, batches)
	}
	if len(s.History) > 500 {
		t.Errorf("history holds %d events", len(s.History))
	}

	// Finished sessions ignore input
	if s.Step(100) != nil || s.Deploy() != nil || s.AutoDeploy() != nil {
		t.Error("finished session accepted input")
	}
	s.TogglePause()
	if s.Paused {
		t.Error("finished session paused")
	}
}

func TestRestart(t *testing.T) {
	s := newSession(t, frogs.Options{Seed: 5})
	fresh := s.State.Hash()

	s.Deploy()
	s.Step(200)
	s.MoveSelection(1)
	if err := s.Restart(); err != nil {
		t.Fatal(err)
	}

	if s.State.Hash() != fresh {
		t.Error("restart produced a different game")
	}
	if s.Deploys != 0 || len(s.History) != 0 || s.SelectedColumn != 0 {
		t.Errorf("restart kept state: deploys %d history %d column %d", s.Deploys, len(s.History), s.SelectedColumn)
	}
}
