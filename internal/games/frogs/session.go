// Package frogs drives one frog pond game: it owns the engine state, pumps
// clamped time deltas into it and turns player selections into deploys.
package frogs

import (
	"fmt"
	"math/rand/v2"

	"github.com/vovakirdan/frogpond/internal/games/frogs/engine"
	"github.com/vovakirdan/frogpond/internal/games/frogs/level"
	"github.com/vovakirdan/frogpond/internal/games/frogs/share"
)

// DefaultMaxDeltaMs is the largest frame gap fed to the engine.
const DefaultMaxDeltaMs = 250

// maxHistory bounds the number of events kept by a session.
const maxHistory = 500

// FocusArea indicates which container has input focus.
type FocusArea int

const (
	FocusPool FocusArea = iota
	FocusWaiting
)

// Options configures a session.
type Options struct {
	LevelID    string
	Seed       uint32
	MaxDeltaMs float64 // <= 0 means DefaultMaxDeltaMs

	// OnEvents, if set, receives every non-empty batch of events.
	OnEvents func(s *engine.GameState, events []engine.Event)
}

// Session is the single owner of a running game.
type Session struct {
	Level *level.Level
	State *engine.GameState
	opts  Options

	// Selection state
	Focus          FocusArea
	SelectedColumn int
	SelectedSlot   int

	Paused      bool
	Deploys     int
	LastBlocked string // Reason of the last rejected deploy, cleared by the next success
	History     []engine.Event
}

// NewSession generates the game for l and opts.Seed.
func NewSession(l *level.Level, opts Options) (*Session, error) {
	if opts.MaxDeltaMs <= 0 {
		opts.MaxDeltaMs = DefaultMaxDeltaMs
	}
	s := &Session{Level: l, opts: opts}
	if err := s.Restart(); err != nil {
		return nil, err
	}
	return s, nil
}

// FromShareCode builds a session from a share code or share URL.
func FromShareCode(input string, opts Options) (*Session, error) {
	snap, err := share.Decode(share.ExtractShareCode(input))
	if err != nil {
		return nil, err
	}
	l, err := snap.Rehydrate()
	if err != nil {
		return nil, fmt.Errorf("rehydrating level: %w", err)
	}
	opts.Seed = snap.Seed
	if opts.LevelID == "" {
		opts.LevelID = "shared"
	}
	return NewSession(l, opts)
}

// RandomSeed draws a non-zero generation seed.
func RandomSeed() uint32 {
	for {
		if seed := rand.Uint32(); seed != 0 {
			return seed
		}
	}
}

// Restart regenerates the game from the level and seed.
func (s *Session) Restart() error {
	state, err := level.NewGame(s.Level, s.opts.Seed)
	if err != nil {
		return fmt.Errorf("generating game: %w", err)
	}
	s.State = state
	s.Focus = FocusPool
	s.SelectedColumn = 0
	s.SelectedSlot = 0
	s.Paused = false
	s.Deploys = 0
	s.LastBlocked = ""
	s.History = s.History[:0]
	return nil
}

// LevelID returns the id the session was started with.
func (s *Session) LevelID() string {
	return s.opts.LevelID
}

// Seed returns the generation seed.
func (s *Session) Seed() uint32 {
	return s.opts.Seed
}

// Step advances the game by deltaMs of wall-clock time, clamped to the
// configured maximum. Paused or finished sessions do nothing.
func (s *Session) Step(deltaMs float64) []engine.Event {
	if s.Paused || s.Done() {
		return nil
	}
	if deltaMs > s.opts.MaxDeltaMs {
		deltaMs = s.opts.MaxDeltaMs
	}
	events := engine.Update(s.State, deltaMs)
	s.record(events)
	return events
}

// Deploy deploys the frog under the current selection.
func (s *Session) Deploy() []engine.Event {
	if s.Done() {
		return nil
	}

	var events []engine.Event
	switch s.Focus {
	case FocusWaiting:
		events = engine.DeployFromWaitingArea(s.State, s.SelectedSlot)
	default:
		events = engine.DeployFromPool(s.State, s.SelectedColumn)
	}

	for _, ev := range events {
		switch e := ev.(type) {
		case engine.EntityDeployed:
			s.Deploys++
			s.LastBlocked = ""
		case engine.DeployBlocked:
			s.LastBlocked = e.Reason
		}
	}
	s.record(events)
	s.clampSelection()
	return events
}

// AutoDeploy lets the built-in policy pick a deploy.
func (s *Session) AutoDeploy() []engine.Event {
	if s.Done() {
		return nil
	}
	events := engine.AutoDeploy(s.State)
	for _, ev := range events {
		if _, ok := ev.(engine.EntityDeployed); ok {
			s.Deploys++
			s.LastBlocked = ""
		}
	}
	s.record(events)
	s.clampSelection()
	return events
}

// MoveSelection moves the cursor within the focused container, wrapping.
func (s *Session) MoveSelection(delta int) {
	switch s.Focus {
	case FocusWaiting:
		if n := len(s.State.WaitingArea.Slots); n > 0 {
			s.SelectedSlot = wrap(s.SelectedSlot+delta, n)
		}
	default:
		if n := len(s.State.Pool.Columns); n > 0 {
			s.SelectedColumn = wrap(s.SelectedColumn+delta, n)
		}
	}
}

// ToggleFocus switches between the pool and the waiting area.
func (s *Session) ToggleFocus() {
	if s.Focus == FocusPool && len(s.State.WaitingArea.Slots) > 0 {
		s.Focus = FocusWaiting
		return
	}
	s.Focus = FocusPool
}

// SetFocus selects a container and index directly.
func (s *Session) SetFocus(area FocusArea, index int) {
	s.Focus = area
	switch area {
	case FocusWaiting:
		s.SelectedSlot = index
	default:
		s.SelectedColumn = index
	}
	s.clampSelection()
}

// TogglePause pauses or resumes time.
func (s *Session) TogglePause() {
	if !s.Done() {
		s.Paused = !s.Paused
	}
}

// Done reports whether the game is won or lost.
func (s *Session) Done() bool {
	return !s.State.Status.Running()
}

// Outcome summarizes a finished or running game.
type Outcome struct {
	LevelID        string
	Seed           uint32
	Status         engine.Status
	LostReason     string
	ElapsedMs      float64
	Deploys        int
	RemainingAlive int
	TotalAlive     int
}

// Outcome returns the current outcome.
func (s *Session) Outcome() Outcome {
	o := Outcome{
		LevelID:        s.opts.LevelID,
		Seed:           s.opts.Seed,
		Status:         s.State.Status,
		ElapsedMs:      s.State.ElapsedMs,
		Deploys:        s.Deploys,
		RemainingAlive: s.State.Grid.AliveCount(),
		TotalAlive:     s.Level.AliveCount(),
	}
	for i := len(s.History) - 1; i >= 0; i-- {
		if lost, ok := s.History[i].(engine.GameLost); ok {
			o.LostReason = lost.Reason
			break
		}
	}
	return o
}

// ShareCode encodes the session's level and seed.
func (s *Session) ShareCode() (string, error) {
	return share.EncodeLevel(s.Level, s.opts.Seed)
}

func (s *Session) record(events []engine.Event) {
	if len(events) == 0 {
		return
	}
	s.History = append(s.History, events...)
	if over := len(s.History) - maxHistory; over > 0 {
		s.History = append(s.History[:0], s.History[over:]...)
	}
	if s.opts.OnEvents != nil {
		s.opts.OnEvents(s.State, events)
	}
}

// clampSelection keeps the cursor inside the containers.
func (s *Session) clampSelection() {
	if n := len(s.State.Pool.Columns); s.SelectedColumn >= n {
		s.SelectedColumn = max(n-1, 0)
	}
	if n := len(s.State.WaitingArea.Slots); s.SelectedSlot >= n {
		s.SelectedSlot = max(n-1, 0)
	}
	if s.SelectedColumn < 0 {
		s.SelectedColumn = 0
	}
	if s.SelectedSlot < 0 {
		s.SelectedSlot = 0
	}
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}
