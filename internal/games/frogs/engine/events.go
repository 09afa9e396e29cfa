package engine

import "fmt"

// EventKind names an event variant.
type EventKind string

const (
	KindEntityMoving         EventKind = "ENTITY_MOVING"
	KindResourceConsumed     EventKind = "RESOURCE_CONSUMED"
	KindEntityExhausted      EventKind = "ENTITY_EXHAUSTED"
	KindEntityCompletedLoop  EventKind = "ENTITY_COMPLETED_LOOP"
	KindEntityToWaitingArea  EventKind = "ENTITY_TO_WAITING_AREA"
	KindGameLost             EventKind = "GAME_LOST"
	KindVictoryModeTriggered EventKind = "VICTORY_MODE_TRIGGERED"
	KindGameWon              EventKind = "GAME_WON"
	KindEntityDeployed       EventKind = "ENTITY_DEPLOYED"
	KindDeployBlocked        EventKind = "DEPLOY_BLOCKED"
)

// Event is one recorded change. The concrete types below are the only variants.
type Event interface {
	Kind() EventKind
}

// EntityMoving moves a frog from one path index to the next.
// Intent is the lookahead at the destination, consuming or not.
type EntityMoving struct {
	EntityID EntityID
	From     int
	To       int
	Carry    float64 // TimeAtPosition at the destination
	Intent   ConsumeIntent
}

// ResourceConsumed marks a resource eaten by a frog.
type ResourceConsumed struct {
	EntityID   EntityID
	ResourceID string
	Target     GridPos
}

// EntityExhausted pulls a satisfied frog off the path.
type EntityExhausted struct {
	EntityID EntityID
}

// EntityCompletedLoop drops a frog that finished the loop satisfied
// or during victory mode.
type EntityCompletedLoop struct {
	EntityID  EntityID
	Satisfied bool
}

// EntityToWaitingArea moves a hungry frog from the path into a slot.
type EntityToWaitingArea struct {
	EntityID EntityID
	Slot     int
}

// GameLost ends the game.
type GameLost struct {
	EntityID           EntityID
	Reason             string
	InvariantViolation bool // The waiting area had room but no free slot
}

// VictoryModeTriggered starts the accelerated endgame.
type VictoryModeTriggered struct{}

// GameWon ends the game with every frog gone.
type GameWon struct{}

// EntityDeployed moves a frog from the pool or waiting area onto the path.
type EntityDeployed struct {
	EntityID    EntityID
	Source      Source
	SourceIndex int
}

// DeployBlocked records a rejected deploy request. It changes nothing.
type DeployBlocked struct {
	Reason string
}

func (EntityMoving) Kind() EventKind         { return KindEntityMoving }
func (ResourceConsumed) Kind() EventKind     { return KindResourceConsumed }
func (EntityExhausted) Kind() EventKind      { return KindEntityExhausted }
func (EntityCompletedLoop) Kind() EventKind  { return KindEntityCompletedLoop }
func (EntityToWaitingArea) Kind() EventKind  { return KindEntityToWaitingArea }
func (GameLost) Kind() EventKind             { return KindGameLost }
func (VictoryModeTriggered) Kind() EventKind { return KindVictoryModeTriggered }
func (GameWon) Kind() EventKind              { return KindGameWon }
func (EntityDeployed) Kind() EventKind       { return KindEntityDeployed }
func (DeployBlocked) Kind() EventKind        { return KindDeployBlocked }

// Apply folds one event onto the state. Events referencing unknown
// entities panic; status events never move the status backwards.
func Apply(s *GameState, ev Event) {
	switch e := ev.(type) {
	case EntityMoving:
		ent := s.mustEntity(e.EntityID)
		ent.Position = Position{Index: e.To, TimeAtPosition: e.Carry}
		if e.Intent.WillConsume {
			ent.State = StateDwelling
		} else {
			ent.State = StateMoving
		}

	case ResourceConsumed:
		ent := s.mustEntity(e.EntityID)
		res := s.Grid.At(e.Target)
		if res == nil || res.ID != e.ResourceID {
			panic(fmt.Sprintf("engine: resource %q not at %v", e.ResourceID, e.Target))
		}
		if !res.Alive || ent.Satisfied() {
			return
		}
		res.Alive = false
		ent.Consumed++
		s.logf("%s ate %s", ent.ID, res.ID)

	case EntityExhausted:
		ent := s.mustEntity(e.EntityID)
		if !ent.Satisfied() {
			return
		}
		ent.State = StateWaiting
		s.Path.remove(ent.ID)
		s.logf("%s exhausted", ent.ID)

	case EntityCompletedLoop:
		s.mustEntity(e.EntityID)
		s.Path.remove(e.EntityID)
		s.logf("%s completed loop (satisfied=%v)", e.EntityID, e.Satisfied)

	case EntityToWaitingArea:
		ent := s.mustEntity(e.EntityID)
		if e.Slot < 0 || e.Slot >= len(s.WaitingArea.Slots) || s.WaitingArea.Slots[e.Slot] != NoEntity {
			panic(fmt.Sprintf("engine: waiting slot %d not free for %s", e.Slot, e.EntityID))
		}
		s.Path.remove(ent.ID)
		s.WaitingArea.Slots[e.Slot] = ent.ID
		ent.State = StateWaiting
		ent.Position = Position{Index: -1}
		s.logf("%s waiting in slot %d", ent.ID, e.Slot)

	case GameLost:
		if s.Status.Running() {
			s.Status = StatusLost
			s.logf("lost: %s", e.Reason)
		}

	case VictoryModeTriggered:
		if s.Status == StatusPlaying {
			s.Status = StatusVictoryMode
			s.logf("victory mode")
		}

	case GameWon:
		if s.Status.Running() {
			s.Status = StatusWon
			s.logf("won")
		}

	case EntityDeployed:
		applyEntityDeployed(s, e)

	case DeployBlocked:
		// Nothing changes.

	default:
		panic(fmt.Sprintf("engine: unknown event %T", ev))
	}
}

// ApplyAll folds events in order.
func ApplyAll(s *GameState, events []Event) {
	for _, ev := range events {
		Apply(s, ev)
	}
}
