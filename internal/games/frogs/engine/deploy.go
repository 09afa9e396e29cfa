package engine

// Source names the container a frog is deployed from.
type Source string

const (
	SourcePool        Source = "pool"
	SourceWaitingArea Source = "waiting_area"
)

// Deploy rejection reasons, in addition to the validator's.
const (
	ReasonGameOver       = "Game is over"
	ReasonEntryOccupied  = "Entry position occupied"
	ReasonEntityNotFound = "Entity not found"
	ReasonNotAtFront     = "Entity not at front of column"
	ReasonNotInSlot      = "Entity not in waiting area slot"
	ReasonEmptyColumn    = "No entity in column"
	ReasonEmptySlot      = "Slot is empty"
)

// DeployIntent asks to put a specific frog on the path.
type DeployIntent struct {
	EntityID    EntityID
	Source      Source
	SourceIndex int // Pool column or waiting-area slot
}

// HandleDeployIntent checks an intent and returns either an EntityDeployed
// or a DeployBlocked event. It does not change the state.
// Frogs that are not at the front of their column, or not in the named
// slot, are rejected rather than reordered.
func HandleDeployIntent(s *GameState, intent DeployIntent) []Event {
	if ev := precheck(s); ev != nil {
		return ev
	}
	if !s.EntryClear() {
		return blocked(ReasonEntryOccupied)
	}
	if s.Entity(intent.EntityID) == nil {
		return blocked(ReasonEntityNotFound)
	}

	switch intent.Source {
	case SourcePool:
		if s.Pool.Front(intent.SourceIndex) != intent.EntityID {
			return blocked(ReasonNotAtFront)
		}
	case SourceWaitingArea:
		if s.WaitingArea.Get(intent.SourceIndex) != intent.EntityID {
			return blocked(ReasonNotInSlot)
		}
	default:
		return blocked(ReasonEntityNotFound)
	}

	return []Event{EntityDeployed{
		EntityID:    intent.EntityID,
		Source:      intent.Source,
		SourceIndex: intent.SourceIndex,
	}}
}

// Deploy handles the intent and applies the resulting events.
func Deploy(s *GameState, intent DeployIntent) []Event {
	events := HandleDeployIntent(s, intent)
	ApplyAll(s, events)
	return events
}

// DeployFromPool deploys the front frog of a pool column.
func DeployFromPool(s *GameState, column int) []Event {
	if ev := precheck(s); ev != nil {
		return ev
	}
	id := s.Pool.Front(column)
	if id == NoEntity {
		return blocked(ReasonEmptyColumn)
	}
	return Deploy(s, DeployIntent{EntityID: id, Source: SourcePool, SourceIndex: column})
}

// DeployFromWaitingArea deploys the frog in a waiting-area slot.
func DeployFromWaitingArea(s *GameState, slot int) []Event {
	if ev := precheck(s); ev != nil {
		return ev
	}
	id := s.WaitingArea.Get(slot)
	if id == NoEntity {
		return blocked(ReasonEmptySlot)
	}
	return Deploy(s, DeployIntent{EntityID: id, Source: SourceWaitingArea, SourceIndex: slot})
}

// precheck applies the game-wide deploy rules shared by every request.
func precheck(s *GameState) []Event {
	if !s.Status.Running() {
		return blocked(ReasonGameOver)
	}
	if r := s.Validator.CanDeployEntity(s); !r.Valid {
		return blocked(r.Reason)
	}
	return nil
}

func blocked(reason string) []Event {
	return []Event{DeployBlocked{Reason: reason}}
}

// applyEntityDeployed puts the frog just before index 0 with a full segment
// of time banked, so it reaches the entry on the next update.
func applyEntityDeployed(s *GameState, e EntityDeployed) {
	ent := s.mustEntity(e.EntityID)

	switch e.Source {
	case SourcePool:
		col := &s.Pool.Columns[e.SourceIndex]
		if len(col.Entities) == 0 || col.Entities[0] != ent.ID {
			panic("engine: deployed entity " + string(ent.ID) + " is not at the front of its column")
		}
		col.Entities = col.Entities[1:]
	case SourceWaitingArea:
		if !s.WaitingArea.remove(ent.ID) {
			panic("engine: deployed entity " + string(ent.ID) + " is not in the waiting area")
		}
	}

	ent.Position = Position{Index: -1, TimeAtPosition: s.Constraints.MsPerSegment}
	ent.State = StateMoving
	s.Path.Entities = append(s.Path.Entities, ent.ID)

	s.Debug.LastDeployMs = s.ElapsedMs
	s.Debug.HasDeployed = true
	s.logf("%s deployed from %s[%d]", ent.ID, e.Source, e.SourceIndex)
}
