package engine

import "math"

// Update advances the simulation by elapsedMs of driver time and returns the
// events it produced, in order. Each event is folded onto the state as soon as
// it is emitted, so later frogs in the same update see earlier consumptions and
// slot assignments. Once the game is won or lost, Update returns nil.
func Update(s *GameState, elapsedMs float64) []Event {
	if !s.Status.Running() {
		return nil
	}
	if elapsedMs < 0 || math.IsNaN(elapsedMs) {
		elapsedMs = 0
	}

	dt := elapsedMs * s.Validator.TimeScale(s)
	s.Tick++
	s.ElapsedMs += dt

	var events []Event
	emit := func(ev Event) {
		Apply(s, ev)
		events = append(events, ev)
	}

	ids := append([]EntityID(nil), s.Path.Entities...)
	for _, id := range ids {
		if !s.Status.Running() {
			break
		}
		advanceEntity(s, s.mustEntity(id), dt, emit)
	}

	if s.Status == StatusPlaying && s.Validator.CanEnterVictoryMode(s).Valid {
		emit(VictoryModeTriggered{})
	}
	if s.Status.Running() && s.Validator.IsGameWon(s) {
		emit(GameWon{})
	}

	return events
}

// advanceEntity accumulates time for one frog and resolves its move once the
// current segment's duration is reached. At most one move happens per update.
func advanceEntity(s *GameState, e *Entity, dt float64, emit func(Event)) {
	e.Position.TimeAtPosition += dt

	cur := segmentAt(s.Path.Segments, e.Position.Index)
	next := segmentAt(s.Path.Segments, e.Position.Index+1)
	needed := SegmentDuration(s.Constraints.MsPerSegment, cur, next)
	if e.Position.TimeAtPosition < needed {
		return
	}

	to, ok := NextPathIndex(e.Position.Index, s.Path.Len())
	if !ok {
		completeLoop(s, e, emit)
		return
	}

	seg := s.Path.Segments[to]
	intent := s.Validator.WillEntityConsume(e, seg.Pos, &s.Grid, seg.Facing)
	emit(EntityMoving{
		EntityID: e.ID,
		From:     e.Position.Index,
		To:       to,
		Carry:    math.Min(e.Position.TimeAtPosition-needed, s.Constraints.MsPerSegment),
		Intent:   intent,
	})

	if !intent.WillConsume {
		return
	}
	emit(ResourceConsumed{EntityID: e.ID, ResourceID: intent.ResourceID, Target: intent.Target})
	if intent.WillExhaust {
		emit(EntityExhausted{EntityID: e.ID})
	}
}

// completeLoop decides what happens to a frog that ran off the end of the path.
func completeLoop(s *GameState, e *Entity, emit func(Event)) {
	satisfied := e.Satisfied()
	if satisfied || s.Status == StatusVictoryMode {
		emit(EntityCompletedLoop{EntityID: e.ID, Satisfied: satisfied})
		return
	}

	wait := s.Validator.ShouldEntityWait(s, e)
	if !wait.Valid {
		emit(GameLost{EntityID: e.ID, Reason: wait.Reason})
		return
	}
	room := s.Validator.CanAcceptWaitingEntity(s)
	if !room.Valid {
		emit(GameLost{EntityID: e.ID, Reason: room.Reason})
		return
	}

	slot := s.WaitingArea.FindFreeSlot()
	if slot < 0 {
		emit(GameLost{EntityID: e.ID, Reason: ReasonNoWaitingSlot, InvariantViolation: true})
		return
	}
	emit(EntityToWaitingArea{EntityID: e.ID, Slot: slot})
}
