package engine

// CornerSegmentTimeMultiplier stretches the time spent on a segment
// whose next segment lies on a different edge.
const CornerSegmentTimeMultiplier = 3

// IsCornerTransition reports whether moving from current to next turns a corner.
// A missing segment on either side is never a corner.
func IsCornerTransition(current, next *Segment) bool {
	if current == nil || next == nil {
		return false
	}
	return current.Edge != next.Edge
}

// SegmentDuration returns the milliseconds needed to leave current for next.
func SegmentDuration(msPerSegment float64, current, next *Segment) float64 {
	if IsCornerTransition(current, next) {
		return msPerSegment * CornerSegmentTimeMultiplier
	}
	return msPerSegment
}

// SegmentProgress returns how far along its current segment an entity is,
// as a fraction of the segment's duration. Renderers use it to interpolate.
// A non-positive duration counts as complete.
func SegmentProgress(timeAtPosition, msPerSegment float64, current, next *Segment) float64 {
	needed := SegmentDuration(msPerSegment, current, next)
	if needed <= 0 {
		return 1
	}
	return timeAtPosition / needed
}

// segmentAt returns the segment at index i, or nil when i is off the path.
func segmentAt(segments []Segment, i int) *Segment {
	if i < 0 || i >= len(segments) {
		return nil
	}
	return &segments[i]
}

// EntityProgress is SegmentProgress for an entity on the state's path.
func (s *GameState) EntityProgress(e *Entity) float64 {
	cur := segmentAt(s.Path.Segments, e.Position.Index)
	next := segmentAt(s.Path.Segments, e.Position.Index+1)
	return SegmentProgress(e.Position.TimeAtPosition, s.Constraints.MsPerSegment, cur, next)
}
