package engine

// Edge identifies which side of the grid a path segment runs along.
type Edge uint8

const (
	EdgeBottom Edge = iota
	EdgeRight
	EdgeTop
	EdgeLeft
)

// String returns the string representation of an edge.
func (e Edge) String() string {
	switch e {
	case EdgeBottom:
		return "bottom"
	case EdgeRight:
		return "right"
	case EdgeTop:
		return "top"
	case EdgeLeft:
		return "left"
	default:
		return "unknown"
	}
}

// Facing is the direction a frog looks (and raycasts) from a segment.
type Facing uint8

const (
	FacingNorth Facing = iota
	FacingEast
	FacingSouth
	FacingWest
)

// String returns the string representation of a facing.
func (f Facing) String() string {
	switch f {
	case FacingNorth:
		return "north"
	case FacingEast:
		return "east"
	case FacingSouth:
		return "south"
	case FacingWest:
		return "west"
	default:
		return "unknown"
	}
}

// Delta returns the (dRow, dCol) offset of one step in this direction.
// North decreases the row (screen coordinates).
func (f Facing) Delta() (dRow, dCol int) {
	switch f {
	case FacingNorth:
		return -1, 0
	case FacingEast:
		return 0, 1
	case FacingSouth:
		return 1, 0
	case FacingWest:
		return 0, -1
	default:
		return 0, 0
	}
}

// GridPos is a (row, col) cell coordinate.
type GridPos struct {
	Row int
	Col int
}

// Add returns the position offset by (dRow, dCol).
func (p GridPos) Add(dRow, dCol int) GridPos {
	return GridPos{Row: p.Row + dRow, Col: p.Col + dCol}
}

// Segment is one discrete position on the perimeter path.
type Segment struct {
	Pos    GridPos // Perimeter cell this segment looks into
	Edge   Edge
	Facing Facing
}

// GeneratePath builds the perimeter loop for a w x h grid.
// Edges are emitted in a fixed order, each corner cell exactly once:
//   - bottom: row h-1, left to right, facing north
//   - right: col w-1, bottom to top, facing west
//   - top: row 0, right to left, facing south
//   - left: col 0, top to bottom, facing east
//
// Index 0 is always (h-1, 0) facing north. The result has 2*(w+h)-4
// segments for w, h >= 2.
func GeneratePath(w, h int) []Segment {
	if w < 1 || h < 1 {
		return nil
	}

	segments := make([]Segment, 0, PerimeterLength(w, h))

	for col := 0; col < w; col++ {
		segments = append(segments, Segment{Pos: GridPos{h - 1, col}, Edge: EdgeBottom, Facing: FacingNorth})
	}
	for row := h - 2; row >= 0; row-- {
		segments = append(segments, Segment{Pos: GridPos{row, w - 1}, Edge: EdgeRight, Facing: FacingWest})
	}
	if h > 1 {
		for col := w - 2; col >= 0; col-- {
			segments = append(segments, Segment{Pos: GridPos{0, col}, Edge: EdgeTop, Facing: FacingSouth})
		}
	}
	if w > 1 {
		for row := 1; row <= h-2; row++ {
			segments = append(segments, Segment{Pos: GridPos{row, 0}, Edge: EdgeLeft, Facing: FacingEast})
		}
	}

	return segments
}

// PerimeterLength returns the number of perimeter cells of a w x h grid.
func PerimeterLength(w, h int) int {
	switch {
	case w < 1 || h < 1:
		return 0
	case w == 1:
		return h
	case h == 1:
		return w
	default:
		return 2*(w+h) - 4
	}
}

// NextPathIndex returns i+1, or false when the loop is complete.
// The path never wraps around.
func NextPathIndex(i, length int) (int, bool) {
	if i+1 >= length {
		return -1, false
	}
	return i + 1, true
}
