// Package engine provides the deterministic simulation core for the frog pond puzzle.
// This package is UI-agnostic: it owns no timers, performs no I/O and keeps no
// state outside the GameState passed to it.
package engine

// EntityID identifies a frog.
type EntityID string

// NoEntity marks an empty waiting-area slot.
const NoEntity EntityID = ""

// EntityState is the discrete lifecycle state of a frog.
type EntityState string

const (
	StateWaiting  EntityState = "waiting"  // In a pool column or the waiting area
	StateMoving   EntityState = "moving"   // On the path, advancing
	StateDwelling EntityState = "dwelling" // On the path, paused while consuming
)

// Position is an entity's place on the path.
// Index -1 means deployed but not yet on the first segment.
type Position struct {
	Index          int
	TimeAtPosition float64 // Milliseconds accumulated at Index
}

// Entity is a frog: it eats resources of one type until its capacity is met.
type Entity struct {
	ID           EntityID
	ResourceType string
	Capacity     int
	Consumed     int
	Position     Position
	State        EntityState
}

// Satisfied reports whether the entity has eaten its full capacity.
func (e *Entity) Satisfied() bool {
	return e.Consumed >= e.Capacity
}

// Remaining returns how much the entity can still eat.
func (e *Entity) Remaining() int {
	if e.Consumed >= e.Capacity {
		return 0
	}
	return e.Capacity - e.Consumed
}

// Resource is the engine view of a pixel.
type Resource struct {
	ID    string
	Type  string
	Pos   GridPos
	Alive bool
}

// Status is the game status. It only moves forward:
// playing -> victory_mode -> won, or playing/victory_mode -> lost.
type Status string

const (
	StatusPlaying     Status = "playing"
	StatusVictoryMode Status = "victory_mode"
	StatusWon         Status = "won"
	StatusLost        Status = "lost"
)

// Running reports whether updates still advance the simulation.
func (s Status) Running() bool {
	return s == StatusPlaying || s == StatusVictoryMode
}

// Grid holds the resources row-major as Resources[row][col].
type Grid struct {
	Width     int
	Height    int
	Resources [][]Resource
}

// InBounds reports whether p lies inside the grid.
func (g *Grid) InBounds(p GridPos) bool {
	return p.Row >= 0 && p.Row < g.Height && p.Col >= 0 && p.Col < g.Width
}

// At returns the resource at p, or nil when out of bounds.
func (g *Grid) At(p GridPos) *Resource {
	if !g.InBounds(p) {
		return nil
	}
	return &g.Resources[p.Row][p.Col]
}

// AliveCount returns the number of alive resources.
func (g *Grid) AliveCount() int {
	n := 0
	for _, row := range g.Resources {
		for _, r := range row {
			if r.Alive {
				n++
			}
		}
	}
	return n
}

// AliveByType counts alive resources per type.
func (g *Grid) AliveByType() map[string]int {
	counts := make(map[string]int)
	for _, row := range g.Resources {
		for _, r := range row {
			if r.Alive {
				counts[r.Type]++
			}
		}
	}
	return counts
}

// Raycast walks from start along facing and returns the first alive resource.
func (g *Grid) Raycast(start GridPos, facing Facing) *Resource {
	dr, dc := facing.Delta()
	for p := start; g.InBounds(p); p = p.Add(dr, dc) {
		if r := g.At(p); r.Alive {
			return r
		}
	}
	return nil
}

// Column is one pool queue; index 0 is the front.
type Column struct {
	Entities   []EntityID
	MaxVisible int
}

// Pool holds the undeployed frogs.
type Pool struct {
	Columns []Column
}

// Front returns the front entity of column i, or NoEntity.
func (p *Pool) Front(i int) EntityID {
	if i < 0 || i >= len(p.Columns) || len(p.Columns[i].Entities) == 0 {
		return NoEntity
	}
	return p.Columns[i].Entities[0]
}

// Total returns the number of entities across all columns.
func (p *Pool) Total() int {
	n := 0
	for _, c := range p.Columns {
		n += len(c.Entities)
	}
	return n
}

// IsEmpty reports whether every column is empty.
func (p *Pool) IsEmpty() bool {
	return p.Total() == 0
}

// Path is the perimeter loop and the frogs currently on it, in deploy order.
type Path struct {
	Entities []EntityID
	Capacity int
	Segments []Segment
}

// Len returns the number of segments.
func (p *Path) Len() int {
	return len(p.Segments)
}

// Contains reports whether id is on the path.
func (p *Path) Contains(id EntityID) bool {
	for _, e := range p.Entities {
		if e == id {
			return true
		}
	}
	return false
}

// remove filters id out of the path.
func (p *Path) remove(id EntityID) {
	kept := p.Entities[:0]
	for _, e := range p.Entities {
		if e != id {
			kept = append(kept, e)
		}
	}
	p.Entities = kept
}

// WaitingArea is a fixed row of slots; NoEntity marks a free slot.
// Occupied slots are kept left-compacted.
type WaitingArea struct {
	Slots    []EntityID
	Capacity int
}

// FindFreeSlot returns the index of the first free slot, or -1 if none.
func (w *WaitingArea) FindFreeSlot() int {
	for i, id := range w.Slots {
		if id == NoEntity {
			return i
		}
	}
	return -1
}

// Count returns the number of occupied slots.
func (w *WaitingArea) Count() int {
	n := 0
	for _, id := range w.Slots {
		if id != NoEntity {
			n++
		}
	}
	return n
}

// Get returns the entity in slot i, or NoEntity.
func (w *WaitingArea) Get(i int) EntityID {
	if i < 0 || i >= len(w.Slots) {
		return NoEntity
	}
	return w.Slots[i]
}

// remove clears the slot holding id and shifts later slots left.
func (w *WaitingArea) remove(id EntityID) bool {
	for i, slot := range w.Slots {
		if slot != id {
			continue
		}
		copy(w.Slots[i:], w.Slots[i+1:])
		w.Slots[len(w.Slots)-1] = NoEntity
		return true
	}
	return false
}
