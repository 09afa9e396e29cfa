package engine

import (
	"errors"
	"fmt"
	"hash/fnv"
	"sort"
)

// maxDebugLog bounds the number of lines kept in Debug.Log.
const maxDebugLog = 200

// Debug holds diagnostic data that does not affect the simulation.
type Debug struct {
	Seed         uint32
	LastDeployMs float64 // Valid only when HasDeployed
	HasDeployed  bool
	Log          []string
}

// GameState is the single mutable aggregate of a running game.
// It is owned by one driver; engine functions mutate it in place
// and keep no reference to it after returning.
type GameState struct {
	Constraints Constraints
	Validator   *Validator

	Grid        Grid
	Path        Path
	WaitingArea WaitingArea
	Pool        Pool
	Entities    map[EntityID]*Entity

	Tick      uint64  // Number of updates processed
	ElapsedMs float64 // Simulation time, including victory-mode speedup
	Status    Status

	Debug Debug
}

// StateConfig describes the initial state. Entities are dealt into
// PoolColumns round-robin in the order given.
type StateConfig struct {
	Constraints Constraints
	Entities    []Entity
	Resources   [][]Resource
	Width       int
	Height      int
	PoolColumns int
	Seed        uint32
}

// NewGameState assembles an initial state from cfg.
func NewGameState(cfg StateConfig) (*GameState, error) {
	if cfg.Width < 1 || cfg.Height < 1 {
		return nil, fmt.Errorf("invalid grid size %dx%d", cfg.Width, cfg.Height)
	}
	if len(cfg.Resources) != cfg.Height {
		return nil, fmt.Errorf("resource rows %d != height %d", len(cfg.Resources), cfg.Height)
	}
	for r, row := range cfg.Resources {
		if len(row) != cfg.Width {
			return nil, fmt.Errorf("resource row %d has %d cells, want %d", r, len(row), cfg.Width)
		}
	}
	if cfg.PoolColumns < 1 {
		return nil, errors.New("pool needs at least one column")
	}
	if cfg.Constraints.PathCapacity < 1 {
		return nil, errors.New("path capacity must be positive")
	}
	if cfg.Constraints.WaitingAreaCapacity < 0 {
		return nil, errors.New("waiting area capacity must not be negative")
	}

	entities := make(map[EntityID]*Entity, len(cfg.Entities))
	columns := make([]Column, cfg.PoolColumns)
	for i := range columns {
		columns[i] = Column{Entities: make([]EntityID, 0), MaxVisible: cfg.Constraints.PoolVisibleCount}
	}
	for i, e := range cfg.Entities {
		if _, dup := entities[e.ID]; dup {
			return nil, fmt.Errorf("duplicate entity id %q", e.ID)
		}
		if e.Capacity < 1 {
			return nil, fmt.Errorf("entity %q has capacity %d", e.ID, e.Capacity)
		}
		ent := e
		ent.Position = Position{Index: -1}
		ent.State = StateWaiting
		entities[e.ID] = &ent
		col := i % cfg.PoolColumns
		columns[col].Entities = append(columns[col].Entities, e.ID)
	}

	resources := make([][]Resource, cfg.Height)
	for r, row := range cfg.Resources {
		resources[r] = append([]Resource(nil), row...)
	}

	return &GameState{
		Constraints: cfg.Constraints,
		Validator:   NewValidator(cfg.Constraints),
		Grid: Grid{
			Width:     cfg.Width,
			Height:    cfg.Height,
			Resources: resources,
		},
		Path: Path{
			Entities: make([]EntityID, 0, cfg.Constraints.PathCapacity),
			Capacity: cfg.Constraints.PathCapacity,
			Segments: GeneratePath(cfg.Width, cfg.Height),
		},
		WaitingArea: WaitingArea{
			Slots:    make([]EntityID, cfg.Constraints.WaitingAreaCapacity),
			Capacity: cfg.Constraints.WaitingAreaCapacity,
		},
		Pool:     Pool{Columns: columns},
		Entities: entities,
		Status:   StatusPlaying,
		Debug:    Debug{Seed: cfg.Seed, Log: make([]string, 0)},
	}, nil
}

// Entity returns the registered entity with the given id, or nil.
func (s *GameState) Entity(id EntityID) *Entity {
	return s.Entities[id]
}

// mustEntity returns the entity or panics: an unknown id in a container or
// event means the caller broke the registry invariant.
func (s *GameState) mustEntity(id EntityID) *Entity {
	e, ok := s.Entities[id]
	if !ok {
		panic(fmt.Sprintf("engine: unknown entity %q", id))
	}
	return e
}

// RemainingEntities counts frogs in the pool, on the path and waiting.
func (s *GameState) RemainingEntities() int {
	return s.Pool.Total() + len(s.Path.Entities) + s.WaitingArea.Count()
}

// EntryClear reports whether every frog on the path has moved at least
// EntryClearance segments past the entry.
func (s *GameState) EntryClear() bool {
	for _, id := range s.Path.Entities {
		if float64(s.mustEntity(id).Position.Index) < s.Constraints.EntryClearance {
			return false
		}
	}
	return true
}

// logf appends a line to the bounded debug log.
func (s *GameState) logf(format string, args ...any) {
	line := fmt.Sprintf("[%d %.0fms] ", s.Tick, s.ElapsedMs) + fmt.Sprintf(format, args...)
	s.Debug.Log = append(s.Debug.Log, line)
	if over := len(s.Debug.Log) - maxDebugLog; over > 0 {
		s.Debug.Log = append(s.Debug.Log[:0], s.Debug.Log[over:]...)
	}
}

// Clone returns a deep copy of the state.
func (s *GameState) Clone() *GameState {
	entities := make(map[EntityID]*Entity, len(s.Entities))
	for id, e := range s.Entities {
		clone := *e
		entities[id] = &clone
	}

	resources := make([][]Resource, len(s.Grid.Resources))
	for r, row := range s.Grid.Resources {
		resources[r] = append([]Resource(nil), row...)
	}

	columns := make([]Column, len(s.Pool.Columns))
	for i, c := range s.Pool.Columns {
		columns[i] = Column{
			Entities:   append([]EntityID(nil), c.Entities...),
			MaxVisible: c.MaxVisible,
		}
	}

	clone := *s
	clone.Validator = NewValidator(s.Constraints)
	clone.Grid.Resources = resources
	clone.Path.Entities = append(make([]EntityID, 0, s.Path.Capacity), s.Path.Entities...)
	clone.WaitingArea.Slots = append([]EntityID(nil), s.WaitingArea.Slots...)
	clone.Pool = Pool{Columns: columns}
	clone.Entities = entities
	clone.Debug.Log = append([]string(nil), s.Debug.Log...)
	return &clone
}

// Hash returns a hash of the simulation-relevant state. Two states with the
// same hash are, for all practical purposes, identical games.
func (s *GameState) Hash() uint64 {
	h := fnv.New64a()

	fmt.Fprintf(h, "S:%s;T:%d;E:%.3f;", s.Status, s.Tick, s.ElapsedMs)

	fmt.Fprintf(h, "G:")
	for _, row := range s.Grid.Resources {
		for _, r := range row {
			fmt.Fprintf(h, "%s:%v,", r.Type, r.Alive)
		}
	}

	fmt.Fprintf(h, ";P:")
	for ci, c := range s.Pool.Columns {
		fmt.Fprintf(h, "C%d:", ci)
		for _, id := range c.Entities {
			fmt.Fprintf(h, "%s,", id)
		}
	}

	fmt.Fprintf(h, ";R:")
	for _, id := range s.Path.Entities {
		e := s.mustEntity(id)
		fmt.Fprintf(h, "%s@%d:%.3f,", id, e.Position.Index, e.Position.TimeAtPosition)
	}

	fmt.Fprintf(h, ";W:")
	for i, id := range s.WaitingArea.Slots {
		if id != NoEntity {
			fmt.Fprintf(h, "%d:%s,", i, id)
		}
	}

	ids := make([]string, 0, len(s.Entities))
	for id := range s.Entities {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)
	fmt.Fprintf(h, ";X:")
	for _, id := range ids {
		e := s.Entities[EntityID(id)]
		fmt.Fprintf(h, "%s:%s:%d/%d:%s,", id, e.ResourceType, e.Consumed, e.Capacity, e.State)
	}

	return h.Sum64()
}
