package engine

// Constraints are the fixed rule parameters of one game, in milliseconds.
type Constraints struct {
	PathCapacity         int     // Max frogs on the path at once
	WaitingAreaCapacity  int     // Number of waiting-area slots
	MsPerSegment         float64 // Base time to traverse one segment
	DeploymentCooldownMs float64 // Min time between deploys
	PoolVisibleCount     int     // Frogs shown per pool column
	VictoryModeSpeedup   float64 // Time multiplier once victory mode starts
	EntryClearance       float64 // Min path index every frog must pass before the next deploy
}

// Rule violation reasons. They are shown to the player verbatim.
const (
	ReasonPathAtCapacity   = "Path at capacity"
	ReasonCooldown         = "Deployment cooldown active"
	ReasonNoEntities       = "No entities available"
	ReasonVictoryNoWait    = "Victory mode active - entities do not wait"
	ReasonAlreadySatisfied = "Entity already satisfied"
	ReasonWaitingAreaFull  = "Waiting area full - game over"
	ReasonNoWaitingSlot    = "No waiting area slot available"
	ReasonNotPlaying       = "Not in playing state"
	ReasonTooManyRemaining = "Too many entities remaining"
)

// Result is the outcome of a rule check.
type Result struct {
	Valid  bool
	Reason string
}

func ok() Result {
	return Result{Valid: true}
}

func invalid(reason string) Result {
	return Result{Valid: false, Reason: reason}
}

// ConsumeIntent is the lookahead outcome for a frog arriving at a segment.
type ConsumeIntent struct {
	WillConsume bool
	WillExhaust bool   // Consuming meets the frog's capacity
	Blocked     bool   // An alive resource stops the ray without being eaten
	ResourceID  string // First alive resource on the ray, if any
	Target      GridPos
}

// Validator answers rule questions against a state. It holds no state of its own
// beyond the constraints it was built with, and never panics on rule violations.
type Validator struct {
	c Constraints
}

// NewValidator returns a validator bound to c.
func NewValidator(c Constraints) *Validator {
	return &Validator{c: c}
}

// Constraints returns the constraints the validator enforces.
func (v *Validator) Constraints() Constraints {
	return v.c
}

// CanDeployEntity checks path capacity, the deploy cooldown and availability.
// The cooldown has elapsed once exactly DeploymentCooldownMs have passed.
func (v *Validator) CanDeployEntity(s *GameState) Result {
	if len(s.Path.Entities) >= v.c.PathCapacity {
		return invalid(ReasonPathAtCapacity)
	}
	if s.Debug.HasDeployed && s.ElapsedMs-s.Debug.LastDeployMs < v.c.DeploymentCooldownMs {
		return invalid(ReasonCooldown)
	}
	if s.Pool.IsEmpty() && s.WaitingArea.Count() == 0 {
		return invalid(ReasonNoEntities)
	}
	return ok()
}

// WillEntityConsume casts a ray from pos along facing. The first alive resource
// blocks the ray; it is eaten only if its type matches and e is still hungry.
func (v *Validator) WillEntityConsume(e *Entity, pos GridPos, g *Grid, facing Facing) ConsumeIntent {
	target := g.Raycast(pos, facing)
	if target == nil {
		return ConsumeIntent{}
	}

	intent := ConsumeIntent{ResourceID: target.ID, Target: target.Pos}
	if target.Type != e.ResourceType || e.Satisfied() {
		intent.Blocked = true
		return intent
	}

	intent.WillConsume = true
	intent.WillExhaust = e.Consumed+1 >= e.Capacity
	return intent
}

// ShouldEntityWait reports whether a frog finishing its loop goes to the waiting area.
func (v *Validator) ShouldEntityWait(s *GameState, e *Entity) Result {
	if s.Status == StatusVictoryMode {
		return invalid(ReasonVictoryNoWait)
	}
	if e.Satisfied() {
		return invalid(ReasonAlreadySatisfied)
	}
	return ok()
}

// CanAcceptWaitingEntity reports whether the waiting area has a free slot.
func (v *Validator) CanAcceptWaitingEntity(s *GameState) Result {
	if s.WaitingArea.Count() >= v.c.WaitingAreaCapacity {
		return invalid(ReasonWaitingAreaFull)
	}
	return ok()
}

// CanEnterVictoryMode reports whether every remaining frog fits on the path.
// Remaining per-colour resource feasibility is not considered.
func (v *Validator) CanEnterVictoryMode(s *GameState) Result {
	if s.Status != StatusPlaying {
		return invalid(ReasonNotPlaying)
	}
	if s.RemainingEntities() > v.c.PathCapacity {
		return invalid(ReasonTooManyRemaining)
	}
	return ok()
}

// IsGameWon reports whether the pool, path and waiting area are all empty.
func (v *Validator) IsGameWon(s *GameState) bool {
	return s.RemainingEntities() == 0
}

// TimeScale returns the multiplier applied to elapsed time.
func (v *Validator) TimeScale(s *GameState) float64 {
	if s.Status == StatusVictoryMode && v.c.VictoryModeSpeedup > 0 {
		return v.c.VictoryModeSpeedup
	}
	return 1
}

// EffectiveMsPerSegment returns the wall-clock duration of one segment.
func (v *Validator) EffectiveMsPerSegment(s *GameState) float64 {
	return v.c.MsPerSegment / v.TimeScale(s)
}
