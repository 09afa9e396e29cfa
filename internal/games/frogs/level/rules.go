package level

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/frogpond/internal/games/frogs/engine"
)

// Layout constants the default timing is derived from.
const (
	SpeedFactor = 288 // msPerTick = round(SpeedFactor / width)
	FrogSize    = 56  // Frog sprite size in design units
	GridSize    = 198 // Grid area size in design units
)

// CannonGeneration controls frog hunger generation.
type CannonGeneration struct {
	MaxInitialShots int                          `json:"maxInitialShots,omitempty"`
	ShotWeights     []engine.WeightedOption[int] `json:"shotWeights"`
}

// Conveyor is the path.
type Conveyor struct {
	Capacity      int `json:"capacity"`
	TicksPerPixel int `json:"ticksPerPixel"`
}

// ConveyorSlots is the waiting area.
type ConveyorSlots struct {
	SlotCount int `json:"slotCount"`
}

// Feeder is the pool.
type Feeder struct {
	ColumnCount    int `json:"columnCount"`
	MaxVisibleRows int `json:"maxVisibleRows"`
}

// Timing holds the level clock. Ticks are a unit of the rules only;
// the engine runs on milliseconds.
type Timing struct {
	MsPerTick               int     `json:"msPerTick"`
	DeploymentCooldownTicks int     `json:"deploymentCooldownTicks"`
	VictoryModeSpeedup      float64 `json:"victoryModeSpeedup"`
}

// Rules are the tunable parameters of a level. They travel inside share codes.
type Rules struct {
	CannonGeneration CannonGeneration `json:"cannonGeneration"`
	Conveyor         Conveyor         `json:"conveyor"`
	ConveyorSlots    ConveyorSlots    `json:"conveyorSlots"`
	Feeder           Feeder           `json:"feeder"`
	Timing           Timing           `json:"timing"`
}

// DefaultRules derives the rules for a grid and palette.
func DefaultRules(g Grid, p Palette) Rules {
	cellsToWait := math.Ceil(float64(FrogSize*g.Width) / GridSize)

	return Rules{
		CannonGeneration: CannonGeneration{
			ShotWeights: CalculateShotWeights(g.Width, g.Height, p.Len()),
		},
		Conveyor:      Conveyor{Capacity: 5, TicksPerPixel: 6},
		ConveyorSlots: ConveyorSlots{SlotCount: 5},
		Feeder:        Feeder{ColumnCount: 3, MaxVisibleRows: 3},
		Timing: Timing{
			MsPerTick:               int(roundHalfUp(SpeedFactor / float64(g.Width))),
			DeploymentCooldownTicks: int(math.Ceil(cellsToWait/2) * 2),
			VictoryModeSpeedup:      3,
		},
	}
}

// Validate rejects rules the engine cannot run.
func (r Rules) Validate() error {
	switch {
	case r.Conveyor.Capacity < 1:
		return errors.New("conveyor capacity must be positive")
	case r.Conveyor.TicksPerPixel < 1:
		return errors.New("ticks per pixel must be positive")
	case r.ConveyorSlots.SlotCount < 0:
		return errors.New("slot count must not be negative")
	case r.Feeder.ColumnCount < 1:
		return errors.New("feeder needs at least one column")
	case r.Timing.MsPerTick < 1:
		return errors.New("ms per tick must be positive")
	case r.Timing.DeploymentCooldownTicks < 0:
		return errors.New("deployment cooldown must not be negative")
	case r.Timing.VictoryModeSpeedup <= 0:
		return errors.New("victory mode speedup must be positive")
	}

	total := 0.0
	for _, o := range r.CannonGeneration.ShotWeights {
		if o.Weight < 0 {
			return fmt.Errorf("negative shot weight %v", o.Weight)
		}
		total += o.Weight
	}
	if total <= 0 {
		return errors.New("shot weights must have a positive total")
	}
	return nil
}

// Constraints converts the rules into the engine's millisecond constraints
// for a grid of the given width.
func (r Rules) Constraints(width int) engine.Constraints {
	msPerTick := float64(r.Timing.MsPerTick)
	return engine.Constraints{
		PathCapacity:         r.Conveyor.Capacity,
		WaitingAreaCapacity:  r.ConveyorSlots.SlotCount,
		MsPerSegment:         msPerTick * float64(r.Conveyor.TicksPerPixel),
		DeploymentCooldownMs: msPerTick * float64(r.Timing.DeploymentCooldownTicks),
		PoolVisibleCount:     r.Feeder.MaxVisibleRows,
		VictoryModeSpeedup:   r.Timing.VictoryModeSpeedup,
		EntryClearance:       float64(width) / 4,
	}
}

// Clone returns a deep copy.
func (r Rules) Clone() Rules {
	r.CannonGeneration.ShotWeights = append([]engine.WeightedOption[int](nil), r.CannonGeneration.ShotWeights...)
	return r
}

// CalculateShotWeights derives the hunger distribution for a grid. Bounds
// scale with the average pixels per colour against a baseline of 50; five
// values spread around the midpoint are weighted 5..1 so smaller hungers
// are likelier. Values may round to 0 on tiny grids.
func CalculateShotWeights(width, height, colorCount int) []engine.WeightedOption[int] {
	if colorCount < 1 {
		colorCount = 1
	}

	totalPixels := float64(width * height)
	minShots := float64(width) / 4
	maxShots := RoundToStep(float64(width), 5)

	avgPerColor := totalPixels / float64(colorCount)
	scale := avgPerColor / 50

	lo := clamp(10*scale, 4, minShots)
	hi := clamp(50*scale, 20, maxShots)
	mid := (lo + hi) / 2

	factors := []float64{0.75, 0.9, 1, 1.1, 1.25}
	weights := make([]engine.WeightedOption[int], len(factors))
	for i, f := range factors {
		weights[i] = engine.WeightedOption[int]{
			Value:  int(RoundToStep(mid*f, 5)),
			Weight: float64(5 - i),
		}
	}
	return weights
}

// RoundToStep rounds value to the nearest multiple of step, halves up.
// A non-positive step returns value unchanged.
func RoundToStep(value, step float64) float64 {
	if step <= 0 {
		return value
	}
	return roundHalfUp(value/step) * step
}

// roundHalfUp rounds half up, towards positive infinity.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

func clamp(x, lo, hi float64) float64 {
	return math.Min(math.Max(x, lo), hi)
}
