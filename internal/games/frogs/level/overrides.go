package level

// Overrides replaces selected rule values. Nil fields keep the current value.
// It is the shape used by level files and the user config.
type Overrides struct {
	ConveyorCapacity        *int     `yaml:"conveyor_capacity,omitempty"`
	TicksPerPixel           *int     `yaml:"ticks_per_pixel,omitempty"`
	SlotCount               *int     `yaml:"slot_count,omitempty"`
	ColumnCount             *int     `yaml:"column_count,omitempty"`
	MaxVisibleRows          *int     `yaml:"max_visible_rows,omitempty"`
	MaxInitialShots         *int     `yaml:"max_initial_shots,omitempty"`
	MsPerTick               *int     `yaml:"ms_per_tick,omitempty"`
	DeploymentCooldownTicks *int     `yaml:"deployment_cooldown_ticks,omitempty"`
	VictoryModeSpeedup      *float64 `yaml:"victory_mode_speedup,omitempty"`
}

// Apply returns r with the set fields replaced.
func (o Overrides) Apply(r Rules) Rules {
	r = r.Clone()
	setInt(&r.Conveyor.Capacity, o.ConveyorCapacity)
	setInt(&r.Conveyor.TicksPerPixel, o.TicksPerPixel)
	setInt(&r.ConveyorSlots.SlotCount, o.SlotCount)
	setInt(&r.Feeder.ColumnCount, o.ColumnCount)
	setInt(&r.Feeder.MaxVisibleRows, o.MaxVisibleRows)
	setInt(&r.CannonGeneration.MaxInitialShots, o.MaxInitialShots)
	setInt(&r.Timing.MsPerTick, o.MsPerTick)
	setInt(&r.Timing.DeploymentCooldownTicks, o.DeploymentCooldownTicks)
	if o.VictoryModeSpeedup != nil {
		r.Timing.VictoryModeSpeedup = *o.VictoryModeSpeedup
	}
	return r
}

// Merge returns o with every field set in other taking precedence.
func (o Overrides) Merge(other Overrides) Overrides {
	pick := func(a, b *int) *int {
		if b != nil {
			return b
		}
		return a
	}
	out := Overrides{
		ConveyorCapacity:        pick(o.ConveyorCapacity, other.ConveyorCapacity),
		TicksPerPixel:           pick(o.TicksPerPixel, other.TicksPerPixel),
		SlotCount:               pick(o.SlotCount, other.SlotCount),
		ColumnCount:             pick(o.ColumnCount, other.ColumnCount),
		MaxVisibleRows:          pick(o.MaxVisibleRows, other.MaxVisibleRows),
		MaxInitialShots:         pick(o.MaxInitialShots, other.MaxInitialShots),
		MsPerTick:               pick(o.MsPerTick, other.MsPerTick),
		DeploymentCooldownTicks: pick(o.DeploymentCooldownTicks, other.DeploymentCooldownTicks),
		VictoryModeSpeedup:      o.VictoryModeSpeedup,
	}
	if other.VictoryModeSpeedup != nil {
		out.VictoryModeSpeedup = other.VictoryModeSpeedup
	}
	return out
}

// WithRules returns a copy of l with the overrides applied to its rules.
func (l *Level) WithRules(o Overrides) (*Level, error) {
	return NewWithRules(l.Grid(), l.PixelsPerSize, l.Palette, o.Apply(l.Rules))
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
