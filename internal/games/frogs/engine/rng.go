package engine

import (
	"errors"
	"fmt"
	"math"
)

// LCG parameters (Numerical Recipes).
const (
	lcgMultiplier uint32 = 1664525
	lcgIncrement  uint32 = 1013904223
	lcgModulus           = 1 << 32
)

var (
	// ErrEmptyChoice is returned when choosing from an empty slice.
	ErrEmptyChoice = errors.New("cannot choose from empty input")
	// ErrWeightMismatch is returned when options and weights differ in length.
	ErrWeightMismatch = errors.New("options and weights must have same length")
	// ErrNoWeight is returned when the total weight is not positive.
	ErrNoWeight = errors.New("total weight must be greater than zero")
)

// WeightedOption pairs a value with its selection weight.
type WeightedOption[T any] struct {
	Value  T       `json:"value" yaml:"value"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// RNG is a deterministic linear congruential generator.
// Two generators with the same seed produce identical streams
// for the same sequence of calls.
type RNG struct {
	state uint32
}

// NewRNG creates a generator seeded with seed.
func NewRNG(seed uint32) *RNG {
	return &RNG{state: seed}
}

// State returns the current internal state.
func (r *RNG) State() uint32 {
	return r.state
}

// Next advances the generator and returns a float64 in [0, 1).
func (r *RNG) Next() float64 {
	r.state = r.state*lcgMultiplier + lcgIncrement
	return float64(r.state) / lcgModulus
}

// NextInt returns an integer in [min, max). When min == max it returns min.
func (r *RNG) NextInt(min, max int) int {
	return int(math.Floor(r.Next()*float64(max-min))) + min
}

// NextIntStep returns min plus a multiple of step, inclusive of max
// when max-min is divisible by step. A non-positive step panics.
func (r *RNG) NextIntStep(min, max, step int) int {
	if step <= 0 {
		panic(fmt.Sprintf("engine: NextIntStep step must be positive, got %d", step))
	}
	span := int(math.Floor(float64(max-min) / float64(step)))
	return min + r.NextInt(0, span+1)*step
}

// Choice picks a uniformly random element of items.
func Choice[T any](r *RNG, items []T) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, ErrEmptyChoice
	}
	return items[r.NextInt(0, len(items))], nil
}

// WeightedChoice picks from options with probability proportional to weights.
// Weights need not sum to 1. The draw walks the weights subtracting each
// from r*total and returns the first option where the remainder drops to
// zero or below. If float rounding prevents that, the last option is returned.
func WeightedChoice[T any](r *RNG, options []T, weights []float64) (T, error) {
	var zero T
	if len(options) != len(weights) {
		return zero, ErrWeightMismatch
	}

	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 || len(options) == 0 {
		return zero, ErrNoWeight
	}

	remaining := r.Next() * total
	for i, w := range weights {
		remaining -= w
		if remaining <= 0 {
			return options[i], nil
		}
	}

	return options[len(options)-1], nil
}

// WeightedChoiceOf is WeightedChoice over value/weight pairs.
func WeightedChoiceOf[T any](r *RNG, options []WeightedOption[T]) (T, error) {
	values := make([]T, len(options))
	weights := make([]float64, len(options))
	for i, o := range options {
		values[i] = o.Value
		weights[i] = o.Weight
	}
	return WeightedChoice(r, values, weights)
}

// Shuffle returns a Fisher-Yates shuffled copy of items.
func Shuffle[T any](r *RNG, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := r.NextInt(0, i+1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
