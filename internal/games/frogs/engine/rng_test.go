package engine_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/frogpond/internal/games/frogs/engine"
)

func TestRNGDeterminism(t *testing.T) {
	a := engine.NewRNG(12345)
	b := engine.NewRNG(12345)

	for i := 0; i < 1000; i++ {
		if x, y := a.Next(), b.Next(); x != y {
			t.Fatalf("draw %d differs: %v vs %v", i, x, y)
		}
	}
	if a.State() != b.State() {
		t.Errorf("states differ after identical draws")
	}
}

func TestRNGFirstDraw(t *testing.T) {
	// state = 0*1664525 + 1013904223
	r := engine.NewRNG(0)
	got := r.Next()
	want := 1013904223.0 / 4294967296.0
	if got != want {
		t.Errorf("first draw = %v, want %v", got, want)
	}
	if r.State() != 1013904223 {
		t.Errorf("state = %d, want 1013904223", r.State())
	}

	// Wraps modulo 2^32
	r = engine.NewRNG(1)
	r.Next()
	if r.State() != 1664525+1013904223 {
		t.Errorf("state = %d, want %d", r.State(), 1664525+1013904223)
	}
}

func TestRNGBounds(t *testing.T) {
	r := engine.NewRNG(99)
	for i := 0; i < 10000; i++ {
		if x := r.Next(); x < 0 || x >= 1 {
			t.Fatalf("Next() = %v out of [0,1)", x)
		}
		if n := r.NextInt(3, 8); n < 3 || n >= 8 {
			t.Fatalf("NextInt(3,8) = %d out of range", n)
		}
		if n := r.NextIntStep(10, 30, 5); n < 10 || n > 30 || n%5 != 0 {
			t.Fatalf("NextIntStep(10,30,5) = %d", n)
		}
	}
	if n := r.NextInt(4, 4); n != 4 {
		t.Errorf("NextInt(4,4) = %d, want 4", n)
	}
}

func TestWeightedChoiceBias(t *testing.T) {
	r := engine.NewRNG(7)
	counts := map[string]int{}
	for i := 0; i < 10000; i++ {
		v, err := engine.WeightedChoice(r, []string{"light", "heavy"}, []float64{1, 9})
		if err != nil {
			t.Fatal(err)
		}
		counts[v]++
	}
	if counts["heavy"] <= 5*counts["light"] {
		t.Errorf("heavy option not favoured: %v", counts)
	}
}

func TestWeightedChoiceZeroWeightNeverPicked(t *testing.T) {
	r := engine.NewRNG(3)
	for i := 0; i < 1000; i++ {
		v, err := engine.WeightedChoiceOf(r, []engine.WeightedOption[int]{{Value: 1, Weight: 0}, {Value: 2, Weight: 1}})
		if err != nil {
			t.Fatal(err)
		}
		if v != 2 {
			t.Fatalf("picked zero-weight option")
		}
	}
}

func TestChoiceErrors(t *testing.T) {
	r := engine.NewRNG(1)

	if _, err := engine.Choice[int](r, nil); !errors.Is(err, engine.ErrEmptyChoice) {
		t.Errorf("Choice(nil) error = %v, want ErrEmptyChoice", err)
	}
	if _, err := engine.WeightedChoice(r, []int{1, 2}, []float64{1}); !errors.Is(err, engine.ErrWeightMismatch) {
		t.Errorf("mismatch error = %v, want ErrWeightMismatch", err)
	}
	if _, err := engine.WeightedChoice(r, []int{1}, []float64{0}); !errors.Is(err, engine.ErrNoWeight) {
		t.Errorf("zero weight error = %v, want ErrNoWeight", err)
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}
	out := engine.Shuffle(engine.NewRNG(42), items)

	if len(out) != len(items) {
		t.Fatalf("len = %d, want %d", len(out), len(items))
	}
	seen := map[int]bool{}
	for _, v := range out {
		seen[v] = true
	}
	if len(seen) != len(items) {
		t.Errorf("shuffle lost elements: %v", out)
	}
	// Input untouched
	for i, v := range items {
		if v != i+1 {
			t.Fatalf("input modified: %v", items)
		}
	}

	again := engine.Shuffle(engine.NewRNG(42), items)
	for i := range out {
		if out[i] != again[i] {
			t.Fatalf("same seed gave different shuffles: %v vs %v", out, again)
		}
	}
}

func TestNextIntStepRejectsNonPositiveStep(t *testing.T) {
	for _, step := range []int{0, -5} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("NextIntStep(0, 10, %d) did not panic", step)
				}
			}()
			engine.NewRNG(1).NextIntStep(0, 10, step)
		}()
	}
}
