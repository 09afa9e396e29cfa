package telemetry

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary aggregates a batch of runs. Time statistics cover wins only.
type Summary struct {
	Runs        int
	Wins        int
	WinRate     float64
	MeanMs      float64
	StdDevMs    float64
	P50Ms       float64
	P90Ms       float64
	MinMs       float64
	MaxMs       float64
	MeanDeploys float64
	LossReasons map[string]int
}

// Summarize computes batch statistics.
func Summarize(runs []RunRecord) Summary {
	sum := Summary{Runs: len(runs), LossReasons: make(map[string]int)}
	if len(runs) == 0 {
		return sum
	}

	deploys := make([]float64, 0, len(runs))
	times := make([]float64, 0, len(runs))
	for _, r := range runs {
		deploys = append(deploys, float64(r.Deploys))
		if r.Won() {
			times = append(times, r.ElapsedMs)
			continue
		}
		reason := r.LostReason
		if reason == "" {
			reason = r.Status
		}
		sum.LossReasons[reason]++
	}

	sum.Wins = len(times)
	sum.WinRate = float64(sum.Wins) / float64(sum.Runs)
	sum.MeanDeploys = stat.Mean(deploys, nil)

	if len(times) == 0 {
		return sum
	}
	sort.Float64s(times)
	sum.MeanMs = stat.Mean(times, nil)
	if len(times) > 1 {
		sum.StdDevMs = stat.StdDev(times, nil)
	}
	sum.P50Ms = stat.Quantile(0.5, stat.Empirical, times, nil)
	sum.P90Ms = stat.Quantile(0.9, stat.Empirical, times, nil)
	sum.MinMs = floats.Min(times)
	sum.MaxMs = floats.Max(times)
	return sum
}

// String renders the summary as a short report.
func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Runs: %d | Wins: %d (%.1f%%) | Mean deploys: %.1f\n",
		s.Runs, s.Wins, s.WinRate*100, s.MeanDeploys)
	if s.Wins > 0 {
		fmt.Fprintf(&b, "Win time ms: mean %.0f sd %.0f | p50 %.0f p90 %.0f | min %.0f max %.0f\n",
			s.MeanMs, s.StdDevMs, s.P50Ms, s.P90Ms, s.MinMs, s.MaxMs)
	}

	reasons := make([]string, 0, len(s.LossReasons))
	for r := range s.LossReasons {
		reasons = append(reasons, r)
	}
	sort.Strings(reasons)
	for _, r := range reasons {
		fmt.Fprintf(&b, "Lost (%s): %d\n", r, s.LossReasons[r])
	}
	return b.String()
}
