// Package telemetry exports game events and run outcomes as CSV and
// summarizes batches of headless runs.
package telemetry

import (
	"fmt"

	"github.com/vovakirdan/frogpond/internal/games/frogs/engine"
)

// EventRecord is one engine event as a CSV row.
type EventRecord struct {
	Run       int     `csv:"run"`
	Tick      uint64  `csv:"tick"`
	ElapsedMs float64 `csv:"elapsed_ms"`
	Kind      string  `csv:"kind"`
	Entity    string  `csv:"entity"`
	Detail    string  `csv:"detail"`
}

// RunRecord is the outcome of one game.
type RunRecord struct {
	Run            int     `csv:"run"`
	Level          string  `csv:"level"`
	Seed           uint32  `csv:"seed"`
	Status         string  `csv:"status"`
	ElapsedMs      float64 `csv:"elapsed_ms"`
	Steps          int     `csv:"steps"`
	Deploys        int     `csv:"deploys"`
	Consumed       int     `csv:"consumed"`
	RemainingAlive int     `csv:"remaining_alive"`
	LostReason     string  `csv:"lost_reason"`
}

// Won reports whether the run ended in a win.
func (r RunRecord) Won() bool {
	return r.Status == string(engine.StatusWon)
}

// NewRunRecord builds a run record from an autoplay result.
func NewRunRecord(run int, levelID string, seed uint32, res engine.AutoplayResult) RunRecord {
	return RunRecord{
		Run:            run,
		Level:          levelID,
		Seed:           seed,
		Status:         string(res.Status),
		ElapsedMs:      res.ElapsedMs,
		Steps:          res.Steps,
		Deploys:        res.Deploys,
		Consumed:       res.ConsumedByFrogs,
		RemainingAlive: res.RemainingAlive,
		LostReason:     res.LostReason,
	}
}

// EventRecords converts a batch of events emitted against s.
func EventRecords(run int, s *engine.GameState, events []engine.Event) []EventRecord {
	records := make([]EventRecord, 0, len(events))
	for _, ev := range events {
		rec := EventRecord{
			Run:       run,
			Tick:      s.Tick,
			ElapsedMs: s.ElapsedMs,
			Kind:      string(ev.Kind()),
		}
		rec.Entity, rec.Detail = describe(ev)
		records = append(records, rec)
	}
	return records
}

func describe(ev engine.Event) (entity, detail string) {
	switch e := ev.(type) {
	case engine.EntityMoving:
		return string(e.EntityID), fmt.Sprintf("%d->%d", e.From, e.To)
	case engine.ResourceConsumed:
		return string(e.EntityID), e.ResourceID
	case engine.EntityExhausted:
		return string(e.EntityID), ""
	case engine.EntityCompletedLoop:
		return string(e.EntityID), fmt.Sprintf("satisfied=%t", e.Satisfied)
	case engine.EntityToWaitingArea:
		return string(e.EntityID), fmt.Sprintf("slot=%d", e.Slot)
	case engine.GameLost:
		return string(e.EntityID), e.Reason
	case engine.EntityDeployed:
		return string(e.EntityID), fmt.Sprintf("%s[%d]", e.Source, e.SourceIndex)
	case engine.DeployBlocked:
		return "", e.Reason
	default:
		return "", ""
	}
}
