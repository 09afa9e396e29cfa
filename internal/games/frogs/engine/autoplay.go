package engine

// ExposedTypes returns the set of resource types a frog could eat right now:
// the first alive resource seen from any path segment.
func ExposedTypes(s *GameState) map[string]bool {
	exposed := make(map[string]bool)
	for _, seg := range s.Path.Segments {
		if r := s.Grid.Raycast(seg.Pos, seg.Facing); r != nil {
			exposed[r.Type] = true
		}
	}
	return exposed
}

// AutoDeploy implements a simple deploy policy:
//  1. A waiting frog whose colour is exposed (frees a slot)
//  2. A pool frog whose colour is exposed
//  3. Any pool frog
//  4. Any waiting frog
//
// It returns the applied events, or nil when no deploy is legal right now.
func AutoDeploy(s *GameState) []Event {
	if !s.Status.Running() || !s.Validator.CanDeployEntity(s).Valid || !s.EntryClear() {
		return nil
	}

	exposed := ExposedTypes(s)

	for i := range s.WaitingArea.Slots {
		if id := s.WaitingArea.Get(i); id != NoEntity && exposed[s.mustEntity(id).ResourceType] {
			return DeployFromWaitingArea(s, i)
		}
	}
	for i := range s.Pool.Columns {
		if id := s.Pool.Front(i); id != NoEntity && exposed[s.mustEntity(id).ResourceType] {
			return DeployFromPool(s, i)
		}
	}
	for i := range s.Pool.Columns {
		if s.Pool.Front(i) != NoEntity {
			return DeployFromPool(s, i)
		}
	}
	for i := range s.WaitingArea.Slots {
		if s.WaitingArea.Get(i) != NoEntity {
			return DeployFromWaitingArea(s, i)
		}
	}
	return nil
}

// AutoplayOptions configures RunAutoplay.
type AutoplayOptions struct {
	StepMs   float64 // Elapsed time passed to each Update
	MaxSteps int     // Safety limit on Update calls

	// OnEvents, if set, receives every non-empty batch of events.
	OnEvents func(s *GameState, events []Event)
}

// AutoplayResult summarizes a headless run.
type AutoplayResult struct {
	Steps           int
	Deploys         int
	Status          Status
	ElapsedMs       float64
	RemainingAlive  int
	LostReason      string
	ConsumedByFrogs int
}

// RunAutoplay deploys with AutoDeploy and updates with a fixed step until the
// game ends or MaxSteps is reached.
func RunAutoplay(s *GameState, opts AutoplayOptions) AutoplayResult {
	if opts.StepMs <= 0 {
		opts.StepMs = 16
	}
	if opts.MaxSteps <= 0 {
		opts.MaxSteps = 1_000_000
	}

	result := AutoplayResult{}
	report := func(events []Event) {
		if len(events) == 0 {
			return
		}
		for _, ev := range events {
			switch e := ev.(type) {
			case EntityDeployed:
				result.Deploys++
			case ResourceConsumed:
				result.ConsumedByFrogs++
			case GameLost:
				result.LostReason = e.Reason
			}
		}
		if opts.OnEvents != nil {
			opts.OnEvents(s, events)
		}
	}

	for result.Steps < opts.MaxSteps && s.Status.Running() {
		report(AutoDeploy(s))
		report(Update(s, opts.StepMs))
		result.Steps++
	}

	result.Status = s.Status
	result.ElapsedMs = s.ElapsedMs
	result.RemainingAlive = s.Grid.AliveCount()
	return result
}
