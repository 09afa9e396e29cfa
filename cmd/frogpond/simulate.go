package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/frogpond/internal/games/frogs"
	"github.com/vovakirdan/frogpond/internal/games/frogs/engine"
	"github.com/vovakirdan/frogpond/internal/games/frogs/level"
	"github.com/vovakirdan/frogpond/internal/games/frogs/share"
	"github.com/vovakirdan/frogpond/internal/telemetry"
)

var (
	flagRuns     int
	flagCSVDir   string
	flagTrace    bool
	flagSimShare string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [level]",
	Short: "Run headless autoplay games",
	Long: `Play a level many times with the built-in autoplayer and print win
rate and time statistics. With --seed the runs use seed, seed+1, ...;
otherwise every run draws a fresh seed.

Examples:
  frogpond simulate 01-pond
  frogpond simulate 03-mushroom --runs 1000 --difficulty hard
  frogpond simulate 02-heart --seed 1 --runs 50 --csv ./out
  frogpond simulate --share <code> --trace`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagRuns, "runs", 100, "Number of games to play")
	simulateCmd.Flags().StringVar(&flagCSVDir, "csv", "", "Write events.csv and runs.csv to this directory")
	simulateCmd.Flags().BoolVar(&flagTrace, "trace", false, "Print the board before and after every run")
	simulateCmd.Flags().StringVar(&flagSimShare, "share", "", "Simulate a share code instead of a level")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var (
		l       *level.Level
		levelID string
	)
	fixedSeed := cmd.Flag("seed").Changed
	seed := flagSeed

	switch {
	case flagSimShare != "":
		snap, err := share.Decode(share.ExtractShareCode(flagSimShare))
		if err != nil {
			return err
		}
		if l, err = snap.Rehydrate(); err != nil {
			return err
		}
		levelID = "shared"
		if !fixedSeed {
			seed, fixedSeed = snap.Seed, true
		}
	case len(args) == 1:
		def, err := findLevel(args[0])
		if err != nil {
			return err
		}
		if l, err = def.Level.WithRules(cfg.RuleOverrides()); err != nil {
			return err
		}
		levelID = def.ID
	default:
		return fmt.Errorf("simulate needs a level id or --share")
	}

	out, err := telemetry.NewOutputManager(flagCSVDir)
	if err != nil {
		return err
	}
	defer out.Close()

	logger.Info("simulating", "level", levelID, "runs", flagRuns,
		"step_ms", cfg.Autoplay.StepMs, "difficulty", cfg.Difficulty)

	runs := make([]telemetry.RunRecord, 0, flagRuns)
	for i := 0; i < flagRuns; i++ {
		runSeed := frogs.RandomSeed()
		if fixedSeed {
			runSeed = seed + uint32(i)
		}

		state, err := level.NewGame(l, runSeed)
		if err != nil {
			return fmt.Errorf("run %d: %w", i, err)
		}
		if flagTrace {
			fmt.Printf("=== run %d seed %d ===\n%s\n", i, runSeed, engine.RenderASCII(state))
		}

		var writeErr error
		res := engine.RunAutoplay(state, engine.AutoplayOptions{
			StepMs:   cfg.Autoplay.StepMs,
			MaxSteps: cfg.Autoplay.MaxSteps,
			OnEvents: func(s *engine.GameState, events []engine.Event) {
				if err := out.WriteEvents(telemetry.EventRecords(i, s, events)); err != nil && writeErr == nil {
					writeErr = err
				}
			},
		})
		if writeErr != nil {
			return writeErr
		}

		rec := telemetry.NewRunRecord(i, levelID, runSeed, res)
		if err := out.WriteRun(rec); err != nil {
			return err
		}
		runs = append(runs, rec)

		if flagTrace {
			fmt.Printf("%s\n-> %s after %.0fms, %d deploys\n\n", engine.RenderASCII(state), res.Status, res.ElapsedMs, res.Deploys)
		}
		logger.Debug("run finished", "run", i, "seed", runSeed, "status", res.Status,
			"elapsed_ms", res.ElapsedMs, "deploys", res.Deploys, "reason", res.LostReason)
	}

	fmt.Print(telemetry.Summarize(runs).String())
	if dir := out.Dir(); dir != "" {
		fmt.Printf("CSV written to %s\n", dir)
	}
	return nil
}
