package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/frogpond/internal/games/frogs"
	"github.com/vovakirdan/frogpond/internal/games/frogs/engine"
	"github.com/vovakirdan/frogpond/internal/platform/tui"
	"github.com/vovakirdan/frogpond/internal/storage"
	"github.com/vovakirdan/frogpond/internal/telemetry"
)

var (
	flagShare     string
	flagEventsDir string
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing. Without a level the level picker is shown and you
return to it after each game.

Controls:
  Left/Right, h/l  - Select pool column or waiting slot
  Tab/Up/Down      - Switch between pool and waiting slots
  Space/Enter      - Deploy the selected frog
  X                - Let the autoplayer deploy once
  P                - Pause
  R                - Restart with the same seed
  S                - Show the share code
  Ctrl+S           - Save a screenshot
  Esc/B            - Back to the level picker
  Q/Ctrl+C         - Quit

Examples:
  frogpond play
  frogpond play 01-pond
  frogpond play 02-heart --seed 42 --difficulty hard
  frogpond play --share 'https://frogpond.example/play?share=...'
  frogpond play 03-mushroom --events ./trace`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagShare, "share", "", "Share code or share URL to play")
	playCmd.Flags().StringVar(&flagEventsDir, "events", "", "Write events.csv and runs.csv of the game to this directory")
}

func runPlay(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("play needs an interactive terminal")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rt := runtimeConfig(cmd, cfg)
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}

	tuiLog, closeLog := tuiLogger()
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open results database", "error", err)
		// Continue without storage - the game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	if len(args) == 0 && flagShare == "" {
		defs, err := loadLevels()
		if err != nil {
			return err
		}
		return tui.RunSession(tui.SessionConfig{
			Store:   store,
			Levels:  defs,
			Rules:   cfg.RuleOverrides(),
			Runtime: rt,
			Logger:  tuiLog,
		})
	}

	out, err := telemetry.NewOutputManager(flagEventsDir)
	if err != nil {
		return err
	}
	defer out.Close()

	opts := frogs.Options{
		OnEvents: func(s *engine.GameState, events []engine.Event) {
			if err := out.WriteEvents(telemetry.EventRecords(0, s, events)); err != nil {
				tuiLog.Warn("could not write events", "error", err)
			}
		},
	}

	var (
		session *frogs.Session
		title   string
	)
	if flagShare != "" {
		opts.MaxDeltaMs = rt.MaxDeltaMs
		// Shared games keep the rules they were encoded with
		session, err = frogs.FromShareCode(flagShare, opts)
		title = "Shared pond"
	} else {
		def, findErr := findLevel(args[0])
		if findErr != nil {
			return findErr
		}
		session, err = tui.NewLevelSession(def, cfg.RuleOverrides(), rt, opts)
		title = def.Name
	}
	if err != nil {
		return err
	}
	tuiLog.Info("game started", "level", session.LevelID(), "seed", session.Seed())

	final, err := tui.Run(session, rt, tui.PlayOptions{
		Title:  title,
		Store:  store,
		Logger: tuiLog,
	})
	if err != nil {
		return err
	}

	return writeRun(out, final.Session())
}

// writeRun appends the outcome of an interactive game to runs.csv.
func writeRun(out *telemetry.OutputManager, s *frogs.Session) error {
	if out == nil {
		return nil
	}
	o := s.Outcome()
	return out.WriteRun(telemetry.RunRecord{
		Level:          o.LevelID,
		Seed:           o.Seed,
		Status:         string(o.Status),
		ElapsedMs:      o.ElapsedMs,
		Deploys:        o.Deploys,
		Consumed:       o.TotalAlive - o.RemainingAlive,
		RemainingAlive: o.RemainingAlive,
		LostReason:     o.LostReason,
	})
}
