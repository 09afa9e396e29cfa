// frogpond is a terminal puzzle game: deploy colour-matched frogs around a
// pixel-art pond until every pixel is eaten.
//
// Usage:
//
//	frogpond play [level]            - Play a level, or pick one from the menu
//	frogpond play --share <code>     - Play a shared game
//	frogpond levels                  - List available levels
//	frogpond share encode <level>    - Print a share code
//	frogpond share decode <code>     - Inspect a share code
//	frogpond simulate <level>        - Run headless autoplay games
//	frogpond results [level]         - Show best times
//	frogpond serve                   - Start SSH server for remote play
//
// Global flags:
//
//	--seed <value>        - Fixed generation seed (default: random)
//	--db <path>           - Results database (default: ~/.frogpond/results.db)
//	--config <path>       - Config YAML
//	--difficulty <name>   - easy, normal or hard
//	--levels <dir>        - Extra level directory
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/frogpond/internal/config"
	"github.com/vovakirdan/frogpond/internal/core"
	"github.com/vovakirdan/frogpond/internal/games/frogs/levels"
)

var (
	// Global flags
	flagSeed       uint32
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLevelsDir  string
	flagLogLevel   string

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "frogpond",
	})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "frogpond",
	Short: "Frog Pond - clear pixel ponds with hungry frogs",
	Long: `Frog Pond is a terminal puzzle game. Frogs ride a conveyor around a
pixel-art pond and eat the first pixel of their colour in front of them.
Deploy them in the right order before the waiting slots fill up.

Available commands:
  play      - Play a level (menu without arguments)
  levels    - Show all available levels
  share     - Encode or decode share codes
  simulate  - Run headless autoplay games and print statistics
  results   - View best times
  serve     - Start SSH server for remote play

Examples:
  frogpond play
  frogpond play 02-heart --seed 42
  frogpond share encode 03-mushroom --seed 7
  frogpond simulate 01-pond --runs 500 --csv ./out
  frogpond serve --ssh :2222`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		lvl, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		logger.SetLevel(lvl)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().Uint32Var(&flagSeed, "seed", 0, "Generation seed (random if not set)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.frogpond/results.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory with extra level files")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig loads the config file and applies --difficulty on top.
func loadConfig() (config.FrogsConfig, error) {
	cfg, err := config.LoadFrogs(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		preset, ok := config.ParsePreset(flagDifficulty)
		if !ok {
			return cfg, fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", flagDifficulty)
		}
		cfg.Difficulty = preset
	}
	logger.Debug("config loaded", "difficulty", cfg.Difficulty, "tick_rate", cfg.Driver.TickRate)
	return cfg, nil
}

// runtimeConfig builds the UI runtime settings. The seed is fixed only when
// --seed was given.
func runtimeConfig(cmd *cobra.Command, cfg config.FrogsConfig) core.RuntimeConfig {
	rt := core.DefaultConfig()
	rt.TickRate = cfg.Driver.TickRate
	rt.MaxDeltaMs = cfg.Driver.MaxDeltaMs
	rt.Seed = flagSeed
	rt.FixedSeed = cmd.Flag("seed").Changed
	return rt
}

// loadLevels returns the built-in levels followed by those in --levels.
// A level in the directory replaces a built-in one with the same id.
func loadLevels() ([]levels.Definition, error) {
	defs, err := levels.Builtin().LoadAll()
	if err != nil {
		return nil, fmt.Errorf("loading built-in levels: %w", err)
	}
	if flagLevelsDir == "" {
		return defs, nil
	}

	extra, err := levels.NewLoader(flagLevelsDir).LoadAll()
	if err != nil {
		return nil, fmt.Errorf("loading levels from %s: %w", flagLevelsDir, err)
	}
	index := make(map[string]int, len(defs))
	for i, def := range defs {
		index[def.ID] = i
	}
	for _, def := range extra {
		if i, ok := index[def.ID]; ok {
			logger.Debug("level overrides built-in", "id", def.ID, "file", def.FilePath)
			defs[i] = def
			continue
		}
		index[def.ID] = len(defs)
		defs = append(defs, def)
	}
	return defs, nil
}

// findLevel looks up a level by id among loadLevels.
func findLevel(id string) (levels.Definition, error) {
	defs, err := loadLevels()
	if err != nil {
		return levels.Definition{}, err
	}
	for _, def := range defs {
		if def.ID == id {
			return def, nil
		}
	}
	return levels.Definition{}, fmt.Errorf("unknown level %q, run 'frogpond levels' to list them", id)
}

// tuiLogger returns a logger writing to ~/.frogpond/frogpond.log so the
// alternate screen stays clean. The returned func closes the file.
func tuiLogger() (*log.Logger, func()) {
	dir := config.HomeDir()
	if dir == "" {
		return discardLogger(), func() {}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Warn("could not create log directory", "error", err)
		return discardLogger(), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "frogpond.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		logger.Warn("could not open log file", "error", err)
		return discardLogger(), func() {}
	}

	l := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "frogpond",
		Level:           logger.GetLevel(),
	})
	return l, func() { f.Close() }
}

func discardLogger() *log.Logger {
	l := log.New(os.Stderr)
	l.SetLevel(log.FatalLevel)
	return l
}
