package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/frogpond/internal/games/frogs"
	"github.com/vovakirdan/frogpond/internal/games/frogs/engine"
	"github.com/vovakirdan/frogpond/internal/games/frogs/level"
	"github.com/vovakirdan/frogpond/internal/games/frogs/share"
)

var flagShareBase string

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Encode or decode share codes",
	Long: `A share code packs a level, its rules and a seed, so another player
gets exactly the same game.

Examples:
  frogpond share encode 02-heart --seed 42
  frogpond share encode 02-heart --url https://frogpond.example/play
  frogpond share decode <code-or-url>`,
}

var shareEncodeCmd = &cobra.Command{
	Use:   "encode <level>",
	Short: "Print the share code of a level and seed",
	Args:  cobra.ExactArgs(1),
	RunE:  runShareEncode,
}

var shareDecodeCmd = &cobra.Command{
	Use:   "decode <code>",
	Short: "Show the level and opening position of a share code",
	Args:  cobra.ExactArgs(1),
	RunE:  runShareDecode,
}

func init() {
	shareEncodeCmd.Flags().StringVar(&flagShareBase, "url", "", "Print a share URL with this base instead of a bare code")

	shareCmd.AddCommand(shareEncodeCmd)
	shareCmd.AddCommand(shareDecodeCmd)
}

func runShareEncode(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	def, err := findLevel(args[0])
	if err != nil {
		return err
	}
	l, err := def.Level.WithRules(cfg.RuleOverrides())
	if err != nil {
		return err
	}

	seed := flagSeed
	if !cmd.Flag("seed").Changed {
		seed = frogs.RandomSeed()
	}

	code, err := share.EncodeLevel(l, seed)
	if err != nil {
		return err
	}
	if flagShareBase != "" {
		if code, err = share.ShareURL(flagShareBase, code); err != nil {
			return err
		}
	}

	logger.Debug("share code encoded", "level", def.ID, "seed", seed, "length", len(code))
	fmt.Println(code)
	return nil
}

func runShareDecode(_ *cobra.Command, args []string) error {
	snap, err := share.Decode(share.ExtractShareCode(args[0]))
	if err != nil {
		return err
	}
	l, err := snap.Rehydrate()
	if err != nil {
		return err
	}
	state, err := level.NewGame(l, snap.Seed)
	if err != nil {
		return err
	}

	r := l.Rules
	fmt.Printf("Version:   %d\n", snap.Version)
	fmt.Printf("Seed:      %d\n", snap.Seed)
	fmt.Printf("Size:      %dx%d (%d colours, %d pixels)\n", l.Width, l.Height, l.Palette.Len(), l.AliveCount())
	fmt.Printf("Conveyor:  capacity %d, %d ticks per pixel\n", r.Conveyor.Capacity, r.Conveyor.TicksPerPixel)
	fmt.Printf("Slots:     %d\n", r.ConveyorSlots.SlotCount)
	fmt.Printf("Pool:      %d columns, %d visible\n", r.Feeder.ColumnCount, r.Feeder.MaxVisibleRows)
	fmt.Printf("Timing:    %dms per tick, cooldown %d ticks, speedup x%g\n",
		r.Timing.MsPerTick, r.Timing.DeploymentCooldownTicks, r.Timing.VictoryModeSpeedup)
	fmt.Printf("Hash:      %016x\n", state.Hash())
	fmt.Println()
	fmt.Print(engine.RenderASCII(state))
	return nil
}
