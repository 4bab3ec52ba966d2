package main

import (
	"flag"
	"io"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/glowfield/config"
	"github.com/pthm-cable/glowfield/game"
	"github.com/pthm-cable/glowfield/particles"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run parses args, runs the preview and returns the process exit code.
func run(args []string, stdout io.Writer) int {
	// CLI flags
	fs := flag.NewFlagSet("glowfield", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to config.yaml (empty = use defaults)")
	density := fs.String("density", "", "Particle density: low, medium or high (empty = use config)")
	speed := fs.String("speed", "", "Animation speed: slow, medium or fast (empty = use config)")
	width := fs.Int("width", 0, "Viewport width in px (0 = window width, or the config default when headless)")
	reducedMotion := fs.Bool("reduced-motion", false, "Simulate the reduced-motion preference")
	seed := fs.Int64("seed", 0, "Field seed (0 = use config)")
	headless := fs.Bool("headless", false, "Generate one field, record it and exit")
	outputDir := fs.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	snapshotDir := fs.String("snapshot-dir", "", "Directory for snapshot files")
	themeFile := fs.String("theme-file", "", "Theme preference file (empty = use config)")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}
	cfg := config.Cfg()

	if err := applyOverrides(cfg, *density, *speed); err != nil {
		slog.Error("invalid flag", "error", err)
		return 2
	}

	fieldSeed := *seed
	if fieldSeed == 0 {
		fieldSeed = cfg.Field.Seed
	}

	opts := game.Options{
		Seed:          fieldSeed,
		Width:         *width,
		ReducedMotion: *reducedMotion,
		SnapshotDir:   *snapshotDir,
		OutputDir:     *outputDir,
		ThemeFile:     *themeFile,
		Headless:      *headless,
		Logger:        logger,
	}

	if *headless {
		g, err := game.NewGame(cfg, opts)
		if err != nil {
			slog.Error("failed to start", "error", err)
			return 1
		}
		defer g.Unload()

		stats, err := g.RunHeadless()
		if err != nil {
			slog.Error("headless run failed", "error", err)
			return 1
		}
		slog.Info("headless run complete", "seed", fieldSeed, "stats", stats)
		return 0
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGame(cfg, opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		return 1
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update(rl.GetFrameTime())
		g.Draw()
	}
	return 0
}

// applyOverrides replaces the configured density and speed with flag values.
func applyOverrides(cfg *config.Config, density, speed string) error {
	if density != "" {
		tier, err := particles.ParseTier(density)
		if err != nil {
			return err
		}
		cfg.Field.Density = density
		cfg.Derived.Density = tier
	}
	if speed != "" {
		s, err := particles.ParseSpeed(speed)
		if err != nil {
			return err
		}
		cfg.Field.AnimationSpeed = speed
		cfg.Derived.Speed = s
	}
	return nil
}
