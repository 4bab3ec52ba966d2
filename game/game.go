// Package game runs the glow field preview: it wires the viewport shell, the
// scene, the theme store and telemetry together and drives them per frame.
package game

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/glowfield/camera"
	"github.com/pthm-cable/glowfield/config"
	"github.com/pthm-cable/glowfield/glow"
	"github.com/pthm-cable/glowfield/particles"
	"github.com/pthm-cable/glowfield/renderer"
	"github.com/pthm-cable/glowfield/scene"
	"github.com/pthm-cable/glowfield/telemetry"
	"github.com/pthm-cable/glowfield/theme"
	"github.com/pthm-cable/glowfield/ui"
	"github.com/pthm-cable/glowfield/viewport"
)

// perfLogInterval is how many frames pass between frame timing log lines.
const perfLogInterval = 600

// themeDebounce is how long the preference file must be quiet before a reload.
const themeDebounce = 100 * time.Millisecond

// Options configures a Game.
type Options struct {
	Seed          int64
	Width         int // forced viewport width in px, 0 = follow the window
	ReducedMotion bool
	SnapshotDir   string
	OutputDir     string
	ThemeFile     string // overrides the config preference file
	Headless      bool
	Logger        *slog.Logger
}

// Game holds the complete preview state.
type Game struct {
	cfg    *config.Config
	logger *slog.Logger
	seed   int64

	shell     *viewport.Shell
	coalescer *viewport.Coalescer
	state     viewport.State
	forcedW   int

	// handed over from other goroutines, consumed by Update
	mu        sync.Mutex
	nextField *particles.ParticleField
	nextTheme *theme.Theme

	scene  *scene.Scene
	camera *camera.Camera
	speed  particles.AnimationSpeed

	store   *theme.Store
	watcher *theme.Watcher
	cancel  context.CancelFunc

	palette     renderer.Palette
	background  *renderer.BackgroundRenderer
	fieldDraw   *renderer.FieldRenderer
	presets     glow.Presets
	title       *glow.Effect
	titleBounds rl.Rectangle
	hud         *ui.HUD
	stats       *ui.StatsPanel

	telemetryMu   sync.Mutex
	outputManager *telemetry.OutputManager
	fieldStats    telemetry.FieldStats
	perf          *telemetry.FrameCollector
	snapshotDir   string
	frames        int

	paused                    bool
	showStats                 bool
	glowIndex                 int
	screenWidth, screenHeight float32
}

// NewGame creates a game from cfg and generates the first field.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	g := &Game{
		cfg:          cfg,
		logger:       logger,
		seed:         opts.Seed,
		forcedW:      opts.Width,
		speed:        cfg.Derived.Speed,
		snapshotDir:  opts.SnapshotDir,
		perf:         telemetry.NewFrameCollector(cfg.Screen.TargetFPS),
		screenWidth:  float32(cfg.Screen.Width),
		screenHeight: float32(cfg.Screen.Height),
		showStats:    true,
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}

	g.shell = viewport.NewShell(viewport.Options{
		Profiles:             cfg.Derived.Profiles,
		Breakpoint:           viewport.Breakpoint(cfg.Viewport.MobileBreakpoint),
		Sources:              sourceFactory(cfg.Field, opts.Seed),
		RespectReducedMotion: cfg.Field.RespectReducedMotion,
		Logger:               logger,
	})
	g.shell.OnChange(g.onField)
	g.coalescer = viewport.NewCoalescer(g.shell, cfg.Derived.CoalesceWindow)

	themePath := cfg.Theme.PreferenceFile
	if opts.ThemeFile != "" {
		themePath = opts.ThemeFile
	}
	g.store = theme.NewStore(themePath, theme.FromConfig(cfg.Theme), logger)
	g.store.Load()

	g.scene = scene.New(g.speed)

	width := opts.Width
	if width <= 0 {
		width = cfg.Viewport.DefaultWidth
		if !opts.Headless {
			width = cfg.Screen.Width
		}
	}
	g.state = viewport.State{Width: width, ReducedMotion: opts.ReducedMotion, Density: cfg.Derived.Density}
	if _, err := g.shell.Apply(g.state); err != nil {
		return nil, err
	}
	g.drainField()

	if opts.Headless {
		return g, nil
	}

	g.presets, err = glow.PresetsFromConfig(cfg.Glow)
	if err != nil {
		return nil, err
	}
	if _, ok := g.presets[glow.Medium]; !ok {
		return nil, fmt.Errorf("glow: config has no %q preset", glow.Medium)
	}

	g.camera = camera.Fill(g.screenWidth, g.screenHeight)
	g.palette = renderer.NewPalette(g.store.Active())
	g.background = renderer.NewBackgroundRenderer(int32(g.screenWidth), int32(g.screenHeight), g.palette)
	g.fieldDraw = renderer.NewFieldRenderer(g.palette)
	g.hud = ui.NewHUD()
	g.stats = ui.NewStatsPanel(int32(g.screenWidth)-250, 10, 240)
	g.applyPalette()

	if g.store.Path() != "" {
		g.watcher, err = theme.NewWatcher(g.store, themeDebounce, g.onTheme)
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithCancel(context.Background())
		g.cancel = cancel
		if err := g.watcher.Start(ctx); err != nil {
			cancel()
			return nil, err
		}
	}

	return g, nil
}

// sourceFactory picks the random source for regenerations. Deterministic
// fields restart the sine sequence every time; otherwise every regeneration
// continues one shared uniform stream.
func sourceFactory(f config.FieldConfig, seed int64) viewport.SourceFactory {
	if f.Deterministic {
		return viewport.SeededSources(seed)
	}
	shared := particles.NewLockedSource(particles.NewUniformSource(seed))
	return func() particles.RandomSource { return shared }
}

// Update advances one frame: it applies pending field and theme changes,
// handles input and animates the scene.
func (g *Game) Update(dt float32) {
	g.perf.StartFrame()

	g.perf.StartPhase(telemetry.PhaseApply)
	g.handleInput()
	g.drainField()
	g.drainTheme()

	g.perf.StartPhase(telemetry.PhaseUpdate)
	if !g.paused {
		g.scene.Update(float64(dt) * 1000)
	}
}

// Submit reports a new viewport state. Bursts are coalesced.
func (g *Game) Submit(st viewport.State) {
	g.state = st
	g.coalescer.Submit(st)
}

// State returns the last submitted viewport state.
func (g *Game) State() viewport.State { return g.state }

// Scene returns the scene being drawn.
func (g *Game) Scene() *scene.Scene { return g.scene }

// FieldStats returns the statistics of the current field.
func (g *Game) FieldStats() telemetry.FieldStats {
	g.telemetryMu.Lock()
	defer g.telemetryMu.Unlock()
	return g.fieldStats
}

// onField runs on the goroutine that applied the state.
func (g *Game) onField(field particles.ParticleField) {
	g.recordField(field)

	g.mu.Lock()
	g.nextField = &field
	g.mu.Unlock()
}

// onTheme runs on the theme watcher goroutine.
func (g *Game) onTheme(t theme.Theme) {
	g.mu.Lock()
	g.nextTheme = &t
	g.mu.Unlock()
}

func (g *Game) drainField() {
	g.mu.Lock()
	next := g.nextField
	g.nextField = nil
	g.mu.Unlock()

	if next == nil {
		return
	}
	g.scene.Load(*next)
	if g.title != nil {
		g.title.SetReducedMotion(next.ReducedMotion)
	}
}

func (g *Game) drainTheme() {
	g.mu.Lock()
	next := g.nextTheme
	g.nextTheme = nil
	g.mu.Unlock()

	if next == nil {
		return
	}
	g.logger.Info("theme reloaded", "glow", next.GlowColor, "particle", next.ParticleColor)
	g.applyPalette()
}

// applyPalette redraws everything with the store's active theme.
func (g *Game) applyPalette() {
	if g.background == nil {
		return
	}
	active := g.store.Active()
	g.palette = renderer.NewPalette(active)
	g.background.SetPalette(g.palette)
	g.fieldDraw.SetPalette(g.palette)

	uiTheme := ui.DefaultTheme().WithAccent(g.palette.Glow)
	g.hud.SetTheme(uiTheme)
	g.stats.SetTheme(uiTheme)

	// the preset was checked in NewGame
	g.title, _ = glow.NewEffect(g.presets, glow.Medium, glow.Text, active.GlowColor)
	g.title.SetReducedMotion(g.scene.Field().ReducedMotion)
}

// Unload stops background work and closes outputs.
func (g *Game) Unload() {
	g.coalescer.Stop()
	if g.watcher != nil {
		g.cancel()
		g.watcher.Stop()
	}
	g.telemetryMu.Lock()
	defer g.telemetryMu.Unlock()
	if g.outputManager == nil {
		return
	}
	// a flush racing Stop may still record; it sees the nil manager
	om := g.outputManager
	g.outputManager = nil
	if err := om.Close(); err != nil {
		g.logger.Error("failed to close output", "error", err)
		return
	}
	g.logger.Info("outputs closed", "dir", om.Dir())
}
