// Terminal glow field - the particle background drawn with tcell.
//
// Resizing the terminal changes the viewport width (columns x cell width), so
// narrowing it past the mobile breakpoint switches to the mobile field.
//
// Usage: go run ./cmd/fieldterm [-config path] [-seed n] [-reduced-motion]
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/glowfield/config"
	"github.com/pthm-cable/glowfield/particles"
	"github.com/pthm-cable/glowfield/scene"
	"github.com/pthm-cable/glowfield/term"
	"github.com/pthm-cable/glowfield/theme"
	"github.com/pthm-cable/glowfield/viewport"
)

const frameInterval = 33 * time.Millisecond // ~30 FPS

// App holds the terminal session.
type App struct {
	screen    tcell.Screen
	painter   *term.Painter
	scene     *scene.Scene
	shell     *viewport.Shell
	coalescer *viewport.Coalescer
	fields    chan particles.ParticleField
	state     viewport.State
	speed     particles.AnimationSpeed
	cellWidth int
	paused    bool
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "Field seed (0 = use config)")
	reducedMotion := flag.Bool("reduced-motion", false, "Simulate the reduced-motion preference")
	logFile := flag.String("log-file", "", "Write JSON logs here (empty = discard)")
	flag.Parse()

	var logOut io.Writer = io.Discard
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	fieldSeed := *seed
	if fieldSeed == 0 {
		fieldSeed = cfg.Field.Seed
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "init screen: %v\n", err)
		os.Exit(1)
	}

	app := newApp(screen, cfg, fieldSeed, *reducedMotion, logger)
	defer app.cleanup()

	if err := app.start(); err != nil {
		app.cleanup()
		fmt.Fprintf(os.Stderr, "start: %v\n", err)
		os.Exit(1)
	}
	app.run()
}

func newApp(screen tcell.Screen, cfg *config.Config, seed int64, reduced bool, logger *slog.Logger) *App {
	a := &App{
		screen:    screen,
		painter:   term.NewPainter(screen, theme.FromConfig(cfg.Theme)),
		scene:     scene.New(cfg.Derived.Speed),
		fields:    make(chan particles.ParticleField, 1),
		speed:     cfg.Derived.Speed,
		cellWidth: cfg.Viewport.CellWidthPx,
	}
	a.shell = viewport.NewShell(viewport.Options{
		Profiles:             cfg.Derived.Profiles,
		Breakpoint:           viewport.Breakpoint(cfg.Viewport.MobileBreakpoint),
		Sources:              viewport.SeededSources(seed),
		RespectReducedMotion: cfg.Field.RespectReducedMotion,
		Logger:               logger,
	})
	a.shell.OnChange(a.publish)
	a.coalescer = viewport.NewCoalescer(a.shell, cfg.Derived.CoalesceWindow)
	a.state = viewport.State{
		Width:         a.painter.WidthPx(a.cellWidth),
		ReducedMotion: reduced,
		Density:       cfg.Derived.Density,
	}
	return a
}

// publish hands a field to the render loop, replacing one not yet picked up.
func (a *App) publish(field particles.ParticleField) {
	for {
		select {
		case a.fields <- field:
			return
		default:
		}
		select {
		case <-a.fields:
		default:
		}
	}
}

// start generates the first field synchronously.
func (a *App) start() error {
	_, err := a.shell.Apply(a.state)
	return err
}

func (a *App) submit(st viewport.State) {
	a.state = st
	a.coalescer.Submit(st)
}

// handleInput processes one event. It returns false to quit.
func (a *App) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		st := a.state
		switch ev.Rune() {
		case 'q':
			return false
		case '1':
			st.Density = particles.Low
		case '2':
			st.Density = particles.Medium
		case '3':
			st.Density = particles.High
		case 'm':
			st.ReducedMotion = !st.ReducedMotion
		case 's':
			a.speed = nextSpeed(a.speed)
			a.scene.SetSpeed(a.speed)
			return true
		case ' ':
			a.paused = !a.paused
			return true
		default:
			return true
		}
		if st != a.state {
			a.submit(st)
		}

	case *tcell.EventResize:
		a.screen.Sync()
		st := a.state
		st.Width = a.painter.WidthPx(a.cellWidth)
		if st != a.state {
			a.submit(st)
		}
	}
	return true
}

func nextSpeed(s particles.AnimationSpeed) particles.AnimationSpeed {
	switch s {
	case particles.Slow:
		return particles.NormalPace
	case particles.NormalPace:
		return particles.Fast
	default:
		return particles.Slow
	}
}

// status formats the bottom line.
func (a *App) status() string {
	f := a.scene.Field()
	layout := "desktop"
	if f.MobileOptimized {
		layout = "mobile"
	}
	motion := "animated"
	if f.ReducedMotion {
		motion = "reduced motion"
	}
	return fmt.Sprintf(" %s | %s %dpx | %d particles | %s | speed %s | [1-3] density [m] motion [s] speed [q] quit",
		f.Density, layout, a.state.Width, f.Len(), motion, a.speed)
}

func (a *App) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !a.handleInput(ev) {
				return
			}

		case field := <-a.fields:
			a.scene.Load(field)

		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			if !a.paused {
				a.scene.Update(float64(dt.Milliseconds()))
			}
			a.painter.Draw(a.scene)
			a.painter.Status(a.status())
			a.screen.Show()
		}
	}
}

func (a *App) cleanup() {
	a.coalescer.Stop()
	a.screen.Fini()
}
