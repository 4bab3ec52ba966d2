// Package viewport keeps a particle field in step with the observed viewport.
//
// The generator in package particles is pure. Shell is the reactive layer around
// it: observers report State changes, and Shell decides whether the field has to
// be regenerated or only retagged, replacing it wholesale either way.
package viewport

import (
	"log/slog"
	"sync"

	"github.com/pthm-cable/glowfield/particles"
)

// DefaultBreakpoint is the widest viewport, in px, treated as mobile.
const DefaultBreakpoint = 768

// Breakpoint classifies viewport widths.
type Breakpoint int

// IsMobile reports whether width is at or below the breakpoint.
func (b Breakpoint) IsMobile(width int) bool {
	return width <= int(b)
}

// State is what the viewport and motion observers report.
type State struct {
	Width         int
	ReducedMotion bool
	Density       particles.Tier
}

// SourceFactory returns a fresh random source for each regeneration.
type SourceFactory func() particles.RandomSource

// SeededSources returns a factory of sine sources that all start from seed, so
// every regeneration for the same configuration yields the same field.
func SeededSources(seed int64) SourceFactory {
	return func() particles.RandomSource { return particles.NewSineSource(seed) }
}

// Options configures a Shell.
type Options struct {
	Profiles   particles.ProfileTable
	Breakpoint Breakpoint
	Sources    SourceFactory
	// RespectReducedMotion false forces every field to animate.
	RespectReducedMotion bool
	Logger               *slog.Logger
}

// Shell owns the current particle field.
type Shell struct {
	mu sync.Mutex

	opts   Options
	logger *slog.Logger

	field       particles.ParticleField
	cfg         particles.FieldConfig
	hasField    bool
	generations int
	listeners   []func(particles.ParticleField)
}

// NewShell creates a shell with no field. The first Apply generates one.
func NewShell(opts Options) *Shell {
	if opts.Breakpoint <= 0 {
		opts.Breakpoint = DefaultBreakpoint
	}
	if opts.Sources == nil {
		opts.Sources = SeededSources(0)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Shell{opts: opts, logger: logger}
}

// OnChange registers fn to receive every replacement field. Listeners run on the
// goroutine that called Apply, after the shell lock is released.
func (s *Shell) OnChange(fn func(particles.ParticleField)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Apply brings the field in line with st. The field is regenerated when the
// density or the mobile classification changed; a reduced-motion change alone
// only retags the existing particles. An unknown density is rejected before
// anything is replaced.
func (s *Shell) Apply(st State) (particles.ParticleField, error) {
	profile, err := s.opts.Profiles.Get(st.Density)
	if err != nil {
		return particles.ParticleField{}, err
	}

	cfg := particles.FieldConfig{
		Density:       st.Density,
		IsMobile:      s.opts.Breakpoint.IsMobile(st.Width),
		ReducedMotion: st.ReducedMotion && s.opts.RespectReducedMotion,
	}

	s.mu.Lock()
	var changed bool
	switch {
	case !s.hasField || cfg.Density != s.cfg.Density || cfg.IsMobile != s.cfg.IsMobile:
		s.field = particles.Generate(cfg, profile, s.opts.Sources())
		s.generations++
		changed = true
		s.logger.Debug("particle field regenerated",
			"density", cfg.Density,
			"mobile", cfg.IsMobile,
			"reduced_motion", cfg.ReducedMotion,
			"count", s.field.Len(),
			"generation", s.generations,
		)
	case cfg.ReducedMotion != s.cfg.ReducedMotion:
		s.field = s.field.WithReducedMotion(cfg.ReducedMotion)
		changed = true
		s.logger.Debug("particle field retagged", "reduced_motion", cfg.ReducedMotion)
	}
	s.cfg = cfg
	s.hasField = true
	field := s.field
	listeners := append(([]func(particles.ParticleField))(nil), s.listeners...)
	s.mu.Unlock()

	if changed {
		for _, fn := range listeners {
			fn(field)
		}
	}
	return field, nil
}

// Field returns the current field and whether one has been generated.
func (s *Shell) Field() (particles.ParticleField, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.field, s.hasField
}

// Generations returns how many times the field was generated.
func (s *Shell) Generations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations
}
