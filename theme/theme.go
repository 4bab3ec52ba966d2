// Package theme holds the dark colour theme and its persisted preference.
package theme

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/glowfield/config"
)

// Theme is the set of colours the page and the particle field are drawn with.
type Theme struct {
	BackgroundColor string `json:"backgroundColor"`
	PrimaryText     string `json:"primaryText"`
	SecondaryText   string `json:"secondaryText"`
	GlowColor       string `json:"glowColor"`
	ParticleColor   string `json:"particleColor"`
}

// Default is the built-in dark theme.
var Default = Theme{
	BackgroundColor: "#0a0a0f",
	PrimaryText:     "#ffffff",
	SecondaryText:   "#c0c0c0",
	GlowColor:       "#ffffff",
	ParticleColor:   "#ffffff",
}

// Light is used while dark mode is off. Saved overrides do not apply to it.
var Light = Theme{
	BackgroundColor: "#f4f4f8",
	PrimaryText:     "#111118",
	SecondaryText:   "#4a4a55",
	GlowColor:       "#6b6bff",
	ParticleColor:   "#3a3a48",
}

// FromConfig builds a theme from the config section, falling back to Default for
// empty entries.
func FromConfig(c config.ThemeConfig) Theme {
	return Default.Merge(Partial{
		BackgroundColor: nonEmpty(c.BackgroundColor),
		PrimaryText:     nonEmpty(c.PrimaryText),
		SecondaryText:   nonEmpty(c.SecondaryText),
		GlowColor:       nonEmpty(c.GlowColor),
		ParticleColor:   nonEmpty(c.ParticleColor),
	})
}

// Vars returns the theme as CSS custom properties.
func (t Theme) Vars() map[string]string {
	return map[string]string{
		"--background":       t.BackgroundColor,
		"--foreground":       t.PrimaryText,
		"--background-color": t.BackgroundColor,
		"--glow-color":       t.GlowColor,
		"--particle-color":   t.ParticleColor,
	}
}

// Partial is a set of theme overrides. Nil fields are left unchanged.
type Partial struct {
	BackgroundColor *string `json:"backgroundColor,omitempty"`
	PrimaryText     *string `json:"primaryText,omitempty"`
	SecondaryText   *string `json:"secondaryText,omitempty"`
	GlowColor       *string `json:"glowColor,omitempty"`
	ParticleColor   *string `json:"particleColor,omitempty"`
}

// Merge returns t with the non-nil fields of p applied.
func (t Theme) Merge(p Partial) Theme {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&t.BackgroundColor, p.BackgroundColor)
	set(&t.PrimaryText, p.PrimaryText)
	set(&t.SecondaryText, p.SecondaryText)
	set(&t.GlowColor, p.GlowColor)
	set(&t.ParticleColor, p.ParticleColor)
	return t
}

// Overlay returns p with the non-nil fields of q applied on top.
func (p Partial) Overlay(q Partial) Partial {
	pick := func(a, b *string) *string {
		if b != nil {
			return b
		}
		return a
	}
	return Partial{
		BackgroundColor: pick(p.BackgroundColor, q.BackgroundColor),
		PrimaryText:     pick(p.PrimaryText, q.PrimaryText),
		SecondaryText:   pick(p.SecondaryText, q.SecondaryText),
		GlowColor:       pick(p.GlowColor, q.GlowColor),
		ParticleColor:   pick(p.ParticleColor, q.ParticleColor),
	}
}

// String returns a pointer to s, for building a Partial.
func String(s string) *string { return &s }

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// RGBA parses a hex colour ("#rgb" or "#rrggbb") into 8-bit channels with full alpha.
func RGBA(hex string) (r, g, b, a uint8, err error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("parsing colour %q: %w", hex, err)
	}
	r, g, b = c.RGB255()
	return r, g, b, 255, nil
}

// Store is the process-wide theme state. Load it once at start; every Set saves
// the accumulated overrides back to the preference file.
type Store struct {
	mu        sync.RWMutex
	saveMu    sync.Mutex // orders writes to path with the updates they carry
	path      string
	base      Theme
	overrides Partial
	theme     Theme
	dark      bool
	logger    *slog.Logger
}

// NewStore creates a store over base. An empty path keeps preferences in memory.
func NewStore(path string, base Theme, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, base: base, theme: base, dark: true, logger: logger}
}

// Load reads the saved overrides. A missing file is not an error; an unreadable
// or corrupt one is logged and the base theme is kept.
func (s *Store) Load() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.overrides = Partial{}
	s.theme = s.base
	if s.path == "" {
		return s.theme
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return s.theme
	}
	if err != nil {
		s.logger.Warn("failed to read saved theme preference", "path", s.path, "error", err)
		return s.theme
	}

	var saved Partial
	if err := json.Unmarshal(data, &saved); err != nil {
		s.logger.Warn("failed to parse saved theme preference", "path", s.path, "error", err)
		return s.theme
	}
	s.overrides = saved
	s.theme = s.base.Merge(saved)
	return s.theme
}

// Theme returns the current theme.
func (s *Store) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// Set applies p and saves the accumulated overrides. The in-memory theme is
// updated even when saving fails.
func (s *Store) Set(p Partial) (Theme, error) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	s.overrides = s.overrides.Overlay(p)
	s.theme = s.base.Merge(s.overrides)
	theme, overrides := s.theme, s.overrides
	s.mu.Unlock()

	if err := s.save(overrides); err != nil {
		s.logger.Warn("failed to save theme preference", "path", s.path, "error", err)
		return theme, err
	}
	return theme, nil
}

// IsDark reports whether dark mode is on. The store starts dark.
func (s *Store) IsDark() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dark
}

// ToggleDark flips dark mode and returns the new value.
func (s *Store) ToggleDark() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dark = !s.dark
	return s.dark
}

// Active returns the theme to draw with: the current theme in dark mode,
// Light otherwise.
func (s *Store) Active() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.dark {
		return Light
	}
	return s.theme
}

// Path returns the preference file path.
func (s *Store) Path() string { return s.path }

func (s *Store) save(p Partial) error {
	if s.path == "" {
		return nil
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal theme preference: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create preference dir: %w", err)
	}
	// write-then-rename so a watcher never sees a half-written file
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write theme preference: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace theme preference: %w", err)
	}
	return nil
}
