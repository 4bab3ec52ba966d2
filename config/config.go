// Package config provides configuration loading and access for the particle field.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/glowfield/particles"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Field     FieldConfig                         `yaml:"field"`
	Density   map[string]particles.DensityProfile `yaml:"density"`
	Viewport  ViewportConfig                      `yaml:"viewport"`
	Theme     ThemeConfig                         `yaml:"theme"`
	Glow      map[string]GlowIntensityConfig      `yaml:"glow"`
	Screen    ScreenConfig                        `yaml:"screen"`
	Telemetry TelemetryConfig                     `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// FieldConfig holds the particle background settings.
type FieldConfig struct {
	Density              string `yaml:"density"`                // low | medium | high
	AnimationSpeed       string `yaml:"animation_speed"`        // slow | medium | fast
	Seed                 int64  `yaml:"seed"`                   // SineSource seed; fields are reproducible per seed
	Deterministic        bool   `yaml:"deterministic"`          // false = uniform random source
	RespectReducedMotion bool   `yaml:"respect_reduced_motion"` // false = always animate
}

// ViewportConfig holds the responsive rules.
type ViewportConfig struct {
	MobileBreakpoint int     `yaml:"mobile_breakpoint"` // widths <= this are mobile (px)
	DefaultWidth     int     `yaml:"default_width"`     // assumed width when none is observed
	CellWidthPx      int     `yaml:"cell_width_px"`     // px per terminal column
	CoalesceWindow   float64 `yaml:"coalesce_window"`   // seconds of quiet before a resize applies
}

// ThemeConfig holds the dark theme defaults.
type ThemeConfig struct {
	BackgroundColor string `yaml:"background_color"`
	PrimaryText     string `yaml:"primary_text"`
	SecondaryText   string `yaml:"secondary_text"`
	GlowColor       string `yaml:"glow_color"`
	ParticleColor   string `yaml:"particle_color"`
	PreferenceFile  string `yaml:"preference_file"` // saved overrides (JSON), empty = not persisted
}

// GlowIntensityConfig holds one glow intensity preset.
type GlowIntensityConfig struct {
	ShadowBlur      float64 `yaml:"shadow_blur"`
	ShadowSpread    float64 `yaml:"shadow_spread"`
	ShadowLayers    int     `yaml:"shadow_layers"`
	HoverMultiplier float64 `yaml:"hover_multiplier"`
}

// ScreenConfig holds display settings for the raylib preview.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// TelemetryConfig holds field statistics parameters.
type TelemetryConfig struct {
	CoverageBins int `yaml:"coverage_bins"` // grid cells per side for coverage stats
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Profiles       particles.ProfileTable
	Density        particles.Tier
	Speed          particles.AnimationSpeed
	CoalesceWindow time.Duration
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// computeDerived validates the loaded values and fills Derived.
func (c *Config) computeDerived() error {
	profiles, err := particles.NewProfileTable(c.Density)
	if err != nil {
		return fmt.Errorf("density table: %w", err)
	}
	c.Derived.Profiles = profiles

	tier, err := particles.ParseTier(c.Field.Density)
	if err != nil {
		return fmt.Errorf("field density: %w", err)
	}
	c.Derived.Density = tier

	speed, err := particles.ParseSpeed(c.Field.AnimationSpeed)
	if err != nil {
		return fmt.Errorf("field animation speed: %w", err)
	}
	c.Derived.Speed = speed

	if c.Viewport.MobileBreakpoint <= 0 {
		return fmt.Errorf("viewport mobile breakpoint %d must be positive", c.Viewport.MobileBreakpoint)
	}
	if c.Viewport.CellWidthPx <= 0 {
		c.Viewport.CellWidthPx = 8
	}
	if c.Telemetry.CoverageBins <= 0 {
		c.Telemetry.CoverageBins = 10
	}
	c.Derived.CoalesceWindow = time.Duration(c.Viewport.CoalesceWindow * float64(time.Second))
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
