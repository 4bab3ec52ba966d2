// Package particles generates the decorative particle field drawn behind the page.
//
// Generation is a pure function of a FieldConfig, a DensityProfile and a
// RandomSource. Nothing here animates, observes the viewport or draws; those are
// the jobs of the viewport, scene and renderer packages.
package particles

import (
	"fmt"
	"sort"
)

// Tier names a density preset.
type Tier string

const (
	Low    Tier = "low"
	Medium Tier = "medium"
	High   Tier = "high"
)

// Tiers lists the supported tiers in ascending density.
var Tiers = []Tier{Low, Medium, High}

// ParseTier validates an externally supplied tier name.
func ParseTier(s string) (Tier, error) {
	switch t := Tier(s); t {
	case Low, Medium, High:
		return t, nil
	default:
		return "", &ConfigError{Tier: s, Reason: "unknown density tier"}
	}
}

// ConfigError reports a density tier or profile that cannot be used.
// It signals a caller bug and is never recovered from by falling back to a default.
type ConfigError struct {
	Tier   string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("particles: tier %q: %s", e.Tier, e.Reason)
}

// DensityProfile holds the generation parameters for one tier.
type DensityProfile struct {
	Count               int     `yaml:"count" json:"count"`
	MaxSize             float64 `yaml:"max_size" json:"max_size"`
	AnimationDurationMs int     `yaml:"animation_duration_ms" json:"animation_duration_ms"`
	SparkleFrequency    float64 `yaml:"sparkle_frequency" json:"sparkle_frequency"`
}

// Validate checks the profile ranges. Count may be zero, which yields empty fields.
func (p DensityProfile) Validate() error {
	switch {
	case p.Count < 0:
		return fmt.Errorf("count %d is negative", p.Count)
	case p.MaxSize <= 0:
		return fmt.Errorf("max size %g must be positive", p.MaxSize)
	case p.AnimationDurationMs <= 0:
		return fmt.Errorf("animation duration %dms must be positive", p.AnimationDurationMs)
	case p.SparkleFrequency < 0 || p.SparkleFrequency > 1:
		return fmt.Errorf("sparkle frequency %g outside [0,1]", p.SparkleFrequency)
	}
	return nil
}

// ProfileTable maps every tier to its profile. It is built once and only read.
type ProfileTable struct {
	profiles map[Tier]DensityProfile
}

// DefaultProfiles returns the built-in table.
func DefaultProfiles() ProfileTable {
	return ProfileTable{profiles: map[Tier]DensityProfile{
		Low:    {Count: 20, MaxSize: 3, AnimationDurationMs: 8000, SparkleFrequency: 0.1},
		Medium: {Count: 50, MaxSize: 4, AnimationDurationMs: 6000, SparkleFrequency: 0.2},
		High:   {Count: 80, MaxSize: 5, AnimationDurationMs: 4000, SparkleFrequency: 0.3},
	}}
}

// NewProfileTable validates a table loaded from configuration.
// Every known tier must be present and no unknown tier may appear.
func NewProfileTable(m map[string]DensityProfile) (ProfileTable, error) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	profiles := make(map[Tier]DensityProfile, len(m))
	for _, name := range names {
		tier, err := ParseTier(name)
		if err != nil {
			return ProfileTable{}, err
		}
		p := m[name]
		if err := p.Validate(); err != nil {
			return ProfileTable{}, &ConfigError{Tier: name, Reason: err.Error()}
		}
		profiles[tier] = p
	}
	for _, tier := range Tiers {
		if _, ok := profiles[tier]; !ok {
			return ProfileTable{}, &ConfigError{Tier: string(tier), Reason: "missing profile"}
		}
	}
	return ProfileTable{profiles: profiles}, nil
}

// Get returns the profile for tier.
func (t ProfileTable) Get(tier Tier) (DensityProfile, error) {
	p, ok := t.profiles[tier]
	if !ok {
		return DensityProfile{}, &ConfigError{Tier: string(tier), Reason: "unknown density tier"}
	}
	return p, nil
}

// MustGet is like Get but panics on an unknown tier.
func (t ProfileTable) MustGet(tier Tier) DensityProfile {
	p, err := t.Get(tier)
	if err != nil {
		panic(err)
	}
	return p
}
