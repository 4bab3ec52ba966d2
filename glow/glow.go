// Package glow resolves the glow styling used around headings, buttons and borders.
package glow

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/glowfield/config"
)

// Intensity names a glow preset.
type Intensity string

const (
	Subtle Intensity = "subtle"
	Medium Intensity = "medium"
	Strong Intensity = "strong"
)

// Element is the kind of element the glow wraps.
type Element string

const (
	Text   Element = "text"
	Button Element = "button"
	Border Element = "border"
)

// FallbackColor is used when a requested colour does not parse.
const FallbackColor = "#ffffff"

// Preset holds the shadow parameters for one intensity.
type Preset struct {
	ShadowBlur      float64
	ShadowSpread    float64
	ShadowLayers    int
	HoverMultiplier float64
}

// Presets maps intensities to their shadow parameters.
type Presets map[Intensity]Preset

// DefaultPresets returns the built-in presets.
func DefaultPresets() Presets {
	return Presets{
		Subtle: {ShadowBlur: 10, ShadowSpread: 2, ShadowLayers: 2, HoverMultiplier: 1.5},
		Medium: {ShadowBlur: 15, ShadowSpread: 3, ShadowLayers: 3, HoverMultiplier: 2},
		Strong: {ShadowBlur: 25, ShadowSpread: 5, ShadowLayers: 4, HoverMultiplier: 2.5},
	}
}

// PresetsFromConfig converts the glow config section.
func PresetsFromConfig(m map[string]config.GlowIntensityConfig) (Presets, error) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(Presets, len(m))
	for _, name := range names {
		in := Intensity(name)
		switch in {
		case Subtle, Medium, Strong:
		default:
			return nil, fmt.Errorf("glow: unknown intensity %q", name)
		}
		c := m[name]
		if c.ShadowLayers <= 0 || c.HoverMultiplier <= 0 {
			return nil, fmt.Errorf("glow: intensity %q needs positive layers and hover multiplier", name)
		}
		out[in] = Preset{
			ShadowBlur:      c.ShadowBlur,
			ShadowSpread:    c.ShadowSpread,
			ShadowLayers:    c.ShadowLayers,
			HoverMultiplier: c.HoverMultiplier,
		}
	}
	for _, in := range []Intensity{Subtle, Medium, Strong} {
		if _, ok := out[in]; !ok {
			return nil, fmt.Errorf("glow: missing intensity %q", in)
		}
	}
	return out, nil
}

var functionalColor = regexp.MustCompile(`^(rgb|rgba|hsl|hsla)\(.*\)$`)

// ValidColor reports whether s is a hex or functional CSS colour.
func ValidColor(s string) bool {
	if strings.HasPrefix(s, "#") {
		if len(s) != 4 && len(s) != 7 {
			return false
		}
		_, err := colorful.Hex(s)
		return err == nil
	}
	return functionalColor.MatchString(s)
}

// Style is the resolved glow for one element.
type Style struct {
	Color     string
	Blur      float64
	Spread    float64
	Layers    int
	Intensity float64 // 1, or the hover multiplier while hovered
	Classes   []string
}

// Effect tracks the hover state of one glowing element.
// Hover is ignored while reduced motion is on.
type Effect struct {
	mu sync.Mutex

	intensity     Intensity
	element       Element
	color         string
	preset        Preset
	hovered       bool
	reducedMotion bool
}

// NewEffect creates an effect. An invalid colour falls back to white; an
// unknown intensity is an error.
func NewEffect(presets Presets, intensity Intensity, element Element, color string) (*Effect, error) {
	preset, ok := presets[intensity]
	if !ok {
		return nil, fmt.Errorf("glow: unknown intensity %q", intensity)
	}
	if !ValidColor(color) {
		color = FallbackColor
	}
	return &Effect{intensity: intensity, element: element, color: color, preset: preset}, nil
}

// Enter starts hovering unless reduced motion is on.
func (e *Effect) Enter() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.reducedMotion {
		e.hovered = true
	}
}

// Leave ends hovering.
func (e *Effect) Leave() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.hovered = false
}

// SetReducedMotion records the motion preference. Turning it on drops any hover.
func (e *Effect) SetReducedMotion(b bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reducedMotion = b
	if b {
		e.hovered = false
	}
}

// Hovered reports the hover state.
func (e *Effect) Hovered() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hovered
}

// Style resolves the current glow.
func (e *Effect) Style() Style {
	e.mu.Lock()
	defer e.mu.Unlock()

	classes := []string{
		"glow-effect",
		"glow-" + string(e.element),
		"glow-intensity-" + string(e.intensity),
	}
	if e.hovered {
		classes = append(classes, "glow-hover")
	}
	if e.reducedMotion {
		classes = append(classes, "reduced-motion")
	}

	intensity := 1.0
	if e.hovered {
		intensity = e.preset.HoverMultiplier
	}
	return Style{
		Color:     e.color,
		Blur:      e.preset.ShadowBlur,
		Spread:    e.preset.ShadowSpread,
		Layers:    e.preset.ShadowLayers,
		Intensity: intensity,
		Classes:   classes,
	}
}
