// Package renderer draws the glow field with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/glowfield/theme"
)

// Palette holds the theme colours converted for raylib.
type Palette struct {
	Background rl.Color
	Surface    rl.Color // background lifted toward the glow colour
	Text       rl.Color
	Muted      rl.Color
	Glow       rl.Color
	Particle   rl.Color
}

// surfaceLift is how far Surface is blended from Background toward Glow.
const surfaceLift = 0.08

// NewPalette converts a theme. Colours that do not parse fall back to the
// default theme's.
func NewPalette(t theme.Theme) Palette {
	bg := toColor(t.BackgroundColor, theme.Default.BackgroundColor)
	glow := toColor(t.GlowColor, theme.Default.GlowColor)
	return Palette{
		Background: bg,
		Surface:    blend(bg, glow, surfaceLift),
		Text:       toColor(t.PrimaryText, theme.Default.PrimaryText),
		Muted:      toColor(t.SecondaryText, theme.Default.SecondaryText),
		Glow:       glow,
		Particle:   toColor(t.ParticleColor, theme.Default.ParticleColor),
	}
}

func toColor(hex, fallback string) rl.Color {
	if c, ok := hexColor(hex); ok {
		return c
	}
	c, _ := hexColor(fallback)
	return c
}

func hexColor(hex string) (rl.Color, bool) {
	r, g, b, a, err := theme.RGBA(hex)
	if err != nil {
		return rl.Color{}, false
	}
	return rl.Color{R: r, G: g, B: b, A: a}, true
}

// blend mixes two colours in Lab space.
func blend(a, b rl.Color, t float64) rl.Color {
	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	r, g, bl := ca.BlendLab(cb, t).Clamped().RGB255()
	return rl.Color{R: r, G: g, B: bl, A: 255}
}

// withAlpha returns c with its alpha scaled by f in [0,1].
func withAlpha(c rl.Color, f float64) rl.Color {
	if f < 0 {
		f = 0
	} else if f > 1 {
		f = 1
	}
	c.A = uint8(float64(c.A)*f + 0.5)
	return c
}
