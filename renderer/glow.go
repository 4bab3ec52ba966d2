package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/glowfield/glow"
)

// GlowLayer is one shadow pass behind glowing text.
type GlowLayer struct {
	Radius float32
	Color  rl.Color
}

// GlowLayers expands a glow style into shadow passes, outermost first. Each
// layer reaches further and is fainter than the one inside it. Colours that
// are not hex use fallback.
func GlowLayers(style glow.Style, fallback rl.Color) []GlowLayer {
	if style.Layers <= 0 {
		return nil
	}
	c, ok := hexColor(style.Color)
	if !ok {
		c = fallback
	}

	layers := make([]GlowLayer, 0, style.Layers)
	for i := style.Layers; i >= 1; i-- {
		frac := float64(i) / float64(style.Layers)
		radius := (style.Spread + style.Blur*frac) * style.Intensity
		alpha := (1 - frac*0.8) * 0.5 * math.Min(style.Intensity, 1.5) / 1.5
		layers = append(layers, GlowLayer{
			Radius: float32(radius),
			Color:  withAlpha(c, alpha),
		})
	}
	return layers
}

// glowSamples is how many offsets around a ring are drawn per layer.
const glowSamples = 8

// GlowText draws text with the glow described by style.
func GlowText(text string, x, y, fontSize int32, textColor rl.Color, style glow.Style) {
	for _, layer := range GlowLayers(style, textColor) {
		for k := 0; k < glowSamples; k++ {
			angle := 2 * math.Pi * float64(k) / glowSamples
			dx := int32(math.Round(float64(layer.Radius) * math.Cos(angle) / 4))
			dy := int32(math.Round(float64(layer.Radius) * math.Sin(angle) / 4))
			rl.DrawText(text, x+dx, y+dy, fontSize, layer.Color)
		}
	}
	rl.DrawText(text, x, y, fontSize, textColor)
}

// GlowTextCentered draws glowing text centered on cx.
func GlowTextCentered(text string, cx, y, fontSize int32, textColor rl.Color, style glow.Style) {
	w := rl.MeasureText(text, fontSize)
	GlowText(text, cx-w/2, y, fontSize, textColor, style)
}
