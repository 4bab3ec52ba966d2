package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/glowfield/camera"
	"github.com/pthm-cable/glowfield/components"
	"github.com/pthm-cable/glowfield/scene"
)

// sparkleHalo is the radius of a sparkle's halo relative to its core.
const sparkleHalo = 3.0

// Dot is one particle resolved to screen space.
type Dot struct {
	X, Y    float32
	Radius  float32
	Core    rl.Color
	Halo    rl.Color // zero alpha for plain particles
	Sparkle bool
}

// FieldRenderer draws the particles of a scene.
type FieldRenderer struct {
	palette Palette
	dots    []Dot
}

// NewFieldRenderer creates a new field renderer.
func NewFieldRenderer(p Palette) *FieldRenderer {
	return &FieldRenderer{palette: p}
}

// SetPalette changes the particle colours.
func (r *FieldRenderer) SetPalette(p Palette) {
	r.palette = p
}

// Resolve computes the visible dots for the current poses. The returned slice
// is reused by the next call.
func (r *FieldRenderer) Resolve(s *scene.Scene, cam *camera.Camera) []Dot {
	r.dots = r.dots[:0]
	s.Each(func(a components.Anchor, b components.Body, tw components.Twinkle) {
		x, y := cam.PercentToScreen(a.Left, a.Top)
		y += cam.Scale(float32(tw.Pose.OffsetY))

		radius := cam.Scale(b.Size * float32(tw.Pose.Scale) / 2)
		if radius < 0.5 {
			radius = 0.5
		}
		reach := radius
		if tw.Sparkle {
			reach *= sparkleHalo
		}
		if !cam.IsVisible(x, y, reach) {
			return
		}

		d := Dot{
			X:       x,
			Y:       y,
			Radius:  radius,
			Core:    withAlpha(r.palette.Particle, tw.Pose.Opacity),
			Sparkle: tw.Sparkle,
		}
		if tw.Sparkle {
			d.Halo = withAlpha(r.palette.Glow, tw.Pose.Opacity*0.35)
		}
		r.dots = append(r.dots, d)
	})
	return r.dots
}

// Draw renders all particles of the scene.
func (r *FieldRenderer) Draw(s *scene.Scene, cam *camera.Camera) {
	for _, d := range r.Resolve(s, cam) {
		if d.Sparkle {
			outer := d.Halo
			outer.A = 0
			rl.DrawCircleGradient(int32(d.X), int32(d.Y), d.Radius*sparkleHalo, d.Halo, outer)
		}
		rl.DrawCircleV(rl.Vector2{X: d.X, Y: d.Y}, d.Radius, d.Core)
	}
}
