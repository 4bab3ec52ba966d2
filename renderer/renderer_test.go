package renderer

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/glowfield/camera"
	"github.com/pthm-cable/glowfield/glow"
	"github.com/pthm-cable/glowfield/particles"
	"github.com/pthm-cable/glowfield/scene"
	"github.com/pthm-cable/glowfield/theme"
)

func TestNewPaletteFallsBack(t *testing.T) {
	th := theme.Default
	th.ParticleColor = "#ff0000"
	th.GlowColor = "not a colour"

	p := NewPalette(th)
	if p.Particle != (rl.Color{R: 255, A: 255}) {
		t.Errorf("Particle = %+v, want red", p.Particle)
	}
	if p.Glow != (rl.Color{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("Glow = %+v, want default white", p.Glow)
	}
	if p.Surface == p.Background {
		t.Error("Surface should be lifted from Background")
	}
}

func TestWithAlpha(t *testing.T) {
	c := rl.Color{R: 1, G: 2, B: 3, A: 200}
	tests := []struct {
		f    float64
		want uint8
	}{
		{0, 0},
		{0.5, 100},
		{1, 200},
		{2, 200},
		{-1, 0},
	}
	for _, tt := range tests {
		if got := withAlpha(c, tt.f).A; got != tt.want {
			t.Errorf("withAlpha(%v).A = %d, want %d", tt.f, got, tt.want)
		}
	}
}

func TestGlowLayers(t *testing.T) {
	effect, err := glow.NewEffect(glow.DefaultPresets(), glow.Strong, glow.Text, "#00ff00")
	if err != nil {
		t.Fatal(err)
	}
	rest := GlowLayers(effect.Style(), rl.White)
	if len(rest) != 4 {
		t.Fatalf("layers = %d, want 4", len(rest))
	}
	for i := 1; i < len(rest); i++ {
		if rest[i].Radius >= rest[i-1].Radius {
			t.Errorf("layer %d radius %v not inside layer %d (%v)", i, rest[i].Radius, i-1, rest[i-1].Radius)
		}
		if rest[i].Color.A < rest[i-1].Color.A {
			t.Errorf("inner layer %d fainter than outer", i)
		}
	}
	if rest[0].Color.G != 255 || rest[0].Color.R != 0 {
		t.Errorf("layer colour = %+v, want green", rest[0].Color)
	}

	effect.Enter()
	hover := GlowLayers(effect.Style(), rl.White)
	if hover[0].Radius <= rest[0].Radius {
		t.Errorf("hover radius %v should exceed rest %v", hover[0].Radius, rest[0].Radius)
	}

	fn, _ := glow.NewEffect(glow.DefaultPresets(), glow.Subtle, glow.Border, "rgb(1, 2, 3)")
	if got := GlowLayers(fn.Style(), rl.Blue); got[0].Color.B != rl.Blue.B || got[0].Color.R != rl.Blue.R {
		t.Errorf("functional colour should use fallback, got %+v", got[0].Color)
	}

	if GlowLayers(glow.Style{}, rl.White) != nil {
		t.Error("zero layers should produce nil")
	}
}

func TestResolveDots(t *testing.T) {
	profile := particles.DefaultProfiles().MustGet(particles.High)
	field := particles.Generate(particles.FieldConfig{Density: particles.High}, profile, particles.NewSineSource(3))

	s := scene.New(particles.NormalPace)
	s.Load(field)
	s.Update(0)

	r := NewFieldRenderer(NewPalette(theme.Default))
	dots := r.Resolve(s, camera.Fill(1000, 500))
	if len(dots) != field.Len() {
		t.Fatalf("dots = %d, want %d (all on screen at fill zoom)", len(dots), field.Len())
	}

	sparkles := 0
	for i, d := range dots {
		p := field.At(i)
		if d.X < 0 || d.X > 1000 || d.Y < -20 || d.Y > 500 {
			t.Errorf("dot %d off screen at (%v, %v)", i, d.X, d.Y)
		}
		if d.Sparkle != p.IsSparkle {
			t.Errorf("dot %d sparkle = %v, want %v", i, d.Sparkle, p.IsSparkle)
		}
		if d.Sparkle {
			sparkles++
			if d.Halo.A == 0 {
				t.Errorf("sparkle %d has no halo", i)
			}
		}
	}

	cam := camera.Fill(1000, 500)
	cam.SetZoom(4)
	if zoomed := len(r.Resolve(s, cam)); zoomed >= field.Len() {
		t.Errorf("zoomed view should cull particles, got %d of %d", zoomed, field.Len())
	}
}
