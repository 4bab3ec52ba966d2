package term

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/glowfield/components"
	"github.com/pthm-cable/glowfield/particles"
	"github.com/pthm-cable/glowfield/scene"
	"github.com/pthm-cable/glowfield/theme"
)

func newScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen.Init: %v", err)
	}
	screen.SetSize(cols, rows)
	t.Cleanup(screen.Fini)
	return screen
}

func TestGlyph(t *testing.T) {
	tests := []struct {
		name string
		body components.Body
		tw   components.Twinkle
		want rune
	}{
		{"sparkle wins", components.Body{Size: 4}, components.Twinkle{Sparkle: true}, GlyphSparkle},
		{"large", components.Body{Size: 3.5}, components.Twinkle{}, GlyphLarge},
		{"small", components.Body{Size: 1.2}, components.Twinkle{}, GlyphSmall},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Glyph(tt.body, tt.tw); got != tt.want {
				t.Errorf("Glyph = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCell(t *testing.T) {
	tests := []struct {
		a    components.Anchor
		x, y int
	}{
		{components.Anchor{Left: 0, Top: 0}, 0, 0},
		{components.Anchor{Left: 50, Top: 50}, 40, 12},
		{components.Anchor{Left: 99.99, Top: 99.99}, 79, 23},
		{components.Anchor{Left: 100, Top: 100}, 79, 23},
	}
	for _, tt := range tests {
		x, y := Cell(tt.a, 80, 24)
		if x != tt.x || y != tt.y {
			t.Errorf("Cell(%+v) = (%d, %d), want (%d, %d)", tt.a, x, y, tt.x, tt.y)
		}
	}
}

func TestDrawPaintsParticles(t *testing.T) {
	screen := newScreen(t, 80, 25)
	painter := NewPainter(screen, theme.Default)

	field := particles.Generate(particles.FieldConfig{Density: particles.Low},
		particles.DefaultProfiles().MustGet(particles.Low), particles.NewSineSource(9))
	s := scene.New(particles.NormalPace)
	s.Load(field)
	s.Update(0)

	painter.Draw(s)
	painter.Status("low desktop")

	want := make(map[[2]int]rune)
	s.Each(func(a components.Anchor, b components.Body, tw components.Twinkle) {
		x, y := Cell(a, 80, 24)
		want[[2]int{x, y}] = Glyph(b, tw)
	})

	for cell, glyph := range want {
		got, _, _, _ := screen.GetContent(cell[0], cell[1])
		if got != glyph {
			t.Errorf("cell %v = %q, want %q", cell, got, glyph)
		}
	}

	var status strings.Builder
	for x := 0; x < len("low desktop"); x++ {
		r, _, _, _ := screen.GetContent(x, 24)
		status.WriteRune(r)
	}
	if status.String() != "low desktop" {
		t.Errorf("status line = %q", status.String())
	}
}

func TestWidthPx(t *testing.T) {
	screen := newScreen(t, 90, 30)
	painter := NewPainter(screen, theme.Default)

	// 90 columns at 8px is 720px, under the 768px breakpoint
	if got := painter.WidthPx(8); got != 720 {
		t.Errorf("WidthPx(8) = %d, want 720", got)
	}
}
