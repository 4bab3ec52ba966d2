// Package term paints the glow field onto a terminal with tcell.
package term

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/glowfield/components"
	"github.com/pthm-cable/glowfield/scene"
	"github.com/pthm-cable/glowfield/theme"
)

// Glyphs used for particles.
const (
	GlyphSparkle = '*'
	GlyphSmall   = '·'
	GlyphLarge   = '•'
)

// largeSize is the diameter in px from which a particle is drawn as GlyphLarge.
const largeSize = 3.0

// Painter draws a scene into a tcell screen, one particle per cell. The bottom
// row is reserved for the status line.
type Painter struct {
	screen tcell.Screen

	background colorful.Color
	particle   colorful.Color
	glow       colorful.Color
	text       colorful.Color
}

// NewPainter creates a painter using the given theme.
func NewPainter(screen tcell.Screen, th theme.Theme) *Painter {
	p := &Painter{screen: screen}
	p.SetTheme(th)
	return p
}

// SetTheme changes the colours. Unparseable colours fall back to the default theme.
func (p *Painter) SetTheme(th theme.Theme) {
	p.background = parse(th.BackgroundColor, theme.Default.BackgroundColor)
	p.particle = parse(th.ParticleColor, theme.Default.ParticleColor)
	p.glow = parse(th.GlowColor, theme.Default.GlowColor)
	p.text = parse(th.SecondaryText, theme.Default.SecondaryText)
}

// WidthPx converts the terminal width to the px width used for the mobile
// breakpoint.
func (p *Painter) WidthPx(cellWidthPx int) int {
	cols, _ := p.screen.Size()
	return cols * cellWidthPx
}

// Glyph picks the rune for a particle.
func Glyph(b components.Body, tw components.Twinkle) rune {
	switch {
	case tw.Sparkle:
		return GlyphSparkle
	case b.Size >= largeSize:
		return GlyphLarge
	default:
		return GlyphSmall
	}
}

// Cell maps a container position in percent to a cell in a cols x rows grid.
func Cell(a components.Anchor, cols, rows int) (x, y int) {
	x = int(a.Left / 100 * float32(cols))
	y = int(a.Top / 100 * float32(rows))
	if x >= cols {
		x = cols - 1
	}
	if y >= rows {
		y = rows - 1
	}
	return x, y
}

// Draw clears the screen and paints every particle. Later particles win a
// shared cell. It does not call Show.
func (p *Painter) Draw(s *scene.Scene) {
	cols, rows := p.screen.Size()
	rows-- // status line
	bg := p.style(p.background, p.background)
	p.screen.Fill(' ', bg)
	if cols <= 0 || rows <= 0 {
		return
	}

	s.Each(func(a components.Anchor, b components.Body, tw components.Twinkle) {
		x, y := Cell(a, cols, rows)
		fg := p.particle
		if tw.Sparkle {
			fg = p.glow
		}
		fg = p.background.BlendRgb(fg, tw.Pose.Opacity).Clamped()
		p.screen.SetContent(x, y, Glyph(b, tw), nil, p.style(fg, p.background))
	})
}

// Status writes text on the bottom row, truncated to the screen width.
func (p *Painter) Status(text string) {
	cols, rows := p.screen.Size()
	if rows <= 0 {
		return
	}
	style := p.style(p.text, p.background)
	x := 0
	for _, r := range text {
		if x >= cols {
			break
		}
		p.screen.SetContent(x, rows-1, r, nil, style)
		x++
	}
}

func (p *Painter) style(fg, bg colorful.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(toTcell(fg)).Background(toTcell(bg))
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func parse(hex, fallback string) colorful.Color {
	if c, err := colorful.Hex(hex); err == nil {
		return c
	}
	c, _ := colorful.Hex(fallback)
	return c
}
