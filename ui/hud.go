package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/glowfield/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Density       string
	Mobile        bool
	ReducedMotion bool
	Speed         string
	Count         int
	Generation    int
	WidthPx       int
	FPS           int32
	Paused        bool
	Dark          bool
}

// Lines formats the HUD text, one entry per line.
func (d HUDData) Lines() []string {
	layout := "desktop"
	if d.Mobile {
		layout = "mobile"
	}
	motion := "animated"
	if d.ReducedMotion {
		motion = "reduced motion"
	}
	mode := "dark"
	if !d.Dark {
		mode = "light"
	}
	status := "running"
	if d.Paused {
		status = "PAUSED"
	}
	return []string{
		fmt.Sprintf("%s density | %s (%dpx) | %d particles", d.Density, layout, d.WidthPx, d.Count),
		fmt.Sprintf("%s | speed %s | %s | gen %d", motion, d.Speed, mode, d.Generation),
		fmt.Sprintf("FPS: %d | %s", d.FPS, status),
	}
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// SetTheme changes the HUD styling.
func (h *HUD) SetTheme(t Theme) {
	h.renderer.Theme = t
}

// Draw renders the HUD in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	y := int32(10)
	for i, line := range data.Lines() {
		color := h.renderer.Theme.LabelColor
		if i == 0 {
			color = h.renderer.Theme.ValueColor
		}
		rl.DrawText(line, 10, y, 16, color)
		y += 20
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, h.renderer.Theme.LabelColor)
}

// StatsPanel renders field statistics and frame timing.
type StatsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewStatsPanel creates a new stats panel.
func NewStatsPanel(x, y, width int32) *StatsPanel {
	return &StatsPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (p *StatsPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// SetTheme changes the panel styling.
func (p *StatsPanel) SetTheme(t Theme) {
	p.renderer.Theme = t
}

// Draw renders the panel.
func (p *StatsPanel) Draw(field telemetry.FieldStats, frame telemetry.FrameStats) {
	r := p.renderer
	pad := r.Theme.Padding
	height := 12*r.Theme.LineHeight + pad*2
	r.DrawPanel(p.x, p.y, p.width, height)

	x := p.x + pad
	inner := p.width - pad*2
	y := r.DrawSectionHeader(x, p.y+pad, "Field")
	y = r.DrawLabelValue(x, y, "particles", fmt.Sprintf("%d (%d sparkle)", field.Count, field.SparkleCount))
	y = r.DrawBar(x, y, "sparkle", float32(field.SparkleFraction), inner)
	y = r.DrawLabelValue(x, y, "size", fmt.Sprintf("%.2f ± %.2f px", field.SizeMean, field.SizeStd))
	y = r.DrawLabelValue(x, y, "size p10/90", fmt.Sprintf("%.2f / %.2f", field.SizeP10, field.SizeP90))
	y = r.DrawLabelValue(x, y, "delay mean", fmt.Sprintf("%.0f ms", field.DelayMean))
	y = r.DrawBar(x, y, "coverage", float32(field.Coverage), inner)

	y = r.DrawSectionHeader(x, y+4, "Frame")
	y = r.DrawLabelValue(x, y, "avg", frame.Avg.Round(time.Microsecond).String())
	r.DrawLabelValue(x, y, "max", frame.Max.Round(time.Microsecond).String())
}
