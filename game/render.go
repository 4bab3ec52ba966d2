package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/glowfield/renderer"
	"github.com/pthm-cable/glowfield/telemetry"
	"github.com/pthm-cable/glowfield/ui"
)

const titleFontSize = 48

// Draw renders the frame and closes the frame timing started by Update.
func (g *Game) Draw() {
	g.perf.StartPhase(telemetry.PhaseDraw)

	rl.BeginDrawing()
	g.background.Draw()
	g.fieldDraw.Draw(g.scene, g.camera)
	g.drawTitle()
	g.drawUI()
	rl.EndDrawing()

	g.perf.EndFrame()
	g.logPerf()
}

// drawTitle draws the glowing page title centered in the window.
func (g *Game) drawTitle() {
	title := g.cfg.Screen.Title
	cx := int32(g.screenWidth / 2)
	y := int32(g.screenHeight/2) - titleFontSize/2
	w := rl.MeasureText(title, titleFontSize)

	g.titleBounds = rl.Rectangle{X: float32(cx - w/2), Y: float32(y), Width: float32(w), Height: titleFontSize}
	renderer.GlowTextCentered(title, cx, y, titleFontSize, g.palette.Text, g.title.Style())
}

// drawUI draws the HUD and stats panel.
func (g *Game) drawUI() {
	field := g.scene.Field()
	g.hud.Draw(ui.HUDData{
		Density:       string(field.Density),
		Mobile:        field.MobileOptimized,
		ReducedMotion: field.ReducedMotion,
		Speed:         string(g.speed),
		Count:         field.Len(),
		Generation:    g.shell.Generations(),
		WidthPx:       g.state.Width,
		FPS:           rl.GetFPS(),
		Paused:        g.paused,
		Dark:          g.store.IsDark(),
	})
	g.hud.DrawControls(int32(g.screenHeight), ui.Legend(ui.DefaultBindings))

	if g.showStats {
		g.stats.Draw(g.FieldStats(), g.perf.Stats())
	}
}
