package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/glowfield/particles"
	"github.com/pthm-cable/glowfield/theme"
)

// glowCycle is the sequence the G key steps the glow colour through.
var glowCycle = []string{"#ffffff", "#a78bfa", "#60a5fa", "#f472b6", "#facc15"}

var speedCycle = []particles.AnimationSpeed{particles.Slow, particles.NormalPace, particles.Fast}

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyI) {
		g.showStats = !g.showStats
	}

	// Density tiers
	for key, tier := range map[int32]particles.Tier{
		rl.KeyOne:   particles.Low,
		rl.KeyTwo:   particles.Medium,
		rl.KeyThree: particles.High,
	} {
		if rl.IsKeyPressed(key) && g.state.Density != tier {
			st := g.state
			st.Density = tier
			g.Submit(st)
		}
	}

	if rl.IsKeyPressed(rl.KeyM) {
		st := g.state
		st.ReducedMotion = !st.ReducedMotion
		g.Submit(st)
	}

	if rl.IsKeyPressed(rl.KeyS) {
		g.speed = nextSpeed(g.speed)
		g.scene.SetSpeed(g.speed)
	}

	if rl.IsKeyPressed(rl.KeyG) {
		g.glowIndex = (g.glowIndex + 1) % len(glowCycle)
		if _, err := g.store.Set(theme.Partial{GlowColor: theme.String(glowCycle[g.glowIndex])}); err != nil {
			g.logger.Warn("glow colour not saved", "error", err)
		}
		g.applyPalette()
	}

	if rl.IsKeyPressed(rl.KeyT) {
		g.store.ToggleDark()
		g.applyPalette()
	}

	if rl.IsKeyPressed(rl.KeyP) {
		g.saveSnapshot()
	}

	g.handleCameraInput()
	g.handleHover()
}

func nextSpeed(s particles.AnimationSpeed) particles.AnimationSpeed {
	for i, v := range speedCycle {
		if v == s {
			return speedCycle[(i+1)%len(speedCycle)]
		}
	}
	return particles.NormalPace
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.camera.Resize(w, h)
	g.camera.ResizeContainer(w, h)
	g.background.Resize(int32(w), int32(h))
	g.stats.SetPosition(int32(w)-250, 10)

	if g.forcedW <= 0 {
		st := g.state
		st.Width = int(w)
		g.Submit(st)
	}
}

// handleCameraInput processes camera pan/zoom controls.
func (g *Game) handleCameraInput() {
	panSpeed := float32(8.0) / g.camera.Zoom

	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, -panSpeed)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.camera.ZoomBy(1 + wheel*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}

// handleHover drives the title glow from the mouse position.
func (g *Game) handleHover() {
	if rl.CheckCollisionPointRec(rl.GetMousePosition(), g.titleBounds) {
		g.title.Enter()
	} else {
		g.title.Leave()
	}
}
