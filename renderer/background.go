package renderer

import rl "github.com/gen2brain/raylib-go/raylib"

// BackgroundRenderer fills the screen with a soft vertical gradient from the
// surface colour down to the page background.
type BackgroundRenderer struct {
	screenW, screenH int32
	top, bottom      rl.Color
}

// NewBackgroundRenderer creates a new background renderer.
func NewBackgroundRenderer(screenW, screenH int32, p Palette) *BackgroundRenderer {
	b := &BackgroundRenderer{screenW: screenW, screenH: screenH}
	b.SetPalette(p)
	return b
}

// SetPalette updates the gradient colours.
func (b *BackgroundRenderer) SetPalette(p Palette) {
	b.top = p.Surface
	b.bottom = p.Background
}

// Resize updates the screen dimensions.
func (b *BackgroundRenderer) Resize(screenW, screenH int32) {
	b.screenW = screenW
	b.screenH = screenH
}

// Draw clears the frame and paints the gradient.
func (b *BackgroundRenderer) Draw() {
	rl.ClearBackground(b.bottom)
	rl.DrawRectangleGradientV(0, 0, b.screenW, b.screenH, b.top, b.bottom)
}
