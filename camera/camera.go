// Package camera maps a particle container onto the screen with pan and zoom.
package camera

// Camera controls the viewport onto the particle container. Particle
// positions are percentages of the container; the container is a
// ContainerW x ContainerH rectangle in px.
type Camera struct {
	// Position is the camera center in container px
	X, Y float32

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Container dimensions
	ContainerW, ContainerH float32

	MinZoom, MaxZoom float32
}

// New creates a camera centered on the container with 1:1 zoom.
func New(viewportW, viewportH, containerW, containerH float32) *Camera {
	c := &Camera{
		ViewportW:  viewportW,
		ViewportH:  viewportH,
		ContainerW: containerW,
		ContainerH: containerH,
		MaxZoom:    4.0,
	}
	c.MinZoom = c.fitZoom()
	c.Reset()
	return c
}

// Fill creates a camera whose container is exactly the viewport.
func Fill(viewportW, viewportH float32) *Camera {
	return New(viewportW, viewportH, viewportW, viewportH)
}

// PercentToScreen converts a container position in percent to screen px.
func (c *Camera) PercentToScreen(left, top float32) (sx, sy float32) {
	return c.ContainerToScreen(left/100*c.ContainerW, top/100*c.ContainerH)
}

// ContainerToScreen converts container px to screen px.
func (c *Camera) ContainerToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 + (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToPercent converts screen px to a container position in percent.
func (c *Camera) ScreenToPercent(sx, sy float32) (left, top float32) {
	wx := c.X + (sx-c.ViewportW/2)/c.Zoom
	wy := c.Y + (sy-c.ViewportH/2)/c.Zoom
	return wx / c.ContainerW * 100, wy / c.ContainerH * 100
}

// Scale converts a length in container px to screen px.
func (c *Camera) Scale(length float32) float32 {
	return length * c.Zoom
}

// IsVisible reports whether a circle of the given screen radius centered at
// (sx, sy) overlaps the viewport.
func (c *Camera) IsVisible(sx, sy, radius float32) bool {
	return sx+radius >= 0 && sx-radius <= c.ViewportW &&
		sy+radius >= 0 && sy-radius <= c.ViewportH
}

// Resize updates viewport dimensions and recalculates zoom constraints.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.MinZoom = c.fitZoom()
	if c.Zoom < c.MinZoom {
		c.Zoom = c.MinZoom
	}
	c.clampPosition()
}

// ResizeContainer changes the container dimensions, keeping the camera on
// the same relative position.
func (c *Camera) ResizeContainer(containerW, containerH float32) {
	if c.ContainerW > 0 && c.ContainerH > 0 {
		c.X = c.X / c.ContainerW * containerW
		c.Y = c.Y / c.ContainerH * containerH
	}
	c.ContainerW = containerW
	c.ContainerH = containerH
	c.MinZoom = c.fitZoom()
	if c.Zoom < c.MinZoom {
		c.Zoom = c.MinZoom
	}
	c.clampPosition()
}

// Pan moves the camera by the given delta in screen pixels. The camera center
// stays inside the container.
func (c *Camera) Pan(dx, dy float32) {
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom
	c.clampPosition()
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset centers the camera and picks the zoom at which the whole container
// fits the viewport.
func (c *Camera) Reset() {
	c.X = c.ContainerW / 2
	c.Y = c.ContainerH / 2
	c.Zoom = clamp(c.fitZoom(), c.MinZoom, c.MaxZoom)
}

// fitZoom is the largest zoom at which the whole container is visible.
func (c *Camera) fitZoom() float32 {
	if c.ContainerW <= 0 || c.ContainerH <= 0 {
		return 1
	}
	zx := c.ViewportW / c.ContainerW
	zy := c.ViewportH / c.ContainerH
	if zy < zx {
		return zy
	}
	return zx
}

func (c *Camera) clampPosition() {
	c.X = clamp(c.X, 0, c.ContainerW)
	c.Y = clamp(c.Y, 0, c.ContainerH)
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
