package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestFill(t *testing.T) {
	cam := Fill(1280, 720)

	if cam.X != 640 || cam.Y != 360 {
		t.Errorf("expected camera at (640, 360), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}

	tests := []struct {
		left, top float32
		sx, sy    float32
	}{
		{0, 0, 0, 0},
		{50, 50, 640, 360},
		{100, 100, 1280, 720},
		{25, 75, 320, 540},
	}
	for _, tt := range tests {
		sx, sy := cam.PercentToScreen(tt.left, tt.top)
		if !near(sx, tt.sx) || !near(sy, tt.sy) {
			t.Errorf("PercentToScreen(%v, %v) = (%f, %f), want (%f, %f)", tt.left, tt.top, sx, sy, tt.sx, tt.sy)
		}
	}
}

func TestFitsLargerContainer(t *testing.T) {
	cam := New(800, 600, 1600, 900)

	// min(800/1600, 600/900) = 0.5
	if cam.Zoom != 0.5 || cam.MinZoom != 0.5 {
		t.Errorf("expected zoom 0.5, got zoom=%f min=%f", cam.Zoom, cam.MinZoom)
	}
	sx, _ := cam.PercentToScreen(0, 50)
	if !near(sx, 0) {
		t.Errorf("left edge should touch the screen edge, got x=%f", sx)
	}
}

func TestScreenToPercentRoundtrip(t *testing.T) {
	cam := New(1280, 720, 1280, 720)
	cam.SetZoom(2)
	cam.Pan(100, -40)

	testCases := []struct{ sx, sy float32 }{
		{640, 360},
		{100, 100},
		{1200, 600},
	}

	for _, tc := range testCases {
		left, top := cam.ScreenToPercent(tc.sx, tc.sy)
		sx, sy := cam.PercentToScreen(left, top)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, left, top, sx, sy)
		}
	}
}

func TestPanClamps(t *testing.T) {
	cam := Fill(1280, 720)

	cam.Pan(-5000, 5000)
	if cam.X != 0 || cam.Y != 720 {
		t.Errorf("expected camera clamped to (0, 720), got (%f, %f)", cam.X, cam.Y)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := Fill(1280, 720)

	cam.SetZoom(0.1)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MinZoom, cam.Zoom)
	}

	cam.ZoomBy(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MaxZoom, cam.Zoom)
	}

	if got := cam.Scale(3); got != 12 {
		t.Errorf("Scale(3) at max zoom = %f, want 12", got)
	}
}

func TestResize(t *testing.T) {
	cam := Fill(1280, 720)
	cam.Resize(640, 360)

	if cam.MinZoom != 0.5 {
		t.Errorf("expected min zoom 0.5, got %f", cam.MinZoom)
	}

	cam.ResizeContainer(640, 360)
	cam.Reset()
	if cam.Zoom != 1 || cam.X != 320 || cam.Y != 180 {
		t.Errorf("after container resize: zoom=%f at (%f, %f)", cam.Zoom, cam.X, cam.Y)
	}
}

func TestIsVisible(t *testing.T) {
	cam := Fill(100, 100)

	tests := []struct {
		sx, sy, r float32
		want      bool
	}{
		{50, 50, 1, true},
		{-2, 50, 3, true},
		{-5, 50, 3, false},
		{50, 104, 3, false},
	}
	for _, tt := range tests {
		if got := cam.IsVisible(tt.sx, tt.sy, tt.r); got != tt.want {
			t.Errorf("IsVisible(%v, %v, %v) = %v, want %v", tt.sx, tt.sy, tt.r, got, tt.want)
		}
	}
}
