// Package ui draws the preview window's overlay panels.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 12, G: 12, B: 20, A: 220},
		PanelBorder:    rl.Color{R: 60, G: 60, B: 80, A: 255},
		SectionHeader:  rl.Color{R: 255, G: 255, B: 255, A: 255},
		LabelColor:     rl.Color{R: 150, G: 150, B: 160, A: 255},
		ValueColor:     rl.Color{R: 220, G: 220, B: 225, A: 255},
		BarBg:          rl.Color{R: 40, G: 40, B: 50, A: 255},
		BarFill:        rl.Color{R: 200, G: 200, B: 255, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     90,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}

// WithAccent returns t with headers and bars in the given colour.
func (t Theme) WithAccent(c rl.Color) Theme {
	t.SectionHeader = c
	t.BarFill = c
	return t
}
