package ui

import "strings"

// KeyBinding describes one keyboard control.
type KeyBinding struct {
	Key    string
	Action string
}

// DefaultBindings are the preview window's controls.
var DefaultBindings = []KeyBinding{
	{"1-3", "density"},
	{"M", "motion"},
	{"S", "speed"},
	{"G", "glow colour"},
	{"T", "dark/light"},
	{"P", "snapshot"},
	{"I", "stats"},
	{"Space", "pause"},
	{"Arrows/Wheel", "pan/zoom"},
	{"Home", "reset view"},
}

// Legend joins bindings into a single line.
func Legend(bindings []KeyBinding) string {
	parts := make([]string, len(bindings))
	for i, b := range bindings {
		parts[i] = "[" + b.Key + "] " + b.Action
	}
	return strings.Join(parts, "  ")
}
