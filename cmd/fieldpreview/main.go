// Density profile preview tool - interactive particle field with sliders.
//
// Usage: go run ./cmd/fieldpreview [-config path]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/glowfield/camera"
	"github.com/pthm-cable/glowfield/config"
	"github.com/pthm-cable/glowfield/particles"
	"github.com/pthm-cable/glowfield/renderer"
	"github.com/pthm-cable/glowfield/scene"
	"github.com/pthm-cable/glowfield/telemetry"
	"github.com/pthm-cable/glowfield/theme"
)

const (
	windowWidth   = 1100
	windowHeight  = 720
	previewWidth  = 640
	previewHeight = 400
	panelWidth    = windowWidth - previewWidth - 30
)

// PreviewParams holds everything the sliders control.
type PreviewParams struct {
	Tier          particles.Tier
	Profiles      map[particles.Tier]particles.DensityProfile
	Seed          int64
	Width         int
	ReducedMotion bool
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	initial := defaultParams(cfg)
	params := initial.clone()

	rl.InitWindow(windowWidth, windowHeight, "Glow Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	target := rl.LoadRenderTexture(previewWidth, previewHeight)
	defer rl.UnloadRenderTexture(target)

	palette := renderer.NewPalette(theme.FromConfig(cfg.Theme))
	background := renderer.NewBackgroundRenderer(previewWidth, previewHeight, palette)
	fieldDraw := renderer.NewFieldRenderer(palette)
	cam := camera.Fill(previewWidth, previewHeight)

	sc := scene.New(cfg.Derived.Speed)
	var stats telemetry.FieldStats
	breakpoint := cfg.Viewport.MobileBreakpoint

	needsRegen := true
	paused := false

	for !rl.WindowShouldClose() {
		if needsRegen {
			field := params.generate(breakpoint)
			sc.Load(field)
			stats = telemetry.ComputeFieldStats(field, cfg.Telemetry.CoverageBins)
			needsRegen = false
		}
		if !paused {
			sc.Update(float64(rl.GetFrameTime()) * 1000)
		}

		rl.BeginTextureMode(target)
		background.Draw()
		fieldDraw.Draw(sc, cam)
		rl.EndTextureMode()

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Render textures are stored upside down
		rl.DrawTexturePro(
			target.Texture,
			rl.Rectangle{X: 0, Y: 0, Width: previewWidth, Height: -previewHeight},
			rl.Rectangle{X: 10, Y: 10, Width: previewWidth, Height: previewHeight},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewWidth, previewHeight, rl.DarkGray)

		// Stats
		statsY := int32(previewHeight + 25)
		layout := "desktop"
		if sc.Field().MobileOptimized {
			layout = "mobile"
		}
		rl.DrawText(fmt.Sprintf("%s %s: %d particles, %d sparkle (%.0f%%)",
			params.Tier, layout, stats.Count, stats.SparkleCount, stats.SparkleFraction*100), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Size mean %.2f std %.2f  p10 %.2f  p90 %.2f",
			stats.SizeMean, stats.SizeStd, stats.SizeP10, stats.SizeP90), 15, statsY+20, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Coverage %.0f%%  Delay mean %.0f ms  Clock %.1f s",
			stats.Coverage*100, stats.DelayMean, sc.ClockMs()/1000), 15, statsY+40, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewWidth + 20)
		panelY := float32(10)

		rl.DrawText("Density Profiles", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		// Tier selector
		for i, tier := range particles.Tiers {
			label := string(tier)
			if tier == params.Tier {
				label = "> " + label + " <"
			}
			if gui.Button(rl.Rectangle{X: panelX + float32(i)*110, Y: panelY, Width: 100, Height: 28}, label) && tier != params.Tier {
				params.Tier = tier
				needsRegen = true
			}
		}
		panelY += 45

		profile := params.Profiles[params.Tier]

		rl.DrawText("Count", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		if v := slider(panelX, panelY, "0", "200", float32(profile.Count), 0, 200, "%.0f"); int(v) != profile.Count {
			profile.Count = int(v)
			needsRegen = true
		}
		panelY += 35

		rl.DrawText("Max size (px)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		if v := slider(panelX, panelY, "1", "10", float32(profile.MaxSize), 1, 10, "%.1f"); float64(v) != profile.MaxSize {
			profile.MaxSize = float64(v)
			needsRegen = true
		}
		panelY += 35

		rl.DrawText("Animation duration (ms)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		if v := slider(panelX, panelY, "500", "8000", float32(profile.AnimationDurationMs), 500, 8000, "%.0f"); int(v) != profile.AnimationDurationMs {
			profile.AnimationDurationMs = int(v)
			needsRegen = true
		}
		panelY += 35

		rl.DrawText("Sparkle frequency", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		if v := slider(panelX, panelY, "0", "1", float32(profile.SparkleFrequency), 0, 1, "%.2f"); float64(v) != profile.SparkleFrequency {
			profile.SparkleFrequency = float64(v)
			needsRegen = true
		}
		panelY += 35

		params.Profiles[params.Tier] = profile

		rl.DrawText("Viewport width (px)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		if v := slider(panelX, panelY, "320", "1920", float32(params.Width), 320, 1920, "%.0f"); int(v) != params.Width {
			params.Width = int(v)
			needsRegen = true
		}
		panelY += 35

		rl.DrawText("Seed", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		if v := slider(panelX, panelY, "0", "9999", float32(params.Seed), 0, 9999, "%.0f"); int64(v) != params.Seed {
			params.Seed = int64(v)
			needsRegen = true
		}
		panelY += 45

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 130, Height: 30}, toggleText(params.ReducedMotion, "Motion: reduced", "Motion: full")) {
			params.ReducedMotion = !params.ReducedMotion
			sc.Load(sc.Field().WithReducedMotion(params.ReducedMotion))
		}
		if gui.Button(rl.Rectangle{X: panelX + 140, Y: panelY, Width: 120, Height: 30}, toggleText(paused, "Resume", "Pause")) {
			paused = !paused
		}
		panelY += 40

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 130, Height: 30}, "Random Seed") {
			params.Seed = int64(rl.GetRandomValue(0, 9999))
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 140, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = initial.clone()
			needsRegen = true
		}
		panelY += 50

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		text, err := params.densityYAML()
		if err != nil {
			text = err.Error()
		}
		for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
			rl.DrawText(line, int32(panelX), int32(panelY), 12, rl.Gray)
			panelY += 14
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) && err == nil {
			rl.SetClipboardText(text)
		}

		rl.EndDrawing()
	}
}

// slider draws a labelled slider bar and returns its value.
func slider(x, y float32, minLabel, maxLabel string, value, min, max float32, format string) float32 {
	v := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: float32(panelWidth - 80), Height: 20},
		minLabel, maxLabel,
		value, min, max,
	)
	rl.DrawText(fmt.Sprintf(format, v), int32(x+float32(panelWidth-70)), int32(y+2), 16, rl.DarkGray)
	return v
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

func defaultParams(cfg *config.Config) PreviewParams {
	p := PreviewParams{
		Tier:     cfg.Derived.Density,
		Profiles: make(map[particles.Tier]particles.DensityProfile),
		Seed:     cfg.Field.Seed,
		Width:    cfg.Viewport.DefaultWidth,
	}
	for _, tier := range particles.Tiers {
		p.Profiles[tier] = cfg.Derived.Profiles.MustGet(tier)
	}
	return p
}

func (p PreviewParams) clone() PreviewParams {
	c := p
	c.Profiles = make(map[particles.Tier]particles.DensityProfile, len(p.Profiles))
	for k, v := range p.Profiles {
		c.Profiles[k] = v
	}
	return c
}

// generate builds the field for the current parameters.
func (p PreviewParams) generate(breakpoint int) particles.ParticleField {
	cfg := particles.FieldConfig{
		Density:       p.Tier,
		IsMobile:      p.Width <= breakpoint,
		ReducedMotion: p.ReducedMotion,
	}
	return particles.Generate(cfg, p.Profiles[p.Tier], particles.NewSineSource(p.Seed))
}

// densityYAML renders the profile table in the config file's layout.
func (p PreviewParams) densityYAML() (string, error) {
	table := make(map[string]particles.DensityProfile, len(p.Profiles))
	for tier, profile := range p.Profiles {
		table[string(tier)] = profile
	}
	out, err := yaml.Marshal(map[string]any{"density": table})
	if err != nil {
		return "", fmt.Errorf("marshal density table: %w", err)
	}
	return string(out), nil
}
