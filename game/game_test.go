package game

import (
	"bytes"
	"log/slog"
	"os"
	"strings"
	"path/filepath"
	"testing"
	"time"

	"github.com/pthm-cable/glowfield/config"
	"github.com/pthm-cable/glowfield/particles"
	"github.com/pthm-cable/glowfield/telemetry"
)

func loadConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	return cfg
}

func TestHeadlessRun(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	snapDir := filepath.Join(dir, "snap")

	g, err := NewGame(loadConfig(t), Options{
		Seed:        11,
		Headless:    true,
		OutputDir:   outDir,
		SnapshotDir: snapDir,
	})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}

	stats, err := g.RunHeadless()
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	g.Unload()

	// default config: medium density at the 1280px default width
	if stats.Count != 50 || stats.Mobile || stats.Generation != 1 {
		t.Errorf("stats = %+v, want 50 desktop particles in generation 1", stats)
	}
	if g.Scene().Len() != 50 {
		t.Errorf("scene holds %d particles, want 50", g.Scene().Len())
	}

	for _, name := range []string{"fields.csv", "particles.csv", "config.yaml"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}

	snap, err := telemetry.LoadSnapshot(filepath.Join(snapDir, "field_medium_desktop_seed11.json"))
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(snap.Particles) != 50 {
		t.Errorf("snapshot holds %d particles, want 50", len(snap.Particles))
	}
}

func TestSubmitRegeneratesAfterFlush(t *testing.T) {
	cfg := loadConfig(t)
	cfg.Derived.CoalesceWindow = time.Hour
	g, err := NewGame(cfg, Options{Headless: true})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	defer g.Unload()

	st := g.State()
	st.Width = 600
	g.Submit(st)

	// still the desktop field until the coalescer fires
	g.drainField()
	if g.Scene().Len() != 50 {
		t.Fatalf("field replaced before the quiet window: Len=%d", g.Scene().Len())
	}

	g.coalescer.Flush()
	g.drainField()
	if g.Scene().Len() != 30 || !g.Scene().Field().MobileOptimized {
		t.Errorf("after flush: Len=%d mobile=%v, want 30 mobile", g.Scene().Len(), g.Scene().Field().MobileOptimized)
	}
	if got := g.FieldStats().Generation; got != 2 {
		t.Errorf("generation = %d, want 2", got)
	}
}

func TestReducedMotionOption(t *testing.T) {
	g, err := NewGame(loadConfig(t), Options{Headless: true, ReducedMotion: true, Width: 400})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	defer g.Unload()

	f := g.Scene().Field()
	if !f.ReducedMotion || !f.MobileOptimized || f.Len() != 30 {
		t.Errorf("field = reduced %v mobile %v len %d, want reduced mobile 30", f.ReducedMotion, f.MobileOptimized, f.Len())
	}
}

func TestSourceFactory(t *testing.T) {
	det := sourceFactory(config.FieldConfig{Deterministic: true}, 5)
	if a, b := det().Next(), det().Next(); a != b {
		t.Errorf("deterministic sources differ: %v vs %v", a, b)
	}

	shared := sourceFactory(config.FieldConfig{Deterministic: false}, 5)
	ref := particles.NewUniformSource(5)
	first, second := shared().Next(), shared().Next()
	if want := ref.Next(); first != want {
		t.Errorf("first draw = %v, want %v", first, want)
	}
	if want := ref.Next(); second != want {
		t.Errorf("second draw = %v, want %v (stream should continue)", second, want)
	}
}

func TestNextSpeed(t *testing.T) {
	tests := []struct {
		in, want particles.AnimationSpeed
	}{
		{particles.Slow, particles.NormalPace},
		{particles.NormalPace, particles.Fast},
		{particles.Fast, particles.Slow},
		{"", particles.NormalPace},
	}
	for _, tt := range tests {
		if got := nextSpeed(tt.in); got != tt.want {
			t.Errorf("nextSpeed(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRecordAfterUnloadIsDropped(t *testing.T) {
	outDir := t.TempDir()
	var logs bytes.Buffer
	g, err := NewGame(loadConfig(t), Options{
		Headless:  true,
		OutputDir: outDir,
		Logger:    slog.New(slog.NewJSONHandler(&logs, nil)),
	})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	g.Unload()

	// a coalescer flush that was already running when Unload stopped it
	late := g.Scene().Field()
	g.onField(late)

	if strings.Contains(logs.String(), "failed to write field telemetry") {
		t.Errorf("late field was written to closed outputs:\n%s", logs.String())
	}
	if !strings.Contains(logs.String(), "outputs closed") {
		t.Errorf("Unload did not close outputs:\n%s", logs.String())
	}

	data, err := os.ReadFile(filepath.Join(outDir, "fields.csv"))
	if err != nil {
		t.Fatal(err)
	}
	// header plus the first generation only
	if lines := strings.Count(string(data), "\n"); lines != 2 {
		t.Errorf("fields.csv has %d lines, want 2:\n%s", lines, data)
	}

	g.Unload() // second call is a no-op
}
