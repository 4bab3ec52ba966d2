package telemetry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pthm-cable/glowfield/particles"
)

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()

	profile := particles.DefaultProfiles().MustGet(particles.High)
	cfg := particles.FieldConfig{Density: particles.High, IsMobile: true, ReducedMotion: true}
	field := particles.Generate(cfg, profile, particles.NewSineSource(42))

	path, err := SaveSnapshot(NewSnapshot(field, 42), tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Snapshot file not created at %s", path)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if loaded.Seed != 42 {
		t.Errorf("Seed mismatch: got %d, want 42", loaded.Seed)
	}

	// The snapshot must be bit-identical to a fresh generation from the same seed.
	regenerated := particles.Generate(loaded.Field().Config(), loaded.Profile, particles.NewSineSource(loaded.Seed))
	if diff := cmp.Diff(regenerated.Particles(), loaded.Field().Particles()); diff != "" {
		t.Errorf("snapshot differs from regenerated field (-regen +snapshot):\n%s", diff)
	}
	if diff := cmp.Diff(field.Config(), loaded.Field().Config()); diff != "" {
		t.Errorf("config mismatch:\n%s", diff)
	}
}

func TestSnapshotFilename(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		snapshot *Snapshot
		want     string
	}{
		{&Snapshot{Version: SnapshotVersion, Seed: 7, Density: particles.Low}, "field_low_desktop_seed7.json"},
		{&Snapshot{Version: SnapshotVersion, Seed: 0, Density: particles.Medium, MobileOptimized: true}, "field_medium_mobile_seed0.json"},
	}

	for _, tt := range tests {
		path, err := SaveSnapshot(tt.snapshot, tmpDir)
		if err != nil {
			t.Fatalf("SaveSnapshot failed: %v", err)
		}
		if want := filepath.Join(tmpDir, tt.want); path != want {
			t.Errorf("Path mismatch: got %s, want %s", path, want)
		}
	}
}

func TestLoadSnapshotRejectsVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	if err := os.WriteFile(path, []byte(`{"version": 99}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnapshot(path); err == nil {
		t.Error("expected version error")
	}
}
