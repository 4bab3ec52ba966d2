package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pthm-cable/glowfield/particles"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds a generated field together with everything needed to
// regenerate it.
type Snapshot struct {
	Version int   `json:"version"`
	Seed    int64 `json:"seed"`

	Density         particles.Tier           `json:"density"`
	Profile         particles.DensityProfile `json:"profile"`
	MobileOptimized bool                     `json:"mobile_optimized"`
	ReducedMotion   bool                     `json:"reduced_motion"`

	Particles []particles.Particle `json:"particles"`
}

// NewSnapshot captures field, generated from seed.
func NewSnapshot(field particles.ParticleField, seed int64) *Snapshot {
	return &Snapshot{
		Version:         SnapshotVersion,
		Seed:            seed,
		Density:         field.Density,
		Profile:         field.Profile,
		MobileOptimized: field.MobileOptimized,
		ReducedMotion:   field.ReducedMotion,
		Particles:       field.Particles(),
	}
}

// Field rebuilds the particle field held by the snapshot.
func (s *Snapshot) Field() particles.ParticleField {
	cfg := particles.FieldConfig{
		Density:       s.Density,
		IsMobile:      s.MobileOptimized,
		ReducedMotion: s.ReducedMotion,
	}
	return particles.NewParticleField(cfg, s.Profile, s.Particles)
}

// SnapshotName is the file name used for a snapshot.
func (s *Snapshot) SnapshotName() string {
	view := "desktop"
	if s.MobileOptimized {
		view = "mobile"
	}
	return fmt.Sprintf("field_%s_%s_seed%d.json", s.Density, view, s.Seed)
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	path := filepath.Join(dir, snapshot.SnapshotName())

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}

	return &snapshot, nil
}
