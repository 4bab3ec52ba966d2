package game

import (
	"log/slog"

	"github.com/pthm-cable/glowfield/particles"
	"github.com/pthm-cable/glowfield/telemetry"
)

// recordField summarizes a replacement field, logs it and appends it to the
// CSV output when enabled.
func (g *Game) recordField(field particles.ParticleField) {
	g.telemetryMu.Lock()
	defer g.telemetryMu.Unlock()

	stats, err := g.outputManager.WriteField(field, g.cfg.Telemetry.CoverageBins)
	if err != nil {
		g.logger.Error("failed to write field telemetry", "error", err)
	}
	if stats.Generation == 0 {
		stats.Generation = g.shell.Generations()
	}
	g.fieldStats = stats
	g.logger.Info("field", "stats", stats)
}

// logPerf logs frame timing every perfLogInterval frames.
func (g *Game) logPerf() {
	g.frames++
	if g.frames%perfLogInterval != 0 {
		return
	}
	g.logger.Info("frame", slog.Any("perf", g.perf.Stats()))
}

// saveSnapshot writes the current field to the snapshot directory.
func (g *Game) saveSnapshot() (string, error) {
	dir := g.snapshotDir
	if dir == "" {
		dir = "snapshots"
	}
	path, err := telemetry.SaveSnapshot(telemetry.NewSnapshot(g.scene.Field(), g.seed), dir)
	if err != nil {
		g.logger.Error("failed to save snapshot", "error", err)
		return "", err
	}
	g.logger.Info("snapshot saved", "path", path)
	return path, nil
}

// RunHeadless generates the field for the configured state, records it and
// saves a snapshot when a snapshot directory was given.
func (g *Game) RunHeadless() (telemetry.FieldStats, error) {
	stats := g.FieldStats()
	if g.snapshotDir != "" {
		if _, err := g.saveSnapshot(); err != nil {
			return stats, err
		}
	}
	return stats, nil
}
