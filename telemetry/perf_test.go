package telemetry

import (
	"testing"
	"time"
)

func TestFrameCollector_BasicTiming(t *testing.T) {
	fc := NewFrameCollector(10)

	for i := 0; i < 5; i++ {
		fc.StartFrame()
		fc.StartPhase(PhaseUpdate)
		time.Sleep(100 * time.Microsecond)
		fc.StartPhase(PhaseDraw)
		time.Sleep(200 * time.Microsecond)
		fc.EndFrame()
	}

	stats := fc.Stats()
	if stats.Frames != 5 {
		t.Errorf("Frames = %d, want 5", stats.Frames)
	}
	if stats.Avg <= 0 {
		t.Error("expected positive average frame duration")
	}
	if stats.Min > stats.Max {
		t.Errorf("min %v > max %v", stats.Min, stats.Max)
	}
	if _, ok := stats.PhasePct[PhaseUpdate]; !ok {
		t.Error("expected update phase to be tracked")
	}
	if stats.PhasePct[PhaseDraw] <= stats.PhasePct[PhaseUpdate] {
		t.Errorf("draw (%v%%) should outweigh update (%v%%)", stats.PhasePct[PhaseDraw], stats.PhasePct[PhaseUpdate])
	}
}

func TestFrameCollector_RollingWindow(t *testing.T) {
	fc := NewFrameCollector(5)
	for i := 0; i < 12; i++ {
		fc.StartFrame()
		fc.StartPhase(PhaseApply)
		fc.EndFrame()
	}
	if got := fc.Stats().Frames; got != 5 {
		t.Errorf("Frames = %d, want window size 5", got)
	}
}

func TestFrameCollector_Empty(t *testing.T) {
	stats := NewFrameCollector(0).Stats()
	if stats.Avg != 0 || stats.Frames != 0 {
		t.Errorf("empty stats = %+v", stats)
	}
	if stats.PhasePct == nil {
		t.Error("expected non-nil PhasePct map")
	}
}
