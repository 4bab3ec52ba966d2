package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one rendered frame.
const (
	PhaseApply  = "apply"  // viewport state -> shell
	PhaseUpdate = "update" // scene pose update
	PhaseDraw   = "draw"
)

var framePhases = []string{PhaseApply, PhaseUpdate, PhaseDraw}

// FrameSample holds timing data for a single frame.
type FrameSample struct {
	Duration time.Duration
	Phases   map[string]time.Duration
}

// FrameCollector tracks frame timing over a rolling window.
type FrameCollector struct {
	windowSize  int
	samples     []FrameSample
	writeIndex  int
	sampleCount int

	current    map[string]time.Duration
	frameStart time.Time
	phaseStart time.Time
	lastPhase  string
}

// NewFrameCollector creates a collector averaging over windowSize frames.
func NewFrameCollector(windowSize int) *FrameCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &FrameCollector{
		windowSize: windowSize,
		samples:    make([]FrameSample, windowSize),
		current:    make(map[string]time.Duration),
	}
}

// StartFrame begins timing a frame.
func (c *FrameCollector) StartFrame() {
	c.frameStart = time.Now()
	c.current = make(map[string]time.Duration)
	c.lastPhase = ""
}

// StartPhase ends the previous phase, if any, and starts timing phase.
func (c *FrameCollector) StartPhase(phase string) {
	now := time.Now()
	if c.lastPhase != "" {
		c.current[c.lastPhase] += now.Sub(c.phaseStart)
	}
	c.phaseStart = now
	c.lastPhase = phase
}

// EndFrame records the frame in the window.
func (c *FrameCollector) EndFrame() {
	now := time.Now()
	if c.lastPhase != "" {
		c.current[c.lastPhase] += now.Sub(c.phaseStart)
	}

	c.samples[c.writeIndex] = FrameSample{Duration: now.Sub(c.frameStart), Phases: c.current}
	c.writeIndex = (c.writeIndex + 1) % c.windowSize
	if c.sampleCount < c.windowSize {
		c.sampleCount++
	}
}

// FrameStats holds aggregated frame timing.
type FrameStats struct {
	Frames   int
	Avg      time.Duration
	Min      time.Duration
	Max      time.Duration
	PhasePct map[string]float64
}

// Stats aggregates the samples currently in the window.
func (c *FrameCollector) Stats() FrameStats {
	st := FrameStats{Frames: c.sampleCount, PhasePct: make(map[string]float64)}
	if c.sampleCount == 0 {
		return st
	}

	var total time.Duration
	phaseSum := make(map[string]time.Duration)
	for i := 0; i < c.sampleCount; i++ {
		s := c.samples[i]
		total += s.Duration
		if i == 0 || s.Duration < st.Min {
			st.Min = s.Duration
		}
		if s.Duration > st.Max {
			st.Max = s.Duration
		}
		for phase, d := range s.Phases {
			phaseSum[phase] += d
		}
	}

	st.Avg = total / time.Duration(c.sampleCount)
	if total > 0 {
		for phase, sum := range phaseSum {
			st.PhasePct[phase] = float64(sum) / float64(total) * 100
		}
	}
	return st
}

// LogValue implements slog.LogValuer.
func (s FrameStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("frames", s.Frames),
		slog.Int64("avg_us", s.Avg.Microseconds()),
		slog.Int64("min_us", s.Min.Microseconds()),
		slog.Int64("max_us", s.Max.Microseconds()),
	}
	for _, phase := range framePhases {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}
