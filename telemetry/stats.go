// Package telemetry summarizes generated particle fields and writes them out
// for inspection and reproducible snapshot tests.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/glowfield/particles"
)

// FieldStats summarizes one generated field.
type FieldStats struct {
	Generation int    `csv:"generation"`
	Density    string `csv:"density"`
	Mobile     bool   `csv:"mobile"`
	Reduced    bool   `csv:"reduced_motion"`

	Count           int     `csv:"count"`
	SparkleCount    int     `csv:"sparkles"`
	SparkleFraction float64 `csv:"sparkle_fraction"`

	SizeMean float64 `csv:"size_mean"`
	SizeStd  float64 `csv:"size_std"`
	SizeP10  float64 `csv:"size_p10"`
	SizeP50  float64 `csv:"size_p50"`
	SizeP90  float64 `csv:"size_p90"`

	DelayMean float64 `csv:"delay_mean_ms"`

	// Fraction of the bins x bins grid holding at least one particle
	Coverage float64 `csv:"coverage"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeFieldStats summarizes field. bins sets the coverage grid resolution.
func ComputeFieldStats(field particles.ParticleField, bins int) FieldStats {
	st := FieldStats{
		Density: string(field.Density),
		Mobile:  field.MobileOptimized,
		Reduced: field.ReducedMotion,
		Count:   field.Len(),
	}
	if st.Count == 0 {
		return st
	}
	if bins < 1 {
		bins = 1
	}

	sizes := make([]float64, st.Count)
	delays := make([]float64, st.Count)
	occupied := make(map[int]struct{})
	for i := 0; i < st.Count; i++ {
		p := field.At(i)
		sizes[i] = p.Size
		delays[i] = p.AnimationDelayMs
		if p.IsSparkle {
			st.SparkleCount++
		}
		bx := int(p.LeftPercent / 100 * float64(bins))
		by := int(p.TopPercent / 100 * float64(bins))
		occupied[by*bins+bx] = struct{}{}
	}

	st.SparkleFraction = float64(st.SparkleCount) / float64(st.Count)
	st.SizeMean, st.SizeStd = stat.MeanStdDev(sizes, nil)
	if st.Count < 2 {
		st.SizeStd = 0
	}
	st.DelayMean = stat.Mean(delays, nil)

	sort.Float64s(sizes)
	st.SizeP10 = Percentile(sizes, 0.10)
	st.SizeP50 = Percentile(sizes, 0.50)
	st.SizeP90 = Percentile(sizes, 0.90)

	st.Coverage = float64(len(occupied)) / float64(bins*bins)
	return st
}

// LogValue implements slog.LogValuer.
func (s FieldStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.String("density", s.Density),
		slog.Bool("mobile", s.Mobile),
		slog.Bool("reduced_motion", s.Reduced),
		slog.Int("count", s.Count),
		slog.Int("sparkles", s.SparkleCount),
		slog.Float64("sparkle_fraction", s.SparkleFraction),
		slog.Float64("size_mean", s.SizeMean),
		slog.Float64("size_p50", s.SizeP50),
		slog.Float64("coverage", s.Coverage),
	)
}
