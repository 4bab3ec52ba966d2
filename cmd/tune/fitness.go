package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/glowfield/particles"
	"github.com/pthm-cable/glowfield/telemetry"
)

// Targets are the field statistics a tuned profile should produce on a
// desktop layout.
type Targets struct {
	Coverage        float64 // fraction of occupied grid cells
	SparkleFraction float64
	SizeMean        float64 // px
}

// FitnessEvaluator generates fields for candidate profiles and scores them.
type FitnessEvaluator struct {
	params *ParamVector
	base   particles.DensityProfile
	seeds  []int64
	bins   int
	target Targets

	mu        sync.Mutex
	lastStats telemetry.FieldStats // desktop stats of the first seed, most recent Evaluate
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, base particles.DensityProfile, seeds []int64, bins int, target Targets) *FitnessEvaluator {
	return &FitnessEvaluator{
		params: params,
		base:   base,
		seeds:  seeds,
		bins:   bins,
		target: target,
	}
}

// LastStats returns the stats from the most recent evaluation.
func (fe *FitnessEvaluator) LastStats() telemetry.FieldStats {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastStats
}

// mobilePenalty weights how much a mobile field may miss the coverage target.
const mobilePenalty = 0.25

// Evaluate computes fitness for a raw parameter vector (lower = better): the
// mean squared relative error against the targets over all seeds, with the
// mobile layout's coverage counted at a reduced weight.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	profile := fe.params.Profile(fe.base, x)
	if err := profile.Validate(); err != nil {
		return math.Inf(1)
	}

	results := make([]float64, len(fe.seeds))
	var first telemetry.FieldStats
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			desktop := fe.stats(profile, s, false)
			mobile := fe.stats(profile, s, true)
			results[idx] = fe.score(desktop) + mobilePenalty*sq(relErr(mobile.Coverage, fe.target.Coverage))
			if idx == 0 {
				first = desktop
			}
		}(i, seed)
	}
	wg.Wait()

	var total float64
	for _, r := range results {
		total += r
	}

	fe.mu.Lock()
	fe.lastStats = first
	fe.mu.Unlock()

	return total / float64(len(fe.seeds))
}

func (fe *FitnessEvaluator) stats(profile particles.DensityProfile, seed int64, mobile bool) telemetry.FieldStats {
	cfg := particles.FieldConfig{Density: fe.params.Tier, IsMobile: mobile}
	field := particles.Generate(cfg, profile, particles.NewSineSource(seed))
	return telemetry.ComputeFieldStats(field, fe.bins)
}

func (fe *FitnessEvaluator) score(s telemetry.FieldStats) float64 {
	return sq(relErr(s.Coverage, fe.target.Coverage)) +
		sq(relErr(s.SparkleFraction, fe.target.SparkleFraction)) +
		sq(relErr(s.SizeMean, fe.target.SizeMean))
}

// relErr is the error of got relative to want, or absolute when want is zero.
func relErr(got, want float64) float64 {
	if want == 0 {
		return got
	}
	return (got - want) / want
}

func sq(x float64) float64 { return x * x }
