package main

import "github.com/pthm-cable/glowfield/particles"

// ParamSpec defines a single tunable profile parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the tunable parameters of one density profile.
type ParamVector struct {
	Tier  particles.Tier
	Specs []ParamSpec
}

// NewParamVector creates the parameter set for tier, defaulting to base.
func NewParamVector(tier particles.Tier, base particles.DensityProfile) *ParamVector {
	prefix := "density." + string(tier) + "."
	return &ParamVector{
		Tier: tier,
		Specs: []ParamSpec{
			{Name: "count", Path: prefix + "count", Min: 5, Max: 200, Default: float64(base.Count)},
			{Name: "max_size", Path: prefix + "max_size", Min: 1, Max: 10, Default: base.MaxSize},
			{Name: "sparkle_frequency", Path: prefix + "sparkle_frequency", Min: 0, Max: 1, Default: base.SparkleFrequency},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// Profile builds the density profile for a parameter vector. The animation
// duration is not tuned and is taken from base.
func (pv *ParamVector) Profile(base particles.DensityProfile, values []float64) particles.DensityProfile {
	clamped := pv.Clamp(values)
	p := base
	p.Count = int(clamped[0] + 0.5)
	p.MaxSize = clamped[1]
	p.SparkleFrequency = clamped[2]
	return p
}
