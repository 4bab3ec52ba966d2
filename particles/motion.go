package particles

import (
	"fmt"
	"math"
)

// AnimationSpeed scales the animation period of every particle.
type AnimationSpeed string

const (
	Slow       AnimationSpeed = "slow"
	NormalPace AnimationSpeed = "medium"
	Fast       AnimationSpeed = "fast"
)

// ParseSpeed validates an animation speed name.
func ParseSpeed(s string) (AnimationSpeed, error) {
	switch sp := AnimationSpeed(s); sp {
	case Slow, NormalPace, Fast:
		return sp, nil
	default:
		return "", fmt.Errorf("particles: unknown animation speed %q", s)
	}
}

// Factor returns the period multiplier for the speed.
func (s AnimationSpeed) Factor() float64 {
	switch s {
	case Slow:
		return 1.5
	case Fast:
		return 0.5
	default:
		return 1.0
	}
}

// Pose is the visual state of a particle at one instant.
type Pose struct {
	Opacity float64
	Scale   float64
	// OffsetY is the vertical lift in pixels (negative is up).
	OffsetY float64
}

// Keyframe ranges: value at rest (0%) and at the peak of the cycle (50%).
var (
	floatRest = Pose{Opacity: 0.3, Scale: 1.0, OffsetY: 0}
	floatPeak = Pose{Opacity: 0.6, Scale: 1.1, OffsetY: -10}
	sparkRest = Pose{Opacity: 0.2, Scale: 0.8, OffsetY: 0}
	sparkPeak = Pose{Opacity: 1.0, Scale: 1.2, OffsetY: 0}
)

// RestPose returns the pose a particle holds when it is not animating.
func RestPose(p Particle) Pose {
	if p.IsSparkle {
		return sparkRest
	}
	return floatRest
}

// PoseAt computes the pose of p at nowMs since the field was shown.
// Under reduced motion, and before the particle's delay has elapsed, the rest
// pose is returned.
func PoseAt(p Particle, profile DensityProfile, speed AnimationSpeed, nowMs float64, reducedMotion bool) Pose {
	rest, peak := floatRest, floatPeak
	if p.IsSparkle {
		rest, peak = sparkRest, sparkPeak
	}
	period := float64(profile.AnimationDurationMs) * speed.Factor()
	elapsed := nowMs - p.AnimationDelayMs
	if reducedMotion || period <= 0 || elapsed < 0 {
		return rest
	}

	phase := math.Mod(elapsed, period) / period
	// ease-in-out: 0 at the cycle ends, 1 at the midpoint
	w := (1 - math.Cos(2*math.Pi*phase)) / 2
	return Pose{
		Opacity: lerp(rest.Opacity, peak.Opacity, w),
		Scale:   lerp(rest.Scale, peak.Scale, w),
		OffsetY: lerp(rest.OffsetY, peak.OffsetY, w),
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
