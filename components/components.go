// Package components defines the ECS components of a displayed particle.
package components

import "github.com/pthm-cable/glowfield/particles"

// Anchor is a particle's resting position as a percentage of the container.
type Anchor struct {
	Left, Top float32
}

// Body holds the particle's base diameter in px.
type Body struct {
	Size float32
}

// Twinkle holds the animation state of a particle.
type Twinkle struct {
	ID      int
	DelayMs float64
	Sparkle bool
	Pose    particles.Pose
}

// FromParticle splits a generated particle into its components.
func FromParticle(p particles.Particle) (Anchor, Body, Twinkle) {
	return Anchor{Left: float32(p.LeftPercent), Top: float32(p.TopPercent)},
		Body{Size: float32(p.Size)},
		Twinkle{ID: p.ID, DelayMs: p.AnimationDelayMs, Sparkle: p.IsSparkle, Pose: particles.RestPose(p)}
}

// Particle reassembles the generated particle.
func (t Twinkle) Particle(a Anchor, b Body) particles.Particle {
	return particles.Particle{
		ID:               t.ID,
		Size:             float64(b.Size),
		LeftPercent:      float64(a.Left),
		TopPercent:       float64(a.Top),
		AnimationDelayMs: t.DelayMs,
		IsSparkle:        t.Sparkle,
	}
}
