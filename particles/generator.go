package particles

import "math"

// MobileScale is the particle count multiplier applied to mobile viewports.
const MobileScale = 0.6

// FieldConfig is the input to Generate.
type FieldConfig struct {
	Density       Tier
	IsMobile      bool
	ReducedMotion bool
}

// Particle is one decorative dot. Positions are percentages of the container.
type Particle struct {
	ID               int     `json:"id" csv:"id"`
	Size             float64 `json:"size" csv:"size"`
	LeftPercent      float64 `json:"left" csv:"left"`
	TopPercent       float64 `json:"top" csv:"top"`
	AnimationDelayMs float64 `json:"animation_delay_ms" csv:"animation_delay_ms"`
	IsSparkle        bool    `json:"sparkle" csv:"sparkle"`
}

// ParticleField is the result of one generation. Particles are kept in
// generation order and are never modified after Generate returns.
type ParticleField struct {
	Density         Tier
	Profile         DensityProfile
	MobileOptimized bool
	ReducedMotion   bool

	particles []Particle
}

// NewParticleField builds a field from already generated particles, e.g. when
// loading a snapshot. The slice is copied.
func NewParticleField(cfg FieldConfig, profile DensityProfile, ps []Particle) ParticleField {
	return ParticleField{
		Density:         cfg.Density,
		Profile:         profile,
		MobileOptimized: cfg.IsMobile,
		ReducedMotion:   cfg.ReducedMotion,
		particles:       append([]Particle(nil), ps...),
	}
}

// Len returns the number of particles.
func (f ParticleField) Len() int { return len(f.particles) }

// At returns particle i.
func (f ParticleField) At(i int) Particle { return f.particles[i] }

// Particles returns a copy of the particle sequence.
func (f ParticleField) Particles() []Particle {
	return append([]Particle(nil), f.particles...)
}

// Config reports the configuration the field was generated for.
func (f ParticleField) Config() FieldConfig {
	return FieldConfig{Density: f.Density, IsMobile: f.MobileOptimized, ReducedMotion: f.ReducedMotion}
}

// WithReducedMotion returns the same field tagged with b. Particles are shared.
func (f ParticleField) WithReducedMotion(b bool) ParticleField {
	f.ReducedMotion = b
	return f
}

// EffectiveCount is the number of particles Generate produces for cfg.
// A negative count yields zero.
func EffectiveCount(profile DensityProfile, isMobile bool) int {
	if profile.Count <= 0 {
		return 0
	}
	if !isMobile {
		return profile.Count
	}
	return int(math.Floor(float64(profile.Count) * MobileScale))
}

// Generate lays out a particle field. It has no side effects apart from
// advancing rnd, and draws DrawsPerParticle values per particle.
func Generate(cfg FieldConfig, profile DensityProfile, rnd RandomSource) ParticleField {
	n := EffectiveCount(profile, cfg.IsMobile)
	ps := make([]Particle, n)
	duration := float64(profile.AnimationDurationMs)
	for i := range ps {
		size := rnd.Next()*profile.MaxSize + 1
		sparkle := rnd.Next() < profile.SparkleFrequency
		left := rnd.Next() * 100
		top := rnd.Next() * 100
		delay := rnd.Next() * duration

		ps[i] = Particle{
			ID:               i,
			Size:             size,
			LeftPercent:      left,
			TopPercent:       top,
			AnimationDelayMs: delay,
			IsSparkle:        sparkle,
		}
	}

	return ParticleField{
		Density:         cfg.Density,
		Profile:         profile,
		MobileOptimized: cfg.IsMobile,
		ReducedMotion:   cfg.ReducedMotion,
		particles:       ps,
	}
}
