// Package scene holds the particles currently on screen as ECS entities and
// advances their animation.
package scene

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/glowfield/components"
	"github.com/pthm-cable/glowfield/particles"
)

// Scene is the render-side owner of a particle field. It is not safe for
// concurrent use; drive it from the render loop.
type Scene struct {
	world  *ecs.World
	mapper *ecs.Map3[components.Anchor, components.Body, components.Twinkle]
	filter *ecs.Filter3[components.Anchor, components.Body, components.Twinkle]

	// spawn order, which is generation order
	entities []ecs.Entity

	field   particles.ParticleField
	speed   particles.AnimationSpeed
	clockMs float64
}

// New creates an empty scene.
func New(speed particles.AnimationSpeed) *Scene {
	world := ecs.NewWorld()
	return &Scene{
		world:  world,
		mapper: ecs.NewMap3[components.Anchor, components.Body, components.Twinkle](world),
		filter: ecs.NewFilter3[components.Anchor, components.Body, components.Twinkle](world),
		speed:  speed,
	}
}

// Load replaces every entity with the particles of field and restarts the clock.
func (s *Scene) Load(field particles.ParticleField) {
	for _, e := range s.entities {
		s.world.RemoveEntity(e)
	}
	s.entities = s.entities[:0]

	for i := 0; i < field.Len(); i++ {
		anchor, body, twinkle := components.FromParticle(field.At(i))
		s.entities = append(s.entities, s.mapper.NewEntity(&anchor, &body, &twinkle))
	}
	s.field = field
	s.clockMs = 0
}

// SetSpeed changes the animation speed.
func (s *Scene) SetSpeed(speed particles.AnimationSpeed) {
	s.speed = speed
}

// Update advances the clock by dtMs and recomputes every pose. A reduced-motion
// field stays frozen at its rest poses.
func (s *Scene) Update(dtMs float64) {
	reduced := s.field.ReducedMotion
	if !reduced {
		s.clockMs += dtMs
	}
	profile := s.field.Profile

	query := s.filter.Query()
	for query.Next() {
		anchor, body, twinkle := query.Get()
		twinkle.Pose = particles.PoseAt(twinkle.Particle(*anchor, *body), profile, s.speed, s.clockMs, reduced)
	}
}

// Each visits the live particles in generation order.
func (s *Scene) Each(fn func(components.Anchor, components.Body, components.Twinkle)) {
	for _, e := range s.entities {
		anchor, body, twinkle := s.mapper.Get(e)
		fn(*anchor, *body, *twinkle)
	}
}

// Len returns the number of live particles.
func (s *Scene) Len() int { return len(s.entities) }

// Field returns the field last loaded.
func (s *Scene) Field() particles.ParticleField { return s.field }

// ClockMs returns the animation clock.
func (s *Scene) ClockMs() float64 { return s.clockMs }
