package particles

import (
	"math"
	"math/rand"
	"sync"
)

// RandomSource supplies values in [0,1).
//
// Generate draws exactly DrawsPerParticle values per particle, in the order
// size, sparkle, left, top, delay. Sources are not safe for concurrent use unless
// documented otherwise; wrap a shared source in a LockedSource.
type RandomSource interface {
	Next() float64
}

// DrawsPerParticle is the number of values Generate consumes per particle.
const DrawsPerParticle = 5

// DefaultStride separates the seeds of consecutive particles in a SineSource.
const DefaultStride = 1000

// SineSource is a seeded deterministic source. Call n returns
// frac(sin(Seed + (n/5)*Stride + n%5 + 1) * 10000), so the output depends only on
// the seed and the call index.
type SineSource struct {
	Seed   float64
	Stride float64
	n      int
}

// NewSineSource creates a sine source with the default stride.
func NewSineSource(seed int64) *SineSource {
	return &SineSource{Seed: float64(seed), Stride: DefaultStride}
}

// Next returns the value for the current call index and advances it.
func (s *SineSource) Next() float64 {
	k := s.n / DrawsPerParticle
	j := s.n % DrawsPerParticle
	s.n++
	return sineHash(s.Seed + float64(k)*s.Stride + float64(j+1))
}

// Calls returns how many values have been drawn since the last Reset.
func (s *SineSource) Calls() int { return s.n }

// Reset rewinds the source to call index zero.
func (s *SineSource) Reset() { s.n = 0 }

func sineHash(x float64) float64 {
	v := math.Sin(x) * 10000
	return unit(v - math.Floor(v))
}

// unit pins rounding artefacts back inside [0,1).
func unit(v float64) float64 {
	switch {
	case v >= 1:
		return math.Nextafter(1, 0)
	case v < 0 || math.IsNaN(v):
		return 0
	}
	return v
}

// UniformSource draws from a math/rand generator. It gives no reproducibility
// guarantee unless constructed with NewUniformSource and a fixed seed.
type UniformSource struct {
	rng *rand.Rand
}

// NewUniformSource creates a uniform source from seed.
func NewUniformSource(seed int64) *UniformSource {
	return &UniformSource{rng: rand.New(rand.NewSource(seed))}
}

// Next returns rng.Float64().
func (u *UniformSource) Next() float64 {
	return u.rng.Float64()
}

// LockedSource serializes access to a source shared between goroutines.
type LockedSource struct {
	mu  sync.Mutex
	src RandomSource
}

// NewLockedSource wraps src.
func NewLockedSource(src RandomSource) *LockedSource {
	return &LockedSource{src: src}
}

// Next draws one value under the lock.
func (l *LockedSource) Next() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Next()
}
