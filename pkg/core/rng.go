package core

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Reseed restarts the sequence from seed without reallocating.
func (r *RNG) Reseed(seed int64) {
	r.r = rand.New(rand.NewPCG(uint64(seed), 0))
}

// Range returns a uniform float64 in [lo, hi).
func (r *RNG) Range(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.r.Float64()*(hi-lo)
}

// IntN returns a uniform int in [0, n). It returns 0 when n <= 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// UnitVec3 returns a direction uniformly distributed on the unit sphere.
func (r *RNG) UnitVec3() mgl64.Vec3 {
	for {
		v := mgl64.Vec3{r.r.NormFloat64(), r.r.NormFloat64(), r.r.NormFloat64()}
		if l := v.Len(); l > 1e-12 {
			return v.Mul(1 / l)
		}
	}
}

// RangeVec3 returns a vector whose components are each uniform in [lo, hi).
func (r *RNG) RangeVec3(lo, hi float64) mgl64.Vec3 {
	return mgl64.Vec3{r.Range(lo, hi), r.Range(lo, hi), r.Range(lo, hi)}
}
