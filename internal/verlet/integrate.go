package verlet

import (
	"verlet-cloth/pkg/core"

	"github.com/go-gl/mathgl/mgl64"
)

// Forces groups the external accelerations and damping applied by the
// integration stage.
type Forces struct {
	Gravity mgl64.Vec3
	Wind    mgl64.Vec3

	// WindFrequency scales simulation time before sampling the gust signal.
	WindFrequency float64
	// WindMin and WindMax bound the wind strength multiplier.
	WindMin float64
	WindMax float64

	// NoiseStrength is the magnitude of per-point random jitter.
	NoiseStrength float64

	// Friction damps the implicit velocity every tick. 1 means no damping.
	Friction float64
}

// Integrate advances every unpinned point by one Verlet step of dt seconds.
// Pinned points only have their implicit velocity cleared.
func Integrate(points []Point, f Forces, windStrength, dt float64, rng *core.RNG) {
	accel := f.Gravity.Add(f.Wind.Mul(windStrength))
	for i := range points {
		p := &points[i]
		if p.Pinned {
			p.Prev = p.Pos
			continue
		}
		v := p.Pos.Sub(p.Prev).Mul(f.Friction)
		p.Prev = p.Pos
		p.Pos = p.Pos.Add(v)

		a := accel
		if f.NoiseStrength != 0 && rng != nil {
			a = a.Add(rng.UnitVec3().Mul(f.NoiseStrength))
		}
		p.Pos = p.Pos.Add(a.Mul(dt))
	}
}
