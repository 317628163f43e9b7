package verlet

import (
	"verlet-cloth/pkg/core"

	"github.com/go-gl/mathgl/mgl64"
)

// InteractionMode selects how the distance between a point and an impulse
// centre is measured.
type InteractionMode uint8

const (
	// InteractSpatial uses the full 3D distance.
	InteractSpatial InteractionMode = iota
	// InteractPlanar ignores the offset along the interaction plane normal.
	InteractPlanar
)

// String implements fmt.Stringer.
func (m InteractionMode) String() string {
	switch m {
	case InteractPlanar:
		return "planar"
	default:
		return "spatial"
	}
}

// Impulse is a localized push requested by an input layer.
type Impulse struct {
	Point     mgl64.Vec3
	Direction mgl64.Vec3
	Radius    float64
	Strength  float64
}

// Falloff returns the linear attenuation for a point dist away from the
// centre of a push with the given radius: 1 at the centre, 0 at the radius.
func Falloff(dist, radius float64) float64 {
	if radius <= 0 || dist >= radius {
		return 0
	}
	return (radius - dist) / radius
}

// ApplyImpulse injects velocity into every point within imp.Radius by
// shifting its previous position against imp.Direction. Positions are not
// moved. normal is the plane normal used by InteractPlanar. It returns the
// number of points affected.
func ApplyImpulse(points []Point, imp Impulse, mode InteractionMode, normal mgl64.Vec3) int {
	if imp.Radius <= 0 {
		return 0
	}
	if mode == InteractPlanar {
		if l := normal.Len(); l > 0 {
			normal = normal.Mul(1 / l)
		} else {
			mode = InteractSpatial
		}
	}

	touched := 0
	r2 := imp.Radius * imp.Radius
	for i := range points {
		p := &points[i]
		delta := p.Pos.Sub(imp.Point)
		if mode == InteractPlanar {
			delta = delta.Sub(normal.Mul(delta.Dot(normal)))
		}
		d2 := delta.LenSqr()
		if d2 >= r2 {
			continue
		}
		falloff := Falloff(delta.Len(), imp.Radius)
		p.Prev = p.Prev.Sub(imp.Direction.Mul(falloff * imp.Strength))
		touched++
	}
	return touched
}

// Scatter nudges count randomly chosen points by offsetting their previous
// position by a per-axis value drawn from [-strength/2, strength).
func Scatter(points []Point, rng *core.RNG, count int, strength float64) {
	if len(points) == 0 || rng == nil {
		return
	}
	for i := 0; i < count; i++ {
		p := &points[rng.IntN(len(points))]
		p.Prev = p.Prev.Add(rng.RangeVec3(-strength/2, strength))
	}
}
