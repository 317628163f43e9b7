package verlet

import "github.com/go-gl/mathgl/mgl64"

// Bounds is an axis-aligned box given by its centre and half-extents.
type Bounds struct {
	Center  mgl64.Vec3
	Extents mgl64.Vec3
}

// Min returns the lower corner.
func (b Bounds) Min() mgl64.Vec3 { return b.Center.Sub(b.Extents) }

// Max returns the upper corner.
func (b Bounds) Max() mgl64.Vec3 { return b.Center.Add(b.Extents) }

// Contains reports whether p lies inside the box, faces included.
func (b Bounds) Contains(p mgl64.Vec3) bool {
	lo, hi := b.Min(), b.Max()
	for axis := 0; axis < 3; axis++ {
		if p[axis] < lo[axis] || p[axis] > hi[axis] {
			return false
		}
	}
	return true
}

// Constrain clamps points into b and reflects the clamped velocity
// component scaled by bounce. The velocity is taken before clamping and
// damped by friction like in Integrate. Axes are handled independently, so a
// point may be clamped on several axes in one pass. Pinned points are only
// visited when includePinned is set.
func Constrain(points []Point, b Bounds, friction, bounce float64, includePinned bool) {
	lo, hi := b.Min(), b.Max()
	for i := range points {
		p := &points[i]
		if p.Pinned && !includePinned {
			continue
		}
		v := p.Pos.Sub(p.Prev).Mul(friction)
		for axis := 0; axis < 3; axis++ {
			if p.Pos[axis] > hi[axis] {
				p.Pos[axis] = hi[axis]
				p.Prev[axis] = p.Pos[axis] + v[axis]*bounce
			} else if p.Pos[axis] < lo[axis] {
				p.Pos[axis] = lo[axis]
				p.Prev[axis] = p.Pos[axis] + v[axis]*bounce
			}
		}
	}
}
