package render

import (
	"math"

	"verlet-cloth/internal/core"
	"verlet-cloth/internal/verlet"
)

// Rasterize draws the sticks and pins of a sim into r through cam. Stick
// cells hold their speed level; the raster must be sized to the camera
// viewport.
func Rasterize(r *core.Raster, cam Camera, points []verlet.Point, sticks []verlet.Stick, maxSpeed float64) {
	r.Clear()
	for _, s := range sticks {
		a, b := points[s.A], points[s.B]
		speed := (a.Velocity().Len() + b.Velocity().Len()) / 2
		x0, y0 := cam.Project(a.Pos)
		x1, y1 := cam.Project(b.Pos)
		r.Line(cell(x0), cell(y0), cell(x1), cell(y1), SpeedLevel(speed, maxSpeed))
	}
	for _, p := range points {
		if !p.Pinned {
			continue
		}
		x, y := cam.Project(p.Pos)
		r.Plot(cell(x), cell(y), PinCell)
	}
}

// MaxSpeed returns the fastest implicit velocity among points.
func MaxSpeed(points []verlet.Point) float64 {
	top := 0.0
	for _, p := range points {
		if s := p.Velocity().Len(); s > top {
			top = s
		}
	}
	return top
}

func cell(v float64) int {
	return int(math.Floor(v))
}
