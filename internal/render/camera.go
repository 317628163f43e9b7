package render

import (
	"math"

	"verlet-cloth/internal/verlet"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera is an orthographic view looking along +Z, into the screen. World Y
// points up, screen Y points down.
type Camera struct {
	Center mgl64.Vec3
	Scale  float64 // pixels per world unit
	W, H   int
}

// FitBounds returns a camera that frames b inside a w*h viewport, leaving
// margin pixels on every side.
func FitBounds(b verlet.Bounds, w, h int, margin float64) Camera {
	cam := Camera{Center: b.Center, W: w, H: h, Scale: 1}
	spanX := 2 * b.Extents.X()
	spanY := 2 * b.Extents.Y()
	availX := float64(w) - 2*margin
	availY := float64(h) - 2*margin
	if spanX <= 0 || spanY <= 0 || availX <= 0 || availY <= 0 {
		return cam
	}
	cam.Scale = math.Min(availX/spanX, availY/spanY)
	return cam
}

// Project maps a world position to screen coordinates.
func (c Camera) Project(p mgl64.Vec3) (float64, float64) {
	sx := (p.X()-c.Center.X())*c.Scale + float64(c.W)/2
	sy := float64(c.H)/2 - (p.Y()-c.Center.Y())*c.Scale
	return sx, sy
}

// Unproject maps a screen position back onto the z = Center.Z plane.
func (c Camera) Unproject(sx, sy float64) mgl64.Vec3 {
	if c.Scale == 0 {
		return c.Center
	}
	x := (sx-float64(c.W)/2)/c.Scale + c.Center.X()
	y := (float64(c.H)/2-sy)/c.Scale + c.Center.Y()
	return mgl64.Vec3{x, y, c.Center.Z()}
}

// Forward is the direction the camera looks along, used for click pushes.
func (c Camera) Forward() mgl64.Vec3 { return mgl64.Vec3{0, 0, 1} }
