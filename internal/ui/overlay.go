//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"verlet-cloth/internal/core"
	"verlet-cloth/internal/render"
	"verlet-cloth/internal/verlet"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Overlay draws optional debugging visuals on top of the cloth.
type Overlay struct {
	sim core.Sim

	showVelocity bool
	showBounds   bool
	showPins     bool

	pulses []*Pulse
	pixel  *ebiten.Image
}

// NewOverlay constructs an overlay with velocity colouring and pins shown.
func NewOverlay(sim core.Sim) *Overlay {
	o := &Overlay{sim: sim, showVelocity: true, showPins: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// ShowVelocity reports whether sticks should be tinted by speed.
func (o *Overlay) ShowVelocity() bool { return o.showVelocity }

// Update handles the overlay toggles and advances fading rings.
func (o *Overlay) Update(dt float32) {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showVelocity = !o.showVelocity
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showBounds = !o.showBounds
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit3) {
		o.showPins = !o.showPins
	}
	live := o.pulses[:0]
	for _, p := range o.pulses {
		if p.Update(dt) {
			live = append(live, p)
		}
	}
	o.pulses = live
}

// Pulse marks a push at screen position (x, y).
func (o *Overlay) Pulse(x, y, radius float64) {
	o.pulses = append(o.pulses, NewPulse(x, y, radius))
}

// Draw renders the enabled layers through cam.
func (o *Overlay) Draw(screen *ebiten.Image, cam render.Camera) {
	if o.showBounds {
		o.drawBounds(screen, cam, o.sim.Bounds())
	}
	if o.showPins {
		for _, p := range o.sim.Points() {
			if !p.Pinned {
				continue
			}
			x, y := cam.Project(p.Pos)
			o.drawPoint(screen, x, y, 5, color.NRGBA{R: 255, G: 90, B: 200, A: 230})
		}
	}
	for _, p := range o.pulses {
		a := p.Alpha()
		col := color.NRGBA{R: 255, G: 255, B: 255, A: uint8(math.Round(float64(a) * 200))}
		vector.StrokeCircle(screen, float32(p.X), float32(p.Y), float32(p.Radius), 1.5, col, true)
	}
}

// drawBounds outlines the front face of the box; the view is orthographic
// along Z so the back face coincides with it.
func (o *Overlay) drawBounds(screen *ebiten.Image, cam render.Camera, b verlet.Bounds) {
	lo, hi := b.Min(), b.Max()
	corners := [4]mgl64.Vec3{
		{lo.X(), lo.Y(), hi.Z()},
		{hi.X(), lo.Y(), hi.Z()},
		{hi.X(), hi.Y(), hi.Z()},
		{lo.X(), hi.Y(), hi.Z()},
	}
	col := color.NRGBA{R: 90, G: 130, B: 170, A: 160}
	for i := range corners {
		x1, y1 := cam.Project(corners[i])
		x2, y2 := cam.Project(corners[(i+1)%len(corners)])
		o.drawLine(screen, x1, y1, x2, y2, 1, col)
	}
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.NRGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.NRGBA) {
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 || thickness <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
