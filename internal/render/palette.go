package render

import (
	"image/color"
	"math"
)

// Raster cell values written by Rasterize. Stick cells carry a speed level
// between StickSlow and StickFast.
const (
	Empty     uint8 = 0
	StickSlow uint8 = 1
	StickFast uint8 = 4
	PinCell   uint8 = 9
)

var speedStops = []struct {
	t   float64
	col color.RGBA
}{
	{0.0, color.RGBA{R: 200, G: 210, B: 230, A: 255}},
	{0.35, color.RGBA{R: 90, G: 190, B: 240, A: 255}},
	{0.7, color.RGBA{R: 250, G: 200, B: 70, A: 255}},
	{1.0, color.RGBA{R: 250, G: 80, B: 60, A: 255}},
}

// SpeedColor maps a speed in [0, maxSpeed] onto the velocity ramp.
func SpeedColor(speed, maxSpeed float64) color.RGBA {
	t := 0.0
	if maxSpeed > 0 {
		t = clamp01(speed / maxSpeed)
	}
	for i := 1; i < len(speedStops); i++ {
		curr := speedStops[i]
		if t <= curr.t {
			prev := speedStops[i-1]
			local := (t - prev.t) / (curr.t - prev.t)
			return LerpRGBA(prev.col, curr.col, local)
		}
	}
	return speedStops[len(speedStops)-1].col
}

// SpeedLevel quantizes speed into a stick cell value.
func SpeedLevel(speed, maxSpeed float64) uint8 {
	if maxSpeed <= 0 {
		return StickSlow
	}
	span := float64(StickFast - StickSlow)
	return StickSlow + uint8(math.Round(clamp01(speed/maxSpeed)*span))
}

// LerpRGBA blends a towards b by t in [0, 1].
func LerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	t = clamp01(t)
	return color.RGBA{
		R: lerpComponent(a.R, b.R, t),
		G: lerpComponent(a.G, b.G, t),
		B: lerpComponent(a.B, b.B, t),
		A: lerpComponent(a.A, b.A, t),
	}
}

// FillPaletteRGBA converts raster cells into RGBA pixels using a palette.
// Values past the end of the palette use its last entry; an empty palette
// clears the buffer.
func FillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf)
		return
	}
	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

func lerpComponent(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
