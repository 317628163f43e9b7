//go:build ebiten

package render

import (
	"image/color"

	"verlet-cloth/internal/core"
	"verlet-cloth/internal/verlet"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ClothPainter draws sticks as anti-aliased segments, or in pixel mode
// rasterizes them at a coarse resolution and scales the result up.
type ClothPainter struct {
	Pixelated bool
	Colorize  bool

	raster  *core.Raster
	img     *ebiten.Image
	buf     []byte
	palette []color.RGBA
}

// NewClothPainter allocates a painter with the stick palette preset.
func NewClothPainter() *ClothPainter {
	palette := make([]color.RGBA, PinCell+1)
	for lvl := StickSlow; lvl <= StickFast; lvl++ {
		t := float64(lvl-StickSlow) / float64(StickFast-StickSlow)
		palette[lvl] = SpeedColor(t, 1)
	}
	for i := StickFast + 1; i < PinCell; i++ {
		palette[i] = palette[StickFast]
	}
	palette[PinCell] = color.RGBA{R: 255, G: 90, B: 200, A: 255}
	return &ClothPainter{Colorize: true, palette: palette, raster: core.NewRaster(1, 1)}
}

// Draw paints the sim through cam onto dst.
func (p *ClothPainter) Draw(dst *ebiten.Image, cam Camera, points []verlet.Point, sticks []verlet.Stick, pixel int) {
	if p.Pixelated && pixel > 1 {
		p.blit(dst, cam, points, sticks, pixel)
		return
	}
	maxSpeed := MaxSpeed(points)
	plain := color.RGBA{R: 220, G: 220, B: 230, A: 255}
	for _, s := range sticks {
		a, b := points[s.A], points[s.B]
		col := plain
		if p.Colorize {
			col = SpeedColor((a.Velocity().Len()+b.Velocity().Len())/2, maxSpeed)
		}
		x0, y0 := cam.Project(a.Pos)
		x1, y1 := cam.Project(b.Pos)
		vector.StrokeLine(dst, float32(x0), float32(y0), float32(x1), float32(y1), 1.5, col, true)
	}
}

func (p *ClothPainter) blit(dst *ebiten.Image, cam Camera, points []verlet.Point, sticks []verlet.Stick, pixel int) {
	coarse := cam
	coarse.W = cam.W / pixel
	coarse.H = cam.H / pixel
	coarse.Scale = cam.Scale / float64(pixel)
	if coarse.W <= 0 || coarse.H <= 0 {
		return
	}
	p.raster.Resize(coarse.W, coarse.H)
	maxSpeed := 0.0
	if p.Colorize {
		maxSpeed = MaxSpeed(points)
	}
	Rasterize(p.raster, coarse, points, sticks, maxSpeed)

	if p.img == nil || p.img.Bounds().Dx() != coarse.W || p.img.Bounds().Dy() != coarse.H {
		p.img = ebiten.NewImage(coarse.W, coarse.H)
		p.buf = make([]byte, 4*coarse.W*coarse.H)
	}
	FillPaletteRGBA(p.buf, p.raster.Cells(), p.palette)
	p.img.WritePixels(p.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(pixel), float64(pixel))
	dst.DrawImage(p.img, op)
}
