package core

// Raster stores a 2D grid of byte-sized cell values in row-major order. The
// terminal viewer draws cloth into it before mapping cells to glyphs.
type Raster struct {
	W, H int
	data []uint8
}

// NewRaster allocates a raster with the given dimensions.
func NewRaster(w, h int) *Raster {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Raster{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (r *Raster) Cells() []uint8 { return r.data }

// Index returns the linear slice index for coordinates (x, y).
func (r *Raster) Index(x, y int) int { return y*r.W + x }

// In reports whether (x, y) lies on the raster.
func (r *Raster) In(x, y int) bool { return x >= 0 && x < r.W && y >= 0 && y < r.H }

// At returns the value at (x, y), or 0 off the raster.
func (r *Raster) At(x, y int) uint8 {
	if !r.In(x, y) {
		return 0
	}
	return r.data[r.Index(x, y)]
}

// Plot raises the cell at (x, y) to v. Cells keep the highest value plotted.
func (r *Raster) Plot(x, y int, v uint8) {
	if !r.In(x, y) {
		return
	}
	i := r.Index(x, y)
	if v > r.data[i] {
		r.data[i] = v
	}
}

// Line plots a Bresenham line from (x0, y0) to (x1, y1).
func (r *Raster) Line(x0, y0, x1, y1 int, v uint8) {
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		r.Plot(x0, y0, v)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// Resize reallocates the raster when the dimensions change and clears it.
func (r *Raster) Resize(w, h int) {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	if w != r.W || h != r.H {
		r.W, r.H = w, h
		r.data = make([]uint8, w*h)
		return
	}
	r.Clear()
}

// Clear fills the raster with zeros.
func (r *Raster) Clear() {
	for i := range r.data {
		r.data[i] = 0
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
