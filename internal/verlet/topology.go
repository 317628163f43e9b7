package verlet

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidLayout reports a layout that cannot produce a usable grid.
var ErrInvalidLayout = errors.New("verlet: invalid layout")

// Grid describes a built point grid. Points are stored column-major
// starting at Start.
type Grid struct {
	Start int
	X, Y  int
}

// Index returns the store index of grid coordinate (x, y).
func (g Grid) Index(x, y int) int { return g.Start + x*g.Y + y }

// Points returns the number of points in the grid.
func (g Grid) Points() int { return g.X * g.Y }

// Sticks returns the number of right/bottom neighbour constraints.
func (g Grid) Sticks() int { return (g.X-1)*g.Y + g.X*(g.Y-1) }

// GridSpec is the geometric description of a rectangular sheet. Width and
// Height are signed extents along +X and +Y; Density is points per unit.
type GridSpec struct {
	Origin  mgl64.Vec3
	Width   float64
	Height  float64
	Density float64
}

// Layout is one of OpenGrid, Cloth, Flag or PinnedGrid.
type Layout interface {
	// Name is the short identifier used by registries and flags.
	Name() string
	// Spec resolves the layout into sheet geometry.
	Spec() GridSpec
	// Pinned reports whether grid coordinate (x, y) is anchored.
	Pinned(g Grid, x, y int) bool
	// Tune applies the force convention of the layout.
	Tune(f *Forces)
}

// OpenGrid is a free sheet with no anchors.
type OpenGrid struct {
	GridSpec
}

func (OpenGrid) Name() string { return "grid" }
func (l OpenGrid) Spec() GridSpec { return l.GridSpec }
func (OpenGrid) Pinned(Grid, int, int) bool { return false }
func (OpenGrid) Tune(*Forces) {}

// Cloth hangs a sheet from its top edge. Top is the centre of that edge.
type Cloth struct {
	Top     mgl64.Vec3
	Width   float64
	Height  float64
	Density float64
}

func (Cloth) Name() string { return "cloth" }

func (l Cloth) Spec() GridSpec {
	return GridSpec{
		Origin:  l.Top.Sub(mgl64.Vec3{l.Width / 2, 0, 0}),
		Width:   l.Width,
		Height:  -l.Height,
		Density: l.Density,
	}
}

func (Cloth) Pinned(_ Grid, _, y int) bool { return y == 0 }

// Tune turns wind and jitter off; a hanging sheet only feels gravity.
func (Cloth) Tune(f *Forces) {
	f.Wind = mgl64.Vec3{}
	f.NoiseStrength = 0
}

// Flag attaches the left column of a sheet to a pole and blows it with a
// constant wind.
type Flag struct {
	PoleHeight  float64
	Width       float64
	AspectRatio float64
	Density     float64
	Wind        mgl64.Vec3
}

func (Flag) Name() string { return "flag" }

// Height returns the vertical extent of the flag.
func (l Flag) Height() float64 { return l.Width * l.AspectRatio }

func (l Flag) Spec() GridSpec {
	return GridSpec{
		Origin:  mgl64.Vec3{-l.Width / 2, l.PoleHeight, 0},
		Width:   l.Width,
		Height:  -l.Height(),
		Density: l.Density,
	}
}

func (Flag) Pinned(_ Grid, x, _ int) bool { return x == 0 }

func (l Flag) Tune(f *Forces) {
	f.Wind = l.Wind
}

// PinnedGrid anchors every Stride-th point along both axes and always the
// four corners.
type PinnedGrid struct {
	GridSpec
	Stride int
}

func (PinnedGrid) Name() string { return "pinned" }
func (l PinnedGrid) Spec() GridSpec { return l.GridSpec }
func (PinnedGrid) Tune(*Forces) {}

func (l PinnedGrid) Pinned(g Grid, x, y int) bool {
	if (x == 0 || x == g.X-1) && (y == 0 || y == g.Y-1) {
		return true
	}
	if l.Stride <= 0 {
		return false
	}
	return x%l.Stride == 0 && y%l.Stride == 0
}

// Limits on the size of a single built grid.
const (
	MaxAxisPoints = 1 << 12
	MaxGridPoints = 1 << 20
)

// axisCount returns ceil(|extent| * density), at least one.
func axisCount(extent, density float64) int {
	n := int(math.Ceil(math.Abs(extent) * density))
	if n < 1 {
		return 1
	}
	return n
}

// axisStep returns the spacing between neighbouring points on an axis.
func axisStep(extent float64, count int) float64 {
	if count <= 1 {
		return 0
	}
	return extent / float64(count-1)
}

func validateSpec(spec GridSpec) error {
	for i := 0; i < 3; i++ {
		if !finite(spec.Origin[i]) {
			return fmt.Errorf("%w: origin %v is not finite", ErrInvalidLayout, spec.Origin)
		}
	}
	if !finite(spec.Width) || !finite(spec.Height) {
		return fmt.Errorf("%w: extent (%g, %g) is not finite", ErrInvalidLayout, spec.Width, spec.Height)
	}
	if !finite(spec.Density) || spec.Density <= 0 {
		return fmt.Errorf("%w: density %g must be positive", ErrInvalidLayout, spec.Density)
	}
	nx := math.Ceil(math.Abs(spec.Width) * spec.Density)
	ny := math.Ceil(math.Abs(spec.Height) * spec.Density)
	if nx > MaxAxisPoints || ny > MaxAxisPoints {
		return fmt.Errorf("%w: %gx%g points exceeds %d per axis", ErrInvalidLayout, nx, ny, MaxAxisPoints)
	}
	if math.Max(nx, 1)*math.Max(ny, 1) > MaxGridPoints {
		return fmt.Errorf("%w: %gx%g points exceeds %d in total", ErrInvalidLayout, nx, ny, MaxGridPoints)
	}
	return nil
}

// Build appends the points and sticks of the layout to s. Every point is
// connected to its right and bottom neighbour, which also closes the last
// row and column.
func Build(s *Store, l Layout) (Grid, error) {
	if l == nil {
		return Grid{}, fmt.Errorf("%w: nil layout", ErrInvalidLayout)
	}
	spec := l.Spec()
	if err := validateSpec(spec); err != nil {
		return Grid{}, fmt.Errorf("%s: %w", l.Name(), err)
	}

	g := Grid{
		Start: s.Len(),
		X:     axisCount(spec.Width, spec.Density),
		Y:     axisCount(spec.Height, spec.Density),
	}
	stepX := axisStep(spec.Width, g.X)
	stepY := axisStep(spec.Height, g.Y)

	for x := 0; x < g.X; x++ {
		for y := 0; y < g.Y; y++ {
			pos := mgl64.Vec3{
				spec.Origin.X() + float64(x)*stepX,
				spec.Origin.Y() + float64(y)*stepY,
				spec.Origin.Z(),
			}
			s.AddPoint(pos, l.Pinned(g, x, y))
		}
	}

	for x := 0; x < g.X; x++ {
		for y := 0; y < g.Y; y++ {
			cur := g.Index(x, y)
			if x+1 < g.X {
				s.AddStick(cur, g.Index(x+1, y))
			}
			if y+1 < g.Y {
				s.AddStick(cur, g.Index(x, y+1))
			}
		}
	}
	return g, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
