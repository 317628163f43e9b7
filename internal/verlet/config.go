package verlet

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidConfig reports engine settings that would break the stages.
var ErrInvalidConfig = errors.New("verlet: invalid config")

// Config holds every setting a World needs. It is copied into the world at
// construction; use the World setters to adjust it between ticks.
type Config struct {
	Layout Layout
	Forces Forces

	// Timestep is the fixed tick length in seconds.
	Timestep float64
	// Iterations is the number of (relax, constrain) rounds per tick.
	Iterations int

	Bounds Bounds
	// Bounce scales the reflected velocity of clamped points.
	Bounce float64
	// ClampPinned includes pinned points in the boundary stage.
	ClampPinned bool

	Interaction InteractionMode
	// PlaneNormal is used by InteractPlanar.
	PlaneNormal mgl64.Vec3

	Seed int64
}

// DefaultConfig returns the settings of the hanging cloth demo.
func DefaultConfig() Config {
	return Config{
		Layout: DefaultCloth(),
		Forces: Forces{
			Gravity:       mgl64.Vec3{0, -0.5, 0},
			Wind:          mgl64.Vec3{0.25, 0, 0},
			WindFrequency: 1,
			WindMin:       0.75,
			WindMax:       1,
			NoiseStrength: 1,
			Friction:      0.999,
		},
		Timestep:    1.0 / 50.0,
		Iterations:  3,
		Bounds:      Bounds{Extents: mgl64.Vec3{5, 5, 5}},
		Bounce:      0.9,
		ClampPinned: true,
		Interaction: InteractSpatial,
		PlaneNormal: mgl64.Vec3{0, 0, 1},
		Seed:        1,
	}
}

// DefaultDensity is the number of points per unit length used by the
// stock layouts.
const DefaultDensity = 4

// DefaultCloth is a 2.5 x 2.5 sheet hanging from (0, 4, 0).
func DefaultCloth() Cloth {
	return Cloth{Top: mgl64.Vec3{0, 4, 0}, Width: 2.5, Height: 2.5, Density: DefaultDensity}
}

// DefaultFlag is a 10:19 flag, 3 units wide, on a pole 4 units high.
func DefaultFlag() Flag {
	return Flag{PoleHeight: 4, Width: 3, AspectRatio: 10.0 / 19.0, Density: DefaultDensity, Wind: mgl64.Vec3{1, 0, 0}}
}

// DefaultGrid is a free 2.5 x 2.5 sheet whose top-left corner sits at
// (-1.25, 4, 0).
func DefaultGrid() OpenGrid {
	return OpenGrid{GridSpec{Origin: mgl64.Vec3{-1.25, 4, 0}, Width: 2.5, Height: -2.5, Density: DefaultDensity}}
}

// DefaultPinnedGrid is DefaultGrid with every fourth point anchored.
func DefaultPinnedGrid() PinnedGrid {
	return PinnedGrid{GridSpec: DefaultGrid().GridSpec, Stride: 4}
}

// Validate rejects settings the stages cannot run with.
func (c Config) Validate() error {
	if c.Layout == nil {
		return fmt.Errorf("%w: no layout", ErrInvalidConfig)
	}
	vecs := map[string]mgl64.Vec3{
		"gravity":        c.Forces.Gravity,
		"wind":           c.Forces.Wind,
		"bounds center":  c.Bounds.Center,
		"bounds extents": c.Bounds.Extents,
		"plane normal":   c.PlaneNormal,
	}
	for name, v := range vecs {
		for axis := 0; axis < 3; axis++ {
			if !finite(v[axis]) {
				return fmt.Errorf("%w: %s %v is not finite", ErrInvalidConfig, name, v)
			}
		}
	}
	scalars := map[string]float64{
		"wind frequency": c.Forces.WindFrequency,
		"wind min":       c.Forces.WindMin,
		"wind max":       c.Forces.WindMax,
		"noise strength": c.Forces.NoiseStrength,
		"friction":       c.Forces.Friction,
		"timestep":       c.Timestep,
		"bounce":         c.Bounce,
	}
	for name, v := range scalars {
		if !finite(v) {
			return fmt.Errorf("%w: %s %g is not finite", ErrInvalidConfig, name, v)
		}
	}
	if c.Timestep <= 0 {
		return fmt.Errorf("%w: timestep %g must be positive", ErrInvalidConfig, c.Timestep)
	}
	if c.Iterations < 0 {
		return fmt.Errorf("%w: iterations %d must not be negative", ErrInvalidConfig, c.Iterations)
	}
	if c.Forces.Friction < 0 || c.Forces.Friction > 1 {
		return fmt.Errorf("%w: friction %g outside [0, 1]", ErrInvalidConfig, c.Forces.Friction)
	}
	if c.Bounce < 0 || c.Bounce > 1 {
		return fmt.Errorf("%w: bounce %g outside [0, 1]", ErrInvalidConfig, c.Bounce)
	}
	for axis := 0; axis < 3; axis++ {
		if c.Bounds.Extents[axis] < 0 {
			return fmt.Errorf("%w: bounds extents %v must not be negative", ErrInvalidConfig, c.Bounds.Extents)
		}
	}
	return nil
}
