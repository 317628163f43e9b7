package cloth

import (
	"strconv"
	"strings"

	"verlet-cloth/internal/verlet"

	"github.com/go-gl/mathgl/mgl64"
)

// Layout names accepted by Config.Layout and registered as sims.
const (
	LayoutGrid   = "grid"
	LayoutCloth  = "cloth"
	LayoutFlag   = "flag"
	LayoutPinned = "pinned"
)

// Geometry holds the sheet parameters shared by the layouts.
type Geometry struct {
	Width   float64
	Height  float64
	Top     float64
	Density float64

	PoleHeight  float64
	AspectRatio float64
	FlagWind    mgl64.Vec3

	Stride int
}

// Interaction controls user pushes.
type Interaction struct {
	PushRadius      float64
	PushStrength    float64
	ScatterCount    int
	ScatterStrength float64
}

// Config controls a cloth simulation.
type Config struct {
	Layout      string
	Geometry    Geometry
	Interaction Interaction
	Engine      verlet.Config
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	flag := verlet.DefaultFlag()
	pinned := verlet.DefaultPinnedGrid()
	return Config{
		Layout: LayoutCloth,
		Geometry: Geometry{
			Width:       2.5,
			Height:      2.5,
			Top:         4,
			Density:     verlet.DefaultDensity,
			PoleHeight:  flag.PoleHeight,
			AspectRatio: flag.AspectRatio,
			FlagWind:    flag.Wind,
			Stride:      pinned.Stride,
		},
		Interaction: Interaction{
			PushRadius:      1,
			PushStrength:    0.01,
			ScatterCount:    5,
			ScatterStrength: 0.01,
		},
		Engine: verlet.DefaultConfig(),
	}
}

// BuildLayout resolves the layout name and geometry into a verlet.Layout.
// Unknown names fall back to the hanging cloth.
func (c Config) BuildLayout() verlet.Layout {
	g := c.Geometry
	sheet := verlet.GridSpec{
		Origin:  mgl64.Vec3{-g.Width / 2, g.Top, 0},
		Width:   g.Width,
		Height:  -g.Height,
		Density: g.Density,
	}
	switch c.Layout {
	case LayoutGrid:
		return verlet.OpenGrid{GridSpec: sheet}
	case LayoutFlag:
		return verlet.Flag{
			PoleHeight:  g.PoleHeight,
			Width:       g.Width,
			AspectRatio: g.AspectRatio,
			Density:     g.Density,
			Wind:        g.FlagWind,
		}
	case LayoutPinned:
		return verlet.PinnedGrid{GridSpec: sheet, Stride: g.Stride}
	default:
		return verlet.Cloth{
			Top:     mgl64.Vec3{0, g.Top, 0},
			Width:   g.Width,
			Height:  g.Height,
			Density: g.Density,
		}
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparseable or out-of-range values keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	e := &c.Engine
	g := &c.Geometry
	in := &c.Interaction

	if v, ok := cfg["layout"]; ok {
		switch v {
		case LayoutGrid, LayoutCloth, LayoutFlag, LayoutPinned:
			c.Layout = v
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			e.Seed = parsed
		}
	}

	positive := func(key string, dst *float64) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
				*dst = parsed
			}
		}
	}
	nonNegative := func(key string, dst *float64) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
				*dst = parsed
			}
		}
	}
	unit := func(key string, dst *float64) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
				*dst = parsed
			}
		}
	}
	number := func(key string, dst *float64) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil {
				*dst = parsed
			}
		}
	}
	vec := func(key string, dst *mgl64.Vec3) {
		if v, ok := cfg[key]; ok {
			if parsed, ok := parseVec3(v); ok {
				*dst = parsed
			}
		}
	}
	count := func(key string, dst *int) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
				*dst = parsed
			}
		}
	}

	positive("width", &g.Width)
	positive("height", &g.Height)
	number("top", &g.Top)
	positive("density", &g.Density)
	number("pole_height", &g.PoleHeight)
	positive("aspect", &g.AspectRatio)
	vec("flag_wind", &g.FlagWind)
	count("stride", &g.Stride)

	vec("gravity", &e.Forces.Gravity)
	vec("wind", &e.Forces.Wind)
	nonNegative("wind_freq", &e.Forces.WindFrequency)
	number("wind_min", &e.Forces.WindMin)
	number("wind_max", &e.Forces.WindMax)
	nonNegative("noise", &e.Forces.NoiseStrength)
	unit("friction", &e.Forces.Friction)
	unit("bounce", &e.Bounce)
	positive("timestep", &e.Timestep)
	count("iterations", &e.Iterations)
	vec("bounds", &e.Bounds.Extents)
	vec("bounds_center", &e.Bounds.Center)
	if v, ok := cfg["clamp_pinned"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			e.ClampPinned = parsed
		}
	}
	if v, ok := cfg["interaction"]; ok {
		switch v {
		case verlet.InteractPlanar.String():
			e.Interaction = verlet.InteractPlanar
		case verlet.InteractSpatial.String():
			e.Interaction = verlet.InteractSpatial
		}
	}

	positive("push_radius", &in.PushRadius)
	nonNegative("push_strength", &in.PushStrength)
	count("scatter_count", &in.ScatterCount)
	nonNegative("scatter_strength", &in.ScatterStrength)

	if e.Forces.WindMax < e.Forces.WindMin {
		e.Forces.WindMax = e.Forces.WindMin
	}
	for axis := 0; axis < 3; axis++ {
		if e.Bounds.Extents[axis] < 0 {
			e.Bounds.Extents[axis] = -e.Bounds.Extents[axis]
		}
	}
	return c
}

// parseVec3 accepts "x,y,z" or a single scalar applied to all axes.
func parseVec3(s string) (mgl64.Vec3, bool) {
	parts := strings.Split(s, ",")
	switch len(parts) {
	case 1:
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return mgl64.Vec3{}, false
		}
		return mgl64.Vec3{v, v, v}, true
	case 3:
		var out mgl64.Vec3
		for i, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return mgl64.Vec3{}, false
			}
			out[i] = v
		}
		return out, true
	default:
		return mgl64.Vec3{}, false
	}
}
