package cloth

import (
	"verlet-cloth/internal/core"
	"verlet-cloth/internal/verlet"
)

func (s *Sim) Parameters() core.ParameterSnapshot {
	g := s.cfg.Geometry
	e := s.world.Config()
	in := s.cfg.Interaction
	grid := s.world.Grid()
	groups := []core.ParameterGroup{
		{
			Name: "Sheet",
			Params: []core.Parameter{
				core.IntParam("points_x", "Columns", grid.X),
				core.IntParam("points_y", "Rows", grid.Y),
				core.FloatParam("width", "Width", g.Width),
				core.FloatParam("height", "Height", g.Height),
				core.FloatParam("density", "Density", g.Density),
				core.Int64Param("seed", "Seed", e.Seed),
			},
		},
		{
			Name: "Forces",
			Params: []core.Parameter{
				core.FloatParam("gravity_y", "Gravity Y", e.Forces.Gravity.Y()),
				core.FloatParam("wind_x", "Wind X", e.Forces.Wind.X()),
				core.FloatParam("wind_freq", "Wind frequency", e.Forces.WindFrequency),
				core.FloatParam("wind_min", "Wind min", e.Forces.WindMin),
				core.FloatParam("wind_max", "Wind max", e.Forces.WindMax),
				core.FloatParam("noise", "Noise strength", e.Forces.NoiseStrength),
				core.FloatParam("friction", "Friction", e.Forces.Friction),
			},
		},
		{
			Name: "Solver",
			Params: []core.Parameter{
				core.IntParam("iterations", "Iterations", e.Iterations),
				core.FloatParam("timestep", "Timestep", e.Timestep),
				core.FloatParam("bounce", "Bounce", e.Bounce),
				core.BoolParam("clamp_pinned", "Clamp pinned", e.ClampPinned),
			},
		},
		{
			Name: "Interaction",
			Params: []core.Parameter{
				core.BoolParam("planar", "Planar push", e.Interaction == verlet.InteractPlanar),
				core.FloatParam("push_radius", "Push radius", in.PushRadius),
				core.FloatParam("push_strength", "Push strength", in.PushStrength),
				core.IntParam("scatter_count", "Scatter count", in.ScatterCount),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the values the HUD may edit while running.
func (s *Sim) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "iterations", Label: "Iterations", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: 50, HasMin: true, HasMax: true},
		{Key: "friction", Label: "Friction", Type: core.ParamTypeFloat, Step: 0.001, Min: 0.9, Max: 1, HasMin: true, HasMax: true},
		{Key: "bounce", Label: "Bounce", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "gravity_y", Label: "Gravity Y", Type: core.ParamTypeFloat, Step: 0.1, Min: -5, Max: 5, HasMin: true, HasMax: true},
		{Key: "wind_x", Label: "Wind X", Type: core.ParamTypeFloat, Step: 0.05, Min: -2, Max: 2, HasMin: true, HasMax: true},
		{Key: "noise", Label: "Noise", Type: core.ParamTypeFloat, Step: 0.1, Min: 0, Max: 5, HasMin: true, HasMax: true},
		{Key: "push_radius", Label: "Push radius", Type: core.ParamTypeFloat, Step: 0.1, Min: 0.1, Max: 5, HasMin: true, HasMax: true},
		{Key: "push_strength", Label: "Push strength", Type: core.ParamTypeFloat, Step: 0.005, Min: 0, Max: 0.2, HasMin: true, HasMax: true},
		{Key: "clamp_pinned", Label: "Clamp pinned", Type: core.ParamTypeBool},
		{Key: "planar", Label: "Planar push", Type: core.ParamTypeBool},
	}
}

func (s *Sim) control(key string) (core.ParameterControl, bool) {
	for _, c := range s.ParameterControls() {
		if c.Key == key {
			return c, true
		}
	}
	return core.ParameterControl{}, false
}

// SetIntParameter updates an integer control. It reports whether key is known.
func (s *Sim) SetIntParameter(key string, value int) bool {
	c, ok := s.control(key)
	if !ok || c.Type != core.ParamTypeInt {
		return false
	}
	value = int(c.Clamp(float64(value)))
	switch key {
	case "iterations":
		s.world.SetIterations(value)
	default:
		return false
	}
	return true
}

// SetFloatParameter updates a float control, clamping it to the control's
// bounds.
func (s *Sim) SetFloatParameter(key string, value float64) bool {
	c, ok := s.control(key)
	if !ok || c.Type != core.ParamTypeFloat {
		return false
	}
	value = c.Clamp(value)
	f := s.world.Forces()
	switch key {
	case "friction":
		f.Friction = value
	case "gravity_y":
		f.Gravity[1] = value
	case "wind_x":
		f.Wind[0] = value
	case "noise":
		f.NoiseStrength = value
	case "bounce":
		s.world.SetBounce(value)
		return true
	case "push_radius":
		s.cfg.Interaction.PushRadius = value
		return true
	case "push_strength":
		s.cfg.Interaction.PushStrength = value
		return true
	default:
		return false
	}
	s.world.SetForces(f)
	return true
}

// SetBoolParameter flips a boolean control.
func (s *Sim) SetBoolParameter(key string, value bool) bool {
	switch key {
	case "clamp_pinned":
		s.world.SetClampPinned(value)
	case "planar":
		mode := verlet.InteractSpatial
		if value {
			mode = verlet.InteractPlanar
		}
		s.world.SetInteraction(mode)
	default:
		return false
	}
	return true
}
