package ui

import (
	"image"
	"math"
	"strconv"

	"verlet-cloth/internal/core"
)

type controlState struct {
	control core.ParameterControl
	value   string

	number   float64
	hasValue bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

func newControlStates(controls []core.ParameterControl) []controlState {
	states := make([]controlState, len(controls))
	for i, ctrl := range controls {
		states[i] = controlState{control: ctrl, value: "--"}
	}
	return states
}

// refreshControls copies the snapshot values into the control states.
func refreshControls(states []controlState, snap core.ParameterSnapshot) {
	for i := range states {
		state := &states[i]
		state.hasValue = false
		state.value = "--"
		param, ok := snap.Lookup(state.control.Key)
		if !ok {
			continue
		}
		var parsed float64
		switch state.control.Type {
		case core.ParamTypeInt, core.ParamTypeFloat:
			v, err := strconv.ParseFloat(param.Value, 64)
			if err != nil {
				continue
			}
			parsed = v
		case core.ParamTypeBool:
			v, err := strconv.ParseBool(param.Value)
			if err != nil {
				continue
			}
			if v {
				parsed = 1
			}
		default:
			continue
		}
		state.number = parsed
		state.value = formatValue(state.control, parsed)
		state.hasValue = true
	}
}

// stepValue returns the value one button press away from current. Booleans
// map minus to off and plus to on. ok is false when the press changes
// nothing.
func stepValue(ctrl core.ParameterControl, current float64, direction int) (float64, bool) {
	if direction == 0 {
		return current, false
	}
	var target float64
	switch ctrl.Type {
	case core.ParamTypeInt:
		step := math.Round(ctrl.Step)
		if step <= 0 {
			step = 1
		}
		target = math.Round(ctrl.Clamp(current + float64(direction)*step))
	case core.ParamTypeFloat:
		step := ctrl.Step
		if step <= 0 {
			step = 0.05
		}
		target = ctrl.Clamp(current + float64(direction)*step)
	case core.ParamTypeBool:
		if direction > 0 {
			target = 1
		}
	default:
		return current, false
	}
	if math.Abs(target-current) < 1e-9 {
		return current, false
	}
	return target, true
}

func formatValue(ctrl core.ParameterControl, value float64) string {
	switch ctrl.Type {
	case core.ParamTypeInt:
		return strconv.Itoa(int(math.Round(value)))
	case core.ParamTypeBool:
		if value != 0 {
			return "on"
		}
		return "off"
	}
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}
