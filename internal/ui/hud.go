//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"verlet-cloth/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the parameter panel to the right of the cloth view.
type HUD struct {
	sim        core.Sim
	width      int
	panel      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot

	controls     []controlState
	intSetter    core.IntParameterSetter
	floatSetter  core.FloatParameterSetter
	boolSetter   core.BoolParameterSetter
	panelOffsetX int
	title        string

	pixel *ebiten.Image
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{sim: sim, width: width, title: buildTitle(sim)}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		h.controls = newControlStates(provider.ParameterControls())
		h.layoutControls()
	}
	h.intSetter, _ = sim.(core.IntParameterSetter)
	h.floatSetter, _ = sim.(core.FloatParameterSetter)
	h.boolSetter, _ = sim.(core.BoolParameterSetter)
	return h
}

// Width returns the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes the cached snapshot and handles clicks on the panel. It
// reports whether the click was consumed by the HUD.
func (h *HUD) Update(panelOffsetX int) bool {
	if h == nil {
		return false
	}
	h.panelOffsetX = panelOffsetX
	if provider, ok := h.sim.(core.ParameterProvider); ok {
		h.snapshot = provider.Parameters()
	} else {
		h.snapshot = core.ParameterSnapshot{}
	}
	refreshControls(h.controls, h.snapshot)
	return h.handleInput()
}

// Draw paints the panel at offsetX with the given height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dx() != h.width || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawControls()
	h.drawDiagnostics(height)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func buildTitle(sim core.Sim) string {
	if sim == nil || sim.Name() == "" {
		return "Controls"
	}
	name := sim.Name()
	return fmt.Sprintf("%s%s controls", strings.ToUpper(name[:1]), name[1:])
}

func (h *HUD) handleInput() bool {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return false
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return false
	}
	px := mx - h.panelOffsetX
	for i := range h.controls {
		state := &h.controls[i]
		if !state.hasValue {
			continue
		}
		switch {
		case pointInRect(px, my, state.minusRect):
			h.apply(state, -1)
		case pointInRect(px, my, state.plusRect):
			h.apply(state, 1)
		default:
			continue
		}
		break
	}
	return true
}

func (h *HUD) apply(state *controlState, direction int) {
	target, ok := stepValue(state.control, state.number, direction)
	if !ok || !h.set(state.control, target) {
		return
	}
	state.number = target
	state.value = formatValue(state.control, target)
}

func (h *HUD) set(ctrl core.ParameterControl, v float64) bool {
	switch ctrl.Type {
	case core.ParamTypeInt:
		return h.intSetter != nil && h.intSetter.SetIntParameter(ctrl.Key, int(v))
	case core.ParamTypeFloat:
		return h.floatSetter != nil && h.floatSetter.SetFloatParameter(ctrl.Key, v)
	case core.ParamTypeBool:
		return h.boolSetter != nil && h.boolSetter.SetBoolParameter(ctrl.Key, v != 0)
	}
	return false
}

func (h *HUD) settable(ctrl core.ParameterControl) bool {
	switch ctrl.Type {
	case core.ParamTypeInt:
		return h.intSetter != nil
	case core.ParamTypeFloat:
		return h.floatSetter != nil
	case core.ParamTypeBool:
		return h.boolSetter != nil
	}
	return false
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	headerY := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, headerY, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	if len(h.controls) == 0 {
		text.Draw(h.panel, "No adjustable parameters", face, panelPadding, headerY+infoSpacing, dimText)
		return
	}
	for i := range h.controls {
		state := &h.controls[i]
		baseline := state.top + labelBaseline
		text.Draw(h.panel, state.control.Label, face, panelPadding, baseline, brightText)

		valueColor := brightText
		if !state.hasValue {
			valueColor = dimText
		}
		valueWidth := text.BoundString(face, state.value).Dx()
		text.Draw(h.panel, state.value, face, state.minusRect.Min.X-buttonGap-valueWidth, baseline, valueColor)

		canSet := state.hasValue && h.settable(state.control)
		_, down := stepValue(state.control, state.number, -1)
		_, up := stepValue(state.control, state.number, 1)
		minus, plus := "-", "+"
		if state.control.Type == core.ParamTypeBool {
			minus, plus = "o", "x"
		}
		h.drawButton(state.minusRect, minus, canSet && down)
		h.drawButton(state.plusRect, plus, canSet && up)
	}
}

func (h *HUD) drawDiagnostics(height int) {
	provider, ok := h.sim.(core.DiagnosticsProvider)
	if !ok {
		return
	}
	d := provider.Diagnostics()
	lines := []string{
		fmt.Sprintf("tick %d  t=%.2fs", d.Tick, d.Time),
		fmt.Sprintf("wind %.3f", d.Wind),
		fmt.Sprintf("strain max %.4f mean %.4f", d.MaxStrain, d.MeanStrain),
		fmt.Sprintf("energy %.4f", d.Energy),
	}
	y := height - panelPadding - (len(lines)-1)*statsSpacing
	for _, line := range lines {
		text.Draw(h.panel, line, basicfont.Face7x13, panelPadding, y, dimText)
		y += statsSpacing
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	bounds := text.BoundString(basicfont.Face7x13, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, basicfont.Face7x13, x, y, fg)
}

func (h *HUD) layoutControls() {
	if h.width <= 0 {
		return
	}
	for i := range h.controls {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plusRect := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minusRect := image.Rect(plusRect.Min.X-buttonGap-buttonSize, buttonY, plusRect.Min.X-buttonGap, buttonY+buttonSize)
		h.controls[i].top = top
		h.controls[i].minusRect = minusRect
		h.controls[i].plusRect = plusRect
	}
}

var (
	brightText = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimText    = color.RGBA{R: 160, G: 160, B: 170, A: 255}
)

const (
	panelPadding   = 12
	lineHeight     = 32
	buttonSize     = 22
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 21
	infoSpacing    = 36
	statsSpacing   = 16
	controlsTop    = panelPadding + headerBaseline + 14
)
