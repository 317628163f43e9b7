//go:build !ebiten

package ui

import "verlet-cloth/internal/core"

// HUD is a no-op placeholder for headless builds.
type HUD struct{}

// NewHUD returns nil in the headless build.
func NewHUD(core.Sim, int) *HUD { return nil }

// Width is zero in the headless build.
func (h *HUD) Width() int { return 0 }

// Update is a no-op in the headless build.
func (h *HUD) Update(int) bool { return false }

// Draw is a no-op in the headless build.
func (h *HUD) Draw(any, int, int) {}

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct{}

// NewOverlay constructs a stub overlay.
func NewOverlay(core.Sim) *Overlay { return &Overlay{} }

// ShowVelocity always reports true in the headless build.
func (o *Overlay) ShowVelocity() bool { return true }

// Update is a no-op in headless builds.
func (o *Overlay) Update(float32) {}

// Pulse is a no-op in headless builds.
func (o *Overlay) Pulse(float64, float64, float64) {}

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any, any) {}
