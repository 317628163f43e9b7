package ui

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const pulseDuration = 0.6

// Pulse is a fading ring marking where a push landed, in screen space.
type Pulse struct {
	X, Y   float64
	Radius float64

	tween *gween.Tween
	alpha float32
	done  bool
}

// NewPulse starts a fully opaque ring that fades out over pulseDuration
// seconds.
func NewPulse(x, y, radius float64) *Pulse {
	return &Pulse{
		X:      x,
		Y:      y,
		Radius: radius,
		tween:  gween.New(1, 0, pulseDuration, ease.OutQuad),
		alpha:  1,
	}
}

// Update advances the fade by dt seconds and reports whether the ring is
// still visible.
func (p *Pulse) Update(dt float32) bool {
	if p == nil || p.done {
		return false
	}
	p.alpha, p.done = p.tween.Update(dt)
	return !p.done
}

// Alpha returns the current opacity in [0, 1].
func (p *Pulse) Alpha() float32 {
	if p == nil || p.done {
		return 0
	}
	return p.alpha
}
