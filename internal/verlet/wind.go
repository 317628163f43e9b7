package verlet

import (
	"github.com/aquilax/go-perlin"
)

const (
	gustAlpha  = 2
	gustBeta   = 2
	gustOctave = 3
)

// Gust is a smooth, seeded, time-varying wind strength signal.
type Gust struct {
	noise *perlin.Perlin
}

// NewGust returns a gust generator seeded with seed.
func NewGust(seed int64) *Gust {
	return &Gust{noise: perlin.NewPerlin(gustAlpha, gustBeta, gustOctave, seed)}
}

// Sample returns the raw coherent signal at time t scaled by frequency,
// mapped to [0, 1].
func (g *Gust) Sample(t, frequency float64) float64 {
	return clamp01(0.5 + 0.5*g.noise.Noise1D(t*frequency))
}

// Strength maps the signal at time t into [lo, hi].
func (g *Gust) Strength(t, frequency, lo, hi float64) float64 {
	return lerp(lo, hi, g.Sample(t, frequency))
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
