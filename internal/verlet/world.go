package verlet

import (
	"fmt"
	"math"

	"verlet-cloth/pkg/core"

	"github.com/go-gl/mathgl/mgl64"
)

// World is the simulation context: the point/stick arena, its settings and
// the seeded sources of randomness. A World is not safe for concurrent use.
type World struct {
	cfg   Config
	store *Store
	grid  Grid

	rng  *core.RNG
	gust *Gust

	tick    int
	time    float64
	wind    float64
	pending []Impulse
}

// New validates cfg, builds its layout and returns a ready world.
func New(cfg Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Layout.Tune(&cfg.Forces)
	w := &World{
		cfg:   cfg,
		store: NewStore(0, 0),
		rng:   core.NewRNG(cfg.Seed),
		gust:  NewGust(cfg.Seed),
	}
	if err := w.build(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *World) build() error {
	w.store.Reset()
	g, err := Build(w.store, w.cfg.Layout)
	if err != nil {
		return fmt.Errorf("build %s: %w", w.cfg.Layout.Name(), err)
	}
	w.grid = g
	return nil
}

// Reset rebuilds the topology at rest and restarts time and randomness from
// seed. A zero seed reuses the configured one.
func (w *World) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.rng.Reseed(effective)
	w.gust = NewGust(effective)
	w.tick = 0
	w.time = 0
	w.wind = 0
	w.pending = w.pending[:0]
	// The layout was validated in New, so rebuilding cannot fail.
	if err := w.build(); err != nil {
		panic(err)
	}
}

// Step advances the world by one fixed tick: queued impulses, integration,
// then Iterations rounds of relaxation and boundary clamping.
func (w *World) Step() {
	for _, imp := range w.pending {
		w.ApplyImpulse(imp)
	}
	w.pending = w.pending[:0]

	w.Integrate()
	for i := 0; i < w.cfg.Iterations; i++ {
		w.Relax()
		w.Constrain()
	}
	w.tick++
	w.time += w.cfg.Timestep
}

// Integrate runs the force and integration stage once.
func (w *World) Integrate() {
	f := w.cfg.Forces
	w.wind = w.gust.Strength(w.time, f.WindFrequency, f.WindMin, f.WindMax)
	Integrate(w.store.points, f, w.wind, w.cfg.Timestep, w.rng)
}

// Relax runs one relaxation pass.
func (w *World) Relax() {
	Relax(w.store.points, w.store.sticks)
}

// Constrain runs the boundary stage.
func (w *World) Constrain() {
	Constrain(w.store.points, w.cfg.Bounds, w.cfg.Forces.Friction, w.cfg.Bounce, w.cfg.ClampPinned)
}

// ApplyImpulse pushes points near imp immediately and reports how many were
// affected.
func (w *World) ApplyImpulse(imp Impulse) int {
	return ApplyImpulse(w.store.points, imp, w.cfg.Interaction, w.cfg.PlaneNormal)
}

// QueueImpulse defers imp to the start of the next Step.
func (w *World) QueueImpulse(imp Impulse) {
	w.pending = append(w.pending, imp)
}

// Scatter randomly jolts count points.
func (w *World) Scatter(count int, strength float64) {
	Scatter(w.store.points, w.rng, count, strength)
}

// Config returns a copy of the active settings.
func (w *World) Config() Config { return w.cfg }

// Forces returns the active forces.
func (w *World) Forces() Forces { return w.cfg.Forces }

// SetForces replaces the forces used from the next tick on.
func (w *World) SetForces(f Forces) { w.cfg.Forces = f }

// SetIterations changes the relaxation round count. Negative values are
// treated as zero.
func (w *World) SetIterations(n int) {
	if n < 0 {
		n = 0
	}
	w.cfg.Iterations = n
}

// SetBounce changes the bounce coefficient.
func (w *World) SetBounce(b float64) { w.cfg.Bounce = b }

// SetClampPinned toggles whether the boundary stage visits pinned points.
func (w *World) SetClampPinned(v bool) { w.cfg.ClampPinned = v }

// SetInteraction changes how impulse distances are measured.
func (w *World) SetInteraction(m InteractionMode) { w.cfg.Interaction = m }

// Points exposes the point arena; callers must not modify it.
func (w *World) Points() []Point { return w.store.points }

// Sticks exposes the constraints.
func (w *World) Sticks() []Stick { return w.store.sticks }

// Grid returns the topology built for the layout.
func (w *World) Grid() Grid { return w.grid }

// Bounds returns the collision box.
func (w *World) Bounds() Bounds { return w.cfg.Bounds }

// Tick returns the number of completed ticks since the last reset.
func (w *World) Tick() int { return w.tick }

// Time returns the simulated time in seconds.
func (w *World) Time() float64 { return w.time }

// WindStrength returns the wind multiplier used by the last integration.
func (w *World) WindStrength() float64 { return w.wind }

// Velocity returns the implicit velocity of point i.
func (w *World) Velocity(i int) mgl64.Vec3 { return w.store.points[i].Velocity() }

// Positions appends every point position to dst and returns it.
func (w *World) Positions(dst []mgl64.Vec3) []mgl64.Vec3 {
	dst = dst[:0]
	for _, p := range w.store.points {
		dst = append(dst, p.Pos)
	}
	return dst
}

// Segments appends the endpoint pair of every stick to dst and returns it.
func (w *World) Segments(dst []Segment) []Segment {
	dst = dst[:0]
	for i := range w.store.sticks {
		a, b := w.store.Ends(i)
		dst = append(dst, Segment{A: a, B: b})
	}
	return dst
}

// Strain returns the largest and the mean relative deviation of stick
// lengths from their rest lengths.
func (w *World) Strain() (maxStrain, mean float64) {
	sticks := w.store.sticks
	if len(sticks) == 0 {
		return 0, 0
	}
	var sum float64
	counted := 0
	for i, s := range sticks {
		if s.RestLength <= 0 {
			continue
		}
		a, b := w.store.Ends(i)
		e := math.Abs(b.Sub(a).Len()-s.RestLength) / s.RestLength
		sum += e
		counted++
		if e > maxStrain {
			maxStrain = e
		}
	}
	if counted == 0 {
		return 0, 0
	}
	return maxStrain, sum / float64(counted)
}

// KineticEnergy returns the sum of squared implicit velocities per unit
// mass, expressed per second.
func (w *World) KineticEnergy() float64 {
	dt := w.cfg.Timestep
	var e float64
	for _, p := range w.store.points {
		v := p.Velocity().Mul(1 / dt)
		e += 0.5 * v.LenSqr()
	}
	return e
}
