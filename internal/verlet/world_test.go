package verlet

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func newTestWorld(t *testing.T, mutate func(*Config)) *World {
	t.Helper()
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	w, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return w
}

func TestWorldZeroIterationsMatchesIntegration(t *testing.T) {
	a := newTestWorld(t, func(c *Config) {
		c.Layout = DefaultFlag()
		c.Iterations = 0
		c.Seed = 21
	})
	b := newTestWorld(t, func(c *Config) {
		c.Layout = DefaultFlag()
		c.Iterations = 0
		c.Seed = 21
	})

	a.Step()
	b.Integrate()

	if !slices.Equal(a.Points(), b.Points()) {
		t.Fatal("Step with zero iterations should leave integration output untouched")
	}
}

func TestWorldPinnedPointsHoldDuringIntegration(t *testing.T) {
	w := newTestWorld(t, func(c *Config) { c.Layout = DefaultFlag() })
	w.ApplyImpulse(Impulse{Point: mgl64.Vec3{-1.5, 3.5, 0}, Direction: mgl64.Vec3{0, 0, 1}, Radius: 2, Strength: 0.5})

	var pinned []int
	for i, p := range w.Points() {
		if p.Pinned {
			pinned = append(pinned, i)
		}
	}
	if len(pinned) == 0 {
		t.Fatal("flag should have pinned points")
	}
	for tick := 0; tick < 50; tick++ {
		before := make([]mgl64.Vec3, len(pinned))
		for j, i := range pinned {
			before[j] = w.Points()[i].Pos
		}
		w.Integrate()
		for j, i := range pinned {
			if w.Points()[i].Pos != before[j] {
				t.Fatalf("tick %d: pinned point %d moved during integration", tick, i)
			}
		}
		for k := 0; k < w.Config().Iterations; k++ {
			w.Relax()
			w.Constrain()
		}
	}
}

func TestWorldDeterministicForSeed(t *testing.T) {
	run := func(seed int64) []Point {
		w := newTestWorld(t, func(c *Config) {
			c.Layout = DefaultGrid()
			c.Seed = seed
		})
		for i := 0; i < 30; i++ {
			w.Step()
		}
		return slices.Clone(w.Points())
	}
	if !slices.Equal(run(9), run(9)) {
		t.Fatal("identical seeds should give identical runs")
	}
	if slices.Equal(run(9), run(10)) {
		t.Fatal("different seeds should give different jitter")
	}
}

func TestWorldResetRestoresRest(t *testing.T) {
	w := newTestWorld(t, func(c *Config) { c.Layout = DefaultPinnedGrid() })
	initial := slices.Clone(w.Points())
	for i := 0; i < 20; i++ {
		w.Step()
	}
	if w.Tick() != 20 || math.Abs(w.Time()-20*w.Config().Timestep) > 1e-12 {
		t.Fatalf("tick/time bookkeeping off: %d %f", w.Tick(), w.Time())
	}
	w.Reset(0)
	if !slices.Equal(initial, w.Points()) {
		t.Fatal("Reset should rebuild the layout at rest")
	}
	if w.Tick() != 0 || w.Time() != 0 {
		t.Fatal("Reset should restart the clock")
	}
	if len(w.Sticks()) != w.Grid().Sticks() {
		t.Fatalf("Reset duplicated sticks: %d", len(w.Sticks()))
	}
}

func TestWorldStaysFiniteAndBounded(t *testing.T) {
	for _, layout := range []Layout{DefaultCloth(), DefaultFlag(), DefaultGrid(), DefaultPinnedGrid()} {
		w := newTestWorld(t, func(c *Config) {
			c.Layout = layout
			c.ClampPinned = true
		})
		for i := 0; i < 500; i++ {
			if i%50 == 0 {
				w.QueueImpulse(Impulse{Point: mgl64.Vec3{0, 3, 0}, Direction: mgl64.Vec3{0, 0, 1}, Radius: 1, Strength: 0.05})
			}
			w.Step()
		}
		b := w.Bounds()
		for i, p := range w.Points() {
			for axis := 0; axis < 3; axis++ {
				if math.IsNaN(p.Pos[axis]) || math.IsInf(p.Pos[axis], 0) {
					t.Fatalf("%s: point %d non-finite", layout.Name(), i)
				}
			}
			if !b.Contains(p.Pos) {
				t.Fatalf("%s: point %d at %v left the bounds", layout.Name(), i, p.Pos)
			}
		}
	}
}

func TestWorldQueuedImpulseAppliesOnStep(t *testing.T) {
	w := newTestWorld(t, func(c *Config) {
		c.Layout = OpenGrid{GridSpec{Width: 1, Height: 1, Density: 1}}
		c.Forces = Forces{Friction: 1}
		c.Iterations = 0
	})
	w.QueueImpulse(Impulse{Direction: mgl64.Vec3{1, 0, 0}, Radius: 1, Strength: 0.25})
	if w.Points()[0].Prev != (mgl64.Vec3{}) {
		t.Fatal("queued impulse must not apply before Step")
	}
	w.Step()
	if got := w.Points()[0].Pos.X(); math.Abs(got-0.25) > 1e-12 {
		t.Fatalf("queued impulse should move the point by 0.25 on the next step, got %f", got)
	}
	w.Step()
	if got := w.Points()[0].Pos.X(); math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("impulse should only apply once, got %f", got)
	}
}

func TestStrainIgnoresZeroRestSticks(t *testing.T) {
	s := NewStore(3, 2)
	a := s.AddPoint(mgl64.Vec3{0, 0, 0}, false)
	b := s.AddPoint(mgl64.Vec3{1, 0, 0}, false)
	c := s.AddPoint(mgl64.Vec3{0, 0, 0}, false)
	s.AddStick(a, b)
	s.AddStick(a, c)
	s.points[b].Pos = mgl64.Vec3{1.5, 0, 0}

	w := &World{cfg: DefaultConfig(), store: s}
	maxStrain, mean := w.Strain()
	if math.Abs(maxStrain-0.5) > 1e-12 || math.Abs(mean-0.5) > 1e-12 {
		t.Fatalf("strain = %f/%f, want 0.5/0.5", maxStrain, mean)
	}
}

func TestWorldOutputs(t *testing.T) {
	w := newTestWorld(t, func(c *Config) { c.Layout = DefaultCloth() })
	pos := w.Positions(nil)
	segs := w.Segments(nil)
	if len(pos) != len(w.Points()) || len(segs) != len(w.Sticks()) {
		t.Fatalf("outputs sized %d/%d, want %d/%d", len(pos), len(segs), len(w.Points()), len(w.Sticks()))
	}
	st := w.Sticks()[0]
	if segs[0].A != pos[st.A] || segs[0].B != pos[st.B] {
		t.Fatal("segment endpoints should match point positions")
	}
	if maxStrain, mean := w.Strain(); maxStrain != 0 || mean != 0 {
		t.Fatalf("a fresh layout should be unstrained, got %f/%f", maxStrain, mean)
	}
	if e := w.KineticEnergy(); e != 0 {
		t.Fatalf("a fresh layout should be at rest, got %f", e)
	}
	w.Step()
	if w.KineticEnergy() == 0 {
		t.Fatal("gravity should set the cloth in motion")
	}
	if w.Velocity(len(pos)-1) == (mgl64.Vec3{}) {
		t.Fatal("bottom corner should be moving")
	}
}

func TestWorldClothConventionOverridesForces(t *testing.T) {
	w := newTestWorld(t, nil)
	if f := w.Forces(); f.Wind != (mgl64.Vec3{}) || f.NoiseStrength != 0 {
		t.Fatalf("cloth layout should disable wind and noise, got %+v", f)
	}
}

func TestConfigValidate(t *testing.T) {
	bad := []func(*Config){
		func(c *Config) { c.Layout = nil },
		func(c *Config) { c.Timestep = 0 },
		func(c *Config) { c.Iterations = -1 },
		func(c *Config) { c.Forces.Friction = 1.5 },
		func(c *Config) { c.Bounce = -0.1 },
		func(c *Config) { c.Forces.Gravity = mgl64.Vec3{0, math.NaN(), 0} },
		func(c *Config) { c.Bounds.Extents = mgl64.Vec3{1, -1, 1} },
		func(c *Config) { c.Forces.NoiseStrength = math.Inf(1) },
	}
	for i, mutate := range bad {
		cfg := DefaultConfig()
		mutate(&cfg)
		if _, err := New(cfg); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("case %d: expected ErrInvalidConfig, got %v", i, err)
		}
	}

	cfg := DefaultConfig()
	cfg.Layout = OpenGrid{GridSpec{Width: 1, Height: 1}}
	if _, err := New(cfg); !errors.Is(err, ErrInvalidLayout) {
		t.Fatalf("zero density should surface ErrInvalidLayout, got %v", err)
	}
}

func TestGustStaysInRange(t *testing.T) {
	g := NewGust(4)
	for i := 0; i < 500; i++ {
		s := g.Strength(float64(i)*0.037, 1, 0.75, 1)
		if s < 0.75 || s > 1 {
			t.Fatalf("strength %f outside [0.75, 1]", s)
		}
	}
	if a, b := NewGust(4).Sample(1.3, 2), NewGust(4).Sample(1.3, 2); a != b {
		t.Fatal("gust should be deterministic for a seed")
	}
}
