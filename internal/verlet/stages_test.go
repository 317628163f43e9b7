package verlet

import (
	"math"
	"testing"

	"verlet-cloth/pkg/core"

	"github.com/go-gl/mathgl/mgl64"
)

func TestIntegrateSinglePointUnderGravity(t *testing.T) {
	s := NewStore(0, 0)
	if _, err := Build(s, OpenGrid{GridSpec{Origin: mgl64.Vec3{0, 3, 0}, Width: 1, Height: 1, Density: 1}}); err != nil {
		t.Fatal(err)
	}
	pts := s.Points()
	if len(pts) != 1 || len(s.Sticks()) != 0 {
		t.Fatalf("expected a single point, got %d points %d sticks", len(pts), len(s.Sticks()))
	}
	before := pts[0].Pos

	Integrate(pts, Forces{Gravity: mgl64.Vec3{0, -1, 0}, Friction: 1}, 0, 1, nil)

	if got := pts[0].Pos.Y(); got != before.Y()-1 {
		t.Fatalf("y should drop by exactly 1, got %f from %f", got, before.Y())
	}
	if pts[0].Prev != before {
		t.Fatalf("prev should equal the pre-tick position, got %v", pts[0].Prev)
	}
}

func TestIntegrateAppliesDampedVelocityAndWind(t *testing.T) {
	pts := []Point{{Pos: mgl64.Vec3{1, 0, 0}, Prev: mgl64.Vec3{0, 0, 0}}}
	f := Forces{Wind: mgl64.Vec3{0, 0, 2}, Friction: 0.5}
	Integrate(pts, f, 0.25, 0.1, nil)

	want := mgl64.Vec3{1.5, 0, 0.05}
	if !pts[0].Pos.ApproxEqualThreshold(want, 1e-12) {
		t.Fatalf("got %v want %v", pts[0].Pos, want)
	}
	if pts[0].Prev != (mgl64.Vec3{1, 0, 0}) {
		t.Fatalf("prev should be the old position, got %v", pts[0].Prev)
	}
}

func TestIntegrateSkipsPinnedPoints(t *testing.T) {
	pts := []Point{
		{Pos: mgl64.Vec3{0, 1, 0}, Prev: mgl64.Vec3{0.3, 1.2, 0}, Pinned: true},
		{Pos: mgl64.Vec3{0, 0, 0}, Prev: mgl64.Vec3{0, 0, 0}},
	}
	rng := core.NewRNG(5)
	f := Forces{Gravity: mgl64.Vec3{0, -9, 0}, Wind: mgl64.Vec3{3, 0, 0}, NoiseStrength: 2, Friction: 0.99}
	for i := 0; i < 10; i++ {
		Integrate(pts, f, 1, 0.02, rng)
		if pts[0].Pos != (mgl64.Vec3{0, 1, 0}) {
			t.Fatalf("pinned point moved to %v", pts[0].Pos)
		}
		if pts[0].Velocity() != (mgl64.Vec3{}) {
			t.Fatalf("pinned point has velocity %v", pts[0].Velocity())
		}
	}
	if pts[1].Pos == (mgl64.Vec3{}) {
		t.Fatal("free point should have moved")
	}
}

func TestIntegrateNoiseIsResampledPerPoint(t *testing.T) {
	pts := make([]Point, 2)
	Integrate(pts, Forces{NoiseStrength: 1, Friction: 1}, 0, 1, core.NewRNG(3))
	if pts[0].Pos == pts[1].Pos {
		t.Fatal("two points received identical jitter")
	}
	for i, p := range pts {
		if l := p.Pos.Len(); math.Abs(l-1) > 1e-9 {
			t.Fatalf("point %d jitter magnitude %f, want 1", i, l)
		}
	}
}

func TestRelaxTwoPointsOnePass(t *testing.T) {
	pts := []Point{
		{Pos: mgl64.Vec3{0, 0, 0}},
		{Pos: mgl64.Vec3{2, 0, 0}},
	}
	sticks := []Stick{{A: 0, B: 1, RestLength: 1}}
	Relax(pts, sticks)

	if !pts[0].Pos.ApproxEqualThreshold(mgl64.Vec3{0.5, 0, 0}, 1e-12) ||
		!pts[1].Pos.ApproxEqualThreshold(mgl64.Vec3{1.5, 0, 0}, 1e-12) {
		t.Fatalf("points should move symmetrically, got %v and %v", pts[0].Pos, pts[1].Pos)
	}
	if d := pts[1].Pos.Sub(pts[0].Pos).Len(); math.Abs(d-1) > 1e-12 {
		t.Fatalf("distance after one pass %f, want 1", d)
	}
}

func TestRelaxPinnedEndpoint(t *testing.T) {
	pts := []Point{
		{Pos: mgl64.Vec3{0, 0, 0}, Pinned: true},
		{Pos: mgl64.Vec3{0, -3, 0}},
	}
	Relax(pts, []Stick{{A: 0, B: 1, RestLength: 1}})
	if pts[0].Pos != (mgl64.Vec3{}) {
		t.Fatalf("pinned endpoint moved to %v", pts[0].Pos)
	}
	// The free point only receives its half of the correction.
	if got := pts[1].Pos.Y(); math.Abs(got+2) > 1e-12 {
		t.Fatalf("free endpoint at y=%f want -2", got)
	}

	both := []Point{{Pinned: true}, {Pos: mgl64.Vec3{5, 0, 0}, Pinned: true}}
	Relax(both, []Stick{{A: 0, B: 1, RestLength: 1}})
	if both[1].Pos.X() != 5 {
		t.Fatal("a stick between two pinned points must not move them")
	}
}

func TestRelaxIsolatedStickConvergesMonotonically(t *testing.T) {
	pts := []Point{
		{Pos: mgl64.Vec3{0, 0, 0}, Pinned: true},
		{Pos: mgl64.Vec3{4, 1, -1}},
	}
	sticks := []Stick{{A: 0, B: 1, RestLength: 1}}
	residual := func() float64 {
		return math.Abs(sticks[0].RestLength - pts[1].Pos.Sub(pts[0].Pos).Len())
	}

	prev := residual()
	for i := 0; i < 60; i++ {
		Relax(pts, sticks)
		cur := residual()
		if cur > prev+1e-15 {
			t.Fatalf("pass %d increased the residual from %g to %g", i, prev, cur)
		}
		prev = cur
	}
	if prev > 1e-9 {
		t.Fatalf("stick did not converge, residual %g", prev)
	}
}

func TestRelaxChainConverges(t *testing.T) {
	pts := []Point{
		{Pos: mgl64.Vec3{0, 0, 0}},
		{Pos: mgl64.Vec3{0.3, 0.2, 0}},
		{Pos: mgl64.Vec3{4, 1, -1}},
	}
	sticks := []Stick{{A: 0, B: 1, RestLength: 1}, {A: 1, B: 2, RestLength: 1}}
	for i := 0; i < 200; i++ {
		Relax(pts, sticks)
	}
	for i, s := range sticks {
		d := pts[s.B].Pos.Sub(pts[s.A].Pos).Len()
		if math.Abs(d-s.RestLength) > 1e-6 {
			t.Fatalf("stick %d length %f did not reach %f", i, d, s.RestLength)
		}
	}
}

func TestRelaxSkipsCoincidentPoints(t *testing.T) {
	pts := []Point{{Pos: mgl64.Vec3{1, 1, 1}}, {Pos: mgl64.Vec3{1, 1, 1}}}
	Relax(pts, []Stick{{A: 0, B: 1, RestLength: 0.5}})
	for i, p := range pts {
		for axis := 0; axis < 3; axis++ {
			if math.IsNaN(p.Pos[axis]) || math.IsInf(p.Pos[axis], 0) {
				t.Fatalf("point %d became non-finite: %v", i, p.Pos)
			}
		}
	}
}

func TestConstrainClampsAndBounces(t *testing.T) {
	b := Bounds{Extents: mgl64.Vec3{1, 1, 1}}
	pts := []Point{
		{Pos: mgl64.Vec3{1.5, 0, 0}, Prev: mgl64.Vec3{1.3, 0, 0}},
		{Pos: mgl64.Vec3{-2, -3, 4}, Prev: mgl64.Vec3{-1.5, -2, 3}},
	}
	Constrain(pts, b, 1, 0.5, true)

	if pts[0].Pos.X() != 1 {
		t.Fatalf("x should clamp to 1, got %f", pts[0].Pos.X())
	}
	// Pre-clamp velocity was +0.2; the reflected velocity is -0.1.
	if v := pts[0].Velocity().X(); math.Abs(v+0.1) > 1e-12 {
		t.Fatalf("reflected velocity %f want -0.1", v)
	}

	want := mgl64.Vec3{-1, -1, 1}
	if pts[1].Pos != want {
		t.Fatalf("corner point should clamp on all axes, got %v", pts[1].Pos)
	}
	wantV := mgl64.Vec3{0.25, 0.5, -0.5}
	if !pts[1].Velocity().ApproxEqualThreshold(wantV, 1e-12) {
		t.Fatalf("corner velocity %v want %v", pts[1].Velocity(), wantV)
	}
}

func TestConstrainPinnedPolicy(t *testing.T) {
	b := Bounds{Extents: mgl64.Vec3{1, 1, 1}}
	outside := mgl64.Vec3{0, 3, 0}

	skip := []Point{{Pos: outside, Prev: outside, Pinned: true}}
	Constrain(skip, b, 1, 1, false)
	if skip[0].Pos != outside {
		t.Fatalf("pinned point should be left alone, moved to %v", skip[0].Pos)
	}

	clamp := []Point{{Pos: outside, Prev: outside, Pinned: true}}
	Constrain(clamp, b, 1, 1, true)
	if clamp[0].Pos.Y() != 1 {
		t.Fatalf("pinned point should be clamped when included, at %v", clamp[0].Pos)
	}
}

func TestConstrainKeepsPointsInside(t *testing.T) {
	b := Bounds{Center: mgl64.Vec3{1, 2, 3}, Extents: mgl64.Vec3{2, 0.5, 1}}
	rng := core.NewRNG(11)
	pts := make([]Point, 200)
	for i := range pts {
		pts[i].Pos = rng.RangeVec3(-10, 10)
		pts[i].Prev = rng.RangeVec3(-10, 10)
	}
	Constrain(pts, b, 0.999, 0.9, true)
	for i, p := range pts {
		if !b.Contains(p.Pos) {
			t.Fatalf("point %d at %v escaped %v..%v", i, p.Pos, b.Min(), b.Max())
		}
	}
}

func TestImpulseFalloff(t *testing.T) {
	if got := Falloff(0, 2); got != 1 {
		t.Fatalf("falloff at centre %f want 1", got)
	}
	if got := Falloff(2, 2); got != 0 {
		t.Fatalf("falloff at radius %f want 0", got)
	}
	if got := Falloff(1, 2); got != 0.5 {
		t.Fatalf("falloff halfway %f want 0.5", got)
	}

	pts := []Point{
		{Pos: mgl64.Vec3{0, 0, 0}},
		{Pos: mgl64.Vec3{1, 0, 0}},
		{Pos: mgl64.Vec3{2, 0, 0}},
		{Pos: mgl64.Vec3{3, 0, 0}},
	}
	for i := range pts {
		pts[i].Prev = pts[i].Pos
	}
	imp := Impulse{Direction: mgl64.Vec3{0, 0, 1}, Radius: 2, Strength: 0.1}
	n := ApplyImpulse(pts, imp, InteractSpatial, mgl64.Vec3{})
	if n != 2 {
		t.Fatalf("expected 2 points touched, got %d", n)
	}
	if v := pts[0].Velocity(); !v.ApproxEqualThreshold(mgl64.Vec3{0, 0, 0.1}, 1e-12) {
		t.Fatalf("centre point velocity %v want full strength", v)
	}
	if v := pts[1].Velocity(); !v.ApproxEqualThreshold(mgl64.Vec3{0, 0, 0.05}, 1e-12) {
		t.Fatalf("halfway point velocity %v want half strength", v)
	}
	for _, i := range []int{2, 3} {
		if pts[i].Prev != pts[i].Pos {
			t.Fatalf("point %d at or beyond radius was mutated", i)
		}
	}
	for i, p := range pts {
		if p.Pos != (mgl64.Vec3{float64(i), 0, 0}) {
			t.Fatalf("impulse must not move positions, point %d at %v", i, p.Pos)
		}
	}
}

func TestImpulsePlanarIgnoresDepth(t *testing.T) {
	pts := []Point{{Pos: mgl64.Vec3{0, 0, 5}}}
	pts[0].Prev = pts[0].Pos
	imp := Impulse{Direction: mgl64.Vec3{0, 0, 1}, Radius: 1, Strength: 1}

	if n := ApplyImpulse(pts, imp, InteractSpatial, mgl64.Vec3{0, 0, 1}); n != 0 {
		t.Fatal("spatial mode should treat the point as out of range")
	}
	if n := ApplyImpulse(pts, imp, InteractPlanar, mgl64.Vec3{0, 0, 2}); n != 1 {
		t.Fatal("planar mode should project out the depth offset")
	}
	if v := pts[0].Velocity().Z(); math.Abs(v-1) > 1e-12 {
		t.Fatalf("planar impulse at centre should be full strength, got %f", v)
	}
	if n := ApplyImpulse(pts, Impulse{Radius: 0, Strength: 1}, InteractSpatial, mgl64.Vec3{}); n != 0 {
		t.Fatal("zero radius must be a no-op")
	}
}

func TestScatterOnlyTouchesPrevious(t *testing.T) {
	pts := make([]Point, 8)
	Scatter(pts, core.NewRNG(2), 20, 0.5)
	moved := false
	for _, p := range pts {
		if p.Pos != (mgl64.Vec3{}) {
			t.Fatal("scatter must not move positions")
		}
		for axis := 0; axis < 3; axis++ {
			if p.Prev[axis] < -0.25*20 || p.Prev[axis] > 0.5*20 {
				t.Fatalf("offset %v out of range", p.Prev)
			}
		}
		if p.Prev != (mgl64.Vec3{}) {
			moved = true
		}
	}
	if !moved {
		t.Fatal("scatter should jolt at least one point")
	}
}
