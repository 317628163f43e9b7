package verlet

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Point is a simulated mass. Its velocity is implicit: Pos - Prev.
type Point struct {
	Pos    mgl64.Vec3
	Prev   mgl64.Vec3
	Pinned bool
}

// Velocity returns the implicit per-tick velocity of the point.
func (p Point) Velocity() mgl64.Vec3 { return p.Pos.Sub(p.Prev) }

// Stick is a distance constraint between two points of a Store.
type Stick struct {
	A, B       int
	RestLength float64
}

// Segment is a pair of stick endpoint positions handed to renderers.
type Segment struct {
	A, B mgl64.Vec3
}

// Store is the arena holding every point and stick of a simulation. Sticks
// reference points by index, so the point slice must never be reordered.
type Store struct {
	points []Point
	sticks []Stick
}

// NewStore allocates a store with capacity hints.
func NewStore(points, sticks int) *Store {
	return &Store{
		points: make([]Point, 0, points),
		sticks: make([]Stick, 0, sticks),
	}
}

// AddPoint appends a resting point and returns its index.
func (s *Store) AddPoint(pos mgl64.Vec3, pinned bool) int {
	s.points = append(s.points, Point{Pos: pos, Prev: pos, Pinned: pinned})
	return len(s.points) - 1
}

// AddStick connects points a and b, capturing their current distance as the
// rest length. It panics on invalid indices or a self-connection.
func (s *Store) AddStick(a, b int) int {
	if a < 0 || a >= len(s.points) || b < 0 || b >= len(s.points) {
		panic(fmt.Sprintf("verlet: stick %d-%d out of range (points=%d)", a, b, len(s.points)))
	}
	if a == b {
		panic(fmt.Sprintf("verlet: stick connects point %d to itself", a))
	}
	rest := s.points[b].Pos.Sub(s.points[a].Pos).Len()
	s.sticks = append(s.sticks, Stick{A: a, B: b, RestLength: rest})
	return len(s.sticks) - 1
}

// Pin marks point i immovable and zeroes its implicit velocity.
func (s *Store) Pin(i int) {
	p := &s.points[i]
	p.Pinned = true
	p.Prev = p.Pos
}

// Points exposes the point arena. Callers outside the stages must treat it
// as read-only.
func (s *Store) Points() []Point { return s.points }

// Sticks exposes the constraints.
func (s *Store) Sticks() []Stick { return s.sticks }

// Ends returns the current endpoint positions of stick i.
func (s *Store) Ends(i int) (mgl64.Vec3, mgl64.Vec3) {
	st := s.sticks[i]
	return s.points[st.A].Pos, s.points[st.B].Pos
}

// Len reports the number of points.
func (s *Store) Len() int { return len(s.points) }

// Reset drops all points and sticks, keeping the backing arrays.
func (s *Store) Reset() {
	s.points = s.points[:0]
	s.sticks = s.sticks[:0]
}
