package core

import (
	"fmt"
	"sort"

	"verlet-cloth/internal/verlet"

	"github.com/go-gl/mathgl/mgl64"
)

// Sim defines the contract viewers rely on to drive and draw a cloth
// simulation.
type Sim interface {
	Name() string
	Reset(seed int64)
	Step()

	Points() []verlet.Point
	Sticks() []verlet.Stick
	Bounds() verlet.Bounds
}

// Pusher is implemented by sims that accept user impulses. at is a world
// point on the interaction plane and dir the push direction.
type Pusher interface {
	Push(at, dir mgl64.Vec3) int
	PushRadius() float64
}

// Scatterer is implemented by sims that can randomly jolt their points.
type Scatterer interface {
	Scatter()
}

// Diagnostics summarizes the state of a running sim for status lines and
// sweeps.
type Diagnostics struct {
	Tick       int
	Time       float64
	Wind       float64
	MaxStrain  float64
	MeanStrain float64
	Energy     float64
}

// DiagnosticsProvider is implemented by sims that report Diagnostics.
type DiagnosticsProvider interface {
	Diagnostics() Diagnostics
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) (Sim, error)

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}

// Names returns the registered sim names in sorted order.
func Names() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New looks up name in the registry and constructs it.
func New(name string, cfg map[string]string) (Sim, error) {
	f, ok := sims[name]
	if !ok {
		return nil, fmt.Errorf("unknown sim %q (available: %v)", name, Names())
	}
	return f(cfg)
}
