package cloth

import (
	"verlet-cloth/internal/core"
	"verlet-cloth/internal/verlet"

	"github.com/go-gl/mathgl/mgl64"
)

// Sim adapts a verlet.World to the viewer-facing core.Sim contract.
type Sim struct {
	cfg   Config
	world *verlet.World
}

// New builds a cloth sim from cfg.
func New(cfg Config) (*Sim, error) {
	engine := cfg.Engine
	engine.Layout = cfg.BuildLayout()
	w, err := verlet.New(engine)
	if err != nil {
		return nil, err
	}
	return &Sim{cfg: cfg, world: w}, nil
}

func (s *Sim) Name() string { return s.cfg.Layout }

// Reset rebuilds the sheet at rest. A zero seed reuses the configured seed.
func (s *Sim) Reset(seed int64) { s.world.Reset(seed) }

func (s *Sim) Step() { s.world.Step() }

func (s *Sim) Points() []verlet.Point { return s.world.Points() }
func (s *Sim) Sticks() []verlet.Stick { return s.world.Sticks() }
func (s *Sim) Bounds() verlet.Bounds { return s.world.Bounds() }

// World exposes the underlying engine for diagnostics.
func (s *Sim) World() *verlet.World { return s.world }

// Config returns the active configuration, including parameter edits made
// since construction.
func (s *Sim) Config() Config {
	c := s.cfg
	c.Engine = s.world.Config()
	return c
}

// Push applies an impulse of the configured radius and strength centred on
// at. It reports the number of points moved.
func (s *Sim) Push(at, dir mgl64.Vec3) int {
	return s.world.ApplyImpulse(verlet.Impulse{
		Point:     at,
		Direction: dir,
		Radius:    s.cfg.Interaction.PushRadius,
		Strength:  s.cfg.Interaction.PushStrength,
	})
}

// PushRadius returns the world-space radius of Push.
func (s *Sim) PushRadius() float64 { return s.cfg.Interaction.PushRadius }

// Scatter jolts a handful of random points.
func (s *Sim) Scatter() {
	s.world.Scatter(s.cfg.Interaction.ScatterCount, s.cfg.Interaction.ScatterStrength)
}

// Diagnostics reports clock, wind and deformation figures.
func (s *Sim) Diagnostics() core.Diagnostics {
	maxStrain, meanStrain := s.world.Strain()
	return core.Diagnostics{
		Tick:       s.world.Tick(),
		Time:       s.world.Time(),
		Wind:       s.world.WindStrength(),
		MaxStrain:  maxStrain,
		MeanStrain: meanStrain,
		Energy:     s.world.KineticEnergy(),
	}
}

func init() {
	for _, name := range []string{LayoutGrid, LayoutCloth, LayoutFlag, LayoutPinned} {
		core.Register(name, func(cfg map[string]string) (core.Sim, error) {
			c := FromMap(cfg)
			c.Layout = name
			return New(c)
		})
	}
}
