//go:build ebiten

package app

import (
	"image/color"
	"time"

	"verlet-cloth/internal/core"
	"verlet-cloth/internal/render"
	"verlet-cloth/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	hudWidth   = 240
	viewMargin = 16
)

// Game adapts a cloth simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.ClothPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	cam     render.Camera

	viewW, viewH int
	pixel        int
	tps          int

	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for sim with a view of w*h pixels plus the HUD.
func New(sim core.Sim, cfg *Config) *Game {
	g := &Game{
		sim:     sim,
		painter: render.NewClothPainter(),
		overlay: ui.NewOverlay(sim),
		hud:     ui.NewHUD(sim, hudWidth),
		viewW:   cfg.Width,
		viewH:   cfg.Height,
		pixel:   cfg.Scale,
		tps:     cfg.TPS,
		seed:    cfg.Seed,
	}
	g.cam = render.FitBounds(sim.Bounds(), g.viewW, g.viewH, viewMargin)
	return g
}

// WindowSize returns the outer window dimensions including the HUD.
func (g *Game) WindowSize() (int, int) {
	return g.viewW + g.hud.Width(), g.viewH
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles input and advances the simulation by one fixed tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyJ) {
		if s, ok := g.sim.(core.Scatterer); ok {
			s.Scatter()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.painter.Pixelated = !g.painter.Pixelated
	}

	consumed := g.hud.Update(g.viewW)
	if !consumed && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.push()
	}

	dt := float32(1)
	if g.tps > 0 {
		dt = 1 / float32(g.tps)
	}
	g.overlay.Update(dt)
	g.painter.Colorize = g.overlay.ShowVelocity()

	if !g.paused || g.tickOnce {
		g.sim.Step()
		g.tickOnce = false
	}
	return nil
}

func (g *Game) push() {
	p, ok := g.sim.(core.Pusher)
	if !ok {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx >= g.viewW || my >= g.viewH {
		return
	}
	at := g.cam.Unproject(float64(mx), float64(my))
	p.Push(at, g.cam.Forward())

	g.overlay.Pulse(float64(mx), float64(my), p.PushRadius()*g.cam.Scale)
}

// Draw renders the cloth, overlay and HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 8, G: 10, B: 14, A: 255})
	g.painter.Draw(screen, g.cam, g.sim.Points(), g.sim.Sticks(), g.pixel)
	g.overlay.Draw(screen, g.cam)
	g.hud.Draw(screen, g.viewW, g.viewH)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.WindowSize()
}
