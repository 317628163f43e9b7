package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"verlet-cloth/internal/app"
	"verlet-cloth/internal/core"
	"verlet-cloth/internal/render"
	_ "verlet-cloth/internal/sims/cloth"

	"github.com/gdamore/tcell/v2"
)

// Each terminal row holds two raster rows drawn with half blocks, which
// keeps raster cells roughly square.
const subRows = 2

var levelColors = map[uint8]tcell.Color{
	render.StickSlow:     tcell.ColorSilver,
	render.StickSlow + 1: tcell.ColorAqua,
	render.StickSlow + 2: tcell.ColorYellow,
	render.StickFast:     tcell.ColorRed,
	render.PinCell:       tcell.ColorFuchsia,
}

type viewer struct {
	sim    core.Sim
	screen tcell.Screen
	clock  *core.FixedStep
	raster *core.Raster
	cam    render.Camera

	seed     int64
	paused   bool
	tickOnce bool
	pressed  bool
}

func main() {
	cfg := app.NewConfig()
	if err := cfg.LoadEnv(); err != nil {
		log.Fatal(err)
	}
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	sim, err := core.New(cfg.Sim, cfg.Options())
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	screen.EnableMouse()

	v := &viewer{
		sim:    sim,
		screen: screen,
		clock:  core.NewFixedStep(cfg.TPS),
		raster: core.NewRaster(1, 1),
		seed:   cfg.Seed,
	}
	v.resize()
	v.run()
	screen.Fini()
}

// pumpEvents forwards polled events until poll returns nil or done is closed.
func pumpEvents(poll func() tcell.Event, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := poll()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func (v *viewer) run() {
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go pumpEvents(v.screen.PollEvent, events, done)

	for {
		select {
		case ev := <-events:
			if !v.handle(ev) {
				return
			}
		case <-ticker.C:
			for n := v.clock.Due(); n > 0; n-- {
				if !v.paused {
					v.sim.Step()
				}
			}
			if v.tickOnce {
				v.sim.Step()
				v.tickOnce = false
			}
			v.draw()
		}
	}
}

func (v *viewer) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			v.paused = !v.paused
		case 'n':
			v.tickOnce = true
		case 'r':
			v.sim.Reset(v.seed)
		case 's':
			v.seed = time.Now().UnixNano()
			v.sim.Reset(v.seed)
		case 'j':
			if s, ok := v.sim.(core.Scatterer); ok {
				s.Scatter()
			}
		}
	case *tcell.EventMouse:
		down := ev.Buttons()&tcell.Button1 != 0
		if down && !v.pressed {
			x, y := ev.Position()
			v.push(x, y)
		}
		v.pressed = down
	case *tcell.EventResize:
		v.screen.Sync()
		v.resize()
	}
	return true
}

func (v *viewer) push(col, row int) {
	p, ok := v.sim.(core.Pusher)
	if !ok {
		return
	}
	at := v.cam.Unproject(float64(col)+0.5, float64(row*subRows)+1)
	p.Push(at, v.cam.Forward())
}

func (v *viewer) resize() {
	w, h := v.screen.Size()
	rows := h - 1
	if rows < 1 {
		rows = 1
	}
	v.cam = render.FitBounds(v.sim.Bounds(), w, rows*subRows, 1)
	v.raster.Resize(v.cam.W, v.cam.H)
}

func (v *viewer) draw() {
	v.screen.Clear()
	render.Rasterize(v.raster, v.cam, v.sim.Points(), v.sim.Sticks(), render.MaxSpeed(v.sim.Points()))

	for row := 0; row*subRows < v.raster.H; row++ {
		for col := 0; col < v.raster.W; col++ {
			top := v.raster.At(col, row*subRows)
			bottom := v.raster.At(col, row*subRows+1)
			r, level := halfBlock(top, bottom)
			if r == ' ' {
				continue
			}
			style := tcell.StyleDefault.Foreground(levelColors[level])
			v.screen.SetContent(col, row, r, nil, style)
		}
	}
	v.drawStatus()
	v.screen.Show()
}

func (v *viewer) drawStatus() {
	_, h := v.screen.Size()
	line := " " + v.sim.Name()
	if d, ok := v.sim.(core.DiagnosticsProvider); ok {
		diag := d.Diagnostics()
		line += fmt.Sprintf("  tick %d  wind %.2f  strain %.4f", diag.Tick, diag.Wind, diag.MaxStrain)
	}
	line += "  | [space] pause [n] step [r] reset [s] reseed [j] scatter [q] quit"
	if v.paused {
		line = " PAUSED" + line
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for i, r := range line {
		v.screen.SetContent(i, h-1, r, nil, style)
	}
}

// halfBlock picks the glyph for a terminal cell covering two raster rows and
// the cell value that decides its colour.
func halfBlock(top, bottom uint8) (rune, uint8) {
	switch {
	case top != 0 && bottom != 0:
		return '█', max(top, bottom)
	case top != 0:
		return '▀', top
	case bottom != 0:
		return '▄', bottom
	default:
		return ' ', 0
	}
}
