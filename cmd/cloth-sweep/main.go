package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"verlet-cloth/internal/sims/cloth"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/guptarohit/asciigraph"
	"golang.org/x/sync/errgroup"
)

type scenario struct {
	layout     string
	iterations int
	friction   float64
}

func (s scenario) String() string {
	return fmt.Sprintf("%s iter=%d friction=%.3f", s.layout, s.iterations, s.friction)
}

type scenarioResult struct {
	scenario
	finalStrain float64
	meanStrain  float64
	peakStrain  float64
	energy      float64
	history     []float64
	elapsed     time.Duration
}

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	cellStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Padding(0, 1)
	bestStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Padding(0, 1)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
)

func main() {
	steps := flag.Int("steps", 400, "ticks to simulate per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	seed := flag.Int64("seed", 1, "seed shared by every scenario")
	layouts := flag.String("layouts", "grid,cloth,flag,pinned", "comma separated layouts to sweep")
	iterations := flag.String("iterations", "1,3,5,10", "comma separated relaxation counts")
	frictions := flag.String("friction", "0.99,0.995,0.999", "comma separated friction values")
	flag.Parse()

	iterOpts, err := parseInts(*iterations)
	if err != nil {
		log.Fatalf("-iterations: %v", err)
	}
	frictionOpts, err := parseFloats(*frictions)
	if err != nil {
		log.Fatalf("-friction: %v", err)
	}
	sets, err := buildScenarios(splitList(*layouts), iterOpts, frictionOpts)
	if err != nil {
		log.Fatal(err)
	}
	if len(sets) == 0 {
		log.Fatal("nothing to sweep")
	}

	log.Printf("sweeping %d scenarios (%d workers, %d steps)", len(sets), *workers, *steps)
	start := time.Now()
	results, err := sweep(context.Background(), sets, *steps, *seed, *workers)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("sweep finished in %s", time.Since(start).Round(time.Millisecond))

	sort.Slice(results, func(i, j int) bool {
		if results[i].layout != results[j].layout {
			return results[i].layout < results[j].layout
		}
		return results[i].finalStrain < results[j].finalStrain
	})
	fmt.Println(renderTable(results))
	fmt.Println(renderPlot(bestPerLayout(results)))
}

// buildScenarios returns the cross product of the sweep axes, rejecting
// values the engine would otherwise replace with its defaults.
func buildScenarios(layouts []string, iterations []int, frictions []float64) ([]scenario, error) {
	for _, layout := range layouts {
		switch layout {
		case cloth.LayoutGrid, cloth.LayoutCloth, cloth.LayoutFlag, cloth.LayoutPinned:
		default:
			return nil, fmt.Errorf("-layouts: unknown layout %q", layout)
		}
	}
	for _, it := range iterations {
		if it < 0 {
			return nil, fmt.Errorf("-iterations: %d must not be negative", it)
		}
	}
	for _, f := range frictions {
		if !(f >= 0 && f <= 1) {
			return nil, fmt.Errorf("-friction: %g outside [0, 1]", f)
		}
	}
	var sets []scenario
	for _, layout := range layouts {
		for _, it := range iterations {
			for _, f := range frictions {
				sets = append(sets, scenario{layout: layout, iterations: it, friction: f})
			}
		}
	}
	return sets, nil
}

// sweep runs every scenario on a bounded pool and returns the results in
// input order.
func sweep(ctx context.Context, sets []scenario, steps int, seed int64, workers int) ([]scenarioResult, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]scenarioResult, len(sets))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, s := range sets {
		g.Go(func() error {
			res, err := runScenario(ctx, s, steps, seed)
			if err != nil {
				return fmt.Errorf("%s: %w", s, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runScenario(ctx context.Context, s scenario, steps int, seed int64) (scenarioResult, error) {
	cfg := cloth.DefaultConfig()
	cfg.Layout = s.layout
	cfg.Engine.Seed = seed
	cfg.Engine.Iterations = s.iterations
	cfg.Engine.Forces.Friction = s.friction
	sim, err := cloth.New(cfg)
	if err != nil {
		return scenarioResult{}, err
	}

	start := time.Now()
	res := scenarioResult{scenario: s, history: make([]float64, 0, steps)}
	for step := 0; step < steps; step++ {
		if step%64 == 0 {
			if err := ctx.Err(); err != nil {
				return scenarioResult{}, err
			}
		}
		sim.Step()
		maxStrain, _ := sim.World().Strain()
		res.history = append(res.history, maxStrain)
		if maxStrain > res.peakStrain {
			res.peakStrain = maxStrain
		}
	}
	d := sim.Diagnostics()
	res.finalStrain = d.MaxStrain
	res.meanStrain = d.MeanStrain
	res.energy = d.Energy
	res.elapsed = time.Since(start)
	return res, nil
}

func bestPerLayout(results []scenarioResult) []scenarioResult {
	best := map[string]scenarioResult{}
	var order []string
	for _, r := range results {
		cur, ok := best[r.layout]
		if !ok {
			order = append(order, r.layout)
		}
		if !ok || r.finalStrain < cur.finalStrain {
			best[r.layout] = r
		}
	}
	out := make([]scenarioResult, 0, len(order))
	for _, layout := range order {
		out = append(out, best[layout])
	}
	return out
}

func renderTable(results []scenarioResult) string {
	best := map[string]float64{}
	for _, r := range bestPerLayout(results) {
		best[r.layout] = r.finalStrain
	}
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			r.layout,
			strconv.Itoa(r.iterations),
			fmt.Sprintf("%.3f", r.friction),
			fmt.Sprintf("%.5f", r.finalStrain),
			fmt.Sprintf("%.5f", r.meanStrain),
			fmt.Sprintf("%.5f", r.peakStrain),
			fmt.Sprintf("%.4f", r.energy),
			r.elapsed.Round(time.Millisecond).String(),
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		Headers("layout", "iter", "friction", "strain", "mean", "peak", "energy", "time").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			if row >= 0 && row < len(results) && results[row].finalStrain == best[results[row].layout] {
				return bestStyle
			}
			return cellStyle
		})
	return t.String()
}

var seriesColors = []asciigraph.AnsiColor{asciigraph.Red, asciigraph.Green, asciigraph.Yellow, asciigraph.Blue, asciigraph.Magenta}

func renderPlot(best []scenarioResult) string {
	if len(best) == 0 {
		return ""
	}
	series := make([][]float64, len(best))
	colors := make([]asciigraph.AnsiColor, len(best))
	legend := make([]string, len(best))
	for i, r := range best {
		series[i] = r.history
		colors[i] = seriesColors[i%len(seriesColors)]
		legend[i] = r.scenario.String()
	}
	chart := asciigraph.PlotMany(series,
		asciigraph.Height(12),
		asciigraph.Width(72),
		asciigraph.SeriesColors(colors...),
		asciigraph.Caption("max strain per tick, best run per layout"),
	)
	return graphStyle.Render(chart) + "\n" + dimStyle.Render(strings.Join(legend, "  |  "))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseInts(s string) ([]int, error) {
	var out []int
	for _, part := range splitList(s) {
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func parseFloats(s string) ([]float64, error) {
	var out []float64
	for _, part := range splitList(s) {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
