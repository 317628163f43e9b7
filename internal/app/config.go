package app

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment keys read by LoadEnv. Flags parsed afterwards take precedence.
// CLOTH_SET holds key=value pairs separated by semicolons.
const (
	EnvSim   = "CLOTH_SIM"
	EnvScale = "CLOTH_SCALE"
	EnvTPS   = "CLOTH_TPS"
	EnvSeed  = "CLOTH_SEED"
	EnvSet   = "CLOTH_SET"
)

// Config represents the command-line parameters shared by the viewers.
type Config struct {
	Sim    string
	Width  int
	Height int
	Scale  int
	TPS    int
	Seed   int64
	Set    Overrides
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "cloth", Width: 960, Height: 720, Scale: 4, TPS: 50, Seed: 1, Set: Overrides{}}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run (grid, cloth, flag, pinned)")
	fs.IntVar(&c.Width, "w", c.Width, "window width in pixels")
	fs.IntVar(&c.Height, "h", c.Height, "window height in pixels")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel size used by the pixelated renderer")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.Var(c.Set, "set", "sim option as key=value (repeatable)")
}

// Options returns the sim option map handed to the registry factory. The
// seed flag and a timestep of 1/TPS are folded in unless explicit overrides
// exist.
func (c *Config) Options() map[string]string {
	out := make(map[string]string, len(c.Set)+2)
	out["seed"] = strconv.FormatInt(c.Seed, 10)
	if c.TPS > 0 {
		out["timestep"] = strconv.FormatFloat(1/float64(c.TPS), 'g', -1, 64)
	}
	for k, v := range c.Set {
		out[k] = v
	}
	return out
}

// LoadEnv applies CLOTH_* variables from the given dotenv files (".env" when
// none are named) and then from the process environment. Missing files are
// not an error.
func (c *Config) LoadEnv(files ...string) error {
	env, err := godotenv.Read(files...)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read env: %w", err)
	}
	if env == nil {
		env = map[string]string{}
	}
	for _, key := range []string{EnvSim, EnvScale, EnvTPS, EnvSeed, EnvSet} {
		if v, ok := os.LookupEnv(key); ok {
			env[key] = v
		}
	}
	return c.applyEnv(env)
}

func (c *Config) applyEnv(env map[string]string) error {
	if v := env[EnvSim]; v != "" {
		c.Sim = v
	}
	if v, ok := env[EnvScale]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Scale = parsed
		}
	}
	if v, ok := env[EnvTPS]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.TPS = parsed
		}
	}
	if v, ok := env[EnvSeed]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v := env[EnvSet]; v != "" {
		if c.Set == nil {
			c.Set = Overrides{}
		}
		for _, pair := range strings.Split(v, ";") {
			if err := c.Set.Set(pair); err != nil {
				return fmt.Errorf("%s: %w", EnvSet, err)
			}
		}
	}
	return nil
}

// Overrides collects repeated key=value flags.
type Overrides map[string]string

func (o Overrides) String() string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + o[k]
	}
	return strings.Join(parts, ",")
}

// Set parses one key=value pair.
func (o Overrides) Set(s string) error {
	key, value, ok := strings.Cut(strings.TrimSpace(s), "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return fmt.Errorf("override %q: want key=value", s)
	}
	o[key] = strings.TrimSpace(value)
	return nil
}
