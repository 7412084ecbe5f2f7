package app

import (
	"flag"
	"fmt"
	"sort"
	"strings"
)

// Config holds the viewer's command-line parameters.
type Config struct {
	Sim      string
	Scale    int
	TPS      int
	Seed     int64
	Level    string
	HUDWidth int
	Set      KV
}

// NewConfig returns a Config populated with viewer defaults.
func NewConfig() *Config {
	return &Config{Scale: 3, HUDWidth: 240, Set: KV{}}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run (default from the level, else maze)")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second (0 uses the level's)")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset (0 keeps the level seed)")
	fs.StringVar(&c.Level, "level", c.Level, "YAML level file")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "HUD panel width in pixels, 0 hides it")
	fs.Var(c.Set, "set", "sim setting as key=value, repeatable")
}

// KV collects repeated key=value flags.
type KV map[string]string

func (kv KV) String() string {
	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + kv[k]
	}
	return strings.Join(parts, ",")
}

// Set parses one key=value pair. Comma-separated pairs are accepted too.
func (kv KV) Set(s string) error {
	for _, pair := range strings.Split(s, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || k == "" {
			return fmt.Errorf("expected key=value, got %q", pair)
		}
		kv[k] = v
	}
	return nil
}

// Merge returns base overlaid with kv. base is not modified.
func (kv KV) Merge(base map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(kv))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range kv {
		out[k] = v
	}
	return out
}
