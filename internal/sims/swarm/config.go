package swarm

import "strconv"

// Params holds the tunables shared by both topologies.
type Params struct {
	SouthProbability float64
	WestProbability  float64
	NoiseScale       float64
	OuterWalls       bool

	Bouncers int
	Seekers  int
	Targets  int
	// WanderingTargets lets targets bounce through the maze instead of
	// sitting still.
	WanderingTargets bool

	// Speed is in cells per second.
	Speed float64
	// DT is the fixed simulated time per Step, clamped to MaxDT.
	DT float64
}

// Config controls a swarm world.
type Config struct {
	// Cube folds six Face×Face grids into a cube; otherwise the grid is
	// Cols×Rows.
	Cube bool
	Cols int
	Rows int
	Face int

	Seed int64

	Params Params
}

// MaxDT bounds one step so Speed*DT stays below a cell width.
const MaxDT = 0.05

// DefaultConfig returns the flat maze configuration.
func DefaultConfig() Config {
	return Config{
		Cols: 48,
		Rows: 32,
		Face: 16,
		Seed: 1337,
		Params: Params{
			SouthProbability: 0.38,
			WestProbability:  0.38,
			NoiseScale:       0.37,
			OuterWalls:       true,
			Bouncers:         40,
			Seekers:          60,
			Targets:          2,
			WanderingTargets: true,
			Speed:            4,
			DT:               MaxDT,
		},
	}
}

// DefaultCubeConfig returns the folded cube configuration. Seams are left
// open so agents can travel between faces.
func DefaultCubeConfig() Config {
	c := DefaultConfig()
	c.Cube = true
	c.Params.OuterWalls = false
	c.Params.Bouncers = 60
	c.Params.Seekers = 90
	c.Params.Targets = 3
	return c
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Dimensions are taken as given so New can reject malformed ones.
func FromMap(cfg map[string]string) Config {
	return applyMap(DefaultConfig(), cfg)
}

// CubeFromMap is FromMap starting from the cube defaults.
func CubeFromMap(cfg map[string]string) Config {
	return applyMap(DefaultCubeConfig(), cfg)
}

func applyMap(c Config, cfg map[string]string) Config {
	if cfg == nil {
		return c
	}
	if v, ok := cfg["cols"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Cols = parsed
		}
	}
	if v, ok := cfg["rows"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Rows = parsed
		}
	}
	if v, ok := cfg["face"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Face = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["south_probability"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.SouthProbability = clamp01(parsed)
		}
	}
	if v, ok := cfg["west_probability"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.WestProbability = clamp01(parsed)
		}
	}
	if v, ok := cfg["noise_scale"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Params.NoiseScale = parsed
		}
	}
	if v, ok := cfg["outer_walls"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Params.OuterWalls = parsed
		}
	}
	if v, ok := cfg["bouncers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.Bouncers = parsed
		}
	}
	if v, ok := cfg["seekers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.Seekers = parsed
		}
	}
	if v, ok := cfg["targets"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.Targets = parsed
		}
	}
	if v, ok := cfg["wandering_targets"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Params.WanderingTargets = parsed
		}
	}
	if v, ok := cfg["speed"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Params.Speed = parsed
		}
	}
	if v, ok := cfg["dt"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Params.DT = parsed
		}
	}
	if c.Params.DT > MaxDT {
		c.Params.DT = MaxDT
	}
	// Keep a single step shorter than one cell.
	if c.Params.Speed*c.Params.DT >= 1 {
		c.Params.Speed = 0.99 / c.Params.DT
	}
	return c
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
