// Package config loads level files: YAML descriptions of a maze, its agents
// and how long to run it. A level flattens into the key/value map that the
// sim registry factories accept.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Level holds one level file.
type Level struct {
	Sim    string      `yaml:"sim"`
	Seed   int64       `yaml:"seed"`
	Grid   GridConfig  `yaml:"grid"`
	Walls  WallsConfig `yaml:"walls"`
	Agents AgentConfig `yaml:"agents"`
	Run    RunConfig   `yaml:"run"`
}

// GridConfig sizes the maze. Face is used by the cube sim, Cols/Rows by the
// flat one.
type GridConfig struct {
	Cols int `yaml:"cols"`
	Rows int `yaml:"rows"`
	Face int `yaml:"face"`
}

// WallsConfig tunes the noise wall generator.
type WallsConfig struct {
	SouthProbability *float64 `yaml:"south_probability"`
	WestProbability  *float64 `yaml:"west_probability"`
	Scale            float64  `yaml:"scale"`
	OuterWalls       *bool    `yaml:"outer_walls"`
}

// AgentConfig sets population sizes. Nil counts keep the sim defaults.
type AgentConfig struct {
	Bouncers         *int    `yaml:"bouncers"`
	Seekers          *int    `yaml:"seekers"`
	Targets          *int    `yaml:"targets"`
	WanderingTargets *bool   `yaml:"wandering_targets"`
	Speed            float64 `yaml:"speed"` // cells per second
}

// RunConfig controls headless runs and the viewer tick rate.
type RunConfig struct {
	Ticks int     `yaml:"ticks"`
	DT    float64 `yaml:"dt"`
	TPS   int     `yaml:"tps"`
}

// Default returns the level used when no file is given.
func Default() *Level {
	l := &Level{}
	l.fillDefaults()
	return l
}

// Load reads a level from a YAML file.
func Load(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a level from YAML bytes and fills defaults.
func Parse(data []byte) (*Level, error) {
	var l Level
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("failed to parse level file: %w", err)
	}
	l.fillDefaults()
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

func (l *Level) fillDefaults() {
	if l.Sim == "" {
		l.Sim = "maze"
	}
	if l.Seed == 0 {
		l.Seed = 1337
	}
	if l.Run.Ticks == 0 {
		l.Run.Ticks = 1000
	}
	if l.Run.TPS == 0 {
		l.Run.TPS = 30
	}
}

// Validate rejects values no sim could use.
func (l *Level) Validate() error {
	g := l.Grid
	if g.Cols < 0 || g.Rows < 0 || g.Face < 0 {
		return fmt.Errorf("grid dimensions must not be negative: cols=%d rows=%d face=%d", g.Cols, g.Rows, g.Face)
	}
	if g.Cols == 1 || g.Rows == 1 || g.Face == 1 {
		return fmt.Errorf("grid dimensions must be at least 2: cols=%d rows=%d face=%d", g.Cols, g.Rows, g.Face)
	}
	if p := l.Walls.SouthProbability; p != nil && (*p < 0 || *p > 1) {
		return fmt.Errorf("walls.south_probability %v outside [0,1]", *p)
	}
	if p := l.Walls.WestProbability; p != nil && (*p < 0 || *p > 1) {
		return fmt.Errorf("walls.west_probability %v outside [0,1]", *p)
	}
	for name, n := range map[string]*int{"bouncers": l.Agents.Bouncers, "seekers": l.Agents.Seekers, "targets": l.Agents.Targets} {
		if n != nil && *n < 0 {
			return fmt.Errorf("agents.%s must not be negative: %d", name, *n)
		}
	}
	if l.Run.Ticks < 0 || l.Run.TPS < 0 || l.Run.DT < 0 {
		return fmt.Errorf("run values must not be negative")
	}
	return nil
}

// ToMap flattens the level into the key/value form the sim registry takes.
// Unset values are left out so the sim keeps its own defaults.
func (l *Level) ToMap() map[string]string {
	m := map[string]string{"seed": strconv.FormatInt(l.Seed, 10)}
	putInt := func(key string, v int) {
		if v > 0 {
			m[key] = strconv.Itoa(v)
		}
	}
	putFloat := func(key string, v float64) {
		if v > 0 {
			m[key] = strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	putInt("cols", l.Grid.Cols)
	putInt("rows", l.Grid.Rows)
	putInt("face", l.Grid.Face)
	if p := l.Walls.SouthProbability; p != nil {
		m["south_probability"] = strconv.FormatFloat(*p, 'f', -1, 64)
	}
	if p := l.Walls.WestProbability; p != nil {
		m["west_probability"] = strconv.FormatFloat(*p, 'f', -1, 64)
	}
	putFloat("noise_scale", l.Walls.Scale)
	if b := l.Walls.OuterWalls; b != nil {
		m["outer_walls"] = strconv.FormatBool(*b)
	}
	if n := l.Agents.Bouncers; n != nil {
		m["bouncers"] = strconv.Itoa(*n)
	}
	if n := l.Agents.Seekers; n != nil {
		m["seekers"] = strconv.Itoa(*n)
	}
	if n := l.Agents.Targets; n != nil {
		m["targets"] = strconv.Itoa(*n)
	}
	if b := l.Agents.WanderingTargets; b != nil {
		m["wandering_targets"] = strconv.FormatBool(*b)
	}
	putFloat("speed", l.Agents.Speed)
	putFloat("dt", l.Run.DT)
	return m
}
