package swarm

import (
	"strconv"

	"gridwalk/internal/core"
)

func (w *World) Parameters() core.ParameterSnapshot {
	params := w.cfg.Params
	world := []core.Parameter{int64Param("seed", "Seed", w.seed)}
	if w.cfg.Cube {
		world = append(world, intParam("face", "Face size", w.cfg.Face))
	} else {
		world = append(world,
			intParam("cols", "Columns", w.cfg.Cols),
			intParam("rows", "Rows", w.cfg.Rows),
		)
	}
	groups := []core.ParameterGroup{
		{Name: "World", Params: world},
		{
			Name: "Walls",
			Params: []core.Parameter{
				floatParam("south_probability", "South wall chance", params.SouthProbability),
				floatParam("west_probability", "West wall chance", params.WestProbability),
				floatParam("noise_scale", "Noise scale", params.NoiseScale),
				boolParam("outer_walls", "Outer walls", params.OuterWalls),
			},
		},
		{
			Name: "Agents",
			Params: []core.Parameter{
				intParam("bouncers", "Bouncers", params.Bouncers),
				intParam("seekers", "Seekers", params.Seekers),
				intParam("targets", "Targets", params.Targets),
				boolParam("wandering_targets", "Wandering targets", params.WanderingTargets),
				floatParam("speed", "Speed", params.Speed),
			},
		},
		{
			Name: "Status",
			Params: []core.Parameter{
				intParam("tick", "Tick", int(w.ticks)),
				intParam("stationary", "Stationary", w.Stationary()),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the values the HUD may adjust. Changing any of them
// rebuilds the maze with the current seed.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "south_probability", Label: "South walls", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "west_probability", Label: "West walls", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "noise_scale", Label: "Noise scale", Type: core.ParamTypeFloat, Step: 0.05, Min: 0.05, Max: 2, HasMin: true, HasMax: true},
		{Key: "bouncers", Label: "Bouncers", Type: core.ParamTypeInt, Step: 10, Min: 0, Max: 5000, HasMin: true, HasMax: true},
		{Key: "seekers", Label: "Seekers", Type: core.ParamTypeInt, Step: 10, Min: 0, Max: 5000, HasMin: true, HasMax: true},
		{Key: "targets", Label: "Targets", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: 16, HasMin: true, HasMax: true},
		{Key: "speed", Label: "Speed", Type: core.ParamTypeFloat, Step: 0.5, Min: 0.5, Max: 19, HasMin: true, HasMax: true},
	}
}

// SetIntParameter updates an agent count and respawns the world.
func (w *World) SetIntParameter(key string, value int) bool {
	if value < 0 {
		return false
	}
	p := &w.cfg.Params
	switch key {
	case "bouncers":
		p.Bouncers = value
	case "seekers":
		p.Seekers = value
	case "targets":
		p.Targets = value
	default:
		return false
	}
	w.Reset(w.seed)
	return true
}

// SetFloatParameter updates a wall or movement tunable and rebuilds the world.
func (w *World) SetFloatParameter(key string, value float64) bool {
	p := &w.cfg.Params
	switch key {
	case "south_probability":
		p.SouthProbability = clamp01(value)
	case "west_probability":
		p.WestProbability = clamp01(value)
	case "noise_scale":
		if value <= 0 {
			return false
		}
		p.NoiseScale = value
	case "speed":
		if value <= 0 || value*p.DT >= 1 {
			return false
		}
		p.Speed = value
	default:
		return false
	}
	w.Reset(w.seed)
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeBool,
		Value: strconv.FormatBool(value),
	}
}
