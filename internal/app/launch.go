package app

import (
	"fmt"
	"strconv"
	"strings"

	"gridwalk/internal/config"
	"gridwalk/internal/core"
)

// Launch is a sim built from flags and an optional level file.
type Launch struct {
	Sim   core.Sim
	Level *config.Level
	TPS   int
	Seed  int64
}

// Resolve loads the level named by cfg, applies flag overrides and builds
// the sim. Flags win over the level: -sim, -seed, -tps and every -set pair.
func Resolve(cfg *Config) (*Launch, error) {
	level := config.Default()
	if cfg.Level != "" {
		var err error
		if level, err = config.Load(cfg.Level); err != nil {
			return nil, err
		}
	}

	name := level.Sim
	if cfg.Sim != "" {
		name = cfg.Sim
	}
	factory, ok := core.Sims()[name]
	if !ok {
		return nil, fmt.Errorf("unknown sim %q (have %s)", name, strings.Join(core.Names(), ", "))
	}

	settings := cfg.Set.Merge(level.ToMap())
	seed := level.Seed
	if cfg.Seed != 0 {
		seed = cfg.Seed
		settings["seed"] = strconv.FormatInt(seed, 10)
	}
	tps := level.Run.TPS
	if cfg.TPS > 0 {
		tps = cfg.TPS
	}
	return &Launch{Sim: factory(settings), Level: level, TPS: tps, Seed: seed}, nil
}
