package sim

import (
	"log"
	"os"

	"torusim/core"
)

// Run constructs an engine from cfg, drives it to completion, and
// returns the final report plus (if Render is configured) writes an
// SVG snapshot of the final torus state.
func Run(cfg *Config) (core.Report, error) {
	prng := NewRandPRNG(cfg.Seed)
	counters := NewCounters()
	logger := log.New(os.Stderr, "dbg: ", log.LstdFlags)

	e, err := core.NewEngine(*cfg.Core, prng, counters, logger)
	if err != nil {
		return core.Report{}, err
	}

	e.Run()

	if cfg.Render != nil && cfg.Render.Mode == "svg" && cfg.Render.File != "" {
		r := NewSVGRenderer(cfg.Render.File)
		if err := r.Render(e, *cfg.Core); err != nil {
			return core.Report{}, err
		}
	}

	return counters.Report(e.SimTime(), cfg.Core.NumChannels()), nil
}
