package sim

import (
	"encoding/json"
	"fmt"
	"os"

	"torusim/core"
)

// RenderCfg controls optional SVG rendering of the final channel-
// utilization snapshot.
type RenderCfg struct {
	Mode string `json:"mode"` // "svg" renders; any other value (Default uses "none") does not
	File string `json:"file"`
}

// Config is the on-disk/flag-overlay configuration for a simulation
// run: the engine's Config plus the harness-only Seed and Render
// options.
type Config struct {
	Core   *core.Config `json:"core"`
	Seed   int64        `json:"seed"`
	Render *RenderCfg   `json:"render"`
}

// Default returns a Config with the engine defaults of core.Default
// plus a fixed reproducible seed, for deterministic test runs.
func Default() *Config {
	c := core.Default()
	return &Config{
		Core:   &c,
		Seed:   19031962,
		Render: &RenderCfg{Mode: "none"},
	}
}

// ReadConfig deserializes a configuration from a JSON file.
func ReadConfig(fn string) (*Config, error) {
	data, err := os.ReadFile(fn)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", fn, err)
	}
	return cfg, nil
}
