package core

import "fmt"

// Config is the value object the engine requires before a simulation
// can start. It has no package-level default instance: a torus
// simulation run is a one-shot batch job constructed fresh from the
// caller's flags or file each time. Default below fills in everything
// but Lambda, which is required.
type Config struct {
	D      int     `json:"d"`      // torus dimensions
	K      int     `json:"k"`      // size per dimension
	Rule   byte    `json:"r"`      // rule letter a-f
	CHT    int     `json:"cht"`    // channel-hold time per hop (ticks)
	BL     int     `json:"bl"`     // per-node blocked-queue capacity
	Lambda float64 `json:"lambda"` // per-node packet generation rate (required)
	MaxST  int64      `json:"maxst"` // halt at this simulated time
	Dbg    DebugLevel `json:"dbg"`   // debug verbosity 0/1/2+
}

// Default returns a Config with reasonable default values; Lambda is
// left at zero and must be set explicitly.
func Default() Config {
	return Config{
		D:     3,
		K:     4,
		Rule:  'a',
		CHT:   100,
		BL:    1000,
		MaxST: 1000000,
		Dbg:   0,
	}
}

// Validate checks a Config for fatal configuration errors: an
// unrecognized rule letter, or a value outside the domain the engine
// can run with.
func (c Config) Validate() error {
	if c.D < 1 {
		return &ConfigError{Field: "d", Msg: "must be >= 1"}
	}
	if c.K < 2 {
		return &ConfigError{Field: "k", Msg: "must be >= 2"}
	}
	if _, ok := Rules[c.Rule]; !ok {
		return &ConfigError{Field: "r", Msg: fmt.Sprintf("unknown switching rule %q", c.Rule)}
	}
	if c.CHT < 1 {
		return &ConfigError{Field: "cht", Msg: "must be >= 1"}
	}
	if c.BL < 0 {
		return &ConfigError{Field: "bl", Msg: "must be >= 0"}
	}
	if c.Lambda <= 0 {
		return &ConfigError{Field: "lambda", Msg: "must be > 0"}
	}
	if c.MaxST < 0 {
		return &ConfigError{Field: "maxst", Msg: "must be >= 0"}
	}
	return nil
}

// NumPorts returns the number of ports per node, 2*D.
func (c Config) NumPorts() int {
	return 2 * c.D
}

// NumNodes returns the number of nodes in the torus, K^D.
func (c Config) NumNodes() int {
	n := 1
	for i := 0; i < c.D; i++ {
		n *= c.K
	}
	return n
}

// NumChannels returns the total number of outbound channels in the
// torus, NumNodes * NumPorts.
func (c Config) NumChannels() int {
	return c.NumNodes() * c.NumPorts()
}
