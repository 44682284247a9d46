// types.go
package preset

// RawConfig is one preset file as loaded from YAML. Pointer fields distinguish
// "unset" from zero so that layers can be merged.
type RawConfig struct {
	Version    string           `yaml:"version"`
	Pool       PoolConfig       `yaml:"pool"`
	Draw       DrawConfig       `yaml:"draw"`
	Simulation SimulationConfig `yaml:"simulation"`
	Notes      string           `yaml:"notes,omitempty"`
}

type PoolConfig struct {
	Size   *int `yaml:"size"`
	Poison *int `yaml:"poison"`
}

type DrawConfig struct {
	Count       *int  `yaml:"count"`
	Rounds      *int  `yaml:"rounds"`
	Diminishing *bool `yaml:"diminishing"`
}

type SimulationConfig struct {
	Trials *int `yaml:"trials"`
	Bins   *int `yaml:"bins"`
}

// Params are the normalized values a request runs with.
type Params struct {
	PoolSize    int
	PoisonCount int
	DrawCount   int
	RoundCount  int
	Diminishing bool
	Trials      int
	Bins        int
	Version     string // effective preset version for tracing
}
