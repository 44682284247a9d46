// resolve.go
package preset

import (
	"fmt"

	"github.com/xtding233/grape-gamble/internal/grape"
)

// Overrides carries per-request values that win over the preset layers.
type Overrides struct {
	PoolSize    *int
	PoisonCount *int
	DrawCount   *int
	RoundCount  *int
	Diminishing *bool
	Trials      *int
	Bins        *int
}

type Resolver interface {
	// Returns merged RawConfig and normalized Params
	Resolve(name string, o Overrides) (RawConfig, Params, error)
}

// Values used when neither the preset files nor the request set a field.
const (
	FallbackPoolSize    = 10
	FallbackPoisonCount = 1
	FallbackDrawCount   = 1
	FallbackRoundCount  = 1
)

var _ Resolver = (*Loader)(nil)

// Resolve merges default → preset → overrides and validates the result as a
// game configuration. Constraint violations wrap grape.ErrInvalidConfiguration.
func (l *Loader) Resolve(name string, o Overrides) (RawConfig, Params, error) {
	raw, err := l.LoadMerged(name)
	if err != nil {
		return RawConfig{}, Params{}, err
	}
	p := Params{
		PoolSize:    pick(o.PoolSize, raw.Pool.Size, FallbackPoolSize),
		PoisonCount: pick(o.PoisonCount, raw.Pool.Poison, FallbackPoisonCount),
		DrawCount:   pick(o.DrawCount, raw.Draw.Count, FallbackDrawCount),
		RoundCount:  pick(o.RoundCount, raw.Draw.Rounds, FallbackRoundCount),
		Diminishing: pick(o.Diminishing, raw.Draw.Diminishing, false),
		Trials:      pick(o.Trials, raw.Simulation.Trials, grape.DefaultTrialCount),
		Bins:        pick(o.Bins, raw.Simulation.Bins, grape.DefaultBins),
		Version:     raw.Version,
	}
	if err := p.GameConfig().Validate(); err != nil {
		return RawConfig{}, Params{}, err
	}
	if p.Trials < 1 || p.Trials > grape.MaxTrialCount {
		return RawConfig{}, Params{}, fmt.Errorf("%w: trial count %d must be in [1,%d]",
			grape.ErrInvalidConfiguration, p.Trials, grape.MaxTrialCount)
	}
	if p.Bins < 1 || p.Bins > grape.MaxBins {
		return RawConfig{}, Params{}, fmt.Errorf("%w: bins %d must be in [1,%d]", grape.ErrInvalidConfiguration, p.Bins, grape.MaxBins)
	}
	return raw, p, nil
}

// GameConfig converts the resolved params into the engine's configuration.
func (p Params) GameConfig() grape.GameConfig {
	return grape.GameConfig{
		PoolSize:           p.PoolSize,
		PoisonCount:        p.PoisonCount,
		DrawCount:          p.DrawCount,
		RoundCount:         p.RoundCount,
		DiminishingReturns: p.Diminishing,
	}
}

func pick[T any](override, layered *T, fallback T) T {
	if override != nil {
		return *override
	}
	if layered != nil {
		return *layered
	}
	return fallback
}
