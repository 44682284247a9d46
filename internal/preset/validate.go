package preset

import (
	"fmt"
	"strings"

	"github.com/xtding233/grape-gamble/internal/grape"
)

// ValidateRaw checks the bounds of every field that is set. Cross-field rules
// (poison < size, count <= size) apply when both fields are present.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	// pool
	if s := cfg.Pool.Size; s != nil && (*s < grape.MinPoolSize || *s > grape.MaxPoolSize) {
		errs = append(errs, fmt.Sprintf("pool.size must be in [%d,%d]", grape.MinPoolSize, grape.MaxPoolSize))
	}
	if p := cfg.Pool.Poison; p != nil {
		if *p < 1 {
			errs = append(errs, "pool.poison must be >= 1")
		}
		if cfg.Pool.Size != nil && *p >= *cfg.Pool.Size {
			errs = append(errs, "pool.poison must be < pool.size")
		}
	}

	// draw
	if c := cfg.Draw.Count; c != nil {
		if *c < 1 {
			errs = append(errs, "draw.count must be >= 1")
		}
		if cfg.Pool.Size != nil && *c > *cfg.Pool.Size {
			errs = append(errs, "draw.count must be <= pool.size")
		}
	}
	if r := cfg.Draw.Rounds; r != nil && (*r < 1 || *r > grape.MaxRoundCount) {
		errs = append(errs, fmt.Sprintf("draw.rounds must be in [1,%d]", grape.MaxRoundCount))
	}

	// simulation
	if n := cfg.Simulation.Trials; n != nil && (*n < 1 || *n > grape.MaxTrialCount) {
		errs = append(errs, fmt.Sprintf("simulation.trials must be in [1,%d]", grape.MaxTrialCount))
	}
	if b := cfg.Simulation.Bins; b != nil && (*b < 1 || *b > grape.MaxBins) {
		errs = append(errs, fmt.Sprintf("simulation.bins must be in [1,%d]", grape.MaxBins))
	}

	if len(errs) > 0 {
		return fmt.Errorf("preset validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
