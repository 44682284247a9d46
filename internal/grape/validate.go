package grape

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration is returned for any pool/poison/draw/round/trial constraint violation.
var ErrInvalidConfiguration = errors.New("invalid configuration")

const (
	MinPoolSize   = 2
	MaxPoolSize   = 1000
	MaxRoundCount = 100
	MaxTrialCount = 1_000_000

	DefaultTrialCount = 1000
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}

func validateRound(p RoundParams) error {
	if p.PoolSize < MinPoolSize || p.PoolSize > MaxPoolSize {
		return invalid("pool size %d must be in [%d,%d]", p.PoolSize, MinPoolSize, MaxPoolSize)
	}
	if p.PoisonCount < 1 {
		return invalid("poison count %d must be >= 1", p.PoisonCount)
	}
	if p.PoisonCount >= p.PoolSize {
		return invalid("poison count %d must be < pool size %d", p.PoisonCount, p.PoolSize)
	}
	if p.DrawCount < 1 {
		return invalid("draw count %d must be >= 1", p.DrawCount)
	}
	if p.DrawCount > p.PoolSize {
		return invalid("draw count %d must be <= pool size %d", p.DrawCount, p.PoolSize)
	}
	return nil
}

// Validate checks every GameConfig constraint.
func (c GameConfig) Validate() error {
	if err := validateRound(c.Round()); err != nil {
		return err
	}
	if c.RoundCount < 1 || c.RoundCount > MaxRoundCount {
		return invalid("round count %d must be in [1,%d]", c.RoundCount, MaxRoundCount)
	}
	return nil
}

func validateTrials(n int) error {
	if n < 1 || n > MaxTrialCount {
		return invalid("trial count %d must be in [1,%d]", n, MaxTrialCount)
	}
	return nil
}
