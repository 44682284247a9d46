// Package odds computes closed-form survival probabilities and expected values
// for the draw game, and searches for the draw count with the best expected value.
package odds

import (
	"math"

	"github.com/xtding233/grape-gamble/internal/grape"
)

// RoundSurvival is the probability that a uniform draw of draw items from a pool
// of pool items avoids all poison: C(pool-poison, draw) / C(pool, draw).
func RoundSurvival(pool, poison, draw int) float64 {
	safe := pool - poison
	if draw > safe {
		return 0
	}
	// product form avoids huge binomials
	p := 1.0
	for i := 0; i < draw; i++ {
		p *= float64(safe-i) / float64(pool-i)
	}
	return p
}

// Odds is the exact counterpart of a grape.Summary.
type Odds struct {
	Config         grape.GameConfig `json:"config"`
	RoundSurvival  float64          `json:"round_survival"`
	TrialSurvival  float64          `json:"trial_survival"`
	PayoutPerRound int64            `json:"payout_per_round"`
	RewardIfAlive  int64            `json:"reward_if_alive"`
	ExpectedValue  float64          `json:"expected_value"`
	RiskTier       grape.RiskTier   `json:"risk_tier"`
}

// Exact computes the odds for cfg.
func Exact(cfg grape.GameConfig) (Odds, error) {
	if err := cfg.Validate(); err != nil {
		return Odds{}, err
	}
	round := RoundSurvival(cfg.PoolSize, cfg.PoisonCount, cfg.DrawCount)
	trial := math.Pow(round, float64(cfg.RoundCount))
	payout := grape.Payout(cfg.DrawCount, cfg.DiminishingReturns)
	reward := payout * int64(cfg.RoundCount)
	return Odds{
		Config:         cfg,
		RoundSurvival:  round,
		TrialSurvival:  trial,
		PayoutPerRound: payout,
		RewardIfAlive:  reward,
		ExpectedValue:  trial * float64(reward),
		RiskTier:       grape.TierFor(trial),
	}, nil
}
