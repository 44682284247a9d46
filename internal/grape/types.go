package grape

// GameConfig is built per request and never mutated.
type GameConfig struct {
	PoolSize           int  `json:"pool_size" yaml:"pool_size"`
	PoisonCount        int  `json:"poison_count" yaml:"poison_count"`
	DrawCount          int  `json:"draw_count" yaml:"draw_count"`
	RoundCount         int  `json:"round_count" yaml:"round_count"` // 1 = single-round mode
	DiminishingReturns bool `json:"diminishing_returns" yaml:"diminishing_returns"`
}

// RoundParams are the inputs of a single round.
type RoundParams struct {
	PoolSize           int
	PoisonCount        int
	DrawCount          int
	DiminishingReturns bool
}

// Round returns the per-round parameters shared by every round of a trial.
func (c GameConfig) Round() RoundParams {
	return RoundParams{
		PoolSize:           c.PoolSize,
		PoisonCount:        c.PoisonCount,
		DrawCount:          c.DrawCount,
		DiminishingReturns: c.DiminishingReturns,
	}
}

// RoundOutcome reports one round's result.
type RoundOutcome struct {
	Survived bool  `json:"survived"`
	Payout   int64 `json:"payout"`
}

// TrialOutcome is the result of chaining RoundCount rounds.
// Survived is true only if every round survived; TotalReward is 0 otherwise.
type TrialOutcome struct {
	Survived    bool  `json:"survived"`
	TotalReward int64 `json:"total_reward"`
}

// RiskTier is a qualitative bucket over survival rate.
type RiskTier string

const (
	RiskLow    RiskTier = "LOW"
	RiskMedium RiskTier = "MEDIUM"
	RiskHigh   RiskTier = "HIGH"
)

// TierFor maps a survival rate to a tier: LOW above 0.9, MEDIUM above 0.5, HIGH otherwise.
func TierFor(survivalRate float64) RiskTier {
	switch {
	case survivalRate > 0.9:
		return RiskLow
	case survivalRate > 0.5:
		return RiskMedium
	default:
		return RiskHigh
	}
}
