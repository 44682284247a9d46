package grape

// RunTrial chains cfg.RoundCount rounds with the same parameters, stopping at the
// first death. A death forfeits everything accumulated so far.
func RunTrial(cfg GameConfig, rng RandomSource) (TrialOutcome, error) {
	res, err := PlayRounds(cfg, rng)
	if err != nil {
		return TrialOutcome{}, err
	}
	return res.Outcome, nil
}

// PlayResult is the round-by-round record of one interactive playthrough.
type PlayResult struct {
	Rounds []RoundOutcome `json:"rounds"` // rounds actually played, ending at the death if any
	// DiedInRound is the 1-based round of death, 0 when every round survived.
	DiedInRound int `json:"died_in_round"`
	// Forfeited is what had been earned before the fatal round.
	Forfeited int64        `json:"forfeited"`
	Outcome   TrialOutcome `json:"outcome"`
}

// PlayRounds plays one trial and keeps every round's outcome.
func PlayRounds(cfg GameConfig, rng RandomSource) (PlayResult, error) {
	if err := cfg.Validate(); err != nil {
		return PlayResult{}, err
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	params := cfg.Round()
	res := PlayResult{Rounds: make([]RoundOutcome, 0, cfg.RoundCount)}

	var total int64
	for i := 0; i < cfg.RoundCount; i++ {
		out, err := ResolveRound(params, rng)
		if err != nil {
			return PlayResult{}, err
		}
		res.Rounds = append(res.Rounds, out)
		if !out.Survived {
			res.DiedInRound = i + 1
			res.Forfeited = total
			res.Outcome = TrialOutcome{Survived: false, TotalReward: 0}
			return res, nil
		}
		total += out.Payout
	}
	res.Outcome = TrialOutcome{Survived: true, TotalReward: total}
	return res, nil
}
