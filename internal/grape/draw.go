package grape

// ResolveRound draws p.DrawCount items without replacement from a pool of p.PoolSize,
// of which p.PoisonCount are poison.
// - any poison drawn => {false, 0}
// - otherwise => {true, Payout(p.DrawCount, p.DiminishingReturns)}
// rng == nil falls back to DefaultRNG.
func ResolveRound(p RoundParams, rng RandomSource) (RoundOutcome, error) {
	if err := validateRound(p); err != nil {
		return RoundOutcome{}, err
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	if drawsPoison(p.PoolSize, p.PoisonCount, p.DrawCount, rng) {
		return RoundOutcome{Survived: false, Payout: 0}, nil
	}
	return RoundOutcome{Survived: true, Payout: Payout(p.DrawCount, p.DiminishingReturns)}, nil
}

// drawsPoison runs a partial Fisher-Yates shuffle over pool indices; indices
// [0, poison) are poison. The first draw slots after shuffling form a uniform
// subset of size draw.
func drawsPoison(pool, poison, draw int, rng RandomSource) bool {
	// more draws than safe items always reach poison
	if draw > pool-poison {
		return true
	}
	idx := make([]int, pool)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < draw; i++ {
		j := i + rng.IntN(pool-i)
		idx[i], idx[j] = idx[j], idx[i]
		if idx[i] < poison {
			return true
		}
	}
	return false
}
