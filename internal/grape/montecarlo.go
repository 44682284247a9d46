package grape

import (
	"context"
	"math"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"
)

// Stats summarizes the reward samples.
type Stats struct {
	Mean   float64 `json:"mean"`
	Var    float64 `json:"var"`
	StdDev float64 `json:"std_dev"`
	Min    int64   `json:"min"`
	Max    int64   `json:"max"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
	P99    float64 `json:"p99"`
}

// Summary is the reduction of one statistics run.
type Summary struct {
	Config        GameConfig `json:"config"`
	Trials        int        `json:"trials"`
	Seed          uint64     `json:"seed"`
	SurvivorCount int        `json:"survivor_count"`
	SurvivalRate  float64    `json:"survival_rate"`
	// StdErr is the standard error of SurvivalRate.
	StdErr        float64  `json:"std_err"`
	ExpectedValue float64  `json:"expected_value"`
	RiskTier      RiskTier `json:"risk_tier"`
	Stats         Stats    `json:"stats"`
	// Outcomes holds one TotalReward per trial in trial order; deaths count as 0.
	Outcomes []int64 `json:"outcomes"`
}

// calcStats computes mean/variance/percentiles for reward samples.
func calcStats(xs []int64) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}
	var sum float64
	for _, v := range xs {
		sum += float64(v)
	}
	mean := sum / float64(n)

	// variance (population)
	var acc float64
	for _, v := range xs {
		d := float64(v) - mean
		acc += d * d
	}
	variance := acc / float64(n)

	cp := slices.Clone(xs)
	slices.Sort(cp)
	percentile := func(p float64) float64 {
		if n == 1 || p <= 0 {
			return float64(cp[0])
		}
		if p >= 1 {
			return float64(cp[n-1])
		}
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		f := pos - float64(i)
		if i+1 >= n {
			return float64(cp[i])
		}
		return float64(cp[i])*(1-f) + float64(cp[i+1])*f
	}

	return Stats{
		Mean:   mean,
		Var:    variance,
		StdDev: math.Sqrt(variance),
		Min:    cp[0],
		Max:    cp[n-1],
		P50:    percentile(0.50),
		P90:    percentile(0.90),
		P99:    percentile(0.99),
	}
}

// summarize folds trial rewards into a Summary.
//
// Survival is counted as "ended with a positive reward", not from the trial's
// Survived flag. Both agree while every surviving payout is positive; a payout
// function that can return 0 on survival would count those trials as deaths.
func summarize(cfg GameConfig, seed uint64, outcomes []int64) Summary {
	n := len(outcomes)
	survivors := 0
	var sum float64
	for _, r := range outcomes {
		if r > 0 {
			survivors++
		}
		sum += float64(r)
	}
	rate := float64(survivors) / float64(n)
	return Summary{
		Config:        cfg,
		Trials:        n,
		Seed:          seed,
		SurvivorCount: survivors,
		SurvivalRate:  rate,
		StdErr:        math.Sqrt(rate * (1 - rate) / float64(n)),
		ExpectedValue: sum / float64(n),
		RiskTier:      TierFor(rate),
		Stats:         calcStats(outcomes),
		Outcomes:      outcomes,
	}
}

// runRange fills out[from:to] with trial rewards. Trial i draws from its own
// stream (seed, i), so the result does not depend on how trials are split.
func runRange(ctx context.Context, cfg GameConfig, seed uint64, out []int64, from, to int) error {
	for i := from; i < to; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		t, err := RunTrial(cfg, NewStreamRNG(seed, uint64(i)))
		if err != nil {
			return err
		}
		out[i] = t.TotalReward
	}
	return nil
}

// RunStatistics runs trialCount independent trials sequentially and summarizes them.
func RunStatistics(cfg GameConfig, trialCount int, seed uint64) (Summary, error) {
	if err := cfg.Validate(); err != nil {
		return Summary{}, err
	}
	if err := validateTrials(trialCount); err != nil {
		return Summary{}, err
	}
	outcomes := make([]int64, trialCount)
	if err := runRange(context.Background(), cfg, seed, outcomes, 0, trialCount); err != nil {
		return Summary{}, err
	}
	return summarize(cfg, seed, outcomes), nil
}

// RunStatisticsParallel splits trials across workers (<= 0 means GOMAXPROCS).
// For the same seed it returns exactly what RunStatistics returns.
func RunStatisticsParallel(ctx context.Context, cfg GameConfig, trialCount int, seed uint64, workers int) (Summary, error) {
	if err := cfg.Validate(); err != nil {
		return Summary{}, err
	}
	if err := validateTrials(trialCount); err != nil {
		return Summary{}, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > trialCount {
		workers = trialCount
	}

	outcomes := make([]int64, trialCount)
	g, gctx := errgroup.WithContext(ctx)
	chunk := (trialCount + workers - 1) / workers
	for from := 0; from < trialCount; from += chunk {
		to := min(from+chunk, trialCount)
		g.Go(func() error {
			return runRange(gctx, cfg, seed, outcomes, from, to)
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	return summarize(cfg, seed, outcomes), nil
}
