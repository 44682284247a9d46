package grape_test

import (
	"context"
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/xtding233/grape-gamble/internal/grape"
)

func TestRunStatisticsOneInTen(t *testing.T) {
	cfg := grape.GameConfig{PoolSize: 10, PoisonCount: 1, DrawCount: 1, RoundCount: 1}
	sum, err := grape.RunStatistics(cfg, 1000, 42)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Trials != 1000 || len(sum.Outcomes) != 1000 {
		t.Fatalf("trials=%d outcomes=%d", sum.Trials, len(sum.Outcomes))
	}
	se := math.Sqrt(0.9 * 0.1 / 1000)
	if math.Abs(sum.SurvivalRate-0.9) > 4*se {
		t.Fatalf("survival rate %f too far from 0.9", sum.SurvivalRate)
	}
	if math.Abs(sum.ExpectedValue-90000) > 4*se*100000 {
		t.Fatalf("expected value %f too far from 90000", sum.ExpectedValue)
	}
	for i, r := range sum.Outcomes {
		if r != 0 && r != 100000 {
			t.Fatalf("outcome[%d] = %d, want 0 or 100000", i, r)
		}
	}
	if want := float64(sum.SurvivorCount) / 1000; sum.SurvivalRate != want {
		t.Fatalf("rate %f != survivors/trials %f", sum.SurvivalRate, want)
	}
}

func TestRunStatisticsDeathsCountAsZero(t *testing.T) {
	cfg := grape.GameConfig{PoolSize: 10, PoisonCount: 5, DrawCount: 2, RoundCount: 3}
	sum, err := grape.RunStatistics(cfg, 500, 9)
	if err != nil {
		t.Fatal(err)
	}
	var total int64
	zeros := 0
	for _, r := range sum.Outcomes {
		total += r
		if r == 0 {
			zeros++
		}
	}
	if zeros != sum.Trials-sum.SurvivorCount {
		t.Fatalf("zeros=%d, deaths=%d", zeros, sum.Trials-sum.SurvivorCount)
	}
	if got := float64(total) / 500; got != sum.ExpectedValue {
		t.Fatalf("EV %f, want mean over all trials %f", sum.ExpectedValue, got)
	}
	if sum.RiskTier != grape.RiskHigh {
		t.Fatalf("tier %s, want HIGH", sum.RiskTier)
	}
}

func TestRunStatisticsInvalid(t *testing.T) {
	cfg := grape.GameConfig{PoolSize: 10, PoisonCount: 10, DrawCount: 1, RoundCount: 1}
	if _, err := grape.RunStatistics(cfg, 1000, 1); !errors.Is(err, grape.ErrInvalidConfiguration) {
		t.Fatalf("poison == pool: want ErrInvalidConfiguration, got %v", err)
	}
	cfg.PoisonCount = 1
	if _, err := grape.RunStatistics(cfg, 0, 1); !errors.Is(err, grape.ErrInvalidConfiguration) {
		t.Fatalf("zero trials: want ErrInvalidConfiguration, got %v", err)
	}
}

func TestRunStatisticsDeterministic(t *testing.T) {
	cfg := grape.GameConfig{PoolSize: 50, PoisonCount: 4, DrawCount: 6, RoundCount: 4, DiminishingReturns: true}
	a, err := grape.RunStatistics(cfg, 300, 123)
	if err != nil {
		t.Fatal(err)
	}
	b, err := grape.RunStatistics(cfg, 300, 123)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(a.Outcomes, b.Outcomes) {
		t.Fatalf("same seed produced different outcomes")
	}
}

func TestRunStatisticsParallelMatchesSequential(t *testing.T) {
	cfg := grape.GameConfig{PoolSize: 30, PoisonCount: 3, DrawCount: 4, RoundCount: 2}
	seq, err := grape.RunStatistics(cfg, 1001, 77)
	if err != nil {
		t.Fatal(err)
	}
	for _, workers := range []int{0, 1, 3, 8, 5000} {
		par, err := grape.RunStatisticsParallel(context.Background(), cfg, 1001, 77, workers)
		if err != nil {
			t.Fatal(err)
		}
		if !slices.Equal(seq.Outcomes, par.Outcomes) {
			t.Fatalf("workers=%d: outcomes differ from sequential run", workers)
		}
		if par.SurvivalRate != seq.SurvivalRate || par.ExpectedValue != seq.ExpectedValue {
			t.Fatalf("workers=%d: summary differs", workers)
		}
	}
}

func TestRunStatisticsParallelCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := grape.GameConfig{PoolSize: 10, PoisonCount: 1, DrawCount: 1, RoundCount: 1}
	if _, err := grape.RunStatisticsParallel(ctx, cfg, 1000, 1, 4); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		rate float64
		want grape.RiskTier
	}{
		{1, grape.RiskLow},
		{0.91, grape.RiskLow},
		{0.9, grape.RiskMedium},
		{0.51, grape.RiskMedium},
		{0.5, grape.RiskHigh},
		{0, grape.RiskHigh},
	}
	for _, tt := range tests {
		if got := grape.TierFor(tt.rate); got != tt.want {
			t.Errorf("TierFor(%v) = %s, want %s", tt.rate, got, tt.want)
		}
	}
}

func TestHistogram(t *testing.T) {
	values := []int64{0, 0, 0, 50000, 100000, 100000}
	h := grape.Histogram(values, 20)
	if len(h) != 20 {
		t.Fatalf("bins = %d", len(h))
	}
	if h[0].Count != 3 || h[10].Count != 1 || h[19].Count != 2 {
		t.Fatalf("unexpected counts: first=%d mid=%d last=%d", h[0].Count, h[10].Count, h[19].Count)
	}
	if h[0].Lo != 0 || h[19].Hi != 100000 {
		t.Fatalf("range [%f,%f], want [0,100000]", h[0].Lo, h[19].Hi)
	}
	total := 0
	for _, b := range h {
		total += b.Count
	}
	if total != len(values) {
		t.Fatalf("counted %d of %d values", total, len(values))
	}
}

func TestHistogramDegenerate(t *testing.T) {
	h := grape.Histogram([]int64{0, 0, 0}, 0)
	if len(h) != grape.DefaultBins {
		t.Fatalf("bins = %d, want default", len(h))
	}
	if h[0].Lo != -0.5 || h[len(h)-1].Hi != 0.5 {
		t.Fatalf("range [%f,%f], want [-0.5,0.5]", h[0].Lo, h[len(h)-1].Hi)
	}
	if h[10].Count != 3 {
		t.Fatalf("all values should land in the middle bin, got %+v", h)
	}
	if grape.Histogram(nil, 5) != nil {
		t.Fatalf("empty input should yield nil")
	}
}

func TestHistogramClampsBins(t *testing.T) {
	h := grape.Histogram([]int64{0, 100000}, 20_000_000)
	if len(h) != grape.MaxBins {
		t.Fatalf("bins = %d, want %d", len(h), grape.MaxBins)
	}
}
