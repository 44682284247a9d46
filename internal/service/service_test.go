package service

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/xtding233/grape-gamble/internal/grape"
	"github.com/xtding233/grape-gamble/internal/metrics"
	"github.com/xtding233/grape-gamble/internal/preset"
)

func newTestService(t *testing.T, opts Options) (*Service, *metrics.Metrics) {
	t.Helper()
	base := t.TempDir()
	dir := filepath.Join(base, "presets")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"default.yaml": "pool:\n  size: 10\n  poison: 1\ndraw:\n  count: 1\n  rounds: 1\n",
		"greedy.yaml":  "draw:\n  count: 3\n  rounds: 2\n  diminishing: true\nsimulation:\n  trials: 200\n",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	m := metrics.New(prometheus.NewRegistry())
	return New(preset.NewLoader(base), nil, m, opts), m
}

func ptr[T any](v T) *T { return &v }

func TestPlayDeterministicWithSeed(t *testing.T) {
	svc, m := newTestService(t, Options{})
	req := Request{Preset: "greedy", Seed: ptr(uint64(5))}
	a, err := svc.Play(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	b, err := svc.Play(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if a.Survived != b.Survived || a.TotalReward != b.TotalReward || len(a.Rounds) != len(b.Rounds) {
		t.Fatalf("same seed, different plays: %+v vs %+v", a, b)
	}
	if a.RunID == "" || a.RunID == b.RunID {
		t.Fatalf("run ids must be unique and set")
	}
	if a.Survived && a.TotalReward != 2*270000 {
		t.Fatalf("two diminishing rounds of 3 should pay 540000, got %d", a.TotalReward)
	}
	plays := testutil.ToFloat64(m.Plays.WithLabelValues("survived")) + testutil.ToFloat64(m.Plays.WithLabelValues("died"))
	if plays != 2 {
		t.Fatalf("plays recorded = %f", plays)
	}
}

func TestSimulateDefaults(t *testing.T) {
	svc, m := newTestService(t, Options{Workers: 4, DefaultTrials: 1000, Bins: 10})
	r, err := svc.Simulate(context.Background(), Request{Seed: ptr(uint64(42))})
	if err != nil {
		t.Fatal(err)
	}
	if r.Trials != 1000 || len(r.Histogram) != 10 {
		t.Fatalf("trials=%d bins=%d", r.Trials, len(r.Histogram))
	}
	se := math.Sqrt(0.9 * 0.1 / 1000)
	if math.Abs(r.SurvivalRate-0.9) > 4*se {
		t.Fatalf("survival %f too far from 0.9", r.SurvivalRate)
	}
	if testutil.ToFloat64(m.Trials) != 1000 {
		t.Fatalf("trials metric not recorded")
	}

	// matches a direct engine run with the same seed
	sum, err := grape.RunStatistics(r.Config, 1000, 42)
	if err != nil {
		t.Fatal(err)
	}
	if sum.ExpectedValue != r.ExpectedValue {
		t.Fatalf("service EV %f != engine EV %f", r.ExpectedValue, sum.ExpectedValue)
	}
}

func TestSimulatePresetTrials(t *testing.T) {
	svc, _ := newTestService(t, Options{DefaultTrials: 1000})
	r, err := svc.Simulate(context.Background(), Request{Preset: "greedy", IncludeOutcomes: true})
	if err != nil {
		t.Fatal(err)
	}
	if r.Trials != 200 || len(r.Outcomes) != 200 {
		t.Fatalf("preset trials ignored: trials=%d outcomes=%d", r.Trials, len(r.Outcomes))
	}
}

func TestSimulateErrors(t *testing.T) {
	svc, _ := newTestService(t, Options{MaxTrials: 500})
	if _, err := svc.Simulate(context.Background(), Request{Overrides: preset.Overrides{Trials: ptr(501)}}); !errors.Is(err, grape.ErrInvalidConfiguration) {
		t.Fatalf("over limit: got %v", err)
	}
	if _, err := svc.Simulate(context.Background(), Request{Overrides: preset.Overrides{PoisonCount: ptr(10)}}); !errors.Is(err, grape.ErrInvalidConfiguration) {
		t.Fatalf("poison == pool: got %v", err)
	}
	if _, err := svc.Simulate(context.Background(), Request{Overrides: preset.Overrides{Bins: ptr(20_000_000), Trials: ptr(1)}}); !errors.Is(err, grape.ErrInvalidConfiguration) {
		t.Fatalf("huge bins: got %v", err)
	}
	if _, err := svc.Simulate(context.Background(), Request{Preset: "nope"}); !errors.Is(err, preset.ErrUnknownPreset) {
		t.Fatalf("unknown preset: got %v", err)
	}
}

func TestOdds(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	res, err := svc.Odds(context.Background(), Request{})
	if err != nil {
		t.Fatal(err)
	}
	if res.SurvivalText != "90.0%" || res.ExpectedValueText != "$90,000.00" {
		t.Fatalf("got %+v", res)
	}
	if res.Advice.BestDraw != 5 {
		t.Fatalf("best draw = %d, want 5", res.Advice.BestDraw)
	}
}

func TestPresets(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	names, err := svc.Presets()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 1 || names[0] != "greedy" {
		t.Fatalf("got %v", names)
	}
}
