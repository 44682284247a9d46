package report_test

import (
	"testing"

	"github.com/xtding233/grape-gamble/internal/grape"
	"github.com/xtding233/grape-gamble/internal/report"
)

func TestFormatting(t *testing.T) {
	if got := report.Currency(90000); got != "$90,000.00" {
		t.Errorf("Currency = %q", got)
	}
	if got := report.Money(270000); got != "$270,000" {
		t.Errorf("Money = %q", got)
	}
	if got := report.Percent(0.9); got != "90.0%" {
		t.Errorf("Percent = %q", got)
	}
	if got := report.Badge(grape.RiskHigh); got != "High Risk" {
		t.Errorf("Badge = %q", got)
	}
}

func TestNewSimulation(t *testing.T) {
	cfg := grape.GameConfig{PoolSize: 10, PoisonCount: 1, DrawCount: 1, RoundCount: 1}
	sum, err := grape.RunStatistics(cfg, 1000, 42)
	if err != nil {
		t.Fatal(err)
	}
	r := report.NewSimulation("run-1", "default", sum, 20, false)
	if r.Outcomes != nil {
		t.Fatalf("outcomes must be omitted unless requested")
	}
	if len(r.Histogram) != 20 {
		t.Fatalf("histogram has %d bins", len(r.Histogram))
	}
	if r.Histogram[0].Count+r.Histogram[19].Count != 1000 {
		t.Fatalf("all rewards are 0 or 100000 and must sit in the edge bins")
	}
	if r.Seed != "42" || r.RiskBadge != report.Badge(sum.RiskTier) {
		t.Fatalf("got %+v", r)
	}
	if len(report.NewSimulation("run-2", "", sum, 5, true).Outcomes) != 1000 {
		t.Fatalf("outcomes requested but missing")
	}
}

func TestPlayMessage(t *testing.T) {
	tests := []struct {
		name   string
		rounds int
		play   grape.PlayResult
		want   string
	}{
		{"single survive", 1, grape.PlayResult{Outcome: grape.TrialOutcome{Survived: true, TotalReward: 300000}}, "You survived and earned $300,000!"},
		{"single death", 1, grape.PlayResult{DiedInRound: 1}, "You ate the poison grape. You died!"},
		{"multi survive", 5, grape.PlayResult{Outcome: grape.TrialOutcome{Survived: true, TotalReward: 500000}}, "You survived all 5 rounds! Total reward: $500,000"},
		{"multi death", 5, grape.PlayResult{DiedInRound: 2, Forfeited: 100000}, "You died in round 2 and forfeited $100,000."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := report.PlayMessage(tt.rounds, tt.play); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}
