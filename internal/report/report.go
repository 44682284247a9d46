// Package report turns engine results into the values a front end renders:
// formatted money and percentages, a risk badge, a histogram and a play message.
package report

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/xtding233/grape-gamble/internal/grape"
)

func printer() *message.Printer { return message.NewPrinter(language.English) }

// Currency formats v as dollars with cents, e.g. $90,000.00.
func Currency(v float64) string { return printer().Sprintf("$%.2f", v) }

// Money formats a whole-dollar amount, e.g. $270,000.
func Money(v int64) string { return printer().Sprintf("$%d", v) }

// Percent formats a rate in [0,1] with one decimal, e.g. 90.0%.
func Percent(rate float64) string { return printer().Sprintf("%.1f%%", rate*100) }

// Badge is the label shown next to a risk tier.
func Badge(t grape.RiskTier) string {
	switch t {
	case grape.RiskLow:
		return "Low Risk"
	case grape.RiskMedium:
		return "Medium Risk"
	default:
		return "High Risk"
	}
}

// Simulation is the rendered view of a statistics run.
type Simulation struct {
	RunID             string           `json:"run_id"`
	Preset            string           `json:"preset,omitempty"`
	Config            grape.GameConfig `json:"config"`
	Trials            int              `json:"trials"`
	Seed              string           `json:"seed"`
	SurvivalRate      float64          `json:"survival_rate"`
	SurvivalText      string           `json:"survival_text"`
	StdErr            float64          `json:"std_err"`
	ExpectedValue     float64          `json:"expected_value"`
	ExpectedValueText string           `json:"expected_value_text"`
	RiskTier          grape.RiskTier   `json:"risk_tier"`
	RiskBadge         string           `json:"risk_badge"`
	Stats             grape.Stats      `json:"stats"`
	Histogram         []grape.Bucket   `json:"histogram"`
	Outcomes          []int64          `json:"outcomes,omitempty"`
}

// NewSimulation renders s. Outcomes are copied only when withOutcomes is set.
func NewSimulation(runID, preset string, s grape.Summary, bins int, withOutcomes bool) Simulation {
	out := Simulation{
		RunID:             runID,
		Preset:            preset,
		Config:            s.Config,
		Trials:            s.Trials,
		Seed:              strconv.FormatUint(s.Seed, 10),
		SurvivalRate:      s.SurvivalRate,
		SurvivalText:      Percent(s.SurvivalRate),
		StdErr:            s.StdErr,
		ExpectedValue:     s.ExpectedValue,
		ExpectedValueText: Currency(s.ExpectedValue),
		RiskTier:          s.RiskTier,
		RiskBadge:         Badge(s.RiskTier),
		Stats:             s.Stats,
		Histogram:         grape.Histogram(s.Outcomes, bins),
	}
	if withOutcomes {
		out.Outcomes = s.Outcomes
	}
	return out
}

// Play is the rendered view of one interactive playthrough.
type Play struct {
	RunID       string               `json:"run_id"`
	Preset      string               `json:"preset,omitempty"`
	Config      grape.GameConfig     `json:"config"`
	Survived    bool                 `json:"survived"`
	TotalReward int64                `json:"total_reward"`
	DiedInRound int                  `json:"died_in_round,omitempty"`
	Forfeited   int64                `json:"forfeited,omitempty"`
	Rounds      []grape.RoundOutcome `json:"rounds"`
	Message     string               `json:"message"`
}

// NewPlay renders p.
func NewPlay(runID, preset string, cfg grape.GameConfig, p grape.PlayResult) Play {
	return Play{
		RunID:       runID,
		Preset:      preset,
		Config:      cfg,
		Survived:    p.Outcome.Survived,
		TotalReward: p.Outcome.TotalReward,
		DiedInRound: p.DiedInRound,
		Forfeited:   p.Forfeited,
		Rounds:      p.Rounds,
		Message:     PlayMessage(cfg.RoundCount, p),
	}
}

// PlayMessage is the one-line verdict shown after play.
func PlayMessage(rounds int, p grape.PlayResult) string {
	switch {
	case p.Outcome.Survived && rounds <= 1:
		return printer().Sprintf("You survived and earned %s!", Money(p.Outcome.TotalReward))
	case p.Outcome.Survived:
		return printer().Sprintf("You survived all %d rounds! Total reward: %s", rounds, Money(p.Outcome.TotalReward))
	case rounds <= 1:
		return "You ate the poison grape. You died!"
	default:
		return printer().Sprintf("You died in round %d and forfeited %s.", p.DiedInRound, Money(p.Forfeited))
	}
}
