package odds

import "github.com/xtding233/grape-gamble/internal/grape"

// Point is one entry of the draw-count curve.
type Point struct {
	DrawCount     int            `json:"draw_count"`
	TrialSurvival float64        `json:"trial_survival"`
	ExpectedValue float64        `json:"expected_value"`
	RiskTier      grape.RiskTier `json:"risk_tier"`
}

// Advice reports the draw count maximizing expected value.
type Advice struct {
	BestDraw int     `json:"best_draw"`
	BestEV   float64 `json:"best_ev"`
	// SafestProfitable is the largest draw count that stays in the LOW tier, 0 if none does.
	SafestProfitable int     `json:"safest_profitable"`
	Curve            []Point `json:"curve"`
}

// Advise sweeps every legal draw count for the given pool and picks the best.
// cfg.DrawCount is ignored. Ties go to the smaller draw count.
func Advise(cfg grape.GameConfig) (Advice, error) {
	probe := cfg
	probe.DrawCount = 1
	if err := probe.Validate(); err != nil {
		return Advice{}, err
	}

	adv := Advice{Curve: make([]Point, 0, cfg.PoolSize)}
	for d := 1; d <= cfg.PoolSize; d++ {
		probe.DrawCount = d
		o, err := Exact(probe)
		if err != nil {
			return Advice{}, err
		}
		adv.Curve = append(adv.Curve, Point{
			DrawCount:     d,
			TrialSurvival: o.TrialSurvival,
			ExpectedValue: o.ExpectedValue,
			RiskTier:      o.RiskTier,
		})
		if o.ExpectedValue > adv.BestEV {
			adv.BestDraw, adv.BestEV = d, o.ExpectedValue
		}
		if o.RiskTier == grape.RiskLow {
			adv.SafestProfitable = d
		}
	}
	return adv, nil
}
