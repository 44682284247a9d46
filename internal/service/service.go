package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xtding233/grape-gamble/internal/grape"
	"github.com/xtding233/grape-gamble/internal/metrics"
	"github.com/xtding233/grape-gamble/internal/odds"
	"github.com/xtding233/grape-gamble/internal/preset"
	"github.com/xtding233/grape-gamble/internal/report"
)

// Presets is the preset store the service resolves requests against.
type Presets interface {
	preset.Resolver
	List() ([]string, error)
}

// Options tunes statistics runs.
type Options struct {
	Workers       int // <= 0 means GOMAXPROCS
	DefaultTrials int // used when neither request nor preset sets trials
	MaxTrials     int
	Bins          int // used when neither request nor preset sets bins
}

// Request is one play/simulate/odds call. Zero Preset means default.yaml only.
type Request struct {
	Preset          string
	Overrides       preset.Overrides
	Seed            *uint64
	IncludeOutcomes bool
}

// OddsResult pairs the exact odds of a configuration with draw-count advice.
type OddsResult struct {
	Odds              odds.Odds   `json:"odds"`
	SurvivalText      string      `json:"survival_text"`
	ExpectedValueText string      `json:"expected_value_text"`
	RiskBadge         string      `json:"risk_badge"`
	Advice            odds.Advice `json:"advice"`
}

// Service runs the engine for the transports and records logs and metrics.
type Service struct {
	presets Presets
	log     *zap.Logger
	metrics *metrics.Metrics
	opts    Options
}

func New(presets Presets, log *zap.Logger, m *metrics.Metrics, opts Options) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.DefaultTrials <= 0 {
		opts.DefaultTrials = grape.DefaultTrialCount
	}
	if opts.MaxTrials <= 0 {
		opts.MaxTrials = grape.MaxTrialCount
	}
	if opts.Bins <= 0 {
		opts.Bins = grape.DefaultBins
	}
	return &Service{presets: presets, log: log, metrics: m, opts: opts}
}

func (s *Service) resolve(req Request) (preset.Params, error) {
	raw, p, err := s.presets.Resolve(req.Preset, req.Overrides)
	if err != nil {
		return preset.Params{}, err
	}
	if req.Overrides.Trials == nil && raw.Simulation.Trials == nil {
		p.Trials = s.opts.DefaultTrials
	}
	if req.Overrides.Bins == nil && raw.Simulation.Bins == nil {
		p.Bins = s.opts.Bins
	}
	if p.Trials > s.opts.MaxTrials {
		return preset.Params{}, fmt.Errorf("%w: trial count %d exceeds server limit %d",
			grape.ErrInvalidConfiguration, p.Trials, s.opts.MaxTrials)
	}
	return p, nil
}

// Play runs one interactive playthrough.
func (s *Service) Play(ctx context.Context, req Request) (report.Play, error) {
	p, err := s.resolve(req)
	if err != nil {
		return report.Play{}, err
	}
	cfg := p.GameConfig()

	rng := grape.DefaultRNG()
	if req.Seed != nil {
		rng = grape.NewSeededRNG(*req.Seed)
	}
	res, err := grape.PlayRounds(cfg, rng)
	if err != nil {
		return report.Play{}, err
	}

	runID := uuid.NewString()
	if s.metrics != nil {
		s.metrics.ObservePlay(res.Outcome.Survived, len(res.Rounds))
	}
	s.log.Info("play finished",
		zap.String("run_id", runID),
		zap.String("preset", req.Preset),
		zap.Any("config", cfg),
		zap.Bool("survived", res.Outcome.Survived),
		zap.Int("died_in_round", res.DiedInRound),
		zap.Int64("total_reward", res.Outcome.TotalReward),
	)
	return report.NewPlay(runID, req.Preset, cfg, res), nil
}

// Simulate runs a statistics batch across the configured workers.
func (s *Service) Simulate(ctx context.Context, req Request) (report.Simulation, error) {
	p, err := s.resolve(req)
	if err != nil {
		return report.Simulation{}, err
	}
	cfg := p.GameConfig()

	seed := grape.NewSeed()
	if req.Seed != nil {
		seed = *req.Seed
	}

	start := time.Now()
	sum, err := grape.RunStatisticsParallel(ctx, cfg, p.Trials, seed, s.opts.Workers)
	if err != nil {
		s.log.Warn("simulation aborted", zap.Any("config", cfg), zap.Error(err))
		return report.Simulation{}, err
	}
	took := time.Since(start)

	runID := uuid.NewString()
	if s.metrics != nil {
		s.metrics.ObserveSimulation(p.Trials, took)
	}
	s.log.Info("simulation finished",
		zap.String("run_id", runID),
		zap.String("preset", req.Preset),
		zap.String("preset_version", p.Version),
		zap.Any("config", cfg),
		zap.Int("trials", p.Trials),
		zap.Uint64("seed", seed),
		zap.Float64("survival_rate", sum.SurvivalRate),
		zap.Float64("expected_value", sum.ExpectedValue),
		zap.String("risk_tier", string(sum.RiskTier)),
		zap.Duration("took", took),
	)
	return report.NewSimulation(runID, req.Preset, sum, p.Bins, req.IncludeOutcomes), nil
}

// Odds returns the closed-form odds for the resolved configuration.
func (s *Service) Odds(ctx context.Context, req Request) (OddsResult, error) {
	p, err := s.resolve(req)
	if err != nil {
		return OddsResult{}, err
	}
	cfg := p.GameConfig()
	o, err := odds.Exact(cfg)
	if err != nil {
		return OddsResult{}, err
	}
	adv, err := odds.Advise(cfg)
	if err != nil {
		return OddsResult{}, err
	}
	return OddsResult{
		Odds:              o,
		SurvivalText:      report.Percent(o.TrialSurvival),
		ExpectedValueText: report.Currency(o.ExpectedValue),
		RiskBadge:         report.Badge(o.RiskTier),
		Advice:            adv,
	}, nil
}

// Presets lists the named presets.
func (s *Service) Presets() ([]string, error) {
	return s.presets.List()
}
