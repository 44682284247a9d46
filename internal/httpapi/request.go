package httpapi

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/xtding233/grape-gamble/internal/preset"
	"github.com/xtding233/grape-gamble/internal/service"
)

// gameRequest is the JSON body of play and simulate.
type gameRequest struct {
	Preset             string  `json:"preset"`
	PoolSize           *int    `json:"pool_size"`
	PoisonCount        *int    `json:"poison_count"`
	DrawCount          *int    `json:"draw_count"`
	RoundCount         *int    `json:"round_count"`
	DiminishingReturns *bool   `json:"diminishing_returns"`
	Trials             *int    `json:"trials"`
	Bins               *int    `json:"bins"`
	Seed               *seed   `json:"seed"`
	IncludeOutcomes    bool    `json:"include_outcomes"`
}

// seed accepts a JSON number or a decimal string, so the string echoed in a
// simulation report can be sent back verbatim.
type seed uint64

func (s *seed) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	v, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("seed must be an unsigned 64-bit integer: %w", err)
	}
	*s = seed(v)
	return nil
}

func (g gameRequest) toService() service.Request {
	var sd *uint64
	if g.Seed != nil {
		v := uint64(*g.Seed)
		sd = &v
	}
	return service.Request{
		Preset: g.Preset,
		Overrides: preset.Overrides{
			PoolSize:    g.PoolSize,
			PoisonCount: g.PoisonCount,
			DrawCount:   g.DrawCount,
			RoundCount:  g.RoundCount,
			Diminishing: g.DiminishingReturns,
			Trials:      g.Trials,
			Bins:        g.Bins,
		},
		Seed:            sd,
		IncludeOutcomes: g.IncludeOutcomes,
	}
}

func parseBody(c *fiber.Ctx) (service.Request, error) {
	var body gameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return service.Request{}, fmt.Errorf("invalid body: %w", err)
		}
	}
	return body.toService(), nil
}

func parseQuery(c *fiber.Ctx) (service.Request, error) {
	var (
		g   gameRequest
		err error
	)
	g.Preset = c.Query("preset")
	for key, dst := range map[string]**int{
		"pool_size":    &g.PoolSize,
		"poison_count": &g.PoisonCount,
		"draw_count":   &g.DrawCount,
		"round_count":  &g.RoundCount,
	} {
		if *dst, err = queryInt(c, key); err != nil {
			return service.Request{}, err
		}
	}
	if s := c.Query("diminishing_returns"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return service.Request{}, fmt.Errorf("invalid diminishing_returns")
		}
		g.DiminishingReturns = &v
	}
	return g.toService(), nil
}

func queryInt(c *fiber.Ctx, key string) (*int, error) {
	s := c.Query(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s", key)
	}
	return &v, nil
}
