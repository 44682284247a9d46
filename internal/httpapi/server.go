package httpapi

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/xtding233/grape-gamble/internal/grape"
	"github.com/xtding233/grape-gamble/internal/metrics"
	"github.com/xtding233/grape-gamble/internal/preset"
	"github.com/xtding233/grape-gamble/internal/service"
)

// NewApp builds the fiber app with health, metrics and the v1 API.
func NewApp(svc *service.Service, log *zap.Logger, m *metrics.Metrics, gatherer prometheus.Gatherer) *fiber.App {
	if log == nil {
		log = zap.NewNop()
	}
	app := fiber.New(fiber.Config{DisableStartupMessage: true})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api/v1", observe(log, m))
	RegisterRoutes(api, svc)
	return app
}

// observe logs and counts each API request once the handler has run.
func observe(log *zap.Logger, m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		status := c.Response().StatusCode()
		if m != nil {
			m.ObserveRequest("http", c.Route().Path, strconv.Itoa(status))
		}
		log.Debug("http request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
		)
		return err
	}
}

// RegisterRoutes mounts the game operations on r.
func RegisterRoutes(r fiber.Router, svc *service.Service) {
	r.Post("/play", func(c *fiber.Ctx) error {
		req, err := parseBody(c)
		if err != nil {
			return badRequest(c, err)
		}
		res, err := svc.Play(c.UserContext(), req)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(res)
	})

	r.Post("/simulate", func(c *fiber.Ctx) error {
		req, err := parseBody(c)
		if err != nil {
			return badRequest(c, err)
		}
		res, err := svc.Simulate(c.UserContext(), req)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(res)
	})

	r.Get("/odds", func(c *fiber.Ctx) error {
		req, err := parseQuery(c)
		if err != nil {
			return badRequest(c, err)
		}
		res, err := svc.Odds(c.UserContext(), req)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(res)
	})

	r.Get("/presets", func(c *fiber.Ctx) error {
		names, err := svc.Presets()
		if err != nil {
			return writeError(c, err)
		}
		if names == nil {
			names = []string{}
		}
		return c.JSON(fiber.Map{"presets": names})
	})
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}

// writeError maps service errors onto HTTP statuses.
func writeError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, grape.ErrInvalidConfiguration):
		code = fiber.StatusBadRequest
	case errors.Is(err, preset.ErrUnknownPreset):
		code = fiber.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
