package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MiddlewareConfig holds configuration for the metrics middleware.
type MiddlewareConfig struct {
	// SkipPaths are path prefixes that should not be recorded.
	SkipPaths []string
}

// DefaultMiddlewareConfig returns the default metrics middleware configuration.
func DefaultMiddlewareConfig() MiddlewareConfig {
	return MiddlewareConfig{SkipPaths: []string{"/metrics"}}
}

// Middleware records request counts and durations.
// The matched route pattern is used as path label to keep cardinality low.
func Middleware(cfg MiddlewareConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, p := range cfg.SkipPaths {
			if strings.HasPrefix(c.Path(), p) {
				return c.Next()
			}
		}

		HTTPRequestsInFlight.Inc()
		defer HTTPRequestsInFlight.Dec()

		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		path := c.Route().Path
		HTTPRequestsTotal.WithLabelValues(c.Method(), path, strconv.Itoa(status)).Inc()
		HTTPRequestDuration.WithLabelValues(c.Method(), path).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler exposes the default registry in the Prometheus text format.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
