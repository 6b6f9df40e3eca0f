package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// FiberPrometheusMiddleware collects http_requests_total and http_request_duration_seconds.
// Paths are reported by route template (/api/v1/products/:id) to keep label cardinality bounded.
func FiberPrometheusMiddleware(serviceName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == "/metrics" || strings.HasSuffix(c.Path(), "/health") {
			return c.Next()
		}

		start := time.Now()

		HttpRequestsInFlight.WithLabelValues(serviceName).Inc()
		defer HttpRequestsInFlight.WithLabelValues(serviceName).Dec()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		path := normalizePath(c.Route().Path)
		HttpRequestsTotal.WithLabelValues(serviceName, c.Method(), path, strconv.Itoa(status)).Inc()
		HttpRequestDuration.WithLabelValues(serviceName, c.Method(), path).Observe(time.Since(start).Seconds())

		return err
	}
}

func normalizePath(path string) string {
	if path == "" {
		return "unmatched"
	}
	if len(path) > 100 {
		path = path[:100]
	}
	return path
}
