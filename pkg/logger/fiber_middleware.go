package logger

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// FiberMiddleware logs one line per request and propagates X-Request-ID.
func FiberMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		requestID := c.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDHeader, requestID)
		c.Locals("request_id", requestID)

		chainErr := c.Next()
		if chainErr != nil {
			// let the app error handler write the response before we read the status
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()

		event := Info()
		if status >= 500 {
			event = Error()
		} else if status >= 400 {
			event = Warn()
		}

		event = event.
			Str("request_id", requestID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("query", string(c.Request().URI().QueryString())).
			Str("remote_addr", c.IP()).
			Int("status", status).
			Int("size", len(c.Response().Body())).
			Float64("duration_ms", float64(time.Since(start).Microseconds())/1000)

		if chainErr != nil {
			event = event.Str("error", chainErr.Error())
		}

		event.Msg("HTTP request")
		return nil
	}
}
