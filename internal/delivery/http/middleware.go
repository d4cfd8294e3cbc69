package delivery_http

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// requestObserver logs each request and records HTTP metrics. The route
// pattern (not the raw URL) is used as the metrics label to keep
// cardinality bounded.
func (s *Server) requestObserver() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fiberErr, ok := err.(*fiber.Error); ok {
				status = fiberErr.Code
			}
		}

		path := c.Route().Path
		duration := time.Since(start)

		s.metrics.IncrementHTTPRequests(c.Method(), path, strconv.Itoa(status))
		s.metrics.RecordHTTPRequestDuration(c.Method(), path, duration)

		s.log.Info("HTTP request",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", status),
			slog.Duration("duration", duration),
			slog.String("request_id", requestID(c)),
		)

		return err
	}
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
