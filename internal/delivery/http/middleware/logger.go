package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

// Logger - middleware that logs every request with timing
func Logger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.IP()),
		}
		if rid, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok && rid != "" {
			fields = append(fields, zap.String("request_id", rid))
		}

		if c.Response().StatusCode() >= 500 {
			logger.Error("HTTP request", fields...)
		} else {
			logger.Info("HTTP request", fields...)
		}

		return err
	}
}
