package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/despensa/despensa-api/pkg/logger"
)

// RequestLogger loguea cada petición con método, ruta, estado y latencia.
// Los errores ya mapeados a respuesta no se re-loguean aquí.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
		return err
	}
}
