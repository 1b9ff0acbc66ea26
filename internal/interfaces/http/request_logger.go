package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// RequestLogger registra cada request con status, latencia y actor.
// Errores 5xx salen en nivel error con el detalle que writeError ocultó al cliente, 4xx en warn.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		logErr := err
		if logErr == nil {
			logErr, _ = c.Locals(internalErrorKey).(error)
		}
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		ev := log.Info()
		switch {
		case status >= 500:
			ev = log.Error().Err(logErr)
		case status >= 400:
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("actor", GetActor(c)).
			Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
			Msg("http")
		return err
	}
}
