package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/reusedev/weather-viewer/internal/modules/logs"
	"github.com/rs/zerolog"
)

// RequestLogger logs one line per request; 5xx at error level.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		statusCode := c.Writer.Status()
		var ev *zerolog.Event
		switch {
		case statusCode >= 500:
			ev = logs.Logger.Error()
		case statusCode >= 400:
			ev = logs.Logger.Warn()
		default:
			ev = logs.Logger.Info()
		}
		ev.Str("method", c.Request.Method).
			Str("path", path).
			Str("query", query).
			Str("client_ip", c.ClientIP()).
			Int("status", statusCode).
			Int("body_size", c.Writer.Size()).
			Dur("duration", time.Since(start)).
			Msg("request log")
	}
}
