package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	applogger "github.com/psm5556/Crisis-Alert/pkg/logger"
)

// RequestLogging logs every request at debug and slow ones at warn.
func RequestLogging(l *applogger.Logger, slowThreshold time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// let echo write the error so the logged status is final
				c.Error(err)
			}

			latency := time.Since(start)
			fields := []applogger.Field{
				applogger.String("method", c.Request().Method),
				applogger.String("route", routeLabel(c)),
				applogger.String("remote", c.RealIP()),
				applogger.Int("status", c.Response().Status),
				applogger.Duration("duration_ms", latency),
			}
			if slowThreshold > 0 && latency >= slowThreshold {
				l.Warn("http request slow", fields...)
			} else {
				l.Debug("http request", fields...)
			}
			return nil
		}
	}
}
