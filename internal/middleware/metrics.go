package middleware

import (
	"cmp"
	"errors"
	"time"

	"github.com/labstack/echo/v4"

	"shortlink/internal/metrics"
)

type HTTPRecorder interface {
	RecordHTTP(m metrics.HTTPMetric)
}

// Metrics records one HTTPMetric per request, keyed by route template so
// every short code lands on the same path. Routes listed in skipPaths are
// not recorded.
func Metrics(recorder HTTPRecorder, skipPaths ...string) echo.MiddlewareFunc {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			route := cmp.Or(c.Path(), "/")
			if _, ok := skip[route]; ok {
				return err
			}

			m := metrics.HTTPMetric{
				Time:       start,
				Method:     c.Request().Method,
				Path:       route,
				StatusCode: c.Response().Status,
				DurationMs: float64(time.Since(start).Microseconds()) / 1000,
				ClientIP:   c.RealIP(),
			}
			if err != nil {
				m.Error = err.Error()
				var he *echo.HTTPError
				if errors.As(err, &he) {
					m.StatusCode = he.Code
				}
			}
			recorder.RecordHTTP(m)

			return err
		}
	}
}
