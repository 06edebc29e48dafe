package middleware

import (
	"strconv"
	"time"

	"skill-matrix/internal/pkg/metrics"

	"github.com/gofiber/fiber/v3"
)

type MetricsMiddleware struct {
	m *metrics.Metrics
}

func NewMetricsMiddleware(m *metrics.Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{m: m}
}

// Middleware labels requests by route pattern so ids in paths do not blow
// up label cardinality. It must run inside the error middleware to see the
// final status.
func (mw *MetricsMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if mw == nil || mw.m == nil {
			return c.Next()
		}
		start := time.Now()
		err := c.Next()

		endpoint := c.Route().Path
		status := c.Response().StatusCode()
		if err != nil {
			status, _, _ = normalizeError(err)
		}
		mw.m.RequestCounter.WithLabelValues(c.Method(), endpoint, strconv.Itoa(status)).Inc()
		mw.m.RequestDuration.WithLabelValues(c.Method(), endpoint).Observe(time.Since(start).Seconds())
		return err
	}
}
