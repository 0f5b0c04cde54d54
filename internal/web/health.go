package web

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Check is a named dependency probe, e.g. a database ping.
type Check struct {
	Name  string
	Probe func(ctx context.Context) error
}

// Health answers 200 when every probe passes and 503 otherwise.
func (rs *Responder) Health(timeout time.Duration, checks ...Check) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		status := map[string]string{}
		healthy := true
		for _, c := range checks {
			if err := c.Probe(ctx); err != nil {
				rs.logger.Warn("health check failed", zap.String("check", c.Name), zap.Error(err))
				status[c.Name] = "down"
				healthy = false
				continue
			}
			status[c.Name] = "up"
		}

		code := http.StatusOK
		if !healthy {
			code = http.StatusServiceUnavailable
		}
		rs.JSON(w, code, map[string]interface{}{"ok": healthy, "checks": status})
	}
}
