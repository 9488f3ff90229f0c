package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	applog "demeter/internal/log"
)

const healthCheckTimeout = 2 * time.Second

type healthResponse struct {
	Status     string            `json:"status"`
	Time       time.Time         `json:"time"`
	Components map[string]string `json:"components,omitempty"`
}

// Health pings the database and cache. Any failing component turns the status
// to degraded with a 503 so load balancers stop routing to the instance.
func Health(w http.ResponseWriter, r *http.Request) {
	applog.Debug(r.Context(), "health check requested", "method", r.Method, "checks", len(deps.Checks))

	resp := healthResponse{Status: "ok", Time: time.Now().UTC()}
	status := http.StatusOK

	if len(deps.Checks) > 0 {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		names := make([]string, 0, len(deps.Checks))
		for name := range deps.Checks {
			names = append(names, name)
		}
		sort.Strings(names)

		resp.Components = make(map[string]string, len(names))
		for _, name := range names {
			if err := deps.Checks[name](ctx); err != nil {
				applog.Warn(r.Context(), "health check failed", "component", name, "error", err)
				resp.Components[name] = err.Error()
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Components[name] = "ok"
		}
	}

	writeJSON(w, status, resp)
}
