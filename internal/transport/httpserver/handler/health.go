package handler

import (
	"context"
	"net/http"
	"time"
)

const (
	statusUp   = "UP"
	statusDown = "DOWN"
)

type componentHealth struct {
	Status  string `json:"status"`
	Details any    `json:"details,omitempty"`
	Error   string `json:"error,omitempty"`
}

type healthResponse struct {
	Status     string                     `json:"status"`
	Components map[string]componentHealth `json:"components,omitempty"`
}

// Health runs every configured check and answers 503 when any is down.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	response := healthResponse{Status: statusUp, Components: make(map[string]componentHealth, len(h.checks))}
	for _, check := range h.checks {
		details, err := check.Check(ctx)
		if err != nil {
			h.log.Warn("health: check failed", "component", check.Name, "err", err)
			response.Status = statusDown
			response.Components[check.Name] = componentHealth{Status: statusDown, Error: err.Error()}
			continue
		}
		response.Components[check.Name] = componentHealth{Status: statusUp, Details: details}
	}

	status := http.StatusOK
	if response.Status == statusDown {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, response)
}
