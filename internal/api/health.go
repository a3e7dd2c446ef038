package api

import (
	"context"
	"net/http"
	"time"
)

// Health reports service liveness plus per-dependency status. The endpoint
// itself always answers 200; degraded dependencies show up in the body.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	database := "ok"
	if err := h.DB.Ping(ctx); err != nil {
		database = "unavailable"
	}
	authStatus := "ok"
	if !h.Gateway.Available() {
		authStatus = "unavailable"
	}

	respondData(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"database":  database,
		"auth":      authStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
