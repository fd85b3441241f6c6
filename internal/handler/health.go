package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"sitewright/internal/httputil"
)

// HealthHandler reports liveness and database reachability
type HealthHandler struct {
	pool *pgxpool.Pool
}

// NewHealthHandler creates a health check handler
func NewHealthHandler(pool *pgxpool.Pool) *HealthHandler {
	return &HealthHandler{pool: pool}
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.pool.Ping(ctx); err != nil {
		httputil.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "degraded",
			"detail": "database unreachable",
		})
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
