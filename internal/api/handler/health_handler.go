package handler

import (
	"context"
	"customer-service/internal/api/handler/dto"
	"log/slog"
	"net/http"
	"time"
)

const healthPingTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db     Pinger
	logger *slog.Logger
}

func NewHealthHandler(db Pinger, l *slog.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: l.With("component", "HealthHandler")}
}

// Health handles GET /health. A failed database ping reports 503.
//
// @Summary Service health
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResponse "Service and database are up"
// @Failure 503 {object} dto.HealthResponse "Database is unreachable"
// @Router /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		respondJSON(w, http.StatusOK, dto.HealthResponse{Status: "ok", Database: "unknown"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.logger.WarnContext(r.Context(), "Health check database ping failed", slog.Any("error", err))
		respondJSON(w, http.StatusServiceUnavailable, dto.HealthResponse{Status: "degraded", Database: "down"})
		return
	}
	respondJSON(w, http.StatusOK, dto.HealthResponse{Status: "ok", Database: "up"})
}
