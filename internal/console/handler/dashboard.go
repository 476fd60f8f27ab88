package handler

import (
	"context"
	"net/http"

	"github.com/xela07ax/snortview/internal/domain"
	"go.uber.org/zap"
)

// DashboardService Описываем, что нам нужно от сервиса
type DashboardService interface {
	GetDashboardStats(ctx context.Context, r domain.DateRange) (domain.DashboardStats, error)
}

type DashboardHandler struct {
	service DashboardService
	logger  *zap.Logger
}

func NewDashboardHandler(s DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{service: s, logger: logger.Named("dashboard-handler")}
}

// GetStats GET /api/v1/dashboard/stats?startDate=&endDate=
func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	rng, err := parseDateRange(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	stats, err := h.service.GetDashboardStats(r.Context(), rng)
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
