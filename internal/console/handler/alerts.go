package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/xela07ax/snortview/internal/console/service"
	"go.uber.org/zap"
)

type AlertHandler struct {
	service *service.AlertService
	logger  *zap.Logger
}

func NewAlertHandler(s *service.AlertService, logger *zap.Logger) *AlertHandler {
	return &AlertHandler{service: s, logger: logger.Named("alert-handler")}
}

// List GET /api/v1/alerts?page=&perPage=&startDate=&endDate=&srcAddr=&dstAddr=&dstPort=&...
func (h *AlertHandler) List(w http.ResponseWriter, r *http.Request) {
	q, err := parseAlertQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.service.FetchAlerts(r.Context(), q)
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// Get GET /api/v1/alerts/{id}
func (h *AlertHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid alert id")
		return
	}

	alert, err := h.service.GetAlert(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, alert)
}
