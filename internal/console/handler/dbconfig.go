package handler

import (
	"net/http"

	"github.com/xela07ax/snortview/internal/console/service"
	"github.com/xela07ax/snortview/internal/domain"
	"go.uber.org/zap"
)

type DBConfigHandler struct {
	service *service.DBConfigService
	logger  *zap.Logger
}

func NewDBConfigHandler(s *service.DBConfigService, logger *zap.Logger) *DBConfigHandler {
	return &DBConfigHandler{service: s, logger: logger.Named("dbconfig-handler")}
}

// Get GET /api/v1/database-config
func (h *DBConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.service.Load(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

// Put PUT /api/v1/database-config
func (h *DBConfigHandler) Put(w http.ResponseWriter, r *http.Request) {
	var cfg domain.DatabaseConfig
	if err := decodeJSON(w, r, &cfg); err != nil {
		writeError(w, http.StatusBadRequest, "bad request")
		return
	}

	saved, err := h.service.Save(r.Context(), cfg)
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// Test POST /api/v1/database-config/test. Неудачная проверка — 200 с success=false.
func (h *DBConfigHandler) Test(w http.ResponseWriter, r *http.Request) {
	var cfg domain.DatabaseConfig
	if err := decodeJSON(w, r, &cfg); err != nil {
		writeError(w, http.StatusBadRequest, "bad request")
		return
	}

	result, err := h.service.TestConnection(r.Context(), cfg)
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
