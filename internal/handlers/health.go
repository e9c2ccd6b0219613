package handlers

import (
	"net/http"

	"github.com/bobmcallan/investx-portal/internal/common"
	"github.com/bobmcallan/investx-portal/internal/config"
)

// HealthHandler reports that the portal process is serving. It does not
// probe the InvestX API; /api/version does that.
type HealthHandler struct {
	logger *common.Logger
}

func NewHealthHandler(logger *common.Logger) *HealthHandler {
	return &HealthHandler{logger: logger}
}

// ServeHTTP handles GET /api/health.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "investx-portal",
		"version": config.GetVersion(),
	})
}
