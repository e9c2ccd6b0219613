package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/bobmcallan/investx-portal/internal/common"
	"github.com/bobmcallan/investx-portal/internal/config"
)

// ServerVersioner reports the API server's version.
type ServerVersioner interface {
	GetServerVersion(ctx context.Context) (string, error)
}

// VersionHandler handles version information requests.
type VersionHandler struct {
	logger *common.Logger
	api    ServerVersioner
}

// NewVersionHandler creates a new version handler. api may be nil.
func NewVersionHandler(logger *common.Logger, api ServerVersioner) *VersionHandler {
	return &VersionHandler{logger: logger, api: api}
}

// ServeHTTP handles GET /api/version. The API server version is best
// effort and reported as "unavailable" when it cannot be fetched.
func (h *VersionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	info := config.VersionInfo()
	info["server_version"] = h.serverVersion(r.Context())

	WriteJSON(w, http.StatusOK, info)
}

func (h *VersionHandler) serverVersion(ctx context.Context) string {
	if h.api == nil {
		return "unavailable"
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	v, err := h.api.GetServerVersion(ctx)
	if err != nil || v == "" {
		if h.logger != nil && err != nil {
			h.logger.Debug().Err(err).Msg("Server version unavailable")
		}
		return "unavailable"
	}
	return v
}
