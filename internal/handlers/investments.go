package handlers

import (
	"errors"
	"net/http"

	"github.com/bobmcallan/investx-portal/internal/client"
	"github.com/bobmcallan/investx-portal/internal/common"
	"github.com/bobmcallan/investx-portal/internal/models"
	"github.com/bobmcallan/investx-portal/internal/session"
)

const investmentsErrorMessage = "Failed to load investments. Please try again."

// InvestmentsHandler lists every investment the user holds.
type InvestmentsHandler struct {
	logger   *common.Logger
	renderer *Renderer
	api      PortalAPI
	sessions SessionManager
	cookies  sessionCookies
}

// NewInvestmentsHandler creates a new investments handler.
func NewInvestmentsHandler(logger *common.Logger, renderer *Renderer, api PortalAPI, sessions SessionManager, cookieSecure bool) *InvestmentsHandler {
	return &InvestmentsHandler{
		logger:   logger,
		renderer: renderer,
		api:      api,
		sessions: sessions,
		cookies:  sessionCookies{secure: cookieSecure},
	}
}

// ServeHTTP handles GET /investments.
func (h *InvestmentsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	state := session.FromContext(r.Context())
	data := h.renderer.pageData(r, "investments")
	data["Summary"] = models.PortfolioSummary{}
	data["Investments"] = []models.Investment{}

	res, err := h.api.ListInvestments(r.Context(), state.Token())
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		endSession(w, r, h.sessions, h.api, h.cookies)
		return
	case err != nil:
		h.logger.Error().Err(err).Msg("Investments fetch failed")
		data["Error"] = investmentsErrorMessage
	default:
		data["Summary"] = res.PortfolioSummary
		data["Investments"] = res.Investments
	}

	h.renderer.Render(w, http.StatusOK, "investments.html", data)
}
