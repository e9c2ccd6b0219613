package handlers

import (
	"errors"
	"net/http"

	"github.com/bobmcallan/investx-portal/internal/client"
	"github.com/bobmcallan/investx-portal/internal/common"
	"github.com/bobmcallan/investx-portal/internal/models"
	"github.com/bobmcallan/investx-portal/internal/session"
)

const dashboardErrorMessage = "Failed to load dashboard data. Please try again."

// DashboardHandler serves the portfolio overview.
type DashboardHandler struct {
	logger   *common.Logger
	renderer *Renderer
	api      PortalAPI
	sessions SessionManager
	cookies  sessionCookies
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(logger *common.Logger, renderer *Renderer, api PortalAPI, sessions SessionManager, cookieSecure bool) *DashboardHandler {
	return &DashboardHandler{
		logger:   logger,
		renderer: renderer,
		api:      api,
		sessions: sessions,
		cookies:  sessionCookies{secure: cookieSecure},
	}
}

// ServeHTTP renders the dashboard. Investments and recommendations are
// loaded together; if either fails the page shows an error and no data.
func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	state := session.FromContext(r.Context())
	data := h.renderer.pageData(r, "dashboard")
	data["Summary"] = models.PortfolioSummary{}
	data["Investments"] = []models.Investment{}
	data["Recommendations"] = []models.InvestmentProduct{}

	dash, err := h.api.LoadDashboard(r.Context(), state.Token())
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		h.logger.Info().Msg("API token rejected, ending session")
		endSession(w, r, h.sessions, h.api, h.cookies)
		return
	case err != nil:
		h.logger.Error().Err(err).Msg("Dashboard data fetch failed")
		data["Error"] = dashboardErrorMessage
	default:
		data["Summary"] = dash.Summary
		data["Investments"] = dash.RecentInvestments()
		data["Recommendations"] = dash.TopRecommendations()
	}

	h.renderer.Render(w, http.StatusOK, "dashboard.html", data)
}
