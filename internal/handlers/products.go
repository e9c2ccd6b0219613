package handlers

import (
	"errors"
	"net/http"

	"github.com/bobmcallan/investx-portal/internal/client"
	"github.com/bobmcallan/investx-portal/internal/common"
	"github.com/bobmcallan/investx-portal/internal/invest"
	"github.com/bobmcallan/investx-portal/internal/models"
	"github.com/bobmcallan/investx-portal/internal/session"
)

const productsErrorMessage = "Failed to load products. Please try again."

// ProductsHandler serves the product catalogue with its search, filter
// and sort controls.
type ProductsHandler struct {
	logger   *common.Logger
	renderer *Renderer
	api      PortalAPI
	sessions SessionManager
	cookies  sessionCookies
}

// NewProductsHandler creates a new products handler.
func NewProductsHandler(logger *common.Logger, renderer *Renderer, api PortalAPI, sessions SessionManager, cookieSecure bool) *ProductsHandler {
	return &ProductsHandler{
		logger:   logger,
		renderer: renderer,
		api:      api,
		sessions: sessions,
		cookies:  sessionCookies{secure: cookieSecure},
	}
}

// ServeHTTP handles GET /products?q=&type=&risk=&sort_by=.
// The API sorts; the portal only filters the returned list.
func (h *ProductsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	query := invest.QueryFromValues(r.URL.Query())
	state := session.FromContext(r.Context())

	data := h.renderer.pageData(r, "products")
	data["Query"] = query
	data["TypeOptions"] = invest.TypeOptions
	data["RiskOptions"] = invest.RiskOptions
	data["SortOptions"] = invest.SortOptions
	data["Products"] = []models.InvestmentProduct{}

	products, err := h.api.ListProducts(r.Context(), state.Token(), query.SortBy)
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		endSession(w, r, h.sessions, h.api, h.cookies)
		return
	case err != nil:
		h.logger.Error().Err(err).Str("sort_by", string(query.SortBy)).Msg("Products fetch failed")
		data["Error"] = productsErrorMessage
	default:
		data["Products"] = invest.Apply(products, query.Filter)
		data["Total"] = len(products)
	}

	h.renderer.Render(w, http.StatusOK, "products.html", data)
}
