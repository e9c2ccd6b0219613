package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/bobmcallan/investx-portal/internal/common"
	"github.com/bobmcallan/investx-portal/internal/format"
	"github.com/bobmcallan/investx-portal/internal/invest"
)

// ReturnsResponse is the JSON body of GET /api/returns.
type ReturnsResponse struct {
	Amount            float64 `json:"amount"`
	AnnualYield       float64 `json:"annual_yield"`
	TenureMonths      int     `json:"tenure_months"`
	ProjectedValue    float64 `json:"projected_value"`
	Gain              float64 `json:"gain"`
	ProjectedValueFmt string  `json:"projected_value_formatted"`
	GainFmt           string  `json:"gain_formatted"`
}

// ReturnsHandler exposes the simple-interest calculator as JSON.
type ReturnsHandler struct {
	logger    *common.Logger
	formatter *format.Formatter
}

// NewReturnsHandler creates a new returns handler.
func NewReturnsHandler(logger *common.Logger, formatter *format.Formatter) *ReturnsHandler {
	if formatter == nil {
		formatter = format.New("", "")
	}
	return &ReturnsHandler{logger: logger, formatter: formatter}
}

// ServeHTTP handles GET /api/returns?amount=&annual_yield=&tenure_months=.
func (h *ReturnsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	amount, err := strconv.ParseFloat(q.Get("amount"), 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "amount must be a number")
		return
	}
	yield, err := strconv.ParseFloat(q.Get("annual_yield"), 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "annual_yield must be a number")
		return
	}
	tenure, err := strconv.Atoi(q.Get("tenure_months"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "tenure_months must be a whole number")
		return
	}

	projected, err := invest.ProjectReturns(amount, yield, tenure)
	if err != nil {
		var inputErr *invest.InputError
		if errors.As(err, &inputErr) {
			WriteError(w, http.StatusBadRequest, inputErr.Error())
			return
		}
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	gain, _ := decimal.NewFromFloat(projected).Sub(decimal.NewFromFloat(amount)).Float64()

	WriteJSON(w, http.StatusOK, ReturnsResponse{
		Amount:            amount,
		AnnualYield:       yield,
		TenureMonths:      tenure,
		ProjectedValue:    projected,
		Gain:              gain,
		ProjectedValueFmt: h.formatter.Currency(projected),
		GainFmt:           h.formatter.Currency(gain),
	})
}
