package mcp

import (
	"context"
	"errors"
	"math"

	"github.com/bobmcallan/investx-portal/internal/client"
	"github.com/bobmcallan/investx-portal/internal/format"
	"github.com/bobmcallan/investx-portal/internal/invest"
	"github.com/bobmcallan/investx-portal/internal/models"
	"github.com/bobmcallan/investx-portal/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ProductSource is the part of the API the product tool needs.
type ProductSource interface {
	ListProducts(ctx context.Context, token string, sortBy invest.SortKey) ([]models.InvestmentProduct, error)
}

// registerTools adds every portal tool to s.
func registerTools(s *server.MCPServer, products ProductSource, versions ServerVersioner, f *format.Formatter) int {
	tools := []server.ServerTool{
		{Tool: ReturnsTool(), Handler: ReturnsToolHandler(f)},
		{Tool: ProductsTool(), Handler: ProductsToolHandler(products)},
		{Tool: VersionTool(), Handler: VersionToolHandler(versions)},
	}
	s.AddTools(tools...)
	return len(tools)
}

// ReturnsTool returns the calculate_returns tool definition.
func ReturnsTool() mcp.Tool {
	return mcp.NewTool("calculate_returns",
		mcp.WithDescription("Project the value of an investment at maturity using simple annual interest."),
		mcp.WithNumber("amount", mcp.Required(), mcp.Description("Principal to invest")),
		mcp.WithNumber("annual_yield", mcp.Required(), mcp.Description("Annual yield in percent, e.g. 7.5")),
		mcp.WithNumber("tenure_months", mcp.Required(), mcp.Description("Tenure in whole months")),
	)
}

type returnsResult struct {
	Amount         float64 `json:"amount"`
	AnnualYield    float64 `json:"annual_yield"`
	TenureMonths   int     `json:"tenure_months"`
	ProjectedValue float64 `json:"projected_value"`
	Gain           float64 `json:"gain"`
	Formatted      string  `json:"projected_value_formatted"`
}

// ReturnsToolHandler validates the inputs and runs the returns calculator.
func ReturnsToolHandler(f *format.Formatter) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		amount, err := r.RequireFloat("amount")
		if err != nil {
			return errorResult("Error: amount parameter is required"), nil
		}
		yield, err := r.RequireFloat("annual_yield")
		if err != nil {
			return errorResult("Error: annual_yield parameter is required"), nil
		}
		tenureArg, err := r.RequireFloat("tenure_months")
		if err != nil {
			return errorResult("Error: tenure_months parameter is required"), nil
		}
		tenure, ok := wholeMonths(tenureArg)
		if !ok {
			return errorResult("Error: tenure_months must be a whole number"), nil
		}

		projected, err := invest.ProjectReturns(amount, yield, tenure)
		if err != nil {
			return errorResult("Error: " + err.Error()), nil
		}
		return jsonResult(returnsResult{
			Amount:         amount,
			AnnualYield:    yield,
			TenureMonths:   tenure,
			ProjectedValue: projected,
			Gain:           projected - amount,
			Formatted:      f.Currency(projected),
		}), nil
	}
}

// wholeMonths converts a JSON number to a month count. Fractions and
// values outside the int32 range are rejected rather than truncated.
func wholeMonths(v float64) (int, bool) {
	if v != math.Trunc(v) || v > math.MaxInt32 || v < math.MinInt32 {
		return 0, false
	}
	return int(v), true
}

// ProductsTool returns the list_products tool definition.
func ProductsTool() mcp.Tool {
	return mcp.NewTool("list_products",
		mcp.WithDescription("List investment products, optionally filtered and sorted."),
		mcp.WithString("search", mcp.Description("Case-insensitive text matched against name and description")),
		mcp.WithString("type", mcp.Description("Investment type"), mcp.Enum("bond", "fd", "mf", "etf")),
		mcp.WithString("risk", mcp.Description("Risk level"), mcp.Enum("low", "moderate", "high")),
		mcp.WithString("sort_by", mcp.Description("annual_yield (default), tenure_months, min_investment or created_at")),
	)
}

type productsResult struct {
	Total    int                        `json:"total"`
	Products []models.InvestmentProduct `json:"products"`
}

// ProductsToolHandler fetches the catalogue for the calling session and
// applies the product filter.
func ProductsToolHandler(products ProductSource) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		state := session.FromContext(ctx)
		if !state.IsAuthenticated() {
			return errorResult("Error: sign in to list products"), nil
		}

		filter := invest.ProductFilter{
			Search: r.GetString("search", ""),
			Type:   r.GetString("type", ""),
			Risk:   r.GetString("risk", ""),
		}
		sortBy := invest.ParseSortKey(r.GetString("sort_by", ""))

		list, err := products.ListProducts(ctx, state.Token(), sortBy)
		if err != nil {
			if errors.Is(err, client.ErrUnauthorized) {
				return errorResult("Error: session expired, sign in again"), nil
			}
			return errorResult("Error: failed to load products"), nil
		}
		matched := invest.Apply(list, filter)
		return jsonResult(productsResult{Total: len(matched), Products: matched}), nil
	}
}
