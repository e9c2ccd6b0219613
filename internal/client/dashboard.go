package client

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/bobmcallan/investx-portal/internal/models"
)

const (
	// RecentInvestmentsLimit is how many investments the dashboard lists.
	RecentInvestmentsLimit = 5
	// RecommendationsLimit is how many recommendations the dashboard shows.
	RecommendationsLimit = 3
)

// Dashboard is the data behind the dashboard page.
type Dashboard struct {
	Summary         models.PortfolioSummary
	Investments     []models.Investment
	Recommendations []models.InvestmentProduct
}

// RecentInvestments returns at most RecentInvestmentsLimit investments in
// API order.
func (d *Dashboard) RecentInvestments() []models.Investment {
	return head(d.Investments, RecentInvestmentsLimit)
}

// TopRecommendations returns at most RecommendationsLimit products in
// API order.
func (d *Dashboard) TopRecommendations() []models.InvestmentProduct {
	return head(d.Recommendations, RecommendationsLimit)
}

// LoadDashboard fetches investments and recommendations concurrently.
// If either call fails the whole load fails and no partial data is
// returned. Both calls run to completion so that a rejected token is
// reported as ErrUnauthorized even when the other call failed first.
func (c *InvestXClient) LoadDashboard(ctx context.Context, token string) (*Dashboard, error) {
	var g errgroup.Group

	var investments *InvestmentsResponse
	var recommendations []models.InvestmentProduct
	var investmentsErr, recommendationsErr error

	g.Go(func() error {
		investments, investmentsErr = c.ListInvestments(ctx, token)
		return investmentsErr
	})
	g.Go(func() error {
		recommendations, recommendationsErr = c.GetRecommendations(ctx, token)
		return recommendationsErr
	})

	if err := g.Wait(); err != nil {
		for _, e := range []error{investmentsErr, recommendationsErr} {
			if errors.Is(e, ErrUnauthorized) {
				return nil, e
			}
		}
		return nil, err
	}

	return &Dashboard{
		Summary:         investments.PortfolioSummary,
		Investments:     investments.Investments,
		Recommendations: recommendations,
	}, nil
}

func head[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
