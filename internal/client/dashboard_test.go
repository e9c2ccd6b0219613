package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func dashboardServer(t *testing.T, investmentsStatus, recsStatus int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/investments":
			if investmentsStatus != http.StatusOK {
				w.WriteHeader(investmentsStatus)
				return
			}
			var items []string
			for i := 1; i <= 7; i++ {
				items = append(items, fmt.Sprintf(`{"id":"i%d","amount":%d}`, i, i*1000))
			}
			fmt.Fprintf(w, `{"investments":[%s],"portfolio_summary":{"total_invested":28000,"total_expected_return":30000,"total_gain":2000,"active_investments":7}}`,
				strings.Join(items, ","))
		case "/api/products/recommendations":
			if recsStatus != http.StatusOK {
				w.WriteHeader(recsStatus)
				return
			}
			w.Write([]byte(`{"recommendations":[{"id":"r1"},{"id":"r2"},{"id":"r3"},{"id":"r4"}]}`))
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
	}))
}

func TestLoadDashboard_Success(t *testing.T) {
	srv := dashboardServer(t, http.StatusOK, http.StatusOK)
	defer srv.Close()

	d, err := newTestClient(srv.URL).LoadDashboard(context.Background(), "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Summary.ActiveInvestments != 7 {
		t.Errorf("expected 7 active investments, got %d", d.Summary.ActiveInvestments)
	}

	recent := d.RecentInvestments()
	if len(recent) != RecentInvestmentsLimit {
		t.Fatalf("expected %d recent investments, got %d", RecentInvestmentsLimit, len(recent))
	}
	if recent[0].ID != "i1" || recent[4].ID != "i5" {
		t.Errorf("expected API order preserved, got %s..%s", recent[0].ID, recent[4].ID)
	}

	recs := d.TopRecommendations()
	if len(recs) != RecommendationsLimit || recs[2].ID != "r3" {
		t.Errorf("expected first 3 recommendations, got %+v", recs)
	}
}

func TestLoadDashboard_EitherFailureFailsWhole(t *testing.T) {
	tests := []struct {
		name        string
		investments int
		recs        int
	}{
		{"investments fail", http.StatusInternalServerError, http.StatusOK},
		{"recommendations fail", http.StatusOK, http.StatusInternalServerError},
		{"both fail", http.StatusBadGateway, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := dashboardServer(t, tt.investments, tt.recs)
			defer srv.Close()

			d, err := newTestClient(srv.URL).LoadDashboard(context.Background(), "tok")
			if d != nil {
				t.Errorf("expected no partial data, got %+v", d)
			}
			if !errors.Is(err, ErrRequestFailed) {
				t.Errorf("expected ErrRequestFailed, got %v", err)
			}
		})
	}
}

func TestLoadDashboard_Unauthorized(t *testing.T) {
	srv := dashboardServer(t, http.StatusUnauthorized, http.StatusOK)
	defer srv.Close()

	_, err := newTestClient(srv.URL).LoadDashboard(context.Background(), "expired")
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestLoadDashboard_UnauthorizedWinsOverEarlierFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/investments":
			time.Sleep(50 * time.Millisecond)
			w.WriteHeader(http.StatusUnauthorized)
		case "/api/products/recommendations":
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).LoadDashboard(context.Background(), "expired")
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestDashboard_ShortLists(t *testing.T) {
	d := &Dashboard{}
	if len(d.RecentInvestments()) != 0 || len(d.TopRecommendations()) != 0 {
		t.Error("expected empty lists for empty dashboard")
	}
}
