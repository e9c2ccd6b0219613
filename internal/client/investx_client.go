// Package client talks to the InvestX API server. Every outbound call
// carries the caller's context so an abandoned page request cancels its
// upstream calls.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bobmcallan/investx-portal/internal/cache"
	"github.com/bobmcallan/investx-portal/internal/common"
	"github.com/bobmcallan/investx-portal/internal/invest"
	"github.com/bobmcallan/investx-portal/internal/models"
)

const maxResponseBytes = 1 << 20

// ErrRequestFailed wraps every failed API call.
var ErrRequestFailed = errors.New("investx api request failed")

// ErrUnauthorized is additionally wrapped when the API rejects the token.
var ErrUnauthorized = errors.New("unauthorized")

// APIError carries the status and detail message of a non-2xx response.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Detail)
}

// Unwrap lets errors.Is match ErrRequestFailed, plus ErrUnauthorized on 401.
func (e *APIError) Unwrap() []error {
	if e.Status == http.StatusUnauthorized {
		return []error{ErrRequestFailed, ErrUnauthorized}
	}
	return []error{ErrRequestFailed}
}

// DetailOf returns the API's detail message for err, or "".
func DetailOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return ""
}

// AuthResult is the login response.
type AuthResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// SignupRequest is the registration payload. The confirmation field
// never leaves the portal.
type SignupRequest struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	RiskAppetite string `json:"risk_appetite"`
}

// InvestmentsResponse is the user's holdings plus the server-side summary.
type InvestmentsResponse struct {
	Investments      []models.Investment     `json:"investments"`
	PortfolioSummary models.PortfolioSummary `json:"portfolio_summary"`
}

// InvestXClient is safe for concurrent use.
type InvestXClient struct {
	baseURL    string
	httpClient *http.Client
	cache      *cache.ResponseCache
	logger     *common.Logger
}

// NewInvestXClient creates a client for baseURL. cache may be nil, in
// which case product listings are always fetched.
func NewInvestXClient(baseURL string, timeout time.Duration, respCache *cache.ResponseCache, logger *common.Logger) *InvestXClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &InvestXClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		cache:      respCache,
		logger:     logger,
	}
}

// BaseURL returns the API address the client targets.
func (c *InvestXClient) BaseURL() string {
	return c.baseURL
}

// Login exchanges credentials for a token.
// POST /api/auth/login -> { token, user }
func (c *InvestXClient) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", body, &result); err != nil {
		return nil, err
	}
	if result.Token == "" {
		return nil, fmt.Errorf("%w: login response has no token", ErrRequestFailed)
	}
	return &result, nil
}

// Signup registers a new account. It does not log the user in.
// POST /api/auth/signup
func (c *InvestXClient) Signup(ctx context.Context, req SignupRequest) error {
	return c.do(ctx, http.MethodPost, "/api/auth/signup", "", req, nil)
}

// ListInvestments fetches the user's investments and portfolio summary.
// GET /api/investments -> { investments, portfolio_summary }
func (c *InvestXClient) ListInvestments(ctx context.Context, token string) (*InvestmentsResponse, error) {
	var result InvestmentsResponse
	if err := c.do(ctx, http.MethodGet, "/api/investments", token, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetRecommendations fetches products ranked for the user's risk appetite.
// GET /api/products/recommendations -> { recommendations }
func (c *InvestXClient) GetRecommendations(ctx context.Context, token string) ([]models.InvestmentProduct, error) {
	var result struct {
		Recommendations []models.InvestmentProduct `json:"recommendations"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/products/recommendations", token, nil, &result); err != nil {
		return nil, err
	}
	return result.Recommendations, nil
}

// ListProducts fetches the catalogue ordered by sortBy. Successful
// responses are cached per token and sort key.
// GET /api/products?sort_by=<key> -> { products }
func (c *InvestXClient) ListProducts(ctx context.Context, token string, sortBy invest.SortKey) ([]models.InvestmentProduct, error) {
	path := "/api/products?" + url.Values{"sort_by": {string(sortBy)}}.Encode()

	var body []byte
	key := cache.MakeKey(token, http.MethodGet, path)
	if c.cache != nil {
		if hit, ok := c.cache.Get(key); ok {
			body = hit.Body
		}
	}

	if body == nil {
		raw, err := c.fetch(ctx, http.MethodGet, path, token, nil)
		if err != nil {
			return nil, err
		}
		body = raw
		if c.cache != nil {
			c.cache.Set(key, http.StatusOK, body)
		}
	}

	var result struct {
		Products []models.InvestmentProduct `json:"products"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: failed to parse products: %v", ErrRequestFailed, err)
	}
	return result.Products, nil
}

// ForgetToken drops cached responses fetched with token.
func (c *InvestXClient) ForgetToken(token string) {
	if c.cache != nil {
		c.cache.InvalidateSubject(token)
	}
}

// GetServerVersion returns the API server's version string.
// GET /api/version -> { version }
func (c *InvestXClient) GetServerVersion(ctx context.Context) (string, error) {
	var result struct {
		Version string `json:"version"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/version", "", nil, &result); err != nil {
		return "", err
	}
	return result.Version, nil
}

func (c *InvestXClient) do(ctx context.Context, method, path, token string, in, out any) error {
	body, err := c.fetch(ctx, method, path, token, in)
	if err != nil {
		return err
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: failed to parse response from %s: %v", ErrRequestFailed, path, err)
	}
	return nil
}

// fetch performs one request and returns the body of a 2xx response.
func (c *InvestXClient) fetch(ctx context.Context, method, path, token string, in any) ([]byte, error) {
	var reqBody io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to encode request: %v", ErrRequestFailed, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Str("method", method).Str("path", path).Err(err).Msg("API request failed")
		return nil, fmt.Errorf("%w: failed to reach investx api: %w", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrRequestFailed, err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("API request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Detail: parseDetail(body)}
	}
	return body, nil
}

// parseDetail extracts a message from {"detail": ...} or {"error": ...}
// error bodies. Validation-style detail arrays use the first entry's msg.
func parseDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
		Error  string          `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if len(payload.Detail) > 0 {
		var s string
		if json.Unmarshal(payload.Detail, &s) == nil {
			return s
		}
		var list []struct {
			Msg string `json:"msg"`
		}
		if json.Unmarshal(payload.Detail, &list) == nil && len(list) > 0 {
			return list[0].Msg
		}
	}
	return payload.Error
}
