package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bobmcallan/investx-portal/internal/cache"
	"github.com/bobmcallan/investx-portal/internal/client"
	"github.com/bobmcallan/investx-portal/internal/common"
	"github.com/bobmcallan/investx-portal/internal/format"
	"github.com/bobmcallan/investx-portal/internal/models"
	"github.com/bobmcallan/investx-portal/internal/session"
	mcpgo "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

const testProducts = `{"products":[
	{"id":"p1","name":"Gold Bond","description":"Sovereign gold","investment_type":"bond","risk_level":"low","annual_yield":7.5,"tenure_months":60,"min_investment":10000},
	{"id":"p2","name":"Bluechip Fund","description":"Large caps","investment_type":"mf","risk_level":"high","annual_yield":12,"tenure_months":36,"min_investment":5000}
]}`

func newTestHandler(t *testing.T, api http.HandlerFunc) *Handler {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	c := client.NewInvestXClient(srv.URL, 5*time.Second, cache.New(time.Minute, 10), common.NewSilentLogger())
	return NewHandler(c, format.New("INR", "indian"), common.NewSilentLogger())
}

func signedIn(ctx context.Context) context.Context {
	return session.WithState(ctx, session.AuthenticatedState(&models.Session{ID: "s1", Token: "tok"}))
}

// listTools calls tools/list on the MCPServer and returns the tools.
func listTools(t *testing.T, s *mcpserver.MCPServer) []mcpgo.Tool {
	t.Helper()

	msg := json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list","params":{}}`)
	result := s.HandleMessage(t.Context(), msg)

	resp, ok := result.(mcpgo.JSONRPCResponse)
	if !ok {
		t.Fatalf("expected JSONRPCResponse, got %T", result)
	}

	resultJSON, err := json.Marshal(resp.Result)
	if err != nil {
		t.Fatalf("failed to marshal result: %v", err)
	}

	var toolsResult mcpgo.ListToolsResult
	if err := json.Unmarshal(resultJSON, &toolsResult); err != nil {
		t.Fatalf("failed to unmarshal ListToolsResult: %v", err)
	}
	return toolsResult.Tools
}

// callTool calls a tool on the MCPServer and returns the result.
func callTool(t *testing.T, ctx context.Context, s *mcpserver.MCPServer, name string, args map[string]interface{}) *mcpgo.CallToolResult {
	t.Helper()

	params := map[string]interface{}{
		"name":      name,
		"arguments": args,
	}
	paramsJSON, _ := json.Marshal(params)

	msg := json.RawMessage(`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":` + string(paramsJSON) + `}`)
	result := s.HandleMessage(ctx, msg)

	resp, ok := result.(mcpgo.JSONRPCResponse)
	if !ok {
		t.Fatalf("expected JSONRPCResponse, got %T", result)
	}

	resultJSON, err := json.Marshal(resp.Result)
	if err != nil {
		t.Fatalf("failed to marshal result: %v", err)
	}

	var toolResult mcpgo.CallToolResult
	if err := json.Unmarshal(resultJSON, &toolResult); err != nil {
		t.Fatalf("failed to unmarshal CallToolResult: %v", err)
	}
	return &toolResult
}

// extractText extracts the text field from an MCP content block.
func extractText(t *testing.T, result *mcpgo.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("expected content in result")
	}
	tc, ok := result.Content[0].(mcpgo.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", result.Content[0])
	}
	return tc.Text
}

func TestHandler_RegistersTools(t *testing.T) {
	h := newTestHandler(t, http.NotFound)

	names := map[string]bool{}
	for _, tool := range listTools(t, h.MCPServer()) {
		names[tool.Name] = true
	}
	for _, want := range []string{"calculate_returns", "list_products", "get_version"} {
		if !names[want] {
			t.Errorf("expected tool %s to be registered", want)
		}
	}
}

func TestCalculateReturns(t *testing.T) {
	h := newTestHandler(t, http.NotFound)

	result := callTool(t, t.Context(), h.MCPServer(), "calculate_returns", map[string]interface{}{
		"amount":        100000,
		"annual_yield":  12,
		"tenure_months": 12,
	})
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", extractText(t, result))
	}

	var got returnsResult
	if err := json.Unmarshal([]byte(extractText(t, result)), &got); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if got.ProjectedValue != 112000 || got.Gain != 12000 {
		t.Errorf("expected 112000 / 12000, got %v / %v", got.ProjectedValue, got.Gain)
	}
	if got.Formatted != "₹1,12,000" {
		t.Errorf("expected ₹1,12,000, got %s", got.Formatted)
	}
}

func TestCalculateReturns_InvalidInput(t *testing.T) {
	h := newTestHandler(t, http.NotFound)

	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{"missing amount", map[string]interface{}{"annual_yield": 5, "tenure_months": 12}, "amount"},
		{"negative yield", map[string]interface{}{"amount": 1000, "annual_yield": -1, "tenure_months": 12}, "annual_yield"},
		{"negative tenure", map[string]interface{}{"amount": 1000, "annual_yield": 5, "tenure_months": -3}, "tenure"},
		{"fractional negative tenure", map[string]interface{}{"amount": 1000, "annual_yield": 5, "tenure_months": -0.9}, "whole number"},
		{"fractional tenure", map[string]interface{}{"amount": 1000, "annual_yield": 5, "tenure_months": 6.5}, "whole number"},
		{"tenure out of range", map[string]interface{}{"amount": 1000, "annual_yield": 5, "tenure_months": 1e12}, "whole number"},
		{"overflowing result", map[string]interface{}{"amount": 1e300, "annual_yield": 1e10, "tenure_months": 12}, "projected_value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := callTool(t, t.Context(), h.MCPServer(), "calculate_returns", tt.args)
			if !result.IsError {
				t.Fatal("expected tool error")
			}
			if text := extractText(t, result); !strings.Contains(text, tt.want) {
				t.Errorf("expected error to mention %s, got %s", tt.want, text)
			}
		})
	}
}

func TestListProducts_FiltersForSession(t *testing.T) {
	var auth, sortBy string
	h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		sortBy = r.URL.Query().Get("sort_by")
		w.Write([]byte(testProducts))
	})

	result := callTool(t, signedIn(t.Context()), h.MCPServer(), "list_products", map[string]interface{}{
		"search":  "GOLD",
		"sort_by": "tenure_months",
	})
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", extractText(t, result))
	}
	if auth != "Bearer tok" {
		t.Errorf("expected session token upstream, got %q", auth)
	}
	if sortBy != "tenure_months" {
		t.Errorf("expected sort_by=tenure_months, got %s", sortBy)
	}

	var got productsResult
	if err := json.Unmarshal([]byte(extractText(t, result)), &got); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if got.Total != 1 || got.Products[0].ID != "p1" {
		t.Errorf("expected only p1, got %+v", got)
	}
}

func TestListProducts_RequiresSession(t *testing.T) {
	calls := 0
	h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) { calls++ })

	result := callTool(t, t.Context(), h.MCPServer(), "list_products", map[string]interface{}{})
	if !result.IsError {
		t.Error("expected tool error without a session")
	}
	if calls != 0 {
		t.Errorf("expected no API calls, got %d", calls)
	}
}

func TestListProducts_APIFailure(t *testing.T) {
	h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	result := callTool(t, signedIn(t.Context()), h.MCPServer(), "list_products", map[string]interface{}{})
	if !result.IsError {
		t.Fatal("expected tool error")
	}
	if text := extractText(t, result); !strings.Contains(text, "session expired") {
		t.Errorf("unexpected error text: %s", text)
	}
}

func TestGetVersion(t *testing.T) {
	h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"version":"2.1.0"}`))
	})

	result := callTool(t, t.Context(), h.MCPServer(), "get_version", nil)
	var got map[string]versionInfo
	if err := json.Unmarshal([]byte(extractText(t, result)), &got); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if _, ok := got["investx_portal"]; !ok {
		t.Error("missing investx_portal in response")
	}
	if got["investx_server"].Version != "2.1.0" {
		t.Errorf("expected server version 2.1.0, got %+v", got["investx_server"])
	}
}

func TestGetVersion_ServerUnreachable(t *testing.T) {
	h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	result := callTool(t, t.Context(), h.MCPServer(), "get_version", nil)
	if result.IsError {
		t.Fatal("should not be an error result when server is unreachable")
	}
	var got map[string]versionInfo
	if err := json.Unmarshal([]byte(extractText(t, result)), &got); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if _, ok := got["investx_server"]; ok {
		t.Error("investx_server should be absent when the server is unreachable")
	}
}

func TestServeHTTP_RequiresSession(t *testing.T) {
	h := newTestHandler(t, http.NotFound)

	req := httptest.NewRequest("POST", "/mcp", strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", w.Code)
	}
}

func TestServeHTTP_ToolsListWithSession(t *testing.T) {
	h := newTestHandler(t, http.NotFound)

	req := httptest.NewRequest("POST", "/mcp", strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"tools/list","params":{}}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	req = req.WithContext(signedIn(req.Context()))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "calculate_returns") {
		t.Errorf("expected tools in response, got %s", w.Body.String())
	}
}
