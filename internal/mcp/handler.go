package mcp

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bobmcallan/investx-portal/internal/common"
	"github.com/bobmcallan/investx-portal/internal/config"
	"github.com/bobmcallan/investx-portal/internal/format"
	"github.com/bobmcallan/investx-portal/internal/session"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// PortalAPI is what the tools need from the InvestX API client.
type PortalAPI interface {
	ProductSource
	ServerVersioner
}

// Handler is the HTTP handler for the MCP endpoint.
// It wraps mcp-go's StreamableHTTPServer and delegates to it.
type Handler struct {
	server     *mcpserver.MCPServer
	streamable *mcpserver.StreamableHTTPServer
	logger     *common.Logger
}

// NewHandler creates the MCP handler with the portal tools registered.
func NewHandler(api PortalAPI, formatter *format.Formatter, logger *common.Logger) *Handler {
	mcpSrv := mcpserver.NewMCPServer(
		"investx-portal",
		config.GetVersion(),
		mcpserver.WithToolCapabilities(true),
	)
	toolCount := registerTools(mcpSrv, api, api, formatter)

	streamable := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithStateLess(true),
		mcpserver.WithHTTPContextFunc(sessionContext),
	)

	logger.Info().Int("tools", toolCount).Msg("MCP handler initialized")

	return &Handler{
		server:     mcpSrv,
		streamable: streamable,
		logger:     logger,
	}
}

// MCPServer exposes the underlying server for in-process calls.
func (h *Handler) MCPServer() *mcpserver.MCPServer {
	return h.server
}

// ServeHTTP requires a signed-in session and delegates to the
// StreamableHTTPServer.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !session.FromContext(r.Context()).IsAuthenticated() {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{
			"error":             "unauthorized",
			"error_description": "Sign in to use the MCP endpoint",
		})
		return
	}

	h.streamable.ServeHTTP(w, r)
}

// sessionContext carries the session state loaded by the HTTP middleware
// into the tool call context.
func sessionContext(ctx context.Context, r *http.Request) context.Context {
	return session.WithState(ctx, session.FromContext(r.Context()))
}
