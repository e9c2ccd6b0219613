package mcp

import (
	"context"
	"time"

	"github.com/bobmcallan/investx-portal/internal/config"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ServerVersioner reports the API server version.
type ServerVersioner interface {
	GetServerVersion(ctx context.Context) (string, error)
}

// versionInfo holds version fields for one component.
type versionInfo struct {
	Version string `json:"version"`
	Build   string `json:"build,omitempty"`
	Commit  string `json:"commit,omitempty"`
}

// VersionTool returns the mcp.Tool definition for the get_version tool.
func VersionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get InvestX portal and API server versions. Use this to verify connectivity."),
	)
}

// VersionToolHandler combines the portal version with the API server's.
// An unreachable server is left out rather than failing the call.
func VersionToolHandler(versions ServerVersioner) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result := map[string]versionInfo{
			"investx_portal": {
				Version: config.GetVersion(),
				Build:   config.GetBuild(),
				Commit:  config.GetGitCommit(),
			},
		}

		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if v, err := versions.GetServerVersion(ctx); err == nil && v != "" {
			result["investx_server"] = versionInfo{Version: v}
		}

		return jsonResult(result), nil
	}
}
