package server

import "net/http"

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()
	a := s.app

	// Pages
	mux.HandleFunc("/{$}", a.Renderer.ServePage("landing.html", "home"))
	mux.HandleFunc("/login", a.AuthHandler.ServeLogin)
	mux.HandleFunc("/signup", a.AuthHandler.ServeSignup)
	mux.HandleFunc("/logout", a.AuthHandler.HandleLogout)
	mux.Handle("/dashboard", a.DashboardHandler)
	mux.Handle("/products", a.ProductsHandler)
	mux.Handle("/investments", a.InvestmentsHandler)

	// Static files (CSS)
	mux.HandleFunc("/static/", a.Renderer.StaticFileHandler)

	// MCP endpoint (JSON-RPC over HTTP)
	if a.MCPHandler != nil {
		mux.Handle("/mcp", a.MCPHandler)
	}

	// API routes
	mux.Handle("/api/health", a.HealthHandler)
	mux.Handle("/api/version", a.VersionHandler)
	mux.Handle("/api/returns", a.ReturnsHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.handleNotFound)

	// Anything else is an unknown page
	mux.HandleFunc("/", http.NotFound)

	return mux
}

// handleNotFound returns a JSON 404 for unmatched API routes.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error":"Not Found","message":"The requested endpoint does not exist"}`))
}
