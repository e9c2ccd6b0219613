package session

import "strings"

// Access classifies a page for the navigation guard.
type Access int

const (
	Public Access = iota
	AnonymousOnly
	AuthenticatedOnly
)

const (
	HomePath      = "/"
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

var pageAccess = map[string]Access{
	"/":            AnonymousOnly,
	"/login":       AnonymousOnly,
	"/signup":      AnonymousOnly,
	"/dashboard":   AuthenticatedOnly,
	"/products":    AuthenticatedOnly,
	"/investments": AuthenticatedOnly,
}

// AccessFor returns the access rule for path. Trailing slashes are ignored.
func AccessFor(path string) Access {
	if path != "/" {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return pageAccess[path]
}

// Guard returns where to redirect a request for path given state, or ""
// when the page may be shown.
func Guard(state State, path string) string {
	switch AccessFor(path) {
	case AnonymousOnly:
		if state.IsAuthenticated() {
			return DashboardPath
		}
	case AuthenticatedOnly:
		if !state.IsAuthenticated() {
			return LoginPath
		}
	}
	return ""
}
