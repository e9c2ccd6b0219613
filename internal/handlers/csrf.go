package handlers

import (
	"context"
	"net/http"
)

// CSRFCookieName holds the double-submit token; forms echo it in CSRFFieldName.
const (
	CSRFCookieName = "_csrf"
	CSRFFieldName  = "_csrf"
	CSRFHeaderName = "X-CSRF-Token"
)

type csrfKey struct{}

// WithCSRFToken stores the request's CSRF token so pages can embed it.
func WithCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, csrfKey{}, token)
}

// CSRFToken returns the token set by the CSRF middleware, or "".
func CSRFToken(r *http.Request) string {
	token, _ := r.Context().Value(csrfKey{}).(string)
	return token
}
