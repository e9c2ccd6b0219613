package session

import (
	"context"

	"github.com/bobmcallan/investx-portal/internal/models"
)

// Status is the browser's authentication state.
type Status int

const (
	Anonymous Status = iota
	Authenticated
)

func (s Status) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

// State is the per-request session view injected by middleware.
type State struct {
	Status  Status
	Session *models.Session
}

// AuthenticatedState wraps a live session.
func AuthenticatedState(sess *models.Session) State {
	if sess == nil {
		return State{}
	}
	return State{Status: Authenticated, Session: sess}
}

// IsAuthenticated reports whether the request carries a live session.
func (s State) IsAuthenticated() bool {
	return s.Status == Authenticated && s.Session != nil
}

// User returns the session user, or nil when anonymous.
func (s State) User() *models.User {
	if !s.IsAuthenticated() {
		return nil
	}
	return &s.Session.User
}

// Token returns the API token, or "" when anonymous.
func (s State) Token() string {
	if !s.IsAuthenticated() {
		return ""
	}
	return s.Session.Token
}

// ID returns the session ID, or "" when anonymous.
func (s State) ID() string {
	if !s.IsAuthenticated() {
		return ""
	}
	return s.Session.ID
}

type ctxKey struct{}

// WithState returns a copy of ctx carrying state.
func WithState(ctx context.Context, state State) context.Context {
	return context.WithValue(ctx, ctxKey{}, state)
}

// FromContext returns the request's state, anonymous if none was set.
func FromContext(ctx context.Context) State {
	if s, ok := ctx.Value(ctxKey{}).(State); ok {
		return s
	}
	return State{}
}
