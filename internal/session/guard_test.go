package session

import (
	"context"
	"testing"

	"github.com/bobmcallan/investx-portal/internal/models"
)

func authed() State {
	return AuthenticatedState(&models.Session{ID: "s1", Token: "tok", User: models.User{FirstName: "Asha"}})
}

func TestGuard(t *testing.T) {
	tests := []struct {
		path      string
		anonymous string
		authed    string
	}{
		{"/", "", "/dashboard"},
		{"/login", "", "/dashboard"},
		{"/signup", "", "/dashboard"},
		{"/signup/", "", "/dashboard"},
		{"/dashboard", "/login", ""},
		{"/products", "/login", ""},
		{"/investments", "/login", ""},
		{"/api/health", "", ""},
		{"/static/css/portal.css", "", ""},
		{"/logout", "", ""},
	}
	for _, tt := range tests {
		if got := Guard(State{}, tt.path); got != tt.anonymous {
			t.Errorf("anonymous %s: expected redirect %q, got %q", tt.path, tt.anonymous, got)
		}
		if got := Guard(authed(), tt.path); got != tt.authed {
			t.Errorf("authenticated %s: expected redirect %q, got %q", tt.path, tt.authed, got)
		}
	}
}

func TestState_Anonymous(t *testing.T) {
	var s State
	if s.IsAuthenticated() {
		t.Error("zero state must be anonymous")
	}
	if s.User() != nil || s.Token() != "" || s.ID() != "" {
		t.Error("anonymous state must not expose session data")
	}
	if s.Status.String() != "anonymous" {
		t.Errorf("expected anonymous, got %s", s.Status)
	}
	if AuthenticatedState(nil).IsAuthenticated() {
		t.Error("nil session must be anonymous")
	}
}

func TestState_Authenticated(t *testing.T) {
	s := authed()
	if !s.IsAuthenticated() {
		t.Fatal("expected authenticated")
	}
	if s.User().FirstName != "Asha" || s.Token() != "tok" || s.ID() != "s1" {
		t.Errorf("unexpected state accessors: %+v", s)
	}
	if s.Status.String() != "authenticated" {
		t.Errorf("expected authenticated, got %s", s.Status)
	}
}

func TestContextRoundTrip(t *testing.T) {
	if FromContext(context.Background()).IsAuthenticated() {
		t.Error("empty context must be anonymous")
	}
	ctx := WithState(context.Background(), authed())
	if got := FromContext(ctx); got.Token() != "tok" {
		t.Errorf("expected token from context, got %q", got.Token())
	}
}
