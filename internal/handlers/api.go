package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/bobmcallan/investx-portal/internal/client"
	"github.com/bobmcallan/investx-portal/internal/invest"
	"github.com/bobmcallan/investx-portal/internal/models"
	"github.com/bobmcallan/investx-portal/internal/session"
)

// PortalAPI is the part of the InvestX API the pages use.
type PortalAPI interface {
	Login(ctx context.Context, email, password string) (*client.AuthResult, error)
	Signup(ctx context.Context, req client.SignupRequest) error
	ListInvestments(ctx context.Context, token string) (*client.InvestmentsResponse, error)
	ListProducts(ctx context.Context, token string, sortBy invest.SortKey) ([]models.InvestmentProduct, error)
	LoadDashboard(ctx context.Context, token string) (*client.Dashboard, error)
	GetServerVersion(ctx context.Context) (string, error)
	ForgetToken(token string)
}

// SessionManager begins and ends browser sessions.
type SessionManager interface {
	Begin(ctx context.Context, token string, user models.User) (*models.Session, error)
	End(ctx context.Context, id string) error
}

// sessionCookies writes and clears the session cookie.
type sessionCookies struct {
	secure bool
}

func (c sessionCookies) set(w http.ResponseWriter, sess *models.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    sess.ID,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c sessionCookies) clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// endSession drops the local session after the API rejected its token,
// then sends the browser to the login page.
func endSession(w http.ResponseWriter, r *http.Request, sessions SessionManager, api PortalAPI, cookies sessionCookies) {
	state := session.FromContext(r.Context())
	if state.IsAuthenticated() {
		_ = sessions.End(r.Context(), state.ID())
		api.ForgetToken(state.Token())
	}
	cookies.clear(w)
	http.Redirect(w, r, session.LoginPath, http.StatusFound)
}
