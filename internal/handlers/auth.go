package handlers

import (
	"errors"
	"net/http"

	"github.com/bobmcallan/investx-portal/internal/client"
	"github.com/bobmcallan/investx-portal/internal/common"
	"github.com/bobmcallan/investx-portal/internal/forms"
	"github.com/bobmcallan/investx-portal/internal/invest"
	"github.com/bobmcallan/investx-portal/internal/session"
)

const (
	loginFailedMessage  = "Login failed. Please check your credentials and try again."
	signupFailedMessage = "Signup failed. Please try again."
	unavailableMessage  = "The service is unavailable. Please try again later."
)

// AuthHandler serves the login and signup forms and logout.
type AuthHandler struct {
	logger    *common.Logger
	renderer  *Renderer
	api       PortalAPI
	sessions  SessionManager
	validator *forms.Validator
	cookies   sessionCookies
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(logger *common.Logger, renderer *Renderer, api PortalAPI, sessions SessionManager, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		logger:    logger,
		renderer:  renderer,
		api:       api,
		sessions:  sessions,
		validator: forms.NewValidator(),
		cookies:   sessionCookies{secure: cookieSecure},
	}
}

// ServeLogin handles GET and POST /login.
func (h *AuthHandler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		data := h.renderer.pageData(r, "login")
		data["Form"] = forms.LoginForm{}
		data["Registered"] = r.URL.Query().Get("registered") == "1"
		h.renderer.Render(w, http.StatusOK, "login.html", data)
	case http.MethodPost:
		h.handleLogin(w, r)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

// handleLogin validates the form, forwards the credentials to the API,
// begins a session and redirects to the dashboard.
func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	form := forms.LoginFromRequest(r)
	renderErr := func(status int, errs forms.FieldErrors, message string) {
		data := h.renderer.pageData(r, "login")
		data["Form"] = forms.LoginForm{Email: form.Email}
		data["Errors"] = errs
		data["Error"] = message
		h.renderer.Render(w, status, "login.html", data)
	}

	if errs := h.validator.Validate(form); errs != nil {
		renderErr(http.StatusUnprocessableEntity, errs, "")
		return
	}

	result, err := h.api.Login(r.Context(), form.Email, form.Password)
	if err != nil {
		h.logger.Warn().Err(err).Msg("Login rejected")
		status, message := http.StatusBadGateway, unavailableMessage
		if isClientError(err) {
			status, message = http.StatusUnauthorized, loginFailedMessage
			if detail := client.DetailOf(err); detail != "" {
				message = detail
			}
		}
		renderErr(status, nil, message)
		return
	}

	sess, err := h.sessions.Begin(r.Context(), result.Token, result.User)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to begin session")
		status := http.StatusInternalServerError
		if errors.Is(err, session.ErrInvalidToken) {
			status = http.StatusBadGateway
		}
		renderErr(status, nil, loginFailedMessage)
		return
	}

	h.cookies.set(w, sess)
	h.logger.Info().Str("user_id", result.User.ID).Msg("User logged in")
	http.Redirect(w, r, session.DashboardPath, http.StatusFound)
}

// ServeSignup handles GET and POST /signup.
func (h *AuthHandler) ServeSignup(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		data := h.signupData(r, forms.SignupForm{RiskAppetite: "moderate"})
		h.renderer.Render(w, http.StatusOK, "signup.html", data)
	case http.MethodPost:
		h.handleSignup(w, r)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (h *AuthHandler) signupData(r *http.Request, form forms.SignupForm) map[string]interface{} {
	form.Password = ""
	form.ConfirmPassword = ""
	data := h.renderer.pageData(r, "signup")
	data["Form"] = form
	data["RiskAppetiteOptions"] = invest.RiskAppetiteOptions
	return data
}

// handleSignup registers the account and sends the user to log in.
// Signing up does not start a session.
func (h *AuthHandler) handleSignup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	form := forms.SignupFromRequest(r)
	if errs := h.validator.Validate(form); errs != nil {
		data := h.signupData(r, form)
		data["Errors"] = errs
		h.renderer.Render(w, http.StatusUnprocessableEntity, "signup.html", data)
		return
	}

	err := h.api.Signup(r.Context(), client.SignupRequest{
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		Email:        form.Email,
		Password:     form.Password,
		RiskAppetite: form.RiskAppetite,
	})
	if err != nil {
		h.logger.Warn().Err(err).Msg("Signup rejected")
		status, message := http.StatusBadGateway, unavailableMessage
		if isClientError(err) {
			status, message = http.StatusBadRequest, signupFailedMessage
			if detail := client.DetailOf(err); detail != "" {
				message = detail
			}
		}
		data := h.signupData(r, form)
		data["Error"] = message
		h.renderer.Render(w, status, "signup.html", data)
		return
	}

	h.logger.Info().Str("email", form.Email).Msg("User signed up")
	http.Redirect(w, r, session.LoginPath+"?registered=1", http.StatusFound)
}

// HandleLogout ends the session, clears the cookie and redirects home.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	state := session.FromContext(r.Context())
	if state.IsAuthenticated() {
		if err := h.sessions.End(r.Context(), state.ID()); err != nil {
			h.logger.Warn().Err(err).Msg("Failed to end session")
		}
		h.api.ForgetToken(state.Token())
	}

	h.cookies.clear(w)
	http.Redirect(w, r, session.HomePath, http.StatusFound)
}

// isClientError reports whether the API answered with a 4xx status.
func isClientError(err error) bool {
	var apiErr *client.APIError
	return errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500
}
