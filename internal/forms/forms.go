// Package forms validates the login and signup forms before anything is
// sent to the API.
package forms

import (
	"errors"
	"net/http"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/bobmcallan/investx-portal/internal/models"
)

// emailPattern accepts anything@anything.tld without whitespace.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldErrors maps a form field name to its first error message.
type FieldErrors map[string]string

// Has reports whether field has an error.
func (fe FieldErrors) Has(field string) bool {
	_, ok := fe[field]
	return ok
}

// LoginForm is the login page payload.
type LoginForm struct {
	Email    string `form:"email" validate:"required,email_pattern"`
	Password string `form:"password" validate:"required"`
}

// SignupForm is the signup page payload.
type SignupForm struct {
	FirstName       string `form:"first_name" validate:"required,min=2"`
	LastName        string `form:"last_name"`
	Email           string `form:"email" validate:"required,email_pattern"`
	Password        string `form:"password" validate:"required,min=6"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`
	RiskAppetite    string `form:"risk_appetite" validate:"required,risk_appetite"`
}

// messages keyed by "Field.tag".
var messages = map[string]string{
	"Email.required":             "Email is required",
	"Email.email_pattern":        "Please enter a valid email address",
	"Password.required":          "Password is required",
	"Password.min":               "Password must be at least 6 characters",
	"FirstName.required":         "First name is required",
	"FirstName.min":              "First name must be at least 2 characters",
	"ConfirmPassword.required":   "Please confirm your password",
	"ConfirmPassword.eqfield":    "Passwords do not match",
	"RiskAppetite.required":      "Please select your risk appetite",
	"RiskAppetite.risk_appetite": "Please select your risk appetite",
}

// Validator wraps a configured validator.Validate.
type Validator struct {
	v *validator.Validate
}

// NewValidator registers the portal's custom rules.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	_ = v.RegisterValidation("email_pattern", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("risk_appetite", func(fl validator.FieldLevel) bool {
		return models.IsValidRiskLevel(fl.Field().String())
	})
	return &Validator{v: v}
}

// Validate checks form and returns nil when it is valid.
func (fv *Validator) Validate(form any) FieldErrors {
	err := fv.v.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"form": err.Error()}
	}
	out := FieldErrors{}
	for _, fe := range verrs {
		name := fe.Field()
		if _, seen := out[name]; seen {
			continue
		}
		msg, ok := messages[fe.StructField()+"."+fe.Tag()]
		if !ok {
			msg = "Invalid value"
		}
		out[name] = msg
	}
	return out
}

// LoginFromRequest reads a LoginForm from a parsed form body.
func LoginFromRequest(r *http.Request) LoginForm {
	return LoginForm{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
}

// SignupFromRequest reads a SignupForm from a parsed form body.
// Risk appetite defaults to moderate when the field is absent.
func SignupFromRequest(r *http.Request) SignupForm {
	risk := r.PostFormValue("risk_appetite")
	if _, present := r.PostForm["risk_appetite"]; !present {
		risk = string(models.RiskModerate)
	}
	return SignupForm{
		FirstName:       strings.TrimSpace(r.PostFormValue("first_name")),
		LastName:        strings.TrimSpace(r.PostFormValue("last_name")),
		Email:           strings.TrimSpace(r.PostFormValue("email")),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
		RiskAppetite:    strings.ToLower(risk),
	}
}
