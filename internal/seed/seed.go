// Package seed registers demo accounts with the InvestX API in dev mode.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/bobmcallan/investx-portal/internal/client"
	"github.com/bobmcallan/investx-portal/internal/common"
	"github.com/bobmcallan/investx-portal/internal/forms"
	"github.com/bobmcallan/investx-portal/internal/models"
)

const (
	seedRetryAttempts = 3
	usersFileName     = "import/users.json"
)

var seedRetryDelay = 2 * time.Second

// Signer registers an account.
type Signer interface {
	Signup(ctx context.Context, req client.SignupRequest) error
}

// usersFile is the JSON structure for the users seed file.
type usersFile struct {
	Users []client.SignupRequest `json:"users"`
}

// DemoUsers signs up the accounts listed in import/users.json.
// Non-fatal: if the API is unreachable after retries, logs a warning and returns.
func DemoUsers(ctx context.Context, s Signer, logger *common.Logger) {
	path := findUsersFile()
	if path == "" {
		logger.Warn().Msg("seed: import/users.json not found, skipping demo users")
		return
	}

	users, err := loadUsersFile(path)
	if err != nil {
		logger.Error().Err(err).Str("path", path).Msg("seed: failed to load users file")
		return
	}
	if len(users) == 0 {
		logger.Warn().Msg("seed: users file is empty, skipping demo users")
		return
	}

	seedWithRetry(ctx, s, users, logger)
}

// findUsersFile searches next to the executable first, then the working directory.
func findUsersFile() string {
	if exe, err := os.Executable(); err == nil {
		p := filepath.Join(filepath.Dir(exe), usersFileName)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	if _, err := os.Stat(usersFileName); err == nil {
		return usersFileName
	}
	return ""
}

// loadUsersFile reads the users file. An entry that would fail the signup
// form rejects the whole file.
func loadUsersFile(path string) ([]client.SignupRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var f usersFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}

	v := forms.NewValidator()
	users := make([]client.SignupRequest, 0, len(f.Users))
	for _, u := range f.Users {
		if u.RiskAppetite == "" {
			u.RiskAppetite = string(models.RiskModerate)
		}
		form := forms.SignupForm{
			FirstName:       u.FirstName,
			LastName:        u.LastName,
			Email:           u.Email,
			Password:        u.Password,
			ConfirmPassword: u.Password,
			RiskAppetite:    u.RiskAppetite,
		}
		if errs := v.Validate(form); errs != nil {
			return nil, fmt.Errorf("user %q: %v", u.Email, map[string]string(errs))
		}
		users = append(users, u)
	}
	return users, nil
}

func seedWithRetry(ctx context.Context, s Signer, users []client.SignupRequest, logger *common.Logger) {
	var err error
	for attempt := 1; attempt <= seedRetryAttempts; attempt++ {
		err = seedAll(ctx, s, users, logger)
		if err == nil {
			logger.Info().Int("users", len(users)).Msg("seed: demo users registered")
			return
		}
		logger.Warn().
			Int("attempt", attempt).
			Int("max_attempts", seedRetryAttempts).
			Err(err).
			Msg("seed: failed to register demo users, retrying")
		if attempt < seedRetryAttempts {
			select {
			case <-ctx.Done():
				return
			case <-time.After(seedRetryDelay):
			}
		}
	}

	logger.Warn().
		Int("attempts", seedRetryAttempts).
		Err(err).
		Msg("seed: giving up on demo users")
}

// seedAll signs up each user, returning on the first transport or server
// error. Accounts the API reports as already registered are skipped.
func seedAll(ctx context.Context, s Signer, users []client.SignupRequest, logger *common.Logger) error {
	for _, u := range users {
		err := s.Signup(ctx, u)
		if alreadyRegistered(err) {
			logger.Debug().Str("email", u.Email).Msg("seed: user already registered")
			continue
		}
		if err != nil {
			return fmt.Errorf("signup %s: %w", u.Email, err)
		}
		logger.Debug().Str("email", u.Email).Msg("seed: registered user")
	}
	return nil
}

func alreadyRegistered(err error) bool {
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status == http.StatusBadRequest || apiErr.Status == http.StatusConflict
}
