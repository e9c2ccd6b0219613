package models

import "time"

// Session is a logged-in browser session. The API token never leaves the portal.
type Session struct {
	ID        string    `json:"id" badgerhold:"key"`
	Token     string    `json:"token"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at" badgerholdIndex:"ExpiresAt"`
}

// IsExpired reports whether the session has ended at now. A session
// expires at ExpiresAt itself.
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
