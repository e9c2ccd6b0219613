package interfaces

import (
	"context"
	"errors"
	"time"

	"github.com/bobmcallan/investx-portal/internal/models"
)

// ErrNotFound is returned when a stored record does not exist.
var ErrNotFound = errors.New("not found")

// StorageManager provides access to the portal's storage interfaces.
// Implementations can be swapped (BadgerDB now, a shared store later).
type StorageManager interface {
	SessionStorage() SessionStorage
	Close() error
}

// SessionStorage persists browser sessions.
type SessionStorage interface {
	Get(ctx context.Context, id string) (*models.Session, error)
	Save(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, id string) error
	// PurgeExpired removes sessions that expired before now and reports how many.
	PurgeExpired(ctx context.Context, now time.Time) (int, error)
}
