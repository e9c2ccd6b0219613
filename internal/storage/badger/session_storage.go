package badger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bobmcallan/investx-portal/internal/common"
	"github.com/bobmcallan/investx-portal/internal/interfaces"
	"github.com/bobmcallan/investx-portal/internal/models"
)

// SessionStorage implements interfaces.SessionStorage using BadgerDB.
type SessionStorage struct {
	db     *BadgerDB
	logger *common.Logger
}

// NewSessionStorage creates session storage backed by db.
func NewSessionStorage(db *BadgerDB, logger *common.Logger) *SessionStorage {
	return &SessionStorage{db: db, logger: logger}
}

// Get returns the session with id, or interfaces.ErrNotFound.
func (s *SessionStorage) Get(_ context.Context, id string) (*models.Session, error) {
	var session models.Session
	if err := s.db.Store().Get(id, &session); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &session, nil
}

// Save inserts or replaces a session.
func (s *SessionStorage) Save(_ context.Context, session *models.Session) error {
	if session.ID == "" {
		return errors.New("session id is required")
	}
	if err := s.db.Store().Upsert(session.ID, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Delete removes a session. Deleting a missing session is not an error.
func (s *SessionStorage) Delete(_ context.Context, id string) error {
	err := s.db.Store().Delete(id, models.Session{})
	if err != nil && !errors.Is(err, badgerhold.ErrNotFound) {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// PurgeExpired removes sessions whose expiry is at or before now.
func (s *SessionStorage) PurgeExpired(_ context.Context, now time.Time) (int, error) {
	query := badgerhold.Where("ExpiresAt").Le(now).Index("ExpiresAt")

	var expired []models.Session
	if err := s.db.Store().Find(&expired, query); err != nil {
		return 0, fmt.Errorf("failed to find expired sessions: %w", err)
	}
	if len(expired) == 0 {
		return 0, nil
	}
	if err := s.db.Store().DeleteMatching(&models.Session{}, query); err != nil {
		return 0, fmt.Errorf("failed to purge expired sessions: %w", err)
	}

	s.logger.Debug().Int("count", len(expired)).Msg("Purged expired sessions")
	return len(expired), nil
}
