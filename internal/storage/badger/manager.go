package badger

import (
	"github.com/bobmcallan/investx-portal/internal/common"
	"github.com/bobmcallan/investx-portal/internal/config"
	"github.com/bobmcallan/investx-portal/internal/interfaces"
)

// Manager implements interfaces.StorageManager for Badger.
type Manager struct {
	db       *BadgerDB
	sessions interfaces.SessionStorage
	logger   *common.Logger
}

// NewManager opens the database and builds the storage interfaces on it.
func NewManager(logger *common.Logger, cfg *config.BadgerConfig) (*Manager, error) {
	db, err := NewBadgerDB(logger, cfg)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("path", cfg.Path).Msg("Badger storage initialized")

	return &Manager{
		db:       db,
		sessions: NewSessionStorage(db, logger),
		logger:   logger,
	}, nil
}

// SessionStorage returns the session store.
func (m *Manager) SessionStorage() interfaces.SessionStorage {
	return m.sessions
}

// Close closes the database connection.
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
