package badger

import (
	"github.com/ternarybob/arbor"

	"github.com/responsahq/responsa/internal/common"
	"github.com/responsahq/responsa/internal/interfaces"
)

// Manager implements the StorageManager interface for Badger
type Manager struct {
	db          *BadgerDB
	document    interfaces.DocumentStorage
	policy      interfaces.PolicyStorage
	searchQuery interfaces.SearchQueryStorage
	activity    interfaces.ActivityStorage
	logger      arbor.ILogger
}

// NewManager creates a new Badger storage manager
func NewManager(logger arbor.ILogger, config *common.BadgerConfig) (interfaces.StorageManager, error) {
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		db:          db,
		document:    NewDocumentStorage(db, logger),
		policy:      NewPolicyStorage(db, logger),
		searchQuery: NewSearchQueryStorage(db, logger),
		activity:    NewActivityStorage(db, logger),
		logger:      logger,
	}

	logger.Info().Msg("Badger storage manager initialized")

	return manager, nil
}

// DocumentStorage returns the Document storage interface
func (m *Manager) DocumentStorage() interfaces.DocumentStorage {
	return m.document
}

// PolicyStorage returns the Policy storage interface
func (m *Manager) PolicyStorage() interfaces.PolicyStorage {
	return m.policy
}

// SearchQueryStorage returns the SearchQuery storage interface
func (m *Manager) SearchQueryStorage() interfaces.SearchQueryStorage {
	return m.searchQuery
}

// ActivityStorage returns the Activity storage interface
func (m *Manager) ActivityStorage() interfaces.ActivityStorage {
	return m.activity
}

// Close closes the database connection
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
