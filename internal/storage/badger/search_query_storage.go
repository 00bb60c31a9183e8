package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/responsahq/responsa/internal/common"
	"github.com/responsahq/responsa/internal/interfaces"
	"github.com/responsahq/responsa/internal/models"
)

// SearchQueryStorage implements the SearchQueryStorage interface for Badger
type SearchQueryStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewSearchQueryStorage creates a new SearchQueryStorage instance
func NewSearchQueryStorage(db *BadgerDB, logger arbor.ILogger) interfaces.SearchQueryStorage {
	return &SearchQueryStorage{
		db:     db,
		logger: logger,
	}
}

func (s *SearchQueryStorage) CreateSearchQuery(ctx context.Context, query *models.SearchQuery) error {
	if query.ID == "" {
		query.ID = common.NewSearchQueryID()
	}
	if query.CreatedAt.IsZero() {
		query.CreatedAt = time.Now()
	}

	if err := s.db.Store().Insert(query.ID, query); err != nil {
		return fmt.Errorf("failed to save search query: %w", err)
	}
	return nil
}

func (s *SearchQueryStorage) ListSearchQueries(ctx context.Context, limit int) ([]*models.SearchQuery, error) {
	if limit <= 0 {
		limit = 50
	}

	var queries []models.SearchQuery
	q := badgerhold.Where("ID").Ne("").SortBy("CreatedAt").Reverse().Limit(limit)
	if err := s.db.Store().Find(&queries, q); err != nil {
		return nil, fmt.Errorf("failed to list search queries: %w", err)
	}

	result := make([]*models.SearchQuery, len(queries))
	for i := range queries {
		result[i] = &queries[i]
	}
	return result, nil
}
