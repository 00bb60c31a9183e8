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

// ActivityStorage implements the ActivityStorage interface for Badger
type ActivityStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewActivityStorage creates a new ActivityStorage instance
func NewActivityStorage(db *BadgerDB, logger arbor.ILogger) interfaces.ActivityStorage {
	return &ActivityStorage{
		db:     db,
		logger: logger,
	}
}

func (s *ActivityStorage) CreateActivity(ctx context.Context, activity *models.Activity) error {
	if activity.ID == "" {
		activity.ID = common.NewActivityID()
	}
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now()
	}

	if err := s.db.Store().Insert(activity.ID, activity); err != nil {
		return fmt.Errorf("failed to save activity: %w", err)
	}
	return nil
}

func (s *ActivityStorage) ListActivities(ctx context.Context, limit int) ([]*models.Activity, error) {
	if limit <= 0 {
		limit = 50
	}

	var activities []models.Activity
	q := badgerhold.Where("ID").Ne("").SortBy("CreatedAt").Reverse().Limit(limit)
	if err := s.db.Store().Find(&activities, q); err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	result := make([]*models.Activity, len(activities))
	for i := range activities {
		result[i] = &activities[i]
	}
	return result, nil
}
