package badger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/responsahq/responsa/internal/interfaces"
	"github.com/responsahq/responsa/internal/models"
)

// PolicyStorage implements the PolicyStorage interface for Badger
type PolicyStorage struct {
	db     *BadgerDB
	logger arbor.ILogger

	// Guards ID assignment; badgerhold sequences only support uint64 keys
	// and policy IDs are plain ints on the wire.
	mu     sync.Mutex
	nextID int
}

// NewPolicyStorage creates a new PolicyStorage instance
func NewPolicyStorage(db *BadgerDB, logger arbor.ILogger) interfaces.PolicyStorage {
	return &PolicyStorage{
		db:     db,
		logger: logger,
	}
}

func (s *PolicyStorage) CreatePolicy(ctx context.Context, policy *models.Policy) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if policy.ID == 0 {
		id, err := s.allocateID()
		if err != nil {
			return err
		}
		policy.ID = id
	}

	now := time.Now()
	if policy.CreatedAt.IsZero() {
		policy.CreatedAt = now
	}
	policy.UpdatedAt = now

	if err := s.db.Store().Upsert(policy.ID, policy); err != nil {
		return fmt.Errorf("failed to save policy: %w", err)
	}
	return nil
}

func (s *PolicyStorage) GetPolicy(ctx context.Context, id int) (*models.Policy, error) {
	var policy models.Policy
	if err := s.db.Store().Get(id, &policy); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("policy not found: %d", id)
		}
		return nil, fmt.Errorf("failed to get policy: %w", err)
	}
	return &policy, nil
}

func (s *PolicyStorage) GetPolicies(ctx context.Context) ([]*models.Policy, error) {
	var policies []models.Policy
	if err := s.db.Store().Find(&policies, badgerhold.Where("ID").Gt(0).SortBy("ID")); err != nil {
		return nil, fmt.Errorf("failed to list policies: %w", err)
	}

	result := make([]*models.Policy, len(policies))
	for i := range policies {
		result[i] = &policies[i]
	}
	return result, nil
}

func (s *PolicyStorage) CountPolicies(ctx context.Context) (int, error) {
	count, err := s.db.Store().Count(&models.Policy{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count policies: %w", err)
	}
	return int(count), nil
}

// allocateID returns the next free policy ID, scanning existing records on
// first use. Callers hold s.mu.
func (s *PolicyStorage) allocateID() (int, error) {
	if s.nextID == 0 {
		var policies []models.Policy
		if err := s.db.Store().Find(&policies, nil); err != nil {
			return 0, fmt.Errorf("failed to scan policies for ID allocation: %w", err)
		}
		maxID := 0
		for i := range policies {
			if policies[i].ID > maxID {
				maxID = policies[i].ID
			}
		}
		s.nextID = maxID + 1
	}

	id := s.nextID
	s.nextID++
	return id, nil
}
