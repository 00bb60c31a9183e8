package interfaces

import (
	"context"

	"github.com/responsahq/responsa/internal/models"
)

// DocumentStorage - interface for uploaded document persistence.
// The pipeline is the only writer after upload; reads are shared.
type DocumentStorage interface {
	CreateDocument(ctx context.Context, doc *models.Document) error
	GetDocument(ctx context.Context, id string) (*models.Document, error)
	UpdateDocument(ctx context.Context, id string, patch *models.DocumentPatch) error
	ListDocuments(ctx context.Context, limit, offset int) ([]*models.Document, error)
	ListDocumentsByStatus(ctx context.Context, status models.DocumentStatus) ([]*models.Document, error)
	CountDocuments(ctx context.Context) (int, error)
}

// PolicyStorage - interface for policy records. The search orchestrator
// treats policies as read-only input.
type PolicyStorage interface {
	CreatePolicy(ctx context.Context, policy *models.Policy) error
	GetPolicy(ctx context.Context, id int) (*models.Policy, error)
	GetPolicies(ctx context.Context) ([]*models.Policy, error)
	CountPolicies(ctx context.Context) (int, error)
}

// SearchQueryStorage - interface for persisted search queries
type SearchQueryStorage interface {
	CreateSearchQuery(ctx context.Context, query *models.SearchQuery) error
	ListSearchQueries(ctx context.Context, limit int) ([]*models.SearchQuery, error)
}

// ActivityStorage - interface for audit activity records
type ActivityStorage interface {
	CreateActivity(ctx context.Context, activity *models.Activity) error
	ListActivities(ctx context.Context, limit int) ([]*models.Activity, error)
}

// StorageManager provides access to all storage interfaces
type StorageManager interface {
	DocumentStorage() DocumentStorage
	PolicyStorage() PolicyStorage
	SearchQueryStorage() SearchQueryStorage
	ActivityStorage() ActivityStorage
	Close() error
}
