package pipeline

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/responsahq/responsa/internal/models"
)

func TestSweeper_RequeuesStalePendingDocuments(t *testing.T) {
	invoker := &fakeInvoker{response: analysisResponse}
	svc, docs, _ := newTestService(t, invoker)

	path := filepath.Join(t.TempDir(), "stale.txt")
	writeFile(t, path, "stale policy content")

	stale := &models.Document{
		ID:          "doc_stale",
		Title:       "Stale",
		StoragePath: path,
		Format:      models.FormatTXT,
		Status:      models.DocumentStatusPending,
		CreatedAt:   time.Now().Add(-time.Hour),
	}
	require.NoError(t, docs.CreateDocument(context.Background(), stale))

	fresh := &models.Document{
		ID:        "doc_fresh",
		Title:     "Fresh",
		Status:    models.DocumentStatusPending,
		CreatedAt: time.Now(),
	}
	require.NoError(t, docs.CreateDocument(context.Background(), fresh))

	sweeper := NewSweeper(svc, 10*time.Minute, svc.logger)
	sweeper.runSweep()

	final := waitForTerminal(t, docs, "doc_stale")
	assert.Equal(t, models.DocumentStatusProcessed, final.Status)

	// Young pending documents are left for their own detached goroutine
	untouched, err := docs.GetDocument(context.Background(), "doc_fresh")
	require.NoError(t, err)
	assert.Equal(t, models.DocumentStatusPending, untouched.Status)
}

func TestSweeper_DefaultPendingAge(t *testing.T) {
	svc, _, _ := newTestService(t, &fakeInvoker{})

	sweeper := NewSweeper(svc, 0, svc.logger)
	assert.Equal(t, 10*time.Minute, sweeper.pendingAge)
}
