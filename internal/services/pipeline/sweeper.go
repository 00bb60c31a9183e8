package pipeline

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"

	"github.com/responsahq/responsa/internal/common"
	"github.com/responsahq/responsa/internal/models"
)

// Sweeper periodically re-queues documents stuck in pending. Detached
// processing is best-effort and a restart loses in-flight goroutines; the
// sweep picks those documents up again once they are old enough.
type Sweeper struct {
	service    *Service
	cron       *cron.Cron
	pendingAge time.Duration
	logger     arbor.ILogger
}

// NewSweeper creates a new pending-document sweeper
func NewSweeper(service *Service, pendingAge time.Duration, logger arbor.ILogger) *Sweeper {
	if pendingAge <= 0 {
		pendingAge = 10 * time.Minute
	}
	return &Sweeper{
		service:    service,
		cron:       cron.New(cron.WithSeconds()),
		pendingAge: pendingAge,
		logger:     logger,
	}
}

// Start begins the scheduled sweep
func (s *Sweeper) Start(schedule string) error {
	if schedule == "" {
		schedule = "0 */5 * * * *"
	}

	_, err := s.cron.AddFunc(schedule, func() {
		s.runSweep()
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info().
		Str("schedule", schedule).
		Dur("pending_age", s.pendingAge).
		Msg("Pending-document sweeper started")

	return nil
}

// Stop stops the sweeper
func (s *Sweeper) Stop() {
	s.cron.Stop()
	s.logger.Info().Msg("Pending-document sweeper stopped")
}

// RunNow triggers an immediate sweep
func (s *Sweeper) RunNow() {
	common.SafeGo(s.logger, "sweepPending", func() {
		s.runSweep()
	})
}

func (s *Sweeper) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	docs, err := s.service.docStorage.ListDocumentsByStatus(ctx, models.DocumentStatusPending)
	if err != nil {
		s.logger.Error().Err(err).Msg("Sweep failed to list pending documents")
		return
	}

	cutoff := time.Now().Add(-s.pendingAge)
	requeued := 0
	for _, doc := range docs {
		if doc.CreatedAt.After(cutoff) {
			continue
		}
		docID := doc.ID
		userID := doc.UserID
		common.SafeGo(s.logger, "processDocument", func() {
			s.service.ProcessDocument(docID, userID)
		})
		requeued++
	}

	if requeued > 0 {
		s.logger.Info().
			Int("requeued", requeued).
			Int("pending", len(docs)).
			Msg("Sweep re-queued stale pending documents")
	}
}
