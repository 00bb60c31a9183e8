package handlers

import (
	"net/http"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/responsahq/responsa/internal/common"
	"github.com/responsahq/responsa/internal/interfaces"
)

type StatusHandler struct {
	documentStorage interfaces.DocumentStorage
	policyStorage   interfaces.PolicyStorage
	logger          arbor.ILogger
	startedAt       time.Time
}

func NewStatusHandler(documentStorage interfaces.DocumentStorage, policyStorage interfaces.PolicyStorage, logger arbor.ILogger) *StatusHandler {
	return &StatusHandler{
		documentStorage: documentStorage,
		policyStorage:   policyStorage,
		logger:          logger,
		startedAt:       time.Now(),
	}
}

// GetStatusHandler returns application status and corpus counts
func (h *StatusHandler) GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	ctx := r.Context()
	docCount, err := h.documentStorage.CountDocuments(ctx)
	if err != nil {
		h.logger.Warn().Err(err).Msg("Failed to count documents for status")
	}
	policyCount, err := h.policyStorage.CountPolicies(ctx)
	if err != nil {
		h.logger.Warn().Err(err).Msg("Failed to count policies for status")
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"version":   common.GetVersion(),
		"uptime":    time.Since(h.startedAt).String(),
		"documents": docCount,
		"policies":  policyCount,
	})
}
