package handlers

import (
	"net/http"
	"strconv"

	"github.com/ternarybob/arbor"

	"github.com/responsahq/responsa/internal/interfaces"
)

type ActivityHandler struct {
	activityStorage    interfaces.ActivityStorage
	searchQueryStorage interfaces.SearchQueryStorage
	logger             arbor.ILogger
}

func NewActivityHandler(activityStorage interfaces.ActivityStorage, searchQueryStorage interfaces.SearchQueryStorage, logger arbor.ILogger) *ActivityHandler {
	return &ActivityHandler{
		activityStorage:    activityStorage,
		searchQueryStorage: searchQueryStorage,
		logger:             logger,
	}
}

// ActivitiesHandler returns recent audit activity records
func (h *ActivityHandler) ActivitiesHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	activities, err := h.activityStorage.ListActivities(r.Context(), limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list activities")
		WriteError(w, http.StatusInternalServerError, "Failed to list activities")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"activities": activities,
	})
}

// SearchQueriesHandler returns recent persisted search queries with their
// outcomes
func (h *ActivityHandler) SearchQueriesHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	queries, err := h.searchQueryStorage.ListSearchQueries(r.Context(), limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list search queries")
		WriteError(w, http.StatusInternalServerError, "Failed to list search queries")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"queries": queries,
	})
}
