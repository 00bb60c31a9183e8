package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/responsahq/responsa/internal/interfaces"
	"github.com/responsahq/responsa/internal/models"
)

type PolicyHandler struct {
	policyStorage interfaces.PolicyStorage
	logger        arbor.ILogger
}

func NewPolicyHandler(policyStorage interfaces.PolicyStorage, logger arbor.ILogger) *PolicyHandler {
	return &PolicyHandler{
		policyStorage: policyStorage,
		logger:        logger,
	}
}

// ListHandler returns all policies. CreateHandler and ListHandler share the
// /api/policies route, dispatched by method.
func (h *PolicyHandler) PoliciesHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *PolicyHandler) list(w http.ResponseWriter, r *http.Request) {
	policies, err := h.policyStorage.GetPolicies(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list policies")
		WriteError(w, http.StatusInternalServerError, "Failed to list policies")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"policies": policies,
	})
}

func (h *PolicyHandler) create(w http.ResponseWriter, r *http.Request) {
	var policy models.Policy
	if err := json.NewDecoder(r.Body).Decode(&policy); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(policy.Title) == "" || strings.TrimSpace(policy.Content) == "" {
		WriteError(w, http.StatusBadRequest, "Title and content are required")
		return
	}

	if err := h.policyStorage.CreatePolicy(r.Context(), &policy); err != nil {
		h.logger.Error().Err(err).Msg("Failed to create policy")
		WriteError(w, http.StatusInternalServerError, "Failed to create policy")
		return
	}

	WriteJSON(w, http.StatusCreated, policy)
}
