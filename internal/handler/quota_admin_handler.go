package handler

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"

	"docuvault/internal/domain"
	"docuvault/internal/service"

	"github.com/gorilla/mux"
)

// QuotaAdminHandler exposes quota configuration endpoints protected by
// X-Admin-Secret. Intended for internal support tooling, not public exposure.
type QuotaAdminHandler struct {
	quotas *service.QuotaService
	logger domain.Logger
	secret string
}

func NewQuotaAdminHandler(quotas *service.QuotaService, logger domain.Logger, secret string) *QuotaAdminHandler {
	return &QuotaAdminHandler{
		quotas: quotas,
		logger: logger,
		secret: secret,
	}
}

func (h *QuotaAdminHandler) authorized(r *http.Request) bool {
	provided := r.Header.Get("X-Admin-Secret")
	if h.secret == "" || provided == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(provided), []byte(h.secret)) == 1
}

// ListBackends returns every registered backend with its field schema,
// for configuration form rendering.
func (h *QuotaAdminHandler) ListBackends(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"backends": h.quotas.DescribeBackends(),
	})
}

// ListConfigs returns the stored quota configurations with their
// human-readable limit summaries.
func (h *QuotaAdminHandler) ListConfigs(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	configs, err := h.quotas.ListConfigs(r.Context())
	if err != nil {
		h.logger.Error("Failed to list quota configurations", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"quotas": configs})
}

type createQuotaRequest struct {
	BackendID string          `json:"backend_id"`
	Arguments json.RawMessage `json:"arguments"`
}

// CreateConfig stores a new quota configuration, enabled.
func (h *QuotaAdminHandler) CreateConfig(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req createQuotaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.BackendID == "" {
		writeError(w, http.StatusBadRequest, "backend_id is required")
		return
	}

	config, err := h.quotas.CreateConfig(r.Context(), req.BackendID, req.Arguments)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownQuotaBackend) {
			writeError(w, http.StatusBadRequest, "Unknown quota backend")
			return
		}
		h.logger.Error("Failed to create quota configuration", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, config)
}

type setEnabledRequest struct {
	Enabled bool `json:"enabled"`
}

// SetConfigEnabled toggles a stored quota configuration.
func (h *QuotaAdminHandler) SetConfigEnabled(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	vars := mux.Vars(r)
	id := vars["id"]

	var req setEnabledRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.quotas.SetConfigEnabled(r.Context(), id, req.Enabled); err != nil {
		if errors.Is(err, domain.ErrQuotaConfigNotFound) {
			writeError(w, http.StatusNotFound, "Quota configuration not found")
			return
		}
		h.logger.Error("Failed to update quota configuration", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteConfig removes a stored quota configuration.
func (h *QuotaAdminHandler) DeleteConfig(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	vars := mux.Vars(r)
	if err := h.quotas.DeleteConfig(r.Context(), vars["id"]); err != nil {
		h.logger.Error("Failed to delete quota configuration", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
