package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/wanyos2005/carserve-backend/provider-service/models"
	"github.com/wanyos2005/carserve-backend/provider-service/services"
	"github.com/wanyos2005/carserve-backend/shared/errs"
	"github.com/wanyos2005/carserve-backend/shared/utils"
)

// ProviderHandler handles provider registry HTTP requests
type ProviderHandler struct {
	registry    *services.ProviderRegistry
	attachments *services.AttachmentService
	templates   *services.TemplateService
}

// NewProviderHandler creates a new provider handler
func NewProviderHandler(registry *services.ProviderRegistry, attachments *services.AttachmentService, templates *services.TemplateService) *ProviderHandler {
	return &ProviderHandler{
		registry:    registry,
		attachments: attachments,
		templates:   templates,
	}
}

// SetupRoutes registers the provider routes on the given mux. The catalog
// routes under /api/providers/categories and /api/providers/services are
// registered separately and take precedence on the mux.
func (h *ProviderHandler) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/providers", h.handleProviders)
	mux.HandleFunc("/api/providers/", h.handleProviderSubtree)
}

// handleProviders handles the /api/providers collection
func (h *ProviderHandler) handleProviders(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req models.CreateProviderRequest
		if err := utils.ParseJSONRequest(r, &req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
			return
		}

		provider, err := h.registry.CreateProvider(r.Context(), &req)
		if err != nil {
			utils.RespondWithError(w, errs.HTTPStatus(err), err.Error())
			return
		}
		utils.RespondWithJSON(w, http.StatusCreated, provider)
	case http.MethodGet:
		filter, err := parseProviderFilter(r)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		providers, err := h.registry.FindProviders(r.Context(), filter)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list providers")
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, providers)
	default:
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleProviderSubtree dispatches /api/providers/{providerId}/...
func (h *ProviderHandler) handleProviderSubtree(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/providers/"), "/")
	pathParts := strings.Split(path, "/")

	providerID := pathParts[0]
	// Catalog routes live on their own patterns; anything that lands here
	// under those names is a bad path, not a provider ID.
	if providerID == "" || providerID == "categories" || providerID == "services" {
		utils.RespondWithError(w, http.StatusNotFound, "Resource not found")
		return
	}

	if len(pathParts) == 1 {
		h.handleProviderByID(w, r, providerID)
		return
	}

	if len(pathParts) == 2 && pathParts[1] == "services" {
		h.handleProviderServices(w, r, providerID)
		return
	}

	if len(pathParts) == 2 && pathParts[1] == "templates" {
		h.handleProviderTemplates(w, r, providerID)
		return
	}

	utils.RespondWithError(w, http.StatusNotFound, "Resource not found")
}

// handleProviderByID handles /api/providers/{providerId}
func (h *ProviderHandler) handleProviderByID(w http.ResponseWriter, r *http.Request, providerID string) {
	switch r.Method {
	case http.MethodGet:
		provider, err := h.registry.GetProvider(r.Context(), providerID)
		if err != nil {
			utils.RespondWithError(w, errs.HTTPStatus(err), err.Error())
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, provider)
	case http.MethodPut:
		var req models.UpdateProviderRequest
		if err := utils.ParseJSONRequest(r, &req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
			return
		}

		provider, err := h.registry.UpdateProvider(r.Context(), providerID, &req)
		if err != nil {
			utils.RespondWithError(w, errs.HTTPStatus(err), err.Error())
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, provider)
	case http.MethodDelete:
		if err := h.registry.DeleteProvider(r.Context(), providerID); err != nil {
			utils.RespondWithError(w, errs.HTTPStatus(err), err.Error())
			return
		}
		utils.RespondWithJSON(w, http.StatusNoContent, nil)
	default:
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleProviderServices handles /api/providers/{providerId}/services.
// POST accepts either a single attachment object or an array for batch
// attach. Batch items are processed independently.
func (h *ProviderHandler) handleProviderServices(w http.ResponseWriter, r *http.Request, providerID string) {
	switch r.Method {
	case http.MethodGet:
		if _, err := h.registry.GetProvider(r.Context(), providerID); err != nil {
			utils.RespondWithError(w, errs.HTTPStatus(err), err.Error())
			return
		}

		attachments, err := h.attachments.ListForProvider(r.Context(), providerID)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list provider services")
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, attachments)
	case http.MethodPost:
		body, err := io.ReadAll(r.Body)
		r.Body.Close()
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Failed to read request body")
			return
		}

		if _, err := h.registry.GetProvider(r.Context(), providerID); err != nil {
			utils.RespondWithError(w, errs.HTTPStatus(err), err.Error())
			return
		}

		if isJSONArray(body) {
			var reqs []models.AttachServiceRequest
			if err := json.Unmarshal(body, &reqs); err != nil {
				utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
				return
			}
			if len(reqs) == 0 {
				utils.RespondWithError(w, http.StatusBadRequest, "At least one service attachment is required")
				return
			}

			results := h.attachments.AttachBatch(r.Context(), providerID, reqs)
			utils.RespondWithJSON(w, http.StatusOK, results)
			return
		}

		var req models.AttachServiceRequest
		if err := json.Unmarshal(body, &req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
			return
		}

		attachment, created, err := h.attachments.AttachOrUpdate(r.Context(), providerID, &req)
		if err != nil {
			utils.RespondWithError(w, errs.HTTPStatus(err), err.Error())
			return
		}
		utils.RespondWithJSON(w, createdStatus(created), attachment)
	default:
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleProviderTemplates handles /api/providers/{providerId}/templates
func (h *ProviderHandler) handleProviderTemplates(w http.ResponseWriter, r *http.Request, providerID string) {
	switch r.Method {
	case http.MethodPost:
		var req models.CreateTemplateRequest
		if err := utils.ParseJSONRequest(r, &req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
			return
		}

		template, err := h.templates.CreateTemplate(r.Context(), providerID, &req)
		if err != nil {
			utils.RespondWithError(w, errs.HTTPStatus(err), err.Error())
			return
		}
		utils.RespondWithJSON(w, http.StatusCreated, template)
	case http.MethodGet:
		templates, err := h.templates.ListForProvider(r.Context(), providerID)
		if err != nil {
			utils.RespondWithError(w, errs.HTTPStatus(err), err.Error())
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, templates)
	default:
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// parseProviderFilter builds the provider query filter from query params.
// service_ids may be repeated or comma separated.
func parseProviderFilter(r *http.Request) (*models.ProviderFilter, error) {
	filter := &models.ProviderFilter{}
	query := r.URL.Query()

	if raw := query.Get("category_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid category_id", errs.ErrValidation)
		}
		id := uint(parsed)
		filter.CategoryID = &id
	}

	for _, raw := range query["service_ids"] {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				filter.ServiceIDs = append(filter.ServiceIDs, id)
			}
		}
	}

	if raw := query.Get("match_all"); raw != "" {
		matchAll, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid match_all", errs.ErrValidation)
		}
		filter.MatchAll = matchAll
	}

	filter.Limit, filter.Offset = parsePaginationParams(r)
	return filter, nil
}

// isJSONArray reports whether the body starts with a JSON array
func isJSONArray(body []byte) bool {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}
