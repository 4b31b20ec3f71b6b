package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/wanyos2005/carserve-backend/provider-service/models"
	"github.com/wanyos2005/carserve-backend/provider-service/services"
	"github.com/wanyos2005/carserve-backend/shared/errs"
	"github.com/wanyos2005/carserve-backend/shared/utils"
)

// CatalogHandler handles category and service catalog HTTP requests
type CatalogHandler struct {
	categories *services.CategoryService
	catalog    *services.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(categories *services.CategoryService, catalog *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		categories: categories,
		catalog:    catalog,
	}
}

// SetupRoutes registers the catalog routes on the given mux
func (h *CatalogHandler) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/providers/categories/", h.handleCategories)
	mux.HandleFunc("/api/providers/services", h.handleServices)
	mux.HandleFunc("/api/providers/services/", h.handleServiceByID)
}

// handleCategories dispatches /api/providers/categories/{taxonomy}
func (h *CatalogHandler) handleCategories(w http.ResponseWriter, r *http.Request) {
	taxonomy := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/providers/categories/"), "/")

	switch taxonomy {
	case "provider-categories":
		h.handleProviderCategories(w, r)
	case "service-categories":
		h.handleServiceCategories(w, r)
	default:
		utils.RespondWithError(w, http.StatusNotFound, "Resource not found")
	}
}

func (h *CatalogHandler) handleProviderCategories(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req models.CreateCategoryRequest
		if err := utils.ParseJSONRequest(r, &req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "Category name is required")
			return
		}

		category, created, err := h.categories.CreateProviderCategory(r.Context(), req.Name)
		if err != nil {
			utils.RespondWithError(w, errs.HTTPStatus(err), err.Error())
			return
		}
		utils.RespondWithJSON(w, createdStatus(created), category)
	case http.MethodGet:
		list, err := h.categories.ListProviderCategories(r.Context())
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list provider categories")
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, list)
	default:
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *CatalogHandler) handleServiceCategories(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req models.CreateCategoryRequest
		if err := utils.ParseJSONRequest(r, &req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "Category name is required")
			return
		}

		category, created, err := h.categories.CreateServiceCategory(r.Context(), req.Name)
		if err != nil {
			utils.RespondWithError(w, errs.HTTPStatus(err), err.Error())
			return
		}
		utils.RespondWithJSON(w, createdStatus(created), category)
	case http.MethodGet:
		list, err := h.categories.ListServiceCategories(r.Context())
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list service categories")
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, list)
	default:
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleServices handles the /api/providers/services collection
func (h *CatalogHandler) handleServices(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req models.CreateServiceRequest
		if err := utils.ParseJSONRequest(r, &req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
			return
		}

		service, err := h.catalog.CreateService(r.Context(), &req)
		if err != nil {
			utils.RespondWithError(w, errs.HTTPStatus(err), err.Error())
			return
		}
		utils.RespondWithJSON(w, http.StatusCreated, service)
	case http.MethodGet:
		var categoryID *uint
		if raw := r.URL.Query().Get("category_id"); raw != "" {
			parsed, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				utils.RespondWithError(w, http.StatusBadRequest, "Invalid category_id")
				return
			}
			id := uint(parsed)
			categoryID = &id
		}
		limit, offset := parsePaginationParams(r)

		list, err := h.catalog.ListServices(r.Context(), categoryID, limit, offset)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list services")
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, list)
	default:
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleServiceByID handles /api/providers/services/{serviceId}
func (h *CatalogHandler) handleServiceByID(w http.ResponseWriter, r *http.Request) {
	serviceID := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/providers/services/"), "/")
	if serviceID == "" || strings.Contains(serviceID, "/") {
		utils.RespondWithError(w, http.StatusNotFound, "Resource not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		service, err := h.catalog.GetService(r.Context(), serviceID)
		if err != nil {
			utils.RespondWithError(w, errs.HTTPStatus(err), err.Error())
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, service)
	case http.MethodPut:
		var req models.UpdateServiceRequest
		if err := utils.ParseJSONRequest(r, &req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
			return
		}

		service, err := h.catalog.UpdateService(r.Context(), serviceID, &req)
		if err != nil {
			utils.RespondWithError(w, errs.HTTPStatus(err), err.Error())
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, service)
	case http.MethodDelete:
		if err := h.catalog.DeleteService(r.Context(), serviceID); err != nil {
			utils.RespondWithError(w, errs.HTTPStatus(err), err.Error())
			return
		}
		utils.RespondWithJSON(w, http.StatusNoContent, nil)
	default:
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// createdStatus maps the created flag from the idempotent category creates
// to the response status. An existing category is reported with 200.
func createdStatus(created bool) int {
	if created {
		return http.StatusCreated
	}
	return http.StatusOK
}

// parsePaginationParams extracts limit and offset query parameters
func parsePaginationParams(r *http.Request) (int, int) {
	limit := 50
	offset := 0

	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 200 {
			limit = parsed
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	return limit, offset
}
