package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/wanyos2005/carserve-backend/insurance-service/models"
	"github.com/wanyos2005/carserve-backend/insurance-service/services"
	"github.com/wanyos2005/carserve-backend/shared/errs"
	"github.com/wanyos2005/carserve-backend/shared/utils"
)

// InsuranceHandler handles HTTP requests for insurance policies
type InsuranceHandler struct {
	policies *services.InsuranceService
}

// NewInsuranceHandler creates a new InsuranceHandler
func NewInsuranceHandler(policies *services.InsuranceService) *InsuranceHandler {
	return &InsuranceHandler{policies: policies}
}

// SetupRoutes registers the insurance routes on the mux
func (h *InsuranceHandler) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/insurance/create-insurance-policy", h.CreatePolicy)
	mux.HandleFunc("/insurance/get-insurance-policies", h.ListPolicies)
	mux.HandleFunc("/insurance/get-insurance-policy-by-owner/", h.ListPoliciesByOwner)
}

// CreatePolicy handles POST /insurance/create-insurance-policy
func (h *InsuranceHandler) CreatePolicy(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	var req models.CreateInsurancePolicyRequest
	if err := utils.ParseJSONRequest(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	policy, err := h.policies.CreatePolicy(r.Context(), &req)
	if err != nil {
		slog.Error("Failed to create insurance policy", "error", err)
		utils.RespondWithError(w, errs.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, policy)
}

// ListPolicies handles GET /insurance/get-insurance-policies
func (h *InsuranceHandler) ListPolicies(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	limit, offset := parsePaginationParams(r)
	policies, err := h.policies.ListPolicies(r.Context(), limit, offset)
	if err != nil {
		slog.Error("Failed to list insurance policies", "error", err)
		utils.RespondWithError(w, errs.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, policies)
}

// ListPoliciesByOwner handles GET /insurance/get-insurance-policy-by-owner/{ownerId}
func (h *InsuranceHandler) ListPoliciesByOwner(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	idPart := strings.Trim(strings.TrimPrefix(r.URL.Path, "/insurance/get-insurance-policy-by-owner/"), "/")
	ownerID, err := strconv.ParseUint(idPart, 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid owner id")
		return
	}
	limit, offset := parsePaginationParams(r)
	policies, err := h.policies.ListPoliciesForOwner(r.Context(), uint(ownerID), limit, offset)
	if err != nil {
		slog.Error("Failed to list insurance policies for owner", "error", err, "ownerId", ownerID)
		utils.RespondWithError(w, errs.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, policies)
}

func parsePaginationParams(r *http.Request) (limit, offset int) {
	limit = 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if v := r.URL.Query().Get("skip"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			offset = parsed
		}
	}
	return limit, offset
}
