package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/wanyos2005/carserve-backend/shared/errs"
	"github.com/wanyos2005/carserve-backend/shared/middleware"
	"github.com/wanyos2005/carserve-backend/shared/utils"
	"github.com/wanyos2005/carserve-backend/vehicle-service/models"
	"github.com/wanyos2005/carserve-backend/vehicle-service/services"
)

// VehicleHandler handles vehicle HTTP requests
type VehicleHandler struct {
	vehicles *services.VehicleService
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(vehicles *services.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles}
}

// SetupRoutes registers the vehicle routes. The guest endpoint is served
// without authentication; everything else requires a bearer token.
func (h *VehicleHandler) SetupRoutes(mux *http.ServeMux, authMW *middleware.JWTAuthMiddleware) {
	mux.HandleFunc("/vehicles/guest", h.CreateGuestVehicle)
	mux.Handle("/vehicles", authMW.Authenticate(http.HandlerFunc(h.handleVehicles)))
	mux.Handle("/vehicles/", authMW.Authenticate(http.HandlerFunc(h.handleVehicleByID)))
}

// handleVehicles handles the /vehicles collection
func (h *VehicleHandler) handleVehicles(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Missing authentication")
		return
	}

	switch r.Method {
	case http.MethodPost:
		var req models.CreateVehicleRequest
		if err := utils.ParseJSONRequest(r, &req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
			return
		}

		vehicle, err := h.vehicles.CreateVehicle(r.Context(), ownerID, &req)
		if err != nil {
			utils.RespondWithError(w, errs.HTTPStatus(err), err.Error())
			return
		}
		utils.RespondWithJSON(w, http.StatusCreated, vehicle)
	case http.MethodGet:
		filter := &models.VehicleFilter{Plate: r.URL.Query().Get("plate")}
		if raw := r.URL.Query().Get("skip"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil {
				filter.Skip = parsed
			}
		}
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil {
				filter.Limit = parsed
			}
		}

		vehicles, err := h.vehicles.ListVehicles(r.Context(), ownerID, filter)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list vehicles")
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, vehicles)
	default:
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleVehicleByID handles /vehicles/{vehicleId}
func (h *VehicleHandler) handleVehicleByID(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Missing authentication")
		return
	}

	vehicleID := strings.Trim(strings.TrimPrefix(r.URL.Path, "/vehicles/"), "/")
	if vehicleID == "" || strings.Contains(vehicleID, "/") {
		utils.RespondWithError(w, http.StatusNotFound, "Resource not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		vehicle, err := h.vehicles.GetVehicle(r.Context(), ownerID, vehicleID)
		if err != nil {
			utils.RespondWithError(w, errs.HTTPStatus(err), err.Error())
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, vehicle)
	case http.MethodPut:
		var req models.UpdateVehicleRequest
		if err := utils.ParseJSONRequest(r, &req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
			return
		}

		vehicle, err := h.vehicles.UpdateVehicle(r.Context(), ownerID, vehicleID, &req)
		if err != nil {
			utils.RespondWithError(w, errs.HTTPStatus(err), err.Error())
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, vehicle)
	case http.MethodDelete:
		if err := h.vehicles.DeleteVehicle(r.Context(), ownerID, vehicleID); err != nil {
			utils.RespondWithError(w, errs.HTTPStatus(err), err.Error())
			return
		}
		utils.RespondWithJSON(w, http.StatusNoContent, nil)
	default:
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// CreateGuestVehicle handles POST /vehicles/guest
func (h *VehicleHandler) CreateGuestVehicle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req models.CreateVehicleRequest
	if err := utils.ParseJSONRequest(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	vehicle, err := h.vehicles.CreateGuestVehicle(r.Context(), &req)
	if err != nil {
		utils.RespondWithError(w, errs.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, vehicle)
}
