package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/wanyos2005/carserve-backend/booking-service/models"
	"github.com/wanyos2005/carserve-backend/booking-service/services"
	"github.com/wanyos2005/carserve-backend/shared/errs"
	"github.com/wanyos2005/carserve-backend/shared/utils"
)

// ServiceLogHandler handles service log HTTP requests
type ServiceLogHandler struct {
	logs *services.ServiceLogService
}

// NewServiceLogHandler creates a new service log handler
func NewServiceLogHandler(logs *services.ServiceLogService) *ServiceLogHandler {
	return &ServiceLogHandler{logs: logs}
}

// SetupRoutes registers the service log routes on the given mux
func (h *ServiceLogHandler) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/service-logs", h.CreateLog)
	mux.HandleFunc("/service-logs/", h.handleSubtree)
}

// CreateLog handles POST /service-logs
func (h *ServiceLogHandler) CreateLog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req models.CreateServiceLogRequest
	if err := utils.ParseJSONRequest(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	log, err := h.logs.CreateLog(r.Context(), &req)
	if err != nil {
		utils.RespondWithError(w, errs.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, log)
}

// handleSubtree dispatches /service-logs/{bulk|user|provider|vehicle}/...
func (h *ServiceLogHandler) handleSubtree(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/service-logs/"), "/")
	pathParts := strings.Split(path, "/")

	if len(pathParts) == 1 && pathParts[0] == "bulk" {
		h.CreateBulkLogs(w, r)
		return
	}

	if len(pathParts) == 2 {
		switch pathParts[0] {
		case "user":
			h.listForUser(w, r, pathParts[1])
			return
		case "provider":
			h.listLogs(w, r, func() ([]models.ServiceLog, error) {
				return h.logs.ListLogsForProvider(r.Context(), pathParts[1])
			})
			return
		case "vehicle":
			h.listLogs(w, r, func() ([]models.ServiceLog, error) {
				return h.logs.ListLogsForVehicle(r.Context(), pathParts[1])
			})
			return
		}
	}

	utils.RespondWithError(w, http.StatusNotFound, "Resource not found")
}

// CreateBulkLogs handles POST /service-logs/bulk
func (h *ServiceLogHandler) CreateBulkLogs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var reqs []models.CreateServiceLogRequest
	if err := utils.ParseJSONRequest(r, &reqs); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	logs, err := h.logs.CreateBulkLogs(r.Context(), reqs)
	if err != nil {
		utils.RespondWithError(w, errs.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, logs)
}

func (h *ServiceLogHandler) listForUser(w http.ResponseWriter, r *http.Request, rawUserID string) {
	if r.Method != http.MethodGet {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	userID, err := strconv.ParseUint(rawUserID, 10, 32)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	h.listLogs(w, r, func() ([]models.ServiceLog, error) {
		return h.logs.ListLogsForUser(r.Context(), uint(userID))
	})
}

func (h *ServiceLogHandler) listLogs(w http.ResponseWriter, r *http.Request, fetch func() ([]models.ServiceLog, error)) {
	if r.Method != http.MethodGet {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	logs, err := fetch()
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list service logs")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, logs)
}
