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

// BookingHandler handles booking HTTP requests
type BookingHandler struct {
	bookings *services.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookings *services.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// SetupRoutes registers the booking routes on the given mux
func (h *BookingHandler) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/bookings", h.handleBookings)
	mux.HandleFunc("/bookings/", h.handleBookingSubtree)
}

// handleBookings handles the /bookings collection
func (h *BookingHandler) handleBookings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req models.CreateBookingRequest
	if err := utils.ParseJSONRequest(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	booking, err := h.bookings.CreateBooking(r.Context(), &req)
	if err != nil {
		utils.RespondWithError(w, errs.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, booking)
}

// handleBookingSubtree dispatches /bookings/{bookingId} and
// /bookings/user/{userId}
func (h *BookingHandler) handleBookingSubtree(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/bookings/"), "/")
	pathParts := strings.Split(path, "/")

	if len(pathParts) == 2 && pathParts[0] == "user" {
		h.handleBookingsForUser(w, r, pathParts[1])
		return
	}

	if len(pathParts) == 1 && pathParts[0] != "" {
		h.handleBookingByID(w, r, pathParts[0])
		return
	}

	utils.RespondWithError(w, http.StatusNotFound, "Resource not found")
}

// handleBookingByID handles /bookings/{bookingId}
func (h *BookingHandler) handleBookingByID(w http.ResponseWriter, r *http.Request, bookingID string) {
	switch r.Method {
	case http.MethodGet:
		booking, err := h.bookings.GetBooking(r.Context(), bookingID)
		if err != nil {
			utils.RespondWithError(w, errs.HTTPStatus(err), err.Error())
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, booking)
	case http.MethodPut:
		var req models.UpdateBookingRequest
		if err := utils.ParseJSONRequest(r, &req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
			return
		}

		booking, err := h.bookings.UpdateBooking(r.Context(), bookingID, &req)
		if err != nil {
			utils.RespondWithError(w, errs.HTTPStatus(err), err.Error())
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, booking)
	case http.MethodDelete:
		if err := h.bookings.DeleteBooking(r.Context(), bookingID); err != nil {
			utils.RespondWithError(w, errs.HTTPStatus(err), err.Error())
			return
		}
		utils.RespondWithJSON(w, http.StatusNoContent, nil)
	default:
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleBookingsForUser handles GET /bookings/user/{userId}
func (h *BookingHandler) handleBookingsForUser(w http.ResponseWriter, r *http.Request, rawUserID string) {
	if r.Method != http.MethodGet {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	userID, err := strconv.ParseUint(rawUserID, 10, 32)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	limit, offset := parsePaginationParams(r)
	bookings, err := h.bookings.ListBookingsForUser(r.Context(), uint(userID), limit, offset)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list bookings")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, bookings)
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
