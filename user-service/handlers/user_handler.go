package handlers

import (
	"net/http"

	"github.com/wanyos2005/carserve-backend/shared/errs"
	"github.com/wanyos2005/carserve-backend/shared/middleware"
	"github.com/wanyos2005/carserve-backend/shared/utils"
	"github.com/wanyos2005/carserve-backend/user-service/models"
	"github.com/wanyos2005/carserve-backend/user-service/services"
)

// UserHandler handles user and authentication HTTP requests
type UserHandler struct {
	auth *services.AuthService
}

// NewUserHandler creates a new user handler
func NewUserHandler(auth *services.AuthService) *UserHandler {
	return &UserHandler{auth: auth}
}

// SetupRoutes registers the user routes on the given mux. Only /users/me
// requires a bearer token.
func (h *UserHandler) SetupRoutes(mux *http.ServeMux, authMW *middleware.JWTAuthMiddleware) {
	mux.HandleFunc("/users/send-code", h.SendCode)
	mux.HandleFunc("/users/verify-code", h.VerifyCode)
	mux.Handle("/users/me", authMW.Authenticate(http.HandlerFunc(h.Me)))
	mux.HandleFunc("/users/all", h.GetAllUsers)
	mux.HandleFunc("/users/link-user-provider", h.LinkUserProvider)
	mux.HandleFunc("/users/guest", h.CreateGuest)
}

// SendCode handles POST /users/send-code
func (h *UserHandler) SendCode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req models.SendCodeRequest
	if err := utils.ParseJSONRequest(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if err := h.auth.SendCode(r.Context(), req.Email); err != nil {
		utils.RespondWithError(w, errs.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, models.MessageResponse{Message: "OTP sent to email"})
}

// VerifyCode handles POST /users/verify-code
func (h *UserHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req models.VerifyCodeRequest
	if err := utils.ParseJSONRequest(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	token, err := h.auth.VerifyCode(r.Context(), &req)
	if err != nil {
		utils.RespondWithError(w, errs.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, token)
}

// Me handles GET /users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Missing authentication")
		return
	}

	profile, err := h.auth.GetProfile(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, errs.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, profile)
}

// GetAllUsers handles GET /users/all
func (h *UserHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	profiles, err := h.auth.ListUsers(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list users")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, profiles)
}

// LinkUserProvider handles POST /users/link-user-provider
func (h *UserHandler) LinkUserProvider(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req models.LinkUserProviderRequest
	if err := utils.ParseJSONRequest(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if err := h.auth.LinkUserToProvider(r.Context(), &req); err != nil {
		utils.RespondWithError(w, errs.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, models.MessageResponse{Message: "User linked to provider successfully"})
}

// CreateGuest handles POST /users/guest
func (h *UserHandler) CreateGuest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req models.GuestUserRequest
	if err := utils.ParseJSONRequest(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	user, err := h.auth.CreateOrGetGuest(r.Context(), &req)
	if err != nil {
		utils.RespondWithError(w, errs.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, user)
}
