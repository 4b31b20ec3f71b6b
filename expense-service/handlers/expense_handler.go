package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/wanyos2005/carserve-backend/expense-service/models"
	"github.com/wanyos2005/carserve-backend/expense-service/services"
	"github.com/wanyos2005/carserve-backend/shared/errs"
	"github.com/wanyos2005/carserve-backend/shared/utils"
)

// ExpenseHandler handles HTTP requests for expenses
type ExpenseHandler struct {
	expenses *services.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenses *services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

// SetupRoutes registers the expense routes on the mux
func (h *ExpenseHandler) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/expenses/create-expense", h.CreateExpense)
	mux.HandleFunc("/expenses/get-expenses", h.ListExpenses)
	mux.HandleFunc("/expenses/get-expenses-by-owner/", h.ListExpensesByOwner)
}

// CreateExpense handles POST /expenses/create-expense
func (h *ExpenseHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	var req models.CreateExpenseRequest
	if err := utils.ParseJSONRequest(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	expense, err := h.expenses.CreateExpense(r.Context(), &req)
	if err != nil {
		slog.Error("Failed to create expense", "error", err)
		utils.RespondWithError(w, errs.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, expense)
}

// ListExpenses handles GET /expenses/get-expenses
func (h *ExpenseHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	limit, offset := parsePaginationParams(r)
	expenses, err := h.expenses.ListExpenses(r.Context(), limit, offset)
	if err != nil {
		slog.Error("Failed to list expenses", "error", err)
		utils.RespondWithError(w, errs.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, expenses)
}

// ListExpensesByOwner handles GET /expenses/get-expenses-by-owner/{ownerId}
func (h *ExpenseHandler) ListExpensesByOwner(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	idPart := strings.Trim(strings.TrimPrefix(r.URL.Path, "/expenses/get-expenses-by-owner/"), "/")
	ownerID, err := strconv.ParseUint(idPart, 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid owner id")
		return
	}
	limit, offset := parsePaginationParams(r)
	expenses, err := h.expenses.ListExpensesForOwner(r.Context(), uint(ownerID), limit, offset)
	if err != nil {
		slog.Error("Failed to list expenses for owner", "error", err, "ownerId", ownerID)
		utils.RespondWithError(w, errs.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, expenses)
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
