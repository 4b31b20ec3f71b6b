package services

import (
	"context"
	"fmt"

	"github.com/wanyos2005/carserve-backend/expense-service/models"
	"github.com/wanyos2005/carserve-backend/shared/errs"
	"gorm.io/gorm"
)

// ExpenseService handles expense records
type ExpenseService struct {
	db *gorm.DB
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(db *gorm.DB) *ExpenseService {
	return &ExpenseService{db: db}
}

// CreateExpense records a new expense
func (s *ExpenseService) CreateExpense(ctx context.Context, req *models.CreateExpenseRequest) (*models.Expense, error) {
	if req.OwnerID == 0 {
		return nil, fmt.Errorf("%w: owner_id is required", errs.ErrValidation)
	}
	if req.ExpenseType == "" {
		return nil, fmt.Errorf("%w: expense_type is required", errs.ErrValidation)
	}
	if req.Cost < 0 {
		return nil, fmt.Errorf("%w: cost cannot be negative", errs.ErrValidation)
	}

	expense := models.Expense{
		OwnerID:     req.OwnerID,
		VehicleID:   req.VehicleID,
		ProviderID:  req.ProviderID,
		ExpenseType: req.ExpenseType,
		Location:    req.Location,
		Cost:        req.Cost,
	}
	if err := s.db.WithContext(ctx).Create(&expense).Error; err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}
	return &expense, nil
}

// ListExpenses returns all expenses, newest first
func (s *ExpenseService) ListExpenses(ctx context.Context, limit, offset int) ([]models.Expense, error) {
	return s.listExpenses(ctx, s.db.WithContext(ctx), limit, offset)
}

// ListExpensesForOwner returns the expenses recorded by one user, newest first
func (s *ExpenseService) ListExpensesForOwner(ctx context.Context, ownerID uint, limit, offset int) ([]models.Expense, error) {
	query := s.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	return s.listExpenses(ctx, query, limit, offset)
}

func (s *ExpenseService) listExpenses(ctx context.Context, query *gorm.DB, limit, offset int) ([]models.Expense, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	expenses := []models.Expense{}
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&expenses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}
