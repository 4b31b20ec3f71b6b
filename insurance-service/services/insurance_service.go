package services

import (
	"context"
	"fmt"

	"github.com/wanyos2005/carserve-backend/insurance-service/models"
	"github.com/wanyos2005/carserve-backend/shared/errs"
	"gorm.io/gorm"
)

// InsuranceService handles insurance policy records
type InsuranceService struct {
	db *gorm.DB
}

// NewInsuranceService creates a new InsuranceService
func NewInsuranceService(db *gorm.DB) *InsuranceService {
	return &InsuranceService{db: db}
}

// CreatePolicy records a new insurance policy
func (s *InsuranceService) CreatePolicy(ctx context.Context, req *models.CreateInsurancePolicyRequest) (*models.InsurancePolicy, error) {
	if req.OwnerID == 0 {
		return nil, fmt.Errorf("%w: owner_id is required", errs.ErrValidation)
	}
	if req.InsuranceType == "" {
		return nil, fmt.Errorf("%w: insurance_type is required", errs.ErrValidation)
	}
	if req.CommencementDate != nil && req.ExpiryDate != nil && req.ExpiryDate.Before(*req.CommencementDate) {
		return nil, fmt.Errorf("%w: expiry_date cannot precede commencement_date", errs.ErrValidation)
	}

	policy := models.InsurancePolicy{
		OwnerID:          req.OwnerID,
		VehicleID:        req.VehicleID,
		ProviderID:       req.ProviderID,
		InsuranceType:    req.InsuranceType,
		CommencementDate: req.CommencementDate,
		ExpiryDate:       req.ExpiryDate,
	}
	if err := s.db.WithContext(ctx).Create(&policy).Error; err != nil {
		return nil, fmt.Errorf("failed to create insurance policy: %w", err)
	}
	return &policy, nil
}

// ListPolicies returns all policies, newest first
func (s *InsuranceService) ListPolicies(ctx context.Context, limit, offset int) ([]models.InsurancePolicy, error) {
	return s.listPolicies(ctx, s.db.WithContext(ctx), limit, offset)
}

// ListPoliciesForOwner returns the policies recorded by one user, newest first
func (s *InsuranceService) ListPoliciesForOwner(ctx context.Context, ownerID uint, limit, offset int) ([]models.InsurancePolicy, error) {
	query := s.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	return s.listPolicies(ctx, query, limit, offset)
}

func (s *InsuranceService) listPolicies(ctx context.Context, query *gorm.DB, limit, offset int) ([]models.InsurancePolicy, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	policies := []models.InsurancePolicy{}
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&policies).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list insurance policies: %w", err)
	}
	return policies, nil
}
