package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/wanyos2005/carserve-backend/provider-service/config"
	"github.com/wanyos2005/carserve-backend/provider-service/models"
	"github.com/wanyos2005/carserve-backend/shared/errs"
)

// CatalogService manages global service definitions
type CatalogService struct {
	db  *gorm.DB
	cfg *config.CatalogConfig
}

// NewCatalogService creates a new catalog service
func NewCatalogService(db *gorm.DB, cfg *config.CatalogConfig) *CatalogService {
	if cfg == nil {
		cfg = config.GetDefaultCatalogConfig()
	}
	return &CatalogService{db: db, cfg: cfg}
}

// CreateService persists a new service definition. The requirements
// payload is normalized to the canonical {"fields":[...]} shape.
func (s *CatalogService) CreateService(ctx context.Context, req *models.CreateServiceRequest) (*models.Service, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", errs.ErrValidation)
	}

	requirements, err := models.NormalizeRequirements(req.Requirements)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrValidation, err)
	}
	if err := s.validateFieldTypes(requirements); err != nil {
		return nil, err
	}

	service := models.Service{
		Name:         req.Name,
		Description:  req.Description,
		CategoryID:   req.CategoryID,
		Requirements: requirements,
	}
	if err := s.db.WithContext(ctx).Create(&service).Error; err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return &service, nil
}

// GetService returns the service or ErrNotFound
func (s *CatalogService) GetService(ctx context.Context, id string) (*models.Service, error) {
	var service models.Service
	err := s.db.WithContext(ctx).First(&service, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: service %s", errs.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return &service, nil
}

// ListServices returns services, optionally filtered by category, with
// limit/offset pagination
func (s *CatalogService) ListServices(ctx context.Context, categoryID *uint, limit, offset int) ([]models.Service, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	q := s.db.WithContext(ctx).Model(&models.Service{})
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}

	var services []models.Service
	if err := q.Limit(limit).Offset(offset).Find(&services).Error; err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	if services == nil {
		services = []models.Service{}
	}
	return services, nil
}

// UpdateService applies a partial update: only fields present in the
// request are touched. A supplied requirements payload is re-normalized
// with the same rule as create.
func (s *CatalogService) UpdateService(ctx context.Context, id string, req *models.UpdateServiceRequest) (*models.Service, error) {
	service, err := s.GetService(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: name must not be empty", errs.ErrValidation)
		}
		service.Name = *req.Name
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.CategoryID != nil {
		service.CategoryID = req.CategoryID
	}
	// An explicit JSON null is treated as "not supplied", like a missing key
	if req.Requirements != nil && string(req.Requirements) != "null" {
		requirements, err := models.NormalizeRequirements(req.Requirements)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrValidation, err)
		}
		if err := s.validateFieldTypes(requirements); err != nil {
			return nil, err
		}
		service.Requirements = requirements
	}

	if err := s.db.WithContext(ctx).Save(service).Error; err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}
	return service, nil
}

// DeleteService removes the service. Existing provider attachments are
// left in place and simply stop resolving their nested service detail.
func (s *CatalogService) DeleteService(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&models.Service{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete service: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: service %s", errs.ErrNotFound, id)
	}
	return nil
}

// validateFieldTypes rejects requirement fields whose type is not in the
// configured vocabulary
func (s *CatalogService) validateFieldTypes(requirements []byte) error {
	req, err := models.DecodeRequirements(requirements)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrValidation, err)
	}
	for _, f := range req.Fields {
		if f.Type != "" && !s.cfg.IsValidFieldType(f.Type) {
			return fmt.Errorf("%w: unknown requirement field type %q", errs.ErrValidation, f.Type)
		}
	}
	return nil
}
