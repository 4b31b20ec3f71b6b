package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/wanyos2005/carserve-backend/provider-service/models"
	"github.com/wanyos2005/carserve-backend/shared/errs"
)

// TemplateService manages named, ordered service bundles per provider
type TemplateService struct {
	db *gorm.DB
}

// NewTemplateService creates a new template service
func NewTemplateService(db *gorm.DB) *TemplateService {
	return &TemplateService{db: db}
}

// CreateTemplate persists the template and its items in one transaction,
// so readers never observe a template without its items. Item order
// follows payload order; duplicate service ids are kept as supplied.
// The path provider id must match the body's provider_id.
func (s *TemplateService) CreateTemplate(ctx context.Context, providerID string, req *models.CreateTemplateRequest) (*models.ServiceTemplate, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", errs.ErrValidation)
	}
	if req.ProviderID != providerID {
		return nil, fmt.Errorf("%w: provider id mismatch between path and payload", errs.ErrValidation)
	}
	if err := s.requireProvider(ctx, providerID); err != nil {
		return nil, err
	}

	template := models.ServiceTemplate{
		ProviderID: providerID,
		Name:       req.Name,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(&template).Error; err != nil {
			return fmt.Errorf("failed to create template: %w", err)
		}
		for i, item := range req.Items {
			if item.ServiceID == "" {
				return fmt.Errorf("%w: items[%d].service_id is required", errs.ErrValidation, i)
			}
			row := models.ServiceTemplateItem{
				TemplateID: template.ID,
				ServiceID:  item.ServiceID,
				Position:   i,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to create template item: %w", err)
			}
			template.Items = append(template.Items, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if template.Items == nil {
		template.Items = []models.ServiceTemplateItem{}
	}
	return &template, nil
}

// ListForProvider returns all templates for a provider with their items
// expanded in insertion order. The provider must exist.
func (s *TemplateService) ListForProvider(ctx context.Context, providerID string) ([]models.ServiceTemplate, error) {
	if err := s.requireProvider(ctx, providerID); err != nil {
		return nil, err
	}

	var templates []models.ServiceTemplate
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("provider_id = ?", providerID).
		Find(&templates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	if templates == nil {
		templates = []models.ServiceTemplate{}
	}
	for i := range templates {
		if templates[i].Items == nil {
			templates[i].Items = []models.ServiceTemplateItem{}
		}
	}
	return templates, nil
}

func (s *TemplateService) requireProvider(ctx context.Context, providerID string) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Provider{}).Where("id = ?", providerID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check provider: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("%w: provider %s", errs.ErrNotFound, providerID)
	}
	return nil
}
