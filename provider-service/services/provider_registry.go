package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/wanyos2005/carserve-backend/provider-service/models"
	"github.com/wanyos2005/carserve-backend/shared/audit"
	"github.com/wanyos2005/carserve-backend/shared/errs"
)

// ProviderRegistry manages provider records and answers discovery queries
type ProviderRegistry struct {
	db        *gorm.DB
	publisher audit.Publisher
}

// NewProviderRegistry creates a new provider registry
func NewProviderRegistry(db *gorm.DB, publisher audit.Publisher) *ProviderRegistry {
	return &ProviderRegistry{db: db, publisher: publisher}
}

// CreateProvider persists a new provider. Rating always starts at 0.
func (s *ProviderRegistry) CreateProvider(ctx context.Context, req *models.CreateProviderRequest) (*models.Provider, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", errs.ErrValidation)
	}
	if req.CategoryID == 0 {
		return nil, fmt.Errorf("%w: category_id is required", errs.ErrValidation)
	}

	provider := models.Provider{
		Name:        req.Name,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		ContactInfo: datatypes.JSON(req.ContactInfo),
		Location:    datatypes.JSON(req.Location),
	}
	if req.IsRegistered != nil {
		provider.IsRegistered = *req.IsRegistered
	}

	if err := s.db.WithContext(ctx).Create(&provider).Error; err != nil {
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}

	audit.Record(ctx, s.publisher, audit.Event{
		Service:    "provider-service",
		Action:     "CREATE",
		EntityType: "provider",
		EntityID:   provider.ID,
	})
	return &provider, nil
}

// GetProvider returns the provider with its attachments and their nested
// service details resolved, or ErrNotFound
func (s *ProviderRegistry) GetProvider(ctx context.Context, id string) (*models.Provider, error) {
	var provider models.Provider
	err := s.db.WithContext(ctx).Preload("Services.Service").First(&provider, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: provider %s", errs.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get provider: %w", err)
	}
	return &provider, nil
}

// FindProviders answers discovery queries: filter by category and/or by
// service coverage. With MatchAll the provider must offer every listed
// service; otherwise at least one. Existence is tested per service id, so
// duplicate attachment rows neither break the predicate nor duplicate
// providers in the result.
func (s *ProviderRegistry) FindProviders(ctx context.Context, filter *models.ProviderFilter) ([]models.Provider, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	q := s.db.WithContext(ctx).Model(&models.Provider{})
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}

	if len(filter.ServiceIDs) > 0 {
		if filter.MatchAll {
			// Conjunction of per-service existence checks (AND)
			for _, sid := range filter.ServiceIDs {
				q = q.Where("EXISTS (SELECT 1 FROM provider_services ps WHERE ps.provider_id = providers.id AND ps.service_id = ?)", sid)
			}
		} else {
			// At least one of the listed services (OR)
			q = q.Where("EXISTS (SELECT 1 FROM provider_services ps WHERE ps.provider_id = providers.id AND ps.service_id IN ?)", filter.ServiceIDs)
		}
	}

	var providers []models.Provider
	err := q.Preload("Services.Service").Limit(limit).Offset(offset).Find(&providers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find providers: %w", err)
	}
	if providers == nil {
		providers = []models.Provider{}
	}
	return providers, nil
}

// UpdateProvider applies a partial update: only fields present in the
// request are copied onto the stored provider
func (s *ProviderRegistry) UpdateProvider(ctx context.Context, id string, req *models.UpdateProviderRequest) (*models.Provider, error) {
	var provider models.Provider
	err := s.db.WithContext(ctx).First(&provider, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: provider %s", errs.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get provider: %w", err)
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: name must not be empty", errs.ErrValidation)
		}
		provider.Name = *req.Name
	}
	if req.CategoryID != nil {
		provider.CategoryID = *req.CategoryID
	}
	if req.Description != nil {
		provider.Description = *req.Description
	}
	if req.ContactInfo != nil {
		provider.ContactInfo = datatypes.JSON(req.ContactInfo)
	}
	if req.Location != nil {
		provider.Location = datatypes.JSON(req.Location)
	}
	if req.IsRegistered != nil {
		provider.IsRegistered = *req.IsRegistered
	}
	if req.Rating != nil {
		provider.Rating = *req.Rating
	}

	if err := s.db.WithContext(ctx).Save(&provider).Error; err != nil {
		return nil, fmt.Errorf("failed to update provider: %w", err)
	}

	audit.Record(ctx, s.publisher, audit.Event{
		Service:    "provider-service",
		Action:     "UPDATE",
		EntityType: "provider",
		EntityID:   provider.ID,
	})
	return &provider, nil
}

// DeleteProvider removes the provider together with its attachments and
// templates (the provider owns both exclusively)
func (s *ProviderRegistry) DeleteProvider(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Provider{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete provider: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: provider %s", errs.ErrNotFound, id)
		}

		if err := tx.Delete(&models.ProviderService{}, "provider_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete provider attachments: %w", err)
		}

		var templateIDs []string
		if err := tx.Model(&models.ServiceTemplate{}).Where("provider_id = ?", id).Pluck("id", &templateIDs).Error; err != nil {
			return fmt.Errorf("failed to collect provider templates: %w", err)
		}
		if len(templateIDs) > 0 {
			if err := tx.Delete(&models.ServiceTemplateItem{}, "template_id IN ?", templateIDs).Error; err != nil {
				return fmt.Errorf("failed to delete template items: %w", err)
			}
			if err := tx.Delete(&models.ServiceTemplate{}, "id IN ?", templateIDs).Error; err != nil {
				return fmt.Errorf("failed to delete templates: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	audit.Record(ctx, s.publisher, audit.Event{
		Service:    "provider-service",
		Action:     "DELETE",
		EntityType: "provider",
		EntityID:   id,
	})
	return nil
}
