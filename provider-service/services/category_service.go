package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"github.com/wanyos2005/carserve-backend/provider-service/config"
	"github.com/wanyos2005/carserve-backend/provider-service/models"
	"github.com/wanyos2005/carserve-backend/shared/errs"
)

// CategoryService manages the two independent category taxonomies.
// Creation is idempotent on duplicate names for both taxonomies: a second
// create with the same name returns the existing row instead of failing.
type CategoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new category service
func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// CreateProviderCategory inserts a provider category, returning the
// existing row when the name is already taken. The second return value
// reports whether a new row was created.
func (s *CategoryService) CreateProviderCategory(ctx context.Context, name string) (*models.ProviderCategory, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, fmt.Errorf("%w: name is required", errs.ErrValidation)
	}

	var existing models.ProviderCategory
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to look up provider category: %w", err)
	}

	category := models.ProviderCategory{Name: name}
	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		// Lost a race against a concurrent create with the same name;
		// the existing row wins
		if err2 := s.db.WithContext(ctx).Where("name = ?", name).First(&existing).Error; err2 == nil {
			return &existing, false, nil
		}
		return nil, false, fmt.Errorf("failed to create provider category: %w", err)
	}
	return &category, true, nil
}

// ListProviderCategories returns all provider categories
func (s *CategoryService) ListProviderCategories(ctx context.Context) ([]models.ProviderCategory, error) {
	var categories []models.ProviderCategory
	if err := s.db.WithContext(ctx).Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list provider categories: %w", err)
	}
	if categories == nil {
		categories = []models.ProviderCategory{}
	}
	return categories, nil
}

// CreateServiceCategory inserts a service category with the same
// duplicate-tolerant contract as CreateProviderCategory
func (s *CategoryService) CreateServiceCategory(ctx context.Context, name string) (*models.ServiceCategory, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, fmt.Errorf("%w: name is required", errs.ErrValidation)
	}

	var existing models.ServiceCategory
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to look up service category: %w", err)
	}

	category := models.ServiceCategory{Name: name}
	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		if err2 := s.db.WithContext(ctx).Where("name = ?", name).First(&existing).Error; err2 == nil {
			return &existing, false, nil
		}
		return nil, false, fmt.Errorf("failed to create service category: %w", err)
	}
	return &category, true, nil
}

// ListServiceCategories returns all service categories
func (s *CategoryService) ListServiceCategories(ctx context.Context) ([]models.ServiceCategory, error) {
	var categories []models.ServiceCategory
	if err := s.db.WithContext(ctx).Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list service categories: %w", err)
	}
	if categories == nil {
		categories = []models.ServiceCategory{}
	}
	return categories, nil
}

// Seed creates the configured category names if they do not exist yet.
// Safe to run on every startup because creation is idempotent.
func (s *CategoryService) Seed(ctx context.Context, cfg *config.CatalogConfig) {
	for _, name := range cfg.ProviderCategories {
		if _, _, err := s.CreateProviderCategory(ctx, name); err != nil {
			slog.Warn("Failed to seed provider category", "name", name, "error", err)
		}
	}
	for _, name := range cfg.ServiceCategories {
		if _, _, err := s.CreateServiceCategory(ctx, name); err != nil {
			slog.Warn("Failed to seed service category", "name", name, "error", err)
		}
	}
}
