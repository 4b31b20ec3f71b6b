package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/wanyos2005/carserve-backend/provider-service/models"
	"github.com/wanyos2005/carserve-backend/shared/errs"
)

// AttachmentService manages the provider-service many-to-many relationship.
// AttachOrUpdate is the single code path for both "attach new service" and
// "update existing attachment"; callers never need to know which applies.
type AttachmentService struct {
	db *gorm.DB
}

// NewAttachmentService creates a new attachment service
func NewAttachmentService(db *gorm.DB) *AttachmentService {
	return &AttachmentService{db: db}
}

// AttachOrUpdate looks up the attachment by (provider_id, service_id).
// When found, only the fields supplied in the request are merged onto the
// stored row; when not found, a new row is created with booking_required
// defaulting to false and extra_data to {}. The bool result reports
// whether a row was created.
func (s *AttachmentService) AttachOrUpdate(ctx context.Context, providerID string, req *models.AttachServiceRequest) (*models.ProviderService, bool, error) {
	if req.ServiceID == "" {
		return nil, false, fmt.Errorf("%w: service_id is required", errs.ErrValidation)
	}

	// Reject references to services that do not exist, so a batch item
	// fails cleanly instead of writing a dangling attachment
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Service{}).Where("id = ?", req.ServiceID).Count(&count).Error; err != nil {
		return nil, false, fmt.Errorf("failed to check service: %w", err)
	}
	if count == 0 {
		return nil, false, fmt.Errorf("%w: service %s", errs.ErrNotFound, req.ServiceID)
	}

	var existing models.ProviderService
	err := s.db.WithContext(ctx).
		Where("provider_id = ? AND service_id = ?", providerID, req.ServiceID).
		First(&existing).Error

	if err == nil {
		// Partial merge: untouched fields keep their previous values
		if req.DisplayName != nil {
			existing.DisplayName = req.DisplayName
		}
		if req.Price != nil {
			existing.Price = req.Price
		}
		if req.Duration != nil {
			existing.Duration = req.Duration
		}
		if req.BookingRequired != nil {
			existing.BookingRequired = *req.BookingRequired
		}
		// An explicit JSON null is treated as "not supplied"
		if req.ExtraData != nil && string(req.ExtraData) != "null" {
			existing.ExtraData = datatypes.JSON(req.ExtraData)
		}
		if err := s.db.WithContext(ctx).Save(&existing).Error; err != nil {
			return nil, false, fmt.Errorf("failed to update attachment: %w", err)
		}
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to look up attachment: %w", err)
	}

	attachment := models.ProviderService{
		ProviderID:  providerID,
		ServiceID:   req.ServiceID,
		DisplayName: req.DisplayName,
		Price:       req.Price,
		Duration:    req.Duration,
		ExtraData:   datatypes.JSON("{}"),
	}
	if req.BookingRequired != nil {
		attachment.BookingRequired = *req.BookingRequired
	}
	if req.ExtraData != nil && string(req.ExtraData) != "null" {
		attachment.ExtraData = datatypes.JSON(req.ExtraData)
	}

	if err := s.db.WithContext(ctx).Create(&attachment).Error; err != nil {
		return nil, false, fmt.Errorf("failed to create attachment: %w", err)
	}
	return &attachment, true, nil
}

// AttachBatch processes each item independently; there is deliberately no
// batch-wide transaction, so one failed item leaves already-committed
// items in place and the per-item result tells callers which to retry.
func (s *AttachmentService) AttachBatch(ctx context.Context, providerID string, reqs []models.AttachServiceRequest) []models.AttachmentResult {
	results := make([]models.AttachmentResult, 0, len(reqs))
	for i := range reqs {
		req := &reqs[i]
		attachment, created, err := s.AttachOrUpdate(ctx, providerID, req)
		if err != nil {
			results = append(results, models.AttachmentResult{
				ServiceID: req.ServiceID,
				Status:    models.AttachStatusFailed,
				Error:     err.Error(),
			})
			continue
		}
		status := models.AttachStatusUpdated
		if created {
			status = models.AttachStatusCreated
		}
		results = append(results, models.AttachmentResult{
			ServiceID:  req.ServiceID,
			Status:     status,
			Attachment: attachment,
		})
	}
	return results
}

// ListForProvider returns all attachments for a provider with nested
// service details resolved
func (s *AttachmentService) ListForProvider(ctx context.Context, providerID string) ([]models.ProviderService, error) {
	var attachments []models.ProviderService
	err := s.db.WithContext(ctx).
		Preload("Service").
		Where("provider_id = ?", providerID).
		Find(&attachments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}
	if attachments == nil {
		attachments = []models.ProviderService{}
	}
	return attachments, nil
}
