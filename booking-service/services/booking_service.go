package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/wanyos2005/carserve-backend/booking-service/models"
	"github.com/wanyos2005/carserve-backend/shared/audit"
	"github.com/wanyos2005/carserve-backend/shared/errs"
)

// BookingService manages service appointments
type BookingService struct {
	db        *gorm.DB
	publisher audit.Publisher
}

// NewBookingService creates a new booking service
func NewBookingService(db *gorm.DB, publisher audit.Publisher) *BookingService {
	return &BookingService{db: db, publisher: publisher}
}

// CreateBooking places a booking in the pending state
func (s *BookingService) CreateBooking(ctx context.Context, req *models.CreateBookingRequest) (*models.Booking, error) {
	if req.UserID == 0 {
		return nil, fmt.Errorf("%w: user_id is required", errs.ErrValidation)
	}

	booking := models.Booking{
		UserID:      req.UserID,
		VehicleID:   req.VehicleID,
		ProviderID:  req.ProviderID,
		ServiceID:   req.ServiceID,
		Status:      models.BookingStatusPending,
		ScheduledAt: req.ScheduledAt,
		Location:    datatypes.JSON(req.Location),
		Meta:        datatypes.JSON(req.Meta),
	}
	if err := s.db.WithContext(ctx).Create(&booking).Error; err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	audit.Record(ctx, s.publisher, audit.Event{
		Service:    "booking-service",
		Action:     "CREATE",
		EntityType: "booking",
		EntityID:   booking.ID,
	})
	return &booking, nil
}

// GetBooking returns the booking or ErrNotFound
func (s *BookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).First(&booking, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: booking %s", errs.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

// UpdateBooking applies a partial update. Concurrent updates resolve
// last-writer-wins.
func (s *BookingService) UpdateBooking(ctx context.Context, id string, req *models.UpdateBookingRequest) (*models.Booking, error) {
	booking, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		booking.Status = *req.Status
	}
	if req.VehicleID != nil {
		booking.VehicleID = *req.VehicleID
	}
	if req.ProviderID != nil {
		booking.ProviderID = *req.ProviderID
	}
	if req.ServiceID != nil {
		booking.ServiceID = *req.ServiceID
	}
	if req.ScheduledAt != nil {
		booking.ScheduledAt = req.ScheduledAt
	}
	if req.Location != nil {
		booking.Location = datatypes.JSON(req.Location)
	}
	if req.Meta != nil {
		booking.Meta = datatypes.JSON(req.Meta)
	}

	if err := s.db.WithContext(ctx).Save(booking).Error; err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	audit.Record(ctx, s.publisher, audit.Event{
		Service:    "booking-service",
		Action:     "UPDATE",
		EntityType: "booking",
		EntityID:   booking.ID,
	})
	return booking, nil
}

// DeleteBooking removes the booking
func (s *BookingService) DeleteBooking(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&models.Booking{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: booking %s", errs.ErrNotFound, id)
	}

	audit.Record(ctx, s.publisher, audit.Event{
		Service:    "booking-service",
		Action:     "DELETE",
		EntityType: "booking",
		EntityID:   id,
	})
	return nil
}

// ListBookingsForUser returns the user's bookings newest first
func (s *BookingService) ListBookingsForUser(ctx context.Context, userID uint, limit, offset int) ([]models.Booking, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}
