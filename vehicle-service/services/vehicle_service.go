package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/wanyos2005/carserve-backend/shared/errs"
	"github.com/wanyos2005/carserve-backend/vehicle-service/models"
)

// VehicleService manages vehicles scoped to their owner. A vehicle that
// exists but belongs to someone else is reported as not found, never as
// forbidden, so ids cannot be probed.
type VehicleService struct {
	db *gorm.DB
}

// NewVehicleService creates a new vehicle service
func NewVehicleService(db *gorm.DB) *VehicleService {
	return &VehicleService{db: db}
}

// CreateVehicle registers a vehicle for the authenticated owner. The plate
// is normalized and must be globally unique.
func (s *VehicleService) CreateVehicle(ctx context.Context, ownerID uint, req *models.CreateVehicleRequest) (*models.Vehicle, error) {
	plate := models.NormalizePlate(req.Plate)
	if plate == "" {
		return nil, fmt.Errorf("%w: plate is required", errs.ErrValidation)
	}
	if err := s.requirePlateFree(ctx, plate); err != nil {
		return nil, err
	}

	vehicle := models.Vehicle{
		OwnerID:      &ownerID,
		Make:         req.Make,
		Model:        req.Model,
		Plate:        plate,
		Mileage:      req.Mileage,
		YOM:          req.YOM,
		FuelType:     req.FuelType,
		Transmission: req.Transmission,
		Color:        req.Color,
	}
	if err := s.db.WithContext(ctx).Create(&vehicle).Error; err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}
	return &vehicle, nil
}

// CreateGuestVehicle registers a vehicle for a guest user on behalf of a
// provider. No authentication; the guest user id is required.
func (s *VehicleService) CreateGuestVehicle(ctx context.Context, req *models.CreateVehicleRequest) (*models.Vehicle, error) {
	if req.OwnerID == nil || *req.OwnerID == 0 {
		return nil, fmt.Errorf("%w: owner_id required for guest vehicle", errs.ErrValidation)
	}
	plate := models.NormalizePlate(req.Plate)
	if plate == "" {
		return nil, fmt.Errorf("%w: plate is required", errs.ErrValidation)
	}
	if err := s.requirePlateFree(ctx, plate); err != nil {
		return nil, err
	}

	vehicle := models.Vehicle{
		OwnerID:             req.OwnerID,
		Make:                req.Make,
		Model:               req.Model,
		Plate:               plate,
		Mileage:             req.Mileage,
		YOM:                 req.YOM,
		FuelType:            req.FuelType,
		Transmission:        req.Transmission,
		Color:               req.Color,
		GuestOwnerName:      req.GuestOwnerName,
		GuestOwnerEmail:     req.GuestOwnerEmail,
		GuestOwnerPhone:     req.GuestOwnerPhone,
		CreatedByProviderID: req.CreatedByProviderID,
	}
	if err := s.db.WithContext(ctx).Create(&vehicle).Error; err != nil {
		return nil, fmt.Errorf("failed to create guest vehicle: %w", err)
	}
	return &vehicle, nil
}

// ListVehicles returns the owner's vehicles, optionally filtered by plate
func (s *VehicleService) ListVehicles(ctx context.Context, ownerID uint, filter *models.VehicleFilter) ([]models.Vehicle, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	skip := filter.Skip
	if skip < 0 {
		skip = 0
	}

	q := s.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if strings.TrimSpace(filter.Plate) != "" {
		q = q.Where("plate = ?", models.NormalizePlate(filter.Plate))
	}

	var vehicles []models.Vehicle
	if err := q.Offset(skip).Limit(limit).Find(&vehicles).Error; err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}
	return vehicles, nil
}

// GetVehicle returns the vehicle when it exists and belongs to the owner
func (s *VehicleService) GetVehicle(ctx context.Context, ownerID uint, vehicleID string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := s.db.WithContext(ctx).First(&vehicle, "id = ?", vehicleID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: vehicle %s", errs.ErrNotFound, vehicleID)
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}
	if vehicle.OwnerID == nil || *vehicle.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: vehicle %s", errs.ErrNotFound, vehicleID)
	}
	return &vehicle, nil
}

// UpdateVehicle applies a partial update. A plate change is re-checked for
// uniqueness against all other vehicles.
func (s *VehicleService) UpdateVehicle(ctx context.Context, ownerID uint, vehicleID string, req *models.UpdateVehicleRequest) (*models.Vehicle, error) {
	vehicle, err := s.GetVehicle(ctx, ownerID, vehicleID)
	if err != nil {
		return nil, err
	}

	if req.Plate != nil {
		newPlate := models.NormalizePlate(*req.Plate)
		if newPlate == "" {
			return nil, fmt.Errorf("%w: plate must not be empty", errs.ErrValidation)
		}
		if newPlate != vehicle.Plate {
			if err := s.requirePlateFree(ctx, newPlate); err != nil {
				return nil, err
			}
			vehicle.Plate = newPlate
		}
	}
	if req.Make != nil {
		vehicle.Make = *req.Make
	}
	if req.Model != nil {
		vehicle.Model = *req.Model
	}
	if req.Mileage != nil {
		vehicle.Mileage = *req.Mileage
	}
	if req.YOM != nil {
		vehicle.YOM = *req.YOM
	}
	if req.FuelType != nil {
		vehicle.FuelType = *req.FuelType
	}
	if req.Transmission != nil {
		vehicle.Transmission = req.Transmission
	}
	if req.Color != nil {
		vehicle.Color = req.Color
	}

	if err := s.db.WithContext(ctx).Save(vehicle).Error; err != nil {
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}
	return vehicle, nil
}

// DeleteVehicle removes the vehicle when it belongs to the owner
func (s *VehicleService) DeleteVehicle(ctx context.Context, ownerID uint, vehicleID string) error {
	vehicle, err := s.GetVehicle(ctx, ownerID, vehicleID)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(vehicle).Error; err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	return nil
}

func (s *VehicleService) requirePlateFree(ctx context.Context, plate string) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Vehicle{}).Where("plate = ?", plate).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check plate: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: plate already registered", errs.ErrValidation)
	}
	return nil
}
