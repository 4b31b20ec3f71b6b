package services

import (
	"context"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/wanyos2005/carserve-backend/booking-service/models"
	"github.com/wanyos2005/carserve-backend/shared/errs"
)

// ServiceLogService manages vehicle service history records
type ServiceLogService struct {
	db *gorm.DB
}

// NewServiceLogService creates a new service log service
func NewServiceLogService(db *gorm.DB) *ServiceLogService {
	return &ServiceLogService{db: db}
}

// CreateLog records a single service log entry
func (s *ServiceLogService) CreateLog(ctx context.Context, req *models.CreateServiceLogRequest) (*models.ServiceLog, error) {
	log, err := buildLog(req)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(log).Error; err != nil {
		return nil, fmt.Errorf("failed to create service log: %w", err)
	}
	return log, nil
}

// CreateBulkLogs records a batch of log entries in one transaction. Either
// every entry commits or none do, so a provider logging a full template
// never leaves a partial history.
func (s *ServiceLogService) CreateBulkLogs(ctx context.Context, reqs []models.CreateServiceLogRequest) ([]models.ServiceLog, error) {
	if len(reqs) == 0 {
		return nil, fmt.Errorf("%w: at least one log entry is required", errs.ErrValidation)
	}

	logs := make([]models.ServiceLog, 0, len(reqs))
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range reqs {
			log, err := buildLog(&reqs[i])
			if err != nil {
				return fmt.Errorf("entry %d: %w", i, err)
			}
			if err := tx.Create(log).Error; err != nil {
				return fmt.Errorf("failed to create service log %d: %w", i, err)
			}
			logs = append(logs, *log)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// ListLogsForUser returns a user's service history newest first
func (s *ServiceLogService) ListLogsForUser(ctx context.Context, userID uint) ([]models.ServiceLog, error) {
	return s.listLogs(ctx, "user_id = ?", userID)
}

// ListLogsForProvider returns logs recorded against a provider newest first
func (s *ServiceLogService) ListLogsForProvider(ctx context.Context, providerID string) ([]models.ServiceLog, error) {
	return s.listLogs(ctx, "provider_id = ?", providerID)
}

// ListLogsForVehicle returns a vehicle's service history newest first
func (s *ServiceLogService) ListLogsForVehicle(ctx context.Context, vehicleID string) ([]models.ServiceLog, error) {
	return s.listLogs(ctx, "vehicle_id = ?", vehicleID)
}

func (s *ServiceLogService) listLogs(ctx context.Context, query string, arg interface{}) ([]models.ServiceLog, error) {
	var logs []models.ServiceLog
	err := s.db.WithContext(ctx).
		Where(query, arg).
		Order("created_at DESC").
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list service logs: %w", err)
	}
	if logs == nil {
		logs = []models.ServiceLog{}
	}
	return logs, nil
}

func buildLog(req *models.CreateServiceLogRequest) (*models.ServiceLog, error) {
	if req.UserID == 0 {
		return nil, fmt.Errorf("%w: user_id is required", errs.ErrValidation)
	}

	loggedBy := req.LoggedBy
	if loggedBy == "" {
		loggedBy = "user"
	}

	return &models.ServiceLog{
		UserID:          req.UserID,
		VehicleID:       req.VehicleID,
		ProviderID:      req.ProviderID,
		ProviderName:    req.ProviderName,
		ProviderContact: datatypes.JSON(req.ProviderContact),
		ServiceID:       req.ServiceID,
		ServiceName:     req.ServiceName,
		ServiceItems:    datatypes.JSON(req.ServiceItems),
		MileageKm:       req.MileageKm,
		PerformedAt:     req.PerformedAt,
		NextServiceKm:   req.NextServiceKm,
		NextServiceDate: req.NextServiceDate,
		MechanicName:    req.MechanicName,
		MechanicContact: req.MechanicContact,
		LoggedBy:        loggedBy,
		Notes:           req.Notes,
	}, nil
}
