package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanyos2005/carserve-backend/booking-service/models"
	"github.com/wanyos2005/carserve-backend/shared/errs"
)

func TestServiceLogService_CreateLog(t *testing.T) {
	t.Run("LoggedByDefaultsToUser", func(t *testing.T) {
		svc := NewServiceLogService(setupBookingTestDB(t))

		log, err := svc.CreateLog(context.Background(), &models.CreateServiceLogRequest{
			UserID:    1,
			VehicleID: "vehicle-1",
		})

		require.NoError(t, err)
		assert.Equal(t, "user", log.LoggedBy)
		assert.NotEmpty(t, log.ID)
	})

	t.Run("MissingUserRejected", func(t *testing.T) {
		svc := NewServiceLogService(setupBookingTestDB(t))

		_, err := svc.CreateLog(context.Background(), &models.CreateServiceLogRequest{})

		assert.True(t, errs.IsValidation(err))
	})
}

func TestServiceLogService_CreateBulkLogs(t *testing.T) {
	t.Run("AllEntriesCommitted", func(t *testing.T) {
		db := setupBookingTestDB(t)
		svc := NewServiceLogService(db)

		logs, err := svc.CreateBulkLogs(context.Background(), []models.CreateServiceLogRequest{
			{UserID: 1, VehicleID: "vehicle-1", LoggedBy: "provider"},
			{UserID: 1, VehicleID: "vehicle-1", LoggedBy: "provider"},
		})

		require.NoError(t, err)
		assert.Len(t, logs, 2)

		var count int64
		require.NoError(t, db.Model(&models.ServiceLog{}).Count(&count).Error)
		assert.EqualValues(t, 2, count)
	})

	t.Run("InvalidEntryRollsBackEverything", func(t *testing.T) {
		db := setupBookingTestDB(t)
		svc := NewServiceLogService(db)

		_, err := svc.CreateBulkLogs(context.Background(), []models.CreateServiceLogRequest{
			{UserID: 1, VehicleID: "vehicle-1"},
			{VehicleID: "vehicle-1"},
		})
		require.Error(t, err)
		assert.True(t, errs.IsValidation(err))

		var count int64
		require.NoError(t, db.Model(&models.ServiceLog{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("EmptyBatchRejected", func(t *testing.T) {
		svc := NewServiceLogService(setupBookingTestDB(t))

		_, err := svc.CreateBulkLogs(context.Background(), nil)

		assert.True(t, errs.IsValidation(err))
	})
}

func TestServiceLogService_Listing(t *testing.T) {
	t.Run("ScopedByUserProviderVehicle", func(t *testing.T) {
		svc := NewServiceLogService(setupBookingTestDB(t))

		_, err := svc.CreateLog(context.Background(), &models.CreateServiceLogRequest{
			UserID: 1, VehicleID: "vehicle-1", ProviderID: "provider-1",
		})
		require.NoError(t, err)
		_, err = svc.CreateLog(context.Background(), &models.CreateServiceLogRequest{
			UserID: 2, VehicleID: "vehicle-2", ProviderID: "provider-1",
		})
		require.NoError(t, err)

		byUser, err := svc.ListLogsForUser(context.Background(), 1)
		require.NoError(t, err)
		assert.Len(t, byUser, 1)

		byProvider, err := svc.ListLogsForProvider(context.Background(), "provider-1")
		require.NoError(t, err)
		assert.Len(t, byProvider, 2)

		byVehicle, err := svc.ListLogsForVehicle(context.Background(), "vehicle-2")
		require.NoError(t, err)
		assert.Len(t, byVehicle, 1)
	})

	t.Run("EmptyResultIsNotNil", func(t *testing.T) {
		svc := NewServiceLogService(setupBookingTestDB(t))

		logs, err := svc.ListLogsForUser(context.Background(), 99)

		require.NoError(t, err)
		assert.NotNil(t, logs)
		assert.Empty(t, logs)
	})
}
