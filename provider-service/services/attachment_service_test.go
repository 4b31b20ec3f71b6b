package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/wanyos2005/carserve-backend/provider-service/models"
	"github.com/wanyos2005/carserve-backend/shared/errs"
)

// seedProviderAndService creates one provider and one service for
// attachment tests
func seedProviderAndService(t *testing.T, db *gorm.DB) (*models.Provider, *models.Service) {
	t.Helper()

	provider := &models.Provider{Name: "Joe's Garage", CategoryID: 1}
	require.NoError(t, db.Create(provider).Error)

	service := &models.Service{Name: "Oil Change"}
	require.NoError(t, db.Create(service).Error)

	return provider, service
}

func TestAttachmentService_AttachOrUpdate(t *testing.T) {
	t.Run("AttachNewWithDefaults", func(t *testing.T) {
		db := SetupSQLiteTestDB(t)
		provider, svc := seedProviderAndService(t, db)
		attachments := NewAttachmentService(db)

		attachment, created, err := attachments.AttachOrUpdate(context.Background(), provider.ID, &models.AttachServiceRequest{
			ServiceID: svc.ID,
		})

		require.NoError(t, err)
		assert.True(t, created)
		assert.False(t, attachment.BookingRequired)
		assert.JSONEq(t, `{}`, string(attachment.ExtraData))
		assert.Nil(t, attachment.DisplayName)
	})

	t.Run("ReattachUpdatesInsteadOfDuplicating", func(t *testing.T) {
		db := SetupSQLiteTestDB(t)
		provider, svc := seedProviderAndService(t, db)
		attachments := NewAttachmentService(db)

		first, created, err := attachments.AttachOrUpdate(context.Background(), provider.ID, &models.AttachServiceRequest{
			ServiceID: svc.ID,
			Price:     stringPtr("49.99"),
		})
		require.NoError(t, err)
		require.True(t, created)

		second, created, err := attachments.AttachOrUpdate(context.Background(), provider.ID, &models.AttachServiceRequest{
			ServiceID: svc.ID,
			Price:     stringPtr("59.99"),
		})
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, first.ID, second.ID)

		var count int64
		require.NoError(t, db.Model(&models.ProviderService{}).
			Where("provider_id = ? AND service_id = ?", provider.ID, svc.ID).
			Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})

	t.Run("PartialUpdatePreservesUntouchedFields", func(t *testing.T) {
		db := SetupSQLiteTestDB(t)
		provider, svc := seedProviderAndService(t, db)
		attachments := NewAttachmentService(db)

		_, _, err := attachments.AttachOrUpdate(context.Background(), provider.ID, &models.AttachServiceRequest{
			ServiceID:       svc.ID,
			DisplayName:     stringPtr("Premium Oil Change"),
			Price:           stringPtr("49.99"),
			BookingRequired: boolPtr(true),
		})
		require.NoError(t, err)

		updated, _, err := attachments.AttachOrUpdate(context.Background(), provider.ID, &models.AttachServiceRequest{
			ServiceID: svc.ID,
			Price:     stringPtr("59.99"),
		})
		require.NoError(t, err)

		require.NotNil(t, updated.DisplayName)
		assert.Equal(t, "Premium Oil Change", *updated.DisplayName)
		require.NotNil(t, updated.Price)
		assert.Equal(t, "59.99", *updated.Price)
		assert.True(t, updated.BookingRequired)
	})

	t.Run("UnknownServiceRejected", func(t *testing.T) {
		db := SetupSQLiteTestDB(t)
		provider, _ := seedProviderAndService(t, db)
		attachments := NewAttachmentService(db)

		_, _, err := attachments.AttachOrUpdate(context.Background(), provider.ID, &models.AttachServiceRequest{
			ServiceID: "missing-service",
		})

		assert.True(t, errs.IsNotFound(err))
	})

	t.Run("MissingServiceIDRejected", func(t *testing.T) {
		db := SetupSQLiteTestDB(t)
		provider, _ := seedProviderAndService(t, db)
		attachments := NewAttachmentService(db)

		_, _, err := attachments.AttachOrUpdate(context.Background(), provider.ID, &models.AttachServiceRequest{})

		assert.True(t, errs.IsValidation(err))
	})

	t.Run("ExtraDataStored", func(t *testing.T) {
		db := SetupSQLiteTestDB(t)
		provider, svc := seedProviderAndService(t, db)
		attachments := NewAttachmentService(db)

		attachment, _, err := attachments.AttachOrUpdate(context.Background(), provider.ID, &models.AttachServiceRequest{
			ServiceID: svc.ID,
			ExtraData: json.RawMessage(`{"loaner_car":true}`),
		})

		require.NoError(t, err)
		assert.JSONEq(t, `{"loaner_car":true}`, string(attachment.ExtraData))
	})

	t.Run("NullExtraDataLeavesExistingUntouched", func(t *testing.T) {
		db := SetupSQLiteTestDB(t)
		provider, svc := seedProviderAndService(t, db)
		attachments := NewAttachmentService(db)

		_, _, err := attachments.AttachOrUpdate(context.Background(), provider.ID, &models.AttachServiceRequest{
			ServiceID: svc.ID,
			ExtraData: json.RawMessage(`{"loaner_car":true}`),
		})
		require.NoError(t, err)

		// A literal JSON null decodes to a non-nil RawMessage; it must not
		// replace the stored extra_data
		attachment, created, err := attachments.AttachOrUpdate(context.Background(), provider.ID, &models.AttachServiceRequest{
			ServiceID: svc.ID,
			ExtraData: json.RawMessage(`null`),
		})

		require.NoError(t, err)
		assert.False(t, created)
		assert.JSONEq(t, `{"loaner_car":true}`, string(attachment.ExtraData))
	})

	t.Run("NullExtraDataOnCreateKeepsDefault", func(t *testing.T) {
		db := SetupSQLiteTestDB(t)
		provider, svc := seedProviderAndService(t, db)
		attachments := NewAttachmentService(db)

		attachment, _, err := attachments.AttachOrUpdate(context.Background(), provider.ID, &models.AttachServiceRequest{
			ServiceID: svc.ID,
			ExtraData: json.RawMessage(`null`),
		})

		require.NoError(t, err)
		assert.JSONEq(t, `{}`, string(attachment.ExtraData))
	})
}

func TestAttachmentService_AttachBatch(t *testing.T) {
	t.Run("FailedItemDoesNotAbortBatch", func(t *testing.T) {
		db := SetupSQLiteTestDB(t)
		provider, svc := seedProviderAndService(t, db)
		attachments := NewAttachmentService(db)

		results := attachments.AttachBatch(context.Background(), provider.ID, []models.AttachServiceRequest{
			{ServiceID: svc.ID},
			{ServiceID: "missing-service"},
			{ServiceID: svc.ID, Price: stringPtr("79.99")},
		})

		require.Len(t, results, 3)
		assert.Equal(t, models.AttachStatusCreated, results[0].Status)
		assert.Equal(t, models.AttachStatusFailed, results[1].Status)
		assert.NotEmpty(t, results[1].Error)
		assert.Equal(t, models.AttachStatusUpdated, results[2].Status)

		// The two valid items collapsed onto one row
		stored, err := attachments.ListForProvider(context.Background(), provider.ID)
		require.NoError(t, err)
		require.Len(t, stored, 1)
		require.NotNil(t, stored[0].Price)
		assert.Equal(t, "79.99", *stored[0].Price)
	})
}

func TestAttachmentService_ListForProvider(t *testing.T) {
	t.Run("ResolvesNestedService", func(t *testing.T) {
		db := SetupSQLiteTestDB(t)
		provider, svc := seedProviderAndService(t, db)
		attachments := NewAttachmentService(db)

		_, _, err := attachments.AttachOrUpdate(context.Background(), provider.ID, &models.AttachServiceRequest{ServiceID: svc.ID})
		require.NoError(t, err)

		list, err := attachments.ListForProvider(context.Background(), provider.ID)

		require.NoError(t, err)
		require.Len(t, list, 1)
		require.NotNil(t, list[0].Service)
		assert.Equal(t, "Oil Change", list[0].Service.Name)
	})

	t.Run("EmptyResultIsNotNil", func(t *testing.T) {
		db := SetupSQLiteTestDB(t)
		provider, _ := seedProviderAndService(t, db)
		attachments := NewAttachmentService(db)

		list, err := attachments.ListForProvider(context.Background(), provider.ID)

		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})
}
