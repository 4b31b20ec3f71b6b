package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/wanyos2005/carserve-backend/insurance-service/models"
	"github.com/wanyos2005/carserve-backend/shared/errs"
)

func setupInsuranceTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.InsurancePolicy{}))
	return db
}

func timePtr(v time.Time) *time.Time { return &v }

func TestCreatePolicy(t *testing.T) {
	svc := NewInsuranceService(setupInsuranceTestDB(t))
	ctx := context.Background()

	t.Run("CreateSuccess", func(t *testing.T) {
		start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		policy, err := svc.CreatePolicy(ctx, &models.CreateInsurancePolicyRequest{
			OwnerID:          1,
			VehicleID:        "veh-1",
			InsuranceType:    "comprehensive",
			CommencementDate: timePtr(start),
			ExpiryDate:       timePtr(start.AddDate(1, 0, 0)),
		})
		require.NoError(t, err)
		assert.NotEmpty(t, policy.ID)
		assert.Equal(t, "comprehensive", policy.InsuranceType)
		require.NotNil(t, policy.ExpiryDate)
		assert.Equal(t, start.AddDate(1, 0, 0), policy.ExpiryDate.UTC())
	})

	t.Run("DatesOptional", func(t *testing.T) {
		policy, err := svc.CreatePolicy(ctx, &models.CreateInsurancePolicyRequest{
			OwnerID:       1,
			InsuranceType: "third party",
		})
		require.NoError(t, err)
		assert.Nil(t, policy.CommencementDate)
		assert.Nil(t, policy.ExpiryDate)
	})

	t.Run("MissingOwnerRejected", func(t *testing.T) {
		_, err := svc.CreatePolicy(ctx, &models.CreateInsurancePolicyRequest{InsuranceType: "comprehensive"})
		assert.True(t, errs.IsValidation(err))
	})

	t.Run("MissingTypeRejected", func(t *testing.T) {
		_, err := svc.CreatePolicy(ctx, &models.CreateInsurancePolicyRequest{OwnerID: 1})
		assert.True(t, errs.IsValidation(err))
	})

	t.Run("ExpiryBeforeCommencementRejected", func(t *testing.T) {
		start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		_, err := svc.CreatePolicy(ctx, &models.CreateInsurancePolicyRequest{
			OwnerID:          1,
			InsuranceType:    "comprehensive",
			CommencementDate: timePtr(start),
			ExpiryDate:       timePtr(start.AddDate(0, -1, 0)),
		})
		assert.True(t, errs.IsValidation(err))
	})
}

func TestListPolicies(t *testing.T) {
	db := setupInsuranceTestDB(t)
	svc := NewInsuranceService(db)
	ctx := context.Background()

	first, err := svc.CreatePolicy(ctx, &models.CreateInsurancePolicyRequest{OwnerID: 1, InsuranceType: "comprehensive"})
	require.NoError(t, err)
	second, err := svc.CreatePolicy(ctx, &models.CreateInsurancePolicyRequest{OwnerID: 1, InsuranceType: "third party"})
	require.NoError(t, err)
	_, err = svc.CreatePolicy(ctx, &models.CreateInsurancePolicyRequest{OwnerID: 2, InsuranceType: "third party"})
	require.NoError(t, err)

	// Backdate the first policy so ordering is deterministic
	require.NoError(t, db.Model(&models.InsurancePolicy{}).Where("id = ?", first.ID).
		Update("created_at", time.Now().Add(-time.Hour)).Error)

	t.Run("ListAllNewestFirst", func(t *testing.T) {
		policies, err := svc.ListPolicies(ctx, 0, 0)
		require.NoError(t, err)
		require.Len(t, policies, 3)
		assert.Equal(t, first.ID, policies[2].ID)
	})

	t.Run("ListByOwnerScoped", func(t *testing.T) {
		policies, err := svc.ListPoliciesForOwner(ctx, 1, 0, 0)
		require.NoError(t, err)
		require.Len(t, policies, 2)
		assert.Equal(t, second.ID, policies[0].ID)
	})

	t.Run("UnknownOwnerEmptyNotNil", func(t *testing.T) {
		policies, err := svc.ListPoliciesForOwner(ctx, 99, 0, 0)
		require.NoError(t, err)
		assert.NotNil(t, policies)
		assert.Empty(t, policies)
	})
}
