package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/wanyos2005/carserve-backend/shared/errs"
	"github.com/wanyos2005/carserve-backend/vehicle-service/models"
)

func setupVehicleTest(t *testing.T) *VehicleService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Vehicle{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return NewVehicleService(db)
}

func stringPtr(v string) *string { return &v }
func uintPtr(v uint) *uint       { return &v }

func TestVehicleService_CreateVehicle(t *testing.T) {
	t.Run("PlateIsNormalized", func(t *testing.T) {
		svc := setupVehicleTest(t)

		vehicle, err := svc.CreateVehicle(context.Background(), 1, &models.CreateVehicleRequest{
			Make:  "Toyota",
			Model: "Corolla",
			Plate: "  kda 123x ",
		})

		require.NoError(t, err)
		assert.Equal(t, "KDA 123X", vehicle.Plate)
		require.NotNil(t, vehicle.OwnerID)
		assert.EqualValues(t, 1, *vehicle.OwnerID)
	})

	t.Run("DuplicatePlateRejected", func(t *testing.T) {
		svc := setupVehicleTest(t)

		_, err := svc.CreateVehicle(context.Background(), 1, &models.CreateVehicleRequest{Plate: "KDA 123X"})
		require.NoError(t, err)

		// Same plate, different owner, different casing
		_, err = svc.CreateVehicle(context.Background(), 2, &models.CreateVehicleRequest{Plate: "kda 123x"})
		assert.True(t, errs.IsValidation(err))
	})

	t.Run("MissingPlateRejected", func(t *testing.T) {
		svc := setupVehicleTest(t)

		_, err := svc.CreateVehicle(context.Background(), 1, &models.CreateVehicleRequest{Make: "Toyota"})

		assert.True(t, errs.IsValidation(err))
	})
}

func TestVehicleService_OwnerScoping(t *testing.T) {
	t.Run("OtherOwnersVehicleIs404", func(t *testing.T) {
		svc := setupVehicleTest(t)

		vehicle, err := svc.CreateVehicle(context.Background(), 1, &models.CreateVehicleRequest{Plate: "KDA 123X"})
		require.NoError(t, err)

		_, err = svc.GetVehicle(context.Background(), 2, vehicle.ID)
		assert.True(t, errs.IsNotFound(err))

		_, err = svc.UpdateVehicle(context.Background(), 2, vehicle.ID, &models.UpdateVehicleRequest{})
		assert.True(t, errs.IsNotFound(err))

		err = svc.DeleteVehicle(context.Background(), 2, vehicle.ID)
		assert.True(t, errs.IsNotFound(err))

		// Still there for the real owner
		_, err = svc.GetVehicle(context.Background(), 1, vehicle.ID)
		assert.NoError(t, err)
	})

	t.Run("ListOnlyReturnsOwnVehicles", func(t *testing.T) {
		svc := setupVehicleTest(t)

		_, err := svc.CreateVehicle(context.Background(), 1, &models.CreateVehicleRequest{Plate: "KDA 123X"})
		require.NoError(t, err)
		_, err = svc.CreateVehicle(context.Background(), 2, &models.CreateVehicleRequest{Plate: "KDB 456Y"})
		require.NoError(t, err)

		mine, err := svc.ListVehicles(context.Background(), 1, &models.VehicleFilter{})
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, "KDA 123X", mine[0].Plate)
	})

	t.Run("ListFiltersByPlate", func(t *testing.T) {
		svc := setupVehicleTest(t)

		_, err := svc.CreateVehicle(context.Background(), 1, &models.CreateVehicleRequest{Plate: "KDA 123X"})
		require.NoError(t, err)
		_, err = svc.CreateVehicle(context.Background(), 1, &models.CreateVehicleRequest{Plate: "KDB 456Y"})
		require.NoError(t, err)

		matched, err := svc.ListVehicles(context.Background(), 1, &models.VehicleFilter{Plate: "kda 123x"})
		require.NoError(t, err)
		require.Len(t, matched, 1)
		assert.Equal(t, "KDA 123X", matched[0].Plate)
	})
}

func TestVehicleService_UpdateVehicle(t *testing.T) {
	t.Run("PartialUpdate", func(t *testing.T) {
		svc := setupVehicleTest(t)

		vehicle, err := svc.CreateVehicle(context.Background(), 1, &models.CreateVehicleRequest{
			Make:  "Toyota",
			Model: "Corolla",
			Plate: "KDA 123X",
		})
		require.NoError(t, err)

		mileage := 42000
		updated, err := svc.UpdateVehicle(context.Background(), 1, vehicle.ID, &models.UpdateVehicleRequest{
			Mileage: &mileage,
		})

		require.NoError(t, err)
		assert.Equal(t, 42000, updated.Mileage)
		assert.Equal(t, "Toyota", updated.Make)
		assert.Equal(t, "KDA 123X", updated.Plate)
	})

	t.Run("PlateChangeToTakenPlateRejected", func(t *testing.T) {
		svc := setupVehicleTest(t)

		_, err := svc.CreateVehicle(context.Background(), 1, &models.CreateVehicleRequest{Plate: "KDA 123X"})
		require.NoError(t, err)
		second, err := svc.CreateVehicle(context.Background(), 1, &models.CreateVehicleRequest{Plate: "KDB 456Y"})
		require.NoError(t, err)

		_, err = svc.UpdateVehicle(context.Background(), 1, second.ID, &models.UpdateVehicleRequest{
			Plate: stringPtr("kda 123x"),
		})
		assert.True(t, errs.IsValidation(err))
	})

	t.Run("SamePlateIsNoopNotConflict", func(t *testing.T) {
		svc := setupVehicleTest(t)

		vehicle, err := svc.CreateVehicle(context.Background(), 1, &models.CreateVehicleRequest{Plate: "KDA 123X"})
		require.NoError(t, err)

		updated, err := svc.UpdateVehicle(context.Background(), 1, vehicle.ID, &models.UpdateVehicleRequest{
			Plate: stringPtr("kda 123x"),
		})

		require.NoError(t, err)
		assert.Equal(t, "KDA 123X", updated.Plate)
	})
}

func TestVehicleService_CreateGuestVehicle(t *testing.T) {
	t.Run("RequiresOwnerID", func(t *testing.T) {
		svc := setupVehicleTest(t)

		_, err := svc.CreateGuestVehicle(context.Background(), &models.CreateVehicleRequest{Plate: "KDA 123X"})

		assert.True(t, errs.IsValidation(err))
	})

	t.Run("StoresGuestMetadata", func(t *testing.T) {
		svc := setupVehicleTest(t)

		vehicle, err := svc.CreateGuestVehicle(context.Background(), &models.CreateVehicleRequest{
			OwnerID:             uintPtr(7),
			Plate:               "KDA 123X",
			GuestOwnerName:      stringPtr("Walk-in Customer"),
			GuestOwnerPhone:     stringPtr("+254700000000"),
			CreatedByProviderID: stringPtr("provider-123"),
		})

		require.NoError(t, err)
		require.NotNil(t, vehicle.GuestOwnerName)
		assert.Equal(t, "Walk-in Customer", *vehicle.GuestOwnerName)
		require.NotNil(t, vehicle.CreatedByProviderID)
		assert.Equal(t, "provider-123", *vehicle.CreatedByProviderID)
	})
}
