package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/wanyos2005/carserve-backend/booking-service/models"
	"github.com/wanyos2005/carserve-backend/shared/audit"
	"github.com/wanyos2005/carserve-backend/shared/errs"
)

func setupBookingTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Booking{}, &models.ServiceLog{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func newTestBookingService(db *gorm.DB) *BookingService {
	return NewBookingService(db, audit.NewNoopPublisher())
}

func TestBookingService_CreateBooking(t *testing.T) {
	t.Run("DefaultsToPending", func(t *testing.T) {
		svc := newTestBookingService(setupBookingTestDB(t))

		booking, err := svc.CreateBooking(context.Background(), &models.CreateBookingRequest{
			UserID:     1,
			VehicleID:  "vehicle-1",
			ProviderID: "provider-1",
			Location:   json.RawMessage(`{"lat":-1.29,"lng":36.82}`),
		})

		require.NoError(t, err)
		assert.NotEmpty(t, booking.ID)
		assert.Equal(t, models.BookingStatusPending, booking.Status)
		assert.JSONEq(t, `{"lat":-1.29,"lng":36.82}`, string(booking.Location))
	})

	t.Run("MissingUserRejected", func(t *testing.T) {
		svc := newTestBookingService(setupBookingTestDB(t))

		_, err := svc.CreateBooking(context.Background(), &models.CreateBookingRequest{})

		assert.True(t, errs.IsValidation(err))
	})
}

func TestBookingService_UpdateBooking(t *testing.T) {
	t.Run("PartialUpdate", func(t *testing.T) {
		svc := newTestBookingService(setupBookingTestDB(t))

		created, err := svc.CreateBooking(context.Background(), &models.CreateBookingRequest{
			UserID:    1,
			VehicleID: "vehicle-1",
		})
		require.NoError(t, err)

		status := "confirmed"
		updated, err := svc.UpdateBooking(context.Background(), created.ID, &models.UpdateBookingRequest{
			Status: &status,
		})

		require.NoError(t, err)
		assert.Equal(t, "confirmed", updated.Status)
		assert.Equal(t, "vehicle-1", updated.VehicleID)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := newTestBookingService(setupBookingTestDB(t))

		_, err := svc.UpdateBooking(context.Background(), "missing-id", &models.UpdateBookingRequest{})

		assert.True(t, errs.IsNotFound(err))
	})
}

func TestBookingService_DeleteBooking(t *testing.T) {
	t.Run("DeleteThenGetIs404", func(t *testing.T) {
		svc := newTestBookingService(setupBookingTestDB(t))

		created, err := svc.CreateBooking(context.Background(), &models.CreateBookingRequest{UserID: 1})
		require.NoError(t, err)

		require.NoError(t, svc.DeleteBooking(context.Background(), created.ID))

		_, err = svc.GetBooking(context.Background(), created.ID)
		assert.True(t, errs.IsNotFound(err))
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := newTestBookingService(setupBookingTestDB(t))

		err := svc.DeleteBooking(context.Background(), "missing-id")

		assert.True(t, errs.IsNotFound(err))
	})
}

func TestBookingService_ListBookingsForUser(t *testing.T) {
	t.Run("NewestFirstAndScoped", func(t *testing.T) {
		db := setupBookingTestDB(t)
		svc := newTestBookingService(db)

		first, err := svc.CreateBooking(context.Background(), &models.CreateBookingRequest{UserID: 1})
		require.NoError(t, err)
		second, err := svc.CreateBooking(context.Background(), &models.CreateBookingRequest{UserID: 1})
		require.NoError(t, err)
		_, err = svc.CreateBooking(context.Background(), &models.CreateBookingRequest{UserID: 2})
		require.NoError(t, err)

		// Force distinct timestamps so the ordering is deterministic
		require.NoError(t, db.Model(&models.Booking{}).Where("id = ?", first.ID).
			Update("created_at", time.Now().Add(-time.Hour)).Error)

		bookings, err := svc.ListBookingsForUser(context.Background(), 1, 50, 0)

		require.NoError(t, err)
		require.Len(t, bookings, 2)
		assert.Equal(t, second.ID, bookings[0].ID)
		assert.Equal(t, first.ID, bookings[1].ID)
	})
}
