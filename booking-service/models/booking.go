package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BookingStatusPending is the status bookings start in
const BookingStatusPending = "pending"

// Booking is a service appointment placed by a user with a provider
type Booking struct {
	ID          string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID      uint           `gorm:"index;not null" json:"user_id"`
	VehicleID   string         `gorm:"index;type:varchar(36)" json:"vehicle_id,omitempty"`
	ProviderID  string         `gorm:"index;type:varchar(36)" json:"provider_id,omitempty"`
	ServiceID   string         `gorm:"index;type:varchar(36)" json:"service_id,omitempty"`
	Status      string         `gorm:"type:varchar(50);default:pending" json:"status"`
	ScheduledAt *time.Time     `json:"scheduled_at,omitempty"`
	Location    datatypes.JSON `json:"location,omitempty"`
	Meta        datatypes.JSON `json:"meta,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

// BeforeCreate generates the booking id
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// ServiceLog records work performed on a vehicle. Logged either by the
// owner, the provider, or the system; provider fields are snapshotted so
// the log survives provider edits.
type ServiceLog struct {
	ID              string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID          uint           `gorm:"index;not null" json:"user_id"`
	VehicleID       string         `gorm:"index;type:varchar(36)" json:"vehicle_id,omitempty"`
	ProviderID      string         `gorm:"index;type:varchar(36)" json:"provider_id,omitempty"`
	ProviderName    *string        `gorm:"type:varchar(255)" json:"provider_name,omitempty"`
	ProviderContact datatypes.JSON `json:"provider_contact,omitempty"`
	ServiceID       string         `gorm:"index;type:varchar(36)" json:"service_id,omitempty"`
	ServiceName     *string        `gorm:"type:varchar(255)" json:"service_name,omitempty"`
	ServiceItems    datatypes.JSON `json:"service_items,omitempty"`
	MileageKm       *int           `json:"mileage_km,omitempty"`
	PerformedAt     *time.Time     `json:"performed_at,omitempty"`
	NextServiceKm   *int           `json:"next_service_km,omitempty"`
	NextServiceDate *time.Time     `json:"next_service_date,omitempty"`
	MechanicName    *string        `gorm:"type:varchar(255)" json:"mechanic_name,omitempty"`
	MechanicContact *string        `gorm:"type:varchar(255)" json:"mechanic_contact,omitempty"`
	LoggedBy        string         `gorm:"type:varchar(50);default:user" json:"logged_by"`
	Notes           *string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}

// TableName sets the table name for ServiceLog
func (ServiceLog) TableName() string {
	return "service_logs"
}

// BeforeCreate generates the service log id
func (l *ServiceLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
