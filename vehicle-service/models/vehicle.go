package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vehicle belongs to a user by numeric owner id. Guest vehicles are
// registered by a provider and carry the guest owner's contact details
// alongside the guest user id.
type Vehicle struct {
	ID                  string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	OwnerID             *uint     `gorm:"index" json:"owner_id,omitempty"`
	Make                string    `gorm:"index;type:varchar(100)" json:"make"`
	Model               string    `gorm:"index;type:varchar(100)" json:"model"`
	Plate               string    `gorm:"uniqueIndex;type:varchar(20)" json:"plate"`
	Mileage             int       `gorm:"default:0" json:"mileage"`
	YOM                 int       `gorm:"index;column:yom" json:"yom"`
	FuelType            string    `gorm:"index;type:varchar(50)" json:"fuel_type"`
	Transmission        *string   `gorm:"index;type:varchar(50)" json:"transmission,omitempty"`
	Color               *string   `gorm:"index;type:varchar(50)" json:"color,omitempty"`
	GuestOwnerName      *string   `gorm:"type:varchar(255)" json:"guest_owner_name,omitempty"`
	GuestOwnerEmail     *string   `gorm:"type:varchar(255)" json:"guest_owner_email,omitempty"`
	GuestOwnerPhone     *string   `gorm:"type:varchar(50)" json:"guest_owner_phone,omitempty"`
	CreatedByProviderID *string   `gorm:"type:varchar(36)" json:"created_by_provider_id,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// TableName sets the table name for Vehicle
func (Vehicle) TableName() string {
	return "vehicles"
}

// BeforeCreate generates the vehicle id
func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// NormalizePlate canonicalizes a registration plate for storage and
// comparison
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

// CreateVehicleRequest registers a vehicle. owner_id and the guest fields
// are only honored on the guest endpoint; the authenticated endpoint takes
// the owner from the token.
type CreateVehicleRequest struct {
	OwnerID             *uint   `json:"owner_id,omitempty"`
	Make                string  `json:"make"`
	Model               string  `json:"model"`
	Plate               string  `json:"plate"`
	Mileage             int     `json:"mileage"`
	YOM                 int     `json:"yom"`
	FuelType            string  `json:"fuel_type"`
	Transmission        *string `json:"transmission,omitempty"`
	Color               *string `json:"color,omitempty"`
	GuestOwnerName      *string `json:"guest_owner_name,omitempty"`
	GuestOwnerEmail     *string `json:"guest_owner_email,omitempty"`
	GuestOwnerPhone     *string `json:"guest_owner_phone,omitempty"`
	CreatedByProviderID *string `json:"created_by_provider_id,omitempty"`
}

// UpdateVehicleRequest applies a partial update to a vehicle
type UpdateVehicleRequest struct {
	Make         *string `json:"make,omitempty"`
	Model        *string `json:"model,omitempty"`
	Plate        *string `json:"plate,omitempty"`
	Mileage      *int    `json:"mileage,omitempty"`
	YOM          *int    `json:"yom,omitempty"`
	FuelType     *string `json:"fuel_type,omitempty"`
	Transmission *string `json:"transmission,omitempty"`
	Color        *string `json:"color,omitempty"`
}

// VehicleFilter narrows the owner-scoped vehicle listing
type VehicleFilter struct {
	Plate string
	Skip  int
	Limit int
}
