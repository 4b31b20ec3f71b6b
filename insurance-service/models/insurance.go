package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InsurancePolicy is an insurance cover a user records against a vehicle
type InsurancePolicy struct {
	ID               string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	OwnerID          uint       `gorm:"index" json:"owner_id"`
	VehicleID        string     `gorm:"index;type:varchar(36)" json:"vehicle_id,omitempty"`
	ProviderID       string     `gorm:"index;type:varchar(36)" json:"provider_id,omitempty"`
	InsuranceType    string     `gorm:"index;type:varchar(100)" json:"insurance_type"`
	CommencementDate *time.Time `json:"commencement_date,omitempty"`
	ExpiryDate       *time.Time `json:"expiry_date,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// TableName sets the table name for InsurancePolicy
func (InsurancePolicy) TableName() string {
	return "insurance_policies"
}

// BeforeCreate generates the policy id
func (p *InsurancePolicy) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// CreateInsurancePolicyRequest records an insurance policy
type CreateInsurancePolicyRequest struct {
	OwnerID          uint       `json:"owner_id"`
	VehicleID        string     `json:"vehicle_id,omitempty"`
	ProviderID       string     `json:"provider_id,omitempty"`
	InsuranceType    string     `json:"insurance_type"`
	CommencementDate *time.Time `json:"commencement_date,omitempty"`
	ExpiryDate       *time.Time `json:"expiry_date,omitempty"`
}
