package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Expense is a running cost a user records against a vehicle
type Expense struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	OwnerID     uint      `gorm:"index" json:"owner_id"`
	VehicleID   string    `gorm:"index;type:varchar(36)" json:"vehicle_id,omitempty"`
	ProviderID  string    `gorm:"index;type:varchar(36)" json:"provider_id,omitempty"`
	ExpenseType string    `gorm:"index;type:varchar(100)" json:"expense_type"`
	Location    string    `gorm:"index;type:varchar(255)" json:"location,omitempty"`
	Cost        int       `gorm:"index" json:"cost"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName sets the table name for Expense
func (Expense) TableName() string {
	return "expenses"
}

// BeforeCreate generates the expense id
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// CreateExpenseRequest records an expense
type CreateExpenseRequest struct {
	OwnerID     uint   `json:"owner_id"`
	VehicleID   string `json:"vehicle_id,omitempty"`
	ProviderID  string `json:"provider_id,omitempty"`
	ExpenseType string `json:"expense_type"`
	Location    string `json:"location,omitempty"`
	Cost        int    `json:"cost"`
}
