package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Provider is a business entity offering services (a garage, an insurer).
// It owns its ProviderService attachments exclusively: deleting a provider
// removes its attachments and templates.
type Provider struct {
	ID           string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	CategoryID   uint           `gorm:"not null;index" json:"category_id"`
	Description  string         `gorm:"type:text" json:"description,omitempty"`
	ContactInfo  datatypes.JSON `json:"contact_info,omitempty"`
	Location     datatypes.JSON `json:"location,omitempty"`
	IsRegistered bool           `gorm:"not null;default:false" json:"is_registered"`
	Rating       float64        `gorm:"type:decimal(2,1);default:0.0" json:"rating"`
	CreatedAt    time.Time      `json:"created_at"`

	Services []ProviderService `gorm:"foreignKey:ProviderID;constraint:OnDelete:CASCADE" json:"provider_services,omitempty"`
}

// TableName sets the table name for Provider
func (Provider) TableName() string {
	return "providers"
}

// BeforeCreate generates the provider id
func (p *Provider) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ProviderService is a provider's concrete offering of a service, with
// per-relationship metadata. At most one row exists per
// (provider_id, service_id) pair; the upsert path enforces this rather
// than a hard uniqueness constraint.
type ProviderService struct {
	ID              string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	ProviderID      string         `gorm:"type:varchar(36);not null;index:idx_provider_service,priority:1" json:"provider_id"`
	ServiceID       string         `gorm:"type:varchar(36);not null;index:idx_provider_service,priority:2" json:"service_id"`
	DisplayName     *string        `gorm:"type:varchar(255)" json:"display_name,omitempty"`
	Price           *string        `gorm:"type:varchar(50)" json:"price,omitempty"`
	Duration        *string        `gorm:"type:varchar(50)" json:"duration,omitempty"`
	BookingRequired bool           `gorm:"not null;default:false" json:"booking_required"`
	ExtraData       datatypes.JSON `json:"extra_data,omitempty"`

	Service *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

// TableName sets the table name for ProviderService
func (ProviderService) TableName() string {
	return "provider_services"
}

// BeforeCreate generates the attachment id
func (ps *ProviderService) BeforeCreate(tx *gorm.DB) error {
	if ps.ID == "" {
		ps.ID = uuid.NewString()
	}
	return nil
}
