package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceTemplate is a named, ordered bundle of services scoped to one
// provider (e.g. a "Standard Oil Service" package). It owns its items.
type ServiceTemplate struct {
	ID         string `gorm:"type:varchar(36);primaryKey" json:"id"`
	ProviderID string `gorm:"type:varchar(36);not null;index" json:"provider_id"`
	Name       string `gorm:"type:varchar(255);not null" json:"name"`

	Items []ServiceTemplateItem `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE" json:"items"`
}

// TableName sets the table name for ServiceTemplate
func (ServiceTemplate) TableName() string {
	return "service_templates"
}

// BeforeCreate generates the template id
func (t *ServiceTemplate) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// ServiceTemplateItem links a template to one service. Items keep their
// input order via Position; the same service may appear more than once.
type ServiceTemplateItem struct {
	ID         string `gorm:"type:varchar(36);primaryKey" json:"id"`
	TemplateID string `gorm:"type:varchar(36);not null;index" json:"-"`
	ServiceID  string `gorm:"type:varchar(36);not null" json:"service_id"`
	Position   int    `gorm:"not null" json:"-"`
}

// TableName sets the table name for ServiceTemplateItem
func (ServiceTemplateItem) TableName() string {
	return "service_template_items"
}

// BeforeCreate generates the item id
func (i *ServiceTemplateItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
