package models

// ProviderCategory is a flat taxonomy entry for providers
// (e.g. garage, insurance, mechanic)
type ProviderCategory struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
}

// TableName sets the table name for ProviderCategory
func (ProviderCategory) TableName() string {
	return "provider_categories"
}

// ServiceCategory is a flat taxonomy entry for services, independent of
// the provider taxonomy
type ServiceCategory struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
}

// TableName sets the table name for ServiceCategory
func (ServiceCategory) TableName() string {
	return "service_categories"
}
