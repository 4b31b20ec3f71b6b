package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account on the platform. Email and phone are both optional
// because guest users may be registered by a provider with either one.
type User struct {
	ID                  uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email               *string   `gorm:"uniqueIndex;type:varchar(255)" json:"email,omitempty"`
	Name                *string   `gorm:"index;type:varchar(255)" json:"name,omitempty"`
	Phone               *string   `gorm:"index;type:varchar(50)" json:"phone,omitempty"`
	AuthProvider        string    `gorm:"type:varchar(50);default:email" json:"auth_provider"`
	Verified            bool      `gorm:"default:false" json:"verified"`
	IsGuest             bool      `gorm:"default:false" json:"is_guest"`
	CreatedByProviderID *string   `gorm:"type:varchar(36)" json:"created_by_provider_id,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// TableName sets the table name for User
func (User) TableName() string {
	return "tbl_auth"
}

// OTP is a one-time login code. Codes are single use and expire five
// minutes after creation.
type OTP struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email     string    `gorm:"index;not null;type:varchar(255)" json:"email"`
	Code      string    `gorm:"not null;type:varchar(10)" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName sets the table name for OTP
func (OTP) TableName() string {
	return "tbl_otp"
}

// Role is a named role users can hold
type Role struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name      string    `gorm:"index;not null;type:varchar(100)" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName sets the table name for Role
func (Role) TableName() string {
	return "tbl_roles"
}

// BeforeCreate generates the role id
func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// UserRole assigns a role to a user
type UserRole struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	RoleID    string    `gorm:"type:varchar(36);not null" json:"role_id"`
	Active    bool      `gorm:"default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName sets the table name for UserRole
func (UserRole) TableName() string {
	return "tbl_auth_roles"
}

// BeforeCreate generates the user role id
func (ur *UserRole) BeforeCreate(tx *gorm.DB) error {
	if ur.ID == "" {
		ur.ID = uuid.NewString()
	}
	return nil
}

// ProviderUserLink connects a user to a service provider. A user may be
// linked to at most one row per provider.
type ProviderUserLink struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint      `gorm:"index;not null" json:"user_id"`
	ProviderID string    `gorm:"index;not null;type:varchar(36)" json:"provider_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName sets the table name for ProviderUserLink
func (ProviderUserLink) TableName() string {
	return "provider_user_links"
}
