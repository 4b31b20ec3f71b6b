package models

import "encoding/json"

// CreateCategoryRequest creates a provider or service category
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// CreateServiceRequest creates a global service definition
type CreateServiceRequest struct {
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	CategoryID   *uint           `json:"category_id,omitempty"`
	Requirements json.RawMessage `json:"requirements,omitempty"`
}

// UpdateServiceRequest applies a partial update: only non-nil fields are
// copied onto the stored service
type UpdateServiceRequest struct {
	Name         *string         `json:"name,omitempty"`
	Description  *string         `json:"description,omitempty"`
	CategoryID   *uint           `json:"category_id,omitempty"`
	Requirements json.RawMessage `json:"requirements,omitempty"`
}

// CreateProviderRequest creates a provider
type CreateProviderRequest struct {
	Name         string          `json:"name"`
	CategoryID   uint            `json:"category_id"`
	Description  string          `json:"description,omitempty"`
	ContactInfo  json.RawMessage `json:"contact_info,omitempty"`
	Location     json.RawMessage `json:"location,omitempty"`
	IsRegistered *bool           `json:"is_registered,omitempty"`
}

// UpdateProviderRequest applies a partial update to a provider
type UpdateProviderRequest struct {
	Name         *string         `json:"name,omitempty"`
	CategoryID   *uint           `json:"category_id,omitempty"`
	Description  *string         `json:"description,omitempty"`
	ContactInfo  json.RawMessage `json:"contact_info,omitempty"`
	Location     json.RawMessage `json:"location,omitempty"`
	IsRegistered *bool           `json:"is_registered,omitempty"`
	Rating       *float64        `json:"rating,omitempty"`
}

// AttachServiceRequest is one attach-or-update item for a provider.
// Pointer fields distinguish "omitted" from "set to zero value" so an
// update touches only what the caller supplied.
type AttachServiceRequest struct {
	ServiceID       string          `json:"service_id"`
	DisplayName     *string         `json:"display_name,omitempty"`
	Price           *string         `json:"price,omitempty"`
	Duration        *string         `json:"duration,omitempty"`
	BookingRequired *bool           `json:"booking_required,omitempty"`
	ExtraData       json.RawMessage `json:"extra_data,omitempty"`
}

// Attachment batch item statuses
const (
	AttachStatusCreated = "created"
	AttachStatusUpdated = "updated"
	AttachStatusFailed  = "failed"
)

// AttachmentResult reports the outcome of one batch attach item. A failed
// item never aborts the rest of the batch.
type AttachmentResult struct {
	ServiceID  string           `json:"service_id"`
	Status     string           `json:"status"`
	Error      string           `json:"error,omitempty"`
	Attachment *ProviderService `json:"attachment,omitempty"`
}

// TemplateItemRequest is one service reference inside a template payload
type TemplateItemRequest struct {
	ServiceID string `json:"service_id"`
}

// CreateTemplateRequest creates a service template for a provider. The
// body's provider_id must match the path provider id.
type CreateTemplateRequest struct {
	ProviderID string                `json:"provider_id"`
	Name       string                `json:"name"`
	Items      []TemplateItemRequest `json:"items"`
}

// ProviderFilter drives the provider discovery query
type ProviderFilter struct {
	CategoryID *uint
	ServiceIDs []string
	MatchAll   bool
	Limit      int
	Offset     int
}
