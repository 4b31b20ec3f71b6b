package models

import (
	"encoding/json"
	"time"
)

// CreateBookingRequest places a booking
type CreateBookingRequest struct {
	UserID      uint            `json:"user_id"`
	VehicleID   string          `json:"vehicle_id,omitempty"`
	ProviderID  string          `json:"provider_id,omitempty"`
	ServiceID   string          `json:"service_id,omitempty"`
	ScheduledAt *time.Time      `json:"scheduled_at,omitempty"`
	Location    json.RawMessage `json:"location,omitempty"`
	Meta        json.RawMessage `json:"meta,omitempty"`
}

// UpdateBookingRequest applies a partial update to a booking
type UpdateBookingRequest struct {
	Status      *string         `json:"status,omitempty"`
	VehicleID   *string         `json:"vehicle_id,omitempty"`
	ProviderID  *string         `json:"provider_id,omitempty"`
	ServiceID   *string         `json:"service_id,omitempty"`
	ScheduledAt *time.Time      `json:"scheduled_at,omitempty"`
	Location    json.RawMessage `json:"location,omitempty"`
	Meta        json.RawMessage `json:"meta,omitempty"`
}

// CreateServiceLogRequest records work performed on a vehicle
type CreateServiceLogRequest struct {
	UserID          uint            `json:"user_id"`
	VehicleID       string          `json:"vehicle_id,omitempty"`
	ProviderID      string          `json:"provider_id,omitempty"`
	ProviderName    *string         `json:"provider_name,omitempty"`
	ProviderContact json.RawMessage `json:"provider_contact,omitempty"`
	ServiceID       string          `json:"service_id,omitempty"`
	ServiceName     *string         `json:"service_name,omitempty"`
	ServiceItems    json.RawMessage `json:"service_items,omitempty"`
	MileageKm       *int            `json:"mileage_km,omitempty"`
	PerformedAt     *time.Time      `json:"performed_at,omitempty"`
	NextServiceKm   *int            `json:"next_service_km,omitempty"`
	NextServiceDate *time.Time      `json:"next_service_date,omitempty"`
	MechanicName    *string         `json:"mechanic_name,omitempty"`
	MechanicContact *string         `json:"mechanic_contact,omitempty"`
	LoggedBy        string          `json:"logged_by,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
}
