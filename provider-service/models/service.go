package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service is a global service definition (e.g. "oil change") with a
// structured requirements descriptor
type Service struct {
	ID           string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	CategoryID   *uint          `gorm:"index" json:"category_id,omitempty"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	Description  string         `gorm:"type:text" json:"description,omitempty"`
	Requirements datatypes.JSON `json:"requirements,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// TableName sets the table name for Service
func (Service) TableName() string {
	return "services"
}

// BeforeCreate generates the service id
func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// RequirementField is one named, typed input a service requires from a
// booking caller
type RequirementField struct {
	Name    string   `json:"name"`
	Label   string   `json:"label"`
	Type    string   `json:"type"`
	Options []string `json:"options,omitempty"`
}

// Requirements is the canonical requirements descriptor shape
type Requirements struct {
	Fields []RequirementField `json:"fields"`
}

// NormalizeRequirements coerces a caller-supplied requirements payload into
// the canonical {"fields":[...]} shape. A payload that already carries a
// "fields" key passes through unchanged; a flat key-value map is converted
// to one string-typed field per entry (name=key, label=stringified value).
// The same rule applies on create and on update.
func NormalizeRequirements(raw json.RawMessage) (datatypes.JSON, error) {
	if len(raw) == 0 || string(raw) == "null" {
		empty, err := json.Marshal(Requirements{Fields: []RequirementField{}})
		if err != nil {
			return nil, err
		}
		return datatypes.JSON(empty), nil
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("requirements must be a JSON object: %w", err)
	}

	if _, ok := entries["fields"]; ok {
		// Already canonical; make sure it actually decodes as a descriptor
		var req Requirements
		if err := json.Unmarshal(raw, &req); err != nil {
			return nil, fmt.Errorf("invalid requirements descriptor: %w", err)
		}
		return datatypes.JSON(raw), nil
	}

	// Flat map form: synthesize one string field per entry. Keys are sorted
	// so the normalized output is deterministic.
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]RequirementField, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, RequirementField{
			Name:  k,
			Type:  "string",
			Label: stringifyValue(entries[k]),
		})
	}

	out, err := json.Marshal(Requirements{Fields: fields})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal normalized requirements: %w", err)
	}
	return datatypes.JSON(out), nil
}

// stringifyValue renders a JSON value as the label string: JSON strings
// lose their quotes, everything else keeps its JSON text
func stringifyValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// DecodeRequirements parses a stored requirements column back into the
// canonical descriptor
func DecodeRequirements(stored datatypes.JSON) (*Requirements, error) {
	var req Requirements
	if len(stored) == 0 {
		return &Requirements{Fields: []RequirementField{}}, nil
	}
	if err := json.Unmarshal(stored, &req); err != nil {
		return nil, fmt.Errorf("failed to decode requirements: %w", err)
	}
	return &req, nil
}
