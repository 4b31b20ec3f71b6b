package config

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// CatalogConfig holds the configurable vocabulary of the catalog: the
// requirement field types services may declare and the category names
// seeded at startup
type CatalogConfig struct {
	FieldTypes         []string `yaml:"fieldTypes"`
	ProviderCategories []string `yaml:"providerCategories"`
	ServiceCategories  []string `yaml:"serviceCategories"`

	// Map for O(1) field type validation, built from FieldTypes
	fieldTypesMap map[string]struct{}

	initOnce sync.Once
}

type configFile struct {
	Catalog CatalogConfig `yaml:"catalog"`
}

// DefaultCatalogConfig provides defaults if the config file is not found
var DefaultCatalogConfig = CatalogConfig{
	FieldTypes: []string{
		"string",
		"number",
		"boolean",
		"date",
		"select",
	},
	ProviderCategories: []string{
		"garage",
		"mechanic",
		"insurance",
	},
	ServiceCategories: []string{
		"maintenance",
		"repair",
		"inspection",
	},
}

// LoadCatalogConfig loads the catalog configuration from a YAML file.
// A missing or unparsable file falls back to defaults.
func LoadCatalogConfig(configPath string) (*CatalogConfig, error) {
	if configPath == "" {
		configPath = "config/catalog.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return GetDefaultCatalogConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var file configFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		slog.Warn("Failed to parse catalog config, using defaults", "path", configPath, "error", err)
		return GetDefaultCatalogConfig(), nil
	}

	cfg := &file.Catalog
	if len(cfg.FieldTypes) == 0 {
		cfg.FieldTypes = DefaultCatalogConfig.FieldTypes
	}
	if len(cfg.ProviderCategories) == 0 {
		cfg.ProviderCategories = DefaultCatalogConfig.ProviderCategories
	}
	if len(cfg.ServiceCategories) == 0 {
		cfg.ServiceCategories = DefaultCatalogConfig.ServiceCategories
	}

	cfg.initMaps()
	return cfg, nil
}

// GetDefaultCatalogConfig returns a copy of the defaults, so callers never
// share slices with the package-level value
func GetDefaultCatalogConfig() *CatalogConfig {
	cfg := &CatalogConfig{
		FieldTypes:         append([]string(nil), DefaultCatalogConfig.FieldTypes...),
		ProviderCategories: append([]string(nil), DefaultCatalogConfig.ProviderCategories...),
		ServiceCategories:  append([]string(nil), DefaultCatalogConfig.ServiceCategories...),
	}
	cfg.initMaps()
	return cfg
}

func (c *CatalogConfig) initMaps() {
	c.initOnce.Do(func() {
		c.fieldTypesMap = make(map[string]struct{}, len(c.FieldTypes))
		for _, ft := range c.FieldTypes {
			c.fieldTypesMap[ft] = struct{}{}
		}
	})
}

// IsValidFieldType checks if the given requirement field type is allowed
func (c *CatalogConfig) IsValidFieldType(fieldType string) bool {
	c.initMaps()
	_, ok := c.fieldTypesMap[fieldType]
	return ok
}
