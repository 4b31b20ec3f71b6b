package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalogConfig(t *testing.T) {
	t.Run("MissingFileFallsBackToDefaults", func(t *testing.T) {
		cfg, err := LoadCatalogConfig(filepath.Join(t.TempDir(), "nope.yaml"))

		require.NoError(t, err)
		assert.Equal(t, DefaultCatalogConfig.FieldTypes, cfg.FieldTypes)
		assert.True(t, cfg.IsValidFieldType("string"))
	})

	t.Run("ParsesYAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		content := `catalog:
  fieldTypes:
    - string
    - file_upload
  providerCategories:
    - garage
  serviceCategories:
    - maintenance
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cfg, err := LoadCatalogConfig(path)

		require.NoError(t, err)
		assert.Equal(t, []string{"string", "file_upload"}, cfg.FieldTypes)
		assert.Equal(t, []string{"garage"}, cfg.ProviderCategories)
		assert.True(t, cfg.IsValidFieldType("file_upload"))
		assert.False(t, cfg.IsValidFieldType("number"))
	})

	t.Run("UnparsableFileFallsBackToDefaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		require.NoError(t, os.WriteFile(path, []byte("catalog: [not: valid"), 0o644))

		cfg, err := LoadCatalogConfig(path)

		require.NoError(t, err)
		assert.Equal(t, DefaultCatalogConfig.ProviderCategories, cfg.ProviderCategories)
	})

	t.Run("EmptySectionsFilledFromDefaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		content := `catalog:
  providerCategories:
    - garage
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cfg, err := LoadCatalogConfig(path)

		require.NoError(t, err)
		assert.Equal(t, []string{"garage"}, cfg.ProviderCategories)
		assert.Equal(t, DefaultCatalogConfig.FieldTypes, cfg.FieldTypes)
		assert.Equal(t, DefaultCatalogConfig.ServiceCategories, cfg.ServiceCategories)
	})
}

func TestIsValidFieldType(t *testing.T) {
	cfg := GetDefaultCatalogConfig()

	assert.True(t, cfg.IsValidFieldType("select"))
	assert.False(t, cfg.IsValidFieldType("hologram"))
	assert.False(t, cfg.IsValidFieldType(""))
}
