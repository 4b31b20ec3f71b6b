package services

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/wanyos2005/carserve-backend/provider-service/models"
)

// SetupSQLiteTestDB creates an in-memory SQLite database with the catalog
// schema migrated. Each test gets its own isolated database.
func SetupSQLiteTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.ProviderCategory{},
		&models.ServiceCategory{},
		&models.Service{},
		&models.Provider{},
		&models.ProviderService{},
		&models.ServiceTemplate{},
		&models.ServiceTemplateItem{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}
