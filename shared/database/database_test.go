package database

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg := NewConfigFromEnv()
		assert.Equal(t, "localhost", cfg.Host)
		assert.Equal(t, "5432", cfg.Port)
		assert.Equal(t, "carserve", cfg.Database)
		assert.Equal(t, 25, cfg.MaxOpenConns)
		assert.Equal(t, time.Hour, cfg.ConnMaxLifetime)
	})

	t.Run("EnvOverrides", func(t *testing.T) {
		t.Setenv("DB_HOST", "db.internal")
		t.Setenv("DB_NAME", "carserve_prod")
		t.Setenv("DB_MAX_OPEN_CONNS", "50")
		cfg := NewConfigFromEnv()
		assert.Equal(t, "db.internal", cfg.Host)
		assert.Equal(t, "carserve_prod", cfg.Database)
		assert.Equal(t, 50, cfg.MaxOpenConns)
	})
}

func TestConfigDSN(t *testing.T) {
	cfg := &Config{
		Host:     "localhost",
		Port:     "5432",
		Username: "postgres",
		Password: "secret",
		Database: "carserve",
		SSLMode:  "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=secret dbname=carserve sslmode=disable",
		cfg.DSN())
}

func TestMigrate(t *testing.T) {
	type widget struct {
		ID uint `gorm:"primaryKey"`
	}

	t.Run("SkippedWhenNotEnabled", func(t *testing.T) {
		db, mock := newMockGorm(t)
		// RUN_MIGRATION defaults to false, so no SQL should be issued
		require.NoError(t, Migrate(db, &widget{}))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RunsWhenEnabled", func(t *testing.T) {
		t.Setenv("RUN_MIGRATION", "true")
		db, mock := newMockGorm(t)

		// AutoMigrate probes for the table first; returning an error is
		// enough to prove the migration path executed
		mock.ExpectQuery("SELECT count").WillReturnError(assert.AnError)
		err := Migrate(db, &widget{})
		assert.Error(t, err)
	})
}
