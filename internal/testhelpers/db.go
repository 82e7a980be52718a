package testhelpers

import (
	"testing"

	"github.com/localnerve/gatesim/internal/config"
	"github.com/localnerve/gatesim/internal/database"
	"gorm.io/gorm"
)

// NewDB opens a migrated in-memory SQLite database that is closed with the test
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &config.Config{
		DBType:            "sqlite",
		DBDatabase:        "file::memory:",
		DBConnectionLimit: 1,
		LogLevel:          "silent",
	}
	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}
