package database_test

import (
	"errors"
	"testing"

	"github.com/localnerve/gatesim/internal/config"
	"github.com/localnerve/gatesim/internal/database"
	"github.com/localnerve/gatesim/internal/models"
	"github.com/localnerve/gatesim/internal/schemas"
	"github.com/localnerve/gatesim/internal/testhelpers"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestDialectorUnsupported(t *testing.T) {
	if _, err := database.Dialector(&config.Config{DBType: "oracle"}); err == nil {
		t.Error("expected an error for an unsupported database type")
	}
}

func TestDialectorNames(t *testing.T) {
	tests := map[string]string{
		"sqlite":    "sqlite",
		"sqlite3":   "sqlite",
		"mysql":     "mysql",
		"mariadb":   "mysql",
		"postgres":  "postgres",
		"sqlserver": "sqlserver",
	}
	for dbType, want := range tests {
		d, err := database.Dialector(&config.Config{DBType: dbType, DBDatabase: "sims"})
		if err != nil {
			t.Fatalf("%s: %v", dbType, err)
		}
		if d.Name() != want {
			t.Errorf("%s: expected dialect %s, got %s", dbType, want, d.Name())
		}
	}
}

func TestLogLevel(t *testing.T) {
	if database.LogLevel("INFO") != logger.Info {
		t.Error("expected info")
	}
	if database.LogLevel("") != logger.Warn {
		t.Error("expected warn by default")
	}
	if database.LogLevel("silent") != logger.Silent {
		t.Error("expected silent")
	}
}

func TestWorldVolumeOnCreate(t *testing.T) {
	db := testhelpers.NewDB(t)

	sim := models.Simulation{NumRuns: 1, RunLen: 1}
	sim.SetName("outputs", "demo")
	if err := db.Create(&sim).Error; err != nil {
		t.Fatalf("Failed to create simulation: %v", err)
	}

	var volumes []models.Volume
	if err := db.Where("simulation_id = ?", sim.ID).Find(&volumes).Error; err != nil {
		t.Fatalf("Failed to list volumes: %v", err)
	}
	if len(volumes) != 1 || volumes[0].Name != schemas.WorldVolumeName {
		t.Fatalf("expected only the world volume, got %+v", volumes)
	}

	world := volumes[0].Read()
	if world.Mother != "" || world.Material != "G4_AIR" {
		t.Errorf("unexpected world volume %+v", world)
	}
	if world.Shape.Type != schemas.BoxShape || world.Shape.Size[2] != 3000 {
		t.Errorf("unexpected world shape %+v", world.Shape)
	}
}

func TestDuplicateKeysTranslate(t *testing.T) {
	db := testhelpers.NewDB(t)

	first := models.Simulation{NumRuns: 1, RunLen: 1}
	first.SetName("outputs", "demo")
	if err := db.Create(&first).Error; err != nil {
		t.Fatalf("Failed to create simulation: %v", err)
	}

	second := models.Simulation{NumRuns: 1, RunLen: 1}
	second.SetName("outputs", "demo")
	err := db.Create(&second).Error
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("expected ErrDuplicatedKey, got %v", err)
	}

	dup := models.NewVolume(first.ID, schemas.WorldVolume())
	if err := db.Create(&dup).Error; !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("expected ErrDuplicatedKey for the volume, got %v", err)
	}
}
