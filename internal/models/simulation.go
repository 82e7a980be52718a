package models

import (
	"path/filepath"
	"time"

	"github.com/localnerve/gatesim/internal/schemas"
	"gorm.io/gorm"
)

// Simulation is the root of a simulation definition
type Simulation struct {
	ID                  uint64  `gorm:"primaryKey;autoIncrement"`
	Name                string  `gorm:"uniqueIndex;size:255;not null"`
	NumRuns             int     `gorm:"not null;default:1"`
	RunLen              float64 `gorm:"not null;default:1"`
	OutputDir           string  `gorm:"size:1024;not null"`
	JSONArchiveFilename string  `gorm:"column:json_archive_filename;size:512;not null"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
	Volumes             []Volume `gorm:"constraint:OnDelete:CASCADE;"`
	Sources             []Source `gorm:"constraint:OnDelete:CASCADE;"`
	Actors              []Actor  `gorm:"constraint:OnDelete:CASCADE;"`
	Runs                []Run    `gorm:"constraint:OnDelete:CASCADE;"`
}

// TableName overrides the table name for Simulation
func (Simulation) TableName() string {
	return "simulations"
}

// SetName renames the simulation and recomputes its output locations under root
func (s *Simulation) SetName(root, name string) {
	s.Name = name
	s.OutputDir = filepath.Join(root, name)
	s.JSONArchiveFilename = name + ".json"
}

// ArchivePath is where the engine configuration archive lives
func (s *Simulation) ArchivePath() string {
	return filepath.Join(s.OutputDir, s.JSONArchiveFilename)
}

// AfterCreate inserts the world volume in the same transaction
func (s *Simulation) AfterCreate(tx *gorm.DB) error {
	world := NewVolume(s.ID, schemas.WorldVolume())
	return tx.Create(&world).Error
}

// Read converts the row to its API representation
func (s *Simulation) Read() schemas.SimulationRead {
	return schemas.SimulationRead{
		ID:                  s.ID,
		Name:                s.Name,
		NumRuns:             s.NumRuns,
		RunLen:              s.RunLen,
		OutputDir:           s.OutputDir,
		JSONArchiveFilename: s.JSONArchiveFilename,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}
