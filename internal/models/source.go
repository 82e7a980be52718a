package models

import (
	"time"

	"github.com/localnerve/gatesim/internal/schemas"
	"github.com/localnerve/gatesim/internal/units"
)

// Source is a particle source
type Source struct {
	ID           uint64                    `gorm:"primaryKey;autoIncrement"`
	SimulationID uint64                    `gorm:"not null;uniqueIndex:idx_sources_simulation_name"`
	Name         string                    `gorm:"size:255;not null;uniqueIndex:idx_sources_simulation_name"`
	AttachedTo   string                    `gorm:"size:255;not null"`
	Particle     string                    `gorm:"size:64;not null"`
	Position     JSON[schemas.BoxPosition] `gorm:"not null"`
	FocusPoint   JSON[[]float64]           `gorm:"not null"`
	Energy       JSON[schemas.MonoEnergy]  `gorm:"not null"`
	Activity     float64                   `gorm:"not null"`
	Unit         units.Unit                `gorm:"size:8;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName overrides the table name for Source
func (Source) TableName() string {
	return "sources"
}

// NewSource builds a row from a resolved source definition
func NewSource(simulationID uint64, s schemas.SourceRead) Source {
	row := Source{SimulationID: simulationID}
	row.Set(s)
	return row
}

// Set overwrites the row's columns with in, keeping its identity
func (s *Source) Set(in schemas.SourceRead) {
	s.Name = in.Name
	s.AttachedTo = in.AttachedTo
	s.Particle = in.Particle
	s.Position = NewJSON(in.Position)
	s.FocusPoint = NewJSON(in.FocusPoint)
	s.Energy = NewJSON(in.Energy)
	s.Activity = in.Activity
	s.Unit = in.Unit
}

// Read converts the row to its API representation
func (s *Source) Read() schemas.SourceRead {
	return schemas.SourceRead{
		Name:       s.Name,
		AttachedTo: s.AttachedTo,
		Particle:   s.Particle,
		Position:   s.Position.Data(),
		FocusPoint: s.FocusPoint.Data(),
		Energy:     s.Energy.Data(),
		Activity:   s.Activity,
		Unit:       s.Unit,
	}
}
