package models

import (
	"time"

	"github.com/localnerve/gatesim/internal/schemas"
	"github.com/localnerve/gatesim/internal/units"
)

// Volume is a placed solid in a simulation's volume tree
type Volume struct {
	ID              uint64                      `gorm:"primaryKey;autoIncrement"`
	SimulationID    uint64                      `gorm:"not null;uniqueIndex:idx_volumes_simulation_name"`
	Name            string                      `gorm:"size:255;not null;uniqueIndex:idx_volumes_simulation_name"`
	Mother          *string                     `gorm:"size:255"`
	Material        string                      `gorm:"size:255;not null"`
	Translation     JSON[[]float64]             `gorm:"not null"`
	TranslationUnit units.Unit                  `gorm:"size:8;not null"`
	Rotation        JSON[schemas.Rotation]      `gorm:"not null"`
	Shape           JSON[schemas.VolumeShape]   `gorm:"not null"`
	DynamicParams   JSON[schemas.DynamicParams] `gorm:"not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName overrides the table name for Volume
func (Volume) TableName() string {
	return "volumes"
}

// NewVolume builds a row from a resolved volume definition
func NewVolume(simulationID uint64, v schemas.VolumeRead) Volume {
	row := Volume{SimulationID: simulationID}
	row.Set(v)
	return row
}

// Set overwrites the row's columns with v, keeping its identity
func (v *Volume) Set(in schemas.VolumeRead) {
	v.Name = in.Name
	v.Mother = nil
	if in.Mother != "" {
		mother := in.Mother
		v.Mother = &mother
	}
	v.Material = in.Material
	v.Translation = NewJSON(in.Translation)
	v.TranslationUnit = in.TranslationUnit
	v.Rotation = NewJSON(in.Rotation)
	v.Shape = NewJSON(in.Shape)
	v.DynamicParams = NewJSON(in.DynamicParams)
}

// Read converts the row to its API representation
func (v *Volume) Read() schemas.VolumeRead {
	out := schemas.VolumeRead{
		Name:            v.Name,
		Material:        v.Material,
		Translation:     v.Translation.Data(),
		TranslationUnit: v.TranslationUnit,
		Rotation:        v.Rotation.Data(),
		Shape:           v.Shape.Data(),
		DynamicParams:   v.DynamicParams.Data(),
	}
	if v.Mother != nil {
		out.Mother = *v.Mother
	}
	return out
}
