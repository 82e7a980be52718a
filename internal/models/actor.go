package models

import (
	"time"

	"github.com/localnerve/gatesim/internal/schemas"
)

// Actor is an engine output hook
type Actor struct {
	ID           uint64                    `gorm:"primaryKey;autoIncrement"`
	SimulationID uint64                    `gorm:"not null;uniqueIndex:idx_actors_simulation_name"`
	Name         string                    `gorm:"size:255;not null;uniqueIndex:idx_actors_simulation_name"`
	Type         schemas.ActorType         `gorm:"size:64;not null"`
	Config       JSON[schemas.ActorConfig] `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName overrides the table name for Actor
func (Actor) TableName() string {
	return "actors"
}

// NewActor builds a row from a resolved actor definition
func NewActor(simulationID uint64, a schemas.ActorRead) Actor {
	row := Actor{SimulationID: simulationID}
	row.Set(a)
	return row
}

// Set overwrites the row's columns with in, keeping its identity
func (a *Actor) Set(in schemas.ActorRead) {
	a.Name = in.Name
	a.Type = in.Type
	a.Config = NewJSON(in.ActorConfig)
}

// Read converts the row to its API representation
func (a *Actor) Read() schemas.ActorRead {
	return schemas.ActorRead{
		Name:        a.Name,
		Type:        a.Type,
		ActorConfig: a.Config.Data(),
	}
}
