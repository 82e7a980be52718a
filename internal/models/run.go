package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/localnerve/gatesim/internal/schemas"
	"gorm.io/gorm"
)

// Run modes
const (
	RunModeRun  = "run"
	RunModeView = "view"
)

// Run statuses
const (
	RunQueued    = "queued"
	RunRunning   = "running"
	RunSucceeded = "succeeded"
	RunFailed    = "failed"
	RunCanceled  = "canceled"
)

// Run records one engine invocation
type Run struct {
	ID           string `gorm:"primaryKey;size:36"`
	SimulationID uint64 `gorm:"not null;index"`
	Mode         string `gorm:"size:8;not null"`
	Status       string `gorm:"size:16;not null;index"`
	Error        string
	CreatedAt    time.Time
	StartedAt    *time.Time
	FinishedAt   *time.Time
}

// TableName overrides the table name for Run
func (Run) TableName() string {
	return "simulation_runs"
}

// BeforeCreate assigns a random id
func (r *Run) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// Finished reports whether the run reached a terminal status
func (r *Run) Finished() bool {
	switch r.Status {
	case RunSucceeded, RunFailed, RunCanceled:
		return true
	}
	return false
}

// Read converts the row to its API representation
func (r *Run) Read() schemas.RunRead {
	return schemas.RunRead{
		ID:           r.ID,
		SimulationID: r.SimulationID,
		Mode:         r.Mode,
		Status:       r.Status,
		Error:        r.Error,
		CreatedAt:    r.CreatedAt,
		StartedAt:    r.StartedAt,
		FinishedAt:   r.FinishedAt,
	}
}
