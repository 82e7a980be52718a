package schemas

import (
	"time"

	"github.com/localnerve/gatesim/internal/types"
)

// Simulation defaults
const (
	DefaultNumRuns = 1
	DefaultRunLen  = 1.0
)

// SimulationCreate is the body of POST /api/simulations
type SimulationCreate struct {
	Name    string       `json:"name" validate:"required,max=255,safename" example:"demo"`
	NumRuns *types.Count `json:"num_runs" validate:"omitempty,gt=0,max=10000" swaggertype:"integer" example:"1"`
	RunLen  *float64     `json:"run_len" validate:"omitempty,gt=0" example:"1.0"`
}

// NumRunsOrDefault returns the requested run count or DefaultNumRuns
func (s SimulationCreate) NumRunsOrDefault() int {
	if s.NumRuns == nil {
		return DefaultNumRuns
	}
	return s.NumRuns.Int()
}

// RunLenOrDefault returns the requested run length in seconds or DefaultRunLen
func (s SimulationCreate) RunLenOrDefault() float64 {
	if s.RunLen == nil {
		return DefaultRunLen
	}
	return *s.RunLen
}

// SimulationUpdate is the body of PUT /api/simulations/:id. Nil fields are left alone.
type SimulationUpdate struct {
	Name    *string      `json:"name" validate:"omitempty,max=255,safename" example:"demo-renamed"`
	NumRuns *types.Count `json:"num_runs" validate:"omitempty,gt=0,max=10000" swaggertype:"integer" example:"4"`
	RunLen  *float64     `json:"run_len" validate:"omitempty,gt=0" example:"0.5"`
}

// Empty reports whether the update carries no fields
func (s SimulationUpdate) Empty() bool {
	return s.Name == nil && s.NumRuns == nil && s.RunLen == nil
}

// SimulationRead is the representation of a stored simulation
type SimulationRead struct {
	ID                  uint64    `json:"id" example:"1"`
	Name                string    `json:"name" example:"demo"`
	NumRuns             int       `json:"num_runs" example:"1"`
	RunLen              float64   `json:"run_len" example:"1.0"`
	OutputDir           string    `json:"output_dir" example:"outputs/demo"`
	JSONArchiveFilename string    `json:"json_archive_filename" example:"demo.json"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// ReconstructRequest holds the geometry of a filtered back-projection
type ReconstructRequest struct {
	SOD float64 `json:"sod" validate:"gt=0" example:"100"`
	SDD float64 `json:"sdd" validate:"gt=0" example:"150"`
}

// ReconstructResponse points at the reconstructed image
type ReconstructResponse struct {
	MessageResponse
	Path string `json:"path" example:"outputs/demo/output/reconstruction.mhd"`
}

// RunRead is the representation of a launched engine run
type RunRead struct {
	ID           string     `json:"id" example:"0b9a3f7e-8f34-4d1c-9c57-0f9d6ad0b1c2"`
	SimulationID uint64     `json:"simulation_id" example:"1"`
	Mode         string     `json:"mode" example:"run"`
	Status       string     `json:"status" example:"queued"`
	Error        string     `json:"error,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
}

// ExportResponse describes an uploaded export bundle
type ExportResponse struct {
	MessageResponse
	Key         string    `json:"key" example:"exports/demo/20260101T000000Z.zip"`
	Size        int64     `json:"size" example:"2048"`
	ContentType string    `json:"content_type" example:"application/zip"`
	URL         string    `json:"url,omitempty"`
	ExpiresAt   time.Time `json:"expires_at,omitempty"`
}
