package handlers

import "github.com/localnerve/gatesim/internal/schemas"

// SimulationResponse wraps a simulation after a mutation
type SimulationResponse struct {
	schemas.MessageResponse
	Simulation schemas.SimulationRead `json:"simulation"`
}

// VolumeResponse wraps a volume after a mutation
type VolumeResponse struct {
	schemas.MessageResponse
	Volume schemas.VolumeRead `json:"volume"`
}

// SourceResponse wraps a source after a mutation
type SourceResponse struct {
	schemas.MessageResponse
	Source schemas.SourceRead `json:"source"`
}

// ActorResponse wraps an actor after a mutation
type ActorResponse struct {
	schemas.MessageResponse
	Actor schemas.ActorRead `json:"actor"`
}

// RunResponse wraps a launched or canceled run
type RunResponse struct {
	schemas.MessageResponse
	Run schemas.RunRead `json:"run"`
}

// ImportResponse counts the rows rebuilt from an archive
type ImportResponse struct {
	schemas.MessageResponse
	Volumes int `json:"volumes" example:"2"`
	Sources int `json:"sources" example:"1"`
	Actors  int `json:"actors" example:"1"`
}
