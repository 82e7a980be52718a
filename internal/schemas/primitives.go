package schemas

import (
	"time"

	"github.com/localnerve/gatesim/internal/units"
)

// Rotation is a single-axis rotation in degrees
type Rotation struct {
	Axis  units.Axis `json:"axis" validate:"omitempty,axis" example:"x"`
	Angle float64    `json:"angle" example:"0"`
}

// withDefaults fills the zero axis
func (r Rotation) withDefaults() Rotation {
	if r.Axis == "" {
		r.Axis = units.X
	}
	return r
}

// MessageResponse is the body of successful mutations
type MessageResponse struct {
	Message   string `json:"message" example:"Simulation 'demo' created successfully"`
	Ok        bool   `json:"ok" example:"true"`
	Timestamp string `json:"timestamp" example:"2026-01-01T00:00:00Z"`
}

// NewMessage builds a MessageResponse stamped with the current time
func NewMessage(message string) MessageResponse {
	return MessageResponse{
		Message:   message,
		Ok:        true,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func cloneFloats(v []float64) []float64 {
	if v == nil {
		return nil
	}
	out := make([]float64, len(v))
	copy(out, v)
	return out
}

func floatPtr(v float64) *float64 { return &v }

func boolPtr(v bool) *bool { return &v }
