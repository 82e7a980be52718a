package schemas

import (
	"github.com/localnerve/gatesim/internal/units"
)

// Source defaults
const (
	DefaultAttachedTo = WorldVolumeName
	DefaultParticle   = "gamma"
	DefaultEnergy     = 60.0
	DefaultActivity   = 1e4
)

// PositionType names the supported source position distributions
const PositionBox = "box"

// BoxPosition is a uniform box position distribution
type BoxPosition struct {
	Type        string     `json:"type" validate:"omitempty,eq=box" example:"box"`
	Translation []float64  `json:"translation" validate:"omitempty,len=3"`
	Size        []float64  `json:"size" validate:"omitempty,len=3"`
	Unit        units.Unit `json:"unit" validate:"omitempty,length_unit" example:"mm"`
}

// WithDefaults fills the type, the unit and zero vectors
func (p BoxPosition) WithDefaults() BoxPosition {
	if p.Type == "" {
		p.Type = PositionBox
	}
	if p.Unit == "" {
		p.Unit = units.MM
	}
	if p.Translation == nil {
		p.Translation = []float64{0, 0, 0}
	}
	if p.Size == nil {
		p.Size = []float64{0, 0, 0}
	}
	return p
}

// MonoEnergy is a monoenergetic spectrum
type MonoEnergy struct {
	Energy *float64   `json:"energy" validate:"omitempty,gte=0" example:"60"`
	Unit   units.Unit `json:"unit" validate:"omitempty,energy_unit" example:"keV"`
}

// WithDefaults fills the energy and the unit
func (e MonoEnergy) WithDefaults() MonoEnergy {
	if e.Energy == nil {
		e.Energy = floatPtr(DefaultEnergy)
	}
	if e.Unit == "" {
		e.Unit = units.KEV
	}
	return e
}

// SourceCreate is the body of POST /api/simulations/:id/sources
type SourceCreate struct {
	Name       string       `json:"name" validate:"required,max=255" example:"xray"`
	AttachedTo string       `json:"attached_to" validate:"omitempty,max=255" example:"world"`
	Particle   string       `json:"particle" validate:"omitempty,max=64" example:"gamma"`
	Position   *BoxPosition `json:"position" validate:"required"`
	FocusPoint []float64    `json:"focus_point" validate:"omitempty,len=3"`
	Energy     *MonoEnergy  `json:"energy"`
	Activity   *float64     `json:"activity" validate:"omitempty,gte=0" example:"10000"`
	Unit       units.Unit   `json:"unit" validate:"omitempty,activity_unit" example:"Bq"`
}

// Resolve applies defaults and returns the full source definition
func (s SourceCreate) Resolve() SourceRead {
	out := SourceRead{
		Name:       s.Name,
		AttachedTo: s.AttachedTo,
		Particle:   s.Particle,
		Position:   s.Position.WithDefaults(),
		FocusPoint: cloneFloats(s.FocusPoint),
		Energy:     MonoEnergy{}.WithDefaults(),
		Activity:   DefaultActivity,
		Unit:       s.Unit,
	}
	if out.AttachedTo == "" {
		out.AttachedTo = DefaultAttachedTo
	}
	if out.Particle == "" {
		out.Particle = DefaultParticle
	}
	if out.FocusPoint == nil {
		out.FocusPoint = []float64{0, 0, 0}
	}
	if s.Energy != nil {
		out.Energy = s.Energy.WithDefaults()
	}
	if s.Activity != nil {
		out.Activity = *s.Activity
	}
	if out.Unit == "" {
		out.Unit = units.BQ
	}
	return out
}

// SourceUpdate is the body of PUT /api/simulations/:id/sources/:name. Nil fields are left alone.
type SourceUpdate struct {
	Name       *string      `json:"name" validate:"omitempty,min=1,max=255"`
	AttachedTo *string      `json:"attached_to" validate:"omitempty,min=1,max=255"`
	Particle   *string      `json:"particle" validate:"omitempty,min=1,max=64"`
	Position   *BoxPosition `json:"position"`
	FocusPoint []float64    `json:"focus_point" validate:"omitempty,len=3"`
	Energy     *MonoEnergy  `json:"energy"`
	Activity   *float64     `json:"activity" validate:"omitempty,gte=0"`
	Unit       *units.Unit  `json:"unit" validate:"omitempty,activity_unit"`
}

// Apply merges the set fields of the update into current
func (u SourceUpdate) Apply(current SourceRead) SourceRead {
	if u.Name != nil {
		current.Name = *u.Name
	}
	if u.AttachedTo != nil {
		current.AttachedTo = *u.AttachedTo
	}
	if u.Particle != nil {
		current.Particle = *u.Particle
	}
	if u.Position != nil {
		current.Position = u.Position.WithDefaults()
	}
	if u.FocusPoint != nil {
		current.FocusPoint = cloneFloats(u.FocusPoint)
	}
	if u.Energy != nil {
		current.Energy = u.Energy.WithDefaults()
	}
	if u.Activity != nil {
		current.Activity = *u.Activity
	}
	if u.Unit != nil {
		current.Unit = *u.Unit
	}
	return current
}

// SourceRead is the full representation of a stored source
type SourceRead struct {
	Name       string      `json:"name" example:"xray"`
	AttachedTo string      `json:"attached_to" example:"world"`
	Particle   string      `json:"particle" example:"gamma"`
	Position   BoxPosition `json:"position"`
	FocusPoint []float64   `json:"focus_point"`
	Energy     MonoEnergy  `json:"energy"`
	Activity   float64     `json:"activity" example:"10000"`
	Unit       units.Unit  `json:"unit" example:"Bq"`
}
