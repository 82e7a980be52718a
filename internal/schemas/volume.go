package schemas

import (
	"github.com/localnerve/gatesim/internal/units"
)

// VolumeType discriminates volume shapes
type VolumeType string

const (
	BoxShape    VolumeType = "Box"
	SphereShape VolumeType = "Sphere"
)

// WorldVolumeName is the root of every volume tree
const WorldVolumeName = "world"

// Volume defaults
const (
	DefaultMother   = WorldVolumeName
	DefaultMaterial = "G4_AIR"
)

// VolumeShape is either a Box (size) or a Sphere (rmin, rmax), all in Unit
type VolumeShape struct {
	Type VolumeType `json:"type" validate:"required,oneof=Box Sphere" example:"Box"`
	Unit units.Unit `json:"unit,omitempty" validate:"omitempty,length_unit" example:"mm"`
	Size []float64  `json:"size,omitempty" validate:"omitempty,len=3"`
	Rmin *float64   `json:"rmin,omitempty" validate:"omitempty,gte=0"`
	Rmax *float64   `json:"rmax,omitempty" validate:"omitempty,gt=0"`
}

// WithDefaults returns a copy with the unit and the type-specific dimensions filled
func (s VolumeShape) WithDefaults() VolumeShape {
	if s.Unit == "" {
		s.Unit = units.MM
	}
	switch s.Type {
	case BoxShape:
		if s.Size == nil {
			s.Size = []float64{10, 10, 10}
		}
		s.Rmin, s.Rmax = nil, nil
	case SphereShape:
		if s.Rmin == nil {
			s.Rmin = floatPtr(0)
		}
		if s.Rmax == nil {
			s.Rmax = floatPtr(1)
		}
		s.Size = nil
	}
	return s
}

// DynamicParams describes a per-run trajectory from the static placement to the end values
type DynamicParams struct {
	Enabled        bool      `json:"enabled"`
	TranslationEnd []float64 `json:"translation_end,omitempty" validate:"omitempty,len=3"`
	AngleEnd       *float64  `json:"angle_end,omitempty"`
}

// VolumeCreate is the body of POST /api/simulations/:id/volumes
type VolumeCreate struct {
	Name            string         `json:"name" validate:"required,max=255" example:"detector"`
	Mother          *string        `json:"mother" validate:"omitempty,max=255" example:"world"`
	Material        string         `json:"material" validate:"omitempty,max=255" example:"G4_WATER"`
	Translation     []float64      `json:"translation" validate:"omitempty,len=3"`
	TranslationUnit units.Unit     `json:"translation_unit" validate:"omitempty,length_unit" example:"mm"`
	Rotation        *Rotation      `json:"rotation"`
	Shape           *VolumeShape   `json:"shape" validate:"required"`
	DynamicParams   *DynamicParams `json:"dynamic_params"`
}

// Resolve applies defaults and returns the full volume definition
func (v VolumeCreate) Resolve() VolumeRead {
	out := VolumeRead{
		Name:            v.Name,
		Mother:          DefaultMother,
		Material:        v.Material,
		Translation:     cloneFloats(v.Translation),
		TranslationUnit: v.TranslationUnit,
		Rotation:        Rotation{Axis: units.X},
		Shape:           v.Shape.WithDefaults(),
	}
	if v.Mother != nil && *v.Mother != "" {
		out.Mother = *v.Mother
	}
	if out.Material == "" {
		out.Material = DefaultMaterial
	}
	if out.Translation == nil {
		out.Translation = []float64{0, 0, 0}
	}
	if out.TranslationUnit == "" {
		out.TranslationUnit = units.MM
	}
	if v.Rotation != nil {
		out.Rotation = v.Rotation.withDefaults()
	}
	if v.DynamicParams != nil {
		out.DynamicParams = *v.DynamicParams
	}
	return out
}

// VolumeUpdate is the body of PUT /api/simulations/:id/volumes/:name. Nil fields are left alone.
type VolumeUpdate struct {
	Name            *string        `json:"name" validate:"omitempty,min=1,max=255"`
	Mother          *string        `json:"mother" validate:"omitempty,max=255"`
	Material        *string        `json:"material" validate:"omitempty,min=1,max=255"`
	Translation     []float64      `json:"translation" validate:"omitempty,len=3"`
	TranslationUnit *units.Unit    `json:"translation_unit" validate:"omitempty,length_unit"`
	Rotation        *Rotation      `json:"rotation"`
	Shape           *VolumeShape   `json:"shape"`
	DynamicParams   *DynamicParams `json:"dynamic_params"`
}

// Apply merges the set fields of the update into current
func (u VolumeUpdate) Apply(current VolumeRead) VolumeRead {
	if u.Name != nil {
		current.Name = *u.Name
	}
	// an empty mother would detach the volume from the tree
	if u.Mother != nil && *u.Mother != "" {
		current.Mother = *u.Mother
	}
	if u.Material != nil {
		current.Material = *u.Material
	}
	if u.Translation != nil {
		current.Translation = cloneFloats(u.Translation)
	}
	if u.TranslationUnit != nil {
		current.TranslationUnit = *u.TranslationUnit
	}
	if u.Rotation != nil {
		current.Rotation = u.Rotation.withDefaults()
	}
	if u.Shape != nil {
		current.Shape = u.Shape.WithDefaults()
	}
	if u.DynamicParams != nil {
		current.DynamicParams = *u.DynamicParams
	}
	return current
}

// VolumeRead is the full representation of a stored volume
type VolumeRead struct {
	Name            string        `json:"name" example:"detector"`
	Mother          string        `json:"mother,omitempty" example:"world"`
	Material        string        `json:"material" example:"G4_WATER"`
	Translation     []float64     `json:"translation"`
	TranslationUnit units.Unit    `json:"translation_unit" example:"mm"`
	Rotation        Rotation      `json:"rotation"`
	Shape           VolumeShape   `json:"shape"`
	DynamicParams   DynamicParams `json:"dynamic_params"`
}

// WorldVolume is the volume every new simulation starts with
func WorldVolume() VolumeRead {
	return VolumeRead{
		Name:            WorldVolumeName,
		Material:        DefaultMaterial,
		Translation:     []float64{0, 0, 0},
		TranslationUnit: units.MM,
		Rotation:        Rotation{Axis: units.X},
		Shape: VolumeShape{
			Type: BoxShape,
			Unit: units.MM,
			Size: []float64{3000, 3000, 3000},
		},
	}
}
