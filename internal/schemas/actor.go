package schemas

import (
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/localnerve/gatesim/internal/types"
)

// ActorType discriminates actor configurations
type ActorType string

const (
	SimulationStatisticsActor    ActorType = "SimulationStatisticsActor"
	DigitizerHitsCollectionActor ActorType = "DigitizerHitsCollectionActor"
	DigitizerProjectionActor     ActorType = "DigitizerProjectionActor"
)

var actorDefaults = map[ActorType]ActorConfig{
	SimulationStatisticsActor: {
		OutputFilename: "output/simulation_stats.txt",
	},
	DigitizerHitsCollectionActor: {
		Attributes:     []string{"TotalEnergyDeposit"},
		OutputFilename: "output/hits.root",
	},
	DigitizerProjectionActor: {
		Spacing:             []float64{1, 1},
		Size:                []int{256, 256},
		OriginAsImageCenter: boolPtr(true),
		OutputFilename:      "output/projection.mhd",
	},
}

// Valid reports whether t names a supported actor
func (t ActorType) Valid() bool {
	_, ok := actorDefaults[t]
	return ok
}

func actorTypeNames() []string {
	names := make([]string, 0, len(actorDefaults))
	for t := range actorDefaults {
		names = append(names, string(t))
	}
	sort.Strings(names)
	return names
}

// ActorConfig holds the type-specific actor fields. Unused fields stay empty.
type ActorConfig struct {
	AttachedTo           string    `json:"attached_to,omitempty" example:"detector"`
	Attributes           []string  `json:"attributes,omitempty"`
	InputDigiCollections []string  `json:"input_digi_collections,omitempty"`
	Spacing              []float64 `json:"spacing,omitempty"`
	Size                 []int     `json:"size,omitempty"`
	OriginAsImageCenter  *bool     `json:"origin_as_image_center,omitempty"`
	OutputFilename       string    `json:"output_filename,omitempty" example:"output/hits.root"`
}

// Normalize fills defaults for t and clears the fields t does not use
func (c ActorConfig) Normalize(t ActorType) ActorConfig {
	def := actorDefaults[t]
	out := ActorConfig{OutputFilename: c.OutputFilename}
	if out.OutputFilename == "" {
		out.OutputFilename = def.OutputFilename
	}

	switch t {
	case DigitizerHitsCollectionActor:
		out.AttachedTo = c.AttachedTo
		out.Attributes = c.Attributes
		if len(out.Attributes) == 0 {
			out.Attributes = append([]string(nil), def.Attributes...)
		}
	case DigitizerProjectionActor:
		out.AttachedTo = c.AttachedTo
		out.InputDigiCollections = c.InputDigiCollections
		out.Spacing = c.Spacing
		if out.Spacing == nil {
			out.Spacing = cloneFloats(def.Spacing)
		}
		out.Size = c.Size
		if out.Size == nil {
			out.Size = append([]int(nil), def.Size...)
		}
		out.OriginAsImageCenter = c.OriginAsImageCenter
		if out.OriginAsImageCenter == nil {
			out.OriginAsImageCenter = boolPtr(*def.OriginAsImageCenter)
		}
	}
	return out
}

// ActorCreate is the body of POST /api/simulations/:id/actors
type ActorCreate struct {
	Name                 string                 `json:"name" validate:"required,max=255" example:"hits"`
	Type                 ActorType              `json:"type" validate:"required,actor_type" example:"DigitizerHitsCollectionActor"`
	AttachedTo           string                 `json:"attached_to" validate:"required_unless=Type SimulationStatisticsActor,max=255" example:"detector"`
	Attributes           types.FlexList[string] `json:"attributes" swaggertype:"array,string"`
	InputDigiCollections types.FlexList[string] `json:"input_digi_collections" swaggertype:"array,string"`
	Spacing              []float64              `json:"spacing" validate:"omitempty,len=2"`
	Size                 []int                  `json:"size" validate:"omitempty,len=2"`
	OriginAsImageCenter  *bool                  `json:"origin_as_image_center"`
	OutputFilename       string                 `json:"output_filename" validate:"omitempty,max=1024"`
}

// Resolve applies defaults and returns the full actor definition
func (a ActorCreate) Resolve() ActorRead {
	cfg := ActorConfig{
		AttachedTo:           a.AttachedTo,
		Attributes:           a.Attributes.Slice(),
		InputDigiCollections: a.InputDigiCollections.Slice(),
		Spacing:              cloneFloats(a.Spacing),
		Size:                 a.Size,
		OriginAsImageCenter:  a.OriginAsImageCenter,
		OutputFilename:       a.OutputFilename,
	}
	return ActorRead{
		Name:        a.Name,
		Type:        a.Type,
		ActorConfig: cfg.Normalize(a.Type),
	}
}

// validateActorCreate requires at least one digi collection for projections
func validateActorCreate(sl validator.StructLevel) {
	a := sl.Current().Interface().(ActorCreate)
	if a.Type == DigitizerProjectionActor && len(a.InputDigiCollections) == 0 {
		sl.ReportError(a.InputDigiCollections, "input_digi_collections", "InputDigiCollections", "required", "")
	}
}

// ActorConfigUpdate carries the fields of an actor update. Type must match the stored actor.
type ActorConfigUpdate struct {
	Type                 ActorType              `json:"type" validate:"required,actor_type" example:"DigitizerHitsCollectionActor"`
	AttachedTo           *string                `json:"attached_to" validate:"omitempty,min=1,max=255"`
	Attributes           types.FlexList[string] `json:"attributes" swaggertype:"array,string"`
	InputDigiCollections types.FlexList[string] `json:"input_digi_collections" validate:"omitempty,min=1" swaggertype:"array,string"`
	Spacing              []float64              `json:"spacing" validate:"omitempty,len=2"`
	Size                 []int                  `json:"size" validate:"omitempty,len=2"`
	OriginAsImageCenter  *bool                  `json:"origin_as_image_center"`
	OutputFilename       *string                `json:"output_filename" validate:"omitempty,min=1,max=1024"`
}

// ActorUpdate is the body of PUT /api/simulations/:id/actors/:name
type ActorUpdate struct {
	Name   *string            `json:"name" validate:"omitempty,min=1,max=255"`
	Config *ActorConfigUpdate `json:"config"`
}

// Apply merges the set fields of the update into current. The caller checks the type.
func (u ActorUpdate) Apply(current ActorRead) ActorRead {
	if u.Name != nil {
		current.Name = *u.Name
	}
	if u.Config == nil {
		return current
	}

	cfg := current.ActorConfig
	c := u.Config
	if c.AttachedTo != nil {
		cfg.AttachedTo = *c.AttachedTo
	}
	if c.Attributes != nil {
		cfg.Attributes = c.Attributes.Slice()
	}
	if c.InputDigiCollections != nil {
		cfg.InputDigiCollections = c.InputDigiCollections.Slice()
	}
	if c.Spacing != nil {
		cfg.Spacing = cloneFloats(c.Spacing)
	}
	if c.Size != nil {
		cfg.Size = c.Size
	}
	if c.OriginAsImageCenter != nil {
		cfg.OriginAsImageCenter = c.OriginAsImageCenter
	}
	if c.OutputFilename != nil {
		cfg.OutputFilename = *c.OutputFilename
	}
	current.ActorConfig = cfg.Normalize(current.Type)
	return current
}

// ActorRead is the flattened representation of a stored actor
type ActorRead struct {
	Name string    `json:"name" example:"hits"`
	Type ActorType `json:"type" example:"DigitizerHitsCollectionActor"`
	ActorConfig
}
