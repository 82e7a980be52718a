package engine

import (
	"fmt"

	"github.com/localnerve/gatesim/internal/schemas"
	"github.com/localnerve/gatesim/internal/units"
)

// Definition is everything stored for one simulation
type Definition struct {
	Simulation schemas.SimulationRead
	Volumes    []schemas.VolumeRead
	Sources    []schemas.SourceRead
	Actors     []schemas.ActorRead
}

// Options toggle the engine front end
type Options struct {
	Visu        bool
	ProgressBar bool
}

// Build projects a stored definition into an engine archive
func Build(def Definition, opts Options) (*Archive, error) {
	sim := def.Simulation
	a := &Archive{
		Simulation: Settings{
			Name:                sim.Name,
			OutputDir:           sim.OutputDir,
			JSONArchiveFilename: sim.JSONArchiveFilename,
			RunTimingIntervals:  units.RunTimingIntervals(sim.NumRuns, sim.RunLen),
			Visu:                opts.Visu,
			ProgressBar:         opts.ProgressBar,
			NumberOfThreads:     1,
			RandomSeed:          "auto",
		},
		Volumes: make(map[string]Volume, len(def.Volumes)),
		Sources: make(map[string]Source, len(def.Sources)),
		Actors:  make(map[string]Actor, len(def.Actors)),
		Physics: Physics{PhysicsListName: DefaultPhysicsList},
	}

	for _, v := range def.Volumes {
		ev, err := buildVolume(v, sim.NumRuns)
		if err != nil {
			return nil, err
		}
		a.Volumes[v.Name] = ev
	}
	for _, s := range def.Sources {
		es, err := buildSource(s)
		if err != nil {
			return nil, err
		}
		a.Sources[s.Name] = es
	}
	for _, act := range def.Actors {
		a.Actors[act.Name] = buildActor(act)
	}
	return a, nil
}

func buildVolume(v schemas.VolumeRead, numRuns int) (Volume, error) {
	if err := checkUnits(v.TranslationUnit, v.Shape.Unit); err != nil {
		return Volume{}, fmt.Errorf("volume '%s': %w", v.Name, err)
	}
	rotation, err := units.RotationMatrix(v.Rotation.Axis, v.Rotation.Angle)
	if err != nil {
		return Volume{}, fmt.Errorf("volume '%s': %w", v.Name, err)
	}

	translation := units.ConvertVec(v.Translation, v.TranslationUnit)
	out := Volume{
		Name:        v.Name,
		Material:    v.Material,
		Translation: translation,
		Rotation:    rotation,
	}
	if v.Mother != "" {
		mother := v.Mother
		out.Mother = &mother
	}

	shape := v.Shape
	switch shape.Type {
	case schemas.SphereShape:
		out.Type = SphereVolume
		var rmin, rmax float64
		if shape.Rmin != nil {
			rmin = units.Convert(*shape.Rmin, shape.Unit)
		}
		if shape.Rmax != nil {
			rmax = units.Convert(*shape.Rmax, shape.Unit)
		}
		out.Rmin, out.Rmax = &rmin, &rmax
	default:
		out.Type = BoxVolume
		out.Size = units.ConvertVec(shape.Size, shape.Unit)
	}

	if v.DynamicParams.Enabled {
		dp, err := trajectory(v, translation, numRuns)
		if err != nil {
			return Volume{}, fmt.Errorf("volume '%s': %w", v.Name, err)
		}
		out.DynamicParams = dp
	}
	return out, nil
}

// trajectory interpolates placements from the static values to the end values, one per run
func trajectory(v schemas.VolumeRead, start []float64, numRuns int) (*DynamicParams, error) {
	dp := &DynamicParams{}

	angleEnd := v.Rotation.Angle
	if v.DynamicParams.AngleEnd != nil {
		angleEnd = *v.DynamicParams.AngleEnd
	}
	for _, angle := range units.Linspace(v.Rotation.Angle, angleEnd, numRuns) {
		m, err := units.RotationMatrix(v.Rotation.Axis, angle)
		if err != nil {
			return nil, err
		}
		dp.Rotation = append(dp.Rotation, m)
	}

	if v.DynamicParams.TranslationEnd != nil {
		end := units.ConvertVec(v.DynamicParams.TranslationEnd, v.TranslationUnit)
		dp.Translation = units.LinspaceVec(start, end, numRuns)
	}
	return dp, nil
}

func buildSource(s schemas.SourceRead) (Source, error) {
	pos := s.Position
	if err := checkUnits(pos.Unit, s.Energy.Unit, s.Unit); err != nil {
		return Source{}, fmt.Errorf("source '%s': %w", s.Name, err)
	}

	var energy float64
	if s.Energy.Energy != nil {
		energy = units.Convert(*s.Energy.Energy, s.Energy.Unit)
	}

	return Source{
		Type:       GenericSource,
		Name:       s.Name,
		AttachedTo: s.AttachedTo,
		Particle:   s.Particle,
		Position: Position{
			Type:        schemas.PositionBox,
			Size:        units.ConvertVec(pos.Size, pos.Unit),
			Translation: units.ConvertVec(pos.Translation, pos.Unit),
		},
		// the focus point shares the position unit
		Direction: Direction{Type: "focused", FocusPoint: units.ConvertVec(s.FocusPoint, pos.Unit)},
		Energy:    Energy{Type: "mono", Mono: energy},
		Activity:  units.Convert(s.Activity, s.Unit),
	}, nil
}

func buildActor(a schemas.ActorRead) Actor {
	out := Actor{
		Type:                 string(a.Type),
		Name:                 a.Name,
		AttachedTo:           a.AttachedTo,
		Attributes:           a.Attributes,
		InputDigiCollections: a.InputDigiCollections,
		Size:                 a.Size,
		OriginAsImageCenter:  a.OriginAsImageCenter,
		OutputFilename:       a.OutputFilename,
	}
	if a.Spacing != nil {
		// spacing is always given in mm
		out.Spacing = units.ConvertVec(a.Spacing, units.MM)
	}
	return out
}

func checkUnits(us ...units.Unit) error {
	for _, u := range us {
		if _, err := units.Factor(u); err != nil {
			return err
		}
	}
	return nil
}
