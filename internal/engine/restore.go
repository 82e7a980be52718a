package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/localnerve/gatesim/internal/schemas"
	"github.com/localnerve/gatesim/internal/units"
)

// Restore maps an archive back onto volume, source and actor definitions in
// mm, keV and Bq. Lists are sorted by name.
func Restore(a *Archive) (Definition, error) {
	var def Definition

	if _, ok := a.Volumes[schemas.WorldVolumeName]; !ok {
		return def, &ArchiveError{Detail: fmt.Sprintf("missing volume '%s' in archive.", schemas.WorldVolumeName)}
	}

	for _, name := range sortedKeys(a.Volumes) {
		ev := a.Volumes[name]
		if ev.Mother != nil {
			if _, ok := a.Volumes[*ev.Mother]; !ok {
				return def, &ArchiveError{Detail: fmt.Sprintf("missing volume '%s' in archive.", *ev.Mother)}
			}
		}
		v, err := restoreVolume(name, ev)
		if err != nil {
			return def, err
		}
		def.Volumes = append(def.Volumes, v)
	}

	for _, name := range sortedKeys(a.Sources) {
		es := a.Sources[name]
		if _, ok := a.Volumes[es.AttachedTo]; !ok {
			return def, &ArchiveError{Detail: fmt.Sprintf("missing volume '%s' in archive.", es.AttachedTo)}
		}
		def.Sources = append(def.Sources, restoreSource(name, es))
	}

	for _, name := range sortedKeys(a.Actors) {
		act, err := restoreActor(name, a.Actors[name])
		if err != nil {
			return def, err
		}
		def.Actors = append(def.Actors, act)
	}
	return def, nil
}

func restoreVolume(name string, ev Volume) (schemas.VolumeRead, error) {
	axis, angle := units.AxisAngle(ev.Rotation)
	v := schemas.VolumeRead{
		Name:            name,
		Material:        ev.Material,
		Translation:     tidyVec(units.FromEngineVec(ev.Translation, units.MM)),
		TranslationUnit: units.MM,
		Rotation:        schemas.Rotation{Axis: axis, Angle: tidy(angle)},
	}
	if ev.Mother != nil {
		v.Mother = *ev.Mother
	}
	if len(v.Translation) != 3 {
		return v, &ArchiveError{Detail: fmt.Sprintf("volume '%s' translation must have 3 components", name)}
	}

	switch ev.Type {
	case BoxVolume:
		if len(ev.Size) != 3 {
			return v, &ArchiveError{Detail: fmt.Sprintf("volume '%s' size must have 3 components", name)}
		}
		v.Shape = schemas.VolumeShape{
			Type: schemas.BoxShape,
			Unit: units.MM,
			Size: tidyVec(units.FromEngineVec(ev.Size, units.MM)),
		}
	case SphereVolume:
		shape := schemas.VolumeShape{Type: schemas.SphereShape, Unit: units.MM}
		rmin, rmax := 0.0, 0.0
		if ev.Rmin != nil {
			rmin = tidy(units.FromEngine(*ev.Rmin, units.MM))
		}
		if ev.Rmax != nil {
			rmax = tidy(units.FromEngine(*ev.Rmax, units.MM))
		}
		shape.Rmin, shape.Rmax = &rmin, &rmax
		v.Shape = shape
	default:
		return v, &ArchiveError{Detail: fmt.Sprintf("volume '%s' has unsupported type '%s'", name, ev.Type)}
	}

	if dp := ev.DynamicParams; dp != nil && (len(dp.Rotation) > 0 || len(dp.Translation) > 0) {
		v.DynamicParams.Enabled = true
		if len(dp.Rotation) > 0 {
			if v.Rotation.Angle == 0 {
				v.Rotation.Axis = trajectoryAxis(dp.Rotation)
			}
			end := tidy(unwrapTrajectory(dp.Rotation, v.Rotation.Axis, angle))
			v.DynamicParams.AngleEnd = &end
		}
		if n := len(dp.Translation); n > 0 {
			v.DynamicParams.TranslationEnd = tidyVec(units.FromEngineVec(dp.Translation[n-1], units.MM))
		}
	}
	return v, nil
}

// trajectoryAxis is the axis of the first placement that rotates at all
func trajectoryAxis(rotations []units.Matrix) units.Axis {
	for _, m := range rotations {
		if axis, angle := units.AxisAngle(m); angle != 0 {
			return axis
		}
	}
	return units.X
}

// unwrapTrajectory follows the placements from the static angle and returns the final angle.
// Each step between placements is taken as the shorter turn, so sweeps past 180 degrees
// survive as long as no single step reaches 180.
func unwrapTrajectory(rotations []units.Matrix, axis units.Axis, start float64) float64 {
	prev := units.AngleAbout(rotations[0], axis)
	acc := start + units.WrapAngle(prev-start)
	for _, m := range rotations[1:] {
		cur := units.AngleAbout(m, axis)
		acc += units.WrapAngle(cur - prev)
		prev = cur
	}
	return acc
}

func restoreSource(name string, es Source) schemas.SourceRead {
	energy := tidy(units.FromEngine(es.Energy.Mono, units.KEV))
	return schemas.SourceRead{
		Name:       name,
		AttachedTo: es.AttachedTo,
		Particle:   es.Particle,
		Position: schemas.BoxPosition{
			Type:        schemas.PositionBox,
			Translation: tidyVec(units.FromEngineVec(es.Position.Translation, units.MM)),
			Size:        tidyVec(units.FromEngineVec(es.Position.Size, units.MM)),
			Unit:        units.MM,
		},
		FocusPoint: tidyVec(units.FromEngineVec(es.Direction.FocusPoint, units.MM)),
		Energy:     schemas.MonoEnergy{Energy: &energy, Unit: units.KEV},
		Activity:   tidy(units.FromEngine(es.Activity, units.BQ)),
		Unit:       units.BQ,
	}
}

func restoreActor(name string, ea Actor) (schemas.ActorRead, error) {
	t := schemas.ActorType(ea.Type)
	if !t.Valid() {
		return schemas.ActorRead{}, &ArchiveError{Detail: fmt.Sprintf("actor '%s' has unsupported type '%s'", name, ea.Type)}
	}
	cfg := schemas.ActorConfig{
		AttachedTo:           ea.AttachedTo,
		Attributes:           ea.Attributes,
		InputDigiCollections: ea.InputDigiCollections,
		Size:                 ea.Size,
		OriginAsImageCenter:  ea.OriginAsImageCenter,
		OutputFilename:       ea.OutputFilename,
	}
	if ea.Spacing != nil {
		cfg.Spacing = tidyVec(units.FromEngineVec(ea.Spacing, units.MM))
	}
	return schemas.ActorRead{Name: name, Type: t, ActorConfig: cfg.Normalize(t)}, nil
}

// tidy drops floating point noise left by unit round trips
func tidy(v float64) float64 {
	r := math.Round(v*1e9) / 1e9
	if r == 0 {
		return 0
	}
	return r
}

func tidyVec(v []float64) []float64 {
	for i := range v {
		v[i] = tidy(v[i])
	}
	return v
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
