// Package engine projects simulation definitions into the engine's
// configuration archive and drives the engine as a child process.
package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/localnerve/gatesim/internal/units"
)

// DefaultPhysicsList is the physics list the engine loads when none is set
const DefaultPhysicsList = "QGSP_BERT_EMV"

// Engine volume and source type names
const (
	BoxVolume     = "BoxVolume"
	SphereVolume  = "SphereVolume"
	GenericSource = "GenericSource"
)

// ErrArchiveNotFound is returned when a simulation has no archive on disk
var ErrArchiveNotFound = errors.New("simulation archive not found")

// ArchiveError reports an archive that cannot be mapped back onto rows
type ArchiveError struct {
	Detail string
}

func (e *ArchiveError) Error() string {
	return "invalid archive: " + e.Detail
}

// Archive is the engine-native configuration. Lengths are mm, energies MeV, times ns.
type Archive struct {
	Simulation Settings          `json:"simulation"`
	Volumes    map[string]Volume `json:"volumes"`
	Sources    map[string]Source `json:"sources"`
	Actors     map[string]Actor  `json:"actors"`
	Physics    Physics           `json:"physics"`
}

// Settings are the top-level simulation parameters
type Settings struct {
	Name                string       `json:"name"`
	OutputDir           string       `json:"output_dir"`
	JSONArchiveFilename string       `json:"json_archive_filename"`
	RunTimingIntervals  [][2]float64 `json:"run_timing_intervals"`
	Visu                bool         `json:"visu"`
	ProgressBar         bool         `json:"progress_bar"`
	NumberOfThreads     int          `json:"number_of_threads"`
	RandomSeed          string       `json:"random_seed"`
}

// Volume is an engine solid placed in its mother volume
type Volume struct {
	Type          string         `json:"type"`
	Name          string         `json:"name"`
	Mother        *string        `json:"mother"`
	Material      string         `json:"material"`
	Translation   []float64      `json:"translation"`
	Rotation      units.Matrix   `json:"rotation"`
	Size          []float64      `json:"size,omitempty"`
	Rmin          *float64       `json:"rmin,omitempty"`
	Rmax          *float64       `json:"rmax,omitempty"`
	DynamicParams *DynamicParams `json:"dynamic_params,omitempty"`
}

// DynamicParams hold one placement per run
type DynamicParams struct {
	Rotation    []units.Matrix `json:"rotation,omitempty"`
	Translation [][]float64    `json:"translation,omitempty"`
}

// Source is a generic particle source
type Source struct {
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	AttachedTo string    `json:"attached_to"`
	Particle   string    `json:"particle"`
	Position   Position  `json:"position"`
	Direction  Direction `json:"direction"`
	Energy     Energy    `json:"energy"`
	Activity   float64   `json:"activity"`
}

// Position is the source position distribution
type Position struct {
	Type        string    `json:"type"`
	Size        []float64 `json:"size"`
	Translation []float64 `json:"translation"`
}

// Direction is the source direction distribution
type Direction struct {
	Type       string    `json:"type"`
	FocusPoint []float64 `json:"focus_point"`
}

// Energy is the source spectrum
type Energy struct {
	Type string  `json:"type"`
	Mono float64 `json:"mono"`
}

// Actor is an engine output hook
type Actor struct {
	Type                 string    `json:"type"`
	Name                 string    `json:"name"`
	AttachedTo           string    `json:"attached_to,omitempty"`
	Attributes           []string  `json:"attributes,omitempty"`
	InputDigiCollections []string  `json:"input_digi_collections,omitempty"`
	Spacing              []float64 `json:"spacing,omitempty"`
	Size                 []int     `json:"size,omitempty"`
	OriginAsImageCenter  *bool     `json:"origin_as_image_center,omitempty"`
	OutputFilename       string    `json:"output_filename"`
}

// Physics selects the engine physics list
type Physics struct {
	PhysicsListName string `json:"physics_list_name"`
}

// WriteArchive writes a to path through a temporary file and a rename, creating parent directories
func WriteArchive(path string, a *Archive) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".archive-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(a); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("encode archive: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// ReadArchive loads the archive at path
func ReadArchive(path string) (*Archive, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrArchiveNotFound
	}
	if err != nil {
		return nil, err
	}

	var a Archive
	if err := json.Unmarshal(b, &a); err != nil {
		return nil, &ArchiveError{Detail: err.Error()}
	}
	return &a, nil
}
