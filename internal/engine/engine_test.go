package engine

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/localnerve/gatesim/internal/schemas"
	"github.com/localnerve/gatesim/internal/units"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9*math.Max(1, math.Abs(b))
}

func testDefinition() Definition {
	angleEnd := 90.0
	detector := schemas.VolumeRead{
		Name:            "detector",
		Mother:          "world",
		Material:        "G4_WATER",
		Translation:     []float64{0, 0, 1},
		TranslationUnit: units.CM,
		Rotation:        schemas.Rotation{Axis: units.Z, Angle: 0},
		Shape:           schemas.VolumeShape{Type: schemas.BoxShape, Unit: units.CM, Size: []float64{1, 2, 3}},
		DynamicParams: schemas.DynamicParams{
			Enabled:        true,
			AngleEnd:       &angleEnd,
			TranslationEnd: []float64{0, 0, 4},
		},
	}
	rmin, rmax := 1.0, 2.0
	ball := schemas.VolumeRead{
		Name:            "ball",
		Mother:          "detector",
		Material:        "G4_Pb",
		Translation:     []float64{0, 0, 0},
		TranslationUnit: units.MM,
		Rotation:        schemas.Rotation{Axis: units.X},
		Shape:           schemas.VolumeShape{Type: schemas.SphereShape, Unit: units.M, Rmin: &rmin, Rmax: &rmax},
	}

	source := schemas.SourceCreate{
		Name:       "xray",
		Position:   &schemas.BoxPosition{Size: []float64{1, 1, 1}, Unit: units.CM},
		FocusPoint: []float64{0, 0, 2},
	}.Resolve()

	hits := schemas.ActorCreate{Name: "hits", Type: schemas.DigitizerHitsCollectionActor, AttachedTo: "detector"}.Resolve()
	proj := schemas.ActorCreate{
		Name:                 "proj",
		Type:                 schemas.DigitizerProjectionActor,
		AttachedTo:           "detector",
		InputDigiCollections: []string{"hits"},
	}.Resolve()

	return Definition{
		Simulation: schemas.SimulationRead{
			Name:                "demo",
			NumRuns:             4,
			RunLen:              0.5,
			OutputDir:           "outputs/demo",
			JSONArchiveFilename: "demo.json",
		},
		Volumes: []schemas.VolumeRead{schemas.WorldVolume(), detector, ball},
		Sources: []schemas.SourceRead{source},
		Actors:  []schemas.ActorRead{hits, proj},
	}
}

func TestBuildSettings(t *testing.T) {
	a, err := Build(testDefinition(), Options{ProgressBar: true})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	s := a.Simulation
	if s.Name != "demo" || s.Visu || !s.ProgressBar {
		t.Errorf("unexpected settings %+v", s)
	}
	if len(s.RunTimingIntervals) != 4 {
		t.Fatalf("expected 4 intervals, got %d", len(s.RunTimingIntervals))
	}
	if s.RunTimingIntervals[1] != [2]float64{0.5e9, 1e9} {
		t.Errorf("unexpected interval %v", s.RunTimingIntervals[1])
	}
	if a.Physics.PhysicsListName != DefaultPhysicsList {
		t.Errorf("unexpected physics list %s", a.Physics.PhysicsListName)
	}
}

func TestBuildVolumes(t *testing.T) {
	a, err := Build(testDefinition(), Options{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	world := a.Volumes["world"]
	if world.Mother != nil || world.Type != BoxVolume || world.Size[0] != 3000 {
		t.Errorf("unexpected world %+v", world)
	}
	if world.DynamicParams != nil {
		t.Error("world should have no dynamic params")
	}

	det := a.Volumes["detector"]
	if *det.Mother != "world" || det.Translation[2] != 10 || det.Size[1] != 20 {
		t.Errorf("unexpected detector %+v", det)
	}
	if det.DynamicParams == nil {
		t.Fatal("expected dynamic params on detector")
	}
	if len(det.DynamicParams.Rotation) != 4 || len(det.DynamicParams.Translation) != 4 {
		t.Fatalf("expected one placement per run, got %+v", det.DynamicParams)
	}
	last := det.DynamicParams.Rotation[3]
	if !almostEqual(last[0][1], -1) || !almostEqual(last[1][0], 1) {
		t.Errorf("expected a 90 degree rotation about z, got %v", last)
	}
	if det.DynamicParams.Translation[0][2] != 10 || det.DynamicParams.Translation[3][2] != 40 {
		t.Errorf("unexpected translations %v", det.DynamicParams.Translation)
	}

	ball := a.Volumes["ball"]
	if ball.Type != SphereVolume || *ball.Rmin != 1000 || *ball.Rmax != 2000 || ball.Size != nil {
		t.Errorf("unexpected sphere %+v", ball)
	}
}

func TestBuildSourceAndActors(t *testing.T) {
	a, err := Build(testDefinition(), Options{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	src := a.Sources["xray"]
	if src.Type != GenericSource || src.Particle != "gamma" || src.AttachedTo != "world" {
		t.Errorf("unexpected source %+v", src)
	}
	if src.Position.Size[0] != 10 || src.Direction.FocusPoint[2] != 20 {
		t.Errorf("position and focus point should use the position unit: %+v", src)
	}
	if !almostEqual(src.Energy.Mono, 0.06) {
		t.Errorf("expected 60 keV as 0.06 MeV, got %v", src.Energy.Mono)
	}
	if !almostEqual(src.Activity, 1e-5) {
		t.Errorf("expected 1e4 Bq in engine units, got %v", src.Activity)
	}

	proj := a.Actors["proj"]
	if proj.Type != string(schemas.DigitizerProjectionActor) || proj.OutputFilename != "output/projection.mhd" {
		t.Errorf("unexpected projection actor %+v", proj)
	}
	if proj.Spacing[0] != 1 || proj.Size[0] != 256 {
		t.Errorf("unexpected projection geometry %+v", proj)
	}
	if a.Actors["hits"].Attributes[0] != "TotalEnergyDeposit" {
		t.Errorf("unexpected hits attributes %v", a.Actors["hits"].Attributes)
	}
}

func TestBuildRejectsUnknownUnit(t *testing.T) {
	def := testDefinition()
	def.Volumes[1].TranslationUnit = "furlong"
	if _, err := Build(def, Options{}); err == nil {
		t.Error("expected an error for an unknown unit")
	}
}

func TestDynamicSingleRun(t *testing.T) {
	def := testDefinition()
	def.Simulation.NumRuns = 1
	a, err := Build(def, Options{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	dp := a.Volumes["detector"].DynamicParams
	if len(dp.Rotation) != 1 || dp.Rotation[0] != units.Identity {
		t.Errorf("a single run keeps the static placement, got %v", dp.Rotation)
	}
}

func TestArchiveWriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "demo.json")

	if _, err := ReadArchive(path); !errors.Is(err, ErrArchiveNotFound) {
		t.Fatalf("expected ErrArchiveNotFound, got %v", err)
	}

	a, err := Build(testDefinition(), Options{Visu: true})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if err := WriteArchive(path, a); err != nil {
		t.Fatalf("WriteArchive failed: %v", err)
	}

	got, err := ReadArchive(path)
	if err != nil {
		t.Fatalf("ReadArchive failed: %v", err)
	}
	if !got.Simulation.Visu || len(got.Volumes) != 3 || len(got.Actors) != 2 {
		t.Errorf("archive did not survive the round trip: %+v", got.Simulation)
	}
	if got.Volumes["detector"].DynamicParams.Rotation[3] != a.Volumes["detector"].DynamicParams.Rotation[3] {
		t.Error("dynamic rotations changed on disk")
	}
}

func TestRestore(t *testing.T) {
	a, err := Build(testDefinition(), Options{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	def, err := Restore(a)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if len(def.Volumes) != 3 || len(def.Sources) != 1 || len(def.Actors) != 2 {
		t.Fatalf("unexpected counts %d %d %d", len(def.Volumes), len(def.Sources), len(def.Actors))
	}

	byName := map[string]schemas.VolumeRead{}
	for _, v := range def.Volumes {
		byName[v.Name] = v
	}
	det := byName["detector"]
	if det.TranslationUnit != units.MM || det.Translation[2] != 10 || det.Shape.Size[2] != 30 {
		t.Errorf("detector not converted back to mm: %+v", det)
	}
	if !det.DynamicParams.Enabled || *det.DynamicParams.AngleEnd != 90 || det.Rotation.Axis != units.Z {
		t.Errorf("unexpected dynamics %+v rotation %+v", det.DynamicParams, det.Rotation)
	}
	if det.DynamicParams.TranslationEnd[2] != 40 {
		t.Errorf("unexpected translation end %v", det.DynamicParams.TranslationEnd)
	}
	if ball := byName["ball"]; *ball.Shape.Rmax != 2000 || ball.Shape.Unit != units.MM {
		t.Errorf("unexpected ball %+v", ball.Shape)
	}

	src := def.Sources[0]
	if *src.Energy.Energy != 60 || src.Energy.Unit != units.KEV || src.Activity != 1e4 {
		t.Errorf("unexpected source %+v", src)
	}
	if src.FocusPoint[2] != 20 || src.Position.Unit != units.MM {
		t.Errorf("unexpected source geometry %+v", src)
	}
}

func TestRestoreWideSweep(t *testing.T) {
	tests := []struct {
		name       string
		axis       units.Axis
		start, end float64
		numRuns    int
	}{
		{"three quarter turn", units.Y, 0, 270, 4},
		{"backwards past half", units.X, 30, -200, 5},
		{"full turn", units.Z, 0, 360, 5},
		{"from a folded start", units.Z, -150, 120, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := testDefinition()
			def.Simulation.NumRuns = tt.numRuns
			det := &def.Volumes[1]
			end := tt.end
			det.Rotation = schemas.Rotation{Axis: tt.axis, Angle: tt.start}
			det.DynamicParams.AngleEnd = &end

			a, err := Build(def, Options{})
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}
			restored, err := Restore(a)
			if err != nil {
				t.Fatalf("Restore failed: %v", err)
			}
			restored.Simulation = def.Simulation

			b, err := Build(restored, Options{})
			if err != nil {
				t.Fatalf("rebuild failed: %v", err)
			}
			want := a.Volumes["detector"].DynamicParams.Rotation
			got := b.Volumes["detector"].DynamicParams.Rotation
			if len(got) != len(want) {
				t.Fatalf("expected %d placements, got %d", len(want), len(got))
			}
			for i := range want {
				for r := 0; r < 3; r++ {
					for c := 0; c < 3; c++ {
						if math.Abs(got[i][r][c]-want[i][r][c]) > 1e-9 {
							t.Fatalf("placement %d differs: got %v, want %v", i, got[i], want[i])
						}
					}
				}
			}
		})
	}
}

func TestRestoreMissingMother(t *testing.T) {
	a, err := Build(testDefinition(), Options{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	delete(a.Volumes, "detector")

	_, err = Restore(a)
	var archiveErr *ArchiveError
	if !errors.As(err, &archiveErr) {
		t.Fatalf("expected an ArchiveError, got %v", err)
	}
	if archiveErr.Detail != "missing volume 'detector' in archive." {
		t.Errorf("unexpected detail %q", archiveErr.Detail)
	}
}
