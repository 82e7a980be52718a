package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/localnerve/gatesim/internal/blob"
	"github.com/localnerve/gatesim/internal/engine"
	"github.com/localnerve/gatesim/internal/logging"
	"github.com/localnerve/gatesim/internal/models"
	"github.com/localnerve/gatesim/internal/schemas"
	"github.com/localnerve/gatesim/internal/testhelpers"
	"github.com/localnerve/gatesim/internal/types"
	"github.com/localnerve/gatesim/internal/units"
)

// fakeRunner records engine invocations. Run blocks on hold when set.
type fakeRunner struct {
	mu     sync.Mutex
	runs   []engine.RunRequest
	recons []engine.ReconRequest
	runErr error
	hold   chan struct{}
}

func (f *fakeRunner) Run(ctx context.Context, req engine.RunRequest) error {
	f.mu.Lock()
	f.runs = append(f.runs, req)
	hold := f.hold
	f.mu.Unlock()

	if hold != nil {
		select {
		case <-hold:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return f.runErr
}

func (f *fakeRunner) Reconstruct(_ context.Context, req engine.ReconRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recons = append(f.recons, req)
	return os.WriteFile(req.OutputPath, []byte("ObjectType = Image\n"), 0o644)
}

type fixture struct {
	deps     Deps
	runner   *fakeRunner
	sims     *SimulationService
	volumes  *VolumeService
	sources  *SourceService
	actors   *ActorService
	launcher *engine.Launcher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testhelpers.NewDB(t)
	log := logging.Nop()
	runner := &fakeRunner{}
	launcher := engine.NewLauncher(runner, 2, 0, RunHooks(db, log), log)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = launcher.Shutdown(ctx)
	})

	deps := Deps{
		DB:         db,
		OutputRoot: t.TempDir(),
		Launcher:   launcher,
		Blobs:      blob.NewMemory(),
		Log:        log,
	}
	return &fixture{
		deps:     deps,
		runner:   runner,
		sims:     NewSimulationService(deps),
		volumes:  NewVolumeService(deps),
		sources:  NewSourceService(deps),
		actors:   NewActorService(deps),
		launcher: launcher,
	}
}

func (f *fixture) createSimulation(t *testing.T, name string) schemas.SimulationRead {
	t.Helper()
	sim, err := f.sims.Create(schemas.SimulationCreate{Name: name})
	if err != nil {
		t.Fatalf("Failed to create simulation %q: %v", name, err)
	}
	return sim
}

// drain waits for every submitted run to finish
func (f *fixture) drain(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := f.launcher.Shutdown(ctx); err != nil {
		t.Fatalf("Launcher did not drain: %v", err)
	}
}

func readArchive(t *testing.T, sim schemas.SimulationRead) *engine.Archive {
	t.Helper()
	a, err := engine.ReadArchive(filepath.Join(sim.OutputDir, sim.JSONArchiveFilename))
	if err != nil {
		t.Fatalf("Failed to read archive: %v", err)
	}
	return a
}

func expectAPIError(t *testing.T, err error, code int, message string) {
	t.Helper()
	var ce *types.CustomError
	if !errors.As(err, &ce) {
		t.Fatalf("Expected *types.CustomError, got %T: %v", err, err)
	}
	if ce.Code != code {
		t.Errorf("Expected code %d, got %d (%s)", code, ce.Code, ce.Message)
	}
	if message != "" && ce.Message != message {
		t.Errorf("Expected message %q, got %q", message, ce.Message)
	}
}

func strPtr(s string) *string { return &s }

func boxVolume(name string) schemas.VolumeCreate {
	return schemas.VolumeCreate{
		Name: name,
		Shape: &schemas.VolumeShape{
			Type: schemas.BoxShape,
			Unit: units.CM,
			Size: []float64{1, 2, 3},
		},
	}
}

func xraySource(name, attachedTo string) schemas.SourceCreate {
	return schemas.SourceCreate{
		Name:       name,
		AttachedTo: attachedTo,
		Position:   &schemas.BoxPosition{Type: schemas.PositionBox},
	}
}

func TestCreateSimulation(t *testing.T) {
	f := newFixture(t)
	sim := f.createSimulation(t, "demo")

	if sim.NumRuns != 1 || sim.RunLen != 1.0 {
		t.Errorf("Expected default num_runs/run_len, got %d/%v", sim.NumRuns, sim.RunLen)
	}
	if sim.OutputDir != filepath.Join(f.deps.OutputRoot, "demo") {
		t.Errorf("Unexpected output dir %s", sim.OutputDir)
	}
	if sim.JSONArchiveFilename != "demo.json" {
		t.Errorf("Unexpected archive filename %s", sim.JSONArchiveFilename)
	}

	a := readArchive(t, sim)
	if _, ok := a.Volumes[schemas.WorldVolumeName]; !ok {
		t.Error("Expected world volume in archive")
	}
	if len(a.Simulation.RunTimingIntervals) != 1 {
		t.Errorf("Expected 1 run interval, got %d", len(a.Simulation.RunTimingIntervals))
	}

	names, err := f.volumes.List(sim.ID)
	if err != nil {
		t.Fatalf("Failed to list volumes: %v", err)
	}
	if len(names) != 1 || names[0] != schemas.WorldVolumeName {
		t.Errorf("Expected only the world volume, got %v", names)
	}

	_, err = f.sims.Create(schemas.SimulationCreate{Name: "demo"})
	expectAPIError(t, err, http.StatusConflict, "Simulation with that name already exists")

	list, err := f.sims.List()
	if err != nil {
		t.Fatalf("Failed to list simulations: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("Expected 1 simulation, got %d", len(list))
	}
}

func TestGetSimulationNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.sims.Get(42)
	expectAPIError(t, err, http.StatusNotFound, "Simulation with id 42 not found")
}

func TestUpdateSimulationRename(t *testing.T) {
	f := newFixture(t)
	sim := f.createSimulation(t, "demo")

	numRuns := types.Count(3)
	runLen := 0.5
	updated, err := f.sims.Update(sim.ID, schemas.SimulationUpdate{
		Name:    strPtr("renamed"),
		NumRuns: &numRuns,
		RunLen:  &runLen,
	})
	if err != nil {
		t.Fatalf("Failed to update simulation: %v", err)
	}

	if updated.OutputDir != filepath.Join(f.deps.OutputRoot, "renamed") {
		t.Errorf("Unexpected output dir %s", updated.OutputDir)
	}
	if _, err := os.Stat(sim.OutputDir); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected old output dir to be gone, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(updated.OutputDir, "demo.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected stale archive to be removed, got %v", err)
	}

	a := readArchive(t, updated)
	if a.Simulation.Name != "renamed" {
		t.Errorf("Expected archive name renamed, got %s", a.Simulation.Name)
	}
	if len(a.Simulation.RunTimingIntervals) != 3 {
		t.Errorf("Expected 3 run intervals, got %d", len(a.Simulation.RunTimingIntervals))
	}

	other := f.createSimulation(t, "other")
	_, err = f.sims.Update(other.ID, schemas.SimulationUpdate{Name: strPtr("renamed")})
	expectAPIError(t, err, http.StatusConflict, "Simulation with that name already exists")
}

func TestDeleteSimulation(t *testing.T) {
	f := newFixture(t)
	sim := f.createSimulation(t, "demo")
	if _, err := f.volumes.Create(sim.ID, boxVolume("detector")); err != nil {
		t.Fatalf("Failed to create volume: %v", err)
	}

	name, err := f.sims.Delete(sim.ID)
	if err != nil {
		t.Fatalf("Failed to delete simulation: %v", err)
	}
	if name != "demo" {
		t.Errorf("Expected deleted name demo, got %s", name)
	}
	if _, err := os.Stat(sim.OutputDir); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected output dir to be removed, got %v", err)
	}

	var count int64
	f.deps.DB.Table("volumes").Where("simulation_id = ?", sim.ID).Count(&count)
	if count != 0 {
		t.Errorf("Expected volumes to be deleted, found %d", count)
	}

	_, err = f.sims.Delete(sim.ID)
	expectAPIError(t, err, http.StatusNotFound, "")
}

func TestVolumeLifecycle(t *testing.T) {
	f := newFixture(t)
	sim := f.createSimulation(t, "demo")

	created, err := f.volumes.Create(sim.ID, boxVolume("detector"))
	if err != nil {
		t.Fatalf("Failed to create volume: %v", err)
	}
	if created.Mother != schemas.WorldVolumeName || created.Material != schemas.DefaultMaterial {
		t.Errorf("Expected defaults, got mother=%s material=%s", created.Mother, created.Material)
	}

	_, err = f.volumes.Create(sim.ID, boxVolume("detector"))
	expectAPIError(t, err, http.StatusConflict, "Volume 'detector' already exists")

	// mother names are resolved by the engine, not here
	orphan := boxVolume("orphan")
	orphan.Mother = strPtr("nowhere")
	if _, err := f.volumes.Create(sim.ID, orphan); err != nil {
		t.Fatalf("Expected a dangling mother to be stored, got %v", err)
	}
	if v := readArchive(t, sim).Volumes["orphan"]; v.Mother == nil || *v.Mother != "nowhere" {
		t.Errorf("Expected archived mother 'nowhere', got %+v", v.Mother)
	}

	_, err = f.volumes.Get(sim.ID, "missing")
	expectAPIError(t, err, http.StatusNotFound, "Volume not found")

	if _, err := f.sources.Create(sim.ID, xraySource("xray", "detector")); err != nil {
		t.Fatalf("Failed to create source: %v", err)
	}

	_, err = f.volumes.Update(sim.ID, "detector", schemas.VolumeUpdate{
		Name:     strPtr("panel"),
		Material: strPtr("G4_WATER"),
	})
	if err != nil {
		t.Fatalf("Failed to update volume: %v", err)
	}
	src, err := f.sources.Get(sim.ID, "xray")
	if err != nil {
		t.Fatalf("Failed to read source: %v", err)
	}
	if src.AttachedTo != "panel" {
		t.Errorf("Expected source to follow rename, got %s", src.AttachedTo)
	}

	a := readArchive(t, sim)
	if v, ok := a.Volumes["panel"]; !ok || v.Material != "G4_WATER" {
		t.Errorf("Expected renamed volume in archive, got %+v", a.Volumes)
	}
	if _, ok := a.Volumes["detector"]; ok {
		t.Error("Expected old volume name to be gone from archive")
	}

	if err := f.volumes.Delete(sim.ID, "panel"); err != nil {
		t.Fatalf("Failed to delete volume: %v", err)
	}
	a = readArchive(t, sim)
	if _, ok := a.Volumes["panel"]; ok {
		t.Error("Expected deleted volume to be gone from archive")
	}
	if a.Sources["xray"].AttachedTo != "panel" {
		t.Errorf("Expected source to keep its attachment, got %s", a.Sources["xray"].AttachedTo)
	}

	err = f.volumes.Delete(sim.ID, "panel")
	expectAPIError(t, err, http.StatusNotFound, "Volume not found")
}

func TestSourceLifecycle(t *testing.T) {
	f := newFixture(t)
	sim := f.createSimulation(t, "demo")

	created, err := f.sources.Create(sim.ID, xraySource("xray", ""))
	if err != nil {
		t.Fatalf("Failed to create source: %v", err)
	}
	if created.AttachedTo != schemas.WorldVolumeName || created.Particle != "gamma" {
		t.Errorf("Expected defaults, got %+v", created)
	}

	_, err = f.sources.Create(sim.ID, xraySource("xray", ""))
	expectAPIError(t, err, http.StatusConflict, "Source 'xray' already exists!")

	_, err = f.sources.Get(sim.ID, "beam")
	expectAPIError(t, err, http.StatusNotFound, "Source 'beam' not found in simulation '1'.")

	if _, err := f.sources.Create(sim.ID, xraySource("stray", "nowhere")); err != nil {
		t.Fatalf("Expected an unresolved attachment to be stored, got %v", err)
	}

	activity := 5e5
	updated, err := f.sources.Update(sim.ID, "xray", schemas.SourceUpdate{Activity: &activity})
	if err != nil {
		t.Fatalf("Failed to update source: %v", err)
	}
	if updated.Activity != activity {
		t.Errorf("Expected activity %v, got %v", activity, updated.Activity)
	}

	names, err := f.sources.List(sim.ID)
	if err != nil || len(names) != 1 {
		t.Fatalf("Expected one source, got %v (%v)", names, err)
	}
	if err := f.sources.Delete(sim.ID, "xray"); err != nil {
		t.Fatalf("Failed to delete source: %v", err)
	}
	err = f.sources.Delete(sim.ID, "xray")
	expectAPIError(t, err, http.StatusNotFound, "")
}

func TestActorLifecycle(t *testing.T) {
	f := newFixture(t)
	sim := f.createSimulation(t, "demo")
	if _, err := f.volumes.Create(sim.ID, boxVolume("detector")); err != nil {
		t.Fatalf("Failed to create volume: %v", err)
	}

	hits, err := f.actors.Create(sim.ID, schemas.ActorCreate{
		Name:       "hits",
		Type:       schemas.DigitizerHitsCollectionActor,
		AttachedTo: "detector",
	})
	if err != nil {
		t.Fatalf("Failed to create actor: %v", err)
	}
	if hits.OutputFilename != "output/hits.root" {
		t.Errorf("Expected default output filename, got %s", hits.OutputFilename)
	}

	_, err = f.actors.Create(sim.ID, schemas.ActorCreate{Name: "stats", Type: schemas.SimulationStatisticsActor})
	if err != nil {
		t.Fatalf("Failed to create stats actor: %v", err)
	}

	_, err = f.actors.Update(sim.ID, "hits", schemas.ActorUpdate{
		Config: &schemas.ActorConfigUpdate{Type: schemas.DigitizerProjectionActor},
	})
	expectAPIError(t, err, http.StatusUnprocessableEntity, "")

	updated, err := f.actors.Update(sim.ID, "hits", schemas.ActorUpdate{
		Config: &schemas.ActorConfigUpdate{
			Type:       schemas.DigitizerHitsCollectionActor,
			Attributes: types.FlexList[string]{"TotalEnergyDeposit", "PostPosition"},
		},
	})
	if err != nil {
		t.Fatalf("Failed to update actor: %v", err)
	}
	if len(updated.Attributes) != 2 {
		t.Errorf("Expected 2 attributes, got %v", updated.Attributes)
	}

	a := readArchive(t, sim)
	if len(a.Actors) != 2 {
		t.Errorf("Expected 2 actors in archive, got %d", len(a.Actors))
	}

	names, err := f.actors.List(sim.ID)
	if err != nil || len(names) != 2 {
		t.Fatalf("Expected two actors, got %v (%v)", names, err)
	}
	if err := f.actors.Delete(sim.ID, "stats"); err != nil {
		t.Fatalf("Failed to delete actor: %v", err)
	}
	_, err = f.actors.Get(sim.ID, "stats")
	expectAPIError(t, err, http.StatusNotFound, "Actor 'stats' not found in simulation '1'.")
}

func TestImportSimulation(t *testing.T) {
	f := newFixture(t)
	sim := f.createSimulation(t, "demo")
	if _, err := f.volumes.Create(sim.ID, boxVolume("detector")); err != nil {
		t.Fatalf("Failed to create volume: %v", err)
	}
	if _, err := f.sources.Create(sim.ID, xraySource("xray", "detector")); err != nil {
		t.Fatalf("Failed to create source: %v", err)
	}

	// Drop the rows behind the service's back; the archive still has them
	f.deps.DB.Exec("DELETE FROM sources")
	f.deps.DB.Exec("DELETE FROM volumes WHERE name = ?", "detector")

	res, err := f.sims.Import(sim.ID)
	if err != nil {
		t.Fatalf("Failed to import: %v", err)
	}
	if res.Volumes != 2 || res.Sources != 1 || res.Actors != 0 {
		t.Errorf("Unexpected import counts %+v", res)
	}

	v, err := f.volumes.Get(sim.ID, "detector")
	if err != nil {
		t.Fatalf("Failed to read imported volume: %v", err)
	}
	if v.TranslationUnit != units.MM || v.Shape.Unit != units.MM {
		t.Errorf("Expected imported lengths in mm, got %s/%s", v.TranslationUnit, v.Shape.Unit)
	}
	if v.Shape.Size[0] != 10 || v.Shape.Size[2] != 30 {
		t.Errorf("Expected 1x2x3 cm restored as 10x20x30 mm, got %v", v.Shape.Size)
	}

	archivePath := filepath.Join(sim.OutputDir, sim.JSONArchiveFilename)
	if err := os.WriteFile(archivePath, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = f.sims.Import(sim.ID)
	expectAPIError(t, err, http.StatusBadRequest, "")

	if err := os.Remove(archivePath); err != nil {
		t.Fatal(err)
	}
	_, err = f.sims.Import(sim.ID)
	expectAPIError(t, err, http.StatusNotFound, "Simulation configuration file not found")
}

func TestImportKeepsWideRotationSweep(t *testing.T) {
	f := newFixture(t)
	sim := f.createSimulation(t, "sweep")
	runs := types.Count(4)
	if _, err := f.sims.Update(sim.ID, schemas.SimulationUpdate{NumRuns: &runs}); err != nil {
		t.Fatalf("Failed to set num_runs: %v", err)
	}

	angleEnd := 270.0
	in := boxVolume("detector")
	in.Rotation = &schemas.Rotation{Axis: units.Y, Angle: 0}
	in.DynamicParams = &schemas.DynamicParams{Enabled: true, AngleEnd: &angleEnd}
	if _, err := f.volumes.Create(sim.ID, in); err != nil {
		t.Fatalf("Failed to create volume: %v", err)
	}
	before := readArchive(t, sim).Volumes["detector"].DynamicParams.Rotation

	if _, err := f.sims.Import(sim.ID); err != nil {
		t.Fatalf("Failed to import: %v", err)
	}
	v, err := f.volumes.Get(sim.ID, "detector")
	if err != nil {
		t.Fatalf("Failed to read imported volume: %v", err)
	}
	if v.Rotation.Axis != units.Y || v.DynamicParams.AngleEnd == nil || *v.DynamicParams.AngleEnd != 270 {
		t.Errorf("Expected a y sweep to 270, got %+v %+v", v.Rotation, v.DynamicParams)
	}

	// any mutation rewrites the archive from the imported rows
	if _, err := f.volumes.Update(sim.ID, "detector", schemas.VolumeUpdate{Material: strPtr("G4_WATER")}); err != nil {
		t.Fatalf("Failed to update volume: %v", err)
	}
	after := readArchive(t, sim).Volumes["detector"].DynamicParams.Rotation
	if len(after) != len(before) || len(after) != 4 {
		t.Fatalf("Expected 4 placements, got %d and %d", len(before), len(after))
	}
	for i := range before {
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				if math.Abs(after[i][r][c]-before[i][r][c]) > 1e-9 {
					t.Fatalf("Placement %d changed after import: %v became %v", i, before[i], after[i])
				}
			}
		}
	}
}

func TestExportStreamsOutputDirectory(t *testing.T) {
	f := newFixture(t)
	store, err := blob.NewFilesystem(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to open blob store: %v", err)
	}
	f.sims.Blobs = store

	sim := f.createSimulation(t, "bundle")
	files := map[string][]byte{
		"run_0/hits.root": bytes.Repeat([]byte("h"), 64*1024),
		"run_1/hits.root": bytes.Repeat([]byte("i"), 32*1024),
		"projection.mhd":  []byte("ObjectType = Image\n"),
	}
	for name, data := range files {
		p := filepath.Join(sim.OutputDir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, data, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	spoolDir := t.TempDir()
	t.Setenv("TMPDIR", spoolDir)

	res, err := f.sims.Export(context.Background(), sim.ID)
	if err != nil {
		t.Fatalf("Failed to export: %v", err)
	}

	info, rc, err := store.Get(context.Background(), res.Key)
	if err != nil {
		t.Fatalf("Failed to read export %s: %v", res.Key, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size != int64(len(data)) || res.Size != info.Size {
		t.Errorf("Expected size %d, got stored %d reported %d", len(data), info.Size, res.Size)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("Export is not a zip: %v", err)
	}
	entries := map[string]*zip.File{}
	for _, zf := range zr.File {
		entries[zf.Name] = zf
	}
	for name, want := range files {
		zf, ok := entries["bundle/"+name]
		if !ok {
			t.Errorf("Missing %s in export, have %v", name, zr.File)
			continue
		}
		r, err := zf.Open()
		if err != nil {
			t.Fatal(err)
		}
		got, err := io.ReadAll(r)
		r.Close()
		if err != nil || !bytes.Equal(got, want) {
			t.Errorf("Content of %s differs (%d bytes, err %v)", name, len(got), err)
		}
	}
	for _, name := range []string{"bundle/" + sim.JSONArchiveFilename, "bundle/manifest.yaml"} {
		if _, ok := entries[name]; !ok {
			t.Errorf("Missing %s in export", name)
		}
	}

	left, err := os.ReadDir(spoolDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(left) != 0 {
		t.Errorf("Expected the spool file to be removed, found %d entries", len(left))
	}
}

func TestRunAndView(t *testing.T) {
	f := newFixture(t)
	sim := f.createSimulation(t, "demo")

	run, err := f.sims.Run(sim.ID)
	if err != nil {
		t.Fatalf("Failed to launch run: %v", err)
	}
	if run.Status != "queued" || run.Mode != "run" {
		t.Errorf("Expected queued run, got %s/%s", run.Mode, run.Status)
	}
	if !readArchive(t, sim).Simulation.ProgressBar {
		t.Error("Expected progress bar for a run")
	}

	view, err := f.sims.View(sim.ID)
	if err != nil {
		t.Fatalf("Failed to launch view: %v", err)
	}
	if !readArchive(t, sim).Simulation.Visu {
		t.Error("Expected visu for a view")
	}

	f.drain(t)

	for _, id := range []string{run.ID, view.ID} {
		got, err := f.sims.GetRun(sim.ID, id)
		if err != nil {
			t.Fatalf("Failed to read run: %v", err)
		}
		if got.Status != "succeeded" || got.StartedAt == nil || got.FinishedAt == nil {
			t.Errorf("Expected succeeded run with timestamps, got %+v", got)
		}
	}

	runs, err := f.sims.ListRuns(sim.ID)
	if err != nil || len(runs) != 2 {
		t.Fatalf("Expected two runs, got %v (%v)", runs, err)
	}

	f.runner.mu.Lock()
	defer f.runner.mu.Unlock()
	if len(f.runner.runs) != 2 {
		t.Fatalf("Expected 2 engine invocations, got %d", len(f.runner.runs))
	}
	for _, req := range f.runner.runs {
		if req.WorkDir != sim.OutputDir || req.ArchivePath != filepath.Join(sim.OutputDir, "demo.json") {
			t.Errorf("Unexpected run request %+v", req)
		}
	}

	_, err = f.sims.Run(sim.ID)
	expectAPIError(t, err, http.StatusServiceUnavailable, "")
}

func TestRunFailure(t *testing.T) {
	f := newFixture(t)
	f.runner.runErr = errors.New("engine exited with code 1: boom")
	sim := f.createSimulation(t, "demo")

	run, err := f.sims.Run(sim.ID)
	if err != nil {
		t.Fatalf("Failed to launch run: %v", err)
	}
	f.drain(t)

	got, err := f.sims.GetRun(sim.ID, run.ID)
	if err != nil {
		t.Fatalf("Failed to read run: %v", err)
	}
	if got.Status != "failed" || got.Error != "engine exited with code 1: boom" {
		t.Errorf("Expected failed run, got %+v", got)
	}

	_, err = f.sims.CancelRun(sim.ID, run.ID)
	expectAPIError(t, err, http.StatusConflict, "")
}

func TestCancelRun(t *testing.T) {
	f := newFixture(t)
	f.runner.hold = make(chan struct{})
	sim := f.createSimulation(t, "demo")

	run, err := f.sims.Run(sim.ID)
	if err != nil {
		t.Fatalf("Failed to launch run: %v", err)
	}
	if _, err := f.sims.CancelRun(sim.ID, run.ID); err != nil {
		t.Fatalf("Failed to cancel run: %v", err)
	}
	f.drain(t)

	got, err := f.sims.GetRun(sim.ID, run.ID)
	if err != nil {
		t.Fatalf("Failed to read run: %v", err)
	}
	if got.Status != "canceled" {
		t.Errorf("Expected canceled run, got %s", got.Status)
	}

	_, err = f.sims.GetRun(sim.ID, "nope")
	expectAPIError(t, err, http.StatusNotFound, "Run 'nope' not found in simulation '1'.")
}

func TestCancelUntrackedRun(t *testing.T) {
	f := newFixture(t)
	sim := f.createSimulation(t, "demo")

	queued := models.Run{SimulationID: sim.ID, Mode: models.RunModeRun, Status: models.RunQueued}
	if err := f.deps.DB.Create(&queued).Error; err != nil {
		t.Fatal(err)
	}
	got, err := f.sims.CancelRun(sim.ID, queued.ID)
	if err != nil {
		t.Fatalf("Failed to cancel run: %v", err)
	}
	if got.Status != "canceled" || got.FinishedAt == nil {
		t.Errorf("Expected canceled run with a finish time, got %+v", got)
	}

	// a row that finishes after it was read must keep its final status
	running := models.Run{SimulationID: sim.ID, Mode: models.RunModeRun, Status: models.RunRunning}
	if err := f.deps.DB.Create(&running).Error; err != nil {
		t.Fatal(err)
	}
	f.deps.DB.Exec("UPDATE simulation_runs SET status = ? WHERE id = ?", models.RunSucceeded, running.ID)

	canceled, err := markCanceled(f.deps.DB, running.ID)
	if err != nil {
		t.Fatalf("Failed to mark run: %v", err)
	}
	if canceled {
		t.Error("Expected a finished run to be left alone")
	}
	after, err := f.sims.GetRun(sim.ID, running.ID)
	if err != nil {
		t.Fatalf("Failed to read run: %v", err)
	}
	if after.Status != "succeeded" || after.FinishedAt != nil {
		t.Errorf("Expected the succeeded row untouched, got %+v", after)
	}

	_, err = f.sims.CancelRun(sim.ID, running.ID)
	expectAPIError(t, err, http.StatusConflict, "Run '"+running.ID+"' already finished with status 'succeeded'")
}

func TestRecoverRuns(t *testing.T) {
	f := newFixture(t)
	f.runner.hold = make(chan struct{})
	sim := f.createSimulation(t, "demo")

	run, err := f.sims.Run(sim.ID)
	if err != nil {
		t.Fatalf("Failed to launch run: %v", err)
	}
	f.deps.DB.Exec("UPDATE simulation_runs SET status = ?", "running")

	n, err := RecoverRuns(f.deps.DB)
	if err != nil {
		t.Fatalf("Failed to recover runs: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 recovered run, got %d", n)
	}
	got, _ := f.sims.GetRun(sim.ID, run.ID)
	if got.Status != "failed" {
		t.Errorf("Expected failed run, got %s", got.Status)
	}
	close(f.runner.hold)
}

func TestReconstruct(t *testing.T) {
	f := newFixture(t)
	sim := f.createSimulation(t, "demo")
	req := schemas.ReconstructRequest{SOD: 100, SDD: 150}

	projection := filepath.Join(sim.OutputDir, "output", "projection.mhd")
	_, err := f.sims.Reconstruct(context.Background(), sim.ID, req)
	expectAPIError(t, err, http.StatusNotFound, "projection.mhd not found at "+projection)

	if err := os.MkdirAll(filepath.Dir(projection), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(projection, []byte("ObjectType = Image\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := f.sims.Reconstruct(context.Background(), sim.ID, req)
	if err != nil {
		t.Fatalf("Failed to reconstruct: %v", err)
	}
	if out != filepath.Join(sim.OutputDir, "output", "reconstruction.mhd") {
		t.Errorf("Unexpected reconstruction path %s", out)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("Expected reconstruction output: %v", err)
	}
	if len(f.runner.recons) != 1 || f.runner.recons[0].SOD != 100 || f.runner.recons[0].SDD != 150 {
		t.Errorf("Unexpected reconstruction requests %+v", f.runner.recons)
	}
}

func TestMirror(t *testing.T) {
	f := newFixture(t)
	sim := f.createSimulation(t, "demo")
	archivePath := filepath.Join(sim.OutputDir, sim.JSONArchiveFilename)
	if err := os.Remove(archivePath); err != nil {
		t.Fatal(err)
	}

	got, err := f.sims.Mirror(sim.ID)
	if err != nil {
		t.Fatalf("Failed to mirror: %v", err)
	}
	if got != archivePath {
		t.Errorf("Expected %s, got %s", archivePath, got)
	}
	if _, err := os.Stat(archivePath); err != nil {
		t.Errorf("Expected archive to be rewritten: %v", err)
	}
}
