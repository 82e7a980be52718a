package handlers_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/gatesim/internal/blob"
	"github.com/localnerve/gatesim/internal/config"
	"github.com/localnerve/gatesim/internal/engine"
	"github.com/localnerve/gatesim/internal/handlers"
	"github.com/localnerve/gatesim/internal/logging"
	"github.com/localnerve/gatesim/internal/services"
	"github.com/localnerve/gatesim/internal/testhelpers"
)

type okRunner struct{}

func (okRunner) Run(context.Context, engine.RunRequest) error { return nil }

func (okRunner) Reconstruct(context.Context, engine.ReconRequest) error { return nil }

type testApp struct {
	*fiber.App
	launcher *engine.Launcher
}

// setupApp builds the API over an in-memory database and a no-op engine
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testhelpers.NewDB(t)
	log := logging.Nop()
	launcher := engine.NewLauncher(okRunner{}, 1, 0, services.RunHooks(db, log), log)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = launcher.Shutdown(ctx)
	})

	deps := services.Deps{
		DB:         db,
		OutputRoot: t.TempDir(),
		Launcher:   launcher,
		Blobs:      blob.NewMemory(),
		Log:        log,
	}

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler(log)})
	handlers.Register(app.Group("/api"), handlers.Handlers{
		Simulations: &handlers.SimulationHandler{Service: services.NewSimulationService(deps)},
		Volumes:     &handlers.VolumeHandler{Service: services.NewVolumeService(deps)},
		Sources:     &handlers.SourceHandler{Service: services.NewSourceService(deps)},
		Actors:      &handlers.ActorHandler{Service: services.NewActorService(deps)},
	})
	app.Use(handlers.NotFound)
	return &testApp{App: app, launcher: launcher}
}

func createSimulation(t *testing.T, app *fiber.App, name string) uint64 {
	t.Helper()
	resp := testhelpers.DoJSON(t, app, "POST", "/api/simulations", map[string]interface{}{"name": name})
	testhelpers.AssertStatus(t, resp, fiber.StatusCreated)

	var result struct {
		Simulation struct {
			ID uint64 `json:"id"`
		} `json:"simulation"`
	}
	testhelpers.ParseJSON(t, resp, &result)
	return result.Simulation.ID
}

func TestCreateSimulationRoute(t *testing.T) {
	app := setupApp(t)

	resp := testhelpers.DoJSON(t, app.App, "POST", "/api/simulations", map[string]interface{}{
		"name":     "demo",
		"num_runs": "4",
		"run_len":  0.5,
	})
	testhelpers.AssertStatus(t, resp, fiber.StatusCreated)

	var result map[string]interface{}
	testhelpers.ParseJSON(t, resp, &result)
	if result["message"] != "Simulation 'demo' created successfully" {
		t.Errorf("Unexpected message %v", result["message"])
	}
	if result["ok"] != true {
		t.Errorf("Expected ok=true, got %v", result["ok"])
	}
	sim := result["simulation"].(map[string]interface{})
	if sim["num_runs"] != float64(4) || sim["json_archive_filename"] != "demo.json" {
		t.Errorf("Unexpected simulation %v", sim)
	}

	resp = testhelpers.DoJSON(t, app.App, "POST", "/api/simulations", map[string]interface{}{"name": "demo"})
	testhelpers.AssertStatus(t, resp, fiber.StatusConflict)
	testhelpers.ParseJSON(t, resp, &result)
	if result["message"] != "Simulation with that name already exists" || result["ok"] != false {
		t.Errorf("Unexpected conflict body %v", result)
	}
	if result["url"] != "/api/simulations" || result["type"] != "conflict" {
		t.Errorf("Expected url and type in error body, got %v", result)
	}
}

func TestCreateSimulationValidation(t *testing.T) {
	app := setupApp(t)

	resp := testhelpers.DoJSON(t, app.App, "POST", "/api/simulations", map[string]interface{}{
		"num_runs": 0,
		"run_len":  -1,
	})
	testhelpers.AssertStatus(t, resp, fiber.StatusUnprocessableEntity)

	var result struct {
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	}
	testhelpers.ParseJSON(t, resp, &result)
	if result.Message != "Validation Failed" {
		t.Errorf("Expected Validation Failed, got %s", result.Message)
	}
	for _, field := range []string{"name", "num_runs", "run_len"} {
		if _, ok := result.Errors[field]; !ok {
			t.Errorf("Expected error for %s, got %v", field, result.Errors)
		}
	}

	resp = testhelpers.DoJSON(t, app.App, "POST", "/api/simulations", `{"name": 5}`)
	testhelpers.AssertStatus(t, resp, fiber.StatusUnprocessableEntity)

	resp = testhelpers.DoJSON(t, app.App, "POST", "/api/simulations", `{"name": `)
	testhelpers.AssertStatus(t, resp, fiber.StatusBadRequest)
}

func TestSimulationReadUpdateDelete(t *testing.T) {
	app := setupApp(t)
	id := createSimulation(t, app.App, "demo")
	base := fmt.Sprintf("/api/simulations/%d", id)

	resp := testhelpers.DoJSON(t, app.App, "GET", "/api/simulations", nil)
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)
	var list []map[string]interface{}
	testhelpers.ParseJSON(t, resp, &list)
	if len(list) != 1 {
		t.Errorf("Expected 1 simulation, got %d", len(list))
	}

	resp = testhelpers.DoJSON(t, app.App, "PUT", base, map[string]interface{}{"name": "renamed"})
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)
	var updated map[string]interface{}
	testhelpers.ParseJSON(t, resp, &updated)
	if updated["message"] != "Simulation 'renamed' updated successfully" {
		t.Errorf("Unexpected message %v", updated["message"])
	}

	resp = testhelpers.DoJSON(t, app.App, "GET", "/api/simulations/999", nil)
	testhelpers.AssertStatus(t, resp, fiber.StatusNotFound)
	var notFound map[string]interface{}
	testhelpers.ParseJSON(t, resp, &notFound)
	if notFound["message"] != "Simulation with id 999 not found" {
		t.Errorf("Unexpected message %v", notFound["message"])
	}

	resp = testhelpers.DoJSON(t, app.App, "GET", "/api/simulations/abc", nil)
	testhelpers.AssertStatus(t, resp, fiber.StatusBadRequest)

	resp = testhelpers.DoJSON(t, app.App, "DELETE", base, nil)
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)
	var deleted map[string]interface{}
	testhelpers.ParseJSON(t, resp, &deleted)
	if deleted["message"] != "Simulation 'renamed' deleted successfully" {
		t.Errorf("Unexpected message %v", deleted["message"])
	}

	resp = testhelpers.DoJSON(t, app.App, "GET", base, nil)
	testhelpers.AssertStatus(t, resp, fiber.StatusNotFound)
}

func TestVolumeRoutes(t *testing.T) {
	app := setupApp(t)
	id := createSimulation(t, app.App, "demo")
	base := fmt.Sprintf("/api/simulations/%d/volumes", id)

	resp := testhelpers.DoJSON(t, app.App, "POST", base, map[string]interface{}{"name": "detector"})
	testhelpers.AssertStatus(t, resp, fiber.StatusUnprocessableEntity)
	var invalid struct {
		Errors map[string]string `json:"errors"`
	}
	testhelpers.ParseJSON(t, resp, &invalid)
	if invalid.Errors["shape"] != "Field required" {
		t.Errorf("Expected shape to be required, got %v", invalid.Errors)
	}

	resp = testhelpers.DoJSON(t, app.App, "POST", base, map[string]interface{}{
		"name":  "detector",
		"shape": map[string]interface{}{"type": "Sphere", "rmax": 5, "unit": "cm"},
	})
	testhelpers.AssertStatus(t, resp, fiber.StatusCreated)

	resp = testhelpers.DoJSON(t, app.App, "POST", base, map[string]interface{}{
		"name":  "detector",
		"shape": map[string]interface{}{"type": "Box"},
	})
	testhelpers.AssertStatus(t, resp, fiber.StatusConflict)
	var conflict map[string]interface{}
	testhelpers.ParseJSON(t, resp, &conflict)
	if conflict["message"] != "Volume 'detector' already exists" {
		t.Errorf("Unexpected message %v", conflict["message"])
	}

	resp = testhelpers.DoJSON(t, app.App, "GET", base, nil)
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)
	var names []string
	testhelpers.ParseJSON(t, resp, &names)
	if len(names) != 2 || names[0] != "world" || names[1] != "detector" {
		t.Errorf("Unexpected volume names %v", names)
	}

	resp = testhelpers.DoJSON(t, app.App, "PUT", base+"/detector", map[string]interface{}{"material": "G4_WATER"})
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)

	resp = testhelpers.DoJSON(t, app.App, "GET", base+"/detector", nil)
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)
	var volume map[string]interface{}
	testhelpers.ParseJSON(t, resp, &volume)
	if volume["material"] != "G4_WATER" || volume["mother"] != "world" {
		t.Errorf("Unexpected volume %v", volume)
	}

	resp = testhelpers.DoJSON(t, app.App, "DELETE", base+"/detector", nil)
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)

	resp = testhelpers.DoJSON(t, app.App, "GET", base+"/detector", nil)
	testhelpers.AssertStatus(t, resp, fiber.StatusNotFound)
}

func TestSourceAndActorRoutes(t *testing.T) {
	app := setupApp(t)
	id := createSimulation(t, app.App, "demo")
	sources := fmt.Sprintf("/api/simulations/%d/sources", id)
	actors := fmt.Sprintf("/api/simulations/%d/actors", id)

	resp := testhelpers.DoJSON(t, app.App, "POST", sources, map[string]interface{}{
		"name":     "xray",
		"position": map[string]interface{}{"type": "box", "size": []float64{1, 1, 1}},
	})
	testhelpers.AssertStatus(t, resp, fiber.StatusCreated)

	resp = testhelpers.DoJSON(t, app.App, "GET", sources+"/beam", nil)
	testhelpers.AssertStatus(t, resp, fiber.StatusNotFound)
	var missing map[string]interface{}
	testhelpers.ParseJSON(t, resp, &missing)
	if missing["message"] != fmt.Sprintf("Source 'beam' not found in simulation '%d'.", id) {
		t.Errorf("Unexpected message %v", missing["message"])
	}

	resp = testhelpers.DoJSON(t, app.App, "POST", actors, map[string]interface{}{
		"name":                   "projection",
		"type":                   "DigitizerProjectionActor",
		"attached_to":            "world",
		"input_digi_collections": "hits",
	})
	testhelpers.AssertStatus(t, resp, fiber.StatusCreated)

	resp = testhelpers.DoJSON(t, app.App, "POST", actors, map[string]interface{}{
		"name":        "projection2",
		"type":        "DigitizerProjectionActor",
		"attached_to": "world",
	})
	testhelpers.AssertStatus(t, resp, fiber.StatusUnprocessableEntity)

	resp = testhelpers.DoJSON(t, app.App, "PUT", actors+"/projection", map[string]interface{}{
		"config": map[string]interface{}{"type": "SimulationStatisticsActor"},
	})
	testhelpers.AssertStatus(t, resp, fiber.StatusUnprocessableEntity)

	resp = testhelpers.DoJSON(t, app.App, "GET", actors+"/projection", nil)
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)
	var actor map[string]interface{}
	testhelpers.ParseJSON(t, resp, &actor)
	if actor["type"] != "DigitizerProjectionActor" || actor["output_filename"] != "output/projection.mhd" {
		t.Errorf("Unexpected actor %v", actor)
	}
}

func TestRunRoutes(t *testing.T) {
	app := setupApp(t)
	id := createSimulation(t, app.App, "demo")
	base := fmt.Sprintf("/api/simulations/%d", id)

	resp := testhelpers.DoJSON(t, app.App, "POST", base+"/run", nil)
	testhelpers.AssertStatus(t, resp, fiber.StatusAccepted)
	var launched struct {
		Run struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"run"`
	}
	testhelpers.ParseJSON(t, resp, &launched)
	if launched.Run.Status != "queued" {
		t.Errorf("Expected queued, got %s", launched.Run.Status)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.launcher.Shutdown(ctx); err != nil {
		t.Fatalf("Launcher did not drain: %v", err)
	}

	resp = testhelpers.DoJSON(t, app.App, "GET", base+"/runs/"+launched.Run.ID, nil)
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)
	var run map[string]interface{}
	testhelpers.ParseJSON(t, resp, &run)
	if run["status"] != "succeeded" {
		t.Errorf("Expected succeeded, got %v", run["status"])
	}

	resp = testhelpers.DoJSON(t, app.App, "DELETE", base+"/runs/"+launched.Run.ID, nil)
	testhelpers.AssertStatus(t, resp, fiber.StatusConflict)

	resp = testhelpers.DoJSON(t, app.App, "POST", base+"/reconstruct", map[string]interface{}{"sod": 100, "sdd": 150})
	testhelpers.AssertStatus(t, resp, fiber.StatusNotFound)

	resp = testhelpers.DoJSON(t, app.App, "POST", base+"/reconstruct", map[string]interface{}{"sod": 0})
	testhelpers.AssertStatus(t, resp, fiber.StatusUnprocessableEntity)
}

func TestExportAndImportRoutes(t *testing.T) {
	app := setupApp(t)
	id := createSimulation(t, app.App, "demo")
	base := fmt.Sprintf("/api/simulations/%d", id)

	resp := testhelpers.DoJSON(t, app.App, "POST", base+"/export", nil)
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)
	var exported map[string]interface{}
	testhelpers.ParseJSON(t, resp, &exported)
	if exported["content_type"] != "application/zip" {
		t.Errorf("Unexpected export %v", exported)
	}

	resp = testhelpers.DoJSON(t, app.App, "POST", base+"/import", nil)
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)
	var imported map[string]interface{}
	testhelpers.ParseJSON(t, resp, &imported)
	if imported["volumes"] != float64(1) {
		t.Errorf("Expected the world volume to be imported, got %v", imported)
	}
}

func TestNotFoundRoute(t *testing.T) {
	app := setupApp(t)
	resp := testhelpers.DoJSON(t, app.App, "GET", "/api/nothing", nil)
	testhelpers.AssertStatus(t, resp, fiber.StatusNotFound)

	var result map[string]interface{}
	testhelpers.ParseJSON(t, resp, &result)
	if result["message"] != "[404] Resource Not Found" {
		t.Errorf("Unexpected message %v", result["message"])
	}
}

func TestHealthCheck(t *testing.T) {
	self, err := os.Executable()
	if err != nil {
		t.Fatalf("Failed to locate test binary: %v", err)
	}

	cfg := &config.Config{
		DBType:        "sqlite",
		DBDatabase:    "memory",
		OutputRoot:    t.TempDir(),
		EngineCommand: self,
		Blob:          config.BlobConfig{Driver: "memory"},
	}
	h := &handlers.HealthHandler{Config: cfg, DB: testhelpers.NewDB(t), Log: logging.Nop()}
	app := fiber.New()
	app.Get("/healthz", h.Check)

	resp := testhelpers.DoJSON(t, app, "GET", "/healthz", nil)
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)
	var healthy services.HealthCheckResult
	testhelpers.ParseJSON(t, resp, &healthy)
	if healthy.Status != "healthy" || healthy.Database != "ok" || healthy.Engine != "ok" {
		t.Errorf("Unexpected result %+v", healthy)
	}

	cfg.EngineCommand = "gatesim-engine-that-does-not-exist"
	resp = testhelpers.DoJSON(t, app, "GET", "/healthz", nil)
	testhelpers.AssertStatus(t, resp, fiber.StatusServiceUnavailable)
	var sick services.HealthCheckResult
	testhelpers.ParseJSON(t, resp, &sick)
	if sick.Engine != "missing" || sick.Details["engine_error"] == "" {
		t.Errorf("Unexpected result %+v", sick)
	}
}
