package handlers

import "github.com/gofiber/fiber/v2"

// Handlers groups the API route handlers
type Handlers struct {
	Simulations *SimulationHandler
	Volumes     *VolumeHandler
	Sources     *SourceHandler
	Actors      *ActorHandler
}

type componentRoutes interface {
	Create(*fiber.Ctx) error
	List(*fiber.Ctx) error
	Get(*fiber.Ctx) error
	Update(*fiber.Ctx) error
	Delete(*fiber.Ctx) error
}

// Register mounts the simulation API on router
func Register(router fiber.Router, h Handlers) {
	sims := router.Group("/simulations")
	sims.Post("/", h.Simulations.Create)
	sims.Get("/", h.Simulations.List)
	sims.Get("/:id", h.Simulations.Get)
	sims.Put("/:id", h.Simulations.Update)
	sims.Delete("/:id", h.Simulations.Delete)

	sims.Post("/:id/import", h.Simulations.Import)
	sims.Post("/:id/export", h.Simulations.Export)
	sims.Post("/:id/view", h.Simulations.View)
	sims.Post("/:id/run", h.Simulations.Run)
	sims.Post("/:id/reconstruct", h.Simulations.Reconstruct)
	sims.Get("/:id/runs", h.Simulations.ListRuns)
	sims.Get("/:id/runs/:runID", h.Simulations.GetRun)
	sims.Delete("/:id/runs/:runID", h.Simulations.CancelRun)

	component(sims, "/:id/volumes", h.Volumes)
	component(sims, "/:id/sources", h.Sources)
	component(sims, "/:id/actors", h.Actors)
}

func component(router fiber.Router, prefix string, h componentRoutes) {
	router.Post(prefix, h.Create)
	router.Get(prefix, h.List)
	router.Get(prefix+"/:name", h.Get)
	router.Put(prefix+"/:name", h.Update)
	router.Delete(prefix+"/:name", h.Delete)
}
