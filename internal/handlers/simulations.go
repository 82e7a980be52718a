// simulations.go
//
// A data service that defines, persists and launches Monte-Carlo radiation transport simulations
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of gatesim.
// gatesim is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// gatesim is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with gatesim.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/gatesim/internal/schemas"
	"github.com/localnerve/gatesim/internal/services"
	"github.com/localnerve/gatesim/internal/utils"
)

// SimulationHandler handles simulation routes
type SimulationHandler struct {
	Service *services.SimulationService
}

// Create handles POST /api/simulations
// @Summary Create a simulation
// @Description Create a simulation with its world volume and write its configuration archive
// @Tags Simulations
// @Accept json
// @Produce json
// @Param simulation body schemas.SimulationCreate true "Simulation"
// @Success 201 {object} handlers.SimulationResponse
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /simulations [post]
func (h *SimulationHandler) Create(c *fiber.Ctx) error {
	var in schemas.SimulationCreate
	if err := bind(c, &in); err != nil {
		return err
	}

	sim, err := h.Service.Create(in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, SimulationResponse{
		MessageResponse: schemas.NewMessage(fmt.Sprintf("Simulation '%s' created successfully", sim.Name)),
		Simulation:      sim,
	}, fiber.StatusCreated)
}

// List handles GET /api/simulations
// @Summary List simulations
// @Tags Simulations
// @Produce json
// @Success 200 {array} schemas.SimulationRead
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /simulations [get]
func (h *SimulationHandler) List(c *fiber.Ctx) error {
	sims, err := h.Service.List()
	if err != nil {
		return err
	}
	return c.JSON(sims)
}

// Get handles GET /api/simulations/:id
// @Summary Read a simulation
// @Tags Simulations
// @Produce json
// @Param id path int true "Simulation ID"
// @Success 200 {object} schemas.SimulationRead
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /simulations/{id} [get]
func (h *SimulationHandler) Get(c *fiber.Ctx) error {
	id, err := simulationID(c)
	if err != nil {
		return err
	}
	sim, err := h.Service.Get(id)
	if err != nil {
		return err
	}
	return c.JSON(sim)
}

// Update handles PUT /api/simulations/:id
// @Summary Update a simulation
// @Description Partial update. A rename moves the output directory; the archive is regenerated.
// @Tags Simulations
// @Accept json
// @Produce json
// @Param id path int true "Simulation ID"
// @Param simulation body schemas.SimulationUpdate true "Fields to change"
// @Success 200 {object} handlers.SimulationResponse
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Router /simulations/{id} [put]
func (h *SimulationHandler) Update(c *fiber.Ctx) error {
	id, err := simulationID(c)
	if err != nil {
		return err
	}
	var in schemas.SimulationUpdate
	if err := bind(c, &in); err != nil {
		return err
	}

	var sim schemas.SimulationRead
	if in.Empty() {
		sim, err = h.Service.Get(id)
	} else {
		sim, err = h.Service.Update(id, in)
	}
	if err != nil {
		return err
	}
	return c.JSON(SimulationResponse{
		MessageResponse: schemas.NewMessage(fmt.Sprintf("Simulation '%s' updated successfully", sim.Name)),
		Simulation:      sim,
	})
}

// Delete handles DELETE /api/simulations/:id
// @Summary Delete a simulation
// @Description Delete the simulation, its components, its runs and its output directory
// @Tags Simulations
// @Produce json
// @Param id path int true "Simulation ID"
// @Success 200 {object} schemas.MessageResponse
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /simulations/{id} [delete]
func (h *SimulationHandler) Delete(c *fiber.Ctx) error {
	id, err := simulationID(c)
	if err != nil {
		return err
	}
	name, err := h.Service.Delete(id)
	if err != nil {
		return err
	}
	return c.JSON(schemas.NewMessage(fmt.Sprintf("Simulation '%s' deleted successfully", name)))
}

// Import handles POST /api/simulations/:id/import
// @Summary Import a configuration archive
// @Description Replace the volumes, sources and actors of a simulation with the contents of its archive
// @Tags Simulations
// @Produce json
// @Param id path int true "Simulation ID"
// @Success 200 {object} handlers.ImportResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /simulations/{id}/import [post]
func (h *SimulationHandler) Import(c *fiber.Ctx) error {
	id, err := simulationID(c)
	if err != nil {
		return err
	}
	res, err := h.Service.Import(id)
	if err != nil {
		return err
	}
	return c.JSON(ImportResponse{
		MessageResponse: schemas.NewMessage(fmt.Sprintf("Simulation '%s' imported successfully", res.Simulation.Name)),
		Volumes:         res.Volumes,
		Sources:         res.Sources,
		Actors:          res.Actors,
	})
}

// Export handles POST /api/simulations/:id/export
// @Summary Export simulation outputs
// @Description Zip the output directory with a manifest and upload it to the blob store
// @Tags Simulations
// @Produce json
// @Param id path int true "Simulation ID"
// @Success 200 {object} schemas.ExportResponse
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /simulations/{id}/export [post]
func (h *SimulationHandler) Export(c *fiber.Ctx) error {
	id, err := simulationID(c)
	if err != nil {
		return err
	}
	res, err := h.Service.Export(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// Run handles POST /api/simulations/:id/run
// @Summary Launch a run
// @Description Regenerate the archive and queue an engine run
// @Tags Runs
// @Produce json
// @Param id path int true "Simulation ID"
// @Success 202 {object} handlers.RunResponse
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /simulations/{id}/run [post]
func (h *SimulationHandler) Run(c *fiber.Ctx) error {
	return h.launch(c, h.Service.Run)
}

// View handles POST /api/simulations/:id/view
// @Summary Launch a visualization
// @Description Regenerate the archive with visualization enabled and queue an engine run
// @Tags Runs
// @Produce json
// @Param id path int true "Simulation ID"
// @Success 202 {object} handlers.RunResponse
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /simulations/{id}/view [post]
func (h *SimulationHandler) View(c *fiber.Ctx) error {
	return h.launch(c, h.Service.View)
}

func (h *SimulationHandler) launch(c *fiber.Ctx, start func(uint64) (schemas.RunRead, error)) error {
	id, err := simulationID(c)
	if err != nil {
		return err
	}
	run, err := start(id)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, RunResponse{
		MessageResponse: schemas.NewMessage(fmt.Sprintf("Run '%s' queued", run.ID)),
		Run:             run,
	}, fiber.StatusAccepted)
}

// ListRuns handles GET /api/simulations/:id/runs
// @Summary List runs
// @Tags Runs
// @Produce json
// @Param id path int true "Simulation ID"
// @Success 200 {array} schemas.RunRead
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /simulations/{id}/runs [get]
func (h *SimulationHandler) ListRuns(c *fiber.Ctx) error {
	id, err := simulationID(c)
	if err != nil {
		return err
	}
	runs, err := h.Service.ListRuns(id)
	if err != nil {
		return err
	}
	return c.JSON(runs)
}

// GetRun handles GET /api/simulations/:id/runs/:runID
// @Summary Read a run
// @Tags Runs
// @Produce json
// @Param id path int true "Simulation ID"
// @Param runID path string true "Run ID"
// @Success 200 {object} schemas.RunRead
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /simulations/{id}/runs/{runID} [get]
func (h *SimulationHandler) GetRun(c *fiber.Ctx) error {
	id, err := simulationID(c)
	if err != nil {
		return err
	}
	run, err := h.Service.GetRun(id, c.Params("runID"))
	if err != nil {
		return err
	}
	return c.JSON(run)
}

// CancelRun handles DELETE /api/simulations/:id/runs/:runID
// @Summary Cancel a run
// @Tags Runs
// @Produce json
// @Param id path int true "Simulation ID"
// @Param runID path string true "Run ID"
// @Success 200 {object} handlers.RunResponse
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /simulations/{id}/runs/{runID} [delete]
func (h *SimulationHandler) CancelRun(c *fiber.Ctx) error {
	id, err := simulationID(c)
	if err != nil {
		return err
	}
	run, err := h.Service.CancelRun(id, c.Params("runID"))
	if err != nil {
		return err
	}
	return c.JSON(RunResponse{
		MessageResponse: schemas.NewMessage(fmt.Sprintf("Run '%s' canceled", run.ID)),
		Run:             run,
	})
}

// Reconstruct handles POST /api/simulations/:id/reconstruct
// @Summary Reconstruct the projection image
// @Description Filtered back-projection of output/projection.mhd into output/reconstruction.mhd
// @Tags Simulations
// @Accept json
// @Produce json
// @Param id path int true "Simulation ID"
// @Param geometry body schemas.ReconstructRequest true "Source-object and source-detector distances"
// @Success 200 {object} schemas.ReconstructResponse
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Router /simulations/{id}/reconstruct [post]
func (h *SimulationHandler) Reconstruct(c *fiber.Ctx) error {
	id, err := simulationID(c)
	if err != nil {
		return err
	}
	var in schemas.ReconstructRequest
	if err := bind(c, &in); err != nil {
		return err
	}

	path, err := h.Service.Reconstruct(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(schemas.ReconstructResponse{
		MessageResponse: schemas.NewMessage("Reconstruction completed successfully"),
		Path:            path,
	})
}
