// sources.go
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

// SourceHandler handles source routes
type SourceHandler struct {
	Service *services.SourceService
}

// Create handles POST /api/simulations/:id/sources
// @Summary Create a source
// @Tags Sources
// @Accept json
// @Produce json
// @Param id path int true "Simulation ID"
// @Param source body schemas.SourceCreate true "Source"
// @Success 201 {object} handlers.SourceResponse
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Router /simulations/{id}/sources [post]
func (h *SourceHandler) Create(c *fiber.Ctx) error {
	id, err := simulationID(c)
	if err != nil {
		return err
	}
	var in schemas.SourceCreate
	if err := bind(c, &in); err != nil {
		return err
	}

	out, err := h.Service.Create(id, in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, SourceResponse{
		MessageResponse: schemas.NewMessage(fmt.Sprintf("Source '%s' created successfully", out.Name)),
		Source:          out,
	}, fiber.StatusCreated)
}

// List handles GET /api/simulations/:id/sources
// @Summary List source names
// @Tags Sources
// @Produce json
// @Param id path int true "Simulation ID"
// @Success 200 {array} string
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /simulations/{id}/sources [get]
func (h *SourceHandler) List(c *fiber.Ctx) error {
	id, err := simulationID(c)
	if err != nil {
		return err
	}
	names, err := h.Service.List(id)
	if err != nil {
		return err
	}
	return c.JSON(names)
}

// Get handles GET /api/simulations/:id/sources/:name
// @Summary Read a source
// @Tags Sources
// @Produce json
// @Param id path int true "Simulation ID"
// @Param name path string true "Source name"
// @Success 200 {object} schemas.SourceRead
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /simulations/{id}/sources/{name} [get]
func (h *SourceHandler) Get(c *fiber.Ctx) error {
	id, err := simulationID(c)
	if err != nil {
		return err
	}
	out, err := h.Service.Get(id, c.Params("name"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update handles PUT /api/simulations/:id/sources/:name
// @Summary Update a source
// @Description Partial update of a particle source.
// @Tags Sources
// @Accept json
// @Produce json
// @Param id path int true "Simulation ID"
// @Param name path string true "Source name"
// @Param source body schemas.SourceUpdate true "Fields to change"
// @Success 200 {object} handlers.SourceResponse
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Router /simulations/{id}/sources/{name} [put]
func (h *SourceHandler) Update(c *fiber.Ctx) error {
	id, err := simulationID(c)
	if err != nil {
		return err
	}
	var in schemas.SourceUpdate
	if err := bind(c, &in); err != nil {
		return err
	}

	out, err := h.Service.Update(id, c.Params("name"), in)
	if err != nil {
		return err
	}
	return c.JSON(SourceResponse{
		MessageResponse: schemas.NewMessage(fmt.Sprintf("Source '%s' updated successfully", out.Name)),
		Source:          out,
	})
}

// Delete handles DELETE /api/simulations/:id/sources/:name
// @Summary Delete a source
// @Tags Sources
// @Produce json
// @Param id path int true "Simulation ID"
// @Param name path string true "Source name"
// @Success 200 {object} schemas.MessageResponse
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /simulations/{id}/sources/{name} [delete]
func (h *SourceHandler) Delete(c *fiber.Ctx) error {
	id, err := simulationID(c)
	if err != nil {
		return err
	}
	name := c.Params("name")
	if err := h.Service.Delete(id, name); err != nil {
		return err
	}
	return c.JSON(schemas.NewMessage(fmt.Sprintf("Source '%s' deleted successfully", name)))
}
