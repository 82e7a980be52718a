// actors.go
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

// ActorHandler handles actor routes
type ActorHandler struct {
	Service *services.ActorService
}

// Create handles POST /api/simulations/:id/actors
// @Summary Create a actor
// @Tags Actors
// @Accept json
// @Produce json
// @Param id path int true "Simulation ID"
// @Param actor body schemas.ActorCreate true "Actor"
// @Success 201 {object} handlers.ActorResponse
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Router /simulations/{id}/actors [post]
func (h *ActorHandler) Create(c *fiber.Ctx) error {
	id, err := simulationID(c)
	if err != nil {
		return err
	}
	var in schemas.ActorCreate
	if err := bind(c, &in); err != nil {
		return err
	}

	out, err := h.Service.Create(id, in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, ActorResponse{
		MessageResponse: schemas.NewMessage(fmt.Sprintf("Actor '%s' created successfully", out.Name)),
		Actor:           out,
	}, fiber.StatusCreated)
}

// List handles GET /api/simulations/:id/actors
// @Summary List actor names
// @Tags Actors
// @Produce json
// @Param id path int true "Simulation ID"
// @Success 200 {array} string
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /simulations/{id}/actors [get]
func (h *ActorHandler) List(c *fiber.Ctx) error {
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

// Get handles GET /api/simulations/:id/actors/:name
// @Summary Read a actor
// @Tags Actors
// @Produce json
// @Param id path int true "Simulation ID"
// @Param name path string true "Actor name"
// @Success 200 {object} schemas.ActorRead
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /simulations/{id}/actors/{name} [get]
func (h *ActorHandler) Get(c *fiber.Ctx) error {
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

// Update handles PUT /api/simulations/:id/actors/:name
// @Summary Update a actor
// @Description Partial update. config.type must match the stored actor type.
// @Tags Actors
// @Accept json
// @Produce json
// @Param id path int true "Simulation ID"
// @Param name path string true "Actor name"
// @Param actor body schemas.ActorUpdate true "Fields to change"
// @Success 200 {object} handlers.ActorResponse
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Router /simulations/{id}/actors/{name} [put]
func (h *ActorHandler) Update(c *fiber.Ctx) error {
	id, err := simulationID(c)
	if err != nil {
		return err
	}
	var in schemas.ActorUpdate
	if err := bind(c, &in); err != nil {
		return err
	}

	out, err := h.Service.Update(id, c.Params("name"), in)
	if err != nil {
		return err
	}
	return c.JSON(ActorResponse{
		MessageResponse: schemas.NewMessage(fmt.Sprintf("Actor '%s' updated successfully", out.Name)),
		Actor:           out,
	})
}

// Delete handles DELETE /api/simulations/:id/actors/:name
// @Summary Delete a actor
// @Tags Actors
// @Produce json
// @Param id path int true "Simulation ID"
// @Param name path string true "Actor name"
// @Success 200 {object} schemas.MessageResponse
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /simulations/{id}/actors/{name} [delete]
func (h *ActorHandler) Delete(c *fiber.Ctx) error {
	id, err := simulationID(c)
	if err != nil {
		return err
	}
	name := c.Params("name")
	if err := h.Service.Delete(id, name); err != nil {
		return err
	}
	return c.JSON(schemas.NewMessage(fmt.Sprintf("Actor '%s' deleted successfully", name)))
}
