// volumes.go
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

// VolumeHandler handles volume routes
type VolumeHandler struct {
	Service *services.VolumeService
}

// Create handles POST /api/simulations/:id/volumes
// @Summary Create a volume
// @Tags Volumes
// @Accept json
// @Produce json
// @Param id path int true "Simulation ID"
// @Param volume body schemas.VolumeCreate true "Volume"
// @Success 201 {object} handlers.VolumeResponse
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Router /simulations/{id}/volumes [post]
func (h *VolumeHandler) Create(c *fiber.Ctx) error {
	id, err := simulationID(c)
	if err != nil {
		return err
	}
	var in schemas.VolumeCreate
	if err := bind(c, &in); err != nil {
		return err
	}

	out, err := h.Service.Create(id, in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, VolumeResponse{
		MessageResponse: schemas.NewMessage(fmt.Sprintf("Volume '%s' created successfully", out.Name)),
		Volume:          out,
	}, fiber.StatusCreated)
}

// List handles GET /api/simulations/:id/volumes
// @Summary List volume names
// @Tags Volumes
// @Produce json
// @Param id path int true "Simulation ID"
// @Success 200 {array} string
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /simulations/{id}/volumes [get]
func (h *VolumeHandler) List(c *fiber.Ctx) error {
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

// Get handles GET /api/simulations/:id/volumes/:name
// @Summary Read a volume
// @Tags Volumes
// @Produce json
// @Param id path int true "Simulation ID"
// @Param name path string true "Volume name"
// @Success 200 {object} schemas.VolumeRead
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /simulations/{id}/volumes/{name} [get]
func (h *VolumeHandler) Get(c *fiber.Ctx) error {
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

// Update handles PUT /api/simulations/:id/volumes/:name
// @Summary Update a volume
// @Description Partial update. A rename follows the volume into its daughters and attached sources and actors.
// @Tags Volumes
// @Accept json
// @Produce json
// @Param id path int true "Simulation ID"
// @Param name path string true "Volume name"
// @Param volume body schemas.VolumeUpdate true "Fields to change"
// @Success 200 {object} handlers.VolumeResponse
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Router /simulations/{id}/volumes/{name} [put]
func (h *VolumeHandler) Update(c *fiber.Ctx) error {
	id, err := simulationID(c)
	if err != nil {
		return err
	}
	var in schemas.VolumeUpdate
	if err := bind(c, &in); err != nil {
		return err
	}

	out, err := h.Service.Update(id, c.Params("name"), in)
	if err != nil {
		return err
	}
	return c.JSON(VolumeResponse{
		MessageResponse: schemas.NewMessage(fmt.Sprintf("Volume '%s' updated successfully", out.Name)),
		Volume:          out,
	})
}

// Delete handles DELETE /api/simulations/:id/volumes/:name
// @Summary Delete a volume
// @Tags Volumes
// @Produce json
// @Param id path int true "Simulation ID"
// @Param name path string true "Volume name"
// @Success 200 {object} schemas.MessageResponse
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /simulations/{id}/volumes/{name} [delete]
func (h *VolumeHandler) Delete(c *fiber.Ctx) error {
	id, err := simulationID(c)
	if err != nil {
		return err
	}
	name := c.Params("name")
	if err := h.Service.Delete(id, name); err != nil {
		return err
	}
	return c.JSON(schemas.NewMessage(fmt.Sprintf("Volume '%s' deleted successfully", name)))
}
