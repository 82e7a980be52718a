// errors.go
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
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/gatesim/internal/schemas"
	"github.com/localnerve/gatesim/internal/types"
	"github.com/localnerve/gatesim/internal/utils"
	"go.uber.org/zap"
)

// ErrorHandler maps handler errors to the standard error body
func ErrorHandler(log *zap.SugaredLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var (
			ce *types.CustomError
			ve schemas.ValidationErrors
			fe *fiber.Error
		)
		switch {
		case errors.As(err, &ve):
			return utils.ValidationErrorResponse(c, ve)
		case errors.As(err, &ce):
			if ce.Code >= fiber.StatusInternalServerError {
				log.Errorw("request failed", "method", c.Method(), "url", c.OriginalURL(), "error", ce.Message)
			}
			return utils.ErrorResponse(c, ce.Message, ce.Code, ce.Type)
		case errors.As(err, &fe):
			return utils.ErrorResponse(c, fe.Message, fe.Code, "http")
		}

		log.Errorw("unhandled error", "method", c.Method(), "url", c.OriginalURL(), "error", err)
		return utils.ErrorResponse(c, "An unexpected error occurred", fiber.StatusInternalServerError, types.ErrTypeInternal)
	}
}

// NotFound answers requests that matched no route
func NotFound(c *fiber.Ctx) error {
	return utils.NotFoundResponse(c, "[404] Resource Not Found")
}
