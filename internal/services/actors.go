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

package services

import (
	"github.com/localnerve/gatesim/internal/models"
	"github.com/localnerve/gatesim/internal/schemas"
	"github.com/localnerve/gatesim/internal/types"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// ActorService manages the output actors of a simulation
type ActorService struct {
	Deps
}

func NewActorService(d Deps) *ActorService {
	return &ActorService{Deps: d}
}

func (s *ActorService) Create(simID uint64, in schemas.ActorCreate) (schemas.ActorRead, error) {
	act := in.Resolve()
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		sim, err := findSimulation(tx, simID)
		if err != nil {
			return err
		}
		if _, err := findActor(tx, simID, act.Name); err == nil {
			return types.Conflict("Actor '%s' already exists", act.Name)
		} else if !isNotFound(err) {
			return err
		}

		row := models.NewActor(simID, act)
		if err := tx.Create(&row).Error; err != nil {
			if duplicate(err) {
				return types.Conflict("Actor '%s' already exists", act.Name)
			}
			return err
		}
		return mirror(tx, sim)
	})
	if err != nil {
		return schemas.ActorRead{}, err
	}
	return act, nil
}

func (s *ActorService) List(simID uint64) ([]string, error) {
	if _, err := findSimulation(s.DB, simID); err != nil {
		return nil, err
	}
	names := []string{}
	err := s.DB.Clauses(hints.Comment("select", "gatesim:list_actors")).
		Model(&models.Actor{}).Where("simulation_id = ?", simID).
		Order("id").Pluck("name", &names).Error
	return names, err
}

func (s *ActorService) Get(simID uint64, name string) (schemas.ActorRead, error) {
	if _, err := findSimulation(s.DB, simID); err != nil {
		return schemas.ActorRead{}, err
	}
	row, err := findActor(s.DB, simID, name)
	if err != nil {
		return schemas.ActorRead{}, err
	}
	return row.Read(), nil
}

// Update applies a partial update. The config type cannot change.
func (s *ActorService) Update(simID uint64, name string, in schemas.ActorUpdate) (schemas.ActorRead, error) {
	var next schemas.ActorRead
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		sim, err := findSimulation(tx, simID)
		if err != nil {
			return err
		}
		row, err := findActor(tx, simID, name)
		if err != nil {
			return err
		}

		current := row.Read()
		if in.Config != nil && in.Config.Type != current.Type {
			return types.Unprocessable("Actor type mismatch: '%s' is a %s, not a %s", current.Name, current.Type, in.Config.Type)
		}
		next = in.Apply(current)

		if next.Name != current.Name {
			if _, err := findActor(tx, simID, next.Name); err == nil {
				return types.Conflict("Actor '%s' already exists", next.Name)
			} else if !isNotFound(err) {
				return err
			}
		}
		if next.Type == schemas.DigitizerProjectionActor && len(next.InputDigiCollections) == 0 {
			return types.Unprocessable("Actor '%s' requires at least one input digi collection", next.Name)
		}

		row.Set(next)
		if err := tx.Save(row).Error; err != nil {
			if duplicate(err) {
				return types.Conflict("Actor '%s' already exists", next.Name)
			}
			return err
		}
		return mirror(tx, sim)
	})
	if err != nil {
		return schemas.ActorRead{}, err
	}
	return next, nil
}

func (s *ActorService) Delete(simID uint64, name string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		sim, err := findSimulation(tx, simID)
		if err != nil {
			return err
		}
		row, err := findActor(tx, simID, name)
		if err != nil {
			return err
		}
		if err := tx.Delete(row).Error; err != nil {
			return err
		}
		return mirror(tx, sim)
	})
}

func findActor(db *gorm.DB, simID uint64, name string) (*models.Actor, error) {
	var row models.Actor
	err := quiet(db).Where("simulation_id = ? AND name = ?", simID, name).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.NotFound("Actor '%s' not found in simulation '%d'.", name, simID)
		}
		return nil, err
	}
	return &row, nil
}
