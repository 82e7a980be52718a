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

package services

import (
	"github.com/localnerve/gatesim/internal/models"
	"github.com/localnerve/gatesim/internal/schemas"
	"github.com/localnerve/gatesim/internal/types"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// SourceService manages the particle sources of a simulation
type SourceService struct {
	Deps
}

func NewSourceService(d Deps) *SourceService {
	return &SourceService{Deps: d}
}

func (s *SourceService) Create(simID uint64, in schemas.SourceCreate) (schemas.SourceRead, error) {
	src := in.Resolve()
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		sim, err := findSimulation(tx, simID)
		if err != nil {
			return err
		}
		if _, err := findSource(tx, simID, src.Name); err == nil {
			return types.Conflict("Source '%s' already exists!", src.Name)
		} else if !isNotFound(err) {
			return err
		}

		row := models.NewSource(simID, src)
		if err := tx.Create(&row).Error; err != nil {
			if duplicate(err) {
				return types.Conflict("Source '%s' already exists!", src.Name)
			}
			return err
		}
		return mirror(tx, sim)
	})
	if err != nil {
		return schemas.SourceRead{}, err
	}
	return src, nil
}

func (s *SourceService) List(simID uint64) ([]string, error) {
	if _, err := findSimulation(s.DB, simID); err != nil {
		return nil, err
	}
	names := []string{}
	err := s.DB.Clauses(hints.Comment("select", "gatesim:list_sources")).
		Model(&models.Source{}).Where("simulation_id = ?", simID).
		Order("id").Pluck("name", &names).Error
	return names, err
}

func (s *SourceService) Get(simID uint64, name string) (schemas.SourceRead, error) {
	if _, err := findSimulation(s.DB, simID); err != nil {
		return schemas.SourceRead{}, err
	}
	row, err := findSource(s.DB, simID, name)
	if err != nil {
		return schemas.SourceRead{}, err
	}
	return row.Read(), nil
}

func (s *SourceService) Update(simID uint64, name string, in schemas.SourceUpdate) (schemas.SourceRead, error) {
	var next schemas.SourceRead
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		sim, err := findSimulation(tx, simID)
		if err != nil {
			return err
		}
		row, err := findSource(tx, simID, name)
		if err != nil {
			return err
		}

		current := row.Read()
		next = in.Apply(current)
		if next.Name != current.Name {
			if _, err := findSource(tx, simID, next.Name); err == nil {
				return types.Conflict("Source '%s' already exists!", next.Name)
			} else if !isNotFound(err) {
				return err
			}
		}

		row.Set(next)
		if err := tx.Save(row).Error; err != nil {
			if duplicate(err) {
				return types.Conflict("Source '%s' already exists!", next.Name)
			}
			return err
		}
		return mirror(tx, sim)
	})
	if err != nil {
		return schemas.SourceRead{}, err
	}
	return next, nil
}

func (s *SourceService) Delete(simID uint64, name string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		sim, err := findSimulation(tx, simID)
		if err != nil {
			return err
		}
		row, err := findSource(tx, simID, name)
		if err != nil {
			return err
		}
		if err := tx.Delete(row).Error; err != nil {
			return err
		}
		return mirror(tx, sim)
	})
}

func findSource(db *gorm.DB, simID uint64, name string) (*models.Source, error) {
	var row models.Source
	err := quiet(db).Where("simulation_id = ? AND name = ?", simID, name).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.NotFound("Source '%s' not found in simulation '%d'.", name, simID)
		}
		return nil, err
	}
	return &row, nil
}
