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

package services

import (
	"github.com/localnerve/gatesim/internal/models"
	"github.com/localnerve/gatesim/internal/schemas"
	"github.com/localnerve/gatesim/internal/types"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// VolumeService manages the volume tree of a simulation
type VolumeService struct {
	Deps
}

func NewVolumeService(d Deps) *VolumeService {
	return &VolumeService{Deps: d}
}

// Create adds a volume and mirrors the archive. The mother is stored by name
// and left for the engine to resolve.
func (s *VolumeService) Create(simID uint64, in schemas.VolumeCreate) (schemas.VolumeRead, error) {
	v := in.Resolve()
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		sim, err := findSimulation(tx, simID)
		if err != nil {
			return err
		}
		if _, err := findVolume(tx, simID, v.Name); err == nil {
			return types.Conflict("Volume '%s' already exists", v.Name)
		} else if !isNotFound(err) {
			return err
		}

		row := models.NewVolume(simID, v)
		if err := tx.Create(&row).Error; err != nil {
			if duplicate(err) {
				return types.Conflict("Volume '%s' already exists", v.Name)
			}
			return err
		}
		return mirror(tx, sim)
	})
	if err != nil {
		return schemas.VolumeRead{}, err
	}
	return v, nil
}

// List returns the volume names of a simulation in creation order
func (s *VolumeService) List(simID uint64) ([]string, error) {
	if _, err := findSimulation(s.DB, simID); err != nil {
		return nil, err
	}
	names := []string{}
	err := s.DB.Clauses(hints.Comment("select", "gatesim:list_volumes")).
		Model(&models.Volume{}).Where("simulation_id = ?", simID).
		Order("id").Pluck("name", &names).Error
	return names, err
}

func (s *VolumeService) Get(simID uint64, name string) (schemas.VolumeRead, error) {
	if _, err := findSimulation(s.DB, simID); err != nil {
		return schemas.VolumeRead{}, err
	}
	row, err := findVolume(s.DB, simID, name)
	if err != nil {
		return schemas.VolumeRead{}, err
	}
	return row.Read(), nil
}

// Update applies a partial update. A rename follows the volume into its
// daughters, attached sources and attached actors.
func (s *VolumeService) Update(simID uint64, name string, in schemas.VolumeUpdate) (schemas.VolumeRead, error) {
	var next schemas.VolumeRead
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		sim, err := findSimulation(tx, simID)
		if err != nil {
			return err
		}
		row, err := findVolume(tx, simID, name)
		if err != nil {
			return err
		}

		current := row.Read()
		next = in.Apply(current)

		renamed := next.Name != current.Name
		if renamed {
			if _, err := findVolume(tx, simID, next.Name); err == nil {
				return types.Conflict("Volume '%s' already exists", next.Name)
			} else if !isNotFound(err) {
				return err
			}
		}
		row.Set(next)
		if err := tx.Save(row).Error; err != nil {
			if duplicate(err) {
				return types.Conflict("Volume '%s' already exists", next.Name)
			}
			return err
		}
		if renamed {
			if err := renameVolumeReferences(tx, simID, current.Name, next.Name); err != nil {
				return err
			}
		}
		return mirror(tx, sim)
	})
	if err != nil {
		return schemas.VolumeRead{}, err
	}
	return next, nil
}

// Delete removes a volume and mirrors the archive. Daughters and attached
// sources keep the dangling name; the engine reports them at run time.
func (s *VolumeService) Delete(simID uint64, name string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		sim, err := findSimulation(tx, simID)
		if err != nil {
			return err
		}
		row, err := findVolume(tx, simID, name)
		if err != nil {
			return err
		}

		if err := tx.Delete(row).Error; err != nil {
			return err
		}
		return mirror(tx, sim)
	})
}

func findVolume(db *gorm.DB, simID uint64, name string) (*models.Volume, error) {
	var row models.Volume
	err := quiet(db).Where("simulation_id = ? AND name = ?", simID, name).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.NotFound("Volume not found")
		}
		return nil, err
	}
	return &row, nil
}

func renameVolumeReferences(tx *gorm.DB, simID uint64, from, to string) error {
	if err := tx.Model(&models.Volume{}).
		Where("simulation_id = ? AND mother = ?", simID, from).
		Update("mother", to).Error; err != nil {
		return err
	}
	if err := tx.Model(&models.Source{}).
		Where("simulation_id = ? AND attached_to = ?", simID, from).
		Update("attached_to", to).Error; err != nil {
		return err
	}

	var actors []models.Actor
	if err := tx.Where("simulation_id = ?", simID).Find(&actors).Error; err != nil {
		return err
	}
	for i := range actors {
		a := actors[i].Read()
		if a.AttachedTo != from {
			continue
		}
		a.AttachedTo = to
		actors[i].Set(a)
		if err := tx.Save(&actors[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
