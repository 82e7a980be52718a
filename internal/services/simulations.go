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

package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/localnerve/gatesim/internal/engine"
	"github.com/localnerve/gatesim/internal/models"
	"github.com/localnerve/gatesim/internal/schemas"
	"github.com/localnerve/gatesim/internal/types"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// SimulationService manages simulations and their lifecycle on disk
type SimulationService struct {
	Deps
}

func NewSimulationService(d Deps) *SimulationService {
	return &SimulationService{Deps: d}
}

// Create inserts a simulation with its world volume and writes the first archive
func (s *SimulationService) Create(in schemas.SimulationCreate) (schemas.SimulationRead, error) {
	sim := models.Simulation{
		NumRuns: in.NumRunsOrDefault(),
		RunLen:  in.RunLenOrDefault(),
	}
	sim.SetName(s.OutputRoot, in.Name)

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if taken, err := nameTaken(tx, sim.Name, 0); err != nil {
			return err
		} else if taken {
			return types.Conflict("Simulation with that name already exists")
		}
		if err := tx.Create(&sim).Error; err != nil {
			if duplicate(err) {
				return types.Conflict("Simulation with that name already exists")
			}
			return err
		}
		return mirror(tx, &sim)
	})
	if err != nil {
		return schemas.SimulationRead{}, err
	}

	s.Log.Infow("simulation created", "id", sim.ID, "name", sim.Name)
	return sim.Read(), nil
}

// List returns every simulation ordered by id
func (s *SimulationService) List() ([]schemas.SimulationRead, error) {
	var sims []models.Simulation
	err := s.DB.Clauses(hints.Comment("select", "gatesim:list_simulations")).
		Order("id").Find(&sims).Error
	if err != nil {
		return nil, err
	}

	out := make([]schemas.SimulationRead, 0, len(sims))
	for i := range sims {
		out = append(out, sims[i].Read())
	}
	return out, nil
}

func (s *SimulationService) Get(id uint64) (schemas.SimulationRead, error) {
	sim, err := findSimulation(s.DB, id)
	if err != nil {
		return schemas.SimulationRead{}, err
	}
	return sim.Read(), nil
}

// Update applies a partial update. A rename moves the output directory and drops the stale archive.
func (s *SimulationService) Update(id uint64, in schemas.SimulationUpdate) (schemas.SimulationRead, error) {
	var sim *models.Simulation
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		if sim, err = findSimulation(tx, id); err != nil {
			return err
		}
		prev := *sim

		if in.Name != nil && *in.Name != sim.Name {
			taken, err := nameTaken(tx, *in.Name, sim.ID)
			if err != nil {
				return err
			}
			if taken {
				return types.Conflict("Simulation with that name already exists")
			}
			sim.SetName(s.OutputRoot, *in.Name)
		}
		if in.NumRuns != nil {
			sim.NumRuns = in.NumRuns.Int()
		}
		if in.RunLen != nil {
			sim.RunLen = *in.RunLen
		}

		if err := tx.Save(sim).Error; err != nil {
			if duplicate(err) {
				return types.Conflict("Simulation with that name already exists")
			}
			return err
		}

		moved, err := moveOutputDir(&prev, sim)
		if err != nil {
			return types.Internal("Failed to rename simulation directory: %v", err)
		}
		if err := mirror(tx, sim); err != nil {
			if moved {
				if rerr := os.Rename(sim.OutputDir, prev.OutputDir); rerr != nil {
					s.Log.Errorw("failed to restore simulation directory", "from", sim.OutputDir, "to", prev.OutputDir, "error", rerr)
				}
			}
			return err
		}
		return nil
	})
	if err != nil {
		return schemas.SimulationRead{}, err
	}
	return sim.Read(), nil
}

// moveOutputDir renames the output directory after a simulation rename
// and removes the archive written under the old name.
func moveOutputDir(prev, sim *models.Simulation) (bool, error) {
	if prev.OutputDir == sim.OutputDir {
		return false, nil
	}
	if _, err := os.Stat(prev.OutputDir); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if err := os.MkdirAll(filepath.Dir(sim.OutputDir), 0o755); err != nil {
		return false, err
	}
	if err := os.Rename(prev.OutputDir, sim.OutputDir); err != nil {
		return false, err
	}

	stale := filepath.Join(sim.OutputDir, prev.JSONArchiveFilename)
	if err := os.Remove(stale); err != nil && !errors.Is(err, os.ErrNotExist) {
		return true, err
	}
	return true, nil
}

// Delete removes the simulation rows, cancels its active runs and removes its output directory
func (s *SimulationService) Delete(id uint64) (string, error) {
	var sim *models.Simulation
	var active []models.Run
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		if sim, err = findSimulation(tx, id); err != nil {
			return err
		}
		if err := tx.Where("simulation_id = ? AND status IN ?", id, []string{models.RunQueued, models.RunRunning}).
			Find(&active).Error; err != nil {
			return err
		}
		for _, table := range []interface{}{&models.Run{}, &models.Actor{}, &models.Source{}, &models.Volume{}} {
			if err := tx.Where("simulation_id = ?", id).Delete(table).Error; err != nil {
				return err
			}
		}
		return tx.Delete(sim).Error
	})
	if err != nil {
		return "", err
	}

	if s.Launcher != nil {
		for _, run := range active {
			s.Launcher.Cancel(run.ID)
		}
	}
	if err := os.RemoveAll(sim.OutputDir); err != nil {
		s.Log.Warnw("failed to remove simulation directory", "dir", sim.OutputDir, "error", err)
	}

	s.Log.Infow("simulation deleted", "id", id, "name", sim.Name)
	return sim.Name, nil
}

// ImportResult counts the rows rebuilt from an archive
type ImportResult struct {
	Simulation schemas.SimulationRead
	Volumes    int
	Sources    int
	Actors     int
}

// Import replaces the component rows of a simulation with the contents of its archive
func (s *SimulationService) Import(id uint64) (ImportResult, error) {
	var res ImportResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		sim, err := findSimulation(tx, id)
		if err != nil {
			return err
		}

		archive, err := engine.ReadArchive(sim.ArchivePath())
		if err != nil {
			return importError(err)
		}
		def, err := engine.Restore(archive)
		if err != nil {
			return importError(err)
		}

		for _, table := range []interface{}{&models.Actor{}, &models.Source{}, &models.Volume{}} {
			if err := tx.Where("simulation_id = ?", id).Delete(table).Error; err != nil {
				return err
			}
		}
		for _, v := range def.Volumes {
			row := models.NewVolume(sim.ID, v)
			if err := tx.Create(&row).Error; err != nil {
				return importRowError(err, "volume", v.Name)
			}
		}
		for _, src := range def.Sources {
			row := models.NewSource(sim.ID, src)
			if err := tx.Create(&row).Error; err != nil {
				return importRowError(err, "source", src.Name)
			}
		}
		for _, act := range def.Actors {
			row := models.NewActor(sim.ID, act)
			if err := tx.Create(&row).Error; err != nil {
				return importRowError(err, "actor", act.Name)
			}
		}

		res = ImportResult{
			Simulation: sim.Read(),
			Volumes:    len(def.Volumes),
			Sources:    len(def.Sources),
			Actors:     len(def.Actors),
		}
		return nil
	})
	return res, err
}

func importError(err error) error {
	var ae *engine.ArchiveError
	switch {
	case errors.Is(err, engine.ErrArchiveNotFound):
		return types.NotFound("Simulation configuration file not found")
	case errors.As(err, &ae):
		return types.BadRequest("Simulation JSON is invalid or out-of-sync: %s", ae.Detail)
	}
	return err
}

func importRowError(err error, kind, name string) error {
	if duplicate(err) {
		return types.BadRequest("Simulation JSON is invalid or out-of-sync: duplicate %s '%s' in archive.", kind, name)
	}
	return fmt.Errorf("failed to import %s '%s': %w", kind, name, err)
}

// Mirror rewrites the archive of a simulation from its rows
func (s *SimulationService) Mirror(id uint64) (string, error) {
	sim, err := findSimulation(s.DB, id)
	if err != nil {
		return "", err
	}
	if err := writeArchive(s.DB, sim, engine.Options{}); err != nil {
		return "", archiveWriteError(err)
	}
	return sim.ArchivePath(), nil
}

// Reconstruct runs a filtered back-projection over the projection image of the last run
func (s *SimulationService) Reconstruct(ctx context.Context, id uint64, in schemas.ReconstructRequest) (string, error) {
	sim, err := findSimulation(s.DB, id)
	if err != nil {
		return "", err
	}

	projection := filepath.Join(sim.OutputDir, "output", "projection.mhd")
	if _, err := os.Stat(projection); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", types.NotFound("projection.mhd not found at %s", projection)
		}
		return "", err
	}
	if s.Launcher == nil {
		return "", types.Unavailable("Simulation engine is not available")
	}

	output := filepath.Join(sim.OutputDir, "output", "reconstruction.mhd")
	err = s.Launcher.Runner().Reconstruct(ctx, engine.ReconRequest{
		ProjectionPath: projection,
		OutputPath:     output,
		WorkDir:        sim.OutputDir,
		SOD:            in.SOD,
		SDD:            in.SDD,
	})
	if err != nil {
		s.Log.Errorw("reconstruction failed", "simulation", sim.Name, "error", err)
		return "", types.Internal("Reconstruction failed: %v", err)
	}
	return output, nil
}

// nameTaken reports whether another simulation already uses name
func nameTaken(tx *gorm.DB, name string, exceptID uint64) (bool, error) {
	var count int64
	err := quiet(tx).Model(&models.Simulation{}).
		Where("name = ? AND id <> ?", name, exceptID).Count(&count).Error
	return count > 0, err
}
