// runs.go
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
	"errors"
	"time"

	"github.com/localnerve/gatesim/internal/engine"
	"github.com/localnerve/gatesim/internal/models"
	"github.com/localnerve/gatesim/internal/schemas"
	"github.com/localnerve/gatesim/internal/types"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// RunHooks records launcher transitions on the run rows
func RunHooks(db *gorm.DB, log *zap.SugaredLogger) engine.Hooks {
	return engine.Hooks{
		Started: func(runID string) {
			now := time.Now().UTC()
			err := db.Model(&models.Run{}).
				Where("id = ? AND status = ?", runID, models.RunQueued).
				Updates(map[string]interface{}{"status": models.RunRunning, "started_at": now}).Error
			if err != nil {
				log.Errorw("failed to mark run started", "run", runID, "error", err)
			}
		},
		Finished: func(runID string, runErr error) {
			status, message := models.RunSucceeded, ""
			switch {
			case errors.Is(runErr, engine.ErrRunCanceled):
				status = models.RunCanceled
			case runErr != nil:
				status, message = models.RunFailed, runErr.Error()
			}
			err := db.Model(&models.Run{}).Where("id = ?", runID).
				Updates(map[string]interface{}{
					"status":      status,
					"error":       message,
					"finished_at": time.Now().UTC(),
				}).Error
			if err != nil {
				log.Errorw("failed to mark run finished", "run", runID, "status", status, "error", err)
			}
		},
	}
}

// RecoverRuns fails runs left queued or running by a previous process
func RecoverRuns(db *gorm.DB) (int64, error) {
	res := db.Model(&models.Run{}).
		Where("status IN ?", []string{models.RunQueued, models.RunRunning}).
		Updates(map[string]interface{}{
			"status":      models.RunFailed,
			"error":       "interrupted by server restart",
			"finished_at": time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

// Run regenerates the archive with a progress bar and launches the engine
func (s *SimulationService) Run(id uint64) (schemas.RunRead, error) {
	return s.launch(id, false)
}

// View regenerates the archive with visualization enabled and launches the engine
func (s *SimulationService) View(id uint64) (schemas.RunRead, error) {
	return s.launch(id, true)
}

func (s *SimulationService) launch(id uint64, visu bool) (schemas.RunRead, error) {
	if s.Launcher == nil {
		return schemas.RunRead{}, types.Unavailable("Simulation engine is not available")
	}
	sim, err := findSimulation(s.DB, id)
	if err != nil {
		return schemas.RunRead{}, err
	}

	if err := writeArchive(s.DB, sim, engine.Options{Visu: visu, ProgressBar: !visu}); err != nil {
		return schemas.RunRead{}, archiveWriteError(err)
	}

	run := models.Run{SimulationID: sim.ID, Mode: models.RunModeRun, Status: models.RunQueued}
	if visu {
		run.Mode = models.RunModeView
	}
	if err := s.DB.Create(&run).Error; err != nil {
		return schemas.RunRead{}, err
	}

	err = s.Launcher.Submit(engine.RunRequest{
		RunID:       run.ID,
		ArchivePath: sim.ArchivePath(),
		WorkDir:     sim.OutputDir,
		Visu:        visu,
	})
	if err != nil {
		now := time.Now().UTC()
		run.Status, run.Error, run.FinishedAt = models.RunFailed, err.Error(), &now
		if serr := s.DB.Save(&run).Error; serr != nil {
			s.Log.Errorw("failed to record rejected run", "run", run.ID, "error", serr)
		}
		if errors.Is(err, engine.ErrLauncherClosed) {
			return schemas.RunRead{}, types.Unavailable("Simulation engine is shutting down")
		}
		return schemas.RunRead{}, err
	}

	s.Log.Infow("run queued", "simulation", sim.Name, "run", run.ID, "mode", run.Mode)
	return run.Read(), nil
}

// ListRuns returns the runs of a simulation, newest first
func (s *SimulationService) ListRuns(id uint64) ([]schemas.RunRead, error) {
	if _, err := findSimulation(s.DB, id); err != nil {
		return nil, err
	}

	var runs []models.Run
	err := s.DB.Clauses(hints.Comment("select", "gatesim:list_runs")).
		Where("simulation_id = ?", id).
		Order("created_at DESC").Find(&runs).Error
	if err != nil {
		return nil, err
	}

	out := make([]schemas.RunRead, 0, len(runs))
	for i := range runs {
		out = append(out, runs[i].Read())
	}
	return out, nil
}

func (s *SimulationService) GetRun(id uint64, runID string) (schemas.RunRead, error) {
	run, err := s.findRun(id, runID)
	if err != nil {
		return schemas.RunRead{}, err
	}
	return run.Read(), nil
}

// CancelRun stops a queued or running run. Runs unknown to the launcher are marked canceled directly.
func (s *SimulationService) CancelRun(id uint64, runID string) (schemas.RunRead, error) {
	run, err := s.findRun(id, runID)
	if err != nil {
		return schemas.RunRead{}, err
	}
	if run.Finished() {
		return schemas.RunRead{}, types.Conflict("Run '%s' already finished with status '%s'", run.ID, run.Status)
	}

	if s.Launcher != nil && s.Launcher.Cancel(run.ID) {
		return run.Read(), nil
	}

	canceled, err := markCanceled(s.DB, run.ID)
	if err != nil {
		return schemas.RunRead{}, err
	}
	if err := s.DB.First(run, "id = ?", run.ID).Error; err != nil {
		return schemas.RunRead{}, err
	}
	if !canceled {
		return schemas.RunRead{}, types.Conflict("Run '%s' already finished with status '%s'", run.ID, run.Status)
	}
	return run.Read(), nil
}

// markCanceled cancels a run row only while it is still queued or running
func markCanceled(db *gorm.DB, runID string) (bool, error) {
	now := time.Now().UTC()
	res := db.Model(&models.Run{}).
		Where("id = ? AND status IN ?", runID, []string{models.RunQueued, models.RunRunning}).
		Updates(map[string]interface{}{"status": models.RunCanceled, "finished_at": now})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *SimulationService) findRun(id uint64, runID string) (*models.Run, error) {
	if _, err := findSimulation(s.DB, id); err != nil {
		return nil, err
	}

	var run models.Run
	err := quiet(s.DB).Where("id = ? AND simulation_id = ?", runID, id).First(&run).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.NotFound("Run '%s' not found in simulation '%d'.", runID, id)
		}
		return nil, err
	}
	return &run, nil
}
