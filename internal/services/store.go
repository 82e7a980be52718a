// store.go
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
	"fmt"
	"net/http"

	"github.com/localnerve/gatesim/internal/blob"
	"github.com/localnerve/gatesim/internal/engine"
	"github.com/localnerve/gatesim/internal/metrics"
	"github.com/localnerve/gatesim/internal/models"
	"github.com/localnerve/gatesim/internal/types"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/hints"
)

// Deps are shared by all services
type Deps struct {
	DB         *gorm.DB
	OutputRoot string
	Launcher   *engine.Launcher
	Blobs      blob.Store
	Log        *zap.SugaredLogger
}

// quiet silences the GORM logger for lookups where a missing row is an expected answer
func quiet(db *gorm.DB) *gorm.DB {
	return db.Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)})
}

// findSimulation loads a simulation row or returns the API not found error
func findSimulation(db *gorm.DB, id uint64) (*models.Simulation, error) {
	var sim models.Simulation
	err := quiet(db).Clauses(hints.Comment("select", "gatesim:find_simulation")).
		First(&sim, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.NotFound("Simulation with id %d not found", id)
		}
		return nil, err
	}
	return &sim, nil
}

// loadDefinition reads every component row of a simulation in insertion order
func loadDefinition(db *gorm.DB, sim *models.Simulation) (engine.Definition, error) {
	def := engine.Definition{Simulation: sim.Read()}
	q := db.Clauses(hints.Comment("select", "gatesim:definition")).
		Where("simulation_id = ?", sim.ID).Order("id").Session(&gorm.Session{})

	var volumes []models.Volume
	if err := q.Find(&volumes).Error; err != nil {
		return def, fmt.Errorf("failed to load volumes: %w", err)
	}
	var sources []models.Source
	if err := q.Find(&sources).Error; err != nil {
		return def, fmt.Errorf("failed to load sources: %w", err)
	}
	var actors []models.Actor
	if err := q.Find(&actors).Error; err != nil {
		return def, fmt.Errorf("failed to load actors: %w", err)
	}

	for i := range volumes {
		def.Volumes = append(def.Volumes, volumes[i].Read())
	}
	for i := range sources {
		def.Sources = append(def.Sources, sources[i].Read())
	}
	for i := range actors {
		def.Actors = append(def.Actors, actors[i].Read())
	}
	return def, nil
}

// writeArchive regenerates the on-disk archive of a simulation from its rows
func writeArchive(db *gorm.DB, sim *models.Simulation, opts engine.Options) error {
	def, err := loadDefinition(db, sim)
	if err != nil {
		return err
	}
	archive, err := engine.Build(def, opts)
	if err == nil {
		err = engine.WriteArchive(sim.ArchivePath(), archive)
	}
	metrics.ArchiveWrites.WithLabelValues(metrics.Result(err)).Inc()
	return err
}

// mirror keeps the archive in step with the rows after a mutation.
// It runs inside the mutating transaction so a failed write rolls the rows back.
func mirror(tx *gorm.DB, sim *models.Simulation) error {
	if err := writeArchive(tx, sim, engine.Options{}); err != nil {
		return archiveWriteError(err)
	}
	return nil
}

func archiveWriteError(err error) error {
	var ce *types.CustomError
	if errors.As(err, &ce) {
		return err
	}
	return types.Internal("Failed to write simulation archive: %v", err)
}

// isNotFound reports whether err is an API not found error
func isNotFound(err error) bool {
	var ce *types.CustomError
	return errors.As(err, &ce) && ce.Code == http.StatusNotFound
}

// duplicate reports whether err is a unique constraint violation
func duplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
