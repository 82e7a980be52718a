// export.go
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
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/localnerve/gatesim/internal/blob"
	"github.com/localnerve/gatesim/internal/engine"
	"github.com/localnerve/gatesim/internal/metrics"
	"github.com/localnerve/gatesim/internal/schemas"
	"github.com/localnerve/gatesim/internal/types"
	"gopkg.in/yaml.v3"
)

const (
	exportPrefix    = "exports"
	exportURLExpiry = 15 * time.Minute
	manifestName    = "manifest.yaml"
)

type exportManifest struct {
	Simulation manifestSimulation `yaml:"simulation"`
	Volumes    []string           `yaml:"volumes"`
	Sources    []string           `yaml:"sources"`
	Actors     []string           `yaml:"actors"`
	Files      []manifestFile     `yaml:"files"`
	ExportedAt time.Time          `yaml:"exported_at"`
}

type manifestSimulation struct {
	ID      uint64  `yaml:"id"`
	Name    string  `yaml:"name"`
	NumRuns int     `yaml:"num_runs"`
	RunLen  float64 `yaml:"run_len"`
	Archive string  `yaml:"json_archive_filename"`
}

type manifestFile struct {
	Path string `yaml:"path"`
	Size int64  `yaml:"size"`
}

// Export zips the output directory with a manifest and uploads it to the blob store
func (s *SimulationService) Export(ctx context.Context, id uint64) (schemas.ExportResponse, error) {
	var out schemas.ExportResponse
	if s.Blobs == nil {
		return out, types.Unavailable("Export storage is not configured")
	}

	sim, err := findSimulation(s.DB, id)
	if err != nil {
		return out, err
	}
	def, err := loadDefinition(s.DB, sim)
	if err != nil {
		return out, err
	}
	if err := writeArchive(s.DB, sim, engine.Options{}); err != nil {
		return out, archiveWriteError(err)
	}

	now := time.Now().UTC()
	manifest := exportManifest{
		Simulation: manifestSimulation{
			ID:      sim.ID,
			Name:    sim.Name,
			NumRuns: sim.NumRuns,
			RunLen:  sim.RunLen,
			Archive: sim.JSONArchiveFilename,
		},
		ExportedAt: now,
	}
	for _, v := range def.Volumes {
		manifest.Volumes = append(manifest.Volumes, v.Name)
	}
	for _, src := range def.Sources {
		manifest.Sources = append(manifest.Sources, src.Name)
	}
	for _, a := range def.Actors {
		manifest.Actors = append(manifest.Actors, a.Name)
	}

	// the bundle is spooled to disk; the S3 driver needs a seekable body
	spool, err := os.CreateTemp("", "gatesim-export-*.zip")
	if err != nil {
		return out, fmt.Errorf("failed to create export file: %w", err)
	}
	defer func() {
		_ = spool.Close()
		_ = os.Remove(spool.Name())
	}()

	if err := bundle(spool, sim.OutputDir, sim.Name, &manifest); err != nil {
		return out, types.Internal("Failed to export simulation '%s': %v", sim.Name, err)
	}
	if _, err := spool.Seek(0, io.SeekStart); err != nil {
		return out, fmt.Errorf("failed to rewind export file: %w", err)
	}

	key := path.Join(exportPrefix, sim.Name, now.Format("20060102T150405.000Z")+".zip")
	info, err := s.Blobs.Put(ctx, key, spool, blob.PutOptions{
		ContentType: "application/zip",
		Metadata:    map[string]string{"simulation": sim.Name},
	})
	if err != nil {
		if errors.Is(err, blob.ErrExists) {
			return out, types.Conflict("Export '%s' already exists", key)
		}
		return out, fmt.Errorf("failed to upload export: %w", err)
	}
	metrics.ExportBytes.Observe(float64(info.Size))

	out = schemas.ExportResponse{
		MessageResponse: schemas.NewMessage(fmt.Sprintf("Simulation '%s' exported successfully", sim.Name)),
		Key:             info.Key,
		Size:            info.Size,
		ContentType:     info.ContentType,
	}
	url, err := s.Blobs.PresignURL(ctx, info.Key, exportURLExpiry)
	switch {
	case err == nil:
		out.URL, out.ExpiresAt = url, now.Add(exportURLExpiry)
	case errors.Is(err, blob.ErrUnsupported):
	default:
		s.Log.Warnw("failed to presign export", "key", info.Key, "error", err)
	}

	s.Log.Infow("simulation exported", "simulation", sim.Name, "key", info.Key, "size", info.Size)
	return out, nil
}

// ListExports returns the uploaded bundles, optionally for one simulation
func (s *SimulationService) ListExports(ctx context.Context, name string) ([]blob.Info, error) {
	if s.Blobs == nil {
		return nil, types.Unavailable("Export storage is not configured")
	}
	prefix := exportPrefix + "/"
	if name != "" {
		prefix = path.Join(exportPrefix, name) + "/"
	}
	return s.Blobs.List(ctx, prefix)
}

// bundle writes the files under dir into a zip rooted at name/, followed by the manifest
func bundle(w io.Writer, dir, name string, manifest *exportManifest) error {
	zw := zip.NewWriter(w)

	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && p == dir {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}

		hdr, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		hdr.Name = path.Join(name, filepath.ToSlash(rel))
		hdr.Method = zip.Deflate

		dst, err := zw.CreateHeader(hdr)
		if err != nil {
			return err
		}
		src, err := os.Open(p)
		if err != nil {
			return err
		}
		_, err = io.Copy(dst, src)
		src.Close()
		if err != nil {
			return err
		}
		manifest.Files = append(manifest.Files, manifestFile{Path: hdr.Name, Size: info.Size()})
		return nil
	})
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(manifest)
	if err != nil {
		return err
	}
	mw, err := zw.Create(path.Join(name, manifestName))
	if err != nil {
		return err
	}
	if _, err := mw.Write(data); err != nil {
		return err
	}
	return zw.Close()
}
