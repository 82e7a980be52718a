// commands.go
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

package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fatih/color"
	glebarez "github.com/glebarez/sqlite"
	"github.com/localnerve/gatesim/internal/blob"
	"github.com/localnerve/gatesim/internal/config"
	"github.com/localnerve/gatesim/internal/database"
	"github.com/localnerve/gatesim/internal/logging"
	"github.com/localnerve/gatesim/internal/models"
	"github.com/localnerve/gatesim/internal/services"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	okMark   = color.New(color.FgGreen).SprintFunc()
	warnMark = color.New(color.FgYellow).SprintFunc()
	failMark = color.New(color.FgRed).SprintFunc()
	heading  = color.New(color.FgCyan, color.Bold).SprintFunc()
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "admin",
		Short: "gatesim maintenance commands",
		Long: `admin runs maintenance tasks using the same environment as the gatesim server.

Examples:

  admin migrate
  admin recover-runs
  admin mirror 3
  admin import 3
  admin exports phantom
  admin health
  admin schema
`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		migrateCmd(),
		recoverRunsCmd(),
		mirrorCmd(),
		importCmd(),
		exportsCmd(),
		healthCmd(),
		schemaCmd(),
	)
	return root
}

type env struct {
	cfg *config.Config
	db  *gorm.DB
}

func (e *env) close() {
	if e.db != nil {
		database.Close(e.db)
	}
}

func (e *env) deps(ctx context.Context, withBlobs bool) (services.Deps, error) {
	root, err := filepath.Abs(e.cfg.OutputRoot)
	if err != nil {
		return services.Deps{}, fmt.Errorf("resolve output root: %w", err)
	}
	d := services.Deps{DB: e.db, OutputRoot: root, Log: logging.Nop()}
	if withBlobs {
		if d.Blobs, err = blob.Open(ctx, e.cfg.Blob); err != nil {
			return d, fmt.Errorf("open blob store: %w", err)
		}
	}
	return d, nil
}

func connect() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, db: db}, nil
}

func parseID(arg string) (uint64, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid simulation id '%s'", arg)
	}
	return id, nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := connect()
			if err != nil {
				return err
			}
			defer e.close()

			if err := database.AutoMigrate(e.db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s schema is up to date (%d tables)\n", okMark("✔"), len(models.All()))
			return nil
		},
	}
}

func recoverRunsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recover-runs",
		Short: "Mark runs left queued or running by a stopped server as failed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := connect()
			if err != nil {
				return err
			}
			defer e.close()

			n, err := services.RecoverRuns(e.db)
			if err != nil {
				return err
			}
			mark := okMark("✔")
			if n > 0 {
				mark = warnMark("!")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d interrupted run(s) marked failed\n", mark, n)
			return nil
		},
	}
}

func mirrorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mirror <simulation-id>",
		Short: "Rewrite the JSON archive of a simulation from the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			e, err := connect()
			if err != nil {
				return err
			}
			defer e.close()

			d, err := e.deps(cmd.Context(), false)
			if err != nil {
				return err
			}
			path, err := services.NewSimulationService(d).Mirror(id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s archive written to %s\n", okMark("✔"), path)
			return nil
		},
	}
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <simulation-id>",
		Short: "Replace the components of a simulation with the contents of its JSON archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			e, err := connect()
			if err != nil {
				return err
			}
			defer e.close()

			d, err := e.deps(cmd.Context(), false)
			if err != nil {
				return err
			}
			res, err := services.NewSimulationService(d).Import(id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s imported '%s': %d volume(s), %d source(s), %d actor(s)\n",
				okMark("✔"), res.Simulation.Name, res.Volumes, res.Sources, res.Actors)
			return nil
		},
	}
}

func exportsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exports [simulation-name]",
		Short: "List uploaded export bundles",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			e := &env{cfg: cfg}
			d, err := e.deps(cmd.Context(), true)
			if err != nil {
				return err
			}
			infos, err := services.NewSimulationService(d).ListExports(cmd.Context(), name)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(infos) == 0 {
				fmt.Fprintf(out, "%s no exports found\n", warnMark("!"))
				return nil
			}
			fmt.Fprintln(out, heading(fmt.Sprintf("%d export(s) in %s storage", len(infos), d.Blobs.Driver())))
			for _, info := range infos {
				fmt.Fprintf(out, "  %-60s %10d  %s\n", info.Key, info.Size, info.LastModified.Format(time.RFC3339))
			}
			return nil
		},
	}
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the database, output root, engine command and blob endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := connect()
			if err != nil {
				return err
			}
			defer e.close()

			res := services.HealthCheck(e.cfg, e.db, logging.Nop())
			printHealth(cmd.OutOrStdout(), res)
			if res.Status != "healthy" {
				return fmt.Errorf("%s", res.ErrorMessage)
			}
			return nil
		},
	}
}

func printHealth(w io.Writer, res services.HealthCheckResult) {
	row := func(name, state string) {
		if state == "" {
			return
		}
		mark := okMark("✔")
		if state != "ok" {
			mark = failMark("✘")
		}
		fmt.Fprintf(w, "%s %-10s %s\n", mark, name, state)
	}
	fmt.Fprintln(w, heading("gatesim "+res.Status))
	row("database", res.Database)
	row("storage", res.Storage)
	row("engine", res.Engine)
	row("blobs", res.BlobStore)
}

func schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the table definitions the models migrate to (SQLite dialect)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := gorm.Open(glebarez.Open("file::memory:"), &gorm.Config{
				Logger: logger.Default.LogMode(logger.Silent),
			})
			if err != nil {
				return err
			}
			defer database.Close(db)

			if err := database.AutoMigrate(db); err != nil {
				return err
			}
			return printSchema(cmd.OutOrStdout(), db)
		},
	}
}

func printSchema(w io.Writer, db *gorm.DB) error {
	var rows []struct {
		Name string
		SQL  string
	}
	err := db.Raw("SELECT name, sql FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name").
		Scan(&rows).Error
	if err != nil {
		return err
	}
	for _, r := range rows {
		fmt.Fprintf(w, "\n%s\n%s;\n", heading("=== "+r.Name+" ==="), r.SQL)
	}
	return nil
}
