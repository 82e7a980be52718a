// main.go
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
	stdlog "log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/localnerve/gatesim/internal/blob"
	"github.com/localnerve/gatesim/internal/config"
	"github.com/localnerve/gatesim/internal/database"
	"github.com/localnerve/gatesim/internal/engine"
	"github.com/localnerve/gatesim/internal/handlers"
	"github.com/localnerve/gatesim/internal/logging"
	"github.com/localnerve/gatesim/internal/middleware"
	"github.com/localnerve/gatesim/internal/services"

	_ "github.com/localnerve/gatesim/docs/api" // Swagger docs
)

// @title gatesim API
// @version 1.0.0
// @description Defines, persists and launches Monte-Carlo radiation transport simulations
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/gatesim
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	base, err := logging.New(cfg.Debug, cfg.LogLevel)
	if err != nil {
		stdlog.Fatalf("Failed to build logger: %v", err)
	}
	defer base.Sync()
	log := base.Sugar()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if n, err := services.RecoverRuns(db); err != nil {
		log.Fatalf("Failed to recover interrupted runs: %v", err)
	} else if n > 0 {
		log.Warnw("Marked interrupted runs as failed", "count", n)
	}

	outputRoot, err := filepath.Abs(cfg.OutputRoot)
	if err != nil {
		log.Fatalf("Invalid output root: %v", err)
	}
	if err := os.MkdirAll(outputRoot, 0o755); err != nil {
		log.Fatalf("Failed to create output root: %v", err)
	}

	blobs, err := blob.Open(context.Background(), cfg.Blob)
	if err != nil {
		log.Fatalf("Failed to open blob store: %v", err)
	}

	runner := &engine.ExecRunner{Command: cfg.EngineCommand, Args: cfg.EngineArgs, Logger: log}
	launcher := engine.NewLauncher(runner, cfg.EngineMaxConcurrentRuns, cfg.EngineRunTimeout, services.RunHooks(db, log), log)

	deps := services.Deps{
		DB:         db,
		OutputRoot: outputRoot,
		Launcher:   launcher,
		Blobs:      blobs,
		Log:        log,
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(log),
		AppName:      "gatesim",
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, X-Api-Version, X-Request-Id",
	}))

	// Prometheus metrics
	prometheus := fiberprometheus.New("gatesim")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/swagger/index.html")
	})

	health := &handlers.HealthHandler{Config: cfg, DB: db, Log: log}
	app.Get("/healthz", health.Check)

	// API routes under /api
	api := app.Group("/api")
	api.Use(middleware.VersionMiddleware())
	handlers.Register(api, handlers.Handlers{
		Simulations: &handlers.SimulationHandler{Service: services.NewSimulationService(deps)},
		Volumes:     &handlers.VolumeHandler{Service: services.NewVolumeService(deps)},
		Sources:     &handlers.SourceHandler{Service: services.NewSourceService(deps)},
		Actors:      &handlers.ActorHandler{Service: services.NewActorService(deps)},
	})

	// 404 handler
	app.Use(handlers.NotFound)

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	log.Infow("Starting server", "port", cfg.Port, "output_root", outputRoot, "blob_driver", blobs.Driver())
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := launcher.Shutdown(ctx); err != nil {
		log.Warnw("Engine runs canceled at shutdown", "error", err)
	}
	log.Info("Server stopped")
}
