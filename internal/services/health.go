package services

import (
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/localnerve/gatesim/internal/config"
	"github.com/localnerve/gatesim/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Storage      string            `json:"storage"`
	Engine       string            `json:"engine"`
	BlobStore    string            `json:"blob_store,omitempty"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

func (r *HealthCheckResult) fail(detailKey string, err error, format string) {
	r.Status = "unhealthy"
	r.Details[detailKey] = err.Error()
	msg := fmt.Sprintf(format, err)
	if r.ErrorMessage == "" {
		r.ErrorMessage = msg
	} else {
		r.ErrorMessage += "; " + msg
	}
}

// HealthCheck checks the database, the output root, the engine command and a remote blob endpoint
func HealthCheck(cfg *config.Config, db *gorm.DB, log *zap.SugaredLogger) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	// Check database connectivity
	sqlDB, err := db.DB()
	if err != nil {
		result.Database = "error"
		result.fail("database_error", err, "Database connection error: %v")
		log.Warnw("health check failed", "check", "database", "error", err)
	} else if err := sqlDB.Ping(); err != nil {
		result.Database = "unreachable"
		result.fail("database_ping_error", err, "Database ping failed: %v")
		log.Warnw("health check failed", "check", "database_ping", "error", err)
	} else {
		result.Database = "ok"
		result.Details["database_type"] = cfg.DBType
		result.Details["database_name"] = cfg.DBDatabase
	}

	// The output root must accept new files
	if err := probeWritable(cfg.OutputRoot); err != nil {
		result.Storage = "unwritable"
		result.fail("storage_error", err, "Output root check failed: %v")
		log.Warnw("health check failed", "check", "storage", "error", err)
	} else {
		result.Storage = "ok"
		result.Details["output_root"] = cfg.OutputRoot
	}

	if path, err := exec.LookPath(cfg.EngineCommand); err != nil {
		result.Engine = "missing"
		result.fail("engine_error", err, "Engine command lookup failed: %v")
		log.Warnw("health check failed", "check", "engine", "error", err)
	} else {
		result.Engine = "ok"
		result.Details["engine_command"] = path
	}

	if cfg.Blob.Driver == "s3" && cfg.Blob.S3Endpoint != "" {
		if err := utils.PingService(cfg.Blob.S3Endpoint, 1500*time.Millisecond); err != nil {
			result.BlobStore = "unreachable"
			result.fail("blob_error", err, "Blob endpoint ping failed: %v")
			log.Warnw("health check failed", "check", "blob", "error", err)
		} else {
			result.BlobStore = "ok"
			result.Details["blob_endpoint"] = cfg.Blob.S3Endpoint
		}
	}

	if result.Status == "healthy" {
		log.Debug("health check passed")
	}
	return result
}

func probeWritable(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".health-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}
