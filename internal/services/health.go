package services

import (
	"fmt"
	"log"

	"github.com/docuchat/docuchat/internal/config"
	"github.com/docuchat/docuchat/internal/utils"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	ModelRuntime string            `json:"model_runtime"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck probes the metadata store and the model runtime.
func HealthCheck(cfg *config.Config, db *gorm.DB) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	// Check database connectivity
	sqlDB, err := db.DB()
	if err != nil {
		result.Status = "unhealthy"
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database connection error: %v", err)
		log.Printf("Health check failed - database connection: %v", err)
	} else {
		if err := sqlDB.Ping(); err != nil {
			result.Status = "unhealthy"
			result.Database = "unreachable"
			result.Details["database_ping_error"] = err.Error()
			result.ErrorMessage = fmt.Sprintf("Database ping failed: %v", err)
			log.Printf("Health check failed - database ping: %v", err)
		} else {
			result.Database = "ok"
			result.Details["database_type"] = cfg.DBType
			result.Details["database_name"] = cfg.DBDatabase
		}
	}

	// Check model runtime connectivity
	if err := utils.PingModelRuntime(cfg.OllamaBaseURL); err != nil {
		result.Status = "unhealthy"
		result.ModelRuntime = "unreachable"
		result.Details["model_runtime_error"] = err.Error()
		if result.ErrorMessage == "" {
			result.ErrorMessage = fmt.Sprintf("Model runtime ping failed: %v", err)
		} else {
			result.ErrorMessage += fmt.Sprintf("; model runtime ping failed: %v", err)
		}
		log.Printf("Health check failed - model runtime ping: %v", err)
	} else {
		result.ModelRuntime = "ok"
		result.Details["model_runtime_url"] = cfg.OllamaBaseURL
	}

	return result
}
