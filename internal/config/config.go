package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port        string
	CORSOrigins []string

	// Database configuration
	DBType            string // mysql, postgres, sqlite, sqlserver, etc.
	DBHost            string
	DBPort            string
	DBDatabase        string
	DBUser            string
	DBPassword        string
	DBConnectionLimit int

	// Model runtime configuration (Ollama-compatible API)
	OllamaBaseURL     string
	DefaultLLMModel   string
	DefaultEmbedModel string
	LLMRequestTimeout time.Duration

	// Text splitting
	ChunkSize    int
	ChunkOverlap int

	// Storage roots
	UploadPath       string
	IndexStoragePath string
	MaxUploadSize    int
}

// Load loads configuration from environment variables.
// An optional .env file in the working directory is read first.
func Load() (*Config, error) {
	// Missing .env is fine, real environments set variables directly
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "8000"),
		CORSOrigins:       getEnvAsList("CORS_ORIGINS", "http://localhost:3000,http://localhost:8080"),
		DBType:            getEnv("DB_TYPE", "sqlite"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBDatabase:        getEnv("DB_DATABASE", "./docuchat.db"),
		DBUser:            getEnv("DB_USER", ""),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBConnectionLimit: getEnvAsInt("DB_CONNECTION_LIMIT", 5),
		OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		DefaultLLMModel:   getEnv("DEFAULT_LLM_MODEL", "llama2"),
		DefaultEmbedModel: getEnv("DEFAULT_EMBED_MODEL", "nomic-embed-text"),
		LLMRequestTimeout: time.Duration(getEnvAsInt("LLM_REQUEST_TIMEOUT", 120)) * time.Second,
		ChunkSize:         getEnvAsInt("CHUNK_SIZE", 1024),
		ChunkOverlap:      getEnvAsInt("CHUNK_OVERLAP", 20),
		UploadPath:        getEnv("UPLOAD_PATH", "./data/uploads"),
		IndexStoragePath:  getEnv("INDEX_STORAGE_PATH", "./data/vector_store"),
		MaxUploadSize:     getEnvAsInt("MAX_UPLOAD_SIZE", 50*1024*1024),
	}

	// Validate required fields
	if cfg.DBDatabase == "" {
		return nil, fmt.Errorf("DB_DATABASE is required")
	}
	if cfg.DBType != "sqlite" && cfg.DBUser == "" {
		return nil, fmt.Errorf("DB_USER is required for %s", cfg.DBType)
	}
	if cfg.OllamaBaseURL == "" {
		return nil, fmt.Errorf("OLLAMA_BASE_URL is required")
	}
	if cfg.ChunkSize <= 0 {
		return nil, fmt.Errorf("CHUNK_SIZE must be positive")
	}
	if cfg.ChunkOverlap < 0 || cfg.ChunkOverlap >= cfg.ChunkSize {
		return nil, fmt.Errorf("CHUNK_OVERLAP must be in [0, CHUNK_SIZE)")
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList gets a comma-separated environment variable as a string slice
func getEnvAsList(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
