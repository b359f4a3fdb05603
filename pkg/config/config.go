// Package config loads application configuration from environment
// variables (with .env support in development).
package config

import (
	"errors"
	"os"
	"strconv"

	// Load environment variables from .env files when present.
	_ "github.com/joho/godotenv/autoload"
)

// Config holds all application configuration
type Config struct {
	Input         InputConfig
	Oracles       OracleConfig
	Resolution    ResolutionConfig
	Batch         BatchConfig
	Observability ObservabilityConfig
}

// InputConfig locates the documents and the driver roster.
type InputConfig struct {
	Folder       string
	RegistryPath string
	AuditIndex   string // empty disables the audit index
	OCRCommand   string // external OCR command for image-only PDFs
	DryRun       bool
}

// OracleConfig points at the inference backends. Empty endpoints
// disable the corresponding resolution stage.
type OracleConfig struct {
	NEREndpoint    string
	EmbedEndpoint  string
	EmbedModel     string
	EmbedCachePath string
	TimeoutSeconds int
}

// ResolutionConfig carries the cascade thresholds.
type ResolutionConfig struct {
	NERThreshold       int
	GlobalThreshold    int
	FinalThreshold     int
	EmbeddingThreshold float64
}

// BatchConfig sizes the worker pool and the optional watch schedule.
type BatchConfig struct {
	Workers   int    // 0 means NumCPU-1
	WatchSpec string // cron expression; empty disables watch mode
}

type ObservabilityConfig struct {
	MetricsEnabled bool
	MetricsPort    int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Input: InputConfig{
			Folder:       getEnv("INPUT_FOLDER", "./documentos"),
			RegistryPath: getEnv("REGISTRY_PATH", "./motoristas.csv"),
			AuditIndex:   getEnv("AUDIT_INDEX_PATH", ""),
			OCRCommand:   getEnv("OCR_COMMAND", ""),
			DryRun:       getEnvAsBool("DRY_RUN", false),
		},
		Oracles: OracleConfig{
			NEREndpoint:    getEnv("NER_ENDPOINT", ""),
			EmbedEndpoint:  getEnv("EMBED_ENDPOINT", ""),
			EmbedModel:     getEnv("EMBED_MODEL", "paraphrase-multilingual-MiniLM-L12-v2"),
			EmbedCachePath: getEnv("EMBED_CACHE_PATH", "./motoristas_embeddings.json"),
			TimeoutSeconds: getEnvAsInt("ORACLE_TIMEOUT_SECONDS", 30),
		},
		Resolution: ResolutionConfig{
			NERThreshold:       getEnvAsInt("NER_FUZZY_THRESHOLD", 97),
			GlobalThreshold:    getEnvAsInt("GLOBAL_FUZZY_THRESHOLD", 97),
			FinalThreshold:     getEnvAsInt("FINAL_FUZZY_THRESHOLD", 98),
			EmbeddingThreshold: getEnvAsFloat("EMBED_SIM_THRESHOLD", 0.93),
		},
		Batch: BatchConfig{
			Workers:   getEnvAsInt("WORKERS", 0),
			WatchSpec: getEnv("WATCH_SPEC", ""),
		},
		Observability: ObservabilityConfig{
			MetricsEnabled: getEnvAsBool("METRICS_ENABLED", false),
			MetricsPort:    getEnvAsInt("METRICS_PORT", 9090),
		},
	}

	if cfg.Input.Folder == "" {
		return nil, errors.New("INPUT_FOLDER is required")
	}
	if cfg.Input.RegistryPath == "" {
		return nil, errors.New("REGISTRY_PATH is required")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}
