package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Page window bounds for splitting reports.
const (
	MinPagesPerPart = 2
	MaxPagesPerPart = 20
)

// Config holds all application configuration
type Config struct {
	LLM      LLMConfig
	Pipeline PipelineConfig
	Storage  StorageConfig
}

// LLMConfig holds oracle-related configuration
type LLMConfig struct {
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float32
	Timeout     time.Duration
}

// PipelineConfig holds chunking and pacing configuration
type PipelineConfig struct {
	PagesPerPart int
	Cooldown     time.Duration
}

// StorageConfig holds the flat-file cache locations and the run ledger path
type StorageConfig struct {
	DataDir    string
	LedgerPath string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	dataDir := getEnv("ESG_DATA_DIR", "./data")
	return &Config{
		LLM: LLMConfig{
			Model:       getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			APIKey:      getEnv("GEMINI_API_KEY", ""),
			BaseURL:     getEnv("GEMINI_BASE_URL", ""),
			Temperature: getEnvAsFloat32("GEMINI_TEMPERATURE", 0.0),
			Timeout:     getEnvAsDuration("GEMINI_TIMEOUT", 120*time.Second),
		},
		Pipeline: PipelineConfig{
			PagesPerPart: getEnvAsInt("ESG_PAGES_PER_PART", 5),
			Cooldown:     getEnvAsDuration("ESG_COOLDOWN", 5*time.Second),
		},
		Storage: StorageConfig{
			DataDir:    dataDir,
			LedgerPath: getEnv("ESG_LEDGER_PATH", filepath.Join(dataDir, "esgpipe.db")),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate checks the loaded configuration. The credential check is the
// fail-fast precondition: it runs before any document is touched.
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "GEMINI_API_KEY is required", ErrMissingCredential)
	}
	if c.Pipeline.PagesPerPart < MinPagesPerPart || c.Pipeline.PagesPerPart > MaxPagesPerPart {
		return NewAppError("CONFIG_ERROR",
			fmt.Sprintf("ESG_PAGES_PER_PART must be between %d and %d", MinPagesPerPart, MaxPagesPerPart),
			ErrInvalidInput)
	}
	if c.Storage.DataDir == "" {
		return NewAppError("CONFIG_ERROR", "ESG_DATA_DIR is required", ErrInvalidInput)
	}
	return nil
}
