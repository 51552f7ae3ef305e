package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	DefaultExportsSubDir = "exports"
)

const (
	defaultPort          = "8080"
	defaultAllowedOrigin = "http://localhost:5173"
)

type Config struct {
	// database path
	DatabasePath string

	// storage root for generated files
	StoragePath string
	ExportsPath string // full-calculated path for export documents

	// http server settings
	Port          string
	AllowedOrigin string
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func LoadConfig() (Config, error) {
	dbPath := getEnvOrDefault("DATABASE_PATH", "visionboard.db")

	storage := getEnvOrDefault("STORAGE_PATH", filepath.Join(".", "storage"))
	absStorage, err := filepath.Abs(storage)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for storage '%s': %w", storage, err)
	}

	exportsSubDir := getEnvOrDefault("EXPORTS_SUBDIR", DefaultExportsSubDir)
	absExportsPath := filepath.Join(absStorage, exportsSubDir)

	cfg := Config{
		DatabasePath:  dbPath,
		StoragePath:   absStorage,
		ExportsPath:   absExportsPath,
		Port:          getEnvOrDefault("PORT", defaultPort),
		AllowedOrigin: getEnvOrDefault("ALLOWED_ORIGIN", defaultAllowedOrigin),
	}

	return cfg, nil
}
