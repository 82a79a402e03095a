package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all settings the guestbook binaries read from the environment.
// Database and Redis connection settings are read directly by the db package.
type Config struct {
	ListenAddr string
	AdminToken string

	MinIO  MinIOConfig
	Export ExportConfig
}

// MinIOConfig holds MinIO connection configuration for photo storage.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	// PublicBaseURL is the externally reachable root under which uploaded
	// objects are served, e.g. https://media.example.com
	PublicBaseURL string
}

// ExportConfig holds settings for the archival exporter.
type ExportConfig struct {
	// OutputDir is where the raw backup, photo files and snapshots are written.
	OutputDir string
	// ExcludedIDs are entry ids left out of the "clean" snapshot variants.
	// These are the known seed/test entries, configured explicitly rather
	// than inferred from position so real early entries are never dropped.
	ExcludedIDs []int64
	// Schedule is an optional cron spec for in-process snapshot runs.
	// Empty disables scheduling; the export CLI is the usual entry point.
	Schedule string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	adminToken := os.Getenv("ADMIN_TOKEN")
	if adminToken == "" {
		return nil, fmt.Errorf("ADMIN_TOKEN is required")
	}

	excluded, err := parseIDList(os.Getenv("EXPORT_EXCLUDE_IDS"))
	if err != nil {
		return nil, fmt.Errorf("invalid EXPORT_EXCLUDE_IDS: %w", err)
	}

	return &Config{
		ListenAddr: getEnvOrDefault("LISTEN_ADDR", ":9092"),
		AdminToken: adminToken,
		MinIO: MinIOConfig{
			Endpoint:      os.Getenv("MINIO_ENDPOINT"),
			AccessKey:     os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey:     os.Getenv("MINIO_SECRET_KEY"),
			UseSSL:        os.Getenv("MINIO_USE_SSL") == "true",
			Bucket:        getEnvOrDefault("MINIO_BUCKET", "guestbook"),
			PublicBaseURL: getEnvOrDefault("MINIO_PUBLIC_URL", "http://localhost:9000"),
		},
		Export: ExportConfig{
			OutputDir:   getEnvOrDefault("EXPORT_OUTPUT_DIR", "export"),
			ExcludedIDs: excluded,
			Schedule:    os.Getenv("EXPORT_SCHEDULE"),
		},
	}, nil
}

// parseIDList parses a comma-separated list of entry ids, e.g. "1,2,3".
func parseIDList(s string) ([]int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad id %q: %w", p, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// getEnvOrDefault returns the environment variable value or a default value if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
