package utils

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the runtime configuration of the server.
type Config struct {
	Port          string
	ScratchDir    string
	ScratchTTL    time.Duration
	MaxUploadSize int64 // bytes
	SweepSchedule string
	CORSOrigins   []string
}

var defaultCORSOrigins = []string{"http://localhost:3000", "http://localhost:5173"}

// LoadConfig reads envFile (if present) and then the process environment.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
		} else if err != nil {
			log.Printf("No %s file found, using environment", envFile)
		}
	}

	cfg := Config{
		Port:          getenv("PORT", "9000"),
		ScratchDir:    getenv("SCRATCH_DIR", filepath.Join(os.TempDir(), "ifcdash")),
		SweepSchedule: getenv("SWEEP_SCHEDULE", "*/15 * * * *"),
		CORSOrigins:   defaultCORSOrigins,
	}

	ttl, err := time.ParseDuration(getenv("SCRATCH_TTL", "1h"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid SCRATCH_TTL: %w", err)
	}
	if ttl <= 0 {
		return Config{}, fmt.Errorf("invalid SCRATCH_TTL: must be positive")
	}
	cfg.ScratchTTL = ttl

	mb, err := strconv.ParseInt(getenv("MAX_UPLOAD_MB", "200"), 10, 64)
	if err != nil || mb <= 0 {
		return Config{}, fmt.Errorf("invalid MAX_UPLOAD_MB: %q", os.Getenv("MAX_UPLOAD_MB"))
	}
	cfg.MaxUploadSize = mb << 20

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.CORSOrigins = nil
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
