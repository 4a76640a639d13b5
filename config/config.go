package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/docker/go-units"
	"github.com/joho/godotenv"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	Port       string
	Store      string
	DBURL      string
	CORSOrigin string

	JWTSecret         string
	AdminEmail        string
	AdminPasswordHash string

	PageSize int
	// 0 keeps the whole collection in every snapshot
	SnapshotLimit int

	ImageMaxWidth  int
	ImageQuality   int
	ImageMaxPixels int
	MaxUploadSize  int64

	WhatsAppNumber   string
	ResubscribeDelay time.Duration

	LogLevel  string
	LogFormat string
}

// Load reads a .env file when present, then the process environment.
// Every problem found is reported, not just the first.
func Load() (*Config, bool, error) {
	dotenv := godotenv.Load() == nil

	var errs []error
	cfg := &Config{
		Port:       getEnv("PORT", "8080"),
		Store:      strings.ToLower(getEnv("STORE", StorePostgres)),
		DBURL:      getEnv("DB_URL", ""),
		CORSOrigin: getEnv("CORS_ORIGIN", "*"),

		JWTSecret:         mustEnv("JWT_SECRET", &errs),
		AdminEmail:        getEnv("ADMIN_EMAIL", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),

		PageSize:      getInt("PAGE_SIZE", 12, &errs),
		SnapshotLimit: getInt("SNAPSHOT_LIMIT", 0, &errs),

		ImageMaxWidth:  getInt("IMAGE_MAX_WIDTH", 800, &errs),
		ImageQuality:   getInt("IMAGE_QUALITY", 60, &errs),
		ImageMaxPixels: getInt("IMAGE_MAX_PIXELS", 40_000_000, &errs),
		MaxUploadSize:  getSize("MAX_UPLOAD_SIZE", "10MB", &errs),

		WhatsAppNumber:   getEnv("WHATSAPP_NUMBER", ""),
		ResubscribeDelay: getDuration("RESUBSCRIBE_DELAY", 5*time.Second, &errs),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}

	switch cfg.Store {
	case StorePostgres:
		if cfg.DBURL == "" {
			errs = append(errs, fmt.Errorf("DB_URL is required when STORE=%s", StorePostgres))
		}
	case StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("STORE must be %s or %s, got %q", StorePostgres, StoreMemory, cfg.Store))
	}
	if cfg.PageSize < 1 {
		errs = append(errs, fmt.Errorf("PAGE_SIZE must be positive"))
	}
	if cfg.ImageQuality < 1 || cfg.ImageQuality > 100 {
		errs = append(errs, fmt.Errorf("IMAGE_QUALITY must be between 1 and 100"))
	}
	if cfg.ImageMaxWidth < 1 {
		errs = append(errs, fmt.Errorf("IMAGE_MAX_WIDTH must be positive"))
	}

	return cfg, dotenv, errors.Join(errs...)
}

// AdminConfigured reports whether admin login can succeed.
func (c *Config) AdminConfigured() bool {
	return c.AdminEmail != "" && c.AdminPasswordHash != ""
}

func mustEnv(key string, errs *[]error) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		*errs = append(*errs, fmt.Errorf("missing required environment variable: %s", key))
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int, errs *[]error) int {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %q is not an integer", key, v))
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return d
}

// sizes are human readable: "10MB", "512KiB"
func getSize(key string, fallback string, errs *[]error) int64 {
	v := getEnv(key, fallback)
	n, err := units.RAMInBytes(v)
	if err != nil || n <= 0 {
		*errs = append(*errs, fmt.Errorf("%s: invalid size %q", key, v))
		n, _ = units.RAMInBytes(fallback)
	}
	return n
}
