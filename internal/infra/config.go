package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv             string
	Port               string
	DatabaseURL        string
	JWTSecret          string
	RedisURL           string
	GeoIPDBPath        string
	ProgramsFile       string
	CORSAllowedOrigins []string
	ArchiveBackend     string
	ArchivePath        string
	ArchiveS3Bucket    string
	ArchiveS3Prefix    string
	AWSRegion          string
	ArchiveInterval    time.Duration
	ArchiveReports     []string
	HTTPReadTimeout    time.Duration
	HTTPWriteTimeout   time.Duration
	HTTPIdleTimeout    time.Duration
	RateLimitPerMin    int
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		RedisURL:           os.Getenv("REDIS_URL"),
		GeoIPDBPath:        os.Getenv("GEOIP_DB_PATH"),
		ProgramsFile:       os.Getenv("PROGRAMS_FILE"),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		ArchiveBackend:     strings.ToLower(getEnv("ARCHIVE_BACKEND", "fs")),
		ArchivePath:        getEnv("ARCHIVE_PATH", "./data/reports"),
		ArchiveS3Bucket:    os.Getenv("ARCHIVE_S3_BUCKET"),
		ArchiveS3Prefix:    getEnv("ARCHIVE_S3_PREFIX", "reports"),
		AWSRegion:          getEnv("AWS_REGION", "ap-southeast-1"),
		ArchiveInterval:    time.Minute * time.Duration(getEnvInt("ARCHIVE_INTERVAL_MINUTES", 1440)),
		ArchiveReports:     getEnvList("ARCHIVE_REPORTS", []string{"monthly-summary", "impact-report"}),
		HTTPReadTimeout:    time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:   time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:    time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:    getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	switch cfg.ArchiveBackend {
	case "fs":
	case "s3":
		if cfg.ArchiveS3Bucket == "" {
			return nil, fmt.Errorf("ARCHIVE_S3_BUCKET is required when ARCHIVE_BACKEND=s3")
		}
	default:
		return nil, fmt.Errorf("ARCHIVE_BACKEND must be fs or s3, got %q", cfg.ArchiveBackend)
	}

	if cfg.ArchiveInterval <= 0 {
		cfg.ArchiveInterval = 24 * time.Hour
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

// getEnvList splits a comma separated variable, dropping blank entries.
func getEnvList(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
