package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	AllowedOrigins []string
	RequestTimeout int // seconds, 0 disables

	StagingDir      string
	KeepStagedFiles bool
	MaxUploadMB     int
	PageWorkers     int
	UseReadability  bool

	ArchiveBucket string
	ArchivePrefix string
	AwsAccessKey  string
	AwsSecretKey  string
	AwsRegion     string

	JWTSecret string
	LogLevel  string
}

// LoadConfig loads the environment variables and return config
func LoadConfig() *Config {

	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("PORT", "5000"),
		AllowedOrigins:  getEnvList("ALLOWED_ORIGINS", []string{"*"}),
		RequestTimeout:  getEnvInt("REQUEST_TIMEOUT_SECONDS", 0),
		StagingDir:      getEnv("STAGING_DIR", "uploads"),
		KeepStagedFiles: getEnvBool("KEEP_STAGED_FILES", false),
		MaxUploadMB:     getEnvInt("MAX_UPLOAD_MB", 64),
		PageWorkers:     getEnvInt("PAGE_WORKERS", 4),
		UseReadability:  getEnvBool("USE_READABILITY", false),
		ArchiveBucket:   getEnv("ARCHIVE_BUCKET", ""),
		ArchivePrefix:   getEnv("ARCHIVE_PREFIX", "comps"),
		AwsAccessKey:    getEnv("AWS_ACCESS_KEY", ""),
		AwsSecretKey:    getEnv("AWS_SECRET_KEY", ""),
		AwsRegion:       getEnv("AWS_REGION", "us-east-2"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}
}

// MaxUploadBytes is the multipart body cap.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// Helper to read environment variables with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("env value is not an int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func getEnvBool(key string, def bool) bool {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("env value is not a bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

// getEnvList splits a comma separated value, dropping empty entries.
func getEnvList(key string, def []string) []string {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
