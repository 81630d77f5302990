package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"directory-backend/internal/domains/directory/model"
	"directory-backend/internal/infrastructure/database"
)

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App       AppConfig
	Database  *database.DBConfig
	Redis     RedisConfig
	MinIO     MinIOConfig
	Directory DirectoryConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

// MinIOConfig: avatar object storage. Disabled means avatar refs are
// served as stored.
type MinIOConfig struct {
	Enabled       bool
	Endpoint      string // localhost:9000
	AccessKey     string // minioadmin
	SecretKey     string // minioadmin
	Bucket        string // avatars
	Region        string
	UseSSL        bool // false for local
	PresignExpiry time.Duration
}

// =====================================================
// DIRECTORY CONFIGURATION
// =====================================================

type DirectoryConfig struct {
	PageSize          int
	ReservedUsernames []string
	DeletedPattern    string // regexp matched against the trimmed username
	ProfilesTable     string // optionally schema-qualified
	RemoteTimeout     time.Duration
	RefreshCron       string // empty disables scheduled refresh
	LoadOnStartup     bool
	ViewerChannel     string // redis pub/sub channel for profile requests, empty disables
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	dbConfig, err := LoadDatabaseConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Directory API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Database: dbConfig,
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		MinIO: MinIOConfig{
			Enabled:       getEnvBool("MINIO_ENABLED", false),
			Endpoint:      getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey:     getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey:     getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:        getEnv("MINIO_BUCKET", "avatars"),
			Region:        getEnv("MINIO_REGION", "us-east-1"),
			UseSSL:        getEnvBool("MINIO_USE_SSL", false),
			PresignExpiry: getEnvDuration("MINIO_PRESIGN_EXPIRY", time.Hour),
		},
		Directory: DirectoryConfig{
			PageSize:          getEnvInt("DIRECTORY_PAGE_SIZE", model.DefaultPageSize),
			ReservedUsernames: getEnvList("DIRECTORY_RESERVED_USERNAMES", model.DefaultReservedUsernames()),
			DeletedPattern:    getEnv("DIRECTORY_DELETED_PATTERN", model.DefaultDeletedPattern),
			ProfilesTable:     getEnv("DIRECTORY_PROFILES_TABLE", "profiles"),
			RemoteTimeout:     getEnvDuration("DIRECTORY_REMOTE_TIMEOUT", 10*time.Second),
			RefreshCron:       getEnv("DIRECTORY_REFRESH_CRON", ""),
			LoadOnStartup:     getEnvBool("DIRECTORY_LOAD_ON_STARTUP", true),
			ViewerChannel:     getEnv("DIRECTORY_VIEWER_CHANNEL", ""),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	d := &c.Directory
	err := validation.ValidateStruct(d,
		validation.Field(&d.PageSize, validation.Required, validation.Min(1), validation.Max(500)),
		validation.Field(&d.ProfilesTable, validation.Required),
		validation.Field(&d.DeletedPattern, validation.By(isRegexp)),
		validation.Field(&d.RemoteTimeout, validation.Required),
	)
	if err != nil {
		return err
	}

	if c.MinIO.Enabled {
		m := &c.MinIO
		if err := validation.ValidateStruct(m,
			validation.Field(&m.Endpoint, validation.Required),
			validation.Field(&m.Bucket, validation.Required),
			validation.Field(&m.PresignExpiry, validation.Required),
		); err != nil {
			return err
		}
	}

	// Production environment phải có DB password
	if c.App.Environment == "production" {
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
		if c.Directory.RefreshCron == "" {
			log.Warn().Msg("DIRECTORY_REFRESH_CRON not set - directory only reloads on demand")
		}
	}

	return nil
}

func isRegexp(value interface{}) error {
	s, _ := value.(string)
	if _, err := regexp.Compile(s); err != nil {
		return fmt.Errorf("must be a valid regular expression: %w", err)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
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

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvList đọc CSV, bỏ phần tử rỗng
func getEnvList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
