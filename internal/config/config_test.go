package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"directory-backend/internal/domains/directory/model"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, model.DefaultPageSize, cfg.Directory.PageSize)
	assert.Equal(t, model.DefaultReservedUsernames(), cfg.Directory.ReservedUsernames)
	assert.Equal(t, model.DefaultDeletedPattern, cfg.Directory.DeletedPattern)
	assert.Equal(t, "profiles", cfg.Directory.ProfilesTable)
	assert.Equal(t, 10*time.Second, cfg.Directory.RemoteTimeout)
	assert.True(t, cfg.Directory.LoadOnStartup)
	assert.Empty(t, cfg.Directory.RefreshCron)
	assert.False(t, cfg.MinIO.Enabled)
	assert.Equal(t, 5432, cfg.Database.Port)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("DIRECTORY_PAGE_SIZE", "10")
	t.Setenv("DIRECTORY_RESERVED_USERNAMES", " root, ,staff ")
	t.Setenv("DIRECTORY_REFRESH_CRON", "@every 5m")
	t.Setenv("DIRECTORY_LOAD_ON_STARTUP", "false")
	t.Setenv("DIRECTORY_PROFILES_TABLE", "public.profiles")
	t.Setenv("MINIO_ENABLED", "true")
	t.Setenv("MINIO_PRESIGN_EXPIRY", "15m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Directory.PageSize)
	assert.Equal(t, []string{"root", "staff"}, cfg.Directory.ReservedUsernames)
	assert.Equal(t, "@every 5m", cfg.Directory.RefreshCron)
	assert.False(t, cfg.Directory.LoadOnStartup)
	assert.Equal(t, "public.profiles", cfg.Directory.ProfilesTable)
	assert.True(t, cfg.MinIO.Enabled)
	assert.Equal(t, 15*time.Minute, cfg.MinIO.PresignExpiry)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"page size too large", "DIRECTORY_PAGE_SIZE", "1000"},
		{"page size negative", "DIRECTORY_PAGE_SIZE", "-1"},
		{"bad deleted pattern", "DIRECTORY_DELETED_PATTERN", "([unclosed"},
		{"bad db port", "DB_PORT", "five"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidate_ProductionNeedsDBPassword(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_PASSWORD", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PASSWORD")

	t.Setenv("DB_PASSWORD", "s3cret")
	_, err = Load()
	assert.NoError(t, err)
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("X_INT", "abc")
	t.Setenv("X_BOOL", "yes")
	t.Setenv("X_DUR", "90s")

	assert.Equal(t, 7, getEnvInt("X_INT", 7))
	assert.True(t, getEnvBool("X_BOOL", true), "unparseable bools keep the default")
	assert.Equal(t, 90*time.Second, getEnvDuration("X_DUR", time.Second))
	assert.Equal(t, []string{"a"}, getEnvList("X_MISSING", []string{"a"}))
}
