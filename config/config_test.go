package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"DATA_SOURCE", "DATA_PATH", "DB_DSN", "DB_TABLE", "HTTP_ADDR", "TG_TOKEN",
	"LOG_LEVEL", "LOG_FORMAT", "LOG_FILE", "LOG_MAX_SIZE_MB", "LOG_MAX_BACKUPS", "LOG_MAX_AGE_DAYS",
}

func clearEnv(t *testing.T) {
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func writeEnv(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, SourceCSV, cfg.DataSource)
	assert.Equal(t, "Netflix_Userbase.csv", cfg.DataPath)
	assert.Equal(t, "subscribers", cfg.DbTable)
	assert.Equal(t, ":8050", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, 100, cfg.LogMaxSizeMB)
	assert.Equal(t, 3, cfg.LogMaxBackups)
	assert.Equal(t, 28, cfg.LogMaxAgeDays)
	assert.Empty(t, cfg.TgToken)
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	path := writeEnv(t, "DATA_PATH=data/users.csv.gz\nTG_TOKEN=abc\nLOG_MAX_BACKUPS=7\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "data/users.csv.gz", cfg.DataPath)
	assert.Equal(t, "abc", cfg.TgToken)
	assert.Equal(t, 7, cfg.LogMaxBackups)
}

func TestEnvironmentWinsOverFile(t *testing.T) {
	clearEnv(t)
	path := writeEnv(t, "HTTP_ADDR=:9000\n")
	t.Setenv("HTTP_ADDR", ":9100")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9100", cfg.HTTPAddr)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  string
	}{
		{"unknown source", "DATA_SOURCE=parquet\n"},
		{"db without dsn", "DATA_SOURCE=db\n"},
		{"bad integer", "LOG_MAX_SIZE_MB=big\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := Load(writeEnv(t, tt.env))
			assert.Error(t, err)
		})
	}
}

func TestLoadDBSource(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeEnv(t, "DATA_SOURCE=db\nDB_DSN=user:pass@tcp(localhost:9004)/default\nDB_TABLE=netflix\n"))
	require.NoError(t, err)
	assert.Equal(t, SourceDB, cfg.DataSource)
	assert.Equal(t, "netflix", cfg.DbTable)
}
