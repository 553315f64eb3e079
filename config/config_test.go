package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"ewintr.nl/potongin/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestLoadDefaults(t *testing.T) {
	act, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 8080, act.APIPort)
	assert.Equal(t, config.StoreSQLite, act.Store)
	assert.Equal(t, 20*time.Second, act.HTTPTimeout)
	level, err := act.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "potongin.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api_port: 9000
log_level: debug
http_timeout: 5s
store: postgres
postgres:
  host: db.internal
  database: clips
youtube_api_key: from-file
`), 0o600))
	t.Setenv("API_PORT", "9100")
	t.Setenv("YOUTUBE_API_KEY", "from-env")

	act, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, act.APIPort)
	assert.Equal(t, 5*time.Second, act.HTTPTimeout)
	assert.Equal(t, config.StorePostgres, act.Store)
	assert.Equal(t, "db.internal", act.Postgres.Host)
	assert.Equal(t, "5432", act.Postgres.Port)
	assert.Equal(t, "clips", act.Postgres.Database)
	assert.Equal(t, "from-env", act.YoutubeAPIKey)
	level, err := act.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadInvalid(t *testing.T) {
	for _, tc := range []struct {
		name string
		env  map[string]string
	}{
		{name: "port", env: map[string]string{"API_PORT": "eighty"}},
		{name: "port range", env: map[string]string{"API_PORT": "70000"}},
		{name: "timeout", env: map[string]string{"HTTP_TIMEOUT": "soon"}},
		{name: "store", env: map[string]string{"STORE": "mongo"}},
		{name: "sqlite path", env: map[string]string{"SQLITE_PATH": ""}},
		{name: "log level", env: map[string]string{"LOG_LEVEL": "loud"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := config.Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLevelInvalid(t *testing.T) {
	cfg := &config.Config{LogLevel: "loud"}
	level, err := cfg.Level()
	assert.Error(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}
