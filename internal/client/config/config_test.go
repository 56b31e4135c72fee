package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/mybestvenue/internal/client/storage"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080", c.APIBaseURL)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, storage.DriverSQLite, c.StorageDriver)
	assert.Equal(t, "tolerate", c.LoginMode)
	assert.Equal(t, "warn", c.LogLevel)
	require.NoError(t, c.Validate())
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected Config
		wantErr  bool
	}{
		{
			name: "all flags",
			args: []string{"-a", "http://api:9000", "-d", "redis", "-r", "cache:6380", "-m", "exclusive", "-t", "3", "-i", "7", "-l", "debug"},
			expected: Config{APIBaseURL: "http://api:9000", StorageDriver: "redis", RedisAddr: "cache:6380",
				LoginMode: "exclusive", LogLevel: "debug", RequestTimeout: 3 * time.Second, OnlineCheckInterval: 7 * time.Second},
		},
		{
			name:     "unknown flags are ignored",
			args:     []string{"-c", "x.json", "-f", "other.db", "-z", "1"},
			expected: Config{SQLiteFile: "other.db"},
		},
		{name: "bad timeout", args: []string{"-t", "abc"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			err := parseFlags(cfg, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, *cfg))
		})
	}
}

func TestParseJson(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"api_base_url":    "http://json:1",
		"request_timeout": "4s",
		"storage_driver":  "memory",
		"login_mode":      "exclusive",
		"log_level":       "info",
	})

	t.Run("loads from flags", func(t *testing.T) {
		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseJson(cfg, []string{"-config", path}))

		assert.Equal(t, "http://json:1", cfg.APIBaseURL)
		assert.Equal(t, 4*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "memory", cfg.StorageDriver)
		assert.Equal(t, "exclusive", cfg.LoginMode)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "mybestvenue.db", cfg.SQLiteFile, "absent keys keep defaults")
	})

	t.Run("no config flag leaves cfg alone", func(t *testing.T) {
		cfg := &Config{APIBaseURL: "keep"}
		require.NoError(t, parseJson(cfg, nil))
		assert.Equal(t, "keep", cfg.APIBaseURL)
	})

	t.Run("invalid json", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ nope`), 0o600))
		require.Error(t, parseJson(&Config{}, []string{"-c", bad}))
	})

	t.Run("missing file", func(t *testing.T) {
		require.Error(t, parseJson(&Config{}, []string{"-c", filepath.Join(t.TempDir(), "none.json")}))
	})
}

func TestLoad_FlagsOverrideJSON(t *testing.T) {
	path := writeTempJSON(t, map[string]any{"api_base_url": "http://json:1", "storage_driver": "memory"})

	cfg, err := load([]string{"-c", path, "-a", "http://flag:2"})
	require.NoError(t, err)
	assert.Equal(t, "http://flag:2", cfg.APIBaseURL)
	assert.Equal(t, "memory", cfg.StorageDriver)
}

func TestLoad_Validation(t *testing.T) {
	_, err := load([]string{"-d", "etcd"})
	require.Error(t, err)

	_, err = load([]string{"-m", "sometimes"})
	require.Error(t, err)

	_, err = load([]string{"-l", "loud"})
	require.ErrorContains(t, err, "unknown log level")
}

func TestStorageConfig(t *testing.T) {
	c := Config{StorageDriver: storage.DriverRedis, RedisAddr: "r:1", RedisPrefix: "p:"}
	sc := c.Storage()
	require.NotNil(t, sc.Redis)
	assert.Equal(t, "r:1", sc.Redis.Addr)
	assert.Nil(t, sc.SQLite)

	c = Config{StorageDriver: storage.DriverSQLite, SQLiteFile: "a.db"}
	sc = c.Storage()
	require.NotNil(t, sc.SQLite)
	assert.Equal(t, "a.db", sc.SQLite.DSN)
}
