package config

import (
	"os"
	"path/filepath"
	"testing"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db"
dbname = "calendar"

[calendar]
timezone = "Europe/Moscow"
start_hour = 8
end_hour = 21
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ReadTimeout)
	assert.Equal(t, "host=db port=5432 user=postgres password= dbname=calendar sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, 8, cfg.Calendar.StartHour)
	assert.Equal(t, 15, cfg.Calendar.SnapMinutes)

	loc, err := cfg.Calendar.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", loc.String())
}

func TestLoad_Errors(t *testing.T) {
	tests := map[string]string{
		"port":      "[server]\nhttp_port = 0\n",
		"hours":     "[calendar]\nstart_hour = 20\nend_hour = 8\n",
		"snap":      "[calendar]\nsnap_minutes = 7\n",
		"timezone":  "[calendar]\ntimezone = \"Mars/Olympus\"\n",
		"pixels":    "[calendar]\npixels_per_hour = 0\n",
		"no dbname": "[database]\ndbname = \"\"\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_BrokenFile(t *testing.T) {
	_, err := Load(writeConfig(t, "[server\n"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidConfig)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
