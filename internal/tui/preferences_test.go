package tui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/pkg/ptr"
)

func TestLoadPreferences_MissingFile(t *testing.T) {
	prefs, err := LoadPreferences(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultPreferences(), prefs)
}

func TestPreferences_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "preferences.yaml")

	prefs := DefaultPreferences()
	prefs.Technicians = []int64{3, 1}
	prefs.StartHour = ptr.Ptr(9)
	prefs.EndHour = ptr.Ptr(21)
	prefs.TouchMode = true
	require.NoError(t, SavePreferences(path, prefs))

	loaded, err := LoadPreferences(path)
	require.NoError(t, err)
	assert.Equal(t, prefs, loaded)
}

func TestLoadPreferences_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.yaml")
	require.NoError(t, os.WriteFile(path, []byte("technicians: [2]\nrows_per_hour: 2\n"), 0o644))

	prefs, err := LoadPreferences(path)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, prefs.Technicians)
	assert.Equal(t, 2, prefs.RowsPerHour)
	assert.Equal(t, 24, prefs.ColumnWidth)
	assert.True(t, prefs.NotifyClient)
}

func TestLoadPreferences_Invalid(t *testing.T) {
	tests := map[string]string{
		"broken yaml":   "rows_per_hour: [",
		"rows per hour": "rows_per_hour: 7\n",
		"narrow column": "column_width: 3\n",
		"hours":         "start_hour: 18\nend_hour: 9\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "preferences.yaml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

			_, err := LoadPreferences(path)
			assert.ErrorIs(t, err, ErrInvalidPreferences)
		})
	}
}
