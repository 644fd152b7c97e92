package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// DefaultPreferencesPath путь файла настроек по умолчанию
const DefaultPreferencesPath = "~/.config/smc-calendar/preferences.yaml"

var ErrInvalidPreferences = errors.New("tui: invalid preferences")

// Preferences пользовательские настройки терминального календаря.
// Передаются в ядро явно при построении сетки
type Preferences struct {
	// Technicians выбранные мастера, если пусто, показываются все активные
	Technicians []int64 `yaml:"technicians,omitempty"`
	StartHour   *int    `yaml:"start_hour,omitempty"`
	EndHour     *int    `yaml:"end_hour,omitempty"`

	RowsPerHour  int  `yaml:"rows_per_hour"`
	ColumnWidth  int  `yaml:"column_width"` // в символах
	SnapMinutes  int  `yaml:"snap_minutes"`
	TouchMode    bool `yaml:"touch_mode"`
	NotifyClient bool `yaml:"notify_client"` // значение переключателя в диалоге подтверждения
}

// DefaultPreferences настройки по умолчанию
func DefaultPreferences() Preferences {
	return Preferences{
		RowsPerHour:  4,
		ColumnWidth:  24,
		SnapMinutes:  domain.DefaultSnapMinutes,
		NotifyClient: true,
	}
}

// LoadPreferences читает настройки. Отсутствующий файл не ошибка: возвращаются значения по умолчанию
func LoadPreferences(path string) (Preferences, error) {
	prefs := DefaultPreferences()

	expanded, err := homedir.Expand(path)
	if err != nil {
		return prefs, fmt.Errorf("tui: expand %s: %w", path, err)
	}

	raw, err := os.ReadFile(expanded)
	if errors.Is(err, os.ErrNotExist) {
		return prefs, nil
	}
	if err != nil {
		return prefs, fmt.Errorf("tui: read preferences: %w", err)
	}

	if err := yaml.Unmarshal(raw, &prefs); err != nil {
		return prefs, fmt.Errorf("%w: %v", ErrInvalidPreferences, err)
	}
	if err := prefs.Validate(); err != nil {
		return prefs, err
	}
	return prefs, nil
}

// SavePreferences записывает настройки, создавая каталог при необходимости
func SavePreferences(path string, prefs Preferences) error {
	if err := prefs.Validate(); err != nil {
		return err
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("tui: expand %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("tui: create preferences dir: %w", err)
	}

	raw, err := yaml.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("tui: encode preferences: %w", err)
	}
	return os.WriteFile(expanded, raw, 0o644)
}

// Validate проверяет согласованность настроек
func (p Preferences) Validate() error {
	if p.RowsPerHour <= 0 || 60%p.RowsPerHour != 0 {
		return fmt.Errorf("%w: rows_per_hour must divide an hour", ErrInvalidPreferences)
	}
	if p.ColumnWidth < 8 {
		return fmt.Errorf("%w: column_width must be at least 8", ErrInvalidPreferences)
	}
	if p.SnapMinutes <= 0 || 60%p.SnapMinutes != 0 {
		return fmt.Errorf("%w: snap_minutes must divide an hour", ErrInvalidPreferences)
	}
	if p.StartHour != nil && p.EndHour != nil && *p.StartHour >= *p.EndHour {
		return fmt.Errorf("%w: start_hour must be before end_hour", ErrInvalidPreferences)
	}
	return nil
}
