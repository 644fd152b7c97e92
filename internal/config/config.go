package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig возвращается при некорректных значениях конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server              ServerConfig              `toml:"server"`
	Database            DatabaseConfig            `toml:"database"`
	Logs                LogsConfig                `toml:"logs"`
	Metrics             MetricsConfig             `toml:"metrics"`
	NotificationService NotificationServiceConfig `toml:"notification_service"`
	Calendar            CalendarConfig            `toml:"calendar"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type NotificationServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// CalendarConfig параметры построения дневной сетки календаря
type CalendarConfig struct {
	Timezone           string  `toml:"timezone"`
	StartHour          int     `toml:"start_hour"`
	EndHour            int     `toml:"end_hour"`
	PixelsPerHour      float64 `toml:"pixels_per_hour"`
	SnapMinutes        int     `toml:"snap_minutes"`
	ActivationDistance float64 `toml:"activation_distance"`
}

// Location возвращает часовой пояс салона
func (c CalendarConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "salon_calendar",
			SSLMode:         "disable",
			MaxOpenConns:    20,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     false,
			Path:        "/metrics",
			ServiceName: "smc-calendar-service",
		},
		NotificationService: NotificationServiceConfig{
			URL:     "http://localhost:8090",
			Timeout: 5,
		},
		Calendar: CalendarConfig{
			Timezone:           "UTC",
			StartHour:          0,
			EndHour:            24,
			PixelsPerHour:      80,
			SnapMinutes:        15,
			ActivationDistance: 8,
		},
	}
}

// Load читает TOML-файл поверх значений по умолчанию и валидирует результат
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port out of range: %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	cal := c.Calendar
	if cal.StartHour < 0 || cal.EndHour > 24 || cal.StartHour >= cal.EndHour {
		return fmt.Errorf("%w: calendar hours must satisfy 0 <= start_hour < end_hour <= 24", ErrInvalidConfig)
	}
	if cal.PixelsPerHour <= 0 {
		return fmt.Errorf("%w: calendar.pixels_per_hour must be positive", ErrInvalidConfig)
	}
	if cal.SnapMinutes <= 0 || 60%cal.SnapMinutes != 0 {
		return fmt.Errorf("%w: calendar.snap_minutes must divide an hour", ErrInvalidConfig)
	}
	if _, err := cal.Location(); err != nil {
		return fmt.Errorf("%w: calendar.timezone: %v", ErrInvalidConfig, err)
	}
	return nil
}
