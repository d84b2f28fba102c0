package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config корневая конфигурация сервиса
type Config struct {
	Server         ServerConfig      `toml:"server"`
	Logs           LogsConfig        `toml:"logs"`
	Metrics        MetricsConfig     `toml:"metrics"`
	CaseService    IntegrationConfig `toml:"case_service"`
	PredictService IntegrationConfig `toml:"predict_service"`
	Schedule       ScheduleConfig    `toml:"schedule"`
	Sessions       SessionsConfig    `toml:"sessions"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"` // debug | info | warn | error
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// IntegrationConfig настройки внешнего HTTP сервиса
type IntegrationConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// ScheduleConfig настройки операционного расписания
type ScheduleConfig struct {
	// Список операционных залов в порядке отображения на сетке
	Rooms []string `toml:"rooms"`

	// Часы сетки слотов: [grid_start_hour, grid_end_hour)
	GridStartHour int `toml:"grid_start_hour"`
	GridEndHour   int `toml:"grid_end_hour"`

	// Длительность по умолчанию для кейсов без wheels_out и без actual_duration
	FallbackCaseMinutes int `toml:"fallback_case_minutes"`
}

// SessionsConfig настройки хранилища сессий бронирования
type SessionsConfig struct {
	TTLMinutes             int `toml:"ttl_minutes"`
	CleanupIntervalMinutes int `toml:"cleanup_interval_minutes"`
}

// GridHours возвращает список начальных часов слотов сетки
// (включая grid_start_hour, исключая grid_end_hour)
func (s ScheduleConfig) GridHours() []int {
	hours := make([]int, 0, s.GridEndHour-s.GridStartHour)
	for h := s.GridStartHour; h < s.GridEndHour; h++ {
		hours = append(hours, h)
	}
	return hours
}

// Load загружает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("server.http_port must be positive")
	}

	if c.CaseService.URL == "" {
		return fmt.Errorf("case_service.url is required")
	}
	if c.PredictService.URL == "" {
		return fmt.Errorf("predict_service.url is required")
	}

	if len(c.Schedule.Rooms) == 0 {
		return fmt.Errorf("schedule.rooms must not be empty")
	}
	if c.Schedule.GridStartHour < 0 || c.Schedule.GridEndHour > 24 ||
		c.Schedule.GridStartHour >= c.Schedule.GridEndHour {
		return fmt.Errorf("schedule grid hours must satisfy 0 <= grid_start_hour < grid_end_hour <= 24")
	}
	if c.Schedule.FallbackCaseMinutes <= 0 {
		return fmt.Errorf("schedule.fallback_case_minutes must be positive")
	}

	if c.Sessions.TTLMinutes <= 0 {
		return fmt.Errorf("sessions.ttl_minutes must be positive")
	}
	if c.Sessions.CleanupIntervalMinutes <= 0 {
		return fmt.Errorf("sessions.cleanup_interval_minutes must be positive")
	}

	return nil
}
