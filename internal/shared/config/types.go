package config

import "fmt"

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// IsProduction reports whether diagnostics must be hidden from clients.
func (s *ServerConfig) IsProduction() bool {
	return s.Mode == "release"
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"` // mysql or sqlite
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	if d.Driver == "sqlite" {
		return d.Database
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&collation=utf8mb4_general_ci&parseTime=true&loc=Local",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type JWTConfig struct {
	Secret           string `mapstructure:"secret"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
}

type AuthConfig struct {
	JWT JWTConfig `mapstructure:"jwt"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// TelegramConfig is the notification channel configuration. Values from the
// system_settings table override these at send time.
type TelegramConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	BotToken    string `mapstructure:"bot_token"`
	GroupChatID int64  `mapstructure:"group_chat_id"`
	APIBaseURL  string `mapstructure:"api_base_url"`
}

// IsConfigured reports whether messages can be sent at all.
func (t TelegramConfig) IsConfigured() bool {
	return t.Enabled && t.BotToken != ""
}

type UploadConfig struct {
	RootDir      string `mapstructure:"root_dir"`
	MaxFileSize  int64  `mapstructure:"max_file_size"`
	MaxFiles     int    `mapstructure:"max_files"`
	KeepListMode string `mapstructure:"keep_list_mode"` // lenient or strict

	// Orphan sweep; zero interval disables it
	SweepIntervalMinutes int `mapstructure:"sweep_interval_minutes"`
	OrphanGraceMinutes   int `mapstructure:"orphan_grace_minutes"`
}

type NotificationConfig struct {
	Backend   string `mapstructure:"backend"` // memory or redis
	QueueSize int    `mapstructure:"queue_size"`
	Workers   int    `mapstructure:"workers"`
	RedisKey  string `mapstructure:"redis_key"`
}

// RateLimitConfig caps repair submissions per user. Limits of zero are off.
type RateLimitConfig struct {
	Enabled   bool `mapstructure:"enabled"`
	PerMinute int  `mapstructure:"per_minute"`
	PerHour   int  `mapstructure:"per_hour"`
	PerDay    int  `mapstructure:"per_day"`
}
