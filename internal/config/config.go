package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config конфигурация сервиса, читается из config.toml
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Auth      AuthConfig      `toml:"auth"`
	Booking   BookingConfig   `toml:"booking"`
	RateLimit RateLimitConfig `toml:"ratelimit"`
	Kafka     KafkaConfig     `toml:"kafka"`
	Wizard    WizardConfig    `toml:"wizard"`
	Jobs      JobsConfig      `toml:"jobs"`
}

// ServerConfig таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
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

// AuthConfig проверка JWT администратора
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
	Issuer    string `toml:"issuer"`
	AdminRole string `toml:"admin_role"`
}

type BookingConfig struct {
	// AllowCancelConfirmed разрешает отмену подтвержденной записи
	AllowCancelConfirmed bool `toml:"allow_cancel_confirmed"`
	// Timezone часовой пояс салона (IANA), в нем задаются дата и время слотов
	Timezone string `toml:"timezone"`
}

// Location загружает часовой пояс салона
func (b BookingConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return nil, fmt.Errorf("booking.timezone %q: %w", b.Timezone, err)
	}
	return loc, nil
}

// RateLimitConfig лимит публичных запросов на запись, по IP
type RateLimitConfig struct {
	Enabled bool    `toml:"enabled"`
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`
	// адреса или CIDR балансировщиков; X-Forwarded-For от остальных игнорируется
	TrustedProxies []string `toml:"trusted_proxies"`
}

type KafkaConfig struct {
	Enabled bool     `toml:"enabled"`
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
	Timeout int      `toml:"timeout"` // секунды
}

type WizardConfig struct {
	SessionTTL  int `toml:"session_ttl"` // секунды, 0 - без истечения
	MaxSessions int `toml:"max_sessions"`
}

// JobsConfig расписания фоновых задач в формате cron
type JobsConfig struct {
	StatusGaugeSpec    string `toml:"status_gauge_spec"`
	WizardEvictSpec    string `toml:"wizard_evict_spec"`
	RateLimitSweepSpec string `toml:"ratelimit_sweep_spec"`
	RateLimitIdle      int    `toml:"ratelimit_idle"` // секунды
}

// Load читает конфиг из файла, затем .env и переменные окружения для секретов
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	// .env необязателен
	_ = godotenv.Load()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Default значения, которые используются, если ключ не задан в файле
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
			DBName:          "salon_bookings",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			File:  "logs/app.log",
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "salon_booking_service",
		},
		Auth: AuthConfig{
			AdminRole: "admin",
		},
		Booking: BookingConfig{
			AllowCancelConfirmed: true,
			Timezone:             "UTC",
		},
		RateLimit: RateLimitConfig{
			Enabled: true,
			RPS:     5,
			Burst:   10,
		},
		Kafka: KafkaConfig{
			Topic:   "booking.status_changed",
			Timeout: 5,
		},
		Wizard: WizardConfig{
			SessionTTL:  1800,
			MaxSessions: 10000,
		},
		Jobs: JobsConfig{
			StatusGaugeSpec:    "@every 1m",
			WizardEvictSpec:    "@every 1m",
			RateLimitSweepSpec: "@every 5m",
			RateLimitIdle:      600,
		},
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers := make([]string, 0)
		for _, b := range strings.Split(v, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
		c.Kafka.Brokers = brokers
	}
}

// Validate проверяет обязательные значения и их сочетания
func (c *Config) Validate() error {
	var errs []error

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("server.http_port out of range: %d", c.Server.HTTPPort))
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		errs = append(errs, errors.New("database.host and database.dbname are required"))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth.jwt_secret is required (or JWT_SECRET)"))
	}
	if c.Auth.AdminRole == "" {
		errs = append(errs, errors.New("auth.admin_role is required"))
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		errs = append(errs, fmt.Errorf("metrics.path must start with '/': %q", c.Metrics.Path))
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		errs = append(errs, errors.New("ratelimit.rps and ratelimit.burst must be positive"))
	}
	if _, err := c.Booking.Location(); err != nil {
		errs = append(errs, err)
	}
	for _, proxy := range c.RateLimit.TrustedProxies {
		if !validProxy(proxy) {
			errs = append(errs, fmt.Errorf("ratelimit.trusted_proxies: invalid address %q", proxy))
		}
	}
	if c.Kafka.Enabled && (len(c.Kafka.Brokers) == 0 || c.Kafka.Topic == "") {
		errs = append(errs, errors.New("kafka.brokers and kafka.topic are required when kafka is enabled"))
	}
	if c.Wizard.SessionTTL < 0 || c.Wizard.MaxSessions <= 0 {
		errs = append(errs, errors.New("wizard.session_ttl must be >= 0 and wizard.max_sessions > 0"))
	}

	return errors.Join(errs...)
}

func validProxy(s string) bool {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "/") {
		_, err := netip.ParsePrefix(s)
		return err == nil
	}
	_, err := netip.ParseAddr(s)
	return err == nil
}

// Duration секунды из конфига в time.Duration
func Duration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}
