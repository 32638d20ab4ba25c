package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// envPrefix префикс переменных окружения, переопределяющих значения из файла
const envPrefix = "SALON_"

var (
	// ErrReadConfig возвращается, когда не удалось прочитать файл конфигурации
	ErrReadConfig = errors.New("config: failed to read config file")

	// ErrInvalidConfig возвращается при некорректных значениях конфигурации
	ErrInvalidConfig = errors.New("config: invalid config")
)

// Config конфигурация сервиса
type Config struct {
	Server          ServerConfig      `toml:"server"`
	Database        DatabaseConfig    `toml:"database"`
	Logs            LogsConfig        `toml:"logs"`
	Metrics         MetricsConfig     `toml:"metrics"`
	BusinessService IntegrationConfig `toml:"business_service"`
	UserService     IntegrationConfig `toml:"user_service"`
	Redis           RedisConfig       `toml:"redis"`
	Kafka           KafkaConfig       `toml:"kafka"`
	Booking         BookingConfig     `toml:"booking"`
	Jobs            JobsConfig        `toml:"jobs"`
}

// ServerConfig параметры HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig параметры подключения к PostgreSQL
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

// DSN возвращает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig параметры логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // пусто = только stdout
}

// MetricsConfig параметры prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// IntegrationConfig параметры HTTP клиента внешнего сервиса
type IntegrationConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// RedisConfig параметры распределенной блокировки
// Пустой Addr = блокировка внутри процесса
type RedisConfig struct {
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	LockTTL    int    `toml:"lock_ttl_ms"`
	LockWait   int    `toml:"lock_wait_ms"`
	LockRetry  int    `toml:"lock_retry_ms"`
	LockPrefix string `toml:"lock_prefix"`
}

// Enabled возвращает true, если Redis настроен
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// KafkaConfig параметры публикации событий
// Пустой Brokers = события не публикуются
type KafkaConfig struct {
	Brokers      string `toml:"brokers"` // через запятую
	TopicPrefix  string `toml:"topic_prefix"`
	WriteTimeout int    `toml:"write_timeout_ms"`
}

// Enabled возвращает true, если указаны брокеры
func (k KafkaConfig) Enabled() bool {
	return strings.TrimSpace(k.Brokers) != ""
}

// BookingConfig параметры записи
type BookingConfig struct {
	MaxCommitAttempts int    `toml:"max_commit_attempts"`
	DefaultTimezone   string `toml:"default_timezone"`
}

// Location возвращает часовой пояс салонов по умолчанию
func (b BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(b.DefaultTimezone)
}

// JobsConfig параметры фоновых задач
type JobsConfig struct {
	AutoCompleteEnabled  bool   `toml:"auto_complete_enabled"`
	AutoCompleteSchedule string `toml:"auto_complete_schedule"` // cron выражение
}

// Load загружает конфигурацию из TOML файла
// Порядок: значения по умолчанию, файл, .env, переменные окружения SALON_*
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
			}
		}
	}

	// .env не обязателен
	_ = godotenv.Load()

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
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
			DBName:          "salon",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "salon-service",
		},
		BusinessService: IntegrationConfig{URL: "http://localhost:8081", Timeout: 5},
		UserService:     IntegrationConfig{URL: "http://localhost:8082", Timeout: 5},
		Redis: RedisConfig{
			LockTTL:    5000,
			LockWait:   2000,
			LockRetry:  50,
			LockPrefix: "salon:booking-lock",
		},
		Kafka: KafkaConfig{
			TopicPrefix:  "salon.",
			WriteTimeout: 3000,
		},
		Booking: BookingConfig{
			MaxCommitAttempts: 3,
			DefaultTimezone:   "UTC",
		},
		Jobs: JobsConfig{
			AutoCompleteEnabled:  true,
			AutoCompleteSchedule: "@every 5m",
		},
	}
}

// applyEnv переопределяет значения из переменных окружения
func applyEnv(cfg *Config) error {
	strs := map[string]*string{
		"DB_HOST":                &cfg.Database.Host,
		"DB_USER":                &cfg.Database.User,
		"DB_PASSWORD":            &cfg.Database.Password,
		"DB_NAME":                &cfg.Database.DBName,
		"DB_SSLMODE":             &cfg.Database.SSLMode,
		"LOG_LEVEL":              &cfg.Logs.Level,
		"LOG_FILE":               &cfg.Logs.File,
		"BUSINESS_SERVICE_URL":   &cfg.BusinessService.URL,
		"USER_SERVICE_URL":       &cfg.UserService.URL,
		"REDIS_ADDR":             &cfg.Redis.Addr,
		"REDIS_PASSWORD":         &cfg.Redis.Password,
		"KAFKA_BROKERS":          &cfg.Kafka.Brokers,
		"KAFKA_TOPIC_PREFIX":     &cfg.Kafka.TopicPrefix,
		"DEFAULT_TIMEZONE":       &cfg.Booking.DefaultTimezone,
		"AUTO_COMPLETE_SCHEDULE": &cfg.Jobs.AutoCompleteSchedule,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(envPrefix + key); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"HTTP_PORT":           &cfg.Server.HTTPPort,
		"DB_PORT":             &cfg.Database.Port,
		"REDIS_DB":            &cfg.Redis.DB,
		"MAX_COMMIT_ATTEMPTS": &cfg.Booking.MaxCommitAttempts,
	}
	for key, dst := range ints {
		v, ok := os.LookupEnv(envPrefix + key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q is not a number", ErrInvalidConfig, envPrefix, key, v)
		}
		*dst = n
	}

	bools := map[string]*bool{
		"METRICS_ENABLED":       &cfg.Metrics.Enabled,
		"AUTO_COMPLETE_ENABLED": &cfg.Jobs.AutoCompleteEnabled,
	}
	for key, dst := range bools {
		v, ok := os.LookupEnv(envPrefix + key)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q is not a boolean", ErrInvalidConfig, envPrefix, key, v)
		}
		*dst = b
	}

	return nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be between 1 and 65535", ErrInvalidConfig)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.BusinessService.URL == "" {
		return fmt.Errorf("%w: business_service.url is required", ErrInvalidConfig)
	}
	if c.UserService.URL == "" {
		return fmt.Errorf("%w: user_service.url is required", ErrInvalidConfig)
	}
	if c.Booking.MaxCommitAttempts <= 0 {
		return fmt.Errorf("%w: booking.max_commit_attempts must be positive", ErrInvalidConfig)
	}
	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: booking.default_timezone: %v", ErrInvalidConfig, err)
	}
	if c.Jobs.AutoCompleteEnabled && c.Jobs.AutoCompleteSchedule == "" {
		return fmt.Errorf("%w: jobs.auto_complete_schedule is required", ErrInvalidConfig)
	}
	return nil
}
