package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"court-register-go/pkg/logger"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	HTTPPort       string
	Env            string
	ServiceName    string
	Storage        string
	AllowedOrigins []string
	Log            LogConfig
	DB             DBConfig
	Paging         PagingConfig
	Auth           AuthConfig
	Kafka          KafkaConfig
	RabbitMQ       RabbitMQConfig
}

type LogConfig struct {
	Level  string
	Format string
}

type DBConfig struct {
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type PagingConfig struct {
	DefaultSize int
	MaxSize     int
}

type AuthConfig struct {
	SkipAuth         bool
	MockPrincipal    string
	JWTSigningKey    string
	JWTPublicKeyPath string
	Issuer           string
}

type KafkaConfig struct {
	Brokers        []string
	ChangeTopic    string
	ClientID       string
	PublishTimeout time.Duration
}

type RabbitMQConfig struct {
	URL            string
	AuditQueue     string
	PublishTimeout time.Duration
}

// Load reads configuration from the environment after seeding it from
// envFile, or from the nearest .env when envFile is empty.
func Load(envFile string, log logger.Logger) (Config, error) {
	if err := loadDotEnv(envFile, log); err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		ServiceName:    getEnv("SERVICE_NAME", "court-register"),
		Storage:        strings.ToLower(getEnv("STORAGE_BACKEND", StoragePostgres)),
		AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", ""),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		DB: DBConfig{
			DSN:             getEnv("DB_DSN", ""),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "court_register"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			TimeZone:        getEnv("DB_TIMEZONE", "UTC"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Paging: PagingConfig{
			DefaultSize: getEnvInt("PAGE_DEFAULT_SIZE", 20),
			MaxSize:     getEnvInt("PAGE_MAX_SIZE", 100),
		},
		Auth: AuthConfig{
			SkipAuth:         getEnvBool("AUTH_SKIP", false),
			MockPrincipal:    getEnv("AUTH_MOCK_PRINCIPAL", "local-dev"),
			JWTSigningKey:    getEnv("JWT_SIGNING_KEY", ""),
			JWTPublicKeyPath: getEnv("JWT_PUBLIC_KEY_PATH", ""),
			Issuer:           getEnv("JWT_ISSUER", ""),
		},
		Kafka: KafkaConfig{
			Brokers:        getEnvList("KAFKA_BROKERS", nil),
			ChangeTopic:    getEnv("KAFKA_CHANGE_TOPIC", "court-register-events"),
			ClientID:       getEnv("KAFKA_CLIENT_ID", "court-register"),
			PublishTimeout: getEnvDuration("KAFKA_PUBLISH_TIMEOUT", 5*time.Second),
		},
		RabbitMQ: RabbitMQConfig{
			URL:            getEnv("RABBITMQ_URL", ""),
			AuditQueue:     getEnv("AUDIT_QUEUE_NAME", "court-register-audit"),
			PublishTimeout: getEnvDuration("RABBITMQ_PUBLISH_TIMEOUT", 5*time.Second),
		},
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoggerOptions maps the loaded settings onto the service logger.
func (c Config) LoggerOptions() logger.Options {
	return logger.Options{Env: c.Env, Level: c.Log.Level, Format: c.Log.Format, Service: c.ServiceName}
}

func (c Config) validate() error {
	switch c.Storage {
	case StoragePostgres, StorageMemory:
	default:
		return fmt.Errorf("config: unknown STORAGE_BACKEND %q", c.Storage)
	}
	if c.Paging.DefaultSize < 1 || c.Paging.MaxSize < c.Paging.DefaultSize {
		return fmt.Errorf("config: invalid paging sizes default=%d max=%d", c.Paging.DefaultSize, c.Paging.MaxSize)
	}
	if !c.Auth.SkipAuth && c.Auth.JWTSigningKey == "" && c.Auth.JWTPublicKeyPath == "" {
		return fmt.Errorf("config: JWT_SIGNING_KEY or JWT_PUBLIC_KEY_PATH is required unless AUTH_SKIP is set")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}
