package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Session  SessionConfig
	Store    StoreConfig
	I18n     I18nConfig
}

type ServerConfig struct {
	AppEnv          string
	HTTPPort        string
	GRPCPort        string
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type PostgresConfig struct {
	Host             string
	Port             string
	User             string
	Password         string
	DBName           string
	SSLMode          string
	MaxOpenConns     int
	MaxIdleConns     int
	ConnMaxLifetime  int
	ConnMaxIdleTime  int
	StatementTimeout int // milliseconds
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Enabled is false when no broker is configured; events are then dropped.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

type SessionConfig struct {
	CookieName   string
	TTL          time.Duration
	CookieSecure bool
	BcryptCost   int
}

type StoreConfig struct {
	DefaultCategory    string
	PageSize           int
	LoginMaxAttempts   int
	LoginAttemptWindow time.Duration
	ProductCacheTTL    time.Duration // 0 disables the listing cache
}

// I18nConfig lists message files loaded on top of the embedded ones.
type I18nConfig struct {
	ExtraFiles []string
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:          getEnv("APP_ENV", "dev"),
			HTTPPort:        getEnv("HTTP_PORT", ":8080"),
			GRPCPort:        getEnv("GRPC_PORT", ":8082"),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Postgres: PostgresConfig{
			Host:             getEnv("POSTGRES_HOST", "localhost"),
			Port:             getEnv("POSTGRES_PORT", "5432"),
			User:             getEnv("POSTGRES_USER", "postgres"),
			Password:         getEnv("POSTGRES_PASSWORD", "postgres"),
			DBName:           getEnv("POSTGRES_DB", "ecommerce_db"),
			SSLMode:          getEnv("POSTGRES_SSLMODE", "disable"),
			MaxOpenConns:     getEnvInt("POSTGRES_MAX_OPEN_CONNS", 10),
			MaxIdleConns:     getEnvInt("POSTGRES_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime:  getEnvInt("POSTGRES_CONN_MAX_LIFETIME", 300),
			ConnMaxIdleTime:  getEnvInt("POSTGRES_CONN_MAX_IDLE_TIME", 60),
			StatementTimeout: getEnvInt("POSTGRES_STATEMENT_TIMEOUT_MS", 5000),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvSlice("KAFKA_BROKERS", nil),
			Topic:   getEnv("KAFKA_TOPIC_ORDERS", "orders.events"),
		},
		Session: SessionConfig{
			CookieName:   getEnv("SESSION_COOKIE_NAME", "storefront_session"),
			TTL:          getEnvDuration("SESSION_TTL", 7*24*time.Hour),
			CookieSecure: getEnvBool("SESSION_COOKIE_SECURE", false),
			BcryptCost:   getEnvInt("BCRYPT_COST", 10),
		},
		Store: StoreConfig{
			DefaultCategory:    getEnv("STORE_DEFAULT_CATEGORY", "smartphones"),
			PageSize:           getEnvInt("STORE_PAGE_SIZE", 12),
			LoginMaxAttempts:   getEnvInt("LOGIN_MAX_ATTEMPTS", 10),
			LoginAttemptWindow: getEnvDuration("LOGIN_ATTEMPT_WINDOW", time.Minute),
			ProductCacheTTL:    getEnvDuration("STORE_PRODUCT_CACHE_TTL", 5*time.Minute),
		},
		I18n: I18nConfig{
			ExtraFiles: getEnvSlice("I18N_EXTRA_FILES", nil),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return fallback
}
