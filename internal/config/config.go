package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type StorageDriver string

const (
	DriverSQLite   StorageDriver = "sqlite"
	DriverPostgres StorageDriver = "postgres"
)

type EventsDriver string

const (
	EventsNone     EventsDriver = "none"
	EventsKafka    EventsDriver = "kafka"
	EventsRabbitMQ EventsDriver = "rabbitmq"
)

type Config struct {
	ServiceName string
	ServerPort  int
	LogLevel    string

	Storage     StorageDriver
	DatabaseURL string
	SQLitePath  string

	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int

	Events           EventsDriver
	EventsQueueSize  int
	KafkaBrokers     []string
	RabbitMQURL      string
	RabbitMQExchange string

	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	IdempotencyTTL time.Duration

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string

	// DefaultTaxRate applies to bills created without tax_rate. Zero is a valid rate.
	DefaultTaxRate float64
}

const StandardTaxRate = 10.0

// LoadEnvFile loads .env into the process environment. A missing file is not an error.
func LoadEnvFile(path string) {
	if err := godotenv.Load(path); err != nil {
		log.Printf("Notice: %s file not found: %v. Using system environment variables", path, err)
	}
}

func Load() (Config, error) {
	cfg := Config{
		ServiceName: EnvDefault("SERVICE_NAME", "restaurant-pos"),
		ServerPort:  EnvIntDefault("PORT", 5000),
		LogLevel:    EnvDefault("LOG_LEVEL", "info"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		SQLitePath:  EnvDefault("SQLITE_PATH", "restaurant.db"),

		CORSOrigins:    CSV(EnvDefault("CORS_ORIGINS", "*")),
		RateLimitRPS:   EnvFloatDefault("RATE_LIMIT_RPS", 20),
		RateLimitBurst: EnvIntDefault("RATE_LIMIT_BURST", 40),

		EventsQueueSize:  EnvIntDefault("EVENTS_QUEUE_SIZE", 1024),
		KafkaBrokers:     CSV(os.Getenv("KAFKA_BROKERS")),
		RabbitMQURL:      os.Getenv("RABBITMQ_URL"),
		RabbitMQExchange: EnvDefault("RABBITMQ_EXCHANGE", "restaurant.events"),

		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        EnvIntDefault("REDIS_DB", 0),
		IdempotencyTTL: EnvDurationDefault("IDEMPOTENCY_TTL", 24*time.Hour),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
		ESIndex:    EnvDefault("ES_INDEX", "menu_items"),

		DefaultTaxRate: EnvFloatDefault("DEFAULT_TAX_RATE", StandardTaxRate),
	}

	storage, err := ResolveStorage(os.Getenv("STORAGE_DRIVER"), cfg.DatabaseURL)
	if err != nil {
		return Config{}, err
	}
	cfg.Storage = storage

	events, err := ResolveEvents(os.Getenv("EVENTS_DRIVER"))
	if err != nil {
		return Config{}, err
	}
	cfg.Events = events

	switch cfg.Events {
	case EventsKafka:
		if len(cfg.KafkaBrokers) == 0 {
			return Config{}, fmt.Errorf("EVENTS_DRIVER=kafka requires KAFKA_BROKERS")
		}
	case EventsRabbitMQ:
		if cfg.RabbitMQURL == "" {
			return Config{}, fmt.Errorf("EVENTS_DRIVER=rabbitmq requires RABBITMQ_URL")
		}
	}

	return cfg, nil
}

// ResolveStorage picks the storage driver once at startup. An explicit value
// wins; otherwise a postgres scheme in databaseURL selects postgres and
// anything else falls back to the embedded store.
func ResolveStorage(explicit, databaseURL string) (StorageDriver, error) {
	switch StorageDriver(strings.ToLower(strings.TrimSpace(explicit))) {
	case "":
		if hasPostgresScheme(databaseURL) {
			return DriverPostgres, nil
		}
		return DriverSQLite, nil
	case DriverSQLite:
		return DriverSQLite, nil
	case DriverPostgres:
		if databaseURL == "" {
			return "", fmt.Errorf("STORAGE_DRIVER=postgres requires DATABASE_URL")
		}
		return DriverPostgres, nil
	default:
		return "", fmt.Errorf("unknown STORAGE_DRIVER %q", explicit)
	}
}

func ResolveEvents(v string) (EventsDriver, error) {
	switch EventsDriver(strings.ToLower(strings.TrimSpace(v))) {
	case "", EventsNone:
		return EventsNone, nil
	case EventsKafka:
		return EventsKafka, nil
	case EventsRabbitMQ:
		return EventsRabbitMQ, nil
	default:
		return "", fmt.Errorf("unknown EVENTS_DRIVER %q", v)
	}
}

func hasPostgresScheme(dsn string) bool {
	dsn = strings.ToLower(dsn)
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvFloatDefault(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func EnvDurationDefault(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
