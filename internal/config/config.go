package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

type Config struct {
	ServiceName string
	ServerPort  int

	JWTSecret []byte
	TokenTTL  time.Duration
	DemoUsers map[string]string

	StoreDriver string
	SQLiteDSN   string

	KafkaBrokers []string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string

	LogLevel string
	LogDev   bool
	LogFile  string
}

// Load reads .env (if present) and the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	port, err := EnvIntDefault("SERVER_PORT", 8080)
	if err != nil {
		return Config{}, err
	}
	ttlMinutes, err := EnvIntDefault("ACCESS_TOKEN_EXPIRE_MINUTES", 30)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		ServiceName: EnvDefault("SERVICE_NAME", "tasks_api"),
		ServerPort:  port,

		JWTSecret: []byte(os.Getenv("SECRET_KEY")),
		TokenTTL:  time.Duration(ttlMinutes) * time.Minute,

		StoreDriver: strings.ToLower(EnvDefault("STORE_DRIVER", StoreMemory)),
		SQLiteDSN:   EnvDefault("SQLITE_DSN", "file::memory:"),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
		ESIndex:    EnvDefault("ES_INDEX", "tasks"),

		LogLevel: EnvDefault("LOG_LEVEL", "info"),
		LogDev:   os.Getenv("LOG_DEV") == "1",
		LogFile:  os.Getenv("LOG_FILE"),
	}

	if err := NonEmptyBytes(cfg.JWTSecret, "SECRET_KEY"); err != nil {
		return Config{}, err
	}

	raw := os.Getenv("DEMO_USERS")
	if err := NonEmpty(raw, "DEMO_USERS"); err != nil {
		return Config{}, err
	}
	users, err := ParseDemoUsers(raw)
	if err != nil {
		return Config{}, err
	}
	cfg.DemoUsers = users

	if cfg.TokenTTL <= 0 {
		return Config{}, fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}

	switch cfg.StoreDriver {
	case StoreMemory, StoreSQLite:
	default:
		return Config{}, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	return cfg, nil
}

// ParseDemoUsers decodes a JSON object of username to password.
func ParseDemoUsers(raw string) (map[string]string, error) {
	users := map[string]string{}
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return nil, fmt.Errorf("parse DEMO_USERS: %w", err)
	}
	for name := range users {
		if name == "" {
			return nil, fmt.Errorf("parse DEMO_USERS: empty username")
		}
	}
	return users, nil
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

// EnvIntDefault returns def when key is unset and an error when it is set
// but not an integer.
func EnvIntDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}
