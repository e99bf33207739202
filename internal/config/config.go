package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	LogLevel string
	HTTPPort string

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	UploadDir          string
	UploadURLPrefix    string
	UploadMaxFileBytes int64

	JWTSecret string
	TokenTTL  time.Duration

	KafkaBrokers       []string
	KafkaTopic         string
	OutboxPollInterval time.Duration
	OutboxBatchSize    int
	OutboxMaxAttempts  int

	ActivityPerSource int
	ActivityLimit     int

	AdminEmail    string
	AdminName     string
	AdminPassword string
}

// Load reads .env (or .example.env) from the working directory or up to two
// parents, then builds the config from the environment.
func Load() (*Config, error) {
	loadEnv()

	cfg := &Config{
		Env:      env("APP_ENV", "dev"),
		LogLevel: env("LOG_LEVEL", "debug"),
		HTTPPort: env("HTTP_PORT", "9000"),

		DBHost:     env("DB_HOST", "localhost"),
		DBUser:     env("POSTGRES_USER", "postgres"),
		DBPassword: env("POSTGRES_PASSWORD", "postgres"),
		DBName:     env("POSTGRES_DB", "portal"),
		DBSSLMode:  env("DB_SSLMODE", "disable"),

		UploadDir:       env("UPLOAD_DIR", "./uploads"),
		UploadURLPrefix: env("UPLOAD_URL_PREFIX", "/uploads/"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   env("KAFKA_TOPIC", "portal_events"),

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminName:     env("ADMIN_NAME", "Administrator"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	var err error
	if cfg.DBPort, err = envInt("DB_PORT", 5432); err != nil {
		return nil, err
	}
	if cfg.UploadMaxFileBytes, err = envInt64("UPLOAD_MAX_FILE_BYTES", 10<<20); err != nil {
		return nil, err
	}
	if cfg.TokenTTL, err = envDuration("TOKEN_TTL", 30*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.OutboxPollInterval, err = envDuration("OUTBOX_POLL_INTERVAL", 2*time.Second); err != nil {
		return nil, err
	}
	if cfg.OutboxBatchSize, err = envInt("OUTBOX_BATCH_SIZE", 20); err != nil {
		return nil, err
	}
	if cfg.OutboxMaxAttempts, err = envInt("OUTBOX_MAX_ATTEMPTS", 5); err != nil {
		return nil, err
	}
	if cfg.ActivityPerSource, err = envInt("ACTIVITY_PER_SOURCE", 10); err != nil {
		return nil, err
	}
	if cfg.ActivityLimit, err = envInt("ACTIVITY_LIMIT", 10); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.UploadMaxFileBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_FILE_BYTES must be positive, got %d", c.UploadMaxFileBytes)
	}
	if c.ActivityPerSource <= 0 || c.ActivityLimit <= 0 {
		return fmt.Errorf("ACTIVITY_PER_SOURCE and ACTIVITY_LIMIT must be positive")
	}
	if c.OutboxBatchSize <= 0 || c.OutboxMaxAttempts <= 0 {
		return fmt.Errorf("OUTBOX_BATCH_SIZE and OUTBOX_MAX_ATTEMPTS must be positive")
	}
	if !strings.HasPrefix(c.UploadURLPrefix, "/") || !strings.HasSuffix(c.UploadURLPrefix, "/") {
		return fmt.Errorf("UPLOAD_URL_PREFIX must start and end with '/', got %q", c.UploadURLPrefix)
	}
	return nil
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func (c *Config) IsDev() bool {
	return c.Env == "dev"
}

func loadEnv() {
	wd, err := os.Getwd()
	if err != nil {
		log.Printf("config: cannot resolve working directory: %v", err)
		return
	}

	possiblePaths := []string{
		filepath.Join(wd, ".env"),
		filepath.Join(wd, "..", ".env"),
		filepath.Join(wd, "..", "..", ".env"),
	}

	for _, envPath := range possiblePaths {
		if err := godotenv.Load(envPath); err == nil {
			log.Printf("Loaded environment variables from %s", envPath)
			return
		}
	}

	for _, envPath := range possiblePaths {
		examplePath := filepath.Join(filepath.Dir(envPath), ".example.env")
		if err := godotenv.Load(examplePath); err == nil {
			log.Printf("Loaded environment variables from %s", examplePath)
			return
		}
	}
}

func env(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func envInt64(key string, def int64) (int64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
