package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"google.golang.org/api/option"
)

type Config struct {
	ServerPort  string
	Environment string
	LogLevel    string

	FirebaseProject            string
	FirebaseServiceAccountJSON string
	FirebaseServiceAccountPath string
	StorageBucket              string
	StoreDriver                string

	RedisAddr     string
	RedisPassword string
	CachePrefix   string

	SessionCookieName string
	SessionExpiry     time.Duration

	FormRatePerMinute int
	FormRateBurst     int
	MaxUploadBytes    int64
	AllowedOrigins    []string

	ShutdownTimeout time.Duration
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", ""),

		FirebaseProject:            getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseServiceAccountJSON: getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
		FirebaseServiceAccountPath: getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", ""),
		StorageBucket:              getEnv("STORAGE_BUCKET", ""),
		StoreDriver:                getEnv("STORE_DRIVER", "firestore"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		CachePrefix:   getEnv("CACHE_PREFIX", "rugstore:"),

		SessionCookieName: getEnv("SESSION_COOKIE_NAME", "__session"),
		// Firebase caps session cookies at two weeks.
		SessionExpiry: getEnvAsDuration("SESSION_EXPIRY", 5*24*time.Hour),

		FormRatePerMinute: int(getEnvAsInt64("FORM_RATE_PER_MINUTE", 5)),
		FormRateBurst:     int(getEnvAsInt64("FORM_RATE_BURST", 3)),
		MaxUploadBytes:    getEnvAsInt64("MAX_UPLOAD_BYTES", 10*1024*1024),
		AllowedOrigins:    getEnvAsList("ALLOWED_ORIGINS", []string{"*"}),

		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	if config.LogLevel == "" {
		if config.IsProduction() {
			config.LogLevel = "info"
		} else {
			config.LogLevel = "debug"
		}
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// ClientOptions picks Google credentials: inline service account JSON, then
// a key file, then application default credentials.
func (c *Config) ClientOptions() []option.ClientOption {
	if c.FirebaseServiceAccountJSON != "" {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(c.FirebaseServiceAccountJSON))}
	}
	if c.FirebaseServiceAccountPath != "" {
		if _, err := os.Stat(c.FirebaseServiceAccountPath); err == nil {
			return []option.ClientOption{option.WithCredentialsFile(c.FirebaseServiceAccountPath)}
		}
	}
	return nil
}

func (c *Config) validate() error {
	if c.StoreDriver != "firestore" && c.StoreDriver != "memory" {
		return fmt.Errorf("unknown STORE_DRIVER: %s", c.StoreDriver)
	}
	if c.StoreDriver == "memory" && c.IsProduction() {
		return fmt.Errorf("STORE_DRIVER=memory is not allowed in production")
	}
	if c.Environment != "development" && c.FirebaseProject == "" {
		return fmt.Errorf("FIREBASE_PROJECT_ID is required in %s", c.Environment)
	}
	if c.SessionExpiry < 5*time.Minute || c.SessionExpiry > 14*24*time.Hour {
		return fmt.Errorf("SESSION_EXPIRY must be between 5m and 336h, got %s", c.SessionExpiry)
	}
	if c.FormRatePerMinute <= 0 || c.FormRateBurst <= 0 {
		return fmt.Errorf("form rate limits must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
