// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	LogLevel    string
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	AWS         AWSConfig
	Markup      MarkupConfig
	Admin       AdminConfig
	Upload      UploadConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
	CORSOrigins  []string
	RateLimit    bool
}

type DatabaseConfig struct {
	Driver       string
	Path         string
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
	LogLevel     string
	AutoMigrate  bool
}

type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	SessionTTL int // in minutes
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
}

type MarkupConfig struct {
	Policy                string
	DefaultAmount         float64
	DefaultPreorderAmount float64
	LegacyMinBaseRatio    float64
	LegacyMinBase         int64
}

type AdminConfig struct {
	IDs  []int64
	Help string
}

type UploadConfig struct {
	Dir        string
	MaxSizeMB  int
	CSVCharset string
}

const (
	MarkupPolicyAmount  = "amount"
	MarkupPolicyPercent = "percent"
)

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	adminIDs, err := getEnvAsInt64List("ADMIN_IDS")
	if err != nil {
		return nil, err
	}

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 30),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
			CORSOrigins:  getEnvAsList("CORS_ORIGINS", "*"),
			RateLimit:    getEnvAsBool("RATE_LIMIT_ENABLED", true),
		},
		Database: DatabaseConfig{
			Driver:       getEnv("DB_DRIVER", "sqlite"),
			Path:         getEnv("DATABASE_PATH", "phonemarket.db"),
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "phonemarket"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("DB_LOG_LEVEL", "warn"),
			AutoMigrate:  getEnvAsBool("DB_AUTO_MIGRATE", true),
		},
		Redis: RedisConfig{
			Addr:       getEnv("REDIS_ADDR", ""),
			Password:   getEnv("REDIS_PASSWORD", ""),
			DB:         getEnvAsInt("REDIS_DB", 0),
			SessionTTL: getEnvAsInt("SESSION_TTL_MINUTES", 60),
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", "eu-central-1"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			S3Bucket:        getEnv("AWS_S3_BUCKET", "phonemarket-price-lists"),
		},
		Markup: MarkupConfig{
			Policy:                strings.ToLower(getEnv("MARKUP_POLICY", MarkupPolicyAmount)),
			DefaultAmount:         getEnvAsFloat("DEFAULT_MARKUP_AMOUNT", 0),
			DefaultPreorderAmount: getEnvAsFloat("DEFAULT_PREORDER_MARKUP_AMOUNT", 0),
			LegacyMinBaseRatio:    getEnvAsFloat("LEGACY_MIN_BASE_RATIO", 0.1),
			LegacyMinBase:         int64(getEnvAsInt("LEGACY_MIN_BASE", 0)),
		},
		Admin: AdminConfig{
			IDs:  adminIDs,
			Help: getEnv("ADMIN_HELP", ""),
		},
		Upload: UploadConfig{
			Dir:        getEnv("PRICE_UPLOAD_DIR", "uploads/prices"),
			MaxSizeMB:  getEnvAsInt("MAX_UPLOAD_MB", 20),
			CSVCharset: strings.ToLower(getEnv("PRICE_CSV_CHARSET", "utf-8")),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.Markup.Policy != MarkupPolicyAmount && c.Markup.Policy != MarkupPolicyPercent {
		return fmt.Errorf("MARKUP_POLICY must be %q or %q, got %q", MarkupPolicyAmount, MarkupPolicyPercent, c.Markup.Policy)
	}

	if c.Markup.LegacyMinBaseRatio < 0 || c.Markup.LegacyMinBaseRatio >= 1 {
		return fmt.Errorf("LEGACY_MIN_BASE_RATIO must be in [0, 1)")
	}

	if c.Database.Driver != "sqlite" && c.Database.Driver != "postgres" {
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}

	if c.Database.Driver == "postgres" && c.Database.Password == "" && c.Environment == "production" {
		return fmt.Errorf("database password is required in production")
	}

	if len(c.Admin.IDs) == 0 && c.Environment == "production" {
		return fmt.Errorf("ADMIN_IDS is required in production")
	}

	return nil
}

// IsAdmin reports whether userID is on the static admin allow-list.
func (c *Config) IsAdmin(userID int64) bool {
	for _, id := range c.Admin.IDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsInt64List(key string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(os.Getenv(key), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s entry %q: %w", key, part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func getEnvAsList(key, defaultValue string) []string {
	var values []string
	for _, part := range strings.Split(getEnv(key, defaultValue), ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}
