package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Storage drivers
const (
	StorageFile   = "file"
	StorageMemory = "memory"
	StorageMySQL  = "mysql"
	StorageRedis  = "redis"
)

// Password storage modes
const (
	PasswordPlain  = "plain"
	PasswordBcrypt = "bcrypt"
)

// Config holds all configuration for the application
type Config struct {
	AppMode      string
	Port         string
	StaticDir    string
	BodyLimitMB  int
	RateLimitMax int
	Storage      StorageConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Auth         AuthConfig
	Events       EventsConfig
	Backup       BackupConfig
}

// StorageConfig selects where the snapshot blob lives
type StorageConfig struct {
	Driver          string
	File            string
	Key             string
	SerializeWrites bool
}

// DatabaseConfig holds MySQL configuration for the mysql storage driver
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// RedisConfig holds Redis configuration for the redis storage driver
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret          string
	AccessTokenMins int
}

// AuthConfig holds login and authorization switches
type AuthConfig struct {
	RequireAuth     bool
	PasswordHashing string
}

// EventsConfig holds RabbitMQ configuration for pass events
type EventsConfig struct {
	AMQPURL string
	Queue   string
}

// BackupConfig holds the scheduled snapshot backup configuration
type BackupConfig struct {
	Schedule string
	Dir      string
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	storage, err := loadStorageConfig()
	if err != nil {
		return nil, err
	}

	auth, err := loadAuthConfig()
	if err != nil {
		return nil, err
	}

	config := &Config{
		AppMode:      appMode,
		Port:         getEnv("PORT", "3000"),
		StaticDir:    getEnv("STATIC_DIR", "public"),
		BodyLimitMB:  getEnvInt("BODY_LIMIT_MB", 10),
		RateLimitMax: getEnvInt("RATE_LIMIT_MAX", 0),
		Storage:      storage,
		Database:     loadDatabaseConfig(appMode),
		Redis:        loadRedisConfig(),
		JWT:          loadJWTConfig(appMode),
		Auth:         auth,
		Events: EventsConfig{
			AMQPURL: getEnv("AMQP_URL", ""),
			Queue:   getEnv("PASS_EVENTS_QUEUE", "gatepass.events"),
		},
		Backup: BackupConfig{
			Schedule: getEnv("BACKUP_SCHEDULE", ""),
			Dir:      getEnv("BACKUP_DIR", "backups"),
		},
	}

	log.Printf("✅ Configuration loaded successfully [MODE: %s, STORAGE: %s]", appMode, storage.Driver)
	return config, nil
}

// loadStorageConfig loads the snapshot storage settings
func loadStorageConfig() (StorageConfig, error) {
	driver := strings.ToLower(strings.TrimSpace(getEnv("STORAGE_DRIVER", StorageFile)))
	switch driver {
	case StorageFile, StorageMemory, StorageMySQL, StorageRedis:
	default:
		return StorageConfig{}, fmt.Errorf("invalid STORAGE_DRIVER: '%s'", driver)
	}

	return StorageConfig{
		Driver:          driver,
		File:            getEnv("DATABASE_FILE", "database.json"),
		Key:             getEnv("SNAPSHOT_KEY", "gatepass"),
		SerializeWrites: getEnvBool("SERIALIZE_WRITES", true),
	}, nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "gatepass"),
	}
}

// loadRedisConfig loads redis config
func loadRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	return JWTConfig{
		Secret:          getEnv(prefix+"JWT_SECRET", getEnv("JWT_SECRET", "default_secret")),
		AccessTokenMins: getEnvInt("ACCESS_TOKEN_MINUTES", 60),
	}
}

// loadAuthConfig loads auth switches
func loadAuthConfig() (AuthConfig, error) {
	hashing := strings.ToLower(strings.TrimSpace(getEnv("PASSWORD_HASHING", PasswordPlain)))
	if hashing != PasswordPlain && hashing != PasswordBcrypt {
		return AuthConfig{}, fmt.Errorf("invalid PASSWORD_HASHING: '%s' (must be 'plain' or 'bcrypt')", hashing)
	}

	return AuthConfig{
		RequireAuth:     getEnvBool("REQUIRE_AUTH", false),
		PasswordHashing: hashing,
	}, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable, falling back on parse errors
func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return n
}

// getEnvBool gets a boolean environment variable, falling back on parse errors
func getEnvBool(key string, defaultValue bool) bool {
	b, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return b
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	return getEnv("ALLOWED_ORIGINS", "*")
}

// BodyLimit returns the request body limit in bytes
func (c *Config) BodyLimit() int {
	if c.BodyLimitMB <= 0 {
		return 10 * 1024 * 1024
	}
	return c.BodyLimitMB * 1024 * 1024
}
