package config

import (
	"errors"  // For validation errors
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For splitting list values
	"time"    // For durations

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort          string        // Application port
	DBDriver         string        // Database driver: mysql, postgres or sqlite
	DBUser           string        // Database user
	DBPassword       string        // Database password
	DBHost           string        // Database host
	DBPort           string        // Database port
	DBName           string        // Database name
	DBPath           string        // SQLite file path
	DBConnectTimeout time.Duration // Upper bound for a single connection attempt
	JWTSecret        string        // JWT secret key
	JWTTTL           time.Duration // Token lifetime
	RedisAddr        string        // Redis server address, empty disables the public cache
	RedisPass        string        // Redis password
	RedisDB          int           // Redis database number
	CacheTTL         time.Duration // Public news cache lifetime
	IsProd           bool          // Is production environment
	LogLevel         string        // logrus level name
	CORSOrigins      []string      // Allowed browser origins
	AdminName        string        // Canonical admin name
	AdminEmail       string        // Canonical admin email
	AdminPassword    string        // Canonical admin password
	AdminCategory    string        // Canonical admin category
	LoginRate        float64       // Login attempts per second per client
	LoginBurst       int           // Login burst size per client
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	return &Config{
		AppPort:          getEnv("APP_PORT", "5000"),
		DBDriver:         strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		DBUser:           os.Getenv("DB_USER"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBHost:           getEnv("DB_HOST", "127.0.0.1"),
		DBPort:           os.Getenv("DB_PORT"),
		DBName:           getEnv("DB_NAME", "news_portal"),
		DBPath:           getEnv("DB_PATH", "news_portal.db"),
		DBConnectTimeout: getDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		JWTTTL:           getDuration("JWT_TTL", 7*24*time.Hour), // Dashboard sessions last a week
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPass:        os.Getenv("REDIS_PASS"),
		RedisDB:          getInt("REDIS_DB", 0),
		CacheTTL:         getDuration("CACHE_TTL", 60*time.Second),
		IsProd:           os.Getenv("IS_PROD") == "true",
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		CORSOrigins:      getList("CORS_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"}),
		AdminName:        getEnv("ADMIN_NAME", "Admin"),
		AdminEmail:       getEnv("ADMIN_EMAIL", "admin@example.com"),
		AdminPassword:    os.Getenv("ADMIN_PASSWORD"),
		AdminCategory:    getEnv("ADMIN_CATEGORY", "general"),
		LoginRate:        getFloat("LOGIN_RATE", 1),
		LoginBurst:       getInt("LOGIN_BURST", 5),
	}
}

// Validate reports configuration that would make the server unsafe to run
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		if c.IsProd {
			return errors.New("JWT_SECRET must be set in production")
		}
		c.JWTSecret = "dev-secret-change-me" // Development fallback only
	}
	switch c.DBDriver {
	case "mysql", "postgres", "sqlite":
	default:
		return errors.New("DB_DRIVER must be one of mysql, postgres, sqlite")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil && v > 0 {
		return v
	}
	return fallback
}

// getDuration accepts Go duration strings ("90s", "24h")
func getDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return fallback
}

func getList(key string, fallback []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
