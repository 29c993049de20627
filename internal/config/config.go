package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Store     StoreConfig
	JWT       JWTConfig
	Printer   PrinterConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

type AppConfig struct {
	Name     string
	Env      string
	Host     string
	Port     string
	Timezone string
}

// StoreConfig selects where the shop state lives.
// Driver is one of sqlite, postgres, mysql or memory.
type StoreConfig struct {
	Driver     string
	SQLitePath string
	Host       string
	Port       string
	Name       string
	User       string
	Password   string
	SSLMode    string
}

type JWTConfig struct {
	Secret      string
	ExpiryHours time.Duration
	// Generated is set when Secret was created at startup
	Generated bool
}

// MinJWTSecretLength is the shortest secret accepted in production
const MinJWTSecretLength = 32

// placeholder secrets shipped in sample env files
var insecureSecrets = map[string]bool{
	"":                                 true,
	"change-this-secret-in-production": true,
	"secret":                           true,
	"changeme":                         true,
}

type PrinterConfig struct {
	Type    string
	Path    string
	Address string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "shop-pos")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_HOST", "127.0.0.1")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_TIMEZONE", "Local")
	viper.SetDefault("STORE_DRIVER", "sqlite")
	viper.SetDefault("STORE_SQLITE_PATH", "./data/pos.db")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "shop_pos")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_EXPIRY_HOURS", 12)
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_PATH", "")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")

	return &Config{
		App: AppConfig{
			Name:     viper.GetString("APP_NAME"),
			Env:      viper.GetString("APP_ENV"),
			Host:     viper.GetString("APP_HOST"),
			Port:     viper.GetString("APP_PORT"),
			Timezone: viper.GetString("APP_TIMEZONE"),
		},
		Store: StoreConfig{
			Driver:     viper.GetString("STORE_DRIVER"),
			SQLitePath: viper.GetString("STORE_SQLITE_PATH"),
			Host:       viper.GetString("DB_HOST"),
			Port:       viper.GetString("DB_PORT"),
			Name:       viper.GetString("DB_NAME"),
			User:       viper.GetString("DB_USER"),
			Password:   viper.GetString("DB_PASSWORD"),
			SSLMode:    viper.GetString("DB_SSL_MODE"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		},
		Printer: PrinterConfig{
			Type:    viper.GetString("PRINTER_TYPE"),
			Path:    viper.GetString("PRINTER_PATH"),
			Address: viper.GetString("PRINTER_ADDRESS"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Log: LogConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
		},
	}
}

// EnsureJWTSecret makes sure session tokens are signed with a secret nobody
// else knows. Production refuses a missing, placeholder or short secret;
// elsewhere a random one is generated, so sessions end on restart.
func (c *Config) EnsureJWTSecret() error {
	weak := insecureSecrets[c.JWT.Secret]
	if c.App.Env == "production" {
		if weak {
			return errors.New("JWT_SECRET must be set in production")
		}
		if len(c.JWT.Secret) < MinJWTSecretLength {
			return fmt.Errorf("JWT_SECRET must be at least %d characters in production", MinJWTSecretLength)
		}
		return nil
	}
	if !weak {
		return nil
	}

	buf := make([]byte, MinJWTSecretLength)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Errorf("failed to generate JWT secret: %w", err)
	}
	c.JWT.Secret = hex.EncodeToString(buf)
	c.JWT.Generated = true
	return nil
}

// Location resolves the configured time zone, falling back to the host zone.
func (c *AppConfig) Location() *time.Location {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("Warning: unknown timezone %q, using local time: %v", c.Timezone, err)
		return time.Local
	}
	return loc
}

// Addr is the listen address of the HTTP server.
func (c *AppConfig) Addr() string {
	port := c.Port
	if port == "" {
		port = "8080"
	}
	return c.Host + ":" + port
}

// PostgresDSN builds the DSN for the postgres driver.
func (c *StoreConfig) PostgresDSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode
}

// MySQLDSN builds the DSN for the mysql driver.
func (c *StoreConfig) MySQLDSN() string {
	return c.User + ":" + c.Password +
		"@tcp(" + c.Host + ":" + c.Port + ")/" + c.Name +
		"?charset=utf8mb4&parseTime=True&loc=Local"
}
