package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	API      APIConfig
	Session  SessionConfig
	Redis    RedisConfig
	DB       DBConfig
	DemoUser DemoUserConfig
}

type AppConfig struct {
	Port            string `validate:"required"`
	Env             string
	Timezone        string
	LogLevel        string
	ViewIdleTimeout time.Duration

	// CORSAllowedOrigins is "*" or a list of exact origins.
	CORSAllowedOrigins []string `validate:"min=1"`
}

// APIConfig points at the appointments REST backend.
type APIConfig struct {
	BaseURL      string        `validate:"required,url"`
	Timeout      time.Duration `validate:"gt=0"`
	ForwardToken bool
}

type SessionConfig struct {
	Store      string `validate:"oneof=redis memory"`
	Secret     string `validate:"required"`
	Expiry     time.Duration
	CookieName string `validate:"required"`
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type DBConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxIdleConns int `validate:"gte=0"`
	MaxOpenConns int `validate:"gte=0"`
}

// DemoUserConfig is the account accepted by the static credential verifier.
type DemoUserConfig struct {
	ID       string
	Email    string `validate:"required,email"`
	Name     string
	Role     string
	Password string `validate:"required"`
}

// Location resolves the configured timezone, falling back to the host zone.
func (c AppConfig) Location() *time.Location {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode,
	)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_TIMEZONE", "Local")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("VIEW_IDLE_TIMEOUT", "30m")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	v.SetDefault("API_BASE_URL", "http://localhost:3001/api")
	v.SetDefault("API_TIMEOUT", "10s")
	v.SetDefault("API_FORWARD_TOKEN", false)

	v.SetDefault("SESSION_STORE", "redis")
	v.SetDefault("SESSION_EXPIRY", "12h")
	v.SetDefault("SESSION_COOKIE", "token")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "hospitron")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_MAX_OPEN_CONNS", 20)

	v.SetDefault("DEMO_USER_ID", "1")
	v.SetDefault("DEMO_USER_EMAIL", "doctor@hospital.com")
	v.SetDefault("DEMO_USER_NAME", "Dr. John Smith")
	v.SetDefault("DEMO_USER_ROLE", "Doctor")
	v.SetDefault("DEMO_USER_PASSWORD", "doctor123")
}

// LoadConfig reads configFile (when it exists) and the environment.
// Environment variables take precedence over the file.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			v.SetConfigFile(configFile)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	apiTimeout, err := time.ParseDuration(v.GetString("API_TIMEOUT"))
	if err != nil {
		apiTimeout = 10 * time.Second
	}

	sessionExpiry, err := time.ParseDuration(v.GetString("SESSION_EXPIRY"))
	if err != nil {
		sessionExpiry = 12 * time.Hour
	}

	viewIdle, err := time.ParseDuration(v.GetString("VIEW_IDLE_TIMEOUT"))
	if err != nil {
		viewIdle = 30 * time.Minute
	}

	config := &Config{
		App: AppConfig{
			Port:               v.GetString("APP_PORT"),
			Env:                v.GetString("APP_ENV"),
			Timezone:           v.GetString("APP_TIMEZONE"),
			LogLevel:           v.GetString("LOG_LEVEL"),
			ViewIdleTimeout:    viewIdle,
			CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		API: APIConfig{
			BaseURL:      v.GetString("API_BASE_URL"),
			Timeout:      apiTimeout,
			ForwardToken: v.GetBool("API_FORWARD_TOKEN"),
		},
		Session: SessionConfig{
			Store:      v.GetString("SESSION_STORE"),
			Secret:     v.GetString("SESSION_SECRET"),
			Expiry:     sessionExpiry,
			CookieName: v.GetString("SESSION_COOKIE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		DB: DBConfig{
			Host:         v.GetString("DB_HOST"),
			Port:         v.GetString("DB_PORT"),
			User:         v.GetString("DB_USER"),
			Password:     v.GetString("DB_PASSWORD"),
			Name:         v.GetString("DB_NAME"),
			SSLMode:      v.GetString("DB_SSLMODE"),
			MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		},
		DemoUser: DemoUserConfig{
			ID:       v.GetString("DEMO_USER_ID"),
			Email:    v.GetString("DEMO_USER_EMAIL"),
			Name:     v.GetString("DEMO_USER_NAME"),
			Role:     v.GetString("DEMO_USER_ROLE"),
			Password: v.GetString("DEMO_USER_PASSWORD"),
		},
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// splitList splits a comma-separated value, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
