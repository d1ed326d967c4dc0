package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	JWT     JWTConfig
	Auth    AuthConfig
	Email   EmailConfig
	CORS    CORSConfig
	Company CompanyConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret            string        `mapstructure:"secret"`
	AccessTokenExpiry time.Duration `mapstructure:"access_expiry"`
	ResetTokenExpiry  time.Duration `mapstructure:"reset_expiry"`
	Issuer            string        `mapstructure:"issuer"`
}

// AuthConfig holds login lockout settings.
type AuthConfig struct {
	MaxLoginAttempts int           `mapstructure:"max_login_attempts"`
	LockoutWindow    time.Duration `mapstructure:"lockout_window"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	FrontendURL string `mapstructure:"frontend_url"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CompanyConfig holds the letterhead details printed on documents.
type CompanyConfig struct {
	Name    string `mapstructure:"name"`
	TRN     string `mapstructure:"trn"`
	Address string `mapstructure:"address"`
	Phone   string `mapstructure:"phone"`
	Email   string `mapstructure:"email"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	v := viper.New()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "maktab")
	v.SetDefault("db.password", "maktab_secret")
	v.SetDefault("db.name", "maktab_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults (access tokens live for a working day)
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "8h")
	v.SetDefault("jwt.reset_expiry", "1h")
	v.SetDefault("jwt.issuer", "maktab")

	// Auth lockout defaults
	v.SetDefault("auth.max_login_attempts", 5)
	v.SetDefault("auth.lockout_window", "15m")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "me-central-1")
	v.SetDefault("email.from_address", "noreply@maktab.local")
	v.SetDefault("email.from_name", "Maktab")
	v.SetDefault("email.frontend_url", "http://localhost:3000")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Company letterhead defaults
	v.SetDefault("company.name", "Maktab Typing & Businessmen Services")
	v.SetDefault("company.trn", "")
	v.SetDefault("company.address", "")
	v.SetDefault("company.phone", "")
	v.SetDefault("company.email", "")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":             "MAKTAB_SERVER_PORT",
		"server.read_timeout":     "MAKTAB_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "MAKTAB_SERVER_WRITE_TIMEOUT",
		"server.environment":      "MAKTAB_SERVER_ENVIRONMENT",
		"db.host":                 "MAKTAB_DB_HOST",
		"db.port":                 "MAKTAB_DB_PORT",
		"db.user":                 "MAKTAB_DB_USER",
		"db.password":             "MAKTAB_DB_PASSWORD",
		"db.name":                 "MAKTAB_DB_NAME",
		"db.sslmode":              "MAKTAB_DB_SSLMODE",
		"db.max_open":             "MAKTAB_DB_MAX_OPEN",
		"db.max_idle":             "MAKTAB_DB_MAX_IDLE",
		"jwt.secret":              "MAKTAB_JWT_SECRET",
		"jwt.access_expiry":       "MAKTAB_JWT_ACCESS_EXPIRY",
		"jwt.reset_expiry":        "MAKTAB_JWT_RESET_EXPIRY",
		"jwt.issuer":              "MAKTAB_JWT_ISSUER",
		"auth.max_login_attempts": "MAKTAB_AUTH_MAX_LOGIN_ATTEMPTS",
		"auth.lockout_window":     "MAKTAB_AUTH_LOCKOUT_WINDOW",
		"email.provider":          "MAKTAB_EMAIL_PROVIDER",
		"email.region":            "MAKTAB_EMAIL_REGION",
		"email.from_address":      "MAKTAB_EMAIL_FROM_ADDRESS",
		"email.from_name":         "MAKTAB_EMAIL_FROM_NAME",
		"email.frontend_url":      "MAKTAB_EMAIL_FRONTEND_URL",
		"cors.allowed_origins":    "MAKTAB_CORS_ALLOWED_ORIGINS",
		"company.name":            "MAKTAB_COMPANY_NAME",
		"company.trn":             "MAKTAB_COMPANY_TRN",
		"company.address":         "MAKTAB_COMPANY_ADDRESS",
		"company.phone":           "MAKTAB_COMPANY_PHONE",
		"company.email":           "MAKTAB_COMPANY_EMAIL",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if MAKTAB_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("MAKTAB_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:            v.GetString("jwt.secret"),
		AccessTokenExpiry: v.GetDuration("jwt.access_expiry"),
		ResetTokenExpiry:  v.GetDuration("jwt.reset_expiry"),
		Issuer:            v.GetString("jwt.issuer"),
	}
	cfg.Auth = AuthConfig{
		MaxLoginAttempts: v.GetInt("auth.max_login_attempts"),
		LockoutWindow:    v.GetDuration("auth.lockout_window"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		FrontendURL: v.GetString("email.frontend_url"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: v.GetStringSlice("cors.allowed_origins"),
	}
	cfg.Company = CompanyConfig{
		Name:    v.GetString("company.name"),
		TRN:     v.GetString("company.trn"),
		Address: v.GetString("company.address"),
		Phone:   v.GetString("company.phone"),
		Email:   v.GetString("company.email"),
	}

	if cfg.Server.Environment == "production" && cfg.JWT.Secret == "change-me-in-production" {
		return nil, fmt.Errorf("MAKTAB_JWT_SECRET must be set in production")
	}

	return cfg, nil
}
