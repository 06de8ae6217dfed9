package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // clinic timezone on images without zoneinfo

	"github.com/spf13/viper"
)

// Config holds all application configuration
//
//nolint:govet // Field alignment optimization would reduce readability
type Config struct {
	Server        ServerConfig
	API           APIConfig
	Session       SessionConfig
	Database      DatabaseConfig
	Cache         CacheConfig
	Clinic        ClinicConfig
	OAuth         OAuthConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
	Profiling     ProfilingConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	AppEnv         string
	BaseURL        string
	AllowedOrigins []string
}

// APIConfig points at the remote clinic REST API.
type APIConfig struct {
	// BaseURL overrides the environment-derived default when set.
	BaseURL string
}

type SessionConfig struct {
	Backend      string // "cookie" or "postgres"
	Secret       string
	TTLHours     int
	CookieDomain string
	CookieSecure bool
}

type DatabaseConfig struct {
	URL      string
	MaxConns int32
	MinConns int32
}

type CacheConfig struct {
	DoctorTTLSeconds    int  // Doctor directory TTL in seconds
	DisableDoctorsCache bool // Read the directory from the remote API on every request
}

// ClinicConfig holds the clinic's local settings. Booking date and time
// inputs are interpreted in Timezone.
type ClinicConfig struct {
	Timezone string
}

type OAuthConfig struct {
	GoogleClientID string
}

type LoggingConfig struct {
	Level string
	Dir   string
}

type ObservabilityConfig struct {
	ExporterEndpoint  string
	ServiceName       string
	ServiceNamespace  string
	ServiceVersion    string
	ServiceInstanceID string
}

type ProfilingConfig struct {
	Enabled               bool
	Endpoint              string
	AppName               string
	SampleTypes           string
	UploadIntervalSeconds int
}

const (
	SessionBackendCookie   = "cookie"
	SessionBackendPostgres = "postgres"
)

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("PORT", "3000")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("BASE_URL", "https://madhuri-nidan-kendra.vercel.app")
	v.SetDefault("ALLOWED_CORS_ORIGINS", "https://madhuri-nidan-kendra.vercel.app")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "/app/logs")
	v.SetDefault("SESSION_BACKEND", SessionBackendCookie)
	v.SetDefault("SESSION_TTL_HOURS", 24*7)
	v.SetDefault("COOKIE_DOMAIN", "")
	v.SetDefault("COOKIE_SECURE", true)
	v.SetDefault("DOCTOR_CACHE_TTL", 300) // 5 minutes in seconds
	v.SetDefault("DISABLE_DOCTORS_CACHE", false)
	v.SetDefault("CLINIC_TIMEZONE", "Asia/Kolkata")
	v.SetDefault("O11Y_EXPORTER_ENDPOINT", "")
	v.SetDefault("O11Y_SERVICE_NAME", "clinic-web")
	v.SetDefault("O11Y_SERVICE_NAMESPACE", "clinic")
	v.SetDefault("O11Y_SERVICE_VERSION", "1.0.0")
	v.SetDefault("O11Y_PROFILING_ENABLED", false)
	v.SetDefault("O11Y_PROFILING_APP_NAME", "clinic-web")
	v.SetDefault("O11Y_PROFILING_SAMPLE_TYPES", "cpu,alloc_space,goroutines")
	v.SetDefault("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS", 15)

	// Automatically read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // Ignore error if .env file doesn't exist

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			GinMode:        v.GetString("GIN_MODE"),
			AppEnv:         v.GetString("APP_ENV"),
			BaseURL:        v.GetString("BASE_URL"),
			AllowedOrigins: splitList(v.GetString("ALLOWED_CORS_ORIGINS")),
		},
		API: APIConfig{
			BaseURL: v.GetString("API_BASE_URL"),
		},
		Session: SessionConfig{
			Backend:      strings.ToLower(v.GetString("SESSION_BACKEND")),
			Secret:       v.GetString("SESSION_SECRET"),
			TTLHours:     v.GetInt("SESSION_TTL_HOURS"),
			CookieDomain: v.GetString("COOKIE_DOMAIN"),
			CookieSecure: v.GetBool("COOKIE_SECURE"),
		},
		Database: DatabaseConfig{
			URL:      v.GetString("DATABASE_URL"),
			MaxConns: 10,
			MinConns: 1,
		},
		Cache: CacheConfig{
			DoctorTTLSeconds:    v.GetInt("DOCTOR_CACHE_TTL"),
			DisableDoctorsCache: v.GetBool("DISABLE_DOCTORS_CACHE"),
		},
		Clinic: ClinicConfig{
			Timezone: v.GetString("CLINIC_TIMEZONE"),
		},
		OAuth: OAuthConfig{
			GoogleClientID: v.GetString("GOOGLE_CLIENT_ID"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
			Dir:   v.GetString("LOG_DIR"),
		},
		Observability: ObservabilityConfig{
			ExporterEndpoint:  v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:       v.GetString("O11Y_SERVICE_NAME"),
			ServiceNamespace:  v.GetString("O11Y_SERVICE_NAMESPACE"),
			ServiceVersion:    v.GetString("O11Y_SERVICE_VERSION"),
			ServiceInstanceID: v.GetString("SERVICE_INSTANCE_ID"),
		},
		Profiling: ProfilingConfig{
			Enabled:               v.GetBool("O11Y_PROFILING_ENABLED"),
			Endpoint:              v.GetString("O11Y_PROFILING_ENDPOINT"),
			AppName:               v.GetString("O11Y_PROFILING_APP_NAME"),
			SampleTypes:           v.GetString("O11Y_PROFILING_SAMPLE_TYPES"),
			UploadIntervalSeconds: v.GetInt("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS"),
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// splitList parses a comma-separated list, dropping blanks
func splitList(value string) []string {
	items := []string{}
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Session.Backend {
	case SessionBackendCookie:
		if c.Session.Secret == "" {
			return fmt.Errorf("SESSION_SECRET is required for the cookie session backend")
		}
	case SessionBackendPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres session backend")
		}
	default:
		return fmt.Errorf("unsupported SESSION_BACKEND %q", c.Session.Backend)
	}

	if c.Session.TTLHours <= 0 {
		return fmt.Errorf("SESSION_TTL_HOURS must be positive")
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	if c.Profiling.Enabled && c.Profiling.Endpoint == "" {
		return fmt.Errorf("O11Y_PROFILING_ENDPOINT is required when profiling is enabled")
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.GinMode == "debug"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.AppEnv == "production"
}

// SessionTTLSeconds returns the session lifetime used for cookies and tokens
func (c *Config) SessionTTLSeconds() int {
	return c.Session.TTLHours * 3600
}

// Location resolves the clinic timezone
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Clinic.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid CLINIC_TIMEZONE %q: %w", c.Clinic.Timezone, err)
	}
	return loc, nil
}

// APIBaseURL is the clinic API base URL: API_BASE_URL when set, otherwise
// derived from the environment
func (c *Config) APIBaseURL(fallback func(env string) string) string {
	if c.API.BaseURL != "" {
		return strings.TrimRight(c.API.BaseURL, "/")
	}
	return fallback(c.Server.AppEnv)
}
