package models

import "time"

// Config represents application configuration
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NATS     NATSConfig
	NSQ      NSQConfig
	EventBus EventBusConfig
	JWT      JWTConfig
	NewRelic NewRelicConfig
	Logger   LoggerConfig
	Engine   EngineConfig
	Catalog  CatalogConfig
	Gemini   GeminiConfig
	Weather  WeatherConfig
	Route    RouteConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Driver    string
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NATSConfig contains NATS connection configuration
type NATSConfig struct {
	URL string
}

// NSQConfig contains NSQ connection configuration
type NSQConfig struct {
	NSQDAddress     string
	LookupdAddress  string
	ConsumerChannel string
}

// EventBusConfig selects the publisher used for outward events
type EventBusConfig struct {
	Driver string // "nats" or "nsq"
}

// JWTConfig contains JWT authentication configuration
type JWTConfig struct {
	Secret     string
	Expiration int // in minutes
	Issuer     string
}

// NewRelicConfig contains New Relic APM configuration
type NewRelicConfig struct {
	LicenseKey  string
	AppName     string
	Enabled     bool
	LogsEnabled bool
}

// LoggerConfig contains logging configuration
type LoggerConfig struct {
	Level    string
	FilePath string
	Type     string
}

// EngineConfig holds the tunables of the proximity and notification engine
type EngineConfig struct {
	DefaultRadiusMeters float64
	Cooldown            time.Duration
	BackgroundInterval  time.Duration
	StaleAfter          time.Duration
	AlertTTL            time.Duration
	PruneInterval       time.Duration
	CopilotTimeout      time.Duration
	AlertRateLimit      int
	AlertRateWindow     time.Duration
}

// CatalogConfig selects where static radars are loaded from
type CatalogConfig struct {
	Source   string // "postgres" or "file"
	FilePath string
}

// GeminiConfig contains the text generation provider configuration
type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float32
}

// WeatherConfig contains the weather provider configuration
type WeatherConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// RouteConfig contains the route provider configuration
type RouteConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}
