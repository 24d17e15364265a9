package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/piresc/vigilante/internal/pkg/models"
	"github.com/spf13/viper"
)

// InitConfig loads .env (local only) and an optional config/config.yaml,
// then reads every setting through viper with environment overrides.
// Env keys are the upper-cased yaml paths with "." replaced by "_",
// e.g. engine.cooldown -> ENGINE_COOLDOWN.
func InitConfig(envPath string) *models.Config {
	v := viper.New()
	v.SetEnvKeyReplacer(envReplacer())
	v.AutomaticEnv()

	if env := v.GetString("app.env"); env == "" || env == "local" {
		if err := godotenv.Load(envPath); err != nil {
			log.Println("error loading config from file", err)
		}
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		log.Printf("no config file read, using env and defaults: %s", err)
	}

	return Load(v)
}

// Load builds the configuration from an already prepared viper instance
func Load(v *viper.Viper) *models.Config {
	setDefaults(v)

	configs := &models.Config{}

	configs.App.Name = v.GetString("app.name")
	configs.App.Environment = v.GetString("app.env")
	configs.App.Debug = v.GetBool("app.debug")
	configs.App.Version = v.GetString("app.version")

	configs.Server.Host = v.GetString("server.host")
	configs.Server.Port = v.GetInt("server.port")
	configs.Server.ReadTimeout = v.GetInt("server.read_timeout")
	configs.Server.WriteTimeout = v.GetInt("server.write_timeout")
	configs.Server.ShutdownTimeout = v.GetInt("server.shutdown_timeout")

	configs.Database.Driver = v.GetString("db.driver")
	configs.Database.Host = v.GetString("db.host")
	configs.Database.Port = v.GetInt("db.port")
	configs.Database.Username = v.GetString("db.username")
	configs.Database.Password = v.GetString("db.password")
	configs.Database.Database = v.GetString("db.database")
	configs.Database.SSLMode = v.GetString("db.ssl_mode")
	configs.Database.MaxConns = v.GetInt("db.max_conns")
	configs.Database.IdleConns = v.GetInt("db.idle_conns")

	configs.Redis.Host = v.GetString("redis.host")
	configs.Redis.Port = v.GetInt("redis.port")
	configs.Redis.Password = v.GetString("redis.password")
	configs.Redis.DB = v.GetInt("redis.db")
	configs.Redis.PoolSize = v.GetInt("redis.pool_size")

	configs.NATS.URL = v.GetString("nats.url")

	configs.NSQ.NSQDAddress = v.GetString("nsq.nsqd_address")
	configs.NSQ.LookupdAddress = v.GetString("nsq.lookupd_address")
	configs.NSQ.ConsumerChannel = v.GetString("nsq.consumer_channel")

	configs.EventBus.Driver = v.GetString("event_bus.driver")

	configs.JWT.Secret = v.GetString("jwt.secret")
	configs.JWT.Expiration = v.GetInt("jwt.expiration")
	configs.JWT.Issuer = v.GetString("jwt.issuer")

	configs.NewRelic.LicenseKey = v.GetString("new_relic.license_key")
	configs.NewRelic.AppName = v.GetString("new_relic.app_name")
	configs.NewRelic.Enabled = v.GetBool("new_relic.enabled")
	configs.NewRelic.LogsEnabled = v.GetBool("new_relic.logs_enabled")

	configs.Logger.Level = v.GetString("log.level")
	configs.Logger.FilePath = v.GetString("log.file_path")
	configs.Logger.Type = v.GetString("log.type")

	configs.Engine.DefaultRadiusMeters = v.GetFloat64("engine.default_radius_meters")
	configs.Engine.Cooldown = v.GetDuration("engine.cooldown")
	configs.Engine.BackgroundInterval = v.GetDuration("engine.background_interval")
	configs.Engine.StaleAfter = v.GetDuration("engine.stale_after")
	configs.Engine.AlertTTL = v.GetDuration("engine.alert_ttl")
	configs.Engine.PruneInterval = v.GetDuration("engine.prune_interval")
	configs.Engine.CopilotTimeout = v.GetDuration("engine.copilot_timeout")
	configs.Engine.AlertRateLimit = v.GetInt("engine.alert_rate_limit")
	configs.Engine.AlertRateWindow = v.GetDuration("engine.alert_rate_window")

	configs.Catalog.Source = v.GetString("catalog.source")
	configs.Catalog.FilePath = v.GetString("catalog.file_path")

	configs.Gemini.APIKey = v.GetString("gemini.api_key")
	configs.Gemini.Model = v.GetString("gemini.model")
	configs.Gemini.Temperature = float32(v.GetFloat64("gemini.temperature"))

	configs.Weather.BaseURL = v.GetString("weather.base_url")
	configs.Weather.APIKey = v.GetString("weather.api_key")
	configs.Weather.Timeout = v.GetDuration("weather.timeout")

	configs.Route.BaseURL = v.GetString("route.base_url")
	configs.Route.APIKey = v.GetString("route.api_key")
	configs.Route.Timeout = v.GetDuration("route.timeout")

	return configs
}

func envReplacer() *strings.Replacer {
	return strings.NewReplacer(".", "_")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "vigilante")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.debug", true)

	v.SetDefault("server.port", 9990)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.shutdown_timeout", 10)

	v.SetDefault("db.driver", "pgx")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.ssl_mode", "disable")
	v.SetDefault("db.max_conns", 10)
	v.SetDefault("db.idle_conns", 2)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.pool_size", 10)

	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("nsq.nsqd_address", "localhost:4150")
	v.SetDefault("nsq.consumer_channel", "vigilante")
	v.SetDefault("event_bus.driver", "nats")

	v.SetDefault("jwt.expiration", 60)
	v.SetDefault("jwt.issuer", "vigilante")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file_path", "logs/vigilante.log")
	v.SetDefault("log.type", "console")

	v.SetDefault("engine.default_radius_meters", 1000.0)
	v.SetDefault("engine.cooldown", 300*time.Second)
	v.SetDefault("engine.background_interval", 300*time.Second)
	v.SetDefault("engine.stale_after", 30*time.Second)
	v.SetDefault("engine.alert_ttl", 2*time.Hour)
	v.SetDefault("engine.prune_interval", time.Minute)
	v.SetDefault("engine.copilot_timeout", 8*time.Second)
	v.SetDefault("engine.alert_rate_limit", 5)
	v.SetDefault("engine.alert_rate_window", time.Minute)

	v.SetDefault("catalog.source", "file")
	v.SetDefault("catalog.file_path", "config/radars.yaml")

	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("gemini.temperature", 0.7)

	v.SetDefault("weather.base_url", "https://api.openweathermap.org/data/2.5")
	v.SetDefault("weather.timeout", 5*time.Second)
	v.SetDefault("route.base_url", "https://api.openrouteservice.org")
	v.SetDefault("route.timeout", 10*time.Second)
}
