package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Channel   ChannelConfig   `mapstructure:"channel"`
	OpenAPI   OpenAPIConfig   `mapstructure:"openapi"`
	Artifacts ArtifactsConfig `mapstructure:"artifacts"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port"`
	Mode string     `mapstructure:"mode"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	AllowAllOrigins bool     `mapstructure:"allow_all_origins"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // sqlite, postgres
	Path            string        `mapstructure:"path"`   // sqlite file path
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// DSN builds the driver-specific connection string.
func (c *DatabaseConfig) DSN() string {
	if c.Driver == "postgres" {
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
	}
	return c.Path
}

// ChannelConfig selects and parameterizes the execution backend.
// Mode is one of auto_api, auto_device, browser_rpa.
type ChannelConfig struct {
	Mode                 string `mapstructure:"mode"`
	DeviceID             string `mapstructure:"device_id"`
	DryRun               bool   `mapstructure:"dry_run"`
	FinalConfirmRequired bool   `mapstructure:"final_confirm_required"`
}

// OpenAPIConfig holds the commerce platform open-API credentials.
type OpenAPIConfig struct {
	AppID          string `mapstructure:"app_id"`
	AppSecret      string `mapstructure:"app_secret"`
	Gateway        string `mapstructure:"gateway"`
	Version        string `mapstructure:"version"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// ArtifactsConfig configures the S3-compatible store for step artifacts.
type ArtifactsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	PublicURL string `mapstructure:"public_url"`
}

type SchedulerConfig struct {
	OrderSyncMinutes     int `mapstructure:"order_sync_minutes"`
	SalesAnalysisMinutes int `mapstructure:"sales_analysis_minutes"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

func Load(configPath string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	// Enable environment variable override
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.cors.allow_all_origins", true)
	v.SetDefault("server.cors.allowed_origins", []string{})
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "./data/autopilot.db")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("channel.mode", "auto_device")
	v.SetDefault("channel.device_id", "emulator-5554")
	v.SetDefault("channel.dry_run", true)
	v.SetDefault("channel.final_confirm_required", true)
	v.SetDefault("openapi.gateway", "https://ark.example-commerce.com/ark/open_api/v3/common_controller")
	v.SetDefault("openapi.version", "2.0")
	v.SetDefault("openapi.timeout_seconds", 15)
	v.SetDefault("artifacts.enabled", false)
	v.SetDefault("artifacts.endpoint", "localhost:9000")
	v.SetDefault("artifacts.use_ssl", false)
	v.SetDefault("artifacts.bucket", "task-artifacts")
	v.SetDefault("scheduler.order_sync_minutes", 10)
	v.SetDefault("scheduler.sales_analysis_minutes", 60)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Bind environment variables explicitly for sensitive data
	v.BindEnv("database.driver", "DB_DRIVER")
	v.BindEnv("database.host", "DB_HOST")
	v.BindEnv("database.password", "DB_PASSWORD")
	v.BindEnv("channel.mode", "CHANNEL_MODE")
	v.BindEnv("channel.device_id", "CHANNEL_DEVICE_ID")
	v.BindEnv("channel.final_confirm_required", "CHANNEL_FINAL_CONFIRM_REQUIRED")
	v.BindEnv("openapi.app_id", "OPENAPI_APP_ID")
	v.BindEnv("openapi.app_secret", "OPENAPI_APP_SECRET")
	v.BindEnv("openapi.gateway", "OPENAPI_GATEWAY")
	v.BindEnv("artifacts.access_key", "ARTIFACTS_ACCESS_KEY")
	v.BindEnv("artifacts.secret_key", "ARTIFACTS_SECRET_KEY")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
