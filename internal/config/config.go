package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Pipeline  PipelineConfig  `mapstructure:"pipeline"`
	Sources   SourcesConfig   `mapstructure:"sources"`
	Export    ExportConfig    `mapstructure:"export"`
	Screening ScreeningConfig `mapstructure:"screening"`
	Admin     AdminConfig     `mapstructure:"admin"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Version     string `mapstructure:"version"`
	Debug       bool   `mapstructure:"debug"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	HTTPPort        int           `mapstructure:"http_port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	Schema          string        `mapstructure:"schema"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s&search_path=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.Schema,
	)
}

type RedisConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
	TLS       bool   `mapstructure:"tls"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute"`
	RequestsPerHour   int  `mapstructure:"requests_per_hour"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	TimeFormat string `mapstructure:"time_format"`
}

// PipelineConfig controls the catalog rebuild loop
type PipelineConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	InitialDelay    time.Duration `mapstructure:"initial_delay"`
	RebuildInterval time.Duration `mapstructure:"rebuild_interval"`
	WorkerPoolSize  int           `mapstructure:"worker_pool_size"`
	MaxEntities     int           `mapstructure:"max_entities"`
}

type SourcesConfig struct {
	Curated    SourceConfig `mapstructure:"curated"`
	Complaints SourceConfig `mapstructure:"complaints"`
	Sanctions  SourceConfig `mapstructure:"sanctions"`
	Synthetic  SourceConfig `mapstructure:"synthetic"`
}

type SourceConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Priority int    `mapstructure:"priority"`
	Path     string `mapstructure:"path"`      // data file override (curated, sanctions)
	Dir      string `mapstructure:"dir"`       // documents directory (complaints)
	Count    int    `mapstructure:"count"`     // records to generate (synthetic)
	Seed     int64  `mapstructure:"seed"`      // generator seed (synthetic)
	BaseDate string `mapstructure:"base_date"` // generator anchor date, YYYY-MM-DD (synthetic)
}

type ExportConfig struct {
	CSVPath     string `mapstructure:"csv_path"`
	XLSXPath    string `mapstructure:"xlsx_path"`
	XLSXEnabled bool   `mapstructure:"xlsx_enabled"`
}

type ScreeningConfig struct {
	SanctionedNamesPath string `mapstructure:"sanctioned_names_path"`
}

type AdminConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// Load reads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/fraudatlas")
	}

	// Environment variables
	v.SetEnvPrefix("FRAUDATLAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind nested env vars explicitly (viper doesn't auto-bind nested struct fields)
	v.BindEnv("redis.tls", "FRAUDATLAS_REDIS_TLS")
	v.BindEnv("redis.host", "FRAUDATLAS_REDIS_HOST")
	v.BindEnv("redis.port", "FRAUDATLAS_REDIS_PORT")
	v.BindEnv("redis.password", "FRAUDATLAS_REDIS_PASSWORD")
	v.BindEnv("database.host", "FRAUDATLAS_DATABASE_HOST")
	v.BindEnv("database.port", "FRAUDATLAS_DATABASE_PORT")
	v.BindEnv("database.user", "FRAUDATLAS_DATABASE_USER")
	v.BindEnv("database.password", "FRAUDATLAS_DATABASE_PASSWORD")
	v.BindEnv("database.dbname", "FRAUDATLAS_DATABASE_DBNAME")
	v.BindEnv("database.sslmode", "FRAUDATLAS_DATABASE_SSLMODE")
	v.BindEnv("app.environment", "FRAUDATLAS_APP_ENVIRONMENT")
	v.BindEnv("admin.api_key", "FRAUDATLAS_ADMIN_API_KEY")
	v.BindEnv("sources.complaints.dir", "FRAUDATLAS_SOURCES_COMPLAINTS_DIR")
	v.BindEnv("sources.sanctions.path", "FRAUDATLAS_SOURCES_SANCTIONS_PATH")
	v.BindEnv("export.csv_path", "FRAUDATLAS_EXPORT_CSV_PATH")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// LoadDefault loads configuration with default path
func LoadDefault() (*Config, error) {
	return Load("")
}

func (c *Config) applyDefaults() {
	if c.Pipeline.WorkerPoolSize <= 0 {
		c.Pipeline.WorkerPoolSize = 4
	}
	if c.Pipeline.MaxEntities <= 0 {
		c.Pipeline.MaxEntities = 10
	}
	if c.Pipeline.RebuildInterval <= 0 {
		c.Pipeline.RebuildInterval = 24 * time.Hour
	}
	if c.Export.CSVPath == "" {
		c.Export.CSVPath = "data/fraud_cases.csv"
	}
}
