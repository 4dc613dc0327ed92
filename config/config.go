package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/types"
	"github.com/Temutjin2k/ride-hail-insights/pkg/configparser"
)

// Flags
var (
	modeFlag = flag.String("mode", "", "application mode: ride-dashboard | loan-dashboard")
)

// Errors
var (
	ErrModeNotProvided = errors.New("mode flag not provided")
	ErrUnknownMode     = errors.New("unknown mode")
)

// Dataset sources
const (
	SourceFile     = "file"
	SourceMinio    = "minio"
	SourcePostgres = "postgres"
)

// Assistant providers
const (
	ProviderNone   = "none"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config contains all configuration variables of the application
type (
	Config struct {
		Mode types.ServiceMode

		HTTP      HTTPConfig
		Log       LogConfig
		Dataset   DatasetConfig
		Assistant AssistantConfig
		Session   SessionConfig
		Database  DatabaseConfig
		RabbitMQ  RabbitMQConfig
		Redis     RedisConfig
		Minio     MinioConfig
		Auth      Auth
	}

	HTTPConfig struct {
		RideDashboardPort string        `env:"HTTP_RIDE_DASHBOARD_PORT" default:"3000"`
		LoanDashboardPort string        `env:"HTTP_LOAN_DASHBOARD_PORT" default:"3001"`
		ReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" default:"15s"`
		WriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" default:"30s"`
	}

	LogConfig struct {
		Level string `env:"LOG_LEVEL" default:"INFO"`
	}

	DatasetConfig struct {
		Source string `env:"DATASET_SOURCE" default:"file"` // file | minio | postgres

		TripsPath   string `env:"DATASET_TRIPS_PATH" default:"data/trips.xlsx"`
		TripsSheet  string `env:"DATASET_TRIPS_SHEET"`
		TripsObject string `env:"DATASET_TRIPS_OBJECT" default:"trips.xlsx"`

		LoansPath   string `env:"DATASET_LOANS_PATH" default:"data/Loans2024.xlsx"`
		LoansSheet  string `env:"DATASET_LOANS_SHEET"`
		LoansObject string `env:"DATASET_LOANS_OBJECT" default:"Loans2024.xlsx"`

		ReloadCron    string        `env:"DATASET_RELOAD_CRON"` // empty disables scheduled reloads
		ReloadTimeout time.Duration `env:"DATASET_RELOAD_TIMEOUT" default:"2m"`
	}

	AssistantConfig struct {
		Provider     string        `env:"ASSISTANT_PROVIDER" default:"none"` // none | openai | gemini
		APIKey       string        `env:"ASSISTANT_API_KEY"`
		Model        string        `env:"ASSISTANT_MODEL"`
		BaseURL      string        `env:"ASSISTANT_BASE_URL"`
		Organization string        `env:"ASSISTANT_ORGANIZATION"`
		Temperature  float64       `env:"ASSISTANT_TEMPERATURE" default:"0.2"`
		Timeout      time.Duration `env:"ASSISTANT_TIMEOUT" default:"10s"`
		HistorySize  int           `env:"ASSISTANT_HISTORY_SIZE" default:"10"`
	}

	SessionConfig struct {
		TTL           time.Duration `env:"SESSION_TTL" default:"30m"`
		SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" default:"1m"`
	}

	DatabaseConfig struct {
		Host     string `env:"DATABASE_HOST" default:"localhost"`
		Port     string `env:"DATABASE_PORT" default:"5432"`
		User     string `env:"DATABASE_USER" default:"insights_user"`
		Password string `env:"DATABASE_PASSWORD" default:"insights_pass"`
		Database string `env:"DATABASE_DATABASE" default:"insights_db"`

		MaxConns        int32         `env:"DATABASE_MAXCONNS" default:"10"`
		MinConns        int32         `env:"DATABASE_MINCONNS" default:"1"`
		MaxConnLifetime time.Duration `env:"DATABASE_MAXCONNLIFETIME" default:"30m"`
		MaxConnIdleTime time.Duration `env:"DATABASE_MAXCONNIDLETIME" default:"5m"`
	}

	RabbitMQConfig struct {
		Enabled  bool   `env:"RABBITMQ_ENABLED" default:"false"`
		Host     string `env:"RABBITMQ_HOST" default:"localhost"`
		Port     string `env:"RABBITMQ_PORT" default:"5672"`
		User     string `env:"RABBITMQ_USER" default:"guest"`
		Password string `env:"RABBITMQ_PASSWORD" default:"guest"`
	}

	RedisConfig struct {
		Enabled    bool          `env:"REDIS_ENABLED" default:"false"`
		Host       string        `env:"REDIS_HOST" default:"localhost"`
		Port       string        `env:"REDIS_PORT" default:"6379"`
		Password   string        `env:"REDIS_PASSWORD"`
		DB         int           `env:"REDIS_DB" default:"0"`
		SummaryTTL time.Duration `env:"REDIS_SUMMARY_TTL" default:"10m"`
	}

	MinioConfig struct {
		Endpoint  string `env:"MINIO_ENDPOINT" default:"localhost:9000"`
		AccessKey string `env:"MINIO_ACCESS_KEY" default:"minioadmin"`
		SecretKey string `env:"MINIO_SECRET_KEY" default:"minioadmin"`
		Bucket    string `env:"MINIO_BUCKET" default:"dashboards"`
		Secure    bool   `env:"MINIO_SECURE" default:"false"`
	}

	Auth struct {
		JWTSecret string `env:"AUTH_JWT_SECRET" default:"supersecretkey"`
		Issuer    string `env:"AUTH_ISSUER" default:"ride-hail-insights"`
	}
)

func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

func (c DatabaseConfig) PoolLimits() (int32, int32, time.Duration, time.Duration) {
	return c.MaxConns, c.MinConns, c.MaxConnLifetime, c.MaxConnIdleTime
}

func (c RabbitMQConfig) GetDSN() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/",
		c.User,
		c.Password,
		c.Host,
		c.Port,
	)
}

func (c RedisConfig) GetAddr() string     { return fmt.Sprintf("%s:%s", c.Host, c.Port) }
func (c RedisConfig) GetPassword() string { return c.Password }
func (c RedisConfig) GetDB() int          { return c.DB }

func (c MinioConfig) GetEndpoint() string  { return c.Endpoint }
func (c MinioConfig) GetAccessKey() string { return c.AccessKey }
func (c MinioConfig) GetSecretKey() string { return c.SecretKey }
func (c MinioConfig) GetBucket() string    { return c.Bucket }
func (c MinioConfig) IsSecure() bool       { return c.Secure }

// Port returns the listen port of the configured mode.
func (c Config) Port() string {
	if c.Mode == types.LoanDashboard {
		return c.HTTP.LoanDashboardPort
	}
	return c.HTTP.RideDashboardPort
}

func NewConfig(filepath string) (*Config, error) {
	cfg := &Config{}

	// Loading enviromental variables and parsing to config struct.
	if err := configparser.LoadAndParseYaml(filepath, cfg); err != nil {
		return nil, fmt.Errorf("failed to load and parse config: %w", err)
	}

	// Parsing flags
	if err := parseFlags(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseFlags(cfg *Config) error {
	if modeFlag == nil || *modeFlag == "" {
		return ErrModeNotProvided
	}

	cfg.Mode = types.ServiceMode(*modeFlag)

	return nil
}

func (c *Config) validate() error {
	switch c.Mode {
	case types.RideDashboard, types.LoanDashboard:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, c.Mode)
	}

	switch c.Dataset.Source {
	case SourceFile, SourceMinio, SourcePostgres:
	default:
		return fmt.Errorf("unknown dataset source %q", c.Dataset.Source)
	}

	switch c.Assistant.Provider {
	case ProviderNone:
	case ProviderOpenAI, ProviderGemini:
		if c.Assistant.APIKey == "" {
			return fmt.Errorf("assistant provider %q requires ASSISTANT_API_KEY", c.Assistant.Provider)
		}
	default:
		return fmt.Errorf("unknown assistant provider %q", c.Assistant.Provider)
	}
	return nil
}
