package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every environment variable the client reads.
const EnvPrefix = "AERIVE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App     AppConfig
	API     APIConfig
	Storage StorageConfig
	Redis   RedisConfig
	Payment PaymentConfig
	Diag    DiagConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Storage.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"AERIVE_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"AERIVE_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"AERIVE_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"AERIVE_LOG_WARN_STACK" default:"false"`
	DemoCheckout bool   `envconfig:"AERIVE_DEMO_CHECKOUT" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// APIConfig points the gateway at the marketplace backend.
type APIConfig struct {
	BaseURL        string        `envconfig:"AERIVE_API_BASE_URL" required:"true"`
	RequestTimeout time.Duration `envconfig:"AERIVE_API_REQUEST_TIMEOUT" default:"30s"`
	ReleaseTimeout time.Duration `envconfig:"AERIVE_API_RELEASE_TIMEOUT" default:"5s"`
}

// StorageConfig selects and configures the durable client store.
type StorageConfig struct {
	Backend    string `envconfig:"AERIVE_STORAGE_BACKEND" default:"sqlite"`
	SQLitePath string `envconfig:"AERIVE_STORAGE_SQLITE_PATH" default:"aerive.db"`
}

func (s StorageConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(s.Backend)) {
	case "sqlite", "redis":
		return nil
	default:
		return fmt.Errorf("storage backend must be sqlite or redis, got %q", s.Backend)
	}
}

type RedisConfig struct {
	URL          string        `envconfig:"AERIVE_REDIS_URL"`
	Address      string        `envconfig:"AERIVE_REDIS_ADDR"`
	Password     string        `envconfig:"AERIVE_REDIS_PASSWORD"`
	DB           int           `envconfig:"AERIVE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"AERIVE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"AERIVE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"AERIVE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"AERIVE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"AERIVE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// PaymentConfig tunes the payment surface timing knobs.
type PaymentConfig struct {
	FailureReturnDelay time.Duration `envconfig:"AERIVE_PAYMENT_FAILURE_RETURN_DELAY" default:"3s"`
	SuggestionDebounce time.Duration `envconfig:"AERIVE_SUGGESTION_DEBOUNCE" default:"300ms"`
}

// DiagConfig configures the local health/metrics listener.
type DiagConfig struct {
	Enabled bool   `envconfig:"AERIVE_DIAG_ENABLED" default:"true"`
	Addr    string `envconfig:"AERIVE_DIAG_ADDR" default:":9464"`
}
