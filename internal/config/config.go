package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Kasir"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Storage struct {
		Driver string `envconfig:"STORAGE_DRIVER" default:"memory"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"kasir"`
	}

	Server struct {
		Timeout     time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		CORSOrigins []string      `envconfig:"CORS_ORIGINS" default:"http://localhost:3000"`
	}

	Checkout struct {
		// TaxRate is parsed into a decimal by Config.TaxRate.
		TaxRate       string        `envconfig:"TAX_RATE" default:"0.11"`
		SuccessDelay  time.Duration `envconfig:"CHECKOUT_SUCCESS_DELAY" default:"1200ms"`
		CommitTimeout time.Duration `envconfig:"CHECKOUT_COMMIT_TIMEOUT" default:"5s"`
	}

	Catalog struct {
		// File is an optional CSV export; the embedded sample catalog is used when empty.
		File string `envconfig:"CATALOG_FILE"`
	}

	Notify struct {
		ToastDuration time.Duration `envconfig:"TOAST_DURATION" default:"3s"`
	}

	Insights struct {
		APIKey   string        `envconfig:"GEMINI_API_KEY"`
		Model    string        `envconfig:"GEMINI_MODEL" default:"gemini-3-flash-preview"`
		BaseURL  string        `envconfig:"GEMINI_BASE_URL" default:"https://generativelanguage.googleapis.com"`
		Language string        `envconfig:"INSIGHTS_LANGUAGE" default:"Bahasa Indonesia"`
		Timeout  time.Duration `envconfig:"GEMINI_TIMEOUT" default:"30s"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// TaxRate returns the configured VAT rate as an exact decimal.
func (c *Config) TaxRate() (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(c.Checkout.TaxRate)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing tax rate %q: %w", c.Checkout.TaxRate, err)
	}

	if rate.IsNegative() {
		return decimal.Zero, fmt.Errorf("tax rate must not be negative: %s", rate)
	}

	return rate, nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	switch cfg.Storage.Driver {
	case StorageMemory, StoragePostgres:
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Storage.Driver)
	}

	if _, err := cfg.TaxRate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
