package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"github.com/swipehire/backend/internal/domain"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Stripe   StripeConfig
	Pricing  PricingConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	AccessSecret    string
	AccessExpiryMin int
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	SuccessURL    string
	CancelURL     string
	Currency      string
}

// PricingConfig overrides the unlock price table. Values are cents; zero
// means "use the default". The basic price is deliberately a single knob:
// product has used both 29 and 29.99, and whichever value is settled on must
// reach every call site at once.
type PricingConfig struct {
	BasicUnlockCents    int64
	StandardUnlockCents int64
	FlexUnlockCents     int64
	StandardFreeQuota   int
}

type LoggingConfig struct {
	Level string
}

// Load loads configuration from environment variables or .env file
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Try to read from .env file, but don't fail if it doesn't exist
	_ = viper.ReadInConfig()

	config := &Config{
		Server: ServerConfig{
			Host:         viper.GetString("SERVER_HOST"),
			Port:         viper.GetInt("SERVER_PORT"),
			Env:          viper.GetString("ENV"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetInt("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			AccessSecret:    viper.GetString("JWT_ACCESS_SECRET"),
			AccessExpiryMin: viper.GetInt("JWT_ACCESS_EXPIRY_MIN"),
		},
		Stripe: StripeConfig{
			SecretKey:     viper.GetString("STRIPE_SECRET_KEY"),
			WebhookSecret: viper.GetString("STRIPE_WEBHOOK_SECRET"),
			SuccessURL:    viper.GetString("STRIPE_SUCCESS_URL"),
			CancelURL:     viper.GetString("STRIPE_CANCEL_URL"),
			Currency:      viper.GetString("STRIPE_CURRENCY"),
		},
		Pricing: PricingConfig{
			BasicUnlockCents:    viper.GetInt64("PRICE_BASIC_UNLOCK_CENTS"),
			StandardUnlockCents: viper.GetInt64("PRICE_STANDARD_UNLOCK_CENTS"),
			FlexUnlockCents:     viper.GetInt64("PRICE_FLEX_UNLOCK_CENTS"),
			StandardFreeQuota:   viper.GetInt("STANDARD_FREE_QUOTA"),
		},
		Logging: LoggingConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	if config.JWT.AccessExpiryMin == 0 {
		config.JWT.AccessExpiryMin = 60 * 24
	}
	if config.Stripe.Currency == "" {
		config.Stripe.Currency = "eur"
	}

	// Validate critical configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates critical configuration values
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database name is required")
	}
	if c.JWT.AccessSecret == "" {
		return fmt.Errorf("JWT access secret is required")
	}
	if len(c.JWT.AccessSecret) < 32 {
		return fmt.Errorf("JWT access secret must be at least 32 characters")
	}
	if c.Stripe.SecretKey == "" {
		return fmt.Errorf("stripe secret key is required")
	}
	if c.Stripe.WebhookSecret == "" {
		return fmt.Errorf("stripe webhook secret is required")
	}
	if c.Stripe.SuccessURL == "" || c.Stripe.CancelURL == "" {
		return fmt.Errorf("stripe success and cancel URLs are required")
	}
	return nil
}

// GetDSN returns PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// GetAddr returns Redis address
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// PriceTable resolves the configured pricing overrides against defaults.
func (c *PricingConfig) PriceTable() domain.Pricing {
	pricing := domain.DefaultPricing()
	if c.BasicUnlockCents > 0 {
		pricing.BasicUnlockCents = c.BasicUnlockCents
	}
	if c.StandardUnlockCents > 0 {
		pricing.StandardUnlockCents = c.StandardUnlockCents
	}
	if c.FlexUnlockCents > 0 {
		pricing.FlexUnlockCents = c.FlexUnlockCents
	}
	if c.StandardFreeQuota > 0 {
		pricing.StandardFreeQuota = c.StandardFreeQuota
	}
	return pricing
}
