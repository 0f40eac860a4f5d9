package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// envBindings maps config keys to the environment variables that set them.
var envBindings = map[string]string{
	"server.port":                    "PORT",
	"server.env":                     "ENV",
	"server.allow_origins":           "ALLOW_ORIGINS",
	"server.public_base_url":         "PUBLIC_BASE_URL",
	"database.host":                  "DB_HOST",
	"database.port":                  "DB_PORT",
	"database.user":                  "DB_USER",
	"database.password":              "DB_PASSWORD",
	"database.name":                  "DB_NAME",
	"database.ssl_mode":              "DB_SSLMODE",
	"database.max_idle_conns":        "DB_MAX_IDLE_CONNS",
	"database.max_open_conns":        "DB_MAX_OPEN_CONNS",
	"database.conn_max_lifetime":     "DB_CONN_MAX_LIFETIME",
	"database.conn_max_idle_time":    "DB_CONN_MAX_IDLE_TIME",
	"redis.host":                     "REDIS_HOST",
	"redis.port":                     "REDIS_PORT",
	"redis.password":                 "REDIS_PASSWORD",
	"redis.db":                       "REDIS_DB",
	"redis.ttl":                      "REDIS_TTL",
	"auth.jwt_secret":                "JWT_SECRET",
	"payments.provider":              "PAYMENT_PROVIDER",
	"payments.redirect_url":          "PAYMENT_REDIRECT_URL",
	"payments.confirmation_url":      "PAYMENT_CONFIRMATION_URL",
	"payments.currency":              "PAYMENT_CURRENCY",
	"payments.epayco_customer_id":    "EPAYCO_CUSTOMER_ID",
	"payments.epayco_public_key":     "EPAYCO_PUBLIC_KEY",
	"payments.epayco_p_key":          "EPAYCO_P_KEY",
	"payments.epayco_checkout_url":   "EPAYCO_CHECKOUT_URL",
	"payments.epayco_test":           "EPAYCO_TEST",
	"payments.stripe_secret_key":     "STRIPE_SECRET_KEY",
	"payments.stripe_webhook_secret": "STRIPE_WEBHOOK_SECRET",
	"log.level":                      "LOG_LEVEL",
	"log.format":                     "LOG_FORMAT",
	"scheduler.enabled":              "SCHEDULER_ENABLED",
	"scheduler.interval":             "SCHEDULER_INTERVAL",
	"scheduler.pending_payment_ttl":  "PENDING_PAYMENT_TTL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.allow_origins", "http://localhost:5173")
	v.SetDefault("server.public_base_url", "http://localhost:5173")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "playpark")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.conn_max_idle_time", 30*time.Minute)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 10*time.Minute)

	v.SetDefault("auth.jwt_secret", "your-secret-key")

	v.SetDefault("payments.provider", "epayco")
	v.SetDefault("payments.currency", "COP")
	v.SetDefault("payments.epayco_checkout_url", "https://checkout.epayco.co/payment.html")
	v.SetDefault("payments.epayco_test", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.interval", 15*time.Minute)
	v.SetDefault("scheduler.pending_payment_ttl", 24*time.Hour)
}

// Load reads configuration from the environment (after .env) on top of defaults.
func Load() (*Config, error) {
	if err := LoadEnv(); err != nil {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	switch cfg.Payments.Provider {
	case "epayco", "stripe":
	default:
		return fmt.Errorf("unsupported payment provider %q", cfg.Payments.Provider)
	}
	if !cfg.IsProduction() {
		return nil
	}
	if cfg.Auth.JWTSecret == "your-secret-key" {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}

	// Confirmations are only trustworthy when signed with a private secret.
	p := cfg.Payments
	switch p.Provider {
	case "epayco":
		if p.EpaycoCustomerID == "" || p.EpaycoPKey == "" {
			return fmt.Errorf("EPAYCO_CUSTOMER_ID and EPAYCO_P_KEY must be set in production")
		}
	case "stripe":
		if p.StripeSecretKey == "" || p.StripeWebhookSecret == "" {
			return fmt.Errorf("STRIPE_SECRET_KEY and STRIPE_WEBHOOK_SECRET must be set in production")
		}
	}
	return nil
}
