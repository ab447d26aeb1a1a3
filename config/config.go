package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Redis      RedisConfig
	Payment    PaymentConfig
	Commission CommissionConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	Issuer        string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// PaymentConfig covers the external verifier and the inbound webhook.
type PaymentConfig struct {
	ProviderBaseURL string
	ProviderSecret  string
	WebhookSecret   string
	VerifyTimeout   time.Duration
}

// CommissionConfig holds the flat referral commission per referrer role,
// in kobo. Rates are read at payout time.
type CommissionConfig struct {
	MemberRateCents int64
	AgentRateCents  int64
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         envStr("PORT", "8080"),
			Env:          envStr("APP_ENV", "development"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			DSN:             envStr("DATABASE_DSN", "root:@tcp(localhost:3306)/collegemigration?charset=utf8mb4&parseTime=True&loc=Local"),
			MaxIdleConns:    10,
			MaxOpenConns:    100,
			ConnMaxLifetime: time.Hour,
		},
		JWT: JWTConfig{
			AccessSecret:  envStr("JWT_ACCESS_SECRET", "change-me-in-production"),
			RefreshSecret: envStr("JWT_REFRESH_SECRET", "change-me-refresh"),
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 168 * time.Hour,
			Issuer:        "collegemigration",
		},
		Redis: RedisConfig{
			Addr:     envStr("REDIS_ADDR", ""),
			Password: envStr("REDIS_PASSWORD", ""),
			DB:       envInt("REDIS_DB", 0),
		},
		Payment: PaymentConfig{
			ProviderBaseURL: envStr("PAYSTACK_BASE_URL", "https://api.paystack.co"),
			ProviderSecret:  envStr("PAYSTACK_SECRET_KEY", ""),
			WebhookSecret:   envStr("PAYMENT_WEBHOOK_SECRET", ""),
			VerifyTimeout:   20 * time.Second,
		},
		Commission: CommissionConfig{
			MemberRateCents: envInt64("COMMISSION_MEMBER_CENTS", 500000),  // NGN 5,000 in kobo
			AgentRateCents:  envInt64("COMMISSION_AGENT_CENTS", 1000000), // NGN 10,000 in kobo
		},
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
