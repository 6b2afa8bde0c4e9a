package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	MongoDB    MongoDBConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Admin      AdminConfig
	Promo      PromoConfig
	FraudCheck FraudCheckConfig
	SMS        SMSConfig
	RateLimit  RateLimitConfig
	Log        LogConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port            string
	AllowedHosts    []string
	ReadTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// RedisConfig holds the reveal-candidate cache configuration. An empty Addr disables the cache.
type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	CatalogTTL time.Duration
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int
}

// AdminConfig holds the bootstrap administrator credentials.
// PasswordHash is a bcrypt hash, never a plaintext password.
type AdminConfig struct {
	Username     string
	PasswordHash string
}

// PromoConfig holds promotion rules
type PromoConfig struct {
	DefaultValidityDays int
	MaxPrizes           int
	ClaimRetries        int
	QuestionsToWin      int
	QuestionsPerGame    int
	PlayPassTTL         time.Duration
}

// FraudCheckConfig holds the fraud classifier client configuration
type FraudCheckConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
	MockAPI bool
}

// SMSConfig holds SMS gateway-specific configuration
type SMSConfig struct {
	BaseURL        string
	APIKey         string
	Sender         string
	MockSMSGateway bool
}

// RateLimitConfig holds the per-client limits for public participant endpoints
type RateLimitConfig struct {
	RequestsPerMinute float64
	Burst             int
}

// LogConfig holds logging configuration. File enables rotated file output.
type LogConfig struct {
	Level  string
	Format string
	File   string
}

// Load loads configuration from environment variables and config files
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath("./config")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate rejects configurations the service cannot run with
func (c *Config) Validate() error {
	if c.MongoDB.URI == "" {
		return fmt.Errorf("MONGODB_URI is required")
	}
	if c.Promo.DefaultValidityDays <= 0 {
		return fmt.Errorf("PROMO_DEFAULTVALIDITYDAYS must be positive, got %d", c.Promo.DefaultValidityDays)
	}
	if c.Promo.MaxPrizes <= 0 {
		return fmt.Errorf("PROMO_MAXPRIZES must be positive, got %d", c.Promo.MaxPrizes)
	}
	if c.Promo.QuestionsToWin > c.Promo.QuestionsPerGame {
		return fmt.Errorf("PROMO_QUESTIONSTOWIN (%d) exceeds PROMO_QUESTIONSPERGAME (%d)", c.Promo.QuestionsToWin, c.Promo.QuestionsPerGame)
	}
	return nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("Server.Port", "4000")
	v.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	v.SetDefault("Server.ReadTimeout", 15*time.Second)
	v.SetDefault("Server.ShutdownTimeout", 5*time.Second)
	v.SetDefault("MongoDB.URI", "mongodb://localhost:27017/?replicaSet=rs0")
	v.SetDefault("MongoDB.Database", "sansol-promo")
	v.SetDefault("MongoDB.Timeout", 10*time.Second)
	v.SetDefault("Redis.Addr", "")
	v.SetDefault("Redis.Password", "")
	v.SetDefault("Redis.DB", 0)
	v.SetDefault("Redis.CatalogTTL", 30*time.Second)
	v.SetDefault("JWT.Secret", "")
	v.SetDefault("JWT.ExpiresIn", 12*60*60) // 12 hours
	v.SetDefault("Admin.Username", "admin")
	v.SetDefault("Admin.PasswordHash", "")
	v.SetDefault("Promo.DefaultValidityDays", 7)
	v.SetDefault("Promo.MaxPrizes", 10)
	v.SetDefault("Promo.ClaimRetries", 3)
	v.SetDefault("Promo.QuestionsToWin", 2)
	v.SetDefault("Promo.QuestionsPerGame", 3)
	v.SetDefault("Promo.PlayPassTTL", 30*time.Minute)
	v.SetDefault("FraudCheck.BaseURL", "https://api.openai.com/v1")
	v.SetDefault("FraudCheck.APIKey", "")
	v.SetDefault("FraudCheck.Model", "gpt-4o-mini")
	v.SetDefault("FraudCheck.Timeout", 15*time.Second)
	v.SetDefault("FraudCheck.MockAPI", true)
	v.SetDefault("SMS.BaseURL", "")
	v.SetDefault("SMS.APIKey", "")
	v.SetDefault("SMS.Sender", "SANSOL")
	v.SetDefault("SMS.MockSMSGateway", true)
	v.SetDefault("RateLimit.RequestsPerMinute", 30)
	v.SetDefault("RateLimit.Burst", 10)
	v.SetDefault("Log.Level", "info")
	v.SetDefault("Log.Format", "json")
	v.SetDefault("Log.File", "")
}
