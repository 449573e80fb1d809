package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	APIKey      string // API key for authentication
	LogLevel    string
	LogFormat   string
	Environment string
	ServiceName string
	Version     string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	CatalogDir string // directory holding the static game-data JSON files

	Economy EconomyConfig
}

// EconomyConfig carries the tunable economy constants.
type EconomyConfig struct {
	StartCoins     int64 // starting balance without a referrer
	ReferredBonus  int64 // starting balance when joining through a referral link
	ReferralBonus  int64 // credited to the referrer
	MinBet         int64
	StarSellPrice  int64 // coins gained selling one star
	StarBuyPrice   int64 // coins paid buying one star
	DailyBonusBase int64 // coins per streak step
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:      getEnv("API_KEY", ""),
		LogLevel:    getEnv("LOG_LEVEL", "INFO"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		ServiceName: getEnv("SERVICE_NAME", "coinverse"),
		Version:     getEnv("VERSION", "dev"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBName:      getEnv("DB_NAME", "coinverse"),
		CatalogDir:  getEnv("CATALOG_DIR", "configs"),
	}

	port, err := getEnvInt("PORT", 8080)
	if err != nil {
		return nil, err
	}
	cfg.Port = int(port)

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	eco := EconomyConfig{}
	if eco.StartCoins, err = getEnvInt("START_COINS", 1000); err != nil {
		return nil, err
	}
	if eco.ReferredBonus, err = getEnvInt("REFERRED_BONUS", 2000); err != nil {
		return nil, err
	}
	if eco.ReferralBonus, err = getEnvInt("REFERRAL_BONUS", 1000); err != nil {
		return nil, err
	}
	if eco.MinBet, err = getEnvInt("MIN_BET", 50); err != nil {
		return nil, err
	}
	if eco.StarSellPrice, err = getEnvInt("STAR_SELL_PRICE", 20000); err != nil {
		return nil, err
	}
	if eco.StarBuyPrice, err = getEnvInt("STAR_BUY_PRICE", 22000); err != nil {
		return nil, err
	}
	if eco.DailyBonusBase, err = getEnvInt("DAILY_BONUS_BASE", 100); err != nil {
		return nil, err
	}
	cfg.Economy = eco

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int64) (int64, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
