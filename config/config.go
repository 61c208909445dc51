package config

import (
	"log"

	"github.com/spf13/viper"
)

// PhaseFees holds the commission percentages for one pricing phase.
type PhaseFees struct {
	ClientFeePct float64 `mapstructure:"client"`
	CarerFeePct  float64 `mapstructure:"carer"`
}

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr         string `mapstructure:"REDIS_ADDR"`
	RedisPassword     string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB      int    `mapstructure:"REDIS_CACHE_DB"`
	RedisEventsDB     int    `mapstructure:"REDIS_EVENTS_DB"`
	RedisSweepQueueDB int    `mapstructure:"REDIS_SWEEP_QUEUE_DB"`

	// Pricing configuration. These must never be hard-coded elsewhere.
	MinimumRate       float64              `mapstructure:"MINIMUM_RATE"`
	DefaultRate       float64              `mapstructure:"DEFAULT_RATE"`
	PromoWindowMonths int                  `mapstructure:"PROMO_WINDOW_MONTHS"`
	MaxOccurrences    int                  `mapstructure:"MAX_OCCURRENCES"`
	CurrentPhase      string               `mapstructure:"CURRENT_PHASE"`
	PricingPhases     map[string]PhaseFees `mapstructure:"PRICING_PHASES"`

	// Proposals left pending longer than this are swept to expired.
	ProposalTTLHours int `mapstructure:"PROPOSAL_TTL_HOURS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_EVENTS_DB", 1)
	viper.SetDefault("REDIS_SWEEP_QUEUE_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("MINIMUM_RATE", 15.00)
	viper.SetDefault("DEFAULT_RATE", 25.00)
	viper.SetDefault("PROMO_WINDOW_MONTHS", 6)
	viper.SetDefault("MAX_OCCURRENCES", 12)
	viper.SetDefault("CURRENT_PHASE", "1")
	viper.SetDefault("PRICING_PHASES", map[string]map[string]float64{
		"1": {"client": 0.15, "carer": 0.10},
		"2": {"client": 0.20, "carer": 0.10},
		"3": {"client": 0.25, "carer": 0.15},
	})
	viper.SetDefault("PROPOSAL_TTL_HOURS", 72)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
