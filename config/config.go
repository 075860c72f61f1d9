package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisSlotDB   int    `mapstructure:"REDIS_SLOT_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Gemini API key for the intent classifier.
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
	AITimeoutSec int    `mapstructure:"AI_TIMEOUT_SEC"`

	// Conversation settings.
	HistoryWindow int `mapstructure:"HISTORY_WINDOW"`

	// Slot reservation settings.
	SlotHoldTTLMin      int `mapstructure:"SLOT_HOLD_TTL_MIN"`
	SlotSuggestionCount int `mapstructure:"SLOT_SUGGESTION_COUNT"`
	ClinicOpenHour      int `mapstructure:"CLINIC_OPEN_HOUR"`
	ClinicCloseHour     int `mapstructure:"CLINIC_CLOSE_HOUR"`
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
	viper.SetDefault("REDIS_SLOT_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("AI_TIMEOUT_SEC", 10)
	viper.SetDefault("HISTORY_WINDOW", 10)
	viper.SetDefault("SLOT_HOLD_TTL_MIN", 10)
	viper.SetDefault("SLOT_SUGGESTION_COUNT", 3)
	viper.SetDefault("CLINIC_OPEN_HOUR", 9)
	viper.SetDefault("CLINIC_CLOSE_HOUR", 17)

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
