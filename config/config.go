package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB         int    `mapstructure:"REDIS_CACHE_DB"`
	RedisGestureDB       int    `mapstructure:"REDIS_GESTURE_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Scheduling defaults. Workday bounds are minutes from midnight and act
	// as the fallback when a doctor carries no working hours of their own.
	SlotStepMinutes      int `mapstructure:"SLOT_STEP_MINUTES"`
	WorkdayStartMinute   int `mapstructure:"WORKDAY_START_MINUTE"`
	WorkdayEndMinute     int `mapstructure:"WORKDAY_END_MINUTE"`
	SuggestionSearchDays int `mapstructure:"SUGGESTION_SEARCH_DAYS"`
	GestureTTLMinutes    int `mapstructure:"GESTURE_TTL_MINUTES"`
	ReminderLeadHours    int `mapstructure:"REMINDER_LEAD_HOURS"`

	// Firebase service account used for push notifications.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
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
	viper.SetDefault("REDIS_GESTURE_DB", 1)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "clinicore")
	viper.SetDefault("SLOT_STEP_MINUTES", 15)
	viper.SetDefault("WORKDAY_START_MINUTE", 480)
	viper.SetDefault("WORKDAY_END_MINUTE", 1080)
	viper.SetDefault("SUGGESTION_SEARCH_DAYS", 14)
	viper.SetDefault("GESTURE_TTL_MINUTES", 10)
	viper.SetDefault("REMINDER_LEAD_HOURS", 24)
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "serviceAccountKey.json")

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
