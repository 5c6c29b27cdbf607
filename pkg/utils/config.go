package utils

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Booking  BookingConfig
	Outbox   OutboxConfig
	Kafka    KafkaConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type BookingConfig struct {
	HoldTTL            time.Duration
	CutoffBefore       time.Duration
	ArrivalBeforeClose time.Duration
	NightsCacheTTL     time.Duration
	TablesCacheTTL     time.Duration
}

type OutboxConfig struct {
	PollInterval time.Duration
	BatchSize    int
	SweepEvery   time.Duration
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("HOLD_TTL_MINUTES", 7)
	viper.SetDefault("CUTOFF_MINUTES", 0)
	viper.SetDefault("ARRIVAL_OFFSET_MINUTES", 0)
	viper.SetDefault("NIGHTS_CACHE_TTL_SECONDS", 60)
	viper.SetDefault("TABLES_CACHE_TTL_SECONDS", 60)
	viper.SetDefault("OUTBOX_POLL_SECONDS", 5)
	viper.SetDefault("OUTBOX_BATCH_SIZE", 50)
	viper.SetDefault("SWEEP_INTERVAL_SECONDS", 60)
	viper.SetDefault("KAFKA_BROKERS", "localhost:9092")
	viper.SetDefault("KAFKA_TOPIC", "booking-events")
	viper.SetDefault("LOG_PATH", "logs/")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Booking: BookingConfig{
			HoldTTL:            time.Duration(viper.GetInt("HOLD_TTL_MINUTES")) * time.Minute,
			CutoffBefore:       time.Duration(viper.GetInt("CUTOFF_MINUTES")) * time.Minute,
			ArrivalBeforeClose: time.Duration(viper.GetInt("ARRIVAL_OFFSET_MINUTES")) * time.Minute,
			NightsCacheTTL:     time.Duration(viper.GetInt("NIGHTS_CACHE_TTL_SECONDS")) * time.Second,
			TablesCacheTTL:     time.Duration(viper.GetInt("TABLES_CACHE_TTL_SECONDS")) * time.Second,
		},
		Outbox: OutboxConfig{
			PollInterval: time.Duration(viper.GetInt("OUTBOX_POLL_SECONDS")) * time.Second,
			BatchSize:    viper.GetInt("OUTBOX_BATCH_SIZE"),
			SweepEvery:   time.Duration(viper.GetInt("SWEEP_INTERVAL_SECONDS")) * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers: strings.Split(viper.GetString("KAFKA_BROKERS"), ","),
			Topic:   viper.GetString("KAFKA_TOPIC"),
		},
	}

	return config, nil
}
