package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Database struct {
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	SSLMode  string `mapstructure:"ssl-mode"`
}

type Gateway struct {
	SecretKey string `mapstructure:"secret-key"`
	BaseURL   string `mapstructure:"base-url"`
	Currency  string `mapstructure:"currency"`
	TimeoutMs int    `mapstructure:"timeout-ms"`
}

type Mailer struct {
	APIKey    string `mapstructure:"api-key"`
	FromEmail string `mapstructure:"from-email"`
	FromName  string `mapstructure:"from-name"`
	TimeoutMs int    `mapstructure:"timeout-ms"`
}

type Notification struct {
	RecipientDomain string `mapstructure:"recipient-domain"`
}

type Queue struct {
	PollingIntervalMs int `mapstructure:"polling-interval-ms"`
}

type KafkaWriter struct {
	BatchSize      int `mapstructure:"batch-size"`
	BatchTimeoutMs int `mapstructure:"batch-timeout-ms"`
}

type KafkaBroker struct {
	URL string `mapstructure:"url"`
}

type KafkaTopic struct {
	ChargeRequests string `mapstructure:"charge-requests"`
	PaymentEvents  string `mapstructure:"payment-events"`
}

type KafkaReader struct {
	GroupID string `mapstructure:"group-id"`
}

type Kafka struct {
	Writer KafkaWriter `mapstructure:"writer"`
	Broker KafkaBroker `mapstructure:"broker"`
	Topic  KafkaTopic  `mapstructure:"topic"`
	Reader KafkaReader `mapstructure:"reader"`
}

type Server struct {
	Port string `mapstructure:"port"`
}

type Metrics struct {
	URL          string `mapstructure:"url"`
	IntervalMs   int    `mapstructure:"interval-ms"`
	CommonLabels string `mapstructure:"common-labels"`
}

type Logs struct {
	URL string `mapstructure:"url"`
}

type Config struct {
	Database     Database     `mapstructure:"database"`
	Gateway      Gateway      `mapstructure:"gateway"`
	Mailer       Mailer       `mapstructure:"mailer"`
	Notification Notification `mapstructure:"notification"`
	Queue        Queue        `mapstructure:"queue"`
	Kafka        Kafka        `mapstructure:"kafka"`
	Server       Server       `mapstructure:"server"`
	Metrics      Metrics      `mapstructure:"metrics"`
	Logs         Logs         `mapstructure:"logs"`
}

func LoadConfig(path string) (*Config, error) {
	// .env overrides are optional, mostly for local development
	_ = godotenv.Load()

	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func MustLoadConfig(path string) *Config {
	config, err := LoadConfig(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return config
}
