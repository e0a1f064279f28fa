package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type PaymentConfig struct {
	Env          string `yaml:"env" env-default:"local"`
	HTTPServer   `yaml:"http_server"`
	PaymentDB    `yaml:"payment_db"`
	LogConfig    `yaml:"log_config"`
	KafkaService `yaml:"kafka-service"`
	OracleAPI    `yaml:"oracle-api"`
	RatesAPI     `yaml:"rates-api"`
	Redis        `yaml:"redis"`
	Verification `yaml:"verification"`
}

type HTTPServer struct {
	Host string `yaml:"host" env-default:"0.0.0.0"`
	Port string `yaml:"port" env-default:"8080"`
}

type PaymentDB struct {
	Dsn            string `yaml:"dsn" env:"PAYMENT_DB_DSN"`
	MigrationsPath string `yaml:"migrations_path"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env-default:"info"`
	LogFormat string `yaml:"log_format" env-default:"json"`
}

type KafkaService struct {
	Host  string `yaml:"host"`
	Port  string `yaml:"port"`
	Topic string `yaml:"topic" env-default:"payment-events"`
}

type OracleAPI struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key" env:"ORACLE_API_KEY"`
	Timeout time.Duration `yaml:"timeout" env-default:"10s"`
}

type RatesAPI struct {
	BaseURL   string        `yaml:"base_url"`
	CacheTTL  time.Duration `yaml:"cache_ttl" env-default:"5m"`
	WarmCoins []string      `yaml:"warm_coins"`
}

type Redis struct {
	Addr     string `yaml:"addr" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env-default:"0"`
}

type Verification struct {
	Interval         time.Duration `yaml:"interval" env-default:"15s"`
	RecordTimeout    time.Duration `yaml:"record_timeout" env-default:"10s"`
	MinConfirmations int           `yaml:"min_confirmations" env-default:"1"`
	AmountTolerance  float64       `yaml:"amount_tolerance" env-default:"0.005"`
}

func MustLoad() *PaymentConfig {
	configPath := os.Getenv("PAYMENT_CONFIG_PATH")
	if configPath == "" {
		log.Fatalf("PAYMENT_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	var cfg PaymentConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
