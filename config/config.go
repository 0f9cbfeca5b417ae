package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config collects every runtime setting the service reads from the
// environment. Defaults target local development.
type Config struct {
	ServerPort      int
	ShutdownTimeout time.Duration

	Postgres PostgresConfig
	Valkey   ValkeyConfig
	Kafka    KafkaConfig
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		p.User, p.Password, p.Host, p.Port, p.Database)
}

type ValkeyConfig struct {
	Enabled  bool
	Address  string
	Password string
	UseTLS   bool
}

type KafkaConfig struct {
	Enabled bool
	Broker  string
	Topic   string
}

func Get() Config {
	return Config{
		ServerPort:      envInt("PORT", 8080),
		ShutdownTimeout: time.Duration(envInt("SHUTDOWN_TIMEOUT_SECONDS", 15)) * time.Second,
		Postgres: PostgresConfig{
			Host:     envString("DB_HOST", "localhost"),
			Port:     envInt("DB_PORT", 5432),
			User:     envString("DB_USER", "polarity"),
			Password: envString("DB_PASSWORD", "localdev"),
			Database: envString("DB_NAME", "polarity"),
		},
		Valkey: ValkeyConfig{
			Enabled:  envBool("VALKEY_ENABLED", false),
			Address:  envString("VALKEY_INIT_ADDRESS", "localhost:6379"),
			Password: envString("VALKEY_PASSWORD", ""),
			UseTLS:   envBool("VALKEY_TLS", false),
		},
		Kafka: KafkaConfig{
			Enabled: envBool("KAFKA_ENABLED", false),
			Broker:  envString("KAFKA_BROKER", "localhost:29092"),
			Topic:   envString("KAFKA_RESULTS_TOPIC", "analysis-results"),
		},
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v == "true" || v == "1"
}
