package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPPort        string
	RedisAddr       string
	RedisPassword   string
	KafkaBrokers    []string
	PaymentBaseURL  string
	OrderBaseURL    string
	DirectoryURL    string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	SessionTTL      time.Duration
	ServiceName     string
}

func Load() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		KafkaBrokers:    splitCSV(getEnv("KAFKA_BROKERS", "")),
		PaymentBaseURL:  getEnv("PAYMENT_GATEWAY_URL", "http://localhost:9091"),
		OrderBaseURL:    getEnv("ORDER_BACKEND_URL", "http://localhost:9092/api"),
		DirectoryURL:    getEnv("ADDRESS_DIRECTORY_URL", "http://localhost:9092/api"),
		RequestTimeout:  getDuration("REQUEST_TIMEOUT_SECONDS", 30) * time.Second,
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT_SECONDS", 10) * time.Second,
		SessionTTL:      getDuration("SESSION_TTL_MINUTES", 120) * time.Minute,
		ServiceName:     getEnv("SERVICE_NAME", "shop"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return time.Duration(n)
		}
	}
	return time.Duration(defaultValue)
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
