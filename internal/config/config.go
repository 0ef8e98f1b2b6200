package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App struct {
		ENV string
	}

	Log struct {
		Level     string
		Format    string
		Component string
		Source    bool
	}

	DB struct {
		DSN      string
		Host     string
		Port     string
		User     string
		Password string
		Name     string
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	GRPC struct {
		Host string
		Port string
	}

	Metrics struct {
		Addr string
	}

	Matching struct {
		Policy      string
		Probability float64
	}

	Reco struct {
		CacheTTL time.Duration
		Limit    int
	}
}

// New builds the config from the environment. A .env file in the working
// directory is loaded first when present; real env vars take precedence.
func New() *Config {
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.App.ENV = getEnvDefault("APP_ENV", "development")

	// Logger
	cfg.Log.Level = getEnvDefault("LOG_LEVEL", "info")
	cfg.Log.Format = getEnvDefault("LOG_FORMAT", "text")
	cfg.Log.Component = getEnvDefault("LOG_COMPONENT", "gym_buddy")
	cfg.Log.Source = isTruthy(os.Getenv("LOG_SOURCE"))

	// Database
	cfg.DB.DSN = os.Getenv("MYSQL_DSN")
	if cfg.DB.DSN == "" {
		cfg.DB.Host = getEnvDefault("DB_HOST", "localhost")
		cfg.DB.Port = getEnvDefault("DB_PORT", "3306")
		cfg.DB.User = getEnvDefault("DB_USER", "root")
		cfg.DB.Password = getEnvDefault("DB_PASSWORD", "root")
		cfg.DB.Name = getEnvDefault("DB_NAME", "gym_buddy")

		cfg.DB.DSN = fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
			cfg.DB.User, cfg.DB.Password, cfg.DB.Host, cfg.DB.Port, cfg.DB.Name,
		)
	}

	// Redis
	cfg.Redis.Addr = getEnvDefault("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnvDefault("REDIS_PASSWORD", "")
	if dbInt, err := strconv.Atoi(getEnvDefault("REDIS_DB", "0")); err == nil {
		cfg.Redis.DB = dbInt
	}

	// gRPC
	cfg.GRPC.Host = getEnvDefault("GRPC_HOST", "127.0.0.1")
	cfg.GRPC.Port = getEnvDefault("GRPC_PORT", "50051")

	// Prometheus
	cfg.Metrics.Addr = getEnvDefault("METRICS_ADDR", "127.0.0.1:9090")

	// Matching policy
	cfg.Matching.Policy = strings.ToLower(getEnvDefault("MATCH_POLICY", "mutual"))
	cfg.Matching.Probability = 0.25
	if p, err := strconv.ParseFloat(getEnvDefault("MATCH_PROBABILITY", "0.25"), 64); err == nil {
		cfg.Matching.Probability = p
	}

	// Recommendations
	cfg.Reco.CacheTTL = 10 * time.Minute
	if d, err := time.ParseDuration(getEnvDefault("RECO_CACHE_TTL", "10m")); err == nil {
		cfg.Reco.CacheTTL = d
	}
	cfg.Reco.Limit = 20
	if n, err := strconv.Atoi(getEnvDefault("RECO_LIMIT", "20")); err == nil && n > 0 {
		cfg.Reco.Limit = n
	}

	return cfg
}

func getEnvDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}
