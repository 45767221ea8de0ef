package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	HTTPPort string
	NatsURL  string

	WorkerCount         int
	SettlementDelay     time.Duration
	SettlementTimeout   time.Duration
	WorkerMaxAttempts   int
	RetryInitialBackoff time.Duration
	RetryMaxBackoff     time.Duration
}

func ProcessEnvironmentVariables() (*Config, error) {
	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		PostgresAddress:  "localhost",
		PostgresPort:     "5433",
		PostgresDB:       "postgres",
		PostgresUsername: "postgres",
		PostgresPassword: "testpassword",

		HTTPPort: "9446",
		NatsURL:  "nats://localhost:4222",

		WorkerCount:         4,
		SettlementDelay:     30 * time.Second,
		SettlementTimeout:   45 * time.Second,
		WorkerMaxAttempts:   4,
		RetryInitialBackoff: time.Minute,
		RetryMaxBackoff:     5 * time.Minute,
	}

	envPostgresAddress := os.Getenv("POSTGRES_ADDRESS")
	envPostgresPort := os.Getenv("POSTGRES_PORT")
	envPostgresDB := os.Getenv("POSTGRES_DB")
	envPostgresUsername := os.Getenv("POSTGRES_USERNAME")
	envPostgresPassword := os.Getenv("POSTGRES_PASSWORD")

	if len(envPostgresAddress) != 0 {
		env.PostgresAddress = envPostgresAddress
	}

	if len(envPostgresPort) != 0 {
		env.PostgresPort = envPostgresPort
	}

	if len(envPostgresDB) != 0 {
		env.PostgresDB = envPostgresDB
	}

	if len(envPostgresUsername) != 0 {
		env.PostgresUsername = envPostgresUsername
	}

	if len(envPostgresPassword) != 0 {
		env.PostgresPassword = envPostgresPassword
	}

	if envHTTPPort := os.Getenv("HTTP_PORT"); len(envHTTPPort) != 0 {
		env.HTTPPort = envHTTPPort
	}

	if envNatsURL := os.Getenv("NATS_URL"); len(envNatsURL) != 0 {
		env.NatsURL = envNatsURL
	}

	var err error
	if env.WorkerCount, err = intFromEnv("WORKER_COUNT", env.WorkerCount); err != nil {
		return nil, err
	}
	if env.WorkerMaxAttempts, err = intFromEnv("WORKER_MAX_ATTEMPTS", env.WorkerMaxAttempts); err != nil {
		return nil, err
	}
	if env.SettlementDelay, err = durationFromEnv("SETTLEMENT_DELAY", env.SettlementDelay); err != nil {
		return nil, err
	}
	if env.SettlementTimeout, err = durationFromEnv("SETTLEMENT_TIMEOUT", env.SettlementTimeout); err != nil {
		return nil, err
	}
	if env.RetryInitialBackoff, err = durationFromEnv("RETRY_INITIAL_BACKOFF", env.RetryInitialBackoff); err != nil {
		return nil, err
	}
	if env.RetryMaxBackoff, err = durationFromEnv("RETRY_MAX_BACKOFF", env.RetryMaxBackoff); err != nil {
		return nil, err
	}

	return &env, nil
}

func intFromEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if len(v) == 0 {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
	}
	return parsed, nil
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if len(v) == 0 {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
	}
	return parsed, nil
}
