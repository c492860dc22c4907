package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string

	// QuestionBankURL is the base URL of the MCQ question bank and grading API
	QuestionBankURL string
	// SkillMapSource is a file path or http(s) URL of the skill lookup table
	SkillMapSource string
	HTTPTimeout    time.Duration

	RedisURL         string
	QuestionCacheTTL time.Duration

	DatabaseURL string

	// SessionMaxAge bounds how long an abandoned session is kept in memory
	SessionMaxAge        time.Duration
	SessionSweepInterval time.Duration

	Events EventConfig
}

// LoadConfig reads .env when present and then the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	return &Config{
		Port:                 getEnv("PORT", "8080"),
		Environment:          getEnv("ENVIRONMENT", "development"),
		QuestionBankURL:      getEnv("QUESTION_BANK_URL", "http://localhost:5000"),
		SkillMapSource:       getEnv("SKILL_MAP_SOURCE", "excel_data/skill_code_map.csv"),
		HTTPTimeout:          getDuration("HTTP_TIMEOUT", 15*time.Second),
		RedisURL:             os.Getenv("REDIS_URL"),
		QuestionCacheTTL:     getDuration("QUESTION_CACHE_TTL", 10*time.Minute),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		SessionMaxAge:        getDuration("SESSION_MAX_AGE", 2*time.Hour),
		SessionSweepInterval: getDuration("SESSION_SWEEP_INTERVAL", 5*time.Minute),
		Events: EventConfig{
			Enabled:      getBool("EVENTS_ENABLED", false),
			Publisher:    getEnv("EVENTS_PUBLISHER", "kafka"),
			KafkaBrokers: getEnv("KAFKA_BROKERS", "localhost:9092"),
			SessionTopic: getEnv("SESSION_EVENTS_TOPIC", "skill-test-sessions"),
		},
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

func getBool(key string, defaultValue bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
