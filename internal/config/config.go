package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Auth       AuthConfig
	Remote     RemoteConfig
	Submission SubmissionConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	JwtSecret string
}

type RemoteConfig struct {
	SubmitURL string
	SyncURL   string
	Timeout   time.Duration
}

// SubmissionConfig carries the deployment flags that gate pipeline stages.
type SubmissionConfig struct {
	SyncAfterForm           bool
	AutoPurge               bool
	SkipFixturesAfterSubmit bool
	SessionTTLDays          int
	LockTTL                 time.Duration
	VolatilityTTL           time.Duration
	SubmittedTopicName      string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JwtSecret: getEnv("JWT_SECRET", ""),
		},
		Remote: RemoteConfig{
			SubmitURL: getEnv("REMOTE_SUBMIT_URL", "http://localhost:8000/receiver/submit"),
			SyncURL:   getEnv("REMOTE_SYNC_URL", "http://localhost:8000/phone/restore"),
			Timeout:   getEnvAsDuration("REMOTE_TIMEOUT", 60*time.Second),
		},
		Submission: SubmissionConfig{
			SyncAfterForm:           getEnvAsBool("SYNC_AFTER_FORM_ENABLED", false),
			AutoPurge:               getEnvAsBool("AUTO_PURGE_ENABLED", false),
			SkipFixturesAfterSubmit: getEnvAsBool("SKIP_FIXTURES_AFTER_SUBMIT", false),
			SessionTTLDays:          getEnvAsInt("SESSION_TTL_DAYS", 7),
			LockTTL:                 getEnvAsDuration("USER_LOCK_TTL", 5*time.Minute),
			VolatilityTTL:           getEnvAsDuration("VOLATILITY_TTL", 48*time.Hour),
			SubmittedTopicName:      getEnv("FORM_SUBMITTED_TOPIC_NAME", "FORM_SUBMITTED"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
