package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURI     string
	Port            string
	PollInterval    time.Duration
	CatchUpWindow   time.Duration
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	VAPIDSubscriber string
	TelegramToken   string
	AIAPIKey        string
	AIBaseURL       string
	AIModel         string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env file is optional in production
	}

	return &Config{
		DatabaseURI:     os.Getenv("DATABASE_URI"),
		Port:            getEnvOrDefault("PORT", "8080"),
		PollInterval:    getEnvDuration("POLL_INTERVAL", 30*time.Second),
		CatchUpWindow:   getEnvDuration("CATCH_UP_WINDOW", 2*time.Minute),
		VAPIDPublicKey:  os.Getenv("VAPID_PUBLIC_KEY"),
		VAPIDPrivateKey: os.Getenv("VAPID_PRIVATE_KEY"),
		VAPIDSubscriber: getEnvOrDefault("VAPID_SUBSCRIBER", "mailto:support@example.com"),
		TelegramToken:   os.Getenv("TELEGRAM_TOKEN"),
		AIAPIKey:        os.Getenv("AI_API_KEY"),
		AIBaseURL:       getEnvOrDefault("AI_BASE_URL", "https://api.openai.com/v1"),
		AIModel:         getEnvOrDefault("AI_MODEL", "gpt-4o-mini"),
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
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
