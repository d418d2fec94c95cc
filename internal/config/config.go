package config

import (
	"os"
)

type Config struct {
	DatabasePath string
	StatePath    string
	Port         string
	Environment  string

	AllowedOrigins string

	MailgunDomain      string
	MailgunAPIKey      string
	MailgunSenderEmail string
	MailgunSenderName  string

	AppBaseURL string

	LogLevel string
}

func Load() *Config {
	cfg := &Config{
		DatabasePath:       getEnv("DATABASE_PATH", "carbontrack.db"),
		StatePath:          getEnv("STATE_PATH", "carbontrack_state.json"),
		Port:               getEnv("PORT", "8080"),
		Environment:        getEnv("ENVIRONMENT", "production"),
		AllowedOrigins:     getEnv("ALLOWED_ORIGINS", "*"),
		MailgunDomain:      getEnv("MAILGUN_DOMAIN", ""),
		MailgunAPIKey:      getEnv("MAILGUN_API_KEY", ""),
		MailgunSenderEmail: getEnv("MAILGUN_SENDER_EMAIL", "noreply@carbontrack.app"),
		MailgunSenderName:  getEnv("MAILGUN_SENDER_NAME", "CarbonTrack"),
		AppBaseURL:         getEnv("APP_BASE_URL", "http://localhost:8080"),
		LogLevel:           getEnv("LOG_LEVEL", "INFO"),
	}
	return cfg
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
