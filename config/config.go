// File: /config/config.go
package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        string
	DatabaseURL string
	MongoURI    string
	JWTSecret   string
	SiteURL     string

	// Generative text API (OpenAI-compatible)
	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string

	// Marketing automation (Systeme.io)
	SystemeAPIBase string
	SystemeAPIKey  string

	// Email Configuration
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string

	// Admin bootstrap
	OwnerEmail string
}

func Load() *Config {
	smtpPort, _ := strconv.Atoi(getEnv("SMTP_PORT", "2525"))
	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", "user:password@tcp(localhost:3306)/aquaevents?charset=utf8mb4&parseTime=True&loc=Local"),
		MongoURI:    getEnv("MONGODB_URI", ""),
		JWTSecret:   getEnv("JWT_SECRET", "your-secret-key"),
		SiteURL:     getEnv("SITE_URL", "https://aquaevents.club"),

		LLMBaseURL: getEnv("LLM_BASE_URL", "https://api.openai.com/v1"),
		LLMAPIKey:  getEnv("LLM_API_KEY", ""),
		LLMModel:   getEnv("LLM_MODEL", "gpt-4o-mini"),

		SystemeAPIBase: getEnv("SYSTEME_API_BASE", "https://api.systeme.io/api"),
		SystemeAPIKey:  getEnv("SYSTEME_API_KEY", ""),

		// Email settings
		SMTPHost:     getEnv("SMTP_HOST", "sandbox.smtp.mailtrap.io"),
		SMTPPort:     smtpPort,
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		FromEmail:    getEnv("FROM_EMAIL", "noreply@aquaevents.club"),
		FromName:     getEnv("FROM_NAME", "AquaEvents"),

		OwnerEmail: getEnv("OWNER_EMAIL", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
