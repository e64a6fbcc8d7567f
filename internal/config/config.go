package config

import (
	"fmt"
	"os"
)

type Config struct {
	// Google Cloud
	GCPProjectID  string
	GCSBucketName string

	// Gemini
	GeminiAPIKey string
	GeminiModel  string

	// Auth
	FirebaseProjectID string
	AuthDevSecret     string

	// Database
	DatabaseURL string

	// Submission defaults
	ProblemID string

	// Server
	Port        string
	Environment string
}

func Load() (*Config, error) {
	cfg := &Config{
		GCPProjectID:  getEnv("GCP_PROJECT_ID", ""),
		GCSBucketName: getEnv("GCS_BUCKET_NAME", ""),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		FirebaseProjectID: getEnv("FIREBASE_PROJECT_ID", ""),
		AuthDevSecret:     getEnv("AUTH_DEV_SECRET", ""),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		ProblemID: getEnv("PROBLEM_ID_MVP", "problem_1_algebra"),

		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.GCSBucketName == "" {
		return fmt.Errorf("GCS_BUCKET_NAME is required")
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.FirebaseProjectID == "" && c.AuthDevSecret == "" {
		return fmt.Errorf("either FIREBASE_PROJECT_ID or AUTH_DEV_SECRET is required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
