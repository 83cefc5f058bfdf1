package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"fertilitycare/internal/logger"
)

// AppConfig holds all application configuration
type AppConfig struct {
	Server   ServerConfig
	Database DatabaseConfig
	LLM      LLMConfig
	Auth     AuthConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// LLMConfig holds model provider configuration
type LLMConfig struct {
	Provider         string
	GeminiAPIKey     string
	GeminiModel      string
	OpenRouterAPIKey string
	OpenRouterModel  string
	Temperature      float64
	TopP             float64
	TopK             int
	MaxOutputTokens  int
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTSecret       []byte
	TokenExpiration time.Duration
}

// LoadConfig loads and validates application configuration from environment
func LoadConfig() (*AppConfig, error) {
	config := &AppConfig{}

	config.Server = ServerConfig{
		Port: getEnvOrDefault("SERVER_PORT", "8080"),
	}

	config.Database = DatabaseConfig{
		Host:     getEnvOrDefault("DB_HOST", "postgres"),
		Port:     getEnvOrDefault("DB_PORT", "5432"),
		User:     getEnvOrDefault("DB_USER", "postgres"),
		Password: getEnvOrDefault("DB_PASSWORD", "postgres"),
		Name:     getEnvOrDefault("DB_NAME", "fertilitycare"),
		SSLMode:  getEnvOrDefault("DB_SSLMODE", "disable"),
	}

	config.LLM = LLMConfig{
		Provider:         getEnvOrDefault("LLM_PROVIDER", "gemini"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiModel:      getEnvOrDefault("GEMINI_MODEL", "gemini-1.5-flash"),
		OpenRouterAPIKey: os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterModel:  getEnvOrDefault("OPENROUTER_MODEL", "google/gemini-flash-1.5"),
		Temperature:      getEnvAsFloat("LLM_TEMPERATURE", 0.7),
		TopP:             getEnvAsFloat("LLM_TOP_P", 0.95),
		TopK:             getEnvAsInt("LLM_TOP_K", 40),
		MaxOutputTokens:  getEnvAsInt("LLM_MAX_OUTPUT_TOKENS", 1024),
	}
	if config.LLM.GeminiAPIKey == "" && config.LLM.OpenRouterAPIKey == "" {
		logger.Log.Warn("No LLM API key configured (GEMINI_API_KEY / OPENROUTER_API_KEY)")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable must be set")
	}
	if len(jwtSecret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters (current length: %d)", len(jwtSecret))
	}

	config.Auth = AuthConfig{
		JWTSecret:       []byte(jwtSecret),
		TokenExpiration: getEnvAsDuration("JWT_TOKEN_EXPIRATION", 24*time.Hour),
	}

	return config, nil
}

// GetDSN builds the Postgres connection string
func (d DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		logger.Log.WithField("key", key).Warn("Invalid float value in environment, using default")
		return defaultValue
	}
	return parsed
}

func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		logger.Log.WithField("key", key).Warn("Invalid integer value in environment, using default")
		return defaultValue
	}
	return parsed
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		logger.Log.WithField("key", key).Warn("Invalid duration value in environment, using default")
		return defaultValue
	}
	return parsed
}
