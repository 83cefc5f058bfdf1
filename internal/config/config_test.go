package config

import (
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret-at-least-32-characters-long")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVER_PORT", "")
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("LLM_TEMPERATURE", "")
	t.Setenv("JWT_TOKEN_EXPIRATION", "")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.Server.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", config.Server.Port)
	}
	if config.LLM.Provider != "gemini" {
		t.Errorf("Expected default provider gemini, got %s", config.LLM.Provider)
	}
	if config.LLM.GeminiModel != "gemini-1.5-flash" {
		t.Errorf("Expected default model gemini-1.5-flash, got %s", config.LLM.GeminiModel)
	}
	if config.LLM.Temperature != 0.7 {
		t.Errorf("Expected default temperature 0.7, got %v", config.LLM.Temperature)
	}
	if config.LLM.TopK != 40 || config.LLM.MaxOutputTokens != 1024 {
		t.Errorf("Unexpected sampling defaults: topK=%d maxTokens=%d", config.LLM.TopK, config.LLM.MaxOutputTokens)
	}
	if config.Auth.TokenExpiration != 24*time.Hour {
		t.Errorf("Expected default expiration 24h, got %v", config.Auth.TokenExpiration)
	}
}

func TestLoadConfigMissingJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := LoadConfig(); err == nil {
		t.Error("Expected error when JWT_SECRET is unset")
	}
}

func TestLoadConfigShortJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "too-short")

	_, err := LoadConfig()
	if err == nil || !strings.Contains(err.Error(), "at least 32") {
		t.Errorf("Expected short-secret error, got %v", err)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LLM_TEMPERATURE", "0.2")
	t.Setenv("LLM_TOP_K", "10")
	t.Setenv("JWT_TOKEN_EXPIRATION", "1h")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.Server.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", config.Server.Port)
	}
	if config.LLM.Temperature != 0.2 {
		t.Errorf("Expected temperature 0.2, got %v", config.LLM.Temperature)
	}
	if config.LLM.TopK != 10 {
		t.Errorf("Expected topK 10, got %d", config.LLM.TopK)
	}
	if config.Auth.TokenExpiration != time.Hour {
		t.Errorf("Expected expiration 1h, got %v", config.Auth.TokenExpiration)
	}
}

func TestLoadConfigBadNumericFallsBack(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LLM_TEMPERATURE", "not-a-number")
	t.Setenv("LLM_TOP_K", "forty")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.LLM.Temperature != 0.7 {
		t.Errorf("Expected fallback temperature 0.7, got %v", config.LLM.Temperature)
	}
	if config.LLM.TopK != 40 {
		t.Errorf("Expected fallback topK 40, got %d", config.LLM.TopK)
	}
}

func TestGetDSN(t *testing.T) {
	dbConfig := DatabaseConfig{
		Host:     "localhost",
		Port:     "5432",
		User:     "app",
		Password: "pw",
		Name:     "fertilitycare",
		SSLMode:  "disable",
	}
	want := "host=localhost port=5432 user=app password=pw dbname=fertilitycare sslmode=disable"
	if got := dbConfig.GetDSN(); got != want {
		t.Errorf("GetDSN = %q, expected %q", got, want)
	}
}
