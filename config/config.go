// Package config provides configuration for the twin service.
package config

import (
	"os"
	"strconv"
	"time"
)

// DefaultTerminalPhrase is the canonical completion marker the interview
// prompt instructs the model to emit. Detection is a case-insensitive
// substring check, see twin.IsTerminalSignal.
const DefaultTerminalPhrase = "your digital version is now created"

// Config holds the twin service configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Database
	DatabaseURL string

	// Completion gateway settings
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	CompletionModel string
	GatewayTimeout  time.Duration

	// Interview settings
	TerminalPhrase      string
	InterviewMaxTokens  int
	ExtractionMaxTokens int
	CompileMaxTokens    int

	// Persona defaults
	PersonaMaxTokens   int
	PersonaTemperature float64

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		HTTPPort:            getEnvInt("HTTP_PORT", 8080),
		DatabaseURL:         getEnv("DATABASE_URL", "file:twinforge.db?cache=shared&mode=rwc"),
		OpenAIAPIKey:        getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:       getEnv("OPENAI_BASE_URL", ""),
		CompletionModel:     getEnv("COMPLETION_MODEL", "gpt-3.5-turbo"),
		GatewayTimeout:      time.Duration(getEnvInt("GATEWAY_TIMEOUT_MS", 30000)) * time.Millisecond,
		TerminalPhrase:      getEnv("TERMINAL_PHRASE", DefaultTerminalPhrase),
		InterviewMaxTokens:  getEnvInt("INTERVIEW_MAX_TOKENS", 150),
		ExtractionMaxTokens: getEnvInt("EXTRACTION_MAX_TOKENS", 500),
		CompileMaxTokens:    getEnvInt("COMPILE_MAX_TOKENS", 500),
		PersonaMaxTokens:    getEnvInt("PERSONA_MAX_TOKENS", 150),
		PersonaTemperature:  getEnvFloat("PERSONA_TEMPERATURE", 0.7),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
