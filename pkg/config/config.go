package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	QA      QAConfig
	Logger  LoggerConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// BackendConfig controls the optional generative backend. When Enabled is
// false the service is purely rule-based.
type BackendConfig struct {
	Enabled  bool
	Provider string // "ollama" (raw generate endpoint) or "openai" (OpenAI-compatible)
	URL      string
	Model    string
	Token    string
	Timeout  time.Duration
}

type QAConfig struct {
	// Rule-based answers below this confidence are retried against the
	// generative backend when one is enabled.
	ConfidenceThreshold float64
}

type LoggerConfig struct {
	Level string
}

func Load() (*Config, error) {
	// Try to load .env from the current directory or the project root;
	// plain environment variables work without one.
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	backendTimeout, _ := strconv.Atoi(getEnv("BACKEND_TIMEOUT_SECONDS", "20"))
	threshold, err := strconv.ParseFloat(getEnv("QA_CONFIDENCE_THRESHOLD", "0.6"), 64)
	if err != nil {
		threshold = 0.6
	}

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Backend: BackendConfig{
			Enabled:  getEnv("USE_BACKEND", "false") == "true",
			Provider: getEnv("BACKEND_PROVIDER", "ollama"),
			URL:      getEnv("BACKEND_URL", "http://localhost:11434/api/generate"),
			Model:    getEnv("BACKEND_MODEL", "llama2"),
			Token:    getEnv("BACKEND_TOKEN", ""),
			Timeout:  time.Duration(backendTimeout) * time.Second,
		},
		QA: QAConfig{
			ConfidenceThreshold: threshold,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
