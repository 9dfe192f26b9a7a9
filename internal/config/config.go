package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Ai       AIConfig
	Pipeline PipelineConfig
	Events   EventsConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	PipelineLogPath    string
	CorsAllowedOrigins string
	NatsURL            string
	MaxUploadBytes     int
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	LLMProvider   string // "openai" or "ollama"
	LLMModel      string // e.g. "gpt-3.5-turbo", "llama3"
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OllamaBaseURL string
}

type PipelineConfig struct {
	MinRequestIntervalMs int // floor between LLM dispatches
	WindowSeconds        int // rolling rate-limit window
	WindowLimit          int // max LLM requests per window
}

type EventsConfig struct {
	RetentionHours int    // acknowledged events older than this are purged
	PurgeSchedule  string // cron spec for the background purge job
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			PipelineLogPath:    getEnv("PIPELINE_LOG_PATH", "logs/pipeline.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			MaxUploadBytes:     getEnvAsInt("MAX_UPLOAD_BYTES", 10*1024*1024),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "openai"),
			LLMModel:      getEnv("LLM_MODEL", "gpt-3.5-turbo"),
			OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		},
		Pipeline: PipelineConfig{
			MinRequestIntervalMs: getEnvAsInt("LLM_MIN_REQUEST_INTERVAL_MS", 1000),
			WindowSeconds:        getEnvAsInt("LLM_WINDOW_SECONDS", 60),
			WindowLimit:          getEnvAsInt("LLM_WINDOW_LIMIT", 20),
		},
		Events: EventsConfig{
			RetentionHours: getEnvAsInt("EVENT_RETENTION_HOURS", 1),
			PurgeSchedule:  getEnv("EVENT_PURGE_SCHEDULE", "@hourly"),
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
