package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	SMTP      SMTPConfig
	Ai        AIConfig
	Voice     VoiceConfig
	Upload    UploadConfig
	Interview InterviewConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	WsLogFilePath      string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	JwtSecret                string
	AccessTokenExpireMinutes int
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type AIConfig struct {
	Mode              string // "live" or "mock"
	LLMProvider       string // "openai" or "ollama"
	LLMModel          string
	OpenAIAPIKey      string
	OpenAIBaseURL     string
	OllamaBaseURL     string
	Timeout           time.Duration
	Retries           int
	HistoryWindow     int
	FallbackResponses []string
	FallbackPolicy    string // "random" or "sequential"
}

type VoiceConfig struct {
	Provider      string // "openai", "mock" or "none"
	Model         string
	CacheDir      string
	PublicPrefix  string
	DefaultGender string
	MaxAge        time.Duration
	SweepInterval time.Duration
}

type UploadConfig struct {
	Dir         string
	MaxFileSize int
}

type InterviewConfig struct {
	Timeout time.Duration
	Grace   time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	cfg := &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:8000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			WsLogFilePath:      getEnv("WS_LOG_FILE_PATH", "logs/interview_ws.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JwtSecret:                getEnv("JWT_SECRET", "default_secret"),
			AccessTokenExpireMinutes: getEnvAsInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "AlignAI"),
		},
		Ai: AIConfig{
			Mode:              getEnv("AI_MODE", ""),
			LLMProvider:       getEnv("LLM_PROVIDER", "openai"),
			LLMModel:          getEnv("LLM_MODEL", "gpt-4"),
			OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", ""),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			Timeout:           getEnvAsDuration("AI_TIMEOUT", 20*time.Second),
			Retries:           getEnvAsInt("AI_RETRIES", 1),
			HistoryWindow:     getEnvAsInt("AI_HISTORY_WINDOW", 10),
			FallbackResponses: getEnvAsList("AI_FALLBACK_RESPONSES", "|"),
			FallbackPolicy:    getEnv("AI_FALLBACK_POLICY", "random"),
		},
		Voice: VoiceConfig{
			Provider:      getEnv("VOICE_PROVIDER", ""),
			Model:         getEnv("VOICE_MODEL", "tts-1"),
			CacheDir:      getEnv("VOICE_CACHE_DIR", "./uploads/voice"),
			PublicPrefix:  getEnv("VOICE_PUBLIC_PREFIX", "/api/voice"),
			DefaultGender: getEnv("DEFAULT_VOICE_GENDER", "female"),
			MaxAge:        getEnvAsDuration("VOICE_MAX_AGE", 24*time.Hour),
			SweepInterval: getEnvAsDuration("VOICE_SWEEP_INTERVAL", time.Hour),
		},
		Upload: UploadConfig{
			Dir:         getEnv("UPLOAD_DIR", "./uploads"),
			MaxFileSize: getEnvAsInt("MAX_FILE_SIZE", 10*1024*1024),
		},
		Interview: InterviewConfig{
			Timeout: time.Duration(getEnvAsInt("INTERVIEW_TIMEOUT", 3600)) * time.Second,
			Grace:   getEnvAsDuration("INTERVIEW_GRACE", 2*time.Minute),
		},
	}

	// No key means nothing to talk to; live mode must be asked for explicitly.
	if cfg.Ai.Mode == "" {
		cfg.Ai.Mode = "mock"
		if cfg.Ai.LLMProvider == "ollama" || cfg.Ai.OpenAIAPIKey != "" {
			cfg.Ai.Mode = "live"
		}
	}

	// mock references point at files nobody wrote, so it is never the default
	if cfg.Voice.Provider == "" {
		cfg.Voice.Provider = "none"
		if cfg.Ai.OpenAIAPIKey != "" {
			cfg.Voice.Provider = "openai"
		}
	}

	return cfg
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

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsList(key, sep string) []string {
	strValue := getEnv(key, "")
	if strValue == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(strValue, sep) {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
