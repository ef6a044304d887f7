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
	Chatbot  ChatbotConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	ChatLogFilePath    string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JwtSecret          string
	TracingEnabled     bool
	OtlpEndpoint       string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	LlmProvider       string // "ollama" or "gemini"
	LlmModel          string
	EmbeddingProvider string // "gemini" or "ollama"
	EmbeddingModel    string
	OllamaBaseUrl     string
	GeminiApiKey      string
	JinaApiKey        string
	RerankModel       string
}

type ChatbotConfig struct {
	SchoolApiUrl      string
	KnowledgeBasePath string
	RequireSubject    bool
	CacheTTLSeconds   int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			ChatLogFilePath:    getEnv("CHAT_LOG_FILE_PATH", "logs/llm_chat.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
			JwtSecret:          getEnv("JWT_SECRET", ""),
			TracingEnabled:     getEnvAsBool("TRACING_ENABLED", false),
			OtlpEndpoint:       getEnv("OTLP_ENDPOINT", "localhost:4318"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			LlmProvider:       getEnv("LLM_PROVIDER", "gemini"),
			LlmModel:          getEnv("LLM_MODEL", "gemini-2.0-flash"),
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "text-embedding-004"),
			OllamaBaseUrl:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			GeminiApiKey:      getEnv("GEMINI_API_KEY", ""),
			JinaApiKey:        getEnv("JINA_API_KEY", ""),
			RerankModel:       getEnv("RERANK_MODEL", ""),
		},
		Chatbot: ChatbotConfig{
			SchoolApiUrl:      getEnv("SCHOOL_API_URL", ""),
			KnowledgeBasePath: getEnv("KNOWLEDGE_BASE_PATH", "data/tuyensinh.txt"),
			RequireSubject:    getEnvAsBool("REQUIRE_SUBJECT", false),
			CacheTTLSeconds:   getEnvAsInt("CACHE_TTL_SECONDS", 3600),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
