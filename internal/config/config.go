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
	Blob     BlobConfig
	Ai       AIConfig
	Scope    ScopeConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	OtlpEndpoint       string
	IngestTopic        string
}

type DatabaseConfig struct {
	Connection string
}

type BlobConfig struct {
	RootDir string
	BaseURL string
}

type AIConfig struct {
	OllamaBaseURL  string
	LLMModel       string
	EmbeddingModel string
	VectorDim      int
}

// ScopeConfig carries the scope-engine knobs. The guard thresholds are product
// policy, not domain law, so they stay configurable.
type ScopeConfig struct {
	ContextWindowTokens  int
	CompletionReserve    int
	RFPTokenCap          int
	RetrievalTopK        int
	RetrievalThreshold   float64
	MinResponseChars     int
	ContentGuardRatio    float64
	RegressionShrinkRate float64
	DefaultCompanyName   string
	DefaultMonthlyRate   float64
	FallbackOwnerRole    string
	DiagramRenderTimeout int // seconds
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			OtlpEndpoint:       getEnv("OTLP_ENDPOINT", ""),
			IngestTopic:        getEnv("INGEST_KNOWLEDGE_TOPIC_NAME", "INGEST_KNOWLEDGE_DOC"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Blob: BlobConfig{
			RootDir: getEnv("BLOB_ROOT_DIR", "./uploads"),
			BaseURL: getEnv("BLOB_BASE_URL", "http://localhost:3000/uploads"),
		},
		Ai: AIConfig{
			OllamaBaseURL:  getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			LLMModel:       getEnv("LLM_MODEL", "llama3"),
			EmbeddingModel: getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			VectorDim:      getEnvAsInt("VECTOR_DIM", 768),
		},
		Scope: ScopeConfig{
			ContextWindowTokens:  getEnvAsInt("SCOPE_CONTEXT_WINDOW_TOKENS", 128000),
			CompletionReserve:    getEnvAsInt("SCOPE_COMPLETION_RESERVE_TOKENS", 4000),
			RFPTokenCap:          getEnvAsInt("SCOPE_RFP_TOKEN_CAP", 5000),
			RetrievalTopK:        getEnvAsInt("SCOPE_RETRIEVAL_TOP_K", 5),
			RetrievalThreshold:   getEnvAsFloat("SCOPE_RETRIEVAL_THRESHOLD", 0.3),
			MinResponseChars:     getEnvAsInt("SCOPE_MIN_RESPONSE_CHARS", 50),
			ContentGuardRatio:    getEnvAsFloat("SCOPE_CONTENT_GUARD_RATIO", 0.7),
			RegressionShrinkRate: getEnvAsFloat("SCOPE_REGRESSION_SHRINK_RATE", 0.7),
			DefaultCompanyName:   getEnv("SCOPE_DEFAULT_COMPANY", "Sigmoid"),
			DefaultMonthlyRate:   getEnvAsFloat("SCOPE_DEFAULT_MONTHLY_RATE", 2000),
			FallbackOwnerRole:    getEnv("SCOPE_FALLBACK_OWNER_ROLE", "Project Manager"),
			DiagramRenderTimeout: getEnvAsInt("SCOPE_DIAGRAM_TIMEOUT_SECONDS", 15),
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
