package config

import (
	"log/slog"
	"os"
	"time"
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//ingestion pipeline
	MinExtractedTextLength = 50               //below this the pipeline fails with insufficient-text
	MaxTranscriptionBytes  = 25 * 1024 * 1024 //Groq Whisper request body ceiling
	MaxUploadBytes         = 32 << 20

	//summarization
	SummaryInputMaxChars = 3500 //free tier TPM budget, longer input is truncated
	ChatContextMaxChars  = 20000
	SummaryMaxTokens     = 4096
	ChatMaxTokens        = 512
	VisionMaxTokens      = 2048

	SummaryTemperature float64 = 0.3
	ChatTemperature    float64 = 0.5
	VisionTemperature  float64 = 0.1 //favor literal extraction over paraphrase

	//groq (OpenAI compatible surface)
	GroqBaseURL      = "https://api.groq.com/openai/v1"
	GroqSummaryModel = "llama-3.1-8b-instant"
	GroqWhisperModel = "whisper-large-v3"
	GroqVisionModel  = "meta-llama/llama-4-scout-17b-16e-instruct"

	//gemini fallback provider
	GeminiModelName      = "gemini-2.5-flash-lite-preview-09-2025"
	GoogleEmbeddingModel = "gemini-embedding-001"

	//lecture chat retrieval
	EmbeddingOutputDimensionality int32 = 1536
	LectureCollectionName               = "lecture-chunks"
	ChatCacheSimilarityCutoff           = 0.97

	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 10 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//per-stage remote call budget
	RemoteCallTimeout = 60 * time.Second

	ServerListenAddr = ":3000"

	//job requests buffer limit
	BufferLimit = 100

	//qdrant
	QdrantHost             = ""
	QdrantGrpcPort         = 6334
	QdrantUseTLS           = false
	QdrantPoolSize         = 1
	QdrantKeepAliveTimeout = 30 * time.Second

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	//redis has 16 DB we can use
	RedisJobStore     = 0
	RedisMessageStore = 1
	RedisLibraryStore = 2

	RedisJobStoreTTL     = 24 * time.Hour
	RedisMessageStoreTTL = 24 * time.Hour
	RedisLibraryStoreTTL = 0 //library records do not expire
)

// secrets and deploy-specific knobs come from the environment
var (
	AuthToken       = os.Getenv("LECTURELENS_AUTH_TOKEN")
	NoAuthBypass    = os.Getenv("LECTURELENS_NO_AUTH") == "true"
	GroqAPIKey      = os.Getenv("GROQ_API_KEY")
	GoogleAPIKey    = os.Getenv("GOOGLE_API_KEY")
	RedisPassword   = os.Getenv("REDIS_PASSWORD")
	SummaryProvider = envOrDefault("SUMMARY_PROVIDER", "groq")
)

func envOrDefault(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
