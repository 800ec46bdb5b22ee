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

	//set to true only for local development - the middleware screams about it
	NoAuthBypass = true

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//chunking tunables
	//chunk_size is clamped into [MinChunkSize, MaxChunkSize];
	//overlap is clamped to MaxOverlapRatio of the effective chunk size
	DefaultChunkSize     = 4000
	MaxChunkSize         = 8000
	MinChunkSize         = 500
	DefaultChunkOverlap  = 200
	MaxOverlapRatio      = 0.10
	MinChunkLength       = 200 //chunks trimmed below this are merged into a neighboring chunk
	BoundarySearchWindow = 200 //how far the forced splitter looks back for a sentence end

	//per-chunk analysis calls dispatched at once - keeps the model backend happy
	MaxConcurrentChunkCalls = 3

	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 10 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//job requests buffer limit
	BufferLimit = 100

	//llm
	GeminiModelName = "gemini-2.5-flash-lite-preview-09-2025"
	OpenAIModelName = "gpt-4o-mini"
	ModelContext    = "You are an experienced peer reviewer of academic research papers. Be precise and critical. Answer only in the requested format."

	//embeddings + semantic result cache
	GoogleEmbeddingModel                = "gemini-embedding-001"
	EmbeddingOutputDimensionality int32 = 1536
	CritiqueCacheCollection             = "critique-cache"
	CacheSimilarityCutoff               = 0.97

	//vectorDB
	QdrantHost             = "localhost"
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
	RedisJobStore = 0

	//redis timeouts
	RedisJobStoreTTL = 24 * time.Hour
)

// secrets and provider selection come from the environment
var (
	GoogleAPIKey  = os.Getenv("GOOGLE_API_KEY")
	OpenAIAPIKey  = os.Getenv("OPENAI_API_KEY")
	LLMProvider   = os.Getenv("LLM_PROVIDER") //"gemini" (default) or "openai"
	AuthToken     = os.Getenv("AUTH_TOKEN")
	RedisPassword = os.Getenv("REDIS_PASSWORD")
)
