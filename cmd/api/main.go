// @title           Research Paper Critique API
// @version         1.0
// @description     This API handles asynchronous research paper critique
// @termsOfService  http://swagger.io/terms/

// @contact.name    me lol
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/sharvik/CritiqueAPI/internal/config"
	"github.com/sharvik/CritiqueAPI/internal/critique"
	"github.com/sharvik/CritiqueAPI/internal/critique/analyzer"
	"github.com/sharvik/CritiqueAPI/internal/critique/analyzer/gemini"
	"github.com/sharvik/CritiqueAPI/internal/critique/analyzer/openai"
	"github.com/sharvik/CritiqueAPI/internal/critique/cache/qdrantCache"
	"github.com/sharvik/CritiqueAPI/internal/critique/embedding/googleEmbedding"
	"github.com/sharvik/CritiqueAPI/internal/critique/extract"
	"github.com/sharvik/CritiqueAPI/internal/data/store"
	jobmodel "github.com/sharvik/CritiqueAPI/internal/domain/jobModel"
	"github.com/sharvik/CritiqueAPI/internal/handlers"
	"github.com/sharvik/CritiqueAPI/internal/job"
	"github.com/sharvik/CritiqueAPI/internal/server"
	"github.com/sharvik/CritiqueAPI/internal/worker"
	"github.com/sharvik/CritiqueAPI/pkg/logger_i"
)

var (
	listenAddr        string
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	//init buffered job channel
	jobChannel := make(chan jobmodel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//init job service and job store
	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
	}
	logger.Info("Starting job service")

	if redisJobStore := store.GetRedisJobStore(serviceContext); redisJobStore != nil {
		serviceConfig.JobStore = redisJobStore
	} else {
		logger.Error("Redis store is offline")
		serviceConfig.JobStore = store.InitInMemoryJobStore()
	}
	service := job.InitJobService(serviceConfig)

	//model provider - gemini unless told otherwise
	var generator analyzer.TextGenerator
	if config.LLMProvider == "openai" {
		generator = openai.GetOpenAIClient(config.OpenAIModelName, config.OpenAIAPIKey)
	} else {
		generator = gemini.GetGeminiClient(serviceContext, config.GeminiModelName, config.GoogleAPIKey)
	}
	if generator == nil {
		logger.Error("Model provider failed to initialize. Shutting down.", "provider", config.LLMProvider)
		return
	}

	//cache is best effort - papers just get re-analyzed without it
	resultCache := qdrantCache.GetQdrantCache(serviceContext)
	embeddingService := googleEmbedding.GetGoogleEmbeddingClient(serviceContext, config.GoogleEmbeddingModel, config.GoogleAPIKey)
	if resultCache == nil || embeddingService == nil {
		logger.Warn("Result cache unavailable - every paper will be analyzed from scratch",
			"cache", resultCache != nil, "embedder", embeddingService != nil)
	}

	critiqueService := critique.NewService(
		extract.NewFileExtractor(),
		analyzer.NewModelAnalyzer(generator),
		resultCache,
		embeddingService,
	)

	handlers.InitJobHandler(service)

	//init worker pool
	worker.InitServices(service, critiqueService)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}
