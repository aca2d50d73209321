// @title           LectureLens API
// @version         1.0
// @description     Asynchronous lecture ingestion: uploads are classified, extracted, summarized into study packets, and made chattable.
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

	"github.com/lecturelens/lecturelens/internal/chat"
	"github.com/lecturelens/lecturelens/internal/chat/embedding/googleEmbedding"
	"github.com/lecturelens/lecturelens/internal/chat/vectorDB/qdrantDB"
	"github.com/lecturelens/lecturelens/internal/config"
	"github.com/lecturelens/lecturelens/internal/data/store"
	jobmodel "github.com/lecturelens/lecturelens/internal/domain/jobModel"
	"github.com/lecturelens/lecturelens/internal/handlers"
	"github.com/lecturelens/lecturelens/internal/job"
	"github.com/lecturelens/lecturelens/internal/pipeline"
	"github.com/lecturelens/lecturelens/internal/pipeline/media"
	"github.com/lecturelens/lecturelens/internal/server"
	"github.com/lecturelens/lecturelens/internal/summarize"
	"github.com/lecturelens/lecturelens/internal/summarize/gemini"
	"github.com/lecturelens/lecturelens/internal/summarize/groq"
	"github.com/lecturelens/lecturelens/internal/worker"
	"github.com/lecturelens/lecturelens/pkg/logger_i"
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

	//init job service and stores
	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
		JobStore:          store.GetRedisJobStore(serviceContext),
		MessageStore:      store.GetRedisMessageStore(serviceContext),
		LibraryStore:      store.GetRedisLibraryStore(serviceContext),
	}
	logger.Info("Starting job service")

	if serviceConfig.JobStore == nil || serviceConfig.MessageStore == nil || serviceConfig.LibraryStore == nil {
		logger.Error("Redis stores are offline")
		serviceConfig.JobStore = store.InitInMemoryJobStore()
		serviceConfig.MessageStore = store.InitMessageStore()
		serviceConfig.LibraryStore = store.InitInMemoryLibraryStore()
	}
	service := job.InitJobService(serviceConfig)

	//ingestion pipeline clients
	transcriber := media.NewTranscriber(config.GroqBaseURL, config.GroqAPIKey, config.GroqWhisperModel)
	visionClient := media.NewVisionClient(config.GroqBaseURL, config.GroqAPIKey, config.GroqVisionModel)
	summaryProvider := buildSummaryProvider(serviceContext, logger)

	orchestrator := pipeline.NewOrchestrator(transcriber, visionClient, summaryProvider)
	runTracker := pipeline.NewRunTracker()

	//lecture chat stack, optional - ingestion still works without it
	var chatService chat.Service
	vectorDB := qdrantDB.GetQdrantClient(serviceContext)
	embeddingService := googleEmbedding.GetGoogleEmbeddingClient(serviceContext, config.GoogleEmbeddingModel, config.GoogleAPIKey)

	if vectorDB == nil || embeddingService == nil {
		logger.Error("Chat retrieval services failed to initialize, lecture chat disabled")
		logger.Debug("Available services : ", "VectorDB", vectorDB != nil, "EmbeddingService", embeddingService != nil)
	} else {
		chatService = chat.NewService(vectorDB, summaryProvider, embeddingService)
	}

	handlers.InitJobHandler(service, chatService)

	//init worker pool
	worker.InitServices(service, orchestrator, chatService, runTracker)
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

func buildSummaryProvider(ctx context.Context, logger *logger_i.Logger) summarize.Provider {
	if config.SummaryProvider == "gemini" {
		if provider := gemini.GetGeminiClient(ctx, config.GeminiModelName, config.GoogleAPIKey); provider != nil {
			logger.Info("Using Gemini summary provider")
			return provider
		}
		logger.Error("Gemini provider unavailable, falling back to Groq")
	}
	return groq.NewClient(config.GroqBaseURL, config.GroqAPIKey, config.GroqSummaryModel)
}
