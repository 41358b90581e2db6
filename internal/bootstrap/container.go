package bootstrap

import (
	"context"
	"log"

	"conversation-assistant-be/internal/config"
	"conversation-assistant-be/internal/controller"
	"conversation-assistant-be/internal/handler"
	"conversation-assistant-be/internal/pkg/logger"
	"conversation-assistant-be/internal/repository/contract"
	"conversation-assistant-be/internal/repository/implementation"
	"conversation-assistant-be/internal/service"
	"conversation-assistant-be/internal/vectorstore/pgstore"
	"conversation-assistant-be/internal/websocket"
	"conversation-assistant-be/pkg/contextstore"
	"conversation-assistant-be/pkg/embedding"
	"conversation-assistant-be/pkg/llm/factory"
	"conversation-assistant-be/pkg/transcribe"
	"conversation-assistant-be/pkg/transcribe/whisper"
	"conversation-assistant-be/pkg/vectorstore"
	"conversation-assistant-be/pkg/vectorstore/hnsw"

	pktNats "conversation-assistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SessionController controller.ISessionController
	TopicController   controller.ITopicController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	SessionWsHandler *handler.SessionWsHandler
	WebSocketHub     *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		// nomic-embed-text produces 768-dimensional vectors
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
			768,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		openAIEmbedder, err := embedding.NewOpenAIProvider(cfg.Keys.OpenAI, cfg.Ai.EmbeddingModel)
		if err != nil {
			log.Fatalf("[FATAL] Failed to initialize Embedding Provider: %v", err)
		}
		embeddingProvider = openAIEmbedder
		log.Printf("[INFO] Using Embedding Provider: OPENAI (%s)", cfg.Ai.EmbeddingModel)
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.OpenAI,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	var transcriber transcribe.Provider
	whisperProvider, err := whisper.NewWhisperProvider(cfg.Keys.OpenAI, "")
	if err != nil {
		log.Printf("[WARN] Whisper transcription unavailable: %v", err)
	} else {
		transcriber = whisperProvider
	}

	// 4. Vector Store
	var index vectorstore.Store
	var knowledgeRepo contract.KnowledgeRecordRepository
	if cfg.Ai.VectorStore == "memory" || db == nil {
		index = hnsw.NewMemoryStore(embeddingProvider.Dimension())
		log.Printf("[INFO] Using Vector Store: MEMORY (dim %d)", embeddingProvider.Dimension())
	} else {
		// Open bootstraps the extension/table/index on first use and
		// rejects embedding providers that don't match the column.
		pgIndex, err := pgstore.Open(db, embeddingProvider.Dimension())
		if err != nil {
			log.Fatalf("[FATAL] Failed to initialize pgvector store: %v", err)
		}
		index = pgIndex
		knowledgeRepo = implementation.NewKnowledgeRecordRepository(db)
		log.Printf("[INFO] Using Vector Store: PGVECTOR")
	}

	ctxStore := contextstore.New(
		embeddingProvider,
		index,
		contextstore.WithChunkMaxWords(cfg.Assistant.ChunkMaxWords),
	)

	// 5. Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/sessions.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 6. Services
	publisherService := service.NewPublisherService(cfg.Keys.IngestTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.IngestTopic,
		ctxStore,
	)

	sessionService := service.NewSessionService(
		ctxStore,
		llmProvider,
		transcriber,
		wsHub,
		natsPub,
		sysLogger,
		cfg.Assistant,
	)
	knowledgeService := service.NewKnowledgeService(
		publisherService,
		sessionService,
		ctxStore,
		knowledgeRepo,
		natsPub,
		sysLogger,
		cfg.Assistant,
	)

	// 7. Handlers & Controllers
	wsHandler := handler.NewSessionWsHandler(sessionService, wsHub, wsLogger)

	return &Container{
		SessionController: controller.NewSessionController(sessionService),
		TopicController:   controller.NewTopicController(knowledgeService),
		SessionWsHandler:  wsHandler,
		WebSocketHub:      wsHub,

		ConsumerService: consumerService,
	}
}
