package bootstrap

import (
	"log"
	"time"

	"gorm.io/gorm"

	"admissions-chatbot-be/internal/config"
	"admissions-chatbot-be/internal/controller"
	"admissions-chatbot-be/internal/pkg/logger"
	"admissions-chatbot-be/internal/repository/implementation"
	"admissions-chatbot-be/internal/repository/unitofwork"
	"admissions-chatbot-be/internal/service"
	"admissions-chatbot-be/pkg/cache"
	"admissions-chatbot-be/pkg/catalog"
	"admissions-chatbot-be/pkg/chat/extract"
	"admissions-chatbot-be/pkg/chat/intent"
	"admissions-chatbot-be/pkg/chat/synthesize"
	"admissions-chatbot-be/pkg/embedding"
	"admissions-chatbot-be/pkg/events"
	llmfactory "admissions-chatbot-be/pkg/llm/factory"
	natspub "admissions-chatbot-be/pkg/nats"
	"admissions-chatbot-be/pkg/rag"
	"admissions-chatbot-be/pkg/rerank"
	"admissions-chatbot-be/pkg/rerank/jina"
)

// Container wires every dependency once at startup.
type Container struct {
	Logger  logger.ILogger
	ChatLog logger.ILogger

	ChatService    service.IChatService
	HistoryService service.IHistoryService
	IndexerService service.IIndexerService

	ChatController    controller.IChatController
	HistoryController controller.IHistoryController
	AdminController   controller.IAdminController
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	appLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	chatLogger := logger.NewIsolatedLogger(cfg.App.ChatLogFilePath)

	// Oracles
	llmProvider, err := llmfactory.NewProvider(cfg)
	if err != nil {
		log.Panicf("Unable to init LLM provider: %v", err)
	}
	embedder, err := embedding.NewProvider(
		cfg.Ai.EmbeddingProvider, cfg.Ai.EmbeddingModel,
		cfg.Ai.OllamaBaseUrl, cfg.Ai.GeminiApiKey,
	)
	if err != nil {
		log.Panicf("Unable to init embedding provider: %v", err)
	}
	var reranker rerank.Provider
	if cfg.Ai.JinaApiKey != "" {
		reranker = jina.NewJinaProvider(cfg.Ai.JinaApiKey, cfg.Ai.RerankModel)
	} else {
		appLogger.Warn("bootstrap", "JINA_API_KEY not set, rerank disabled", nil)
	}

	// Catalog with cache-aside upstream
	redisCache := cache.NewRedisCache(
		cfg.App.RedisURL, "admissions",
		time.Duration(cfg.Chatbot.CacheTTLSeconds)*time.Second,
		appLogger,
	)
	catalogClient := catalog.NewClient(cfg.Chatbot.SchoolApiUrl, redisCache)
	catalogCache := catalog.NewCache(catalogClient, appLogger)

	// Retrieval engine over the pgvector store
	chunkStore := implementation.NewKnowledgeChunkRepository(db)
	engine := rag.NewEngine(cfg.Chatbot.KnowledgeBasePath, chunkStore, embedder, reranker, appLogger)

	// Events
	publisher := natspub.NewPublisher(cfg.App.NatsURL, "CHAT_EVENTS",
		[]string{events.SubjectTurnCompleted, events.SubjectSessionDeleted}, appLogger)

	// Repositories
	uowFactory := unitofwork.NewRepositoryFactory(db)

	// Services
	indexerService := service.NewIndexerService(engine, appLogger)
	chatService := service.NewChatService(
		uowFactory,
		extract.NewExtractor(llmProvider, appLogger),
		intent.NewClassifier(llmProvider, appLogger),
		synthesize.NewSynthesizer(llmProvider, appLogger),
		catalogCache,
		engine,
		llmProvider,
		publisher,
		cfg.Chatbot.RequireSubject,
		appLogger,
		chatLogger,
	)
	historyService := service.NewHistoryService(uowFactory, publisher, appLogger)

	return &Container{
		Logger:            appLogger,
		ChatLog:           chatLogger,
		ChatService:       chatService,
		HistoryService:    historyService,
		IndexerService:    indexerService,
		ChatController:    controller.NewChatController(chatService),
		HistoryController: controller.NewHistoryController(historyService),
		AdminController:   controller.NewAdminController(indexerService),
	}
}
