package bootstrap

import (
	"log"
	"time"

	"ai-scoping-be/internal/config"
	"ai-scoping-be/internal/constant"
	"ai-scoping-be/internal/controller"
	"ai-scoping-be/internal/pkg/logger"
	"ai-scoping-be/internal/repository/implementation"
	"ai-scoping-be/internal/repository/unitofwork"
	"ai-scoping-be/internal/service"
	"ai-scoping-be/pkg/blob"
	"ai-scoping-be/pkg/diagram"
	"ai-scoping-be/pkg/embedding"
	"ai-scoping-be/pkg/llm/ollama"
	"ai-scoping-be/pkg/scope/costing"
	scopediagram "ai-scoping-be/pkg/scope/diagram"
	"ai-scoping-be/pkg/scope/prompt"
	"ai-scoping-be/pkg/scope/retrieval"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ProjectController   controller.IProjectController
	ScopeController     controller.IScopeController
	QuestionController  controller.IQuestionController
	KnowledgeController controller.IKnowledgeController
	CompanyController   controller.ICompanyController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	blobStore, err := blob.NewFilesystemStore(cfg.Blob.RootDir, cfg.Blob.BaseURL)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize blob store: %v", err)
	}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	embeddingProvider := embedding.NewOllamaProvider(
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.EmbeddingModel,
	)
	llmProvider := ollama.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.LLMModel)
	log.Printf("[INFO] Using Ollama at %s (llm=%s, embedding=%s)", cfg.Ai.OllamaBaseURL, cfg.Ai.LLMModel, cfg.Ai.EmbeddingModel)

	// 4. Scope Engine Components
	chunkRepo := implementation.NewKnowledgeChunkRepository(db)
	retriever := retrieval.NewRetriever(
		embeddingProvider,
		chunkRepo,
		cfg.Scope.RetrievalTopK,
		cfg.Scope.RetrievalThreshold,
		sysLogger,
	)
	promptBuilder := prompt.NewBuilder(
		cfg.Scope.ContextWindowTokens,
		cfg.Scope.CompletionReserve,
		cfg.Scope.RFPTokenCap,
	)
	renderer := diagram.NewGraphvizRenderer(time.Duration(cfg.Scope.DiagramRenderTimeout) * time.Second)
	diagramGen := scopediagram.NewGenerator(llmProvider, renderer, sysLogger)
	rateResolver := costing.NewResolver(
		service.NewRateSource(uowFactory),
		constant.DefaultRoleRates,
		cfg.Scope.DefaultMonthlyRate,
		cfg.Scope.DefaultCompanyName,
	)

	// 5. Services
	publisherService := service.NewPublisherService(pubSub, cfg.App.IngestTopic)
	consumerService := service.NewConsumerService(pubSub, cfg.App.IngestTopic, uowFactory, blobStore, embeddingProvider, sysLogger)

	projectService := service.NewProjectService(uowFactory, blobStore, sysLogger)
	knowledgeService := service.NewKnowledgeService(uowFactory, blobStore, publisherService, sysLogger)
	companyService := service.NewCompanyService(uowFactory, sysLogger)
	questionService := service.NewQuestionService(uowFactory, blobStore, llmProvider, retriever, promptBuilder, sysLogger)
	scopeService := service.NewScopeService(
		uowFactory,
		blobStore,
		llmProvider,
		retriever,
		promptBuilder,
		diagramGen,
		rateResolver,
		cfg.Scope,
		sysLogger,
	)

	// 6. Controllers
	return &Container{
		ProjectController:   controller.NewProjectController(projectService),
		ScopeController:     controller.NewScopeController(scopeService),
		QuestionController:  controller.NewQuestionController(questionService),
		KnowledgeController: controller.NewKnowledgeController(knowledgeService),
		CompanyController:   controller.NewCompanyController(companyService),
		ConsumerService:     consumerService,
		Logger:              sysLogger,
	}
}
