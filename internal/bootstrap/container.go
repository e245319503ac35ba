package bootstrap

import (
	"context"
	"log"
	"time"

	"alignai-be/internal/config"
	"alignai-be/internal/controller"
	"alignai-be/internal/handler"
	"alignai-be/internal/pkg/logger"
	"alignai-be/internal/pkg/mailer"
	"alignai-be/internal/pkg/serverutils"
	"alignai-be/internal/repository/memory"
	"alignai-be/internal/repository/unitofwork"
	"alignai-be/internal/service"
	"alignai-be/internal/websocket"
	"alignai-be/pkg/interviewer"
	"alignai-be/pkg/llm"
	"alignai-be/pkg/llm/factory"
	pktNats "alignai-be/pkg/nats"
	"alignai-be/pkg/voice"
	voiceOpenAI "alignai-be/pkg/voice/openai"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const serviceName = "AlignAI Interview API"

type Container struct {
	// Controllers
	HealthController    controller.IHealthController
	AuthController      controller.IAuthController
	UserController      controller.IUserController
	InterviewController controller.IInterviewController
	AnalyticsController controller.IAnalyticsController
	AdminController     controller.IAdminController

	// Background services (run by main)
	ConsumerService   service.IConsumerService
	EventAuditService service.IEventAuditService // nil without NATS
	VoiceService      *voice.Service

	// Live interview channel
	InterviewWsHandler *handler.InterviewWsHandler
	WebSocketHub       *websocket.Hub

	Logger logger.ILogger

	closers []func()
}

// NewContainer wires every dependency. ctx bounds the lifetime of live
// interview sessions.
func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config) *Container {
	c := &Container{}

	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	wsLogger := logger.NewIsolatedLogger(cfg.App.WsLogFilePath)
	c.Logger = sysLogger

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.SenderName,
		cfg.App.ClientURL,
	)

	// 2. Event bus
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	c.closers = append(c.closers, func() { pubSub.Close() })

	// 3. Infrastructure
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		var err error
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		}
		natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		} else {
			c.EventAuditService = service.NewEventAuditService(natsSub, sysLogger)
			c.closers = append(c.closers, natsSub.Close)
		}
		c.closers = append(c.closers, natsPub.Close)
	} else {
		log.Println("[INFO] NATS_URL not set, domain events are not published")
	}

	c.WebSocketHub = websocket.NewHub(newRedisClient(cfg.App.RedisURL), wsLogger)

	// 4. Interviewer
	mode, err := interviewer.ParseMode(cfg.Ai.Mode)
	if err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
	var llmProvider llm.LLMProvider
	if mode == interviewer.ModeLive {
		llmProvider, err = factory.NewLLMProvider(factory.Settings{
			Provider:      cfg.Ai.LLMProvider,
			Model:         cfg.Ai.LLMModel,
			OpenAIAPIKey:  cfg.Ai.OpenAIAPIKey,
			OpenAIBaseURL: cfg.Ai.OpenAIBaseURL,
			OllamaBaseURL: cfg.Ai.OllamaBaseURL,
		})
		if err != nil {
			log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
		}
		log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	} else {
		log.Println("[INFO] Interviewer running in mock mode")
	}

	generator, err := interviewer.NewGenerator(interviewer.Config{
		Mode:              mode,
		Timeout:           cfg.Ai.Timeout,
		Retries:           cfg.Ai.Retries,
		HistoryWindow:     cfg.Ai.HistoryWindow,
		FallbackResponses: cfg.Ai.FallbackResponses,
		FallbackPolicy:    interviewer.ParseFallbackPolicy(cfg.Ai.FallbackPolicy),
	}, llmProvider, sysLogger)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize interviewer: %v", err)
	}

	// 5. Voice
	var backend voice.Backend
	if cfg.Voice.Provider == "openai" {
		if cfg.Ai.OpenAIAPIKey == "" {
			log.Println("[WARN] VOICE_PROVIDER=openai without OPENAI_API_KEY, audio disabled")
			cfg.Voice.Provider = "none"
		} else {
			backend = voiceOpenAI.NewBackend(cfg.Ai.OpenAIAPIKey, cfg.Voice.Model, cfg.Ai.OpenAIBaseURL)
		}
	}
	c.VoiceService, err = voice.NewService(voice.Config{
		Provider:     cfg.Voice.Provider,
		CacheDir:     cfg.Voice.CacheDir,
		PublicPrefix: cfg.Voice.PublicPrefix,
		MaxAge:       cfg.Voice.MaxAge,
	}, backend, sysLogger)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize voice service: %v", err)
	}
	defaultProfile := voice.ParseProfile(cfg.Voice.DefaultGender)

	// 6. Services
	publisherService := service.NewPublisherService(service.ResumeTopic, pubSub)
	c.ConsumerService = service.NewConsumerService(pubSub, service.ResumeTopic, uowFactory, sysLogger)

	authService := service.NewAuthService(
		uowFactory,
		emailService,
		natsPub,
		cfg.Auth.JwtSecret,
		time.Duration(cfg.Auth.AccessTokenExpireMinutes)*time.Minute,
		sysLogger,
	)
	userService := service.NewUserService(uowFactory, publisherService, natsPub, service.ResumeStorage{
		Dir:         cfg.Upload.Dir,
		MaxFileSize: int64(cfg.Upload.MaxFileSize),
	}, sysLogger)
	interviewService := service.NewInterviewService(uowFactory, natsPub, emailService, defaultProfile, sysLogger)
	analyticsService := service.NewAnalyticsService(uowFactory)

	liveSessions := memory.NewLiveSessionRepository(cfg.Interview.Timeout + cfg.Interview.Grace)
	adminService := service.NewAdminService(c.WebSocketHub, liveSessions, websocket.AnnouncementMessage, sysLogger)

	// 7. Live channel
	c.InterviewWsHandler = handler.NewInterviewWsHandler(ctx, websocket.Deps{
		Hub:         c.WebSocketHub,
		Store:       interviewService,
		Generator:   generator,
		Synthesizer: c.VoiceService,
		Tracker:     liveSessions,
		Logger:      wsLogger,
		Config: websocket.SessionConfig{
			MaxDuration: cfg.Interview.Timeout,
			Grace:       cfg.Interview.Grace,
		},
	}, cfg.Auth.JwtSecret, defaultProfile, wsLogger)

	// 8. Controllers
	jwt := serverutils.JwtMiddleware(cfg.Auth.JwtSecret)
	c.HealthController = controller.NewHealthController(serviceName)
	c.AuthController = controller.NewAuthController(authService, jwt)
	c.UserController = controller.NewUserController(userService, jwt)
	c.InterviewController = controller.NewInterviewController(interviewService, jwt)
	c.AnalyticsController = controller.NewAnalyticsController(analyticsService, jwt)
	c.AdminController = controller.NewAdminController(adminService, jwt)

	c.closers = append(c.closers, func() { _ = sysLogger.Sync(); _ = wsLogger.Sync() })
	return c
}

// newRedisClient returns nil when no URL is configured or Redis is unreachable;
// the hub then delivers broadcasts to local connections only.
func newRedisClient(url string) *redis.Client {
	if url == "" {
		return nil
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		rdb.Close()
		return nil
	}
	return rdb
}

// Close releases bus connections and flushes the loggers.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
