package di

import (
	"fmt"

	"github.com/park285/exam-gen-server-go/internal/auth"
	"github.com/park285/exam-gen-server-go/internal/config"
	examdomain "github.com/park285/exam-gen-server-go/internal/domain/exam"
	"github.com/park285/exam-gen-server-go/internal/guard"
	"github.com/park285/exam-gen-server-go/internal/handler"
	"github.com/park285/exam-gen-server-go/internal/metrics"
	"github.com/park285/exam-gen-server-go/internal/openrouter"
	"github.com/park285/exam-gen-server-go/internal/server"
	"github.com/park285/exam-gen-server-go/internal/throttle"
	"github.com/park285/exam-gen-server-go/internal/usage"
	usecaseexam "github.com/park285/exam-gen-server-go/internal/usecase/exam"
)

// InitializeApp 은 애플리케이션 의존성을 초기화하고 App 인스턴스를 반환한다.
func InitializeApp() (*App, error) {
	cfg, err := config.ProvideConfig()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	metricsStore := metrics.NewStore()

	logger, err := ProvideLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	usageRepository := usage.NewRepository(cfg.Database, logger)
	usageRecorder := usage.NewRecorder(cfg.Database, usageRepository, logger)

	var usageStore usage.Store
	if cfg.Database.UsageEnabled {
		usageStore = usageRepository
	}

	client, err := openrouter.NewClient(cfg.OpenRouter, metricsStore, usageRecorder)
	if err != nil {
		return nil, fmt.Errorf("openrouter client: %w", err)
	}

	passageGuard, err := guard.NewGuard(cfg.Guard, logger)
	if err != nil {
		return nil, fmt.Errorf("guard: %w", err)
	}

	prompts, err := examdomain.NewPrompts()
	if err != nil {
		return nil, fmt.Errorf("exam prompts: %w", err)
	}

	limiter := throttle.NewFixedDelay(cfg.Generate.BatchDelay())
	examService := usecaseexam.New(cfg, client, prompts, limiter, logger)
	authService := auth.NewService(cfg.Auth)

	generateHandler := handler.NewGenerateHandler(cfg, examService, passageGuard, logger)
	authHandler := handler.NewAuthHandler(authService, logger)
	usageHandler := handler.NewUsageHandler(cfg, usageStore, metricsStore, logger)

	router := handler.NewRouter(cfg, logger, authService, usageStore, generateHandler, authHandler, usageHandler)
	httpServer := server.NewHTTPServer(cfg, router)

	return NewApp(httpServer, logger, cfg, usageRepository, usageRecorder), nil
}
