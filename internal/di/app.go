package di

import (
	"log/slog"
	"net/http"

	"github.com/park285/exam-gen-server-go/internal/config"
	"github.com/park285/exam-gen-server-go/internal/usage"
)

// App 는 애플리케이션 구성 요소를 묶는다.
type App struct {
	Server          *http.Server
	Logger          *slog.Logger
	Config          *config.Config
	UsageRepository *usage.Repository
	UsageRecorder   *usage.Recorder
}

// NewApp 는 App 인스턴스를 생성한다.
func NewApp(
	server *http.Server,
	logger *slog.Logger,
	cfg *config.Config,
	usageRepository *usage.Repository,
	usageRecorder *usage.Recorder,
) *App {
	return &App{
		Server:          server,
		Logger:          logger,
		Config:          cfg,
		UsageRepository: usageRepository,
		UsageRecorder:   usageRecorder,
	}
}

// Close 는 앱 리소스를 정리한다.
func (a *App) Close() {
	if a.UsageRecorder != nil {
		a.UsageRecorder.Close()
	}
	if a.UsageRepository != nil {
		a.UsageRepository.Close()
	}
}
