package handler

import (
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/park285/exam-gen-server-go/internal/auth"
	"github.com/park285/exam-gen-server-go/internal/config"
	"github.com/park285/exam-gen-server-go/internal/middleware"
	"github.com/park285/exam-gen-server-go/internal/usage"
)

// NewRouter 는 HTTP 라우터를 구성한다.
func NewRouter(
	cfg *config.Config,
	logger *slog.Logger,
	authService *auth.Service,
	usageStore usage.Store,
	generateHandler *GenerateHandler,
	authHandler *AuthHandler,
	usageHandler *UsageHandler,
) *gin.Engine {
	setGinMode(cfg.Logging.Level)

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		gin.Recovery(),
		gzip.Gzip(gzip.DefaultCompression),
		middleware.RateLimit(cfg),
		middleware.AuthGate(authService),
	)

	RegisterHealthRoutes(router, cfg, usageStore)
	generateHandler.RegisterRoutes(router)
	authHandler.RegisterRoutes(router)
	usageHandler.RegisterRoutes(router)
	registerStaticRoutes(router, cfg)

	return router
}

// registerStaticRoutes 는 에디터/로그인 정적 페이지를 제공한다.
func registerStaticRoutes(router *gin.Engine, cfg *config.Config) {
	staticDir := strings.TrimSpace(cfg.HTTP.StaticDir)
	if staticDir == "" {
		return
	}

	router.GET("/", func(c *gin.Context) {
		c.File(filepath.Join(staticDir, "index.html"))
	})
	router.GET("/login", func(c *gin.Context) {
		c.File(filepath.Join(staticDir, "login.html"))
	})
	router.StaticFS("/static", http.Dir(filepath.Join(staticDir, "static")))
}

func setGinMode(level string) {
	if strings.EqualFold(strings.TrimSpace(level), "debug") {
		gin.SetMode(gin.DebugMode)
		return
	}
	gin.SetMode(gin.ReleaseMode)
}
