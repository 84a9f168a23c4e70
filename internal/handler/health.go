package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/park285/exam-gen-server-go/internal/config"
	"github.com/park285/exam-gen-server-go/internal/health"
	"github.com/park285/exam-gen-server-go/internal/usage"
)

// ModelConfigResponse 는 모델 설정 응답이다.
type ModelConfigResponse struct {
	Model            string  `json:"model"`
	BaseURL          string  `json:"base_url"`
	Temperature      float64 `json:"temperature"`
	MaxOutputTokens  int     `json:"max_output_tokens"`
	MarkingMaxTokens int     `json:"marking_max_tokens"`
	TimeoutSeconds   int     `json:"timeout_seconds"`
	HTTP2Enabled     bool    `json:"http2_enabled"`
	TransportMode    string  `json:"transport_mode"`
}

// RegisterHealthRoutes 는 상태 확인 라우트를 등록한다.
func RegisterHealthRoutes(router *gin.Engine, cfg *config.Config, store usage.Store) {
	router.GET("/health", func(c *gin.Context) {
		// Liveness: 외부 의존성(DB) 상태로 다운 판정되지 않도록 shallow로 유지한다.
		payload := health.Collect(c.Request.Context(), cfg, store, false)
		c.JSON(http.StatusOK, payload)
	})

	router.GET("/health/ready", func(c *gin.Context) {
		payload := health.Collect(c.Request.Context(), cfg, store, true)
		status := http.StatusOK
		if payload.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, payload)
	})

	// Prometheus 메트릭 (장기 히스토리 분석용)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/health/models", func(c *gin.Context) {
		transportMode := "h1"
		if cfg.HTTP.HTTP2Enabled {
			transportMode = "h2c"
		}

		c.JSON(http.StatusOK, ModelConfigResponse{
			Model:            cfg.OpenRouter.Model,
			BaseURL:          cfg.OpenRouter.BaseURL,
			Temperature:      cfg.OpenRouter.Temperature,
			MaxOutputTokens:  cfg.OpenRouter.MaxOutputTokens,
			MarkingMaxTokens: cfg.OpenRouter.MarkingMaxTokens,
			TimeoutSeconds:   cfg.OpenRouter.TimeoutSeconds,
			HTTP2Enabled:     cfg.HTTP.HTTP2Enabled,
			TransportMode:    transportMode,
		})
	})
}
