package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/park285/exam-gen-server-go/internal/config"
	"github.com/park285/exam-gen-server-go/internal/httperror"
	"github.com/park285/exam-gen-server-go/internal/metrics"
	"github.com/park285/exam-gen-server-go/internal/usage"
)

// DailyUsageResponse 는 일자별 사용량 응답이다.
type DailyUsageResponse struct {
	UsageDate    string `json:"usage_date"`
	InputTokens  int64  `json:"input_tokens"`
	OutputTokens int64  `json:"output_tokens"`
	TotalTokens  int64  `json:"total_tokens"`
	RequestCount int64  `json:"request_count"`
	Model        string `json:"model"`
}

// UsageListResponse 는 사용량 목록 응답이다.
type UsageListResponse struct {
	Usages            []DailyUsageResponse `json:"usages"`
	TotalInputTokens  int64                `json:"total_input_tokens"`
	TotalOutputTokens int64                `json:"total_output_tokens"`
	TotalTokens       int64                `json:"total_tokens"`
	TotalRequestCount int64                `json:"total_request_count"`
	Model             string               `json:"model"`
}

// UsageTotalResponse 는 누적 사용량 응답이다.
type UsageTotalResponse struct {
	InputTokens  int64  `json:"input_tokens"`
	OutputTokens int64  `json:"output_tokens"`
	TotalTokens  int64  `json:"total_tokens"`
	Model        string `json:"model"`
}

// UsageHandler 는 사용량 API 핸들러다.
type UsageHandler struct {
	cfg     *config.Config
	store   usage.Store
	metrics *metrics.Store
	logger  *slog.Logger
}

// NewUsageHandler 는 사용량 핸들러를 생성한다. store 는 사용량 집계가 꺼진 경우 nil일 수 있다.
func NewUsageHandler(cfg *config.Config, store usage.Store, metricsStore *metrics.Store, logger *slog.Logger) *UsageHandler {
	return &UsageHandler{
		cfg:     cfg,
		store:   store,
		metrics: metricsStore,
		logger:  logger,
	}
}

// RegisterRoutes 는 사용량 라우트를 등록한다.
func (h *UsageHandler) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/api/usage")
	group.GET("/daily", h.handleDaily)
	group.GET("/recent", h.handleRecent)
	group.GET("/total", h.handleTotal)
	group.GET("/metrics", h.handleMetrics)
}

func (h *UsageHandler) handleDaily(c *gin.Context) {
	if !h.storeAvailable(c) {
		return
	}

	usageRow, err := h.store.GetDailyUsage(c.Request.Context(), time.Time{})
	if err != nil {
		h.logError(err)
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.buildDailyResponse(usageRow))
}

func (h *UsageHandler) handleRecent(c *gin.Context) {
	if !h.storeAvailable(c) {
		return
	}

	days, ok := parseDays(c, 7)
	if !ok {
		return
	}

	usages, err := h.store.GetRecentUsage(c.Request.Context(), days)
	if err != nil {
		h.logError(err)
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.buildUsageListResponse(usages))
}

func (h *UsageHandler) handleTotal(c *gin.Context) {
	if !h.storeAvailable(c) {
		return
	}

	days, ok := parseDays(c, 30)
	if !ok {
		return
	}

	usageRow, err := h.store.GetTotalUsage(c.Request.Context(), days)
	if err != nil {
		h.logError(err)
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, UsageTotalResponse{
		InputTokens:  usageRow.InputTokens,
		OutputTokens: usageRow.OutputTokens,
		TotalTokens:  usageRow.TotalTokens(),
		Model:        h.cfg.OpenRouter.Model,
	})
}

// handleMetrics 는 프로세스 시작 이후의 인메모리 호출 지표 스냅샷을 반환한다.
func (h *UsageHandler) handleMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"model":   h.cfg.OpenRouter.Model,
		"metrics": h.metrics.Snapshot(),
	})
}

func (h *UsageHandler) storeAvailable(c *gin.Context) bool {
	if h.store == nil {
		writeError(c, httperror.NewConfigError("사용량 집계가 비활성화되어 있습니다."))
		return false
	}
	return true
}

func (h *UsageHandler) buildDailyResponse(usageRow *usage.DailyUsage) DailyUsageResponse {
	model := h.cfg.OpenRouter.Model
	if usageRow == nil {
		return DailyUsageResponse{
			UsageDate:    time.Now().UTC().Format("2006-01-02"),
			InputTokens:  0,
			OutputTokens: 0,
			TotalTokens:  0,
			RequestCount: 0,
			Model:        model,
		}
	}

	return DailyUsageResponse{
		UsageDate:    usageRow.UsageDate.Format("2006-01-02"),
		InputTokens:  usageRow.InputTokens,
		OutputTokens: usageRow.OutputTokens,
		TotalTokens:  usageRow.TotalTokens(),
		RequestCount: usageRow.RequestCount,
		Model:        model,
	}
}

func (h *UsageHandler) buildUsageListResponse(usages []usage.DailyUsage) UsageListResponse {
	model := h.cfg.OpenRouter.Model
	response := UsageListResponse{
		Usages: make([]DailyUsageResponse, 0, len(usages)),
		Model:  model,
	}

	for _, row := range usages {
		response.Usages = append(response.Usages, DailyUsageResponse{
			UsageDate:    row.UsageDate.Format("2006-01-02"),
			InputTokens:  row.InputTokens,
			OutputTokens: row.OutputTokens,
			TotalTokens:  row.TotalTokens(),
			RequestCount: row.RequestCount,
			Model:        model,
		})
		response.TotalInputTokens += row.InputTokens
		response.TotalOutputTokens += row.OutputTokens
		response.TotalTokens += row.TotalTokens()
		response.TotalRequestCount += row.RequestCount
	}

	return response
}

func parseDays(c *gin.Context, defaultDays int) (int, bool) {
	raw := c.Query("days")
	if raw == "" {
		return defaultDays, true
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		writeError(c, httperror.NewInvalidInput("days must be a positive integer"))
		return 0, false
	}
	return parsed, true
}

func (h *UsageHandler) logError(err error) {
	if err == nil {
		return
	}
	h.logger.Warn("usage_request_failed", "err", err)
}
