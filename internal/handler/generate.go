package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/park285/exam-gen-server-go/internal/config"
	examdomain "github.com/park285/exam-gen-server-go/internal/domain/exam"
	"github.com/park285/exam-gen-server-go/internal/guard"
	"github.com/park285/exam-gen-server-go/internal/handler/shared"
	"github.com/park285/exam-gen-server-go/internal/httperror"
	usecaseexam "github.com/park285/exam-gen-server-go/internal/usecase/exam"
)

// ExamService 는 문제 생성 유스케이스 인터페이스다.
type ExamService interface {
	Generate(ctx context.Context, req usecaseexam.GenerateRequest) (examdomain.GenerateResult, error)
	GenerateBatch(ctx context.Context, passage string, items []usecaseexam.BatchItem) ([]examdomain.GenerateResult, error)
}

// GenerateHandler 는 문제 생성 API 핸들러다.
type GenerateHandler struct {
	cfg      *config.Config
	service  ExamService
	guard    guard.Guard
	validate *validator.Validate
	logger   *slog.Logger
}

// NewGenerateHandler 는 문제 생성 핸들러를 생성한다.
func NewGenerateHandler(
	cfg *config.Config,
	service ExamService,
	guard guard.Guard,
	logger *slog.Logger,
) *GenerateHandler {
	return &GenerateHandler{
		cfg:      cfg,
		service:  service,
		guard:    guard,
		validate: validator.New(),
		logger:   logger,
	}
}

// RegisterRoutes 는 문제 생성 라우트를 등록한다.
func (h *GenerateHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/api/generate", h.handleGenerate)
}

// handleGenerate 는 단일/배치 생성 요청을 처리한다.
// 본문에 items 배열이 있으면 배치, 없으면 단일 요청으로 해석한다.
func (h *GenerateHandler) handleGenerate(c *gin.Context) {
	if !h.cfg.OpenRouter.HasAPIKey() {
		writeError(c, httperror.NewConfigError("OpenRouter API 키가 설정되지 않았습니다."))
		return
	}

	var raw map[string]any
	if !bindJSON(c, &raw) {
		return
	}

	if _, ok := raw["items"]; ok {
		h.handleBatch(c, raw)
		return
	}
	h.handleSingle(c, raw)
}

func (h *GenerateHandler) handleSingle(c *gin.Context, raw map[string]any) {
	var body GenerateRequestBody
	if err := shared.Decode(raw, &body); err != nil {
		writeError(c, httperror.NewInvalidInput("잘못된 요청 형식입니다."))
		return
	}
	if err := h.validate.Struct(body); err != nil {
		writeError(c, httperror.NewValidationError(err))
		return
	}

	questionType, ok := examdomain.ParseQuestionType(body.QuestionType)
	if !ok {
		writeError(c, httperror.NewInvalidInput(fmt.Sprintf("지원하지 않는 문제 유형입니다: %s", body.QuestionType)))
		return
	}
	difficulty, ok := examdomain.ParseDifficulty(body.Difficulty)
	if !ok {
		writeError(c, httperror.NewInvalidInput(fmt.Sprintf("지원하지 않는 난이도입니다: %s", body.Difficulty)))
		return
	}
	count := body.Count
	if count == 0 {
		count = 1
	}

	if err := h.guard.EnsureSafe(body.Passage); err != nil {
		h.logError(err)
		writeError(c, err)
		return
	}

	result, err := h.service.Generate(c.Request.Context(), usecaseexam.GenerateRequest{
		Passage:      body.Passage,
		QuestionType: questionType,
		Count:        count,
		Difficulty:   difficulty,
	})
	if err != nil {
		h.logError(err)
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *GenerateHandler) handleBatch(c *gin.Context, raw map[string]any) {
	var body BatchRequestBody
	if err := shared.Decode(raw, &body); err != nil {
		writeError(c, httperror.NewInvalidInput("잘못된 요청 형식입니다."))
		return
	}
	if err := h.validate.Struct(body); err != nil {
		writeError(c, httperror.NewValidationError(err))
		return
	}

	items := make([]usecaseexam.BatchItem, 0, len(body.Items))
	meta := make([]BatchItemResponse, 0, len(body.Items))
	for _, item := range body.Items {
		questionType, ok := examdomain.ParseQuestionType(item.QuestionType)
		if !ok {
			writeError(c, httperror.NewInvalidInput(fmt.Sprintf("지원하지 않는 문제 유형입니다: %s", item.QuestionType)))
			return
		}
		difficulty, ok := examdomain.ParseDifficulty(item.Difficulty)
		if !ok {
			writeError(c, httperror.NewInvalidInput(fmt.Sprintf("지원하지 않는 난이도입니다: %s", item.Difficulty)))
			return
		}
		count := item.Count
		if count == 0 {
			count = 1
		}
		items = append(items, usecaseexam.BatchItem{
			QuestionType: questionType,
			Count:        count,
			Difficulty:   difficulty,
		})
		meta = append(meta, BatchItemResponse{
			QuestionType: string(questionType),
			Count:        count,
			Difficulty:   string(difficulty),
			Questions:    []examdomain.Question{},
		})
	}

	if err := h.guard.EnsureSafe(body.Passage); err != nil {
		h.logError(err)
		writeError(c, err)
		return
	}

	results, err := h.service.GenerateBatch(c.Request.Context(), body.Passage, items)
	if err != nil {
		h.logError(err)
		writeError(c, err)
		return
	}

	response := BatchResponse{Items: meta}
	for i := range results {
		if i >= len(response.Items) {
			break
		}
		response.Items[i].Questions = results[i].Questions
		if response.MarkedPassage == "" && results[i].MarkedPassage != "" {
			response.MarkedPassage = results[i].MarkedPassage
		}
	}

	c.JSON(http.StatusOK, response)
}

func (h *GenerateHandler) logError(err error) {
	shared.LogError(h.logger, "generate", err)
}
