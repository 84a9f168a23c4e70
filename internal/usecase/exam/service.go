package exam

import (
	"context"
	"log/slog"
	"strings"

	"github.com/park285/exam-gen-server-go/internal/config"
	examdomain "github.com/park285/exam-gen-server-go/internal/domain/exam"
	"github.com/park285/exam-gen-server-go/internal/httperror"
	"github.com/park285/exam-gen-server-go/internal/openrouter"
	"github.com/park285/exam-gen-server-go/internal/throttle"
)

// Service: 문제 생성 비즈니스 로직 구현체입니다.
type Service struct {
	cfg     *config.Config
	client  openrouter.LLM
	prompts *examdomain.Prompts
	limiter throttle.Limiter
	logger  *slog.Logger
}

// New: 문제 생성 Service 인스턴스를 생성합니다.
func New(
	cfg *config.Config,
	client openrouter.LLM,
	prompts *examdomain.Prompts,
	limiter throttle.Limiter,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if limiter == nil {
		limiter = throttle.None{}
	}
	return &Service{
		cfg:     cfg,
		client:  client,
		prompts: prompts,
		limiter: limiter,
		logger:  logger,
	}
}

// GenerateRequest 는 단일 생성 요청이다.
type GenerateRequest struct {
	Passage      string
	QuestionType examdomain.QuestionType
	Count        int
	Difficulty   examdomain.Difficulty
}

// BatchItem 는 배치 생성 항목이다.
type BatchItem struct {
	QuestionType examdomain.QuestionType
	Count        int
	Difficulty   examdomain.Difficulty
}

// Generate 는 지문으로부터 문제를 생성한다.
// 밑줄 문장 유형은 먼저 마킹 선처리를 거치며, 마킹 실패 시 원본 지문으로 조용히 대체한다.
// 설정 오류(API 키 미설정)를 제외한 내부 실패는 상세 로그 후 일반 생성 실패 오류로 수렴된다.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (examdomain.GenerateResult, error) {
	passage := req.Passage
	markedPassage := ""

	if req.QuestionType.NeedsMarking() {
		if marked, ok := s.markPassage(ctx, req.Passage, req.Count); ok {
			markedPassage = marked
			passage = marked
		}
	}

	system, err := s.prompts.GenerateSystem()
	if err != nil {
		return examdomain.GenerateResult{}, s.collapse(err, "generate_prompt_failed", req)
	}
	user, err := s.prompts.GenerateUser(passage, req.QuestionType, req.Count, req.Difficulty)
	if err != nil {
		return examdomain.GenerateResult{}, s.collapse(err, "generate_prompt_failed", req)
	}

	responseText, err := s.client.Chat(ctx, openrouter.Request{
		System:    system,
		User:      user,
		MaxTokens: s.cfg.OpenRouter.MaxOutputTokens,
		Task:      "generate",
	})
	if err != nil {
		return examdomain.GenerateResult{}, s.collapse(err, "generate_llm_failed", req)
	}

	questions, err := examdomain.ParseQuestions(responseText)
	if err != nil {
		s.logger.Error("generate_parse_failed",
			"question_type", req.QuestionType,
			"err", err,
			"raw_response", trimForLog(responseText),
		)
		return examdomain.GenerateResult{}, httperror.NewGenerationFailed()
	}

	result := examdomain.GenerateResult{Questions: questions}
	if markedPassage != "" {
		result.MarkedPassage = markedPassage
	}
	return result, nil
}

// GenerateBatch 는 하나의 지문에 대해 항목들을 엄격히 순차 처리한다.
// 항목 실패는 격리되어 빈 문제 결과로 대체되며, 성공한 항목 뒤에는 속도 제한 대기가 들어간다.
func (s *Service) GenerateBatch(ctx context.Context, passage string, items []BatchItem) ([]examdomain.GenerateResult, error) {
	results := make([]examdomain.GenerateResult, 0, len(items))

	for _, item := range items {
		result, err := s.Generate(ctx, GenerateRequest{
			Passage:      passage,
			QuestionType: item.QuestionType,
			Count:        item.Count,
			Difficulty:   item.Difficulty,
		})
		if err != nil {
			s.logger.Error("batch_item_failed", "question_type", item.QuestionType, "err", err)
			results = append(results, examdomain.GenerateResult{Questions: []examdomain.Question{}})
			continue
		}

		results = append(results, result)

		if err := s.limiter.Wait(ctx); err != nil {
			return results, err
		}
	}

	return results, nil
}

// markPassage 는 밑줄 마킹 선처리를 수행한다. 어떤 실패든 원본 지문 사용으로 대체된다.
func (s *Service) markPassage(ctx context.Context, passage string, count int) (string, bool) {
	system, err := s.prompts.MarkingSystem()
	if err != nil {
		s.logger.Warn("marking_prompt_failed", "err", err)
		return "", false
	}
	user, err := s.prompts.MarkingUser(passage, count)
	if err != nil {
		s.logger.Warn("marking_prompt_failed", "err", err)
		return "", false
	}

	marked, err := s.client.Chat(ctx, openrouter.Request{
		System:    system,
		User:      user,
		MaxTokens: s.cfg.OpenRouter.MarkingMaxTokens,
		Task:      "marking",
	})
	if err != nil {
		s.logger.Warn("marking_failed", "err", err)
		return "", false
	}

	marked = strings.TrimSpace(marked)
	if marked == "" || marked == strings.TrimSpace(passage) {
		return "", false
	}
	return marked, true
}

// collapse 는 내부 오류를 로그하고 외부로는 일반 생성 실패로 수렴한다.
// 설정 오류는 구분된 메시지를 유지한다.
func (s *Service) collapse(err error, event string, req GenerateRequest) error {
	s.logger.Error(event,
		"question_type", req.QuestionType,
		"count", req.Count,
		"difficulty", req.Difficulty,
		"err", err,
	)

	apiErr := httperror.FromError(err)
	if apiErr != nil && apiErr.Code == httperror.ErrorCodeConfig {
		return apiErr
	}
	return httperror.NewGenerationFailed()
}

func trimForLog(value string) string {
	value = strings.TrimSpace(value)
	if len(value) <= 200 {
		return value
	}
	return value[:200]
}
