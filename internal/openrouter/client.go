package openrouter

import (
	"context"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/park285/exam-gen-server-go/internal/config"
	"github.com/park285/exam-gen-server-go/internal/llm"
	"github.com/park285/exam-gen-server-go/internal/metrics"
	"github.com/park285/exam-gen-server-go/internal/usage"
)

// Request 는 OpenRouter 채팅 요청 데이터다.
type Request struct {
	System    string
	User      string
	MaxTokens int
	Task      string
}

// Client 는 OpenRouter 호출을 담당한다.
// OpenAI 호환 chat completions 엔드포인트를 사용한다.
type Client struct {
	cfg           config.OpenRouterConfig
	api           *openai.Client
	metrics       *metrics.Store
	usageRecorder *usage.Recorder
}

// NewClient 는 OpenRouter 클라이언트를 생성한다.
// API 키가 비어 있어도 생성은 가능하며, 호출 시점에 ErrMissingAPIKey 를 반환한다.
func NewClient(cfg config.OpenRouterConfig, metricsStore *metrics.Store, usageRecorder *usage.Recorder) (*Client, error) {
	if metricsStore == nil {
		return nil, fmt.Errorf("metrics store is nil")
	}

	apiConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiConfig.BaseURL = cfg.BaseURL
	}
	apiConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout()}

	return &Client{
		cfg:           cfg,
		api:           openai.NewClientWithConfig(apiConfig),
		metrics:       metricsStore,
		usageRecorder: usageRecorder,
	}, nil
}

// Chat 은 채팅 요청을 수행하고 첫 번째 응답 텍스트를 반환한다.
func (c *Client) Chat(ctx context.Context, req Request) (string, error) {
	if !c.cfg.HasAPIKey() {
		return "", ErrMissingAPIKey
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = c.cfg.MaxOutputTokens
	}

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.User,
	})

	start := time.Now()
	response, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: float32(c.cfg.Temperature),
	})
	if err != nil {
		c.metrics.RecordError(time.Since(start))
		return "", fmt.Errorf("openrouter chat (%s): %w", req.Task, err)
	}

	if len(response.Choices) == 0 {
		c.metrics.RecordError(time.Since(start))
		return "", ErrEmptyResponse
	}

	tokenUsage := llm.Usage{
		InputTokens:  response.Usage.PromptTokens,
		OutputTokens: response.Usage.CompletionTokens,
		TotalTokens:  response.Usage.TotalTokens,
	}
	c.metrics.RecordSuccess(time.Since(start), tokenUsage)
	c.recordUsage(ctx, tokenUsage)

	return response.Choices[0].Message.Content, nil
}

// Model 은 설정된 모델 이름을 반환한다.
func (c *Client) Model() string {
	return c.cfg.Model
}

func (c *Client) recordUsage(ctx context.Context, tokenUsage llm.Usage) {
	if c.usageRecorder == nil {
		return
	}
	c.usageRecorder.Record(ctx, int64(tokenUsage.InputTokens), int64(tokenUsage.OutputTokens))
}
