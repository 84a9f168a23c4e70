package httperror

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/park285/exam-gen-server-go/internal/guard"
	"github.com/park285/exam-gen-server-go/internal/openrouter"
)

// ErrorCode 는 API 오류 코드다.
type ErrorCode string

const (
	// ErrorCodeInternal 는 내부 오류 코드다.
	ErrorCodeInternal ErrorCode = "INTERNAL_ERROR"
	// ErrorCodeValidation 는 검증 오류 코드다.
	ErrorCodeValidation ErrorCode = "VALIDATION_ERROR"
	// ErrorCodeUnauthorized 는 인증 오류 코드다.
	ErrorCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrorCodeHTTPRateLimit 는 요청 제한 오류 코드다.
	ErrorCodeHTTPRateLimit ErrorCode = "HTTP_RATE_LIMIT"
	// ErrorCodeConfig 는 서버 설정 오류 코드다.
	ErrorCodeConfig ErrorCode = "CONFIG_ERROR"
	// ErrorCodeLLM 는 LLM 오류 코드다.
	ErrorCodeLLM ErrorCode = "LLM_ERROR"
	// ErrorCodeLLMTimeout 는 LLM 타임아웃 코드다.
	ErrorCodeLLMTimeout ErrorCode = "LLM_TIMEOUT"
	// ErrorCodeLLMParsing 는 LLM 파싱 오류 코드다.
	ErrorCodeLLMParsing ErrorCode = "LLM_PARSING_ERROR"
	// ErrorCodeGenerationFailed 는 문제 생성 실패 코드다.
	ErrorCodeGenerationFailed ErrorCode = "GENERATION_FAILED"
	// ErrorCodeGuard 는 가드 오류 코드다.
	ErrorCodeGuard ErrorCode = "GUARD_ERROR"
	// ErrorCodeGuardBlocked 는 가드 차단 코드다.
	ErrorCodeGuardBlocked ErrorCode = "GUARD_BLOCKED"
	// ErrorCodeInvalidInput 는 입력 오류 코드다.
	ErrorCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrorCodeMissingField 는 필드 누락 코드다.
	ErrorCodeMissingField ErrorCode = "MISSING_FIELD"
)

// ErrorResponse 는 API 오류 응답 본문이다.
type ErrorResponse struct {
	ErrorCode string         `json:"error_code"`
	ErrorType string         `json:"error_type"`
	Message   string         `json:"message"`
	RequestID *string        `json:"request_id"`
	Details   map[string]any `json:"details"`
}

// Error 는 내부 표준 오류 타입이다.
type Error struct {
	Code    ErrorCode
	Status  int
	Type    string
	Message string
	Details map[string]any
}

// Error 는 오류 메시지를 반환한다.
func (e *Error) Error() string {
	return e.Message
}

// Response 는 오류를 HTTP 응답으로 변환한다.
func Response(err error, requestID string) (int, ErrorResponse) {
	apiErr := FromError(err)
	if apiErr == nil {
		apiErr = NewInternalError("서버 오류가 발생했습니다.")
	}

	var requestIDPtr *string
	if requestID != "" {
		requestIDPtr = &requestID
	}

	return apiErr.Status, ErrorResponse{
		ErrorCode: string(apiErr.Code),
		ErrorType: apiErr.Type,
		Message:   apiErr.Message,
		RequestID: requestIDPtr,
		Details:   apiErr.Details,
	}
}

// FromError 는 오류를 내부 오류 타입으로 변환한다.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var blocked *guard.BlockedError
	if errors.As(err, &blocked) {
		return NewGuardBlocked(blocked.Score, blocked.Threshold)
	}

	if errors.Is(err, openrouter.ErrMissingAPIKey) {
		return NewConfigError("OpenRouter API 키가 설정되지 않았습니다.")
	}

	if errors.Is(err, openrouter.ErrEmptyResponse) {
		return NewLLMError("LLM 응답이 비어 있습니다.", http.StatusBadGateway)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return NewLLMTimeoutError("LLM 요청이 시간 초과되었습니다.")
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return NewValidationError(err)
	}

	return NewInternalError(err.Error())
}

// NewInternalError 는 내부 오류를 생성한다.
func NewInternalError(message string) *Error {
	return &Error{
		Code:    ErrorCodeInternal,
		Status:  http.StatusInternalServerError,
		Type:    "InternalError",
		Message: message,
		Details: nil,
	}
}

// NewConfigError 는 서버 설정 오류를 생성한다.
func NewConfigError(message string) *Error {
	return &Error{
		Code:    ErrorCodeConfig,
		Status:  http.StatusInternalServerError,
		Type:    "ConfigError",
		Message: message,
		Details: nil,
	}
}

// NewValidationError 는 검증 오류를 생성한다.
func NewValidationError(err error) *Error {
	return &Error{
		Code:    ErrorCodeValidation,
		Status:  http.StatusBadRequest,
		Type:    "ValidationError",
		Message: "잘못된 요청 형식입니다.",
		Details: validationDetails(err),
	}
}

// NewMissingField 는 누락 필드 오류를 생성한다.
func NewMissingField(field string) *Error {
	return &Error{
		Code:    ErrorCodeMissingField,
		Status:  http.StatusBadRequest,
		Type:    "MissingFieldError",
		Message: fmt.Sprintf("필수 항목 '%s' 이(가) 누락되었습니다.", field),
		Details: map[string]any{"field": field},
	}
}

// NewInvalidInput 는 입력 오류를 생성한다.
func NewInvalidInput(message string) *Error {
	return &Error{
		Code:    ErrorCodeInvalidInput,
		Status:  http.StatusBadRequest,
		Type:    "InvalidInputError",
		Message: message,
		Details: nil,
	}
}

// NewUnauthorized 는 인증 오류를 생성한다.
func NewUnauthorized(message string) *Error {
	return &Error{
		Code:    ErrorCodeUnauthorized,
		Status:  http.StatusUnauthorized,
		Type:    "UnauthorizedError",
		Message: message,
		Details: nil,
	}
}

// NewRateLimitExceeded 는 요청 제한 오류를 생성한다.
func NewRateLimitExceeded(details map[string]any) *Error {
	return &Error{
		Code:    ErrorCodeHTTPRateLimit,
		Status:  http.StatusTooManyRequests,
		Type:    "HTTPRateLimitExceededError",
		Message: "요청이 너무 많습니다. 잠시 후 다시 시도해 주세요.",
		Details: details,
	}
}

// NewGuardBlocked 는 가드 차단 오류를 생성한다.
func NewGuardBlocked(score float64, threshold float64) *Error {
	return &Error{
		Code:    ErrorCodeGuardBlocked,
		Status:  http.StatusBadRequest,
		Type:    "GuardBlockedError",
		Message: "지문에 허용되지 않는 내용이 포함되어 있습니다.",
		Details: map[string]any{"score": score, "threshold": threshold},
	}
}

// NewGenerationFailed 는 문제 생성 실패 오류를 생성한다.
func NewGenerationFailed() *Error {
	return &Error{
		Code:    ErrorCodeGenerationFailed,
		Status:  http.StatusInternalServerError,
		Type:    "GenerationFailedError",
		Message: "문제 생성 중 오류가 발생했습니다.",
		Details: nil,
	}
}

// NewLLMParsingError 는 LLM 파싱 오류를 생성한다.
func NewLLMParsingError(message string) *Error {
	return &Error{
		Code:    ErrorCodeLLMParsing,
		Status:  http.StatusBadGateway,
		Type:    "LLMParsingError",
		Message: message,
		Details: nil,
	}
}

// NewLLMTimeoutError 는 LLM 타임아웃 오류를 생성한다.
func NewLLMTimeoutError(message string) *Error {
	return &Error{
		Code:    ErrorCodeLLMTimeout,
		Status:  http.StatusGatewayTimeout,
		Type:    "LLMTimeoutError",
		Message: message,
		Details: nil,
	}
}

// NewLLMError 는 LLM 오류를 생성한다.
func NewLLMError(message string, status int) *Error {
	return &Error{
		Code:    ErrorCodeLLM,
		Status:  status,
		Type:    "LLMError",
		Message: message,
		Details: nil,
	}
}

// FieldError 는 필드 오류 상세 정보다.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value"`
}

func validationDetails(err error) map[string]any {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := make([]FieldError, 0, len(validationErrors))
		for _, validationErr := range validationErrors {
			fields = append(fields, FieldError{
				Field:   validationErr.Field(),
				Message: validationErr.Error(),
				Value:   validationErr.Value(),
			})
		}
		return map[string]any{"errors": fields}
	}

	return map[string]any{
		"errors": []FieldError{
			{
				Field:   "body",
				Message: err.Error(),
				Value:   nil,
			},
		},
	}
}
