package handler

import (
	examdomain "github.com/park285/exam-gen-server-go/internal/domain/exam"
)

// GenerateRequestBody 는 단일 생성 요청 본문이다.
type GenerateRequestBody struct {
	Passage      string `json:"passage" validate:"required"`
	QuestionType string `json:"questionType" validate:"required"`
	Count        int    `json:"count" validate:"omitempty,gte=1,lte=10"`
	Difficulty   string `json:"difficulty"`
}

// BatchItemBody 는 배치 생성 항목 본문이다.
type BatchItemBody struct {
	QuestionType string `json:"questionType" validate:"required"`
	Count        int    `json:"count" validate:"omitempty,gte=1,lte=5"`
	Difficulty   string `json:"difficulty"`
}

// BatchRequestBody 는 배치 생성 요청 본문이다.
type BatchRequestBody struct {
	Passage string          `json:"passage" validate:"required"`
	Items   []BatchItemBody `json:"items" validate:"required,min=1,dive"`
}

// BatchItemResponse 는 배치 항목별 결과다. 요청 메타데이터와 생성 결과를 함께 담는다.
type BatchItemResponse struct {
	QuestionType string                `json:"questionType"`
	Count        int                   `json:"count"`
	Difficulty   string                `json:"difficulty"`
	Questions    []examdomain.Question `json:"questions"`
}

// BatchResponse 는 배치 생성 응답 본문이다.
type BatchResponse struct {
	Items         []BatchItemResponse `json:"items"`
	MarkedPassage string              `json:"markedPassage,omitempty"`
}
