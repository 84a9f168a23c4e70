package exam

import (
	"embed"
	"fmt"
	"strconv"

	"github.com/park285/exam-gen-server-go/internal/prompt"
)

//go:embed prompts/*.yml
var promptsFS embed.FS

// Prompts 는 문제 생성 프롬프트 모음이다.
type Prompts struct {
	bundle *prompt.Bundle
}

// NewPrompts 는 문제 생성 프롬프트를 로드한다.
func NewPrompts() (*Prompts, error) {
	bundle, err := prompt.LoadBundle(promptsFS, "prompts", "exam")
	if err != nil {
		return nil, fmt.Errorf("load exam prompts: %w", err)
	}
	return &Prompts{bundle: bundle}, nil
}

// GenerateSystem 은 문제 생성 시스템 프롬프트를 반환한다.
func (p *Prompts) GenerateSystem() (string, error) {
	data, err := p.bundle.Prompt("generate")
	if err != nil {
		return "", err
	}
	return prompt.Field(data, "system", "generate.system")
}

// GenerateUser 는 문제 생성 유저 프롬프트를 구성한다.
// 지문, 문항 수, 난이도, 유형별 지침과 출력 형식 지시를 포함한다.
func (p *Prompts) GenerateUser(passage string, questionType QuestionType, count int, difficulty Difficulty) (string, error) {
	data, err := p.bundle.Prompt("generate")
	if err != nil {
		return "", err
	}

	template, err := prompt.Field(data, "user", "generate.user")
	if err != nil {
		return "", err
	}

	guidance, err := prompt.Field(data, "guidance_"+string(questionType), "generate.guidance."+string(questionType))
	if err != nil {
		return "", err
	}

	format, err := prompt.Field(data, "format", "generate.format")
	if err != nil {
		return "", err
	}

	formatted, err := prompt.FormatTemplate(template, map[string]string{
		"passage":    prompt.WrapXML("passage", passage),
		"count":      strconv.Itoa(count),
		"difficulty": string(difficulty),
		"guidance":   guidance,
		"format":     format,
	})
	if err != nil {
		return "", fmt.Errorf("format generate prompt: %w", err)
	}
	return formatted, nil
}

// MarkingSystem 은 마킹 시스템 프롬프트를 반환한다.
func (p *Prompts) MarkingSystem() (string, error) {
	data, err := p.bundle.Prompt("marking")
	if err != nil {
		return "", err
	}
	return prompt.Field(data, "system", "marking.system")
}

// MarkingUser 는 마킹 유저 프롬프트를 구성한다.
// 지문을 그대로 재현하되 정확히 count 개 문장에 <u> 태그를 씌우도록 지시한다.
func (p *Prompts) MarkingUser(passage string, count int) (string, error) {
	data, err := p.bundle.Prompt("marking")
	if err != nil {
		return "", err
	}

	template, err := prompt.Field(data, "user", "marking.user")
	if err != nil {
		return "", err
	}

	formatted, err := prompt.FormatTemplate(template, map[string]string{
		"passage": prompt.WrapXML("passage", passage),
		"count":   strconv.Itoa(count),
	})
	if err != nil {
		return "", fmt.Errorf("format marking prompt: %w", err)
	}
	return formatted, nil
}
