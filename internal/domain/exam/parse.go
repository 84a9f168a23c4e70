package exam

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// ErrNoJSONArray 는 응답에서 JSON 배열을 찾지 못한 오류다.
var ErrNoJSONArray = errors.New("exam: no json array in response")

// ExtractJSONArray 는 모델 응답 텍스트에서 첫 번째 최상위 JSON 배열을 추출한다.
// 대괄호 깊이와 문자열 이스케이프 상태를 추적하는 전방 스캐너를 사용하며,
// 배열이 없으면 ```json 코드 블록을 차선으로 시도한다.
func ExtractJSONArray(text string) (string, error) {
	if extracted, ok := scanArray(text); ok {
		return extracted, nil
	}
	if fenced, ok := extractFencedJSON(text); ok {
		return fenced, nil
	}
	return "", ErrNoJSONArray
}

func scanArray(text string) (string, bool) {
	start := strings.IndexByte(text, '[')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

func extractFencedJSON(text string) (string, bool) {
	const fence = "```json"
	start := strings.Index(text, fence)
	if start < 0 {
		return "", false
	}
	rest := text[start+len(fence):]
	end := strings.Index(rest, "```")
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(rest[:end]), true
}

// ParseQuestions 는 모델 응답 텍스트를 문제 목록으로 파싱한다.
// 응답 순서를 유지하며, id 가 없는 문제에는 새 식별자를 부여한다.
func ParseQuestions(text string) ([]Question, error) {
	raw, err := ExtractJSONArray(text)
	if err != nil {
		return nil, err
	}

	var questions []Question
	if err := json.Unmarshal([]byte(raw), &questions); err != nil {
		return nil, fmt.Errorf("exam: parse questions: %w", err)
	}

	for i := range questions {
		if strings.TrimSpace(questions[i].ID) == "" {
			questions[i].ID = uuid.NewString()
		}
	}
	return questions, nil
}
