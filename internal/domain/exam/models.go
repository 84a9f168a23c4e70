package exam

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// QuestionType 는 문제 유형 타입이다.
type QuestionType string

const (
	// TypeWordMeaning 는 단어 의미 유형이다.
	TypeWordMeaning QuestionType = "word-meaning"
	// TypeConceptUnderstanding 는 개념 이해 유형이다.
	TypeConceptUnderstanding QuestionType = "concept-understanding"
	// TypePatternAnalysis 는 전개 방식 분석 유형이다.
	TypePatternAnalysis QuestionType = "pattern-analysis"
	// TypeArgumentStructure 는 논증 구조 유형이다.
	TypeArgumentStructure QuestionType = "argument-structure"
	// TypeFactualUnderstanding 는 사실적 이해 유형이다.
	TypeFactualUnderstanding QuestionType = "factual-understanding"
	// TypeInference 는 추론 유형이다.
	TypeInference QuestionType = "inference"
	// TypeAuthorIntention 는 작가 의도 유형이다.
	TypeAuthorIntention QuestionType = "author-intention"
	// TypeUnderlinedSentence 는 밑줄 문장 유형이다. 유일하게 마킹 선처리를 거친다.
	TypeUnderlinedSentence QuestionType = "underlined-sentence"
	// TypeConceptComparison 는 개념 비교 유형이다.
	TypeConceptComparison QuestionType = "concept-comparison"
	// TypePerspectiveComparison 는 관점 비교 유형이다.
	TypePerspectiveComparison QuestionType = "perspective-comparison"
	// TypeValidityEvaluation 는 타당성 평가 유형이다.
	TypeValidityEvaluation QuestionType = "validity-evaluation"
	// TypePrincipleApplication 는 원리 적용 유형이다.
	TypePrincipleApplication QuestionType = "principle-application"
	// TypeComplexDataInterpretation 는 복합 자료 해석 유형이다.
	TypeComplexDataInterpretation QuestionType = "complex-data-interpretation"
	// TypeProblemSolving 는 문제 해결 유형이다.
	TypeProblemSolving QuestionType = "problem-solving"
)

// TypeGroup 는 문제 유형 대분류다.
type TypeGroup string

const (
	// GroupVocabulary 는 어휘력 대분류다.
	GroupVocabulary TypeGroup = "vocabulary"
	// GroupStructure 는 글의 구조와 전개 대분류다.
	GroupStructure TypeGroup = "structure"
	// GroupComprehension 는 내용 이해 대분류다.
	GroupComprehension TypeGroup = "comprehension"
	// GroupEvaluation 는 비교와 평가 대분류다.
	GroupEvaluation TypeGroup = "evaluation"
	// GroupApplication 는 적용과 확장 대분류다.
	GroupApplication TypeGroup = "application"
)

var typeGroups = map[QuestionType]TypeGroup{
	TypeWordMeaning:               GroupVocabulary,
	TypeConceptUnderstanding:      GroupVocabulary,
	TypePatternAnalysis:           GroupStructure,
	TypeArgumentStructure:         GroupStructure,
	TypeFactualUnderstanding:      GroupComprehension,
	TypeInference:                 GroupComprehension,
	TypeAuthorIntention:           GroupComprehension,
	TypeUnderlinedSentence:        GroupComprehension,
	TypeConceptComparison:         GroupEvaluation,
	TypePerspectiveComparison:     GroupEvaluation,
	TypeValidityEvaluation:        GroupEvaluation,
	TypePrincipleApplication:      GroupApplication,
	TypeComplexDataInterpretation: GroupApplication,
	TypeProblemSolving:            GroupApplication,
}

// AllQuestionTypes 는 전체 문제 유형 목록을 반환한다.
func AllQuestionTypes() []QuestionType {
	return []QuestionType{
		TypeWordMeaning,
		TypeConceptUnderstanding,
		TypePatternAnalysis,
		TypeArgumentStructure,
		TypeFactualUnderstanding,
		TypeInference,
		TypeAuthorIntention,
		TypeUnderlinedSentence,
		TypeConceptComparison,
		TypePerspectiveComparison,
		TypeValidityEvaluation,
		TypePrincipleApplication,
		TypeComplexDataInterpretation,
		TypeProblemSolving,
	}
}

// ParseQuestionType 는 문자열을 문제 유형으로 파싱한다.
func ParseQuestionType(value string) (QuestionType, bool) {
	questionType := QuestionType(strings.TrimSpace(value))
	if _, ok := typeGroups[questionType]; !ok {
		return "", false
	}
	return questionType, true
}

// Group 은 문제 유형의 대분류를 반환한다.
func (t QuestionType) Group() TypeGroup {
	return typeGroups[t]
}

// Valid 는 유효한 문제 유형인지 여부를 반환한다.
func (t QuestionType) Valid() bool {
	_, ok := typeGroups[t]
	return ok
}

// NeedsMarking 은 마킹 선처리가 필요한 유형인지 여부를 반환한다.
func (t QuestionType) NeedsMarking() bool {
	return t == TypeUnderlinedSentence
}

// Difficulty 는 난이도 타입이다.
type Difficulty string

const (
	// DifficultyHigh 는 상 난이도다.
	DifficultyHigh Difficulty = "상"
	// DifficultyMedium 는 중 난이도다.
	DifficultyMedium Difficulty = "중"
	// DifficultyLow 는 하 난이도다.
	DifficultyLow Difficulty = "하"
)

// ParseDifficulty 는 문자열을 난이도로 파싱한다. 빈 문자열은 기본값 중으로 처리한다.
func ParseDifficulty(value string) (Difficulty, bool) {
	switch Difficulty(strings.TrimSpace(value)) {
	case DifficultyHigh:
		return DifficultyHigh, true
	case DifficultyMedium:
		return DifficultyMedium, true
	case DifficultyLow:
		return DifficultyLow, true
	case "":
		return DifficultyMedium, true
	default:
		return "", false
	}
}

// AnswerKey 는 정답 값 타입이다. 1부터 시작하는 선택지 번호이거나 자유 서술형 문자열이다.
// 숫자로만 구성된 문자열 정답은 번호로 강제 변환된다.
type AnswerKey struct {
	Index int
	Text  string
}

// IsIndex 는 번호형 정답인지 여부를 반환한다.
func (a AnswerKey) IsIndex() bool {
	return a.Index > 0
}

// UnmarshalJSON 은 숫자 혹은 문자열 정답을 파싱한다.
func (a *AnswerKey) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*a = AnswerKey{}
		return nil
	}

	if strings.HasPrefix(trimmed, "\"") {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return fmt.Errorf("parse answer: %w", err)
		}
		if index, err := strconv.Atoi(strings.TrimSpace(text)); err == nil {
			*a = AnswerKey{Index: index}
			return nil
		}
		*a = AnswerKey{Text: text}
		return nil
	}

	var index int
	if err := json.Unmarshal(data, &index); err != nil {
		return fmt.Errorf("parse answer: %w", err)
	}
	*a = AnswerKey{Index: index}
	return nil
}

// MarshalJSON 은 번호형 정답은 숫자로, 서술형 정답은 문자열로 직렬화한다.
func (a AnswerKey) MarshalJSON() ([]byte, error) {
	if a.IsIndex() {
		return json.Marshal(a.Index)
	}
	return json.Marshal(a.Text)
}

// Question 는 생성된 문제다. 파서가 생성한 뒤 변경되지 않으며 저장되지 않는다.
type Question struct {
	ID            string    `json:"id"`
	Text          string    `json:"text"`
	Options       []string  `json:"options,omitempty"`
	CorrectAnswer AnswerKey `json:"correctAnswer"`
	Explanation   string    `json:"explanation"`
	Example       string    `json:"example,omitempty"`
}

// GenerateResult 는 단일 생성 작업의 결과다.
type GenerateResult struct {
	Questions     []Question `json:"questions"`
	MarkedPassage string     `json:"markedPassage,omitempty"`
}
