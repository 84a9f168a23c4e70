package guard

import (
	"log/slog"
	"math"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/park285/exam-gen-server-go/internal/cache"
	"github.com/park285/exam-gen-server-go/internal/config"
)

// PassageGuard: LLM 프롬프트에 삽입되는 지문을 검사하는 보안 가드입니다.
type PassageGuard struct {
	cfg    config.GuardConfig
	logger *slog.Logger
	packs  []compiledPack
	cache  *cache.TTLCache[string, Evaluation]
	group  singleflight.Group
}

// NewGuard: 지문 검증 가드를 생성합니다.
// 규칙팩은 바이너리에 임베드되어 있어 외부 파일이 필요 없습니다.
func NewGuard(cfg config.GuardConfig, logger *slog.Logger) (*PassageGuard, error) {
	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	passageGuard := &PassageGuard{
		cfg:    cfg,
		logger: logger,
		cache:  cache.NewTTLCache[string, Evaluation](cfg.CacheMaxSize, cacheTTL),
	}

	if cfg.Enabled {
		packs, err := loadEmbeddedRulepacks(logger)
		if err != nil {
			return nil, err
		}
		passageGuard.packs = packs
		if logger != nil {
			logger.Info("guard_ready", "packs", len(packs), "threshold", passageGuard.threshold())
		}
	}

	return passageGuard, nil
}

// Evaluate: 지문을 평가합니다.
func (g *PassageGuard) Evaluate(input string) Evaluation {
	if g == nil || !g.cfg.Enabled {
		return Evaluation{Score: 0, Hits: nil, Threshold: math.Inf(1)}
	}

	if cached, ok := g.cache.Get(input); ok {
		return cached
	}

	value, _, _ := g.group.Do(input, func() (any, error) {
		result := g.evaluateInternal(input)
		g.cache.Set(input, result)
		return result, nil
	})

	if evaluation, ok := value.(Evaluation); ok {
		return evaluation
	}
	return Evaluation{Score: 0, Hits: nil, Threshold: g.threshold()}
}

// EnsureSafe: 위험 지문을 오류로 반환합니다.
func (g *PassageGuard) EnsureSafe(input string) error {
	evaluation := g.Evaluate(input)
	if evaluation.Malicious() {
		return &BlockedError{Score: evaluation.Score, Threshold: evaluation.Threshold}
	}
	return nil
}

// IsMalicious: 지문이 위험한지 여부를 반환합니다.
func (g *PassageGuard) IsMalicious(input string) bool {
	return g.Evaluate(input).Malicious()
}

func (g *PassageGuard) threshold() float64 {
	if g.cfg.Threshold > 0 {
		return g.cfg.Threshold
	}
	if len(g.packs) == 0 {
		return 0.7
	}

	maxThreshold := 0.0
	for _, pack := range g.packs {
		if pack.Threshold > maxThreshold {
			maxThreshold = pack.Threshold
		}
	}
	if maxThreshold > 0 {
		return maxThreshold
	}
	return 0.7
}

func (g *PassageGuard) evaluateInternal(input string) Evaluation {
	threshold := g.threshold()

	if isJamoOnly(input) {
		if g.logger != nil {
			g.logger.Warn("guard_jamo_only_blocked", "input", trimForLog(input))
		}
		return Evaluation{
			Score:     threshold,
			Hits:      []Match{{ID: "jamo_only", Weight: threshold}},
			Threshold: threshold,
		}
	}

	if containsEmoji(input) {
		if g.logger != nil {
			g.logger.Warn("guard_emoji_blocked", "input", trimForLog(input))
		}
		return Evaluation{
			Score:     threshold,
			Hits:      []Match{{ID: "emoji_detected", Weight: threshold}},
			Threshold: threshold,
		}
	}

	if containsSuspiciousBase64(input) {
		if g.logger != nil {
			g.logger.Warn("guard_base64_payload_blocked", "input", trimForLog(input))
		}
		return Evaluation{
			Score:     threshold,
			Hits:      []Match{{ID: "base64_payload", Weight: threshold}},
			Threshold: threshold,
		}
	}

	// 정규화 파이프라인:
	// 1. 자모 시퀀스 조합 (ㅍㅡㄹㅗㅁㅍㅡㅌㅡ → 프롬프트)
	// 2. Homoglyph + NFKC 정규화
	composed := composeJamoSequences(input)
	normalized := normalizeText(composed)
	score, hits := g.evaluatePacks(normalized)
	return Evaluation{Score: score, Hits: hits, Threshold: threshold}
}

func (g *PassageGuard) evaluatePacks(text string) (float64, []Match) {
	total := 0.0
	hits := make([]Match, 0)
	textLower := strings.ToLower(text)

	for _, pack := range g.packs {
		for _, rule := range pack.RegexRules {
			if rule.Pattern.MatchString(text) {
				total += rule.Weight
				hits = append(hits, Match{ID: rule.ID, Weight: rule.Weight})
			}
		}

		if pack.PhraseMatcher == nil {
			continue
		}
		matches := pack.PhraseMatcher.MatchThreadSafe([]byte(textLower))
		for _, index := range matches {
			if index < 0 || index >= len(pack.Phrases) {
				continue
			}
			phrase := pack.Phrases[index]
			weight := pack.PhraseWeights[phrase]
			if weight <= 0 {
				continue
			}
			total += weight
			hits = append(hits, Match{ID: "phrase:" + phrase, Weight: weight})
		}
	}

	return total, hits
}

func trimForLog(value string) string {
	value = strings.TrimSpace(value)
	if len(value) <= 50 {
		return value
	}
	return value[:50]
}
