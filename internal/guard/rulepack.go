package guard

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"regexp"
	"strings"

	"github.com/cloudflare/ahocorasick"
	"gopkg.in/yaml.v3"
)

//go:embed rulepacks/*.yml
var rulepackFS embed.FS

type rawRulepack struct {
	Version   int       `yaml:"version"`
	Threshold float64   `yaml:"threshold"`
	Rules     []rawRule `yaml:"rules"`
}

type rawRule struct {
	ID      string   `yaml:"id"`
	Type    string   `yaml:"type"`
	Pattern string   `yaml:"pattern"`
	Phrases []string `yaml:"phrases"`
	Weight  float64  `yaml:"weight"`
}

type regexRule struct {
	ID      string
	Pattern *regexp.Regexp
	Weight  float64
}

type compiledPack struct {
	Threshold     float64
	RegexRules    []regexRule
	PhraseMatcher *ahocorasick.Matcher
	Phrases       []string
	PhraseWeights map[string]float64
}

func loadEmbeddedRulepacks(logger *slog.Logger) ([]compiledPack, error) {
	entries, err := fs.Glob(rulepackFS, "rulepacks/*.yml")
	if err != nil {
		return nil, fmt.Errorf("list rulepacks: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no embedded rulepacks")
	}

	packs := make([]compiledPack, 0, len(entries))
	for _, path := range entries {
		data, err := rulepackFS.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read rulepack %s: %w", path, err)
		}

		var raw rawRulepack
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse rulepack %s: %w", path, err)
		}

		pack, err := compileRulepack(raw, logger)
		if err != nil {
			return nil, fmt.Errorf("compile rulepack %s: %w", path, err)
		}
		packs = append(packs, pack)
	}

	return packs, nil
}

func compileRulepack(raw rawRulepack, logger *slog.Logger) (compiledPack, error) {
	if raw.Version == 0 {
		raw.Version = 1
	}
	if raw.Threshold == 0 {
		raw.Threshold = 0.7
	}

	var regexes []regexRule
	phrases := make([]string, 0)
	phraseWeights := make(map[string]float64)

	for _, rule := range raw.Rules {
		switch strings.ToLower(strings.TrimSpace(rule.Type)) {
		case "regex":
			if rule.ID == "" || rule.Pattern == "" {
				return compiledPack{}, fmt.Errorf("invalid regex rule")
			}
			pattern, err := regexp.Compile("(?i)" + rule.Pattern)
			if err != nil {
				if logger != nil {
					logger.Warn("rulepack_regex_invalid", "rule_id", rule.ID, "err", err)
				}
				continue
			}
			regexes = append(regexes, regexRule{
				ID:      rule.ID,
				Pattern: pattern,
				Weight:  rule.Weight,
			})
		case "phrases":
			if rule.ID == "" || len(rule.Phrases) == 0 {
				return compiledPack{}, fmt.Errorf("invalid phrases rule")
			}
			for _, phrase := range rule.Phrases {
				value := strings.ToLower(phrase)
				phrases = append(phrases, value)
				phraseWeights[value] = rule.Weight
			}
		default:
			return compiledPack{}, fmt.Errorf("unknown rule type: %s", rule.Type)
		}
	}

	var matcher *ahocorasick.Matcher
	if len(phrases) > 0 {
		patterns := make([][]byte, 0, len(phrases))
		for _, phrase := range phrases {
			patterns = append(patterns, []byte(phrase))
		}
		matcher = ahocorasick.NewMatcher(patterns)
	}

	return compiledPack{
		Threshold:     raw.Threshold,
		RegexRules:    regexes,
		PhraseMatcher: matcher,
		Phrases:       phrases,
		PhraseWeights: phraseWeights,
	}, nil
}
