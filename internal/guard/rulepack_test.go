package guard

import "testing"

func TestLoadEmbeddedRulepacks(t *testing.T) {
	packs, err := loadEmbeddedRulepacks(testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(packs) == 0 {
		t.Fatalf("expected at least one embedded rulepack")
	}
	for _, pack := range packs {
		if pack.Threshold <= 0 {
			t.Fatalf("expected positive threshold")
		}
		if len(pack.RegexRules) == 0 && pack.PhraseMatcher == nil {
			t.Fatalf("expected pack with rules")
		}
	}
}

func TestCompileRulepackDefaults(t *testing.T) {
	raw := rawRulepack{
		Rules: []rawRule{
			{ID: "r1", Type: "regex", Pattern: "evil", Weight: 0.6},
		},
	}
	pack, err := compileRulepack(raw, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pack.Threshold != 0.7 {
		t.Fatalf("expected default threshold 0.7, got %v", pack.Threshold)
	}
	if len(pack.RegexRules) != 1 {
		t.Fatalf("expected one regex rule")
	}
	if !pack.RegexRules[0].Pattern.MatchString("EVIL input") {
		t.Fatalf("expected case-insensitive match")
	}
}

func TestCompileRulepackRejectsUnknownType(t *testing.T) {
	raw := rawRulepack{
		Rules: []rawRule{
			{ID: "r1", Type: "bogus", Weight: 0.5},
		},
	}
	if _, err := compileRulepack(raw, testLogger()); err == nil {
		t.Fatalf("expected error for unknown rule type")
	}
}

func TestCompileRulepackPhrases(t *testing.T) {
	raw := rawRulepack{
		Threshold: 0.5,
		Rules: []rawRule{
			{ID: "p1", Type: "phrases", Phrases: []string{"Bad Phrase"}, Weight: 0.6},
		},
	}
	pack, err := compileRulepack(raw, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pack.PhraseMatcher == nil {
		t.Fatalf("expected phrase matcher")
	}
	matches := pack.PhraseMatcher.MatchThreadSafe([]byte("contains bad phrase here"))
	if len(matches) == 0 {
		t.Fatalf("expected phrase match")
	}
}
