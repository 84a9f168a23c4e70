package health

import (
	"testing"

	"github.com/park285/exam-gen-server-go/internal/config"
)

func TestCollectDegradedWithoutAPIKey(t *testing.T) {
	cfg := &config.Config{
		OpenRouter: config.OpenRouterConfig{
			Model:          "openai/gpt-4o",
			TimeoutSeconds: 120,
		},
	}

	resp := Collect(t.Context(), cfg, nil, false)
	if resp.Status != "degraded" {
		t.Fatalf("expected degraded status, got %s", resp.Status)
	}
	if resp.Components["openrouter"].Status != "degraded" {
		t.Fatalf("expected openrouter degraded")
	}
	if resp.Components["app"].Status != "ok" {
		t.Fatalf("expected app ok")
	}
}

func TestCollectOKWithAPIKey(t *testing.T) {
	cfg := &config.Config{
		OpenRouter: config.OpenRouterConfig{
			APIKey: "sk-test",
			Model:  "openai/gpt-4o",
		},
	}

	resp := Collect(t.Context(), cfg, nil, false)
	if resp.Status != "ok" {
		t.Fatalf("expected ok status, got %s", resp.Status)
	}
	usageDB := resp.Components["usage_db"]
	if usageDB.Detail["enabled"] != false {
		t.Fatalf("expected usage db disabled by default")
	}
}
