package health

import (
	"context"
	"time"

	"github.com/park285/exam-gen-server-go/internal/config"
	"github.com/park285/exam-gen-server-go/internal/usage"
)

var startTime = time.Now()

// Component 는 상태 구성 요소다.
type Component struct {
	Status string         `json:"status"`
	Detail map[string]any `json:"detail"`
}

// Response 는 상태 응답 본문이다.
type Response struct {
	Status     string               `json:"status"`
	Components map[string]Component `json:"components"`
}

// Collect 는 헬스 상태를 수집한다.
// liveness 경로는 deepChecks=false 로 호출하여 외부 의존성 상태에 좌우되지 않는다.
func Collect(ctx context.Context, cfg *config.Config, store usage.Store, deepChecks bool) Response {
	components := make(map[string]Component)

	components["app"] = buildAppStatus()
	components["openrouter"] = buildOpenRouterStatus(cfg)
	components["usage_db"] = buildUsageDBStatus(ctx, cfg, store, deepChecks)

	overall := "ok"
	for _, component := range components {
		if component.Status != "ok" {
			overall = "degraded"
			break
		}
	}

	return Response{
		Status:     overall,
		Components: components,
	}
}

func buildAppStatus() Component {
	uptimeSeconds := int(time.Since(startTime).Seconds())
	return Component{
		Status: "ok",
		Detail: map[string]any{
			"uptime_seconds": uptimeSeconds,
		},
	}
}

func buildOpenRouterStatus(cfg *config.Config) Component {
	apiKeyPresent := false
	model := ""
	timeoutSeconds := 0

	if cfg != nil {
		apiKeyPresent = cfg.OpenRouter.HasAPIKey()
		model = cfg.OpenRouter.Model
		timeoutSeconds = cfg.OpenRouter.TimeoutSeconds
	}

	status := "ok"
	if !apiKeyPresent {
		status = "degraded"
	}

	return Component{
		Status: status,
		Detail: map[string]any{
			"api_key_present": apiKeyPresent,
			"model":           model,
			"timeout_seconds": timeoutSeconds,
		},
	}
}

func buildUsageDBStatus(ctx context.Context, cfg *config.Config, store usage.Store, deepChecks bool) Component {
	enabled := cfg != nil && cfg.Database.UsageEnabled
	connected := false
	checkErr := ""

	if ctx == nil {
		ctx = context.Background()
	}
	if enabled && deepChecks && store != nil {
		checkCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()

		if _, err := store.GetDailyUsage(checkCtx, time.Time{}); err != nil {
			checkErr = err.Error()
		} else {
			connected = true
		}
	}

	status := "ok"
	if enabled && deepChecks && !connected {
		status = "degraded"
	}

	detail := map[string]any{
		"enabled":      enabled,
		"connected":    connected,
		"deep_checked": deepChecks,
	}
	if checkErr != "" {
		detail["check_error"] = checkErr
	}

	return Component{
		Status: status,
		Detail: detail,
	}
}
