package config

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/joho/godotenv"
)

var (
	configOnce  sync.Once
	configValue *Config
)

// Load 는 환경 변수 기반 설정을 로드한다.
func Load() *Config {
	configOnce.Do(func() {
		_ = godotenv.Load()
		configValue = buildConfig()
	})
	return configValue
}

// ProvideConfig 는 설정을 로드하고 검증한다.
func ProvideConfig() (*Config, error) {
	cfg := Load()
	if cfg == nil {
		return nil, errors.New("config not initialized")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 는 설정 유효성을 검사한다.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.OpenRouter.Model == "" {
		return errors.New("openrouter model required")
	}
	if c.OpenRouter.Temperature < 0 || c.OpenRouter.Temperature > 2 {
		return fmt.Errorf("temperature out of range: %f", c.OpenRouter.Temperature)
	}
	if c.OpenRouter.MaxOutputTokens <= 0 || c.OpenRouter.MarkingMaxTokens <= 0 {
		return fmt.Errorf(
			"invalid token budget: max=%d marking=%d",
			c.OpenRouter.MaxOutputTokens,
			c.OpenRouter.MarkingMaxTokens,
		)
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("jwt secret required")
	}
	if c.Generate.BatchDelayMs < 0 {
		return fmt.Errorf("negative batch delay: %d", c.Generate.BatchDelayMs)
	}
	return nil
}

// LogEnvStatus 는 환경 설정 상태를 로그로 남긴다.
func LogEnvStatus(cfg *Config, logger *slog.Logger) {
	if logger == nil || cfg == nil {
		return
	}

	envFilePresent := fileExists(".env")
	apiKey := maskSecret(cfg.OpenRouter.APIKey)
	logger.Debug(
		"env_status",
		"env_file", envFilePresent,
		"api_key", apiKey,
		"model", cfg.OpenRouter.Model,
		"base_url", cfg.OpenRouter.BaseURL,
		"timeout", cfg.OpenRouter.TimeoutSeconds,
		"batch_delay_ms", cfg.Generate.BatchDelayMs,
		"guard_enabled", cfg.Guard.Enabled,
		"usage_db_enabled", cfg.Database.UsageEnabled,
	)

	if !cfg.OpenRouter.HasAPIKey() {
		logger.Error("env_missing_openrouter_api_key")
	}
}

func buildConfig() *Config {
	return &Config{
		OpenRouter: OpenRouterConfig{
			APIKey:           getEnvString("OPENROUTER_API_KEY", ""),
			BaseURL:          getEnvString("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
			Model:            getEnvString("OPENROUTER_MODEL", "openai/gpt-4o"),
			Temperature:      getEnvFloat("OPENROUTER_TEMPERATURE", 0.7),
			MaxOutputTokens:  getEnvInt("OPENROUTER_MAX_TOKENS", 8000),
			MarkingMaxTokens: getEnvInt("OPENROUTER_MARKING_MAX_TOKENS", 4000),
			TimeoutSeconds:   getEnvInt("OPENROUTER_TIMEOUT", 120),
		},
		Auth: AuthConfig{
			Username:      getEnvString("AUTH_USERNAME", "admin"),
			Password:      getEnvString("AUTH_PASSWORD", "password"),
			JWTSecret:     getEnvString("JWT_SECRET", "default-secret-key"),
			TokenTTLHours: getEnvInt("AUTH_TOKEN_TTL_HOURS", 168),
			CookieSecure:  getEnvBool("AUTH_COOKIE_SECURE", false),
		},
		Generate: GenerateConfig{
			BatchDelayMs: getEnvNonNegativeInt("GENERATE_BATCH_DELAY_MS", 500),
		},
		Guard: GuardConfig{
			Enabled:         getEnvBool("GUARD_ENABLED", true),
			Threshold:       getEnvFloat("GUARD_THRESHOLD", 0.85),
			CacheMaxSize:    getEnvInt("GUARD_CACHE_SIZE", 10000),
			CacheTTLSeconds: getEnvInt("GUARD_CACHE_TTL", 3600),
		},
		Logging: LoggingConfig{
			Level:      getEnvString("LOG_LEVEL", "info"),
			LogDir:     getEnvString("LOG_DIR", ""),
			MaxSizeMB:  getEnvInt("LOG_FILE_MAX_SIZE_MB", 1),
			MaxBackups: getEnvInt("LOG_FILE_MAX_BACKUPS", 30),
			MaxAgeDays: getEnvInt("LOG_FILE_MAX_AGE_DAYS", 7),
			Compress:   getEnvBool("LOG_FILE_COMPRESS", true),
		},
		HTTP: HTTPConfig{
			Host:         getEnvString("HTTP_HOST", "127.0.0.1"),
			Port:         getEnvInt("HTTP_PORT", 40631),
			HTTP2Enabled: getEnvBool("HTTP2_ENABLED", true),
			StaticDir:    getEnvString("HTTP_STATIC_DIR", ""),
		},
		HTTPRateLimit: HTTPRateLimitConfig{
			RequestsPerMinute: getEnvNonNegativeInt("HTTP_RATE_LIMIT_RPM", 0),
			CacheSize:         max(1, getEnvNonNegativeInt("HTTP_RATE_LIMIT_CACHE_SIZE", 10000)),
			CacheTTLSeconds:   max(1, getEnvNonNegativeInt("HTTP_RATE_LIMIT_CACHE_TTL_SECONDS", 120)),
		},
		Database: DatabaseConfig{
			Host:                      getEnvString("DB_HOST", "localhost"),
			Port:                      getEnvInt("DB_PORT", 5432),
			Name:                      getEnvString("DB_NAME", "examgen"),
			User:                      getEnvString("DB_USER", "examgen"),
			Password:                  getEnvString("DB_PASSWORD", ""),
			UsageEnabled:              getEnvBool("DB_USAGE_ENABLED", false),
			UsageFlushIntervalSeconds: max(1, getEnvNonNegativeInt("DB_USAGE_FLUSH_INTERVAL_SECONDS", 5)),
		},
	}
}
