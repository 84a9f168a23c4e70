package config

import (
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// OpenRouterConfig: OpenRouter 호출 설정입니다.
type OpenRouterConfig struct {
	APIKey           string
	BaseURL          string
	Model            string
	Temperature      float64
	MaxOutputTokens  int
	MarkingMaxTokens int
	TimeoutSeconds   int
}

// HasAPIKey: API 키 설정 여부를 반환합니다.
func (o OpenRouterConfig) HasAPIKey() bool {
	return strings.TrimSpace(o.APIKey) != ""
}

// Timeout: 아웃바운드 호출 타임아웃을 반환합니다.
func (o OpenRouterConfig) Timeout() time.Duration {
	return time.Duration(o.TimeoutSeconds) * time.Second
}

// AuthConfig: 로그인 인증 설정입니다.
type AuthConfig struct {
	Username      string
	Password      string
	JWTSecret     string
	TokenTTLHours int
	CookieSecure  bool
}

// TokenTTL: 토큰 유효 기간을 반환합니다.
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLHours) * time.Hour
}

// GenerateConfig: 문제 생성 파이프라인 설정입니다.
type GenerateConfig struct {
	BatchDelayMs int
}

// BatchDelay: 배치 항목 간 대기 시간을 반환합니다.
func (g GenerateConfig) BatchDelay() time.Duration {
	return time.Duration(g.BatchDelayMs) * time.Millisecond
}

// GuardConfig: 입력 검증 설정입니다.
type GuardConfig struct {
	Enabled         bool
	Threshold       float64
	CacheMaxSize    int
	CacheTTLSeconds int
}

// LoggingConfig: 로깅 설정입니다.
type LoggingConfig struct {
	Level      string
	LogDir     string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// HTTPConfig: HTTP 서버 설정입니다.
type HTTPConfig struct {
	Host         string
	Port         int
	HTTP2Enabled bool
	StaticDir    string
}

// HTTPRateLimitConfig: 요청 제한 설정입니다.
type HTTPRateLimitConfig struct {
	RequestsPerMinute int
	CacheSize         int
	CacheTTLSeconds   int
}

// DatabaseConfig: 사용량 집계 DB 설정입니다.
type DatabaseConfig struct {
	Host                      string
	Port                      int
	Name                      string
	User                      string
	Password                  string
	UsageEnabled              bool
	UsageFlushIntervalSeconds int
}

// DSN: DB 접속 문자열을 반환합니다.
func (d DatabaseConfig) DSN() string {
	host := net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
	u := &url.URL{
		Scheme: "postgresql",
		Host:   host,
		Path:   "/" + d.Name,
	}
	if d.Password == "" {
		u.User = url.User(d.User)
	} else {
		u.User = url.UserPassword(d.User, d.Password)
	}
	return u.String()
}

// Config: 애플리케이션 전체 설정입니다.
type Config struct {
	OpenRouter    OpenRouterConfig
	Auth          AuthConfig
	Generate      GenerateConfig
	Guard         GuardConfig
	Logging       LoggingConfig
	HTTP          HTTPConfig
	HTTPRateLimit HTTPRateLimitConfig
	Database      DatabaseConfig
}
