package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/park285/exam-gen-server-go/internal/config"
)

// CookieName 는 인증 토큰 쿠키 이름이다.
const CookieName = "auth-token"

var (
	// ErrInvalidCredentials 는 아이디/비밀번호 불일치 오류다.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	// ErrInvalidToken 는 토큰 검증 실패 오류다.
	ErrInvalidToken = errors.New("auth: invalid token")
)

// Claims 는 인증 토큰 클레임이다.
type Claims struct {
	Username      string `json:"username"`
	Authenticated bool   `json:"authenticated"`
	jwt.RegisteredClaims
}

// Service 는 자격 증명 검증과 토큰 발급/검증을 담당한다.
type Service struct {
	cfg config.AuthConfig
}

// NewService 는 인증 서비스를 생성한다.
func NewService(cfg config.AuthConfig) *Service {
	return &Service{cfg: cfg}
}

// VerifyCredentials 는 설정된 자격 증명과 상수 시간 비교한다.
func (s *Service) VerifyCredentials(username string, password string) error {
	usernameMatch := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.Username))
	passwordMatch := subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.Password))
	if usernameMatch&passwordMatch != 1 {
		return ErrInvalidCredentials
	}
	return nil
}

// IssueToken 는 서명된 인증 토큰을 발급한다.
func (s *Service) IssueToken(username string) (string, error) {
	now := time.Now()
	claims := Claims{
		Username:      username,
		Authenticated: true,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL())),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken 는 토큰 서명과 만료를 검증하고 클레임을 반환한다.
func (s *Service) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !token.Valid || !claims.Authenticated {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// TokenTTL 는 발급 토큰의 유효 기간을 반환한다.
func (s *Service) TokenTTL() time.Duration {
	return s.cfg.TokenTTL()
}

// CookieSecure 는 쿠키 Secure 플래그 설정값을 반환한다.
func (s *Service) CookieSecure() bool {
	return s.cfg.CookieSecure
}
