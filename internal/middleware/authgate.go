package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/park285/exam-gen-server-go/internal/auth"
	"github.com/park285/exam-gen-server-go/internal/httperror"
)

const claimsKey = "auth_claims"

// AuthGate 는 쿠키 토큰 인증 미들웨어다.
// 토큰은 이 게이트에서 한 번 검증되며, 검증된 클레임이 컨텍스트에 저장된다.
// API 경로는 401 JSON 으로, 페이지 경로는 로그인 페이지로 리다이렉트된다.
func AuthGate(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if isAuthExemptPath(path) {
			c.Next()
			return
		}

		token, err := c.Cookie(auth.CookieName)
		if err == nil && token != "" {
			claims, verifyErr := authService.VerifyToken(token)
			if verifyErr == nil {
				c.Set(claimsKey, claims)
				c.Next()
				return
			}
		}

		if strings.HasPrefix(path, "/api/") {
			status, payload := httperror.Response(
				httperror.NewUnauthorized("로그인이 필요합니다."),
				GetRequestID(c),
			)
			c.AbortWithStatusJSON(status, payload)
			return
		}

		c.Redirect(http.StatusFound, "/login")
		c.Abort()
	}
}

// GetClaims: 게이트에서 검증된 클레임을 반환합니다.
func GetClaims(c *gin.Context) *auth.Claims {
	if c == nil {
		return nil
	}
	value, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, ok := value.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

func isAuthExemptPath(path string) bool {
	if path == "/login" || path == "/favicon.ico" {
		return true
	}
	if strings.HasPrefix(path, "/api/auth/") {
		return true
	}
	if path == "/health" || strings.HasPrefix(path, "/health/") {
		return true
	}
	if path == "/metrics" {
		return true
	}
	return false
}
