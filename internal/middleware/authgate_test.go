package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/park285/exam-gen-server-go/internal/auth"
	"github.com/park285/exam-gen-server-go/internal/config"
)

func newGateRouter(t *testing.T) (*gin.Engine, *auth.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authService := auth.NewService(config.AuthConfig{
		Username:      "admin",
		Password:      "password",
		JWTSecret:     "test-secret",
		TokenTTLHours: 1,
	})

	router := gin.New()
	router.Use(RequestID(), AuthGate(authService))
	router.GET("/api/generate", func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			c.String(http.StatusInternalServerError, "no claims")
			return
		}
		c.String(http.StatusOK, claims.Username)
	})
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.POST("/api/auth/login", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router, authService
}

func TestAuthGateRejectsAPIWithoutToken(t *testing.T) {
	router, _ := newGateRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/generate", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthGateRedirectsPages(t *testing.T) {
	router, _ := newGateRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", resp.Code)
	}
	if location := resp.Header().Get("Location"); location != "/login" {
		t.Fatalf("expected redirect to /login, got %q", location)
	}
}

func TestAuthGateAllowsValidToken(t *testing.T) {
	router, authService := newGateRouter(t)

	token, err := authService.IssueToken("admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/generate", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if resp.Body.String() != "admin" {
		t.Fatalf("expected claims username, got %q", resp.Body.String())
	}
}

func TestAuthGateRejectsInvalidToken(t *testing.T) {
	router, _ := newGateRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/generate", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "tampered"})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthGateExemptions(t *testing.T) {
	router, _ := newGateRouter(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/health"},
		{http.MethodPost, "/api/auth/login"},
	}
	for _, target := range paths {
		req := httptest.NewRequest(target.method, target.path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected exempt path %s to pass, got %d", target.path, resp.Code)
		}
	}
}
