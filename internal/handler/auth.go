package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/park285/exam-gen-server-go/internal/auth"
	"github.com/park285/exam-gen-server-go/internal/handler/shared"
)

// LoginRequest 는 로그인 요청 본문이다.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 는 로그인/로그아웃 응답 본문이다.
type LoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AuthHandler 는 로그인 인증 API 핸들러다.
type AuthHandler struct {
	service *auth.Service
	logger  *slog.Logger
}

// NewAuthHandler 는 인증 핸들러를 생성한다.
func NewAuthHandler(service *auth.Service, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{service: service, logger: logger}
}

// RegisterRoutes 는 인증 라우트를 등록한다.
func (h *AuthHandler) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/api/auth")
	group.POST("/login", h.handleLogin)
	group.POST("/logout", h.handleLogout)
}

func (h *AuthHandler) handleLogin(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.service.VerifyCredentials(req.Username, req.Password); err != nil {
		c.JSON(http.StatusUnauthorized, LoginResponse{
			Success: false,
			Message: "아이디 또는 비밀번호가 올바르지 않습니다.",
		})
		return
	}

	token, err := h.service.IssueToken(req.Username)
	if err != nil {
		shared.LogError(h.logger, "auth", err)
		writeError(c, err)
		return
	}

	h.setAuthCookie(c, token, int(h.service.TokenTTL().Seconds()))
	c.JSON(http.StatusOK, LoginResponse{Success: true, Message: "로그인 성공"})
}

func (h *AuthHandler) handleLogout(c *gin.Context) {
	h.setAuthCookie(c, "", -1)
	c.JSON(http.StatusOK, LoginResponse{Success: true, Message: "로그아웃 되었습니다."})
}

func (h *AuthHandler) setAuthCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(auth.CookieName, token, maxAge, "/", "", h.service.CookieSecure(), true)
}
