package api

import (
	"campaign/internal/auth"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	currentUserContextKey = "current-user"
)

// bearerToken 从 Authorization 头提取 Bearer Token
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// authenticate 校验 Token 并返回声明
func (h *HTTPHandler) authenticate(c *gin.Context) (*auth.Claims, bool) {
	token, ok := bearerToken(c)
	if !ok {
		return nil, false
	}
	claims, err := h.services.Auth.Verify(token)
	if err != nil {
		logrus.WithError(err).WithField("path", c.Request.URL.Path).Debug("rejected bearer token")
		return nil, false
	}
	return claims, true
}

// AuthMiddleware JWT 认证中间件
func (h *HTTPHandler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := h.authenticate(c)
		if !ok {
			Unauthorized(c)
			return
		}
		c.Set(currentUserContextKey, claims)
		c.Next()
	}
}

// OptionalAuth 有合法 Token 时附加用户信息，从不拒绝请求
func (h *HTTPHandler) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := h.authenticate(c); ok {
			c.Set(currentUserContextKey, claims)
		}
		c.Next()
	}
}

// CurrentUser 从上下文获取当前认证用户
func CurrentUser(c *gin.Context) *auth.Claims {
	value, exists := c.Get(currentUserContextKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

// LoginRateLimit 按客户端 IP 限制登录频率
func (h *HTTPHandler) LoginRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.loginLimiter == nil {
			c.Next()
			return
		}
		if !h.loginLimiter.get(c.ClientIP()).Allow() {
			h.metrics.ObserveLogin("rate_limited")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, APIError{
				Error: "Too many login attempts, please try again later",
				Code:  ErrCodeRateLimited,
			})
			return
		}
		c.Next()
	}
}
