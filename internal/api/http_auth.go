package api

import (
	"campaign/internal/entity"
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Login 管理员登录，签发 JWT
func (h *HTTPHandler) Login(c *gin.Context) {
	var req entity.AuthLoginRequest
	if err := c.ShouldBind(&req); err != nil && !errors.Is(err, io.EOF) {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	resp, err := h.services.Auth.Login(ctx, req)
	if err != nil {
		respondError(c, err, "Login failed")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Verify 校验 Token，失败时只返回 valid=false
func (h *HTTPHandler) Verify(c *gin.Context) {
	claims, ok := h.authenticate(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, entity.AuthVerifyResponse{Valid: false})
		return
	}
	c.JSON(http.StatusOK, entity.AuthVerifyResponse{
		Valid: true,
		User: &entity.UserSummary{
			ID:       claims.UserID,
			Username: claims.Username,
			Email:    claims.Email,
		},
	})
}

// Logout 无状态登出，由客户端丢弃 Token
func (h *HTTPHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, entity.StatusResponse{Success: true, Message: "Logged out successfully"})
}

// Health 健康检查
func (h *HTTPHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
