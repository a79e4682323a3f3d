package api

import (
	"campaign/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// 错误码定义
const (
	ErrCodeInvalidRequest     = "ERR_INVALID_REQUEST"
	ErrCodeValidation         = "ERR_VALIDATION"
	ErrCodeNoFields           = "ERR_NO_FIELDS"
	ErrCodeInvalidFile        = "ERR_INVALID_FILE"
	ErrCodePayloadTooLarge    = "ERR_PAYLOAD_TOO_LARGE"
	ErrCodeUnauthorized       = "ERR_UNAUTHORIZED"
	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	ErrCodeNotFound           = "ERR_NOT_FOUND"
	ErrCodeRateLimited        = "ERR_RATE_LIMITED"
	ErrCodeInternalError      = "ERR_INTERNAL_ERROR"
)

// APIError 统一的 API 错误响应结构
type APIError struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// ValidationErrors 字段级校验失败响应
type ValidationErrors struct {
	Errors []service.FieldError `json:"errors"`
}

// ErrorResponse 返回统一格式的错误响应
func ErrorResponse(c *gin.Context, status int, code string, message string) {
	c.JSON(status, APIError{
		Error: message,
		Code:  code,
	})
}

// BadRequest 400 错误请求
func BadRequest(c *gin.Context, code string, message string) {
	ErrorResponse(c, http.StatusBadRequest, code, message)
}

// Unauthorized 401 未授权，所有鉴权失败使用同一消息
func Unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{
		Error: "Unauthorized",
		Code:  ErrCodeUnauthorized,
	})
}

// NotFound 404 资源不存在
func NotFound(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, ErrCodeNotFound, message)
}

// InternalError 500 服务器内部错误
func InternalError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, ErrCodeInternalError, message)
}

// InvalidPayload 无效的请求体
func InvalidPayload(c *gin.Context) {
	BadRequest(c, ErrCodeInvalidRequest, "Invalid request payload")
}

// ValidationFailed 400 返回全部字段错误
func ValidationFailed(c *gin.Context, fields []service.FieldError) {
	c.JSON(http.StatusBadRequest, ValidationErrors{Errors: fields})
}

// respondError 将服务层错误映射为 HTTP 响应；未知错误只记录日志，客户端收到 fallback 消息
func respondError(c *gin.Context, err error, fallback string) {
	var (
		verr  *service.ValidationError
		nferr *service.NotFoundError
		ferr  *service.FileError
	)
	switch {
	case errors.As(err, &verr):
		ValidationFailed(c, verr.Fields)
	case errors.Is(err, service.ErrNoFieldsToUpdate):
		BadRequest(c, ErrCodeNoFields, "No fields to update")
	case errors.As(err, &nferr):
		NotFound(c, nferr.Resource+" not found")
	case errors.As(err, &ferr):
		BadRequest(c, ErrCodeInvalidFile, ferr.Reason)
	case errors.Is(err, service.ErrInvalidCredentials):
		ErrorResponse(c, http.StatusUnauthorized, ErrCodeInvalidCredentials, "Invalid credentials")
	default:
		logrus.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Error(fallback)
		InternalError(c, fallback)
	}
}
