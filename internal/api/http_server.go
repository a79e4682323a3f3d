package api

import (
	"campaign/internal/config"
	"campaign/internal/metrics"
	"campaign/internal/service"
	"campaign/internal/storage"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// dbTimeout 单次请求的数据库操作上限
	dbTimeout = 5 * time.Second
	// uploadTimeout 包含照片上传到远端存储的请求上限
	uploadTimeout = 30 * time.Second
)

// HTTPHandler HTTP 请求处理器
type HTTPHandler struct {
	services       *service.Services
	storage        storage.Storage
	urls           storage.URLBuilder
	metrics        *metrics.Metrics
	loginLimiter   *limiterCache[string]
	candidateInput service.CandidateInput
}

// NewHTTPHandler 创建 HTTP 处理器实例
func NewHTTPHandler(cfg config.Config, services *service.Services, store storage.Storage, m *metrics.Metrics) *HTTPHandler {
	handler := &HTTPHandler{
		services:       services,
		storage:        store,
		urls:           storage.NewURLBuilder(cfg.StoragePublicBaseURL),
		metrics:        m,
		candidateInput: service.CandidateInput{EmailRequired: cfg.CandidateEmailRequired},
	}
	if cfg.LoginRatePerSecond > 0 {
		handler.loginLimiter = newLimiterCache[string](cfg.LoginRatePerSecond, cfg.LoginRateBurst)
	}
	return handler
}

// RegisterRoutes 注册全部路由
func (h *HTTPHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	if h.metrics != nil {
		r.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}

	// 本地存储时直接提供上传文件
	if localProvider, ok := h.storage.(storage.LocalBaseDirProvider); ok && !h.urls.IsRemote() {
		r.Static(h.urls.Base(), localProvider.LocalBaseDir())
	}

	apiGroup := r.Group("/api")
	apiGroup.GET("/health", h.Health)

	authGroup := apiGroup.Group("/auth")
	authGroup.POST("/login", h.LoginRateLimit(), h.Login)
	authGroup.GET("/verify", h.Verify)
	authGroup.POST("/logout", h.Logout)

	guard := h.AuthMiddleware()

	candidates := apiGroup.Group("/candidates")
	candidates.GET("", h.OptionalAuth(), h.ListCandidates)
	candidates.GET("/admin/all", guard, h.ListAllCandidates)
	candidates.GET("/admin/stats", guard, h.CandidateStats)
	candidates.GET("/:id", h.GetCandidate)
	candidates.POST("", guard, h.CreateCandidate)
	candidates.PUT("/:id", guard, h.UpdateCandidate)
	candidates.DELETE("/:id", guard, h.DeleteCandidate)

	registerContent(apiGroup.Group("/policies"), guard, policyResource(h.services.Policies))
	registerContent(apiGroup.Group("/basic_topics"), guard, basicTopicResource(h.services.BasicTopics))
	registerContent(apiGroup.Group("/faqs"), guard, faqResource(h.services.FAQs))
	registerContent(apiGroup.Group("/events"), guard, eventResource(h.services.Events))
}
