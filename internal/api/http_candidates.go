package api

import (
	"campaign/internal/entity"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListCandidates 公开列表：匿名访问只返回启用的候选人；携带管理员 Token 时返回全部，除非指定 ?active=true
func (h *HTTPHandler) ListCandidates(c *gin.Context) {
	activeOnly := CurrentUser(c) == nil || c.Query("active") == "true"
	h.listCandidates(c, activeOnly)
}

// ListAllCandidates 管理端列表，包含停用的候选人
func (h *HTTPHandler) ListAllCandidates(c *gin.Context) {
	h.listCandidates(c, false)
}

func (h *HTTPHandler) listCandidates(c *gin.Context, activeOnly bool) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	candidates, err := h.services.Candidates.List(ctx, activeOnly)
	if err != nil {
		respondError(c, err, "Failed to fetch candidates")
		return
	}
	c.JSON(http.StatusOK, candidates)
}

// CandidateStats 候选人统计
func (h *HTTPHandler) CandidateStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	stats, err := h.services.Candidates.Stats(ctx)
	if err != nil {
		respondError(c, err, "Failed to fetch statistics")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetCandidate 按 ID 获取候选人，不区分启用状态
func (h *HTTPHandler) GetCandidate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		NotFound(c, "Candidate not found")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	candidate, err := h.services.Candidates.Get(ctx, id)
	if err != nil {
		respondError(c, err, "Failed to fetch candidate")
		return
	}
	c.JSON(http.StatusOK, candidate)
}

// CreateCandidate 创建候选人，可附带照片
func (h *HTTPHandler) CreateCandidate(c *gin.Context) {
	fields, photo, err := h.readCandidateFields(c)
	if err != nil {
		respondRequestError(c, err)
		return
	}
	candidate, err := h.candidateInput.DecodeCandidate(fields)
	if err != nil {
		respondError(c, err, "Failed to create candidate")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), uploadTimeout)
	defer cancel()

	created, err := h.services.Candidates.Create(ctx, candidate, photo)
	if err != nil {
		respondError(c, err, "Failed to create candidate")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateCandidate 稀疏更新候选人，新照片会替换旧照片
func (h *HTTPHandler) UpdateCandidate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		NotFound(c, "Candidate not found")
		return
	}
	fields, photo, err := h.readCandidateFields(c)
	if err != nil {
		respondRequestError(c, err)
		return
	}
	patch, err := h.candidateInput.DecodeCandidateUpdates(fields)
	if err != nil {
		respondError(c, err, "Failed to update candidate")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), uploadTimeout)
	defer cancel()

	// 旧照片清理失败已在服务层记录，不影响响应
	updated, _, err := h.services.Candidates.Update(ctx, id, patch, photo)
	if err != nil {
		respondError(c, err, "Failed to update candidate")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteCandidate 删除候选人及其照片
func (h *HTTPHandler) DeleteCandidate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		NotFound(c, "Candidate not found")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), uploadTimeout)
	defer cancel()

	if _, err := h.services.Candidates.Delete(ctx, id); err != nil {
		respondError(c, err, "Failed to delete candidate")
		return
	}
	c.JSON(http.StatusOK, entity.StatusResponse{Success: true, Message: "Candidate deleted successfully"})
}
