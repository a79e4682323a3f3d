package api

import (
	"campaign/internal/entity"
	"campaign/internal/service"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// contentResource 描述一种按 display_order 排序的内容资源
type contentResource[T any, U service.Patch] struct {
	svc         *service.Collection[T, U]
	singular    string // 错误消息中的单数名，如 "policy"
	plural      string // 列表错误消息中的复数名，如 "policies"
	decode      func(service.Fields) (*T, error)
	decodePatch func(service.Fields) (U, error)
}

func policyResource(svc *service.PolicyService) contentResource[entity.Policy, entity.TopicUpdates] {
	return contentResource[entity.Policy, entity.TopicUpdates]{
		svc:      svc,
		singular: "policy",
		plural:   "policies",
		decode: func(fields service.Fields) (*entity.Policy, error) {
			topic, active, err := service.DecodeTopic(fields)
			if err != nil {
				return nil, err
			}
			return &entity.Policy{TopicFields: topic, IsActive: active}, nil
		},
		decodePatch: service.DecodeTopicUpdates,
	}
}

func basicTopicResource(svc *service.BasicTopicService) contentResource[entity.BasicTopic, entity.TopicUpdates] {
	return contentResource[entity.BasicTopic, entity.TopicUpdates]{
		svc:      svc,
		singular: "basic topic",
		plural:   "basic topics",
		decode: func(fields service.Fields) (*entity.BasicTopic, error) {
			topic, active, err := service.DecodeTopic(fields)
			if err != nil {
				return nil, err
			}
			return &entity.BasicTopic{TopicFields: topic, IsActive: active}, nil
		},
		decodePatch: service.DecodeTopicUpdates,
	}
}

func faqResource(svc *service.FAQService) contentResource[entity.FAQ, entity.FAQUpdates] {
	return contentResource[entity.FAQ, entity.FAQUpdates]{
		svc:         svc,
		singular:    "FAQ",
		plural:      "FAQs",
		decode:      service.DecodeFAQ,
		decodePatch: service.DecodeFAQUpdates,
	}
}

func eventResource(svc *service.EventService) contentResource[entity.Event, entity.EventUpdates] {
	return contentResource[entity.Event, entity.EventUpdates]{
		svc:         svc,
		singular:    "event",
		plural:      "events",
		decode:      service.DecodeEvent,
		decodePatch: service.DecodeEventUpdates,
	}
}

// registerContent 挂载公开读接口与受保护的写接口
func registerContent[T any, U service.Patch](g *gin.RouterGroup, guard gin.HandlerFunc, res contentResource[T, U]) {
	g.GET("", res.list(true))
	g.GET("/admin/all", guard, res.list(false))
	g.GET("/:id", res.get)
	g.POST("", guard, res.create)
	g.PUT("/:id", guard, res.update)
	g.DELETE("/:id", guard, res.remove)
}

func (res contentResource[T, U]) notFound(c *gin.Context) {
	NotFound(c, res.svc.Resource()+" not found")
}

func (res contentResource[T, U]) list(activeOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
		defer cancel()

		rows, err := res.svc.List(ctx, activeOnly)
		if err != nil {
			respondError(c, err, "Failed to fetch "+res.plural)
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

func (res contentResource[T, U]) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		res.notFound(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	row, err := res.svc.Get(ctx, id)
	if err != nil {
		respondError(c, err, "Failed to fetch "+res.singular)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (res contentResource[T, U]) create(c *gin.Context) {
	fields, err := readContentFields(c)
	if err != nil {
		respondRequestError(c, err)
		return
	}
	row, err := res.decode(fields)
	if err != nil {
		respondError(c, err, "Failed to create "+res.singular)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	created, err := res.svc.Create(ctx, row)
	if err != nil {
		respondError(c, err, "Failed to create "+res.singular)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (res contentResource[T, U]) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		res.notFound(c)
		return
	}
	fields, err := readContentFields(c)
	if err != nil {
		respondRequestError(c, err)
		return
	}
	patch, err := res.decodePatch(fields)
	if err != nil {
		respondError(c, err, "Failed to update "+res.singular)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	updated, err := res.svc.Update(ctx, id, patch)
	if err != nil {
		respondError(c, err, "Failed to update "+res.singular)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (res contentResource[T, U]) remove(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		res.notFound(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	if err := res.svc.Delete(ctx, id); err != nil {
		respondError(c, err, "Failed to delete "+res.singular)
		return
	}
	c.JSON(http.StatusOK, entity.StatusResponse{Success: true, Message: res.svc.Resource() + " deleted successfully"})
}
