package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/mayank0365/SlotSwapper/internal/dto"
	"github.com/mayank0365/SlotSwapper/internal/service"
	"github.com/mayank0365/SlotSwapper/pkg/response"
)

// EventHandler 个人日程 HTTP 处理器
type EventHandler struct {
	eventSvc service.EventService
}

// NewEventHandler 创建 EventHandler
func NewEventHandler(eventSvc service.EventService) *EventHandler {
	return &EventHandler{eventSvc: eventSvc}
}

// CreateEvent 创建时间段
// POST /api/v1/events
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req dto.CreateEventRequest
	if !bindJSON(c, &req) {
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	event, err := h.eventSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, event)
}

// ListEvents 获取我的时间段
// GET /api/v1/events
func (h *EventHandler) ListEvents(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	events, err := h.eventSvc.ListOwn(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, events)
}

// UpdateEvent 更新时间段（部分字段）
// PUT /api/v1/events/:id
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		handleError(c, service.ErrEventNotFound)
		return
	}

	var req dto.UpdateEventRequest
	if !bindJSON(c, &req) {
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	event, err := h.eventSvc.Update(c.Request.Context(), userID, id, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, event)
}

// DeleteEvent 删除时间段
// DELETE /api/v1/events/:id
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		handleError(c, service.ErrEventNotFound)
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.eventSvc.Delete(c.Request.Context(), userID, id); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, dto.DeleteEventResponse{ID: id, Message: "时间段已删除"})
}
