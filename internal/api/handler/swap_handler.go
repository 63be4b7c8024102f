package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/mayank0365/SlotSwapper/internal/dto"
	"github.com/mayank0365/SlotSwapper/internal/service"
	"github.com/mayank0365/SlotSwapper/pkg/response"
)

// SwapHandler 换班市场与协商 HTTP 处理器
type SwapHandler struct {
	marketSvc service.MarketplaceService
	swapSvc   service.SwapService
}

// NewSwapHandler 创建 SwapHandler
func NewSwapHandler(marketSvc service.MarketplaceService, swapSvc service.SwapService) *SwapHandler {
	return &SwapHandler{marketSvc: marketSvc, swapSvc: swapSvc}
}

// ListSwappable 浏览他人可交换的时间段
// GET /api/v1/swappable-slots
func (h *SwapHandler) ListSwappable(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	slots, err := h.marketSvc.ListSwappable(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, slots)
}

// CreateSwapRequest 发起换班申请
// POST /api/v1/swap-request
func (h *SwapHandler) CreateSwapRequest(c *gin.Context) {
	var req dto.CreateSwapRequest
	if !bindJSON(c, &req) {
		return
	}
	if !isValidID(req.MySlotID) || !isValidID(req.TheirSlotID) {
		handleError(c, service.ErrSwapSlotNotFound)
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.swapSvc.CreateRequest(c.Request.Context(), userID, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, result)
}

// RespondSwapRequest 接受 / 拒绝换班申请
// POST /api/v1/swap-response/:id
func (h *SwapHandler) RespondSwapRequest(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		handleError(c, service.ErrSwapRequestNotFound)
		return
	}

	var req dto.RespondSwapRequest
	if !bindJSON(c, &req) {
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.swapSvc.Respond(c.Request.Context(), userID, id, *req.Accepted)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, result)
}

// ListIncoming 我收到的换班申请
// GET /api/v1/swap-requests/incoming
func (h *SwapHandler) ListIncoming(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, err := h.swapSvc.ListIncoming(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, list)
}

// ListOutgoing 我发出的换班申请
// GET /api/v1/swap-requests/outgoing
func (h *SwapHandler) ListOutgoing(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, err := h.swapSvc.ListOutgoing(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, list)
}
