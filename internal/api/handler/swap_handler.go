package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"employee-schedule/server/internal/dto"
	"employee-schedule/server/internal/service"
	"employee-schedule/server/pkg/response"
)

// SwapHandler 换班模块 HTTP 处理器
// accept/reject 的接班人校验在 Service 层完成
type SwapHandler struct {
	swapSvc service.SwapService
}

// NewSwapHandler 创建 SwapHandler
func NewSwapHandler(swapSvc service.SwapService) *SwapHandler {
	return &SwapHandler{swapSvc: swapSvc}
}

// ListSwaps 换班列表
// GET /api/v1/shift-swaps
func (h *SwapHandler) ListSwaps(c *gin.Context) {
	callerID, callerRole, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.SwapListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	items, total, err := h.swapSvc.List(c.Request.Context(), &req, callerID, callerRole)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, items, total, req.GetPage(), req.GetPageSize())
}

// GetSwap 换班详情
// GET /api/v1/shift-swaps/:id
func (h *SwapHandler) GetSwap(c *gin.Context) {
	callerID, callerRole, ok := MustGetCaller(c)
	if !ok {
		return
	}

	item, err := h.swapSvc.GetByID(c.Request.Context(), c.Param("id"), callerID, callerRole)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.OK(c, item)
}

// CreateSwap 发起换班申请
// POST /api/v1/shift-swaps
func (h *SwapHandler) CreateSwap(c *gin.Context) {
	callerID, callerRole, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.CreateSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	item, err := h.swapSvc.Create(c.Request.Context(), &req, callerID, callerRole)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Created(c, item)
}

// DeleteSwap 撤回换班申请
// DELETE /api/v1/shift-swaps/:id
func (h *SwapHandler) DeleteSwap(c *gin.Context) {
	callerID, callerRole, ok := MustGetCaller(c)
	if !ok {
		return
	}

	if err := h.swapSvc.Delete(c.Request.Context(), c.Param("id"), callerID, callerRole); err != nil {
		h.writeError(c, err)
		return
	}

	response.NoContent(c)
}

// AcceptSwap 接受换班申请（班次归属随之转移）
// POST /api/v1/shift-swaps/:id/accept
func (h *SwapHandler) AcceptSwap(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	item, err := h.swapSvc.Accept(c.Request.Context(), c.Param("id"), callerID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.OK(c, item)
}

// RejectSwap 拒绝换班申请
// POST /api/v1/shift-swaps/:id/reject
func (h *SwapHandler) RejectSwap(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	item, err := h.swapSvc.Reject(c.Request.Context(), c.Param("id"), callerID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.OK(c, item)
}

// writeError 换班模块统一错误映射
func (h *SwapHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSwapNotFound):
		response.NotFound(c, 24001, "换班申请不存在")
	case errors.Is(err, service.ErrNotSwapRecipient):
		response.Forbidden(c, 24002, "只能处理指派给自己的换班申请")
	case errors.Is(err, service.ErrSwapAlreadyHandled):
		response.Conflict(c, 24003, "换班申请已处理")
	case errors.Is(err, service.ErrShiftNotFound):
		response.NotFound(c, 21001, "班次不存在")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 20001, "用户不存在")
	case errors.Is(err, service.ErrNoPermission):
		response.Forbidden(c, 10003, "无权操作")
	default:
		response.InternalError(c)
	}
}
