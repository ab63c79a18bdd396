package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"employee-schedule/server/internal/dto"
	"employee-schedule/server/internal/service"
	"employee-schedule/server/pkg/response"
)

// AvailabilityHandler 可用性模块 HTTP 处理器
type AvailabilityHandler struct {
	availSvc service.AvailabilityService
}

// NewAvailabilityHandler 创建 AvailabilityHandler
func NewAvailabilityHandler(availSvc service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availSvc: availSvc}
}

// ListAvailabilities 可用性列表
// GET /api/v1/availabilities
func (h *AvailabilityHandler) ListAvailabilities(c *gin.Context) {
	callerID, callerRole, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.AvailabilityListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	items, total, err := h.availSvc.List(c.Request.Context(), &req, callerID, callerRole)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, items, total, req.GetPage(), req.GetPageSize())
}

// GetAvailability 可用性详情
// GET /api/v1/availabilities/:id
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	callerID, callerRole, ok := MustGetCaller(c)
	if !ok {
		return
	}

	item, err := h.availSvc.GetByID(c.Request.Context(), c.Param("id"), callerID, callerRole)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.OK(c, item)
}

// CreateAvailability 创建可用性记录
// POST /api/v1/availabilities
func (h *AvailabilityHandler) CreateAvailability(c *gin.Context) {
	callerID, callerRole, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.CreateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	item, err := h.availSvc.Create(c.Request.Context(), &req, callerID, callerRole)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Created(c, item)
}

// UpdateAvailability 更新可用性记录
// PUT /api/v1/availabilities/:id
func (h *AvailabilityHandler) UpdateAvailability(c *gin.Context) {
	callerID, callerRole, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	item, err := h.availSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID, callerRole)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.OK(c, item)
}

// DeleteAvailability 删除可用性记录
// DELETE /api/v1/availabilities/:id
func (h *AvailabilityHandler) DeleteAvailability(c *gin.Context) {
	callerID, callerRole, ok := MustGetCaller(c)
	if !ok {
		return
	}

	if err := h.availSvc.Delete(c.Request.Context(), c.Param("id"), callerID, callerRole); err != nil {
		h.writeError(c, err)
		return
	}

	response.NoContent(c)
}

// writeError 可用性模块统一错误映射
func (h *AvailabilityHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAvailabilityNotFound):
		response.NotFound(c, 22001, "可用性记录不存在")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 20001, "用户不存在")
	case errors.Is(err, service.ErrNoPermission):
		response.Forbidden(c, 10003, "无权操作")
	default:
		response.InternalError(c)
	}
}
