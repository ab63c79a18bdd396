package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"employee-schedule/server/internal/dto"
	"employee-schedule/server/internal/service"
	"employee-schedule/server/pkg/response"
)

// PTOHandler 请假模块 HTTP 处理器
// 审批路由由路由层 RoleAuth(admin, manager) 限定
type PTOHandler struct {
	ptoSvc service.PTOService
}

// NewPTOHandler 创建 PTOHandler
func NewPTOHandler(ptoSvc service.PTOService) *PTOHandler {
	return &PTOHandler{ptoSvc: ptoSvc}
}

// ListPTORequests 请假列表
// GET /api/v1/pto-requests
func (h *PTOHandler) ListPTORequests(c *gin.Context) {
	callerID, callerRole, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.PTOListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	items, total, err := h.ptoSvc.List(c.Request.Context(), &req, callerID, callerRole)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, items, total, req.GetPage(), req.GetPageSize())
}

// GetPTORequest 请假详情
// GET /api/v1/pto-requests/:id
func (h *PTOHandler) GetPTORequest(c *gin.Context) {
	callerID, callerRole, ok := MustGetCaller(c)
	if !ok {
		return
	}

	item, err := h.ptoSvc.GetByID(c.Request.Context(), c.Param("id"), callerID, callerRole)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.OK(c, item)
}

// CreatePTORequest 创建请假申请
// POST /api/v1/pto-requests
func (h *PTOHandler) CreatePTORequest(c *gin.Context) {
	callerID, callerRole, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.CreatePTORequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	item, err := h.ptoSvc.Create(c.Request.Context(), &req, callerID, callerRole)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Created(c, item)
}

// UpdatePTORequest 更新请假申请
// PUT /api/v1/pto-requests/:id
func (h *PTOHandler) UpdatePTORequest(c *gin.Context) {
	callerID, callerRole, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.UpdatePTORequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	item, err := h.ptoSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID, callerRole)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.OK(c, item)
}

// DeletePTORequest 删除请假申请
// DELETE /api/v1/pto-requests/:id
func (h *PTOHandler) DeletePTORequest(c *gin.Context) {
	callerID, callerRole, ok := MustGetCaller(c)
	if !ok {
		return
	}

	if err := h.ptoSvc.Delete(c.Request.Context(), c.Param("id"), callerID, callerRole); err != nil {
		h.writeError(c, err)
		return
	}

	response.NoContent(c)
}

// ApprovePTORequest 批准请假申请
// POST /api/v1/pto-requests/:id/approve
func (h *PTOHandler) ApprovePTORequest(c *gin.Context) {
	callerRole, ok := MustGetRole(c)
	if !ok {
		return
	}

	item, err := h.ptoSvc.Approve(c.Request.Context(), c.Param("id"), callerRole)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.OK(c, item)
}

// RejectPTORequest 驳回请假申请
// POST /api/v1/pto-requests/:id/reject
func (h *PTOHandler) RejectPTORequest(c *gin.Context) {
	callerRole, ok := MustGetRole(c)
	if !ok {
		return
	}

	item, err := h.ptoSvc.Reject(c.Request.Context(), c.Param("id"), callerRole)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.OK(c, item)
}

// writeError 请假模块统一错误映射
func (h *PTOHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPTONotFound):
		response.NotFound(c, 23001, "请假申请不存在")
	case errors.Is(err, service.ErrPTODateOrder):
		response.BadRequest(c, 23002, "请假结束日期不能早于开始日期")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 20001, "用户不存在")
	case errors.Is(err, service.ErrNoPermission):
		response.Forbidden(c, 10003, "无权操作")
	default:
		response.InternalError(c)
	}
}
