package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"employee-schedule/server/internal/dto"
	"employee-schedule/server/internal/service"
	"employee-schedule/server/pkg/response"
)

// PasswordResetHandler 密码重置 HTTP 处理器（无需认证，路由层限流）
type PasswordResetHandler struct {
	resetSvc service.PasswordResetService
}

// NewPasswordResetHandler 创建 PasswordResetHandler
func NewPasswordResetHandler(resetSvc service.PasswordResetService) *PasswordResetHandler {
	return &PasswordResetHandler{resetSvc: resetSvc}
}

// RequestReset 申请密码重置
// POST /api/v1/password-reset/request
//
// 无论邮箱是否注册都返回同一成功响应，防止枚举
func (h *PasswordResetHandler) RequestReset(c *gin.Context) {
	var req dto.ResetRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.resetSvc.Request(c.Request.Context(), &req); err != nil {
		if errors.Is(err, service.ErrResetMailDelivery) {
			response.Error(c, http.StatusInternalServerError, 25003, "重置邮件发送失败，请稍后重试")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"message": "如果该邮箱已注册，重置链接将发送至邮箱"})
}

// ConfirmReset 确认密码重置
// POST /api/v1/password-reset/confirm
func (h *PasswordResetHandler) ConfirmReset(c *gin.Context) {
	var req dto.ResetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.resetSvc.Confirm(c.Request.Context(), &req); err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordMismatch):
			response.BadRequest(c, 25001, "两次输入的密码不一致")
		case errors.Is(err, service.ErrResetTokenInvalid):
			response.BadRequest(c, 25002, "重置链接无效或已过期")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}
