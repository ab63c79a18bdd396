package handler

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"employee-schedule/server/internal/dto"
	"employee-schedule/server/internal/service"
	"employee-schedule/server/pkg/response"
)

// ICS 订阅默认时间窗：过去 30 天到未来 90 天
const (
	calendarLookBehind = 30 * 24 * time.Hour
	calendarLookAhead  = 90 * 24 * time.Hour
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportShifts 导出班次表
// GET /api/v1/export/shifts
func (h *ExportHandler) ExportShifts(c *gin.Context) {
	var req dto.ShiftListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	buf, filename, err := h.exportSvc.ExportShifts(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExportNoShifts):
			response.NotFound(c, 26001, "没有可导出的班次")
		default:
			response.InternalError(c)
		}
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// MyCalendar 本人班次 iCalendar 订阅
// GET /api/v1/shifts/my/calendar.ics
func (h *ExportHandler) MyCalendar(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	now := time.Now()
	content, err := h.exportSvc.MyCalendarICS(c.Request.Context(), callerID, now.Add(-calendarLookBehind), now.Add(calendarLookAhead))
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="my-shifts.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(content))
}
