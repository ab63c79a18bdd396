package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"employee-schedule/server/internal/dto"
	"employee-schedule/server/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoShifts     = errors.New("没有可导出的班次")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// 导出上限：避免单次导出拉垮数据库
const exportMaxRows = 10000

// ExportService 导出业务接口
//
// 设计说明：
//   - Excel 排班表以 bytes.Buffer 返回，由 Handler 层设置响应头后写入 Response
//   - ICS 日历仅包含调用者本人的班次，供日历客户端订阅
type ExportService interface {
	// ExportShifts 导出班次表为 Excel
	ExportShifts(ctx context.Context, req *dto.ShiftListRequest) (*bytes.Buffer, string, error)
	// MyCalendarICS 生成调用者本人班次的 iCalendar 内容
	MyCalendarICS(ctx context.Context, callerID string, from, to time.Time) (string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportShifts — 导出班次表为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单 Sheet "班次表"
//   - 列：员工 | 日期 | 开始 | 结束 | 岗位 | 地点
//   - 支持与列表接口相同的过滤条件（user_id / role / location / keyword）
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportShifts(ctx context.Context, req *dto.ShiftListRequest) (*bytes.Buffer, string, error) {
	filters := &repository.ShiftListFilters{
		UserID:   req.UserID,
		Role:     req.Role,
		Location: req.Location,
		Keyword:  req.Keyword,
	}

	shifts, _, err := s.repo.Shift.List(ctx, filters, 0, exportMaxRows)
	if err != nil {
		s.logger.Error("查询导出班次失败", zap.Error(err))
		return nil, "", err
	}
	if len(shifts) == 0 {
		return nil, "", ErrExportNoShifts
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "班次表"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 16)
	f.SetColWidth(sheetName, "B", "B", 12)
	f.SetColWidth(sheetName, "C", "D", 10)
	f.SetColWidth(sheetName, "E", "F", 16)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	headers := []string{"员工", "日期", "开始", "结束", "岗位", "地点"}
	for i, h := range headers {
		c := cell(colName(i), 1)
		f.SetCellValue(sheetName, c, h)
		f.SetCellStyle(sheetName, c, c, headerStyle)
	}

	row := 2
	for i := range shifts {
		sh := &shifts[i]

		owner := "未分配"
		if sh.User != nil {
			owner = sh.User.Username
		}

		f.SetCellValue(sheetName, cell("A", row), owner)
		f.SetCellValue(sheetName, cell("B", row), sh.StartTime.Format("2006-01-02"))
		f.SetCellValue(sheetName, cell("C", row), sh.StartTime.Format("15:04"))
		f.SetCellValue(sheetName, cell("D", row), sh.EndTime.Format("15:04"))
		f.SetCellValue(sheetName, cell("E", row), sh.Role)
		f.SetCellValue(sheetName, cell("F", row), sh.Location)
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("班次表_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

// MyCalendarICS 把调用者 [from, to) 区间内的班次序列化为 iCalendar (RFC 5545)
func (s *exportService) MyCalendarICS(ctx context.Context, callerID string, from, to time.Time) (string, error) {
	shifts, err := s.repo.Shift.ListByOwnerBetween(ctx, callerID, from, to)
	if err != nil {
		s.logger.Error("查询个人班次失败", zap.String("user_id", callerID), zap.Error(err))
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//employee-schedule//zh-CN")

	now := time.Now()
	for i := range shifts {
		sh := &shifts[i]

		ev := cal.AddEvent(sh.ShiftID + "@employee-schedule")
		ev.SetDtStampTime(now)
		ev.SetStartAt(sh.StartTime)
		ev.SetEndAt(sh.EndTime)

		summary := sh.Role
		if summary == "" {
			summary = "排班"
		}
		ev.SetSummary(summary)
		if sh.Location != "" {
			ev.SetLocation(sh.Location)
		}
	}

	return cal.Serialize(), nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
