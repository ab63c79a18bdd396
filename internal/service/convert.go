package service

import (
	"time"

	"employee-schedule/server/internal/dto"
	"employee-schedule/server/internal/model"
)

// ── 模型 → 读视图转换 ──
//
// 读视图把归属引用展开为嵌套对象；写入侧只接受裸 ID。

const dateLayout = "2006-01-02"

func toUserResponse(u *model.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:       u.UserID,
		Username: u.Username,
		Email:    u.Email,
		Role:     string(u.Role),
	}
}

func toShiftResponse(s *model.Shift) *dto.ShiftResponse {
	if s == nil {
		return nil
	}
	return &dto.ShiftResponse{
		ID:        s.ShiftID,
		User:      toUserResponse(s.User),
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Role:      s.Role,
		Location:  s.Location,
	}
}

func toAvailabilityResponse(a *model.Availability) *dto.AvailabilityResponse {
	if a == nil {
		return nil
	}
	return &dto.AvailabilityResponse{
		ID:          a.AvailabilityID,
		User:        toUserResponse(a.User),
		Date:        a.Date.Format(dateLayout),
		IsAvailable: a.IsAvailable,
	}
}

func toPTOResponse(p *model.PTORequest) *dto.PTOResponse {
	if p == nil {
		return nil
	}
	return &dto.PTOResponse{
		ID:        p.PTORequestID,
		User:      toUserResponse(p.User),
		StartDate: p.StartDate.Format(dateLayout),
		EndDate:   p.EndDate.Format(dateLayout),
		Type:      p.Type,
		Status:    p.Status,
		Reason:    p.Reason,
	}
}

func toSwapResponse(s *model.ShiftSwap) *dto.ShiftSwapResponse {
	if s == nil {
		return nil
	}
	return &dto.ShiftSwapResponse{
		ID:       s.ShiftSwapID,
		Shift:    toShiftResponse(s.Shift),
		FromUser: toUserResponse(s.FromUser),
		ToUser:   toUserResponse(s.ToUser),
		Status:   s.Status,
	}
}

// parseDate 解析 YYYY-MM-DD（绑定层已校验格式）
func parseDate(s string) time.Time {
	t, _ := time.Parse(dateLayout, s)
	return t
}
