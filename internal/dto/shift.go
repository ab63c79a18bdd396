package dto

import "time"

// ── 班次模块 DTO ──
//
// 读写双形：读视图嵌套归属用户对象，写入仅接受裸 ID。

// ShiftListRequest 班次列表查询参数
type ShiftListRequest struct {
	PaginationRequest
	UserID   string `form:"user_id"  binding:"omitempty,uuid"`
	Role     string `form:"role"     binding:"omitempty,max=100"`
	Location string `form:"location" binding:"omitempty,max=100"`
	Keyword  string `form:"keyword"  binding:"omitempty,max=100"` // 按岗位/地点模糊匹配
}

// CreateShiftRequest 创建班次请求（admin/manager）
type CreateShiftRequest struct {
	UserID    *string   `json:"user_id"    binding:"omitempty,uuid"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time"   binding:"required"`
	Role      string    `json:"role"       binding:"required,max=100"`
	Location  string    `json:"location"   binding:"required,max=100"`
}

// UpdateShiftRequest 更新班次请求（仅更新非 nil 字段）
type UpdateShiftRequest struct {
	UserID    *string    `json:"user_id"    binding:"omitempty,uuid"`
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Role      *string    `json:"role"       binding:"omitempty,max=100"`
	Location  *string    `json:"location"   binding:"omitempty,max=100"`
}

// AssignUserRequest 指派班次归属请求
type AssignUserRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

// ShiftResponse 班次读视图
type ShiftResponse struct {
	ID        string        `json:"id"`
	User      *UserResponse `json:"user"` // 未分配时为 null
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Role      string        `json:"role"`
	Location  string        `json:"location"`
}
