package dto

// ── 可用性模块 DTO ──

// AvailabilityListRequest 可用性列表查询参数
type AvailabilityListRequest struct {
	PaginationRequest
	UserID      string `form:"user_id"      binding:"omitempty,uuid"`
	Date        string `form:"date"         binding:"omitempty,datetime=2006-01-02"`
	IsAvailable *bool  `form:"is_available"`
}

// CreateAvailabilityRequest 创建可用性请求
// user_id 缺省时归属调用者本人；非管理角色只能为本人创建
type CreateAvailabilityRequest struct {
	UserID      *string `json:"user_id"      binding:"omitempty,uuid"`
	Date        string  `json:"date"         binding:"required,datetime=2006-01-02"`
	IsAvailable *bool   `json:"is_available"`
}

// UpdateAvailabilityRequest 更新可用性请求（仅更新非 nil 字段）
type UpdateAvailabilityRequest struct {
	Date        *string `json:"date"         binding:"omitempty,datetime=2006-01-02"`
	IsAvailable *bool   `json:"is_available"`
}

// AvailabilityResponse 可用性读视图
type AvailabilityResponse struct {
	ID          string        `json:"id"`
	User        *UserResponse `json:"user"`
	Date        string        `json:"date"` // YYYY-MM-DD
	IsAvailable bool          `json:"is_available"`
}
