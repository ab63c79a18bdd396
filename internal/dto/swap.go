package dto

// ── 换班模块 DTO ──

// SwapListRequest 换班列表查询参数
type SwapListRequest struct {
	PaginationRequest
	Status     string `form:"status"       binding:"omitempty,oneof=pending approved rejected"`
	FromUserID string `form:"from_user_id" binding:"omitempty,uuid"`
	ToUserID   string `form:"to_user_id"   binding:"omitempty,uuid"`
}

// CreateSwapRequest 发起换班申请请求
// from_user_id 缺省时为调用者本人；非管理角色不得以他人名义发起
type CreateSwapRequest struct {
	ShiftID    string  `json:"shift_id"     binding:"required,uuid"`
	FromUserID *string `json:"from_user_id" binding:"omitempty,uuid"`
	ToUserID   *string `json:"to_user_id"   binding:"omitempty,uuid"`
}

// ShiftSwapResponse 换班申请读视图
type ShiftSwapResponse struct {
	ID       string         `json:"id"`
	Shift    *ShiftResponse `json:"shift"`
	FromUser *UserResponse  `json:"from_user"`
	ToUser   *UserResponse  `json:"to_user"` // 未指定接班人时为 null
	Status   string         `json:"status"`
}
