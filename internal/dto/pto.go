package dto

// ── 请假模块 DTO ──

// PTOListRequest 请假列表查询参数
type PTOListRequest struct {
	PaginationRequest
	UserID string `form:"user_id" binding:"omitempty,uuid"`
	Status string `form:"status"  binding:"omitempty,oneof=pending approved rejected"`
	Type   string `form:"type"    binding:"omitempty,oneof=vacation sick other"`
}

// CreatePTORequest 创建请假申请请求
// user_id 缺省时归属调用者本人；非管理角色只能为本人申请
type CreatePTORequest struct {
	UserID    *string `json:"user_id"    binding:"omitempty,uuid"`
	StartDate string  `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string  `json:"end_date"   binding:"required,datetime=2006-01-02"`
	Type      string  `json:"type"       binding:"required,oneof=vacation sick other"`
	Reason    string  `json:"reason"     binding:"omitempty,max=2000"`
}

// UpdatePTORequest 更新请假申请请求（仅更新非 nil 字段）
type UpdatePTORequest struct {
	StartDate *string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date"   binding:"omitempty,datetime=2006-01-02"`
	Type      *string `json:"type"       binding:"omitempty,oneof=vacation sick other"`
	Reason    *string `json:"reason"     binding:"omitempty,max=2000"`
}

// PTOResponse 请假申请读视图
type PTOResponse struct {
	ID        string        `json:"id"`
	User      *UserResponse `json:"user"`
	StartDate string        `json:"start_date"` // YYYY-MM-DD
	EndDate   string        `json:"end_date"`   // YYYY-MM-DD
	Type      string        `json:"type"`
	Status    string        `json:"status"`
	Reason    string        `json:"reason"`
}
