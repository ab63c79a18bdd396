package dto

// ── 用户模块 DTO ──

// UserListRequest 用户列表查询参数
type UserListRequest struct {
	PaginationRequest
	Keyword string `form:"keyword" binding:"omitempty,max=100"` // 按用户名/邮箱模糊匹配
	Role    string `form:"role"    binding:"omitempty,oneof=admin manager employee"`
}

// CreateUserRequest 创建用户请求（仅 admin）
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=150"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Role     string `json:"role"     binding:"omitempty,oneof=admin manager employee"`
}

// UpdateUserRequest 更新用户请求（仅 admin；仅更新非 nil 字段）
type UpdateUserRequest struct {
	Username *string `json:"username" binding:"omitempty,min=3,max=150"`
	Email    *string `json:"email"    binding:"omitempty,email"`
	Role     *string `json:"role"     binding:"omitempty,oneof=admin manager employee"`
}
