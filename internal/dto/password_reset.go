package dto

// ── 密码重置模块 DTO ──

// ResetRequestRequest 申请密码重置
type ResetRequestRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetConfirmRequest 确认密码重置
type ResetConfirmRequest struct {
	Token           string `json:"token"            binding:"required"`
	NewPassword     string `json:"new_password"     binding:"required,min=8,max=72"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
}
