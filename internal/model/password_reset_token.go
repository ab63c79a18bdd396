package model

import "time"

// PasswordResetToken 密码重置令牌表 — 对应 password_reset_tokens
// 每个用户同一时刻最多保留一个有效令牌（新申请时删除旧令牌）
type PasswordResetToken struct {
	ResetTokenID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"reset_token_id"`
	UserID       string    `gorm:"type:uuid;not null"                             json:"user_id"`
	Token        string    `gorm:"type:varchar(100);not null;uniqueIndex"         json:"-"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	ExpiresAt    time.Time `gorm:"not null"                                       json:"expires_at"`
	IsUsed       bool      `gorm:"not null;default:false"                         json:"is_used"`

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (PasswordResetToken) TableName() string { return "password_reset_tokens" }

// IsValid 令牌有效 = 未被使用且未过期
func (t *PasswordResetToken) IsValid(now time.Time) bool {
	return !t.IsUsed && now.Before(t.ExpiresAt)
}
