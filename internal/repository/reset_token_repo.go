package repository

import (
	"context"

	"gorm.io/gorm"

	"employee-schedule/server/internal/model"
)

// ResetTokenRepository 密码重置令牌数据访问接口
type ResetTokenRepository interface {
	Create(ctx context.Context, t *model.PasswordResetToken) error
	GetByToken(ctx context.Context, token string) (*model.PasswordResetToken, error)
	DeleteByUser(ctx context.Context, userID string) error
	// ConsumeAndSetPassword 在同一事务内把令牌标记为已使用并写入新密码哈希。
	// 任一更新失败则整体回滚，不允许出现"密码已改但令牌仍可用"的中间状态。
	ConsumeAndSetPassword(ctx context.Context, tokenID, userID, passwordHash string) error
}

type resetTokenRepo struct {
	db *gorm.DB
}

// NewResetTokenRepo 创建 ResetTokenRepository 实例
func NewResetTokenRepo(db *gorm.DB) ResetTokenRepository {
	return &resetTokenRepo{db: db}
}

func (r *resetTokenRepo) Create(ctx context.Context, t *model.PasswordResetToken) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *resetTokenRepo) GetByToken(ctx context.Context, token string) (*model.PasswordResetToken, error) {
	var t model.PasswordResetToken
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteByUser 删除用户名下全部令牌（保证单一有效令牌）
func (r *resetTokenRepo) DeleteByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.PasswordResetToken{}).Error
}

func (r *resetTokenRepo) ConsumeAndSetPassword(ctx context.Context, tokenID, userID, passwordHash string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.PasswordResetToken{}).
			Where("reset_token_id = ?", tokenID).
			Update("is_used", true).Error; err != nil {
			return err
		}
		return tx.Model(&model.User{}).
			Where("user_id = ?", userID).
			Update("password_hash", passwordHash).Error
	})
}
