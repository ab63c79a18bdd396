package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"employee-schedule/server/config"
	"employee-schedule/server/internal/dto"
	"employee-schedule/server/internal/model"
	"employee-schedule/server/internal/repository"
	"employee-schedule/server/pkg/mailer"
)

// ── 密码重置模块业务错误 ──

var (
	ErrPasswordMismatch  = errors.New("两次输入的密码不一致")
	ErrResetTokenInvalid = errors.New("重置链接无效或已过期")
	ErrResetMailDelivery = errors.New("重置邮件发送失败，请稍后重试")
)

// PasswordResetService 密码重置业务接口
// Request 对未注册邮箱同样返回成功，不暴露邮箱是否存在
type PasswordResetService interface {
	Request(ctx context.Context, req *dto.ResetRequestRequest) error
	Confirm(ctx context.Context, req *dto.ResetConfirmRequest) error
}

type passwordResetService struct {
	cfg    *config.Config
	repo   *repository.Repository
	mail   mailer.Mailer
	logger *zap.Logger
	now    func() time.Time
}

// NewPasswordResetService 创建 PasswordResetService 实例
func NewPasswordResetService(cfg *config.Config, repo *repository.Repository, mail mailer.Mailer, logger *zap.Logger) PasswordResetService {
	return &passwordResetService{cfg: cfg, repo: repo, mail: mail, logger: logger, now: time.Now}
}

func (s *passwordResetService) Request(ctx context.Context, req *dto.ResetRequestRequest) error {
	user, err := s.repo.User.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 邮箱未注册：静默返回成功，防止邮箱枚举
			return nil
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return err
	}

	token, err := generateResetToken()
	if err != nil {
		s.logger.Error("生成重置令牌失败", zap.Error(err))
		return err
	}

	// 新申请作废旧令牌，保证每个用户同一时刻只有一个有效链接
	if err := s.repo.ResetToken.DeleteByUser(ctx, user.UserID); err != nil {
		s.logger.Error("清理旧重置令牌失败", zap.String("user_id", user.UserID), zap.Error(err))
		return err
	}

	record := &model.PasswordResetToken{
		UserID:    user.UserID,
		Token:     token,
		ExpiresAt: s.now().Add(s.cfg.Auth.ResetTokenTTL),
	}
	if err := s.repo.ResetToken.Create(ctx, record); err != nil {
		s.logger.Error("保存重置令牌失败", zap.String("user_id", user.UserID), zap.Error(err))
		return err
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", s.cfg.Server.BaseURL, token)
	body := fmt.Sprintf(
		"您好 %s：\n\n请访问以下链接重置密码（%s 内有效）：\n%s\n\n如果这不是您本人的操作，请忽略此邮件。",
		user.Username, s.cfg.Auth.ResetTokenTTL, link,
	)

	// 发送失败重试一次，仍失败时向调用方暴露投递错误
	if err := s.mail.Send(user.Email, "密码重置", body); err != nil {
		s.logger.Warn("重置邮件首次发送失败，重试", zap.String("user_id", user.UserID), zap.Error(err))
		if err := s.mail.Send(user.Email, "密码重置", body); err != nil {
			s.logger.Error("重置邮件发送失败", zap.String("user_id", user.UserID), zap.Error(err))
			return ErrResetMailDelivery
		}
	}

	s.logger.Info("已发送密码重置邮件", zap.String("user_id", user.UserID))
	return nil
}

func (s *passwordResetService) Confirm(ctx context.Context, req *dto.ResetConfirmRequest) error {
	// 两次密码不一致直接拒绝，不消耗令牌查询
	if req.NewPassword != req.PasswordConfirm {
		return ErrPasswordMismatch
	}

	record, err := s.repo.ResetToken.GetByToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResetTokenInvalid
		}
		s.logger.Error("查询重置令牌失败", zap.Error(err))
		return err
	}

	// 已使用与已过期对外表现一致，不区分失败原因
	if !record.IsValid(s.now()) {
		return ErrResetTokenInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return err
	}

	// 令牌消耗与密码更新同事务
	if err := s.repo.ResetToken.ConsumeAndSetPassword(ctx, record.ResetTokenID, record.UserID, string(hash)); err != nil {
		s.logger.Error("重置密码失败", zap.String("user_id", record.UserID), zap.Error(err))
		return err
	}

	s.logger.Info("密码重置成功", zap.String("user_id", record.UserID))
	return nil
}

// generateResetToken 生成 32 字节随机令牌，URL 安全编码
func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
