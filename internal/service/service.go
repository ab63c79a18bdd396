package service

import (
	"go.uber.org/zap"

	"employee-schedule/server/config"
	"employee-schedule/server/internal/repository"
	"employee-schedule/server/pkg/jwt"
	"employee-schedule/server/pkg/mailer"
	"employee-schedule/server/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth          AuthService
	User          UserService
	Shift         ShiftService
	Availability  AvailabilityService
	PTO           PTOService
	Swap          SwapService
	PasswordReset PasswordResetService
	Export        ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	mail mailer.Mailer,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:          NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:          NewUserService(repo, logger),
		Shift:         NewShiftService(repo, logger),
		Availability:  NewAvailabilityService(repo, logger),
		PTO:           NewPTOService(repo, logger),
		Swap:          NewSwapService(repo, logger),
		PasswordReset: NewPasswordResetService(cfg, repo, mail, logger),
		Export:        NewExportService(repo, logger),
	}
}
