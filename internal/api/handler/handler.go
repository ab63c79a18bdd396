package handler

import "employee-schedule/server/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth          *AuthHandler
	User          *UserHandler
	Shift         *ShiftHandler
	Availability  *AvailabilityHandler
	PTO           *PTOHandler
	Swap          *SwapHandler
	PasswordReset *PasswordResetHandler
	Export        *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:          NewAuthHandler(svc.Auth),
		User:          NewUserHandler(svc.User),
		Shift:         NewShiftHandler(svc.Shift),
		Availability:  NewAvailabilityHandler(svc.Availability),
		PTO:           NewPTOHandler(svc.PTO),
		Swap:          NewSwapHandler(svc.Swap),
		PasswordReset: NewPasswordResetHandler(svc.PasswordReset),
		Export:        NewExportHandler(svc.Export),
	}
}
