package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User         UserRepository
	Shift        ShiftRepository
	Availability AvailabilityRepository
	PTORequest   PTORequestRepository
	ShiftSwap    ShiftSwapRepository
	ResetToken   ResetTokenRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:         NewUserRepo(db),
		Shift:        NewShiftRepo(db),
		Availability: NewAvailabilityRepo(db),
		PTORequest:   NewPTORequestRepo(db),
		ShiftSwap:    NewShiftSwapRepo(db),
		ResetToken:   NewResetTokenRepo(db),
	}
}
