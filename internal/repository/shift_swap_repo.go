package repository

import (
	"context"

	"gorm.io/gorm"

	"employee-schedule/server/internal/model"
)

// SwapListFilters 换班列表过滤条件
// InvolvedUserID 非空时仅返回该用户作为发起方或接班方的记录（employee 可见性）
type SwapListFilters struct {
	InvolvedUserID string
	Status         string
	FromUserID     string
	ToUserID       string
}

// ShiftSwapRepository 换班申请数据访问接口
type ShiftSwapRepository interface {
	Create(ctx context.Context, s *model.ShiftSwap) error
	GetByID(ctx context.Context, id string) (*model.ShiftSwap, error)
	Update(ctx context.Context, s *model.ShiftSwap) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters *SwapListFilters, offset, limit int) ([]model.ShiftSwap, int64, error)
	// ApproveAndReassign 在同一事务内把换班置为 approved 并把班次归属转给接班人。
	// 任一更新失败则整体回滚，不允许出现"已批准但班次未转移"的中间状态。
	ApproveAndReassign(ctx context.Context, swapID, shiftID, toUserID string) error
}

type shiftSwapRepo struct {
	db *gorm.DB
}

// NewShiftSwapRepo 创建 ShiftSwapRepository 实例
func NewShiftSwapRepo(db *gorm.DB) ShiftSwapRepository {
	return &shiftSwapRepo{db: db}
}

func (r *shiftSwapRepo) Create(ctx context.Context, s *model.ShiftSwap) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *shiftSwapRepo) GetByID(ctx context.Context, id string) (*model.ShiftSwap, error) {
	var s model.ShiftSwap
	err := r.db.WithContext(ctx).
		Preload("Shift").
		Preload("Shift.User").
		Preload("FromUser").
		Preload("ToUser").
		Where("shift_swap_id = ?", id).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *shiftSwapRepo) Update(ctx context.Context, s *model.ShiftSwap) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *shiftSwapRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("shift_swap_id = ?", id).Delete(&model.ShiftSwap{}).Error
}

func (r *shiftSwapRepo) List(ctx context.Context, filters *SwapListFilters, offset, limit int) ([]model.ShiftSwap, int64, error) {
	var items []model.ShiftSwap
	var total int64

	db := r.db.WithContext(ctx).Model(&model.ShiftSwap{})

	if filters != nil {
		if filters.InvolvedUserID != "" {
			db = db.Where("from_user_id = ? OR to_user_id = ?", filters.InvolvedUserID, filters.InvolvedUserID)
		}
		if filters.Status != "" {
			db = db.Where("status = ?", filters.Status)
		}
		if filters.FromUserID != "" {
			db = db.Where("from_user_id = ?", filters.FromUserID)
		}
		if filters.ToUserID != "" {
			db = db.Where("to_user_id = ?", filters.ToUserID)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Shift").
		Preload("Shift.User").
		Preload("FromUser").
		Preload("ToUser").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *shiftSwapRepo) ApproveAndReassign(ctx context.Context, swapID, shiftID, toUserID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.ShiftSwap{}).
			Where("shift_swap_id = ?", swapID).
			Update("status", model.StatusApproved).Error; err != nil {
			return err
		}
		return tx.Model(&model.Shift{}).
			Where("shift_id = ?", shiftID).
			Update("user_id", toUserID).Error
	})
}
