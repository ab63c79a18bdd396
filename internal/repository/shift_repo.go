package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"employee-schedule/server/internal/model"
)

// ShiftListFilters 班次列表过滤条件
// OwnerID 非空时仅返回该用户的班次（employee 可见性收窄）
type ShiftListFilters struct {
	OwnerID  string
	UserID   string
	Role     string
	Location string
	Keyword  string // 按岗位/地点模糊匹配
}

// ShiftRepository 班次数据访问接口
type ShiftRepository interface {
	Create(ctx context.Context, shift *model.Shift) error
	GetByID(ctx context.Context, id string) (*model.Shift, error)
	Update(ctx context.Context, shift *model.Shift) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters *ShiftListFilters, offset, limit int) ([]model.Shift, int64, error)
	ListByOwnerBetween(ctx context.Context, ownerID string, from, to time.Time) ([]model.Shift, error)
}

type shiftRepo struct {
	db *gorm.DB
}

// NewShiftRepo 创建 ShiftRepository 实例
func NewShiftRepo(db *gorm.DB) ShiftRepository {
	return &shiftRepo{db: db}
}

func (r *shiftRepo) Create(ctx context.Context, shift *model.Shift) error {
	return r.db.WithContext(ctx).Create(shift).Error
}

func (r *shiftRepo) GetByID(ctx context.Context, id string) (*model.Shift, error) {
	var shift model.Shift
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("shift_id = ?", id).
		First(&shift).Error
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepo) Update(ctx context.Context, shift *model.Shift) error {
	return r.db.WithContext(ctx).Save(shift).Error
}

func (r *shiftRepo) Delete(ctx context.Context, id string) error {
	// 关联换班申请由外键级联删除
	return r.db.WithContext(ctx).Where("shift_id = ?", id).Delete(&model.Shift{}).Error
}

func (r *shiftRepo) List(ctx context.Context, filters *ShiftListFilters, offset, limit int) ([]model.Shift, int64, error) {
	var shifts []model.Shift
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Shift{})

	if filters != nil {
		if filters.OwnerID != "" {
			db = db.Where("user_id = ?", filters.OwnerID)
		}
		if filters.UserID != "" {
			db = db.Where("user_id = ?", filters.UserID)
		}
		if filters.Role != "" {
			db = db.Where("role = ?", filters.Role)
		}
		if filters.Location != "" {
			db = db.Where("location = ?", filters.Location)
		}
		if filters.Keyword != "" {
			kw := "%" + filters.Keyword + "%"
			db = db.Where("role ILIKE ? OR location ILIKE ?", kw, kw)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("User").
		Offset(offset).Limit(limit).
		Order("start_time ASC").
		Find(&shifts).Error; err != nil {
		return nil, 0, err
	}

	return shifts, total, nil
}

func (r *shiftRepo) ListByOwnerBetween(ctx context.Context, ownerID string, from, to time.Time) ([]model.Shift, error) {
	var shifts []model.Shift
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND start_time >= ? AND start_time < ?", ownerID, from, to).
		Order("start_time ASC").
		Find(&shifts).Error
	return shifts, err
}
