package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"employee-schedule/server/internal/model"
)

// AvailabilityListFilters 可用性列表过滤条件
type AvailabilityListFilters struct {
	OwnerID     string // employee 可见性收窄
	UserID      string
	Date        *time.Time
	IsAvailable *bool
}

// AvailabilityRepository 可用性数据访问接口
type AvailabilityRepository interface {
	Create(ctx context.Context, a *model.Availability) error
	GetByID(ctx context.Context, id string) (*model.Availability, error)
	Update(ctx context.Context, a *model.Availability) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters *AvailabilityListFilters, offset, limit int) ([]model.Availability, int64, error)
}

type availabilityRepo struct {
	db *gorm.DB
}

// NewAvailabilityRepo 创建 AvailabilityRepository 实例
func NewAvailabilityRepo(db *gorm.DB) AvailabilityRepository {
	return &availabilityRepo{db: db}
}

func (r *availabilityRepo) Create(ctx context.Context, a *model.Availability) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *availabilityRepo) GetByID(ctx context.Context, id string) (*model.Availability, error) {
	var a model.Availability
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("availability_id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *availabilityRepo) Update(ctx context.Context, a *model.Availability) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *availabilityRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("availability_id = ?", id).Delete(&model.Availability{}).Error
}

func (r *availabilityRepo) List(ctx context.Context, filters *AvailabilityListFilters, offset, limit int) ([]model.Availability, int64, error) {
	var items []model.Availability
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Availability{})

	if filters != nil {
		if filters.OwnerID != "" {
			db = db.Where("user_id = ?", filters.OwnerID)
		}
		if filters.UserID != "" {
			db = db.Where("user_id = ?", filters.UserID)
		}
		if filters.Date != nil {
			db = db.Where("date = ?", filters.Date.Format("2006-01-02"))
		}
		if filters.IsAvailable != nil {
			db = db.Where("is_available = ?", *filters.IsAvailable)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("User").
		Offset(offset).Limit(limit).
		Order("date ASC").
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}
