package repository

import (
	"context"

	"gorm.io/gorm"

	"employee-schedule/server/internal/model"
)

// PTOListFilters 请假列表过滤条件
type PTOListFilters struct {
	OwnerID string // employee 可见性收窄
	UserID  string
	Status  string
	Type    string
}

// PTORequestRepository 请假申请数据访问接口
type PTORequestRepository interface {
	Create(ctx context.Context, p *model.PTORequest) error
	GetByID(ctx context.Context, id string) (*model.PTORequest, error)
	Update(ctx context.Context, p *model.PTORequest) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters *PTOListFilters, offset, limit int) ([]model.PTORequest, int64, error)
}

type ptoRequestRepo struct {
	db *gorm.DB
}

// NewPTORequestRepo 创建 PTORequestRepository 实例
func NewPTORequestRepo(db *gorm.DB) PTORequestRepository {
	return &ptoRequestRepo{db: db}
}

func (r *ptoRequestRepo) Create(ctx context.Context, p *model.PTORequest) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ptoRequestRepo) GetByID(ctx context.Context, id string) (*model.PTORequest, error) {
	var p model.PTORequest
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("pto_request_id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ptoRequestRepo) Update(ctx context.Context, p *model.PTORequest) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ptoRequestRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("pto_request_id = ?", id).Delete(&model.PTORequest{}).Error
}

func (r *ptoRequestRepo) List(ctx context.Context, filters *PTOListFilters, offset, limit int) ([]model.PTORequest, int64, error) {
	var items []model.PTORequest
	var total int64

	db := r.db.WithContext(ctx).Model(&model.PTORequest{})

	if filters != nil {
		if filters.OwnerID != "" {
			db = db.Where("user_id = ?", filters.OwnerID)
		}
		if filters.UserID != "" {
			db = db.Where("user_id = ?", filters.UserID)
		}
		if filters.Status != "" {
			db = db.Where("status = ?", filters.Status)
		}
		if filters.Type != "" {
			db = db.Where("type = ?", filters.Type)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("User").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}
